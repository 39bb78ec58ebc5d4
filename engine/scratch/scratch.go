// Package scratch is a per-frame text arena. Strings formatted into an Arena
// share its buffer and stay valid until the next Reset.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

type Arena struct {
	buf []byte
}

func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Arena{buf: make([]byte, 0, capacity)}
}

// Reset recycles the buffer. Strings handed out before are invalidated.
func (a *Arena) Reset() { a.buf = a.buf[:0] }

func (a *Arena) Len() int { return len(a.buf) }
func (a *Arena) Cap() int { return cap(a.buf) }

// view returns the bytes written since mark without copying. Growth moves
// later writes to a new array, so earlier views keep their contents.
func (a *Arena) view(mark int) string {
	b := a.buf[mark:]
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// Sprintf formats a small printf subset without reflection: %s %d %f %c %t
// and %%, each with an optional width and, for %f, a precision ("%6.2f").
// Unknown verbs are written literally.
func (a *Arena) Sprintf(format string, args ...any) string {
	mark := len(a.buf)
	next := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			a.buf = append(a.buf, ch)
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			a.buf = append(a.buf, '%')
			continue
		}
		width, n := digits(format[i:])
		i += n
		prec := -1
		if i < len(format) && format[i] == '.' {
			prec, n = digits(format[i+1:])
			i += n + 1
		}
		if i >= len(format) {
			break
		}
		if next >= len(args) {
			a.buf = append(a.buf, "%!"...)
			a.buf = append(a.buf, format[i])
			continue
		}

		start := len(a.buf)
		a.appendArg(format[i], args[next], prec)
		next++
		a.padLeft(start, width)
	}
	return a.view(mark)
}

func (a *Arena) appendArg(verb byte, arg any, prec int) {
	switch verb {
	case 's':
		switch x := arg.(type) {
		case string:
			a.buf = append(a.buf, x...)
		case []byte:
			a.buf = append(a.buf, x...)
		default:
			a.buf = append(a.buf, "<?>"...)
		}
	case 'd':
		if u, ok := arg.(uint64); ok {
			a.buf = strconv.AppendUint(a.buf, u, 10)
		} else {
			a.buf = strconv.AppendInt(a.buf, toInt64(arg), 10)
		}
	case 'f':
		if prec < 0 {
			prec = 6
		}
		a.buf = strconv.AppendFloat(a.buf, toFloat64(arg), 'f', prec, 64)
	case 'c':
		r, _ := arg.(rune)
		a.buf = utf8.AppendRune(a.buf, r)
	case 't':
		b, _ := arg.(bool)
		a.buf = strconv.AppendBool(a.buf, b)
	default:
		a.buf = append(a.buf, '%', verb)
	}
}

// padLeft right-aligns the text written since start to width bytes.
func (a *Arena) padLeft(start, width int) {
	n := len(a.buf) - start
	if n >= width {
		return
	}
	pad := width - n
	for range pad {
		a.buf = append(a.buf, ' ')
	}
	copy(a.buf[start+pad:], a.buf[start:start+n])
	for i := start; i < start+pad; i++ {
		a.buf[i] = ' '
	}
}

func digits(s string) (value, n int) {
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		value = value*10 + int(s[n]-'0')
		n++
	}
	return value, n
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}
