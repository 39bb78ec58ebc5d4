package ebitenwin

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mashenka/mashenka/engine/core"
)

const (
	repeatDelay    = 30 // ticks before a held key repeats
	repeatInterval = 4
)

var keyTable = map[ebiten.Key]core.Key{
	ebiten.KeyA: core.KeyA, ebiten.KeyB: core.KeyB, ebiten.KeyC: core.KeyC, ebiten.KeyD: core.KeyD,
	ebiten.KeyE: core.KeyE, ebiten.KeyF: core.KeyF, ebiten.KeyG: core.KeyG, ebiten.KeyH: core.KeyH,
	ebiten.KeyI: core.KeyI, ebiten.KeyJ: core.KeyJ, ebiten.KeyK: core.KeyK, ebiten.KeyL: core.KeyL,
	ebiten.KeyM: core.KeyM, ebiten.KeyN: core.KeyN, ebiten.KeyO: core.KeyO, ebiten.KeyP: core.KeyP,
	ebiten.KeyQ: core.KeyQ, ebiten.KeyR: core.KeyR, ebiten.KeyS: core.KeyS, ebiten.KeyT: core.KeyT,
	ebiten.KeyU: core.KeyU, ebiten.KeyV: core.KeyV, ebiten.KeyW: core.KeyW, ebiten.KeyX: core.KeyX,
	ebiten.KeyY: core.KeyY, ebiten.KeyZ: core.KeyZ,

	ebiten.KeyDigit0: core.Key0, ebiten.KeyDigit1: core.Key1, ebiten.KeyDigit2: core.Key2,
	ebiten.KeyDigit3: core.Key3, ebiten.KeyDigit4: core.Key4, ebiten.KeyDigit5: core.Key5,
	ebiten.KeyDigit6: core.Key6, ebiten.KeyDigit7: core.Key7, ebiten.KeyDigit8: core.Key8,
	ebiten.KeyDigit9: core.Key9,

	ebiten.KeyF1: core.KeyF1, ebiten.KeyF2: core.KeyF2, ebiten.KeyF3: core.KeyF3, ebiten.KeyF4: core.KeyF4,
	ebiten.KeyF5: core.KeyF5, ebiten.KeyF6: core.KeyF6, ebiten.KeyF7: core.KeyF7, ebiten.KeyF8: core.KeyF8,
	ebiten.KeyF9: core.KeyF9, ebiten.KeyF10: core.KeyF10, ebiten.KeyF11: core.KeyF11, ebiten.KeyF12: core.KeyF12,

	ebiten.KeySpace: core.KeySpace, ebiten.KeyEscape: core.KeyEscape, ebiten.KeyEnter: core.KeyEnter,
	ebiten.KeyTab: core.KeyTab, ebiten.KeyBackspace: core.KeyBackspace, ebiten.KeyInsert: core.KeyInsert,
	ebiten.KeyDelete: core.KeyDelete, ebiten.KeyArrowRight: core.KeyRight, ebiten.KeyArrowLeft: core.KeyLeft,
	ebiten.KeyArrowDown: core.KeyDown, ebiten.KeyArrowUp: core.KeyUp, ebiten.KeyPageUp: core.KeyPageUp,
	ebiten.KeyPageDown: core.KeyPageDown, ebiten.KeyHome: core.KeyHome, ebiten.KeyEnd: core.KeyEnd,
	ebiten.KeyCapsLock: core.KeyCapsLock,

	ebiten.KeyShiftLeft: core.KeyLeftShift, ebiten.KeyShiftRight: core.KeyRightShift,
	ebiten.KeyControlLeft: core.KeyLeftControl, ebiten.KeyControlRight: core.KeyRightControl,
	ebiten.KeyAltLeft: core.KeyLeftAlt, ebiten.KeyAltRight: core.KeyRightAlt,
	ebiten.KeyMetaLeft: core.KeyLeftSuper, ebiten.KeyMetaRight: core.KeyRightSuper,

	ebiten.KeyApostrophe: core.KeyApostrophe, ebiten.KeyComma: core.KeyComma, ebiten.KeyMinus: core.KeyMinus,
	ebiten.KeyPeriod: core.KeyPeriod, ebiten.KeySlash: core.KeySlash, ebiten.KeySemicolon: core.KeySemicolon,
	ebiten.KeyEqual: core.KeyEqual, ebiten.KeyBracketLeft: core.KeyLeftBracket,
	ebiten.KeyBackslash: core.KeyBackslash, ebiten.KeyBracketRight: core.KeyRightBracket,
	ebiten.KeyBackquote: core.KeyGraveAccent,
}

func translateKey(k ebiten.Key) core.Key {
	if ck, ok := keyTable[k]; ok {
		return ck
	}
	return core.KeyUnknown
}

var buttonTable = [...]struct {
	eb   ebiten.MouseButton
	core core.MouseButton
}{
	{ebiten.MouseButtonLeft, core.MouseButtonLeft},
	{ebiten.MouseButtonRight, core.MouseButtonRight},
	{ebiten.MouseButtonMiddle, core.MouseButtonMiddle},
}

// modsFrom builds modifier flags from a key-down query.
func modsFrom(down func(ebiten.Key) bool) core.Mod {
	var m core.Mod
	if down(ebiten.KeyShift) {
		m |= core.ModShift
	}
	if down(ebiten.KeyControl) {
		m |= core.ModCtrl
	}
	if down(ebiten.KeyAlt) {
		m |= core.ModAlt
	}
	if down(ebiten.KeyMeta) {
		m |= core.ModSuper
	}
	return m
}

// isRepeatTick reports whether a key held for duration ticks repeats now.
func isRepeatTick(duration int) bool {
	return duration > repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}

// inputState turns ebiten's polled input into engine events.
type inputState struct {
	keys    []ebiten.Key
	chars   []rune
	cursorX int
	cursorY int
	known   bool
}

func newInputState() *inputState { return &inputState{} }

func (s *inputState) poll(emit func(core.Payload)) {
	mods := modsFrom(ebiten.IsKeyPressed)

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if ck := translateKey(k); ck != core.KeyUnknown {
			emit(core.KeyPressedEvent{Key: ck, Mods: mods})
		}
	}
	s.keys = inpututil.AppendPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		if !isRepeatTick(inpututil.KeyPressDuration(k)) {
			continue
		}
		if ck := translateKey(k); ck != core.KeyUnknown {
			emit(core.KeyPressedEvent{Key: ck, Mods: mods, RepeatCount: 1})
		}
	}
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	for _, k := range s.keys {
		if ck := translateKey(k); ck != core.KeyUnknown {
			emit(core.KeyReleasedEvent{Key: ck, Mods: mods})
		}
	}

	s.chars = ebiten.AppendInputChars(s.chars[:0])
	for _, r := range s.chars {
		emit(core.KeyTypedEvent{Char: r})
	}

	x, y := ebiten.CursorPosition()
	if !s.known || x != s.cursorX || y != s.cursorY {
		s.cursorX, s.cursorY, s.known = x, y, true
		emit(core.MouseMovedEvent{X: float32(x), Y: float32(y)})
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		emit(core.MouseScrolledEvent{XOffset: float32(wx), YOffset: float32(wy)})
	}

	for _, b := range buttonTable {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			emit(core.MouseButtonPressedEvent{Button: b.core})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			emit(core.MouseButtonReleasedEvent{Button: b.core})
		}
	}
}
