//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrNoSamples is returned when a dump is requested before any scope ran.
var ErrNoSamples = errors.New("profiler: no events to dump")

const Enabled = true

// Init must be called once (e.g., on app start) with a capacity (#scope events).
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

// Start opens a scope and returns the func that closes it.
//
//	defer profiler.Start("Renderer2D.Flush")()
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	begin := time.Now().UnixNano()
	ring.push(sample{at: begin, frame: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < begin {
			end = begin
		}
		ring.push(sample{at: end, frame: id})
	}
}

// OpenProfilerGraph dumps the captured scopes to a temporary speedscope file
// and launches the speedscope viewer on it.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "mashenka.profile.speedscope.json")
	if err := DumpFile(path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	if runtime.GOOS == "windows" {
		cmd.SysProcAttr = hideWindowAttr()
	}
	if err := cmd.Start(); err != nil {
		return path, fmt.Errorf("launch speedscope: %w", err)
	}
	return path, nil
}

// DumpFile writes the captured scopes to path atomically.
func DumpFile(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := Dump(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Dump writes the captured scopes as a speedscope evented profile.
func Dump(w io.Writer) error {
	samples := ring.snapshot()
	if len(samples) == 0 {
		return ErrNoSamples
	}
	doc, err := buildSpeedscope(samples, frameNames())
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// ---------- sample ring ----------

type sample struct {
	at    int64
	frame int
	open  bool
}

type sampleRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	buf   []sample
}

func (r *sampleRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.buf = make([]sample, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *sampleRing) push(s sample) {
	i := r.write.Add(1) - 1
	r.buf[i%r.cap] = s
}

// snapshot keeps write order; the oldest samples are dropped once the ring wraps.
func (r *sampleRing) snapshot() []sample {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]sample, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.buf[k%r.cap])
	}
	return out
}

var ring sampleRing

// ---------- scope names ----------

var (
	namesMu sync.Mutex
	names   []string
	nameIDs = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := nameIDs[name]; ok {
		return id
	}
	id := len(names)
	nameIDs[name] = id
	names = append(names, name)
	return id
}

func frameNames() []string {
	namesMu.Lock()
	defer namesMu.Unlock()
	return append([]string(nil), names...)
}

// ---------- speedscope ----------

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // µs since first sample
	Frame int    `json:"frame"`
}

// buildSpeedscope converts samples into balanced open/close events.
// Mismatched closes are dropped; scopes still open at the end are closed at
// the last timestamp.
func buildSpeedscope(samples []sample, frames []string) (ssFile, error) {
	base := samples[0].at
	events := make([]ssEvent, 0, len(samples)+16)
	stack := make([]int, 0, 64)
	last := int64(0)

	for _, s := range samples {
		at := (s.at - base) / 1000
		if at < last {
			at = last
		}
		if s.open {
			events = append(events, ssEvent{Type: "O", At: at, Frame: s.frame})
			stack = append(stack, s.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != s.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			events = append(events, ssEvent{Type: "C", At: at, Frame: s.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		events = append(events, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(events) == 0 {
		return ssFile{}, ErrNoSamples
	}

	fs := make([]ssFrame, len(frames))
	for i, n := range frames {
		fs[i] = ssFrame{Name: n}
	}
	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "Mashenka frame scopes",
			Unit:     "microseconds",
			EndValue: last,
			Events:   events,
		}},
		Exporter: "mashenka-profiler",
		Name:     "Mashenka capture",
	}, nil
}
