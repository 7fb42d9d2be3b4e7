package xgbtest

import (
	"bytes"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"
)

// ispired by https://golang.org/src/runtime/debug/stack.go?s=587:606#L21
// stack returns a formatted stack trace of all goroutines.
// It calls runtime.Stack with a large enough buffer to capture the entire trace.
func stack() []byte {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}

// Goroutine is one entry of a full stack dump.
type Goroutine struct {
	ID    int
	Name  string
	Stack []byte
}

// Leaks remembers which goroutines were running when it was created.
type Leaks struct {
	name       string
	goroutines map[int]Goroutine
}

// LeaksMonitor snapshots the running goroutines. Anything started later and
// still running at CheckTesting is reported as a leak.
func LeaksMonitor(name string) Leaks {
	return Leaks{name, collectGoroutines()}
}

var regexpID = regexp.MustCompile(`^\s*goroutine\s*(\d+)`)

func collectGoroutines() map[int]Goroutine {
	res := make(map[int]Goroutine)
	stacks := bytes.Split(stack(), []byte{'\n', '\n'})

	for _, st := range stacks {
		lines := bytes.Split(st, []byte{'\n'})
		if len(lines) < 2 {
			continue
		}
		idMatches := regexpID.FindSubmatch(lines[0])
		if len(idMatches) < 2 {
			continue
		}
		id, err := strconv.Atoi(string(idMatches[1]))
		if err != nil {
			continue
		}
		res[id] = Goroutine{id, strings.TrimSpace(string(lines[1])), st}
	}
	return res
}

// LeakingGoroutines returns the goroutines running now that were not
// running when the monitor was created.
func (l Leaks) LeakingGoroutines() []Goroutine {
	var res []Goroutine
	for id, gr := range collectGoroutines() {
		if _, ok := l.goroutines[id]; ok {
			continue
		}
		res = append(res, gr)
	}
	return res
}

// CheckTesting fails t if goroutines leaked. Goroutines on their way out
// get a second to finish.
func (l Leaks) CheckTesting(t testing.TB) {
	t.Helper()
	if len(l.LeakingGoroutines()) == 0 {
		return
	}
	leakTimeout := time.Second
	deadline := time.Now().Add(leakTimeout)
	for time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		if len(l.LeakingGoroutines()) == 0 {
			return
		}
	}
	leaking := l.LeakingGoroutines()
	t.Errorf("%s: %d goroutine leaks", l.name, len(leaking))
	for _, gr := range leaking {
		t.Log(gr.Name, "\n", string(gr.Stack))
	}
}
