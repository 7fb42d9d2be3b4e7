package xgbtest

import (
	"sync"
)

// TrackingAllocator is an xgb.Allocator that remembers every buffer it
// handed out and notices buffers that are freed twice or were never its own.
type TrackingAllocator struct {
	mu          sync.Mutex
	outstanding map[*byte]int
	allocs      int
	frees       int
	doubleFrees int
}

func NewTrackingAllocator() *TrackingAllocator {
	return &TrackingAllocator{outstanding: make(map[*byte]int)}
}

func (a *TrackingAllocator) Alloc(n int) []byte {
	// Zero length buffers have no address to track.
	buf := make([]byte, n, n+1)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outstanding[&buf[:1][0]] = n
	a.allocs++
	return buf
}

func (a *TrackingAllocator) Free(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := &buf[:1][0]
	if _, ok := a.outstanding[key]; !ok {
		a.doubleFrees++
		return
	}
	delete(a.outstanding, key)
	a.frees++
}

// Outstanding is the number of buffers allocated and not yet freed.
func (a *TrackingAllocator) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.outstanding)
}

// Allocs is the number of buffers handed out so far.
func (a *TrackingAllocator) Allocs() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs
}

// Frees is the number of buffers correctly given back so far.
func (a *TrackingAllocator) Frees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frees
}

// DoubleFrees counts Free calls for buffers that were not outstanding.
func (a *TrackingAllocator) DoubleFrees() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.doubleFrees
}
