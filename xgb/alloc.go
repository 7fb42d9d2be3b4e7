package xgb

import "sync"

// Allocator hands out the buffers that replies are read into. Every buffer
// returned by Alloc is given back exactly once through Free, either by the
// transport (for replies nobody will read) or by the caller of WaitForReply
// through Conn.Release.
type Allocator interface {
	Alloc(n int) []byte
	Free(buf []byte)
}

// packetSize is the size of every error, event and reply header.
const packetSize = 32

// poolAllocator recycles the 32 byte buffers every packet starts in.
// Longer replies are left to the garbage collector.
type poolAllocator struct {
	small sync.Pool
}

func newPoolAllocator() *poolAllocator {
	return &poolAllocator{
		small: sync.Pool{New: func() interface{} { return new([packetSize]byte) }},
	}
}

func (p *poolAllocator) Alloc(n int) []byte {
	if n == packetSize {
		b := p.small.Get().(*[packetSize]byte)
		*b = [packetSize]byte{}
		return b[:]
	}
	return make([]byte, n)
}

func (p *poolAllocator) Free(buf []byte) {
	if len(buf) == packetSize && cap(buf) == packetSize {
		p.small.Put((*[packetSize]byte)(buf))
	}
}

// Option configures a Conn before its first request.
type Option func(*Conn)

// WithAllocator makes the connection read replies into buffers from a.
func WithAllocator(a Allocator) Option {
	return func(c *Conn) {
		c.alloc = a
	}
}
