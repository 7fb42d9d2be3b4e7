package xgbtest

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/xgbewmh/xgb"
)

var (
	ErrClosed = errors.New("xgbtest: connection closed")
	ErrWrite  = errors.New("xgbtest: write failed")
	ErrRead   = errors.New("xgbtest: read failed")
)

type addr string

func (addr) Network() string  { return "xgbtest" }
func (a addr) String() string { return string(a) }

// NetConn is a client's socket to a Server. Bytes written to it are cut
// into X requests, the setup request first, and each one is answered by
// the server as soon as it is complete. Answers are read back in order.
//
// Reads and writes can be stalled or made to fail at any time, which is how
// tests simulate a hung or broken X server.
type NetConn struct {
	srv  *Server
	addr addr

	mu   sync.Mutex
	cond *sync.Cond

	pending   []byte // written, not yet a whole request
	setupDone bool
	out       bytes.Buffer

	closed       bool
	writeStalled bool
	writeFailed  bool
	readStalled  bool
	readFailed   bool
}

// Dial returns a new connection to s. name is reported by LocalAddr and
// RemoteAddr.
func (s *Server) Dial(name string) *NetConn {
	nc := &NetConn{srv: s, addr: addr(name)}
	nc.cond = sync.NewCond(&nc.mu)
	return nc
}

// nextRequest cuts the next complete request off pending. Requests claiming
// a length of zero are taken as one unit, since BIG-REQUESTS is not spoken.
func (nc *NetConn) nextRequest() ([]byte, bool) {
	var size int
	if !nc.setupDone {
		if len(nc.pending) < 12 {
			return nil, false
		}
		size = 12 + xgb.Pad(int(xgb.Get16(nc.pending[6:]))) +
			xgb.Pad(int(xgb.Get16(nc.pending[8:])))
	} else {
		if len(nc.pending) < 4 {
			return nil, false
		}
		size = int(xgb.Get16(nc.pending[2:])) * 4
		if size == 0 {
			size = 4
		}
	}
	if len(nc.pending) < size {
		return nil, false
	}
	req := append([]byte(nil), nc.pending[:size]...)
	nc.pending = nc.pending[size:]
	nc.setupDone = true
	return req, true
}

// Write blocks while writes are stalled. It fails with ErrWrite after
// FailWrites and with ErrClosed after Close.
func (nc *NetConn) Write(b []byte) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for nc.writeStalled && !nc.writeFailed && !nc.closed {
		nc.cond.Wait()
	}
	switch {
	case nc.closed:
		return 0, ErrClosed
	case nc.writeFailed:
		return 0, ErrWrite
	}

	nc.pending = append(nc.pending, b...)
	answered := false
	for {
		req, ok := nc.nextRequest()
		if !ok {
			break
		}
		nc.out.Write(nc.srv.handle(req))
		answered = true
	}
	if answered {
		nc.cond.Broadcast()
	}
	return len(b), nil
}

// Read blocks until an answer is buffered and reads are not stalled. It
// fails with ErrRead after FailReads, even with data buffered, and returns
// io.EOF after Close.
func (nc *NetConn) Read(b []byte) (int, error) {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	for {
		switch {
		case nc.closed:
			return 0, io.EOF
		case nc.readFailed:
			return 0, ErrRead
		case !nc.readStalled && nc.out.Len() > 0:
			return nc.out.Read(b)
		}
		nc.cond.Wait()
	}
}

// Close wakes every blocked call. Closing twice returns ErrClosed.
func (nc *NetConn) Close() error {
	return nc.set(func() { nc.closed = true })
}

func (nc *NetConn) LocalAddr() net.Addr  { return nc.addr }
func (nc *NetConn) RemoteAddr() net.Addr { return nc.addr }

// Deadlines are ignored.
func (nc *NetConn) SetDeadline(t time.Time) error      { return nil }
func (nc *NetConn) SetReadDeadline(t time.Time) error  { return nil }
func (nc *NetConn) SetWriteDeadline(t time.Time) error { return nil }

func (nc *NetConn) set(change func()) error {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return ErrClosed
	}
	change()
	nc.cond.Broadcast()
	return nil
}

// StallWrites blocks every Write until ResumeWrites, FailWrites or Close.
func (nc *NetConn) StallWrites() error {
	return nc.set(func() { nc.writeStalled = true })
}

// FailWrites makes every blocked and later Write fail with ErrWrite.
func (nc *NetConn) FailWrites() error {
	return nc.set(func() { nc.writeFailed = true })
}

// ResumeWrites lets writes through and makes them succeed again.
func (nc *NetConn) ResumeWrites() error {
	return nc.set(func() { nc.writeStalled, nc.writeFailed = false, false })
}

// StallReads blocks every Read, even with answers buffered, until
// ResumeReads, FailReads or Close.
func (nc *NetConn) StallReads() error {
	return nc.set(func() { nc.readStalled = true })
}

// FailReads makes every blocked and later Read fail with ErrRead.
func (nc *NetConn) FailReads() error {
	return nc.set(func() { nc.readFailed = true })
}

// ResumeReads lets reads through and makes them succeed again.
func (nc *NetConn) ResumeReads() error {
	return nc.set(func() { nc.readStalled, nc.readFailed = false, false })
}
