// Copyright 2009 The XGB Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xgb

import (
	"io"
	"net"
	"sync"

	"github.com/eapache/queue"
	"github.com/pkg/errors"
)

const (
	writeBuffer = 100

	// syncInterval is how many requests may be sent after the last one
	// that produces a reply before a GetInputFocus is slipped in. It keeps
	// the server's 16 bit sequence numbers unambiguous.
	syncInterval = 65000
)

// A Conn represents a connection to an X server.
type Conn struct {
	host          string
	conn          net.Conn
	display       string
	defaultScreen int
	Setup         SetupInfo

	alloc Allocator

	// sendLock serializes sequence number assignment with the hand-off to
	// the writer, so the server sees requests in sequence order.
	sendLock    sync.Mutex
	lastSent    uint64
	lastReplied uint64

	cookieLock sync.Mutex
	cookies    map[uint64]*cookie
	pending    []*cookie

	eventLock sync.Mutex
	events    *queue.Queue
	eventChan chan struct{}

	requestChan chan []byte

	errLock   sync.Mutex
	err       *ConnError
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewConn creates a new connection instance. It initializes locks, data
// structures, and performs the initial handshake. (The code for the handshake
// has been relegated to conn.go.)
func NewConn(opts ...Option) (*Conn, error) {
	return NewConnDisplay("", opts...)
}

// NewConnDisplay is just like NewConn, but allows a specific DISPLAY
// string to be used.
// If 'display' is empty it will be taken from os.Getenv("DISPLAY").
//
// Examples:
//
//	NewConn(":1") -> net.Dial("unix", "", "/tmp/.X11-unix/X1")
//	NewConn("/tmp/launch-123/:0") -> net.Dial("unix", "", "/tmp/launch-123/:0")
//	NewConn("hostname:2.1") -> net.Dial("tcp", "", "hostname:6002")
//	NewConn("tcp/hostname:1.0") -> net.Dial("tcp", "", "hostname:6001")
func NewConnDisplay(display string, opts ...Option) (*Conn, error) {
	c := newConn(opts...)

	// First connect. This reads authority, checks DISPLAY environment
	// variable, and loads the initial Setup info.
	if err := c.connect(display); err != nil {
		return nil, err
	}
	c.start()
	return c, nil
}

// NewConnNet performs the X handshake over an already open net.Conn,
// without authentication, and returns the resulting connection. The Conn
// takes ownership of netConn and closes it in Close.
func NewConnNet(netConn net.Conn, opts ...Option) (*Conn, error) {
	c := newConn(opts...)
	c.conn = netConn
	if err := c.postConnect("", nil); err != nil {
		netConn.Close()
		return nil, err
	}
	c.start()
	return c, nil
}

func newConn(opts ...Option) *Conn {
	c := &Conn{
		cookies:     make(map[uint64]*cookie),
		events:      queue.New(),
		eventChan:   make(chan struct{}, 1),
		requestChan: make(chan []byte, writeBuffer),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.alloc == nil {
		c.alloc = newPoolAllocator()
	}
	return c
}

func (c *Conn) start() {
	c.wg.Add(2)
	go c.writeLoop()
	go c.readLoop()
}

// Close closes the connection to the X server. Every request still waiting
// for an answer fails with a ConnError wrapping ErrClosed.
func (c *Conn) Close() {
	c.fail(ErrClosed)
	c.conn.Close()
	c.wg.Wait()
}

// Err returns the ConnError the connection failed with, or nil while it is
// usable.
func (c *Conn) Err() error {
	return c.connErr()
}

func (c *Conn) connErr() error {
	c.errLock.Lock()
	defer c.errLock.Unlock()
	if c.err == nil {
		return nil
	}
	return c.err
}

// fail marks the connection as unusable. Only the first cause is kept.
func (c *Conn) fail(err error) {
	c.closeOnce.Do(func() {
		c.errLock.Lock()
		c.err = &ConnError{Err: err}
		c.errLock.Unlock()
		close(c.done)

		if errors.Cause(err) != ErrClosed {
			logger().WithError(err).Error("connection failed")
		}
	})
}

// Roots returns the root window of every screen, in screen order.
func (c *Conn) Roots() []Window {
	roots := make([]Window, len(c.Setup.Roots))
	for i, screen := range c.Setup.Roots {
		roots[i] = screen.Root
	}
	return roots
}

// DefaultScreen returns the Screen info for the default screen, which is
// 0 or the one given in the display argument to Dial.
func (c *Conn) DefaultScreen() *ScreenInfo { return &c.Setup.Roots[c.defaultScreen] }

// DefaultScreenNum returns the index of the default screen.
func (c *Conn) DefaultScreenNum() int { return c.defaultScreen }

// SendRequest queues one encoded request for writing and returns the
// sequence number the server will know it by. It never waits on the socket.
//
// checked and hasReply select which of WaitForReply, WaitForReplyUnchecked
// or CheckRequest may later be called with the sequence number. An
// unchecked request without a reply is not tracked at all: its errors, if
// any, are delivered by WaitForEvent.
func (c *Conn) SendRequest(buf []byte, checked, hasReply bool) (uint64, error) {
	if max := int(c.Setup.MaximumRequestLength) * 4; max > 0 && len(buf) > max {
		return 0, errors.Errorf("request of %d bytes exceeds the maximum "+
			"request length of %d bytes", len(buf), max)
	}

	c.sendLock.Lock()
	defer c.sendLock.Unlock()

	if err := c.connErr(); err != nil {
		return 0, err
	}

	if !hasReply && c.lastSent-c.lastReplied >= syncInterval {
		if err := c.queueRequest(getInputFocusRequest()); err != nil {
			return 0, err
		}
		c.lastSent++
		c.lastReplied = c.lastSent
		logger().WithField("seq", c.lastSent).Debug("inserted sync request")
	}

	seq := c.lastSent + 1
	if hasReply {
		c.lastReplied = seq
	}
	if cookie := newCookie(seq, checked, hasReply); cookie != nil {
		c.cookieLock.Lock()
		c.cookies[seq] = cookie
		c.pending = append(c.pending, cookie)
		c.cookieLock.Unlock()
	}
	if err := c.queueRequest(buf); err != nil {
		return 0, err
	}
	c.lastSent = seq
	return seq, nil
}

func (c *Conn) queueRequest(buf []byte) error {
	select {
	case c.requestChan <- buf:
		return nil
	case <-c.done:
		return c.connErr()
	}
}

// Sync sends a request with a reply and waits for it. Every request sent
// before it has been processed by the server when Sync returns.
func (c *Conn) Sync() error {
	seq, err := c.SendRequest(getInputFocusRequest(), true, true)
	if err != nil {
		return err
	}
	buf, err := c.WaitForReply(seq)
	c.Release(buf)
	return err
}

func (c *Conn) writeLoop() {
	defer c.wg.Done()
	for {
		select {
		case buf := <-c.requestChan:
			if _, err := c.conn.Write(buf); err != nil {
				c.fail(errors.Wrap(err, "x protocol write error"))
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Conn) readLoop() {
	defer c.wg.Done()
	defer c.releaseCookies()

	var last uint64
	for {
		buf := c.alloc.Alloc(packetSize)
		if _, err := io.ReadFull(c.conn, buf); err != nil {
			c.alloc.Free(buf)
			c.fail(errors.Wrap(err, "x protocol read error"))
			return
		}

		code := buf[0] & 0x7f
		// KeymapNotify is the one packet without a sequence number.
		if code != KeymapNotify {
			last = widenSequence(last, Get16(buf[2:]))
		}

		switch code {
		case 0:
			perr := newProtocolError(buf, last)
			c.alloc.Free(buf)
			c.routeError(perr)
		case 1:
			if size := Get32(buf[4:]); size > 0 {
				bigbuf := c.alloc.Alloc(packetSize + int(size)*4)
				copy(bigbuf, buf)
				c.alloc.Free(buf)
				buf = bigbuf
				if _, err := io.ReadFull(c.conn, buf[packetSize:]); err != nil {
					c.alloc.Free(buf)
					c.fail(errors.Wrap(err, "x protocol read error"))
					return
				}
			}
			c.routeReply(last, buf)
		default:
			ev := newEvent(buf)
			c.alloc.Free(buf)
			c.resolveBefore(last)
			c.enqueue(ev, nil)
		}
	}
}

// resolveBeforeLocked pings every pending cookie older than seq. The server
// answers in order, so nothing more will arrive for them.
// cookieLock must be held.
func (c *Conn) resolveBeforeLocked(seq uint64) {
	for len(c.pending) > 0 && c.pending[0].Sequence < seq {
		c.pending[0].ping()
		c.pending[0] = nil
		c.pending = c.pending[1:]
	}
}

func (c *Conn) resolveBefore(seq uint64) {
	c.cookieLock.Lock()
	c.resolveBeforeLocked(seq)
	c.cookieLock.Unlock()
}

// popLocked returns the pending cookie for seq, if any, after resolving
// everything older. cookieLock must be held.
func (c *Conn) popLocked(seq uint64) *cookie {
	c.resolveBeforeLocked(seq)
	if len(c.pending) == 0 || c.pending[0].Sequence != seq {
		return nil
	}
	cookie := c.pending[0]
	c.pending[0] = nil
	c.pending = c.pending[1:]
	return cookie
}

func (c *Conn) routeReply(seq uint64, buf []byte) {
	c.cookieLock.Lock()
	defer c.cookieLock.Unlock()

	cookie := c.popLocked(seq)
	if cookie == nil || cookie.discarded || cookie.replyChan == nil {
		c.alloc.Free(buf)
		return
	}
	cookie.replyChan <- buf
}

func (c *Conn) routeError(err *ProtocolError) {
	c.cookieLock.Lock()
	cookie := c.popLocked(err.Sequence)
	switch {
	case cookie != nil && cookie.discarded:
		cookie = nil
		err = nil
	case cookie != nil && cookie.errorChan != nil:
		cookie.errorChan <- err
		err = nil
	case cookie != nil:
		// Unchecked with a reply: the waiter gets nothing, the error goes to
		// the event queue.
		cookie.ping()
	}
	c.cookieLock.Unlock()

	if err != nil {
		logger().WithField("seq", err.Sequence).WithField("code", err.Code).
			Debug("queueing unchecked protocol error")
		c.enqueue(nil, err)
	}
}

// releaseCookies frees replies nobody took before the connection failed.
// Cookies already taken are drained by their waiters.
func (c *Conn) releaseCookies() {
	c.cookieLock.Lock()
	defer c.cookieLock.Unlock()

	for seq, cookie := range c.cookies {
		if cookie.replyChan != nil {
			select {
			case buf := <-cookie.replyChan:
				c.alloc.Free(buf)
			default:
			}
		}
		delete(c.cookies, seq)
	}
	c.pending = nil
}

type eventOrError struct {
	ev  Event
	err Error
}

func (c *Conn) enqueue(ev Event, err Error) {
	c.eventLock.Lock()
	c.events.Add(eventOrError{ev, err})
	c.eventLock.Unlock()

	select {
	case c.eventChan <- struct{}{}:
	default:
	}
}

func (c *Conn) dequeue() (eventOrError, bool) {
	c.eventLock.Lock()
	defer c.eventLock.Unlock()

	if c.events.Length() == 0 {
		return eventOrError{}, false
	}
	return c.events.Remove().(eventOrError), true
}

// WaitForEvent returns the next event from the server, or the next error
// of a request nobody is checking.
// It will block until an event is available. Both event and error are nil
// once the connection is closed and the queue has been drained.
func (c *Conn) WaitForEvent() (Event, Error) {
	for {
		if item, ok := c.dequeue(); ok {
			return item.ev, item.err
		}
		select {
		case <-c.eventChan:
		case <-c.done:
			if item, ok := c.dequeue(); ok {
				return item.ev, item.err
			}
			return nil, nil
		}
	}
}

// PollForEvent returns the next event from the server if one is available in the internal queue.
// It will not block, so you must call WaitForEvent to wait for new events.
func (c *Conn) PollForEvent() (Event, Error) {
	if item, ok := c.dequeue(); ok {
		return item.ev, item.err
	}
	return nil, nil
}
