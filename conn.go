package ewmh

import (
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/BurntSushi/xgbewmh/xgb"
)

//go:generate mockgen -destination internal/mocks/transport.go -package mocks github.com/BurntSushi/xgbewmh Transport

// Transport is what a Conn needs from the X connection underneath it.
// *xgb.Conn implements it.
type Transport interface {
	SendRequest(buf []byte, checked, hasReply bool) (uint64, error)
	WaitForReply(seq uint64) ([]byte, error)
	WaitForReplyUnchecked(seq uint64) ([]byte, error)
	CheckRequest(seq uint64) error
	Discard(seq uint64)
	Release(buf []byte)
	Roots() []xgb.Window
}

var _ Transport = (*xgb.Conn)(nil)

// Conn is an X connection with the EWMH atoms interned. It borrows its
// Transport: closing a Conn does not close the transport, and the transport
// must outlive it.
type Conn struct {
	t     Transport
	roots []xgb.Window
	atoms atomic.Pointer[AtomTable]
}

// ErrClosed is returned for requests made on a closed Conn.
var ErrClosed = errors.New("ewmh: connection closed")

// Connect interns every atom in AtomNames, plus _NET_WM_CM_S<n> for each
// screen. All InternAtom requests are sent before any reply is collected.
//
// If any request or reply fails, the returned error is a *HandshakeError and
// no Conn is returned. Replies not yet collected are discarded.
func Connect(t Transport) (*Conn, error) {
	roots := t.Roots()
	names := AtomNames()
	for i := range roots {
		names = append(names, wmCMSName(i))
	}

	log := logger().WithField("atoms", len(names))
	log.Debug("interning atoms")

	seqs := make([]uint64, 0, len(names))
	abort := func(name string, err error) (*Conn, error) {
		for _, seq := range seqs {
			t.Discard(seq)
		}
		log.WithError(err).WithField("atom", name).Debug("handshake failed")
		return nil, &HandshakeError{Name: name, Err: err}
	}

	for _, name := range names {
		seq, err := t.SendRequest(xgb.InternAtomRequest(false, name), true, true)
		if err != nil {
			return abort(name, err)
		}
		seqs = append(seqs, seq)
	}

	atoms := make([]xgb.Atom, len(names))
	for i := range names {
		seq := seqs[0]
		seqs = seqs[1:]

		buf, err := t.WaitForReply(seq)
		if err != nil {
			return abort(names[i], err)
		}
		atom, err := xgb.InternAtomReply(buf)
		t.Release(buf)
		if err != nil {
			return abort(names[i], err)
		}
		atoms[i] = atom
	}

	var fixed [atomNameCount]xgb.Atom
	copy(fixed[:], atoms)

	c := &Conn{t: t, roots: roots}
	c.atoms.Store(newAtomTable(fixed, atoms[atomNameCount:]))
	log.Debug("atoms interned")
	return c, nil
}

// Close forgets the atom table. Requests made afterwards fail with
// ErrClosed. The transport is left open.
func (c *Conn) Close() {
	c.atoms.Store(nil)
}

// Atoms returns the interned atoms, or nil once the Conn is closed.
func (c *Conn) Atoms() *AtomTable {
	return c.atoms.Load()
}

// Atom is shorthand for c.Atoms().Atom(name). It is AtomNone after Close.
func (c *Conn) Atom(name AtomName) xgb.Atom {
	if t := c.atoms.Load(); t != nil {
		return t.Atom(name)
	}
	return xgb.AtomNone
}

// Transport returns the borrowed transport.
func (c *Conn) Transport() Transport {
	return c.t
}

// Root returns the root window of screen, or WindowNone if there is no such
// screen.
func (c *Conn) Root(screen int) xgb.Window {
	if screen < 0 || screen >= len(c.roots) {
		return xgb.WindowNone
	}
	return c.roots[screen]
}

// ScreenCount is the number of screens of the display.
func (c *Conn) ScreenCount() int {
	return len(c.roots)
}

func (c *Conn) root(screen int) (xgb.Window, error) {
	if screen < 0 || screen >= len(c.roots) {
		return 0, errors.Errorf("ewmh: no screen %d (display has %d)",
			screen, len(c.roots))
	}
	return c.roots[screen], nil
}
