package xgb_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BurntSushi/xgbewmh/xgb"
	"github.com/BurntSushi/xgbewmh/xgb/xgbtest"
)

func connect(t *testing.T, screens int) (*xgb.Conn, *xgbtest.Server, *xgbtest.NetConn, *xgbtest.TrackingAllocator) {
	t.Helper()
	alloc := xgbtest.NewTrackingAllocator()
	X, srv, nc, err := xgbtest.Connect(screens, xgb.WithAllocator(alloc))
	require.NoError(t, err)
	return X, srv, nc, alloc
}

// closeAndCheck closes X and makes sure every reply buffer went back to the
// allocator exactly once. While X is open its reader always holds one.
func closeAndCheck(t *testing.T, X *xgb.Conn, alloc *xgbtest.TrackingAllocator) {
	t.Helper()
	assert.LessOrEqual(t, alloc.Outstanding(), 1)
	X.Close()
	assert.Zero(t, alloc.Outstanding(), "buffers never released")
	assert.Zero(t, alloc.DoubleFrees(), "buffers released twice")
}

func internAtom(t *testing.T, X *xgb.Conn, name string) xgb.Atom {
	t.Helper()
	seq, err := X.SendRequest(xgb.InternAtomRequest(false, name), true, true)
	require.NoError(t, err)
	buf, err := X.WaitForReply(seq)
	require.NoError(t, err)
	defer X.Release(buf)
	atom, err := xgb.InternAtomReply(buf)
	require.NoError(t, err)
	return atom
}

func TestConnOpenClose(t *testing.T) {
	defer xgbtest.LeaksMonitor("open/close").CheckTesting(t)

	X, _, _, alloc := connect(t, 2)
	assert.Len(t, X.Roots(), 2)
	assert.Equal(t, X.Roots()[0], X.DefaultScreen().Root)

	closed := make(chan struct{})
	go func() {
		X.Close()
		close(closed)
	}()
	closeTimeout := time.Second
	select {
	case <-closed:
	case <-time.After(closeTimeout):
		t.Fatalf("*Conn.Close() not responded for %v", closeTimeout)
	}

	assert.Zero(t, alloc.Outstanding())
	assert.Zero(t, alloc.DoubleFrees())
}

func TestInternAtom(t *testing.T) {
	X, srv, _, alloc := connect(t, 1)
	defer X.Close()

	a := internAtom(t, X, "_NET_SUPPORTED")
	b := internAtom(t, X, "_NET_SUPPORTED")
	assert.Equal(t, a, b)
	want, ok := srv.Atom("_NET_SUPPORTED")
	require.True(t, ok)
	assert.Equal(t, want, a)
	assert.Equal(t, xgb.AtomWmName, internAtom(t, X, "WM_NAME"))
	closeAndCheck(t, X, alloc)
}

func TestCheckedReplyError(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	defer X.Close()

	seq, err := X.SendRequest(xgb.GetPropertyRequest(false, 0xdead, xgb.AtomWmName,
		xgb.AtomAny, 0, 1), true, true)
	require.NoError(t, err)

	buf, err := X.WaitForReply(seq)
	assert.Nil(t, buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xgb.BadWindow))
	assert.False(t, errors.Is(err, xgb.BadAtom))

	var perr *xgb.ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, seq, perr.SequenceId())
	assert.Equal(t, uint32(0xdead), perr.BadId())
	assert.Equal(t, byte(xgb.GetPropertyOpcode), perr.MajorOpcode)
}

func TestUncheckedReplyError(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	defer X.Close()

	seq, err := X.SendRequest(xgb.GetPropertyRequest(false, 0xdead, xgb.AtomWmName,
		xgb.AtomAny, 0, 1), false, true)
	require.NoError(t, err)

	buf, err := X.WaitForReplyUnchecked(seq)
	assert.NoError(t, err)
	assert.Nil(t, buf)

	ev, xerr := X.WaitForEvent()
	assert.Nil(t, ev)
	require.NotNil(t, xerr)
	assert.Equal(t, seq, xerr.SequenceId())
	assert.True(t, errors.Is(xerr, xgb.BadWindow))

	// The connection is still usable.
	internAtom(t, X, "UTF8_STRING")
}

func TestCheckRequest(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	defer X.Close()
	root := X.DefaultScreen().Root

	good, err := X.SendRequest(xgb.ChangePropertyRequest(xgb.PropModeReplace, root,
		xgb.AtomWmName, xgb.AtomString, 8, []byte("root")), true, false)
	require.NoError(t, err)
	bad, err := X.SendRequest(xgb.ChangePropertyRequest(xgb.PropModeReplace, 0xdead,
		xgb.AtomWmName, xgb.AtomString, 8, []byte("root")), true, false)
	require.NoError(t, err)

	err = X.CheckRequest(bad)
	assert.True(t, errors.Is(err, xgb.BadWindow), "got %v", err)
	assert.NoError(t, X.CheckRequest(good))
}

func TestUncheckedVoidErrorIsQueued(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	defer X.Close()

	seq, err := X.SendRequest(xgb.DeletePropertyRequest(0xdead, xgb.AtomWmName),
		false, false)
	require.NoError(t, err)
	require.NoError(t, X.Sync())

	ev, xerr := X.PollForEvent()
	assert.Nil(t, ev)
	require.NotNil(t, xerr)
	assert.Equal(t, seq, xerr.SequenceId())

	ev, xerr = X.PollForEvent()
	assert.Nil(t, ev)
	assert.Nil(t, xerr)
}

func TestCookieSingleUse(t *testing.T) {
	X, _, _, alloc := connect(t, 1)
	defer X.Close()

	seq, err := X.SendRequest(xgb.InternAtomRequest(false, "WM_PROTOCOLS"), true, true)
	require.NoError(t, err)
	buf, err := X.WaitForReply(seq)
	require.NoError(t, err)
	X.Release(buf)

	buf, err = X.WaitForReply(seq)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, xgb.ErrCookieConsumed))
	_, err = X.WaitForReplyUnchecked(seq)
	assert.True(t, errors.Is(err, xgb.ErrCookieConsumed))
	assert.True(t, errors.Is(X.CheckRequest(seq), xgb.ErrCookieConsumed))

	closeAndCheck(t, X, alloc)
}

func TestDiscard(t *testing.T) {
	X, _, _, alloc := connect(t, 1)
	defer X.Close()

	early, err := X.SendRequest(xgb.InternAtomRequest(false, "A"), true, true)
	require.NoError(t, err)
	require.NoError(t, X.Sync())
	X.Discard(early)

	late, err := X.SendRequest(xgb.InternAtomRequest(false, "B"), false, true)
	require.NoError(t, err)
	X.Discard(late)
	require.NoError(t, X.Sync())

	_, err = X.WaitForReply(early)
	assert.True(t, errors.Is(err, xgb.ErrCookieConsumed))
	closeAndCheck(t, X, alloc)
}

func TestConnectionFailure(t *testing.T) {
	X, _, nc, alloc := connect(t, 1)
	defer X.Close()

	require.NoError(t, nc.StallReads())
	checked, err := X.SendRequest(xgb.InternAtomRequest(false, "A"), true, true)
	require.NoError(t, err)
	unchecked, err := X.SendRequest(xgb.InternAtomRequest(false, "B"), false, true)
	require.NoError(t, err)
	require.NoError(t, nc.FailReads())

	_, err = X.WaitForReply(checked)
	var cerr *xgb.ConnError
	require.True(t, errors.As(err, &cerr), "got %v", err)
	assert.True(t, errors.Is(err, xgbtest.ErrRead))

	_, err = X.WaitForReplyUnchecked(unchecked)
	assert.True(t, errors.As(err, &cerr), "got %v", err)

	_, err = X.SendRequest(xgb.InternAtomRequest(false, "C"), true, true)
	assert.True(t, errors.As(err, &cerr), "got %v", err)
	assert.Equal(t, X.Err(), err)

	closeAndCheck(t, X, alloc)
}

func TestClose(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	X.Close()

	_, err := X.SendRequest(xgb.InternAtomRequest(false, "A"), true, true)
	assert.True(t, errors.Is(err, xgb.ErrClosed))

	ev, xerr := X.WaitForEvent()
	assert.Nil(t, ev)
	assert.Nil(t, xerr)

	// Closing twice is harmless.
	X.Close()
}

func TestClientMessageEvent(t *testing.T) {
	X, srv, _, _ := connect(t, 1)
	defer X.Close()
	srv.EchoClientMessages(true)
	root := X.DefaultScreen().Root

	atom := internAtom(t, X, "_NET_CURRENT_DESKTOP")
	msg := xgb.ClientMessageEvent{
		Format: 32,
		Window: root,
		Type:   atom,
		Data:   xgb.ClientMessageData32(3, 0),
	}
	seq, err := X.SendRequest(xgb.SendEventRequest(false, root,
		xgb.EventMaskSubstructureNotify|xgb.EventMaskSubstructureRedirect,
		msg.Bytes()), true, false)
	require.NoError(t, err)
	require.NoError(t, X.CheckRequest(seq))

	ev, xerr := X.WaitForEvent()
	require.Nil(t, xerr)
	cm, ok := ev.(xgb.ClientMessageEvent)
	require.True(t, ok, "got %T", ev)
	assert.Equal(t, root, cm.Window)
	assert.Equal(t, atom, cm.Type)
	assert.Equal(t, uint32(3), cm.Data.Data32[0])

	sent := srv.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, root, sent[0].Destination)
}

func TestSequenceWrap(t *testing.T) {
	if testing.Short() {
		t.Skip("sends more than 65536 requests")
	}
	X, srv, _, alloc := connect(t, 1)
	defer X.Close()
	root := X.DefaultScreen().Root

	n := 70000
	for i := 0; i < n; i++ {
		_, err := X.SendRequest(xgb.DeletePropertyRequest(root, xgb.AtomWmName),
			false, false)
		require.NoError(t, err)
	}

	// The server must have seen a sync, or this reply would be matched to
	// the wrong sequence number.
	seq, err := X.SendRequest(xgb.InternAtomRequest(false, "WM_NAME"), true, true)
	require.NoError(t, err)
	assert.Greater(t, seq, uint64(n))

	buf, err := X.WaitForReply(seq)
	require.NoError(t, err)
	atom, err := xgb.InternAtomReply(buf)
	X.Release(buf)
	require.NoError(t, err)
	assert.Equal(t, xgb.AtomWmName, atom)
	assert.GreaterOrEqual(t, srv.Requests(xgb.GetInputFocusOpcode), 1)

	// Errors past the wrap still carry the full sequence number.
	seq, err = X.SendRequest(xgb.GetPropertyRequest(false, 0xdead, xgb.AtomWmName,
		xgb.AtomAny, 0, 1), true, true)
	require.NoError(t, err)
	_, err = X.WaitForReply(seq)
	var perr *xgb.ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, seq, perr.Sequence)
	closeAndCheck(t, X, alloc)
}

func TestMaximumRequestLength(t *testing.T) {
	X, _, _, _ := connect(t, 1)
	defer X.Close()

	huge := make([]byte, 0xffff*4)
	_, err := X.SendRequest(xgb.ChangePropertyRequest(xgb.PropModeReplace,
		X.DefaultScreen().Root, xgb.AtomWmName, xgb.AtomString, 8, huge), false, false)
	assert.Error(t, err)
}
