package icccm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/icccm"
	"github.com/BurntSushi/xgbewmh/xgb"
	"github.com/BurntSushi/xgbewmh/xgb/xgbtest"
)

func setup(t *testing.T) (*ewmh.Conn, *xgbtest.Server) {
	t.Helper()
	X, srv, _, err := xgbtest.Connect(1)
	require.NoError(t, err)
	t.Cleanup(X.Close)

	c, err := ewmh.Connect(X)
	require.NoError(t, err)
	return c, srv
}

func get[R any, PR ewmh.Reply[R]](t *testing.T, c *ewmh.Conn, req ewmh.ReplyRequest[R]) (*R, error) {
	t.Helper()
	ck, err := ewmh.Send[R, PR](c, req)
	require.NoError(t, err)
	return ewmh.WaitForReply[R, PR](c, ck)
}

func TestText(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()
	utf8 := c.Atom(ewmh.UTF8String)

	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmName{Window: w, Name: "xterm"}))
	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmIconName{
		Window: w, Encoding: utf8, Name: "tërm",
	}))
	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmClientMachine{Window: w, Machine: "localhost"}))

	name, err := get[icccm.TextReply](t, c, icccm.GetWmName{Window: w})
	require.NoError(t, err)
	assert.Equal(t, icccm.TextReply{Encoding: xgb.AtomString, Value: "xterm"}, *name)

	icon, err := get[icccm.TextReply](t, c, icccm.GetWmIconName{Window: w})
	require.NoError(t, err)
	assert.Equal(t, icccm.TextReply{Encoding: utf8, Value: "tërm"}, *icon)

	machine, err := get[icccm.TextReply](t, c, icccm.GetWmClientMachine{Window: w})
	require.NoError(t, err)
	assert.Equal(t, "localhost", machine.Value)

	_, err = get[icccm.TextReply](t, c, icccm.GetWmName{Window: srv.CreateWindow()})
	assert.True(t, errors.Is(err, ewmh.ErrPropertyNotSet), "got %v", err)
}

func TestClass(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()

	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmClass{
		Window: w, Instance: "navigator", Class: "Firefox",
	}))
	p, ok := srv.Property(w, xgb.AtomWmClass)
	require.True(t, ok)
	assert.Equal(t, []byte("navigator\x00Firefox\x00"), p.Data)

	class, err := get[icccm.ClassReply](t, c, icccm.GetWmClass{Window: w})
	require.NoError(t, err)
	assert.Equal(t, icccm.ClassReply{Instance: "navigator", Class: "Firefox"}, *class)

	// Only an instance name.
	srv.SetProperty(w, xgb.AtomWmClass, xgb.AtomString, 8, []byte("solo\x00"))
	class, err = get[icccm.ClassReply](t, c, icccm.GetWmClass{Window: w})
	require.NoError(t, err)
	assert.Equal(t, icccm.ClassReply{Instance: "solo"}, *class)
}

func TestTransientForAndProtocols(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()
	parent := srv.CreateWindow()

	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmTransientFor{Window: w, For: parent}))
	tf, err := get[ewmh.WindowReply](t, c, icccm.GetWmTransientFor{Window: w})
	require.NoError(t, err)
	assert.Equal(t, parent, tf.Window)

	protocols := []xgb.Atom{c.Atom(ewmh.NetWmPing), c.Atom(ewmh.NetWmSyncRequest)}
	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmProtocols{Window: w, Protocols: protocols}))
	got, err := get[ewmh.AtomsReply](t, c, icccm.GetWmProtocols{Window: w})
	require.NoError(t, err)
	assert.Equal(t, protocols, got.Atoms)

	_, ok := srv.Property(w, c.Atom(ewmh.WmProtocols))
	assert.True(t, ok)
}

func TestWmHints(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()

	hints := icccm.WmHints{
		Flags:        icccm.HintInput | icccm.HintState | icccm.HintWindowGroup | icccm.HintUrgency,
		Input:        true,
		InitialState: icccm.WmStateIconic,
		IconX:        -5,
		WindowGroup:  w,
	}
	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmHints{Window: w, Hints: hints}))
	got, err := get[icccm.WmHints](t, c, icccm.GetWmHints{Window: w})
	require.NoError(t, err)
	assert.Equal(t, hints, *got)
	assert.True(t, got.Urgent())

	// Eight values, from before the window group was added.
	srv.SetProperty(w, xgb.AtomWmHints, xgb.AtomWmHints, 32,
		ewmh.Uint32Data(uint32(icccm.HintInput), 1, 0, 0, 0, 0, 0, 0))
	got, err = get[icccm.WmHints](t, c, icccm.GetWmHints{Window: w})
	require.NoError(t, err)
	assert.True(t, got.Input)
	assert.Equal(t, xgb.WindowNone, got.WindowGroup)

	srv.SetProperty(w, xgb.AtomWmHints, xgb.AtomWmHints, 32, ewmh.Uint32Data(1, 1))
	_, err = get[icccm.WmHints](t, c, icccm.GetWmHints{Window: w})
	var derr *ewmh.DecodeError
	assert.True(t, errors.As(err, &derr), "got %v", err)
}

func TestNormalHints(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()

	hints := icccm.SizeHints{
		Flags:      icccm.SizeHintPMinSize | icccm.SizeHintPResizeInc | icccm.SizeHintPBaseSize | icccm.SizeHintPWinGravity,
		MinWidth:   100,
		MinHeight:  50,
		WidthInc:   7,
		HeightInc:  14,
		BaseWidth:  4,
		BaseHeight: 4,
		WinGravity: 1,
	}
	require.NoError(t, ewmh.SendAndCheck(c, icccm.SetWmNormalHints{Window: w, Hints: hints}))
	got, err := get[icccm.SizeHints](t, c, icccm.GetWmNormalHints{Window: w})
	require.NoError(t, err)
	assert.Equal(t, hints, *got)

	// Fifteen values: no base size or gravity, whatever the flags say.
	vals := make([]uint32, 15)
	vals[0] = uint32(icccm.SizeHintPMinSize | icccm.SizeHintPBaseSize | icccm.SizeHintPWinGravity)
	vals[5], vals[6] = 10, 20
	srv.SetProperty(w, xgb.AtomWmNormalHints, xgb.AtomWmSizeHints, 32, ewmh.Uint32Data(vals...))
	got, err = get[icccm.SizeHints](t, c, icccm.GetWmNormalHints{Window: w})
	require.NoError(t, err)
	assert.Equal(t, icccm.SizeHintPMinSize, got.Flags)
	assert.Equal(t, int32(10), got.MinWidth)
	assert.Equal(t, int32(20), got.MinHeight)

	srv.SetProperty(w, xgb.AtomWmNormalHints, xgb.AtomCardinal, 32, ewmh.Uint32Data(vals...))
	_, err = get[icccm.SizeHints](t, c, icccm.GetWmNormalHints{Window: w})
	assert.Error(t, err)
}
