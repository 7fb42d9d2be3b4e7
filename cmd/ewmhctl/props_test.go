package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ewmh "github.com/BurntSushi/xgbewmh"
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

func TestLookup(t *testing.T) {
	tests := []struct {
		arg  string
		want string
		root bool
	}{
		{"_NET_WM_NAME", "_NET_WM_NAME", false},
		{"_net_wm_name", "_NET_WM_NAME", false},
		{"wm_name", "_NET_WM_NAME", false},
		{"Wm_Icon_Name", "_NET_WM_ICON_NAME", false},
		{"WM_NAME", "WM_NAME", false},
		{"WM_ICON_NAME", "WM_ICON_NAME", false},
		{"wm_class", "WM_CLASS", false},
		{"wm_transient_for", "WM_TRANSIENT_FOR", false},
		{"number_of_desktops", "_NET_NUMBER_OF_DESKTOPS", true},
	}
	for _, tt := range tests {
		name, p, err := lookup(tt.arg)
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, name, tt.arg)
		assert.Equal(t, tt.root, p.root, tt.arg)
	}

	_, _, err := lookup("_NET_BOGUS")
	assert.Error(t, err)
}

func TestGetShorthandPrefersEWMH(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()
	win := target{window: w}

	require.NoError(t, set(c, win, "wm_name", []string{"ewmh"}))
	srv.SetProperty(w, xgb.AtomWmName, xgb.AtomString, 8, []byte("icccm"))

	var out bytes.Buffer
	require.NoError(t, get(&out, c, win, []string{"wm_name", "WM_NAME"}))
	assert.Equal(t, "_NET_WM_NAME = \"ewmh\"\nWM_NAME = \"icccm\"\n", out.String())
}

func TestSetAndGet(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()
	root := target{}
	win := target{window: w}

	require.NoError(t, set(c, root, "number_of_desktops", []string{"4"}))
	require.NoError(t, set(c, root, "desktop_names", []string{"one", "two"}))
	require.NoError(t, set(c, root, "_NET_SUPPORTED", []string{"_NET_WM_NAME", "_NET_WM_PID"}))
	require.NoError(t, set(c, win, "_NET_WM_NAME", []string{"editor"}))
	require.NoError(t, set(c, win, "_NET_WM_STRUT", []string{"0", "0", "0x18", "0"}))

	var out bytes.Buffer
	require.NoError(t, get(&out, c, win, []string{
		"number_of_desktops", "desktop_names", "supported", "wm_name", "wm_strut",
	}))
	assert.Equal(t, strings.Join([]string{
		"_NET_NUMBER_OF_DESKTOPS = 4",
		`_NET_DESKTOP_NAMES = "one", "two"`,
		"_NET_SUPPORTED = _NET_WM_NAME, _NET_WM_PID",
		`_NET_WM_NAME = "editor"`,
		"_NET_WM_STRUT = 0, 0, 24, 0",
	}, "\n")+"\n", out.String())
}

func TestSetErrors(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()

	assert.Error(t, set(c, target{}, "_NET_WM_NAME", []string{"x"}), "needs a window")
	assert.Error(t, set(c, target{}, "_NET_ACTIVE_WINDOW", []string{"1"}), "read only")
	assert.Error(t, set(c, target{}, "number_of_desktops", []string{"four"}))
	assert.Error(t, set(c, target{}, "desktop_geometry", []string{"1"}))
	assert.Error(t, set(c, target{window: w}, "_NET_WM_WINDOW_TYPE", []string{"_NET_NOPE"}))

	err := set(c, target{window: 0xdead}, "_NET_WM_NAME", []string{"x"})
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	c, srv := setup(t)
	w := srv.CreateWindow()

	require.NoError(t, set(c, target{}, "current_desktop", []string{"2"}))
	require.NoError(t, set(c, target{}, "showing_desktop", []string{"true"}))
	require.NoError(t, ewmh.SendAndCheck(c, ewmh.SetWmPid{Window: w, Pid: 77}))
	srv.SetProperty(w, xgb.AtomWmClass, xgb.AtomString, 8, []byte("term\x00Term\x00"))

	for _, unchecked := range []bool{false, true} {
		var out bytes.Buffer
		require.NoError(t, dump(&out, c, target{window: w, unchecked: unchecked}))
		assert.Equal(t, strings.Join([]string{
			"_NET_CURRENT_DESKTOP = 2",
			"_NET_SHOWING_DESKTOP = true",
			"WM_CLASS = \"term\", \"Term\"",
			"_NET_WM_PID = 77",
		}, "\n")+"\n", out.String(), "unchecked=%v", unchecked)
	}

	// Without a window only root properties are read.
	var out bytes.Buffer
	require.NoError(t, dump(&out, c, target{}))
	assert.NotContains(t, out.String(), "_NET_WM_PID")
}

func TestPrintAtoms(t *testing.T) {
	c, _ := setup(t)
	var out bytes.Buffer
	require.NoError(t, printAtoms(&out, c))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, c.Atoms().Len())
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "_NET_WM_CM_S0"))
}
