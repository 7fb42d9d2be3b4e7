package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/icccm"
	"github.com/BurntSushi/xgbewmh/xgb"
)

// target is what a property is read from or written to.
type target struct {
	screen    int
	window    xgb.Window
	unchecked bool
}

// pending is a request that has been sent. Calling it waits for the reply
// and formats it.
type pending func() (string, error)

// errNoValue is what an unchecked request yields when the server answered
// with an error or the reply did not decode.
var errNoValue = errors.New("no value")

type property struct {
	// root properties live on the root window of the screen. The others
	// need --window.
	root bool
	get  func(c *ewmh.Conn, t target) (pending, error)
	// set is nil for properties that cannot be written from the command
	// line.
	set func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error)
}

// query sends req the way t asks for and returns a pending reply.
func query[R any, PR ewmh.Reply[R]](c *ewmh.Conn, t target, req ewmh.ReplyRequest[R],
	format func(*R) string) (pending, error) {

	if t.unchecked {
		ck, err := ewmh.SendUnchecked[R, PR](c, req)
		if err != nil {
			return nil, err
		}
		return func() (string, error) {
			r, err := ewmh.WaitForReplyUnchecked[R, PR](c, ck)
			if err != nil {
				return "", err
			}
			if r == nil {
				return "", errNoValue
			}
			return format(r), nil
		}, nil
	}

	ck, err := ewmh.Send[R, PR](c, req)
	if err != nil {
		return nil, err
	}
	return func() (string, error) {
		r, err := ewmh.WaitForReply[R, PR](c, ck)
		if err != nil {
			return "", err
		}
		return format(r), nil
	}, nil
}

func window(w xgb.Window) string {
	return fmt.Sprintf("0x%x", uint32(w))
}

func windows(ws []xgb.Window) string {
	s := make([]string, len(ws))
	for i, w := range ws {
		s[i] = window(w)
	}
	return strings.Join(s, ", ")
}

func uints(vals ...uint32) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.FormatUint(uint64(v), 10)
	}
	return strings.Join(s, ", ")
}

func quoted(vals []string) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = strconv.Quote(v)
	}
	return strings.Join(s, ", ")
}

// atoms prints atoms by name where the table knows them.
func atoms(c *ewmh.Conn, as []xgb.Atom) string {
	table := c.Atoms()
	s := make([]string, len(as))
	for i, a := range as {
		if table != nil {
			if name, ok := table.Name(a); ok {
				s[i] = name
				continue
			}
		}
		s[i] = strconv.FormatUint(uint64(a), 10)
	}
	return strings.Join(s, ", ")
}

func parseUints(args []string, n int) ([]uint32, error) {
	if n >= 0 && len(args) != n {
		return nil, errors.Errorf("want %d values, got %d", n, len(args))
	}
	vals := make([]uint32, len(args))
	for i, arg := range args {
		v, err := strconv.ParseUint(arg, 0, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i+1)
		}
		vals[i] = uint32(v)
	}
	return vals, nil
}

func parseWindows(args []string) ([]xgb.Window, error) {
	vals, err := parseUints(args, -1)
	if err != nil {
		return nil, err
	}
	ws := make([]xgb.Window, len(vals))
	for i, v := range vals {
		ws[i] = xgb.Window(v)
	}
	return ws, nil
}

// parseAtoms takes atom names or numbers. Names must be ones the
// connection interned.
func parseAtoms(c *ewmh.Conn, args []string) ([]xgb.Atom, error) {
	as := make([]xgb.Atom, len(args))
	for i, arg := range args {
		if a, ok := c.Atoms().Lookup(arg); ok {
			as[i] = a
			continue
		}
		v, err := strconv.ParseUint(arg, 0, 32)
		if err != nil {
			return nil, errors.Errorf("unknown atom %q", arg)
		}
		as[i] = xgb.Atom(v)
	}
	return as, nil
}

func parseBool(args []string) (bool, error) {
	if len(args) != 1 {
		return false, errors.Errorf("want 1 value, got %d", len(args))
	}
	return strconv.ParseBool(args[0])
}

func oneString(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.Errorf("want 1 value, got %d", len(args))
	}
	return args[0], nil
}

var properties = map[string]property{
	"_NET_SUPPORTED": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetSupported{Screen: t.screen},
				func(r *ewmh.AtomsReply) string { return atoms(c, r.Atoms) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			as, err := parseAtoms(c, args)
			return ewmh.SetSupported{Screen: t.screen, Atoms: as}, err
		},
	},
	"_NET_CLIENT_LIST": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetClientList{Screen: t.screen},
				func(r *ewmh.WindowsReply) string { return windows(r.Windows) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			ws, err := parseWindows(args)
			return ewmh.SetClientList{Screen: t.screen, Windows: ws}, err
		},
	},
	"_NET_CLIENT_LIST_STACKING": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetClientListStacking{Screen: t.screen},
				func(r *ewmh.WindowsReply) string { return windows(r.Windows) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			ws, err := parseWindows(args)
			return ewmh.SetClientListStacking{Screen: t.screen, Windows: ws}, err
		},
	},
	"_NET_NUMBER_OF_DESKTOPS": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetNumberOfDesktops{Screen: t.screen},
				func(r *ewmh.CardinalReply) string { return uints(r.Value) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			v, err := parseUints(args, 1)
			if err != nil {
				return nil, err
			}
			return ewmh.SetNumberOfDesktops{Screen: t.screen, Number: v[0]}, nil
		},
	},
	"_NET_DESKTOP_GEOMETRY": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetDesktopGeometry{Screen: t.screen},
				func(r *ewmh.DesktopGeometryReply) string { return uints(r.Width, r.Height) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			v, err := parseUints(args, 2)
			if err != nil {
				return nil, err
			}
			return ewmh.SetDesktopGeometry{Screen: t.screen, Width: v[0], Height: v[1]}, nil
		},
	},
	"_NET_DESKTOP_VIEWPORT": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetDesktopViewport{Screen: t.screen},
				func(r *ewmh.ViewportReply) string {
					s := make([]string, len(r.Viewports))
					for i, v := range r.Viewports {
						s[i] = fmt.Sprintf("%d,%d", v.X, v.Y)
					}
					return strings.Join(s, " ")
				})
		},
	},
	"_NET_CURRENT_DESKTOP": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetCurrentDesktop{Screen: t.screen},
				func(r *ewmh.CardinalReply) string { return uints(r.Value) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			v, err := parseUints(args, 1)
			if err != nil {
				return nil, err
			}
			return ewmh.SetCurrentDesktop{Screen: t.screen, Desktop: v[0]}, nil
		},
	},
	"_NET_DESKTOP_NAMES": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetDesktopNames{Screen: t.screen},
				func(r *ewmh.StringsReply) string { return quoted(r.Values) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			return ewmh.SetDesktopNames{Screen: t.screen, Names: args}, nil
		},
	},
	"_NET_ACTIVE_WINDOW": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetActiveWindow{Screen: t.screen},
				func(r *ewmh.WindowReply) string { return window(r.Window) })
		},
	},
	"_NET_WORKAREA": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWorkarea{Screen: t.screen},
				func(r *ewmh.WorkareaReply) string {
					s := make([]string, len(r.Areas))
					for i, a := range r.Areas {
						s[i] = fmt.Sprintf("%dx%d+%d+%d", a.Width, a.Height, a.X, a.Y)
					}
					return strings.Join(s, " ")
				})
		},
	},
	"_NET_SUPPORTING_WM_CHECK": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetSupportingWmCheck{Window: c.Root(t.screen)},
				func(r *ewmh.WindowReply) string { return window(r.Window) })
		},
	},
	"_NET_VIRTUAL_ROOTS": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetVirtualRoots{Screen: t.screen},
				func(r *ewmh.WindowsReply) string { return windows(r.Windows) })
		},
	},
	"_NET_DESKTOP_LAYOUT": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetDesktopLayout{Screen: t.screen},
				func(r *ewmh.DesktopLayoutReply) string {
					return uints(uint32(r.Orientation), r.Columns, r.Rows, uint32(r.StartingCorner))
				})
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			v, err := parseUints(args, 4)
			if err != nil {
				return nil, err
			}
			return ewmh.SetDesktopLayout{
				Screen:         t.screen,
				Orientation:    ewmh.DesktopLayoutOrientation(v[0]),
				Columns:        v[1],
				Rows:           v[2],
				StartingCorner: ewmh.DesktopLayoutStartingCorner(v[3]),
			}, nil
		},
	},
	"_NET_SHOWING_DESKTOP": {
		root: true,
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetShowingDesktop{Screen: t.screen},
				func(r *ewmh.CardinalReply) string { return strconv.FormatBool(r.Value != 0) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			b, err := parseBool(args)
			return ewmh.SetShowingDesktop{Screen: t.screen, Showing: b}, err
		},
	},

	"_NET_WM_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmName{Window: t.window},
				func(r *ewmh.StringReply) string { return strconv.Quote(r.Value) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			s, err := oneString(args)
			return ewmh.SetWmName{Window: t.window, Name: s}, err
		},
	},
	"_NET_WM_VISIBLE_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmVisibleName{Window: t.window},
				func(r *ewmh.StringReply) string { return strconv.Quote(r.Value) })
		},
	},
	"_NET_WM_ICON_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmIconName{Window: t.window},
				func(r *ewmh.StringReply) string { return strconv.Quote(r.Value) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			s, err := oneString(args)
			return ewmh.SetWmIconName{Window: t.window, Name: s}, err
		},
	},
	"_NET_WM_VISIBLE_ICON_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmVisibleIconName{Window: t.window},
				func(r *ewmh.StringReply) string { return strconv.Quote(r.Value) })
		},
	},
	"_NET_WM_DESKTOP": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmDesktop{Window: t.window},
				func(r *ewmh.CardinalReply) string { return uints(r.Value) })
		},
	},
	"_NET_WM_WINDOW_TYPE": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmWindowType{Window: t.window},
				func(r *ewmh.AtomsReply) string { return atoms(c, r.Atoms) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			as, err := parseAtoms(c, args)
			return ewmh.SetWmWindowType{Window: t.window, Types: as}, err
		},
	},
	"_NET_WM_STATE": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmState{Window: t.window},
				func(r *ewmh.AtomsReply) string { return atoms(c, r.Atoms) })
		},
	},
	"_NET_WM_ALLOWED_ACTIONS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmAllowedActions{Window: t.window},
				func(r *ewmh.AtomsReply) string { return atoms(c, r.Atoms) })
		},
	},
	"_NET_WM_STRUT": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmStrut{Window: t.window},
				func(r *ewmh.StrutReply) string { return uints(r.Left, r.Right, r.Top, r.Bottom) })
		},
		set: func(c *ewmh.Conn, t target, args []string) (ewmh.VoidRequest, error) {
			v, err := parseUints(args, 4)
			if err != nil {
				return nil, err
			}
			return ewmh.SetWmStrut{Window: t.window, Left: v[0], Right: v[1], Top: v[2], Bottom: v[3]}, nil
		},
	},
	"_NET_WM_STRUT_PARTIAL": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmStrutPartial{Window: t.window},
				func(r *ewmh.StrutPartialReply) string {
					return uints(r.Left, r.Right, r.Top, r.Bottom,
						r.LeftStartY, r.LeftEndY, r.RightStartY, r.RightEndY,
						r.TopStartX, r.TopEndX, r.BottomStartX, r.BottomEndX)
				})
		},
	},
	"_NET_WM_ICON_GEOMETRY": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmIconGeometry{Window: t.window},
				func(r *ewmh.IconGeometryReply) string {
					return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
				})
		},
	},
	"_NET_WM_ICON": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmIcon{Window: t.window},
				func(r *ewmh.IconsReply) string {
					s := make([]string, len(r.Icons))
					for i, icon := range r.Icons {
						s[i] = fmt.Sprintf("%dx%d", icon.Width, icon.Height)
					}
					return strings.Join(s, " ")
				})
		},
	},
	"_NET_WM_PID": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmPid{Window: t.window},
				func(r *ewmh.CardinalReply) string { return uints(r.Value) })
		},
	},
	"_NET_WM_HANDLED_ICONS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmHandledIcons{Window: t.window},
				func(r *ewmh.CardinalReply) string { return strconv.FormatBool(r.Value != 0) })
		},
	},
	"_NET_WM_USER_TIME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmUserTime{Window: t.window},
				func(r *ewmh.CardinalReply) string { return uints(r.Value) })
		},
	},
	"_NET_WM_USER_TIME_WINDOW": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmUserTimeWindow{Window: t.window},
				func(r *ewmh.WindowReply) string { return window(r.Window) })
		},
	},
	"_NET_FRAME_EXTENTS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetFrameExtents{Window: t.window},
				func(r *ewmh.ExtentsReply) string { return uints(r.Left, r.Right, r.Top, r.Bottom) })
		},
	},
	"_NET_WM_FULLSCREEN_MONITORS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmFullscreenMonitors{Window: t.window},
				func(r *ewmh.FullscreenMonitorsReply) string {
					return uints(r.Top, r.Bottom, r.Left, r.Right)
				})
		},
	},
	"_NET_WM_SYNC_REQUEST_COUNTER": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, ewmh.GetWmSyncRequestCounter{Window: t.window},
				func(r *ewmh.SyncCounterReply) string { return strconv.FormatUint(r.Value, 10) })
		},
	},

	"WM_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmName{Window: t.window},
				func(r *icccm.TextReply) string { return strconv.Quote(r.Value) })
		},
	},
	"WM_ICON_NAME": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmIconName{Window: t.window},
				func(r *icccm.TextReply) string { return strconv.Quote(r.Value) })
		},
	},
	"WM_CLASS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmClass{Window: t.window},
				func(r *icccm.ClassReply) string { return quoted([]string{r.Instance, r.Class}) })
		},
	},
	"WM_CLIENT_MACHINE": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmClientMachine{Window: t.window},
				func(r *icccm.TextReply) string { return strconv.Quote(r.Value) })
		},
	},
	"WM_TRANSIENT_FOR": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmTransientFor{Window: t.window},
				func(r *ewmh.WindowReply) string { return window(r.Window) })
		},
	},
	"WM_PROTOCOLS": {
		get: func(c *ewmh.Conn, t target) (pending, error) {
			return query(c, t, icccm.GetWmProtocols{Window: t.window},
				func(r *ewmh.AtomsReply) string { return atoms(c, r.Atoms) })
		},
	},
}

// lookup finds a property by name, with or without the _NET_ prefix and in
// any case. A name spelled exactly as registered always wins; otherwise the
// EWMH property is preferred, so wm_name is _NET_WM_NAME and WM_NAME is the
// ICCCM one.
func lookup(name string) (string, property, error) {
	if p, ok := properties[name]; ok {
		return name, p, nil
	}
	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "_NET_") {
		if p, ok := properties["_NET_"+upper]; ok {
			return "_NET_" + upper, p, nil
		}
	}
	if p, ok := properties[upper]; ok {
		return upper, p, nil
	}
	return "", property{}, errors.Errorf("unknown property %q", name)
}

// propertyNames lists the properties of one kind, sorted.
func propertyNames(root bool) []string {
	var names []string
	for name, p := range properties {
		if p.root == root {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
