package ewmh

import (
	"github.com/pkg/errors"

	"github.com/BurntSushi/xgbewmh/xgb"
)

// Application window properties.

// GetWmName reads _NET_WM_NAME, the window title in UTF-8.
type GetWmName struct {
	WithReply[StringReply]
	Window xgb.Window
}

func (r GetWmName) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmName, c.Atom(UTF8String))
}

// SetWmName writes _NET_WM_NAME.
type SetWmName struct {
	WithoutReply
	Window xgb.Window
	Name   string
}

func (r SetWmName) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmName, c.Atom(UTF8String), 8, []byte(r.Name))
}

// GetWmVisibleName reads the title the window manager displays, if it
// differs from _NET_WM_NAME.
type GetWmVisibleName struct {
	WithReply[StringReply]
	Window xgb.Window
}

func (r GetWmVisibleName) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmVisibleName, c.Atom(UTF8String))
}

// SetWmVisibleName writes _NET_WM_VISIBLE_NAME.
type SetWmVisibleName struct {
	WithoutReply
	Window xgb.Window
	Name   string
}

func (r SetWmVisibleName) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmVisibleName, c.Atom(UTF8String), 8,
		[]byte(r.Name))
}

// GetWmIconName reads _NET_WM_ICON_NAME.
type GetWmIconName struct {
	WithReply[StringReply]
	Window xgb.Window
}

func (r GetWmIconName) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmIconName, c.Atom(UTF8String))
}

// SetWmIconName writes _NET_WM_ICON_NAME.
type SetWmIconName struct {
	WithoutReply
	Window xgb.Window
	Name   string
}

func (r SetWmIconName) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmIconName, c.Atom(UTF8String), 8,
		[]byte(r.Name))
}

// GetWmVisibleIconName reads _NET_WM_VISIBLE_ICON_NAME.
type GetWmVisibleIconName struct {
	WithReply[StringReply]
	Window xgb.Window
}

func (r GetWmVisibleIconName) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmVisibleIconName, c.Atom(UTF8String))
}

// SetWmVisibleIconName writes _NET_WM_VISIBLE_ICON_NAME.
type SetWmVisibleIconName struct {
	WithoutReply
	Window xgb.Window
	Name   string
}

func (r SetWmVisibleIconName) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmVisibleIconName, c.Atom(UTF8String), 8,
		[]byte(r.Name))
}

// GetWmDesktop reads the desktop of a window. 0xFFFFFFFF means all of
// them.
type GetWmDesktop struct {
	WithReply[CardinalReply]
	Window xgb.Window
}

func (r GetWmDesktop) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmDesktop, xgb.AtomCardinal)
}

// SetWmDesktop writes _NET_WM_DESKTOP. 0xFFFFFFFF means all desktops.
type SetWmDesktop struct {
	WithoutReply
	Window  xgb.Window
	Desktop uint32
}

func (r SetWmDesktop) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmDesktop, xgb.AtomCardinal, 32,
		Uint32Data(r.Desktop))
}

// GetWmWindowType reads the _NET_WM_WINDOW_TYPE_* atoms of a window, most
// preferred first.
type GetWmWindowType struct {
	WithReply[AtomsReply]
	Window xgb.Window
}

func (r GetWmWindowType) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmWindowType, xgb.AtomAtom)
}

// SetWmWindowType writes _NET_WM_WINDOW_TYPE, most preferred type first.
type SetWmWindowType struct {
	WithoutReply
	Window xgb.Window
	Types  []xgb.Atom
}

func (r SetWmWindowType) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmWindowType, xgb.AtomAtom, 32,
		atomData(r.Types))
}

// GetWmState reads _NET_WM_STATE.
type GetWmState struct {
	WithReply[AtomsReply]
	Window xgb.Window
}

func (r GetWmState) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmState, xgb.AtomAtom)
}

// SetWmState writes the property. Clients of a managed window send
// RequestChangeWmState instead.
type SetWmState struct {
	WithoutReply
	Window xgb.Window
	States []xgb.Atom
}

func (r SetWmState) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmState, xgb.AtomAtom, 32,
		atomData(r.States))
}

// GetWmAllowedActions reads _NET_WM_ALLOWED_ACTIONS.
type GetWmAllowedActions struct {
	WithReply[AtomsReply]
	Window xgb.Window
}

func (r GetWmAllowedActions) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmAllowedActions, xgb.AtomAtom)
}

// SetWmAllowedActions writes _NET_WM_ALLOWED_ACTIONS. Only the window manager
// sets it.
type SetWmAllowedActions struct {
	WithoutReply
	Window  xgb.Window
	Actions []xgb.Atom
}

func (r SetWmAllowedActions) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmAllowedActions, xgb.AtomAtom, 32,
		atomData(r.Actions))
}

// GetWmStrut reads _NET_WM_STRUT.
type GetWmStrut struct {
	WithReply[StrutReply]
	Window xgb.Window
}

func (r GetWmStrut) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmStrut, xgb.AtomCardinal)
}

// SetWmStrut writes _NET_WM_STRUT.
type SetWmStrut struct {
	WithoutReply
	Window                   xgb.Window
	Left, Right, Top, Bottom uint32
}

func (r SetWmStrut) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmStrut, xgb.AtomCardinal, 32,
		Uint32Data(r.Left, r.Right, r.Top, r.Bottom))
}

// GetWmStrutPartial reads _NET_WM_STRUT_PARTIAL.
type GetWmStrutPartial struct {
	WithReply[StrutPartialReply]
	Window xgb.Window
}

func (r GetWmStrutPartial) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmStrutPartial, xgb.AtomCardinal)
}

// SetWmStrutPartial writes _NET_WM_STRUT_PARTIAL.
type SetWmStrutPartial struct {
	WithoutReply
	Window xgb.Window
	Strut  StrutPartialReply
}

func (r SetWmStrutPartial) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmStrutPartial, xgb.AtomCardinal, 32,
		Uint32Data(r.Strut.values()...))
}

// GetWmIconGeometry reads _NET_WM_ICON_GEOMETRY.
type GetWmIconGeometry struct {
	WithReply[IconGeometryReply]
	Window xgb.Window
}

func (r GetWmIconGeometry) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmIconGeometry, xgb.AtomCardinal)
}

// SetWmIconGeometry writes _NET_WM_ICON_GEOMETRY.
type SetWmIconGeometry struct {
	WithoutReply
	Window   xgb.Window
	Geometry Geometry
}

func (r SetWmIconGeometry) Encode(c *Conn) ([]byte, error) {
	g := r.Geometry
	return c.changeProperty(r.Window, NetWmIconGeometry, xgb.AtomCardinal, 32,
		Uint32Data(g.X, g.Y, g.Width, g.Height))
}

// GetWmIcon reads every icon in _NET_WM_ICON.
type GetWmIcon struct {
	WithReply[IconsReply]
	Window xgb.Window
}

func (r GetWmIcon) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmIcon, xgb.AtomCardinal)
}

// SetWmIcon fails to encode an icon whose Data does not hold exactly
// Width*Height pixels.
type SetWmIcon struct {
	WithoutReply
	Window xgb.Window
	Icons  []Icon
}

func (r SetWmIcon) Encode(c *Conn) ([]byte, error) {
	var vals []uint32
	for i, icon := range r.Icons {
		if uint64(len(icon.Data)) != uint64(icon.Width)*uint64(icon.Height) {
			return nil, errors.Errorf("ewmh: icon %d: %dx%d with %d pixels",
				i, icon.Width, icon.Height, len(icon.Data))
		}
		vals = append(vals, icon.Width, icon.Height)
		vals = append(vals, icon.Data...)
	}
	return c.changeProperty(r.Window, NetWmIcon, xgb.AtomCardinal, 32,
		Uint32Data(vals...))
}

// GetWmPid reads _NET_WM_PID.
type GetWmPid struct {
	WithReply[CardinalReply]
	Window xgb.Window
}

func (r GetWmPid) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmPid, xgb.AtomCardinal)
}

// SetWmPid writes _NET_WM_PID.
type SetWmPid struct {
	WithoutReply
	Window xgb.Window
	Pid    uint32
}

func (r SetWmPid) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmPid, xgb.AtomCardinal, 32,
		Uint32Data(r.Pid))
}

// GetWmHandledIcons is set by pagers and taskbars that draw icons
// themselves.
type GetWmHandledIcons struct {
	WithReply[CardinalReply]
	Window xgb.Window
}

func (r GetWmHandledIcons) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmHandledIcons, xgb.AtomCardinal)
}

// SetWmHandledIcons writes _NET_WM_HANDLED_ICONS.
type SetWmHandledIcons struct {
	WithoutReply
	Window  xgb.Window
	Handled bool
}

func (r SetWmHandledIcons) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmHandledIcons, xgb.AtomCardinal, 32,
		Uint32Data(boolValue(r.Handled)))
}

// GetWmUserTime reads _NET_WM_USER_TIME.
type GetWmUserTime struct {
	WithReply[CardinalReply]
	Window xgb.Window
}

func (r GetWmUserTime) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmUserTime, xgb.AtomCardinal)
}

// SetWmUserTime writes _NET_WM_USER_TIME.
type SetWmUserTime struct {
	WithoutReply
	Window xgb.Window
	Time   xgb.Timestamp
}

func (r SetWmUserTime) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmUserTime, xgb.AtomCardinal, 32,
		Uint32Data(uint32(r.Time)))
}

// GetWmUserTimeWindow reads _NET_WM_USER_TIME_WINDOW.
type GetWmUserTimeWindow struct {
	WithReply[WindowReply]
	Window xgb.Window
}

func (r GetWmUserTimeWindow) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmUserTimeWindow, xgb.AtomWindow)
}

// SetWmUserTimeWindow writes _NET_WM_USER_TIME_WINDOW.
type SetWmUserTimeWindow struct {
	WithoutReply
	Window     xgb.Window
	TimeWindow xgb.Window
}

func (r SetWmUserTimeWindow) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmUserTimeWindow, xgb.AtomWindow, 32,
		Uint32Data(uint32(r.TimeWindow)))
}

// GetFrameExtents reads _NET_FRAME_EXTENTS.
type GetFrameExtents struct {
	WithReply[ExtentsReply]
	Window xgb.Window
}

func (r GetFrameExtents) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetFrameExtents, xgb.AtomCardinal)
}

// SetFrameExtents writes _NET_FRAME_EXTENTS.
type SetFrameExtents struct {
	WithoutReply
	Window                   xgb.Window
	Left, Right, Top, Bottom uint32
}

func (r SetFrameExtents) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetFrameExtents, xgb.AtomCardinal, 32,
		Uint32Data(r.Left, r.Right, r.Top, r.Bottom))
}

// GetWmFullscreenMonitors reads _NET_WM_FULLSCREEN_MONITORS.
type GetWmFullscreenMonitors struct {
	WithReply[FullscreenMonitorsReply]
	Window xgb.Window
}

func (r GetWmFullscreenMonitors) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmFullscreenMonitors, xgb.AtomCardinal)
}

// SetWmFullscreenMonitors writes _NET_WM_FULLSCREEN_MONITORS.
type SetWmFullscreenMonitors struct {
	WithoutReply
	Window                   xgb.Window
	Top, Bottom, Left, Right uint32
}

func (r SetWmFullscreenMonitors) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmFullscreenMonitors, xgb.AtomCardinal, 32,
		Uint32Data(r.Top, r.Bottom, r.Left, r.Right))
}

// GetWmSyncRequestCounter reads the XSync counter a window updates after
// handling _NET_WM_SYNC_REQUEST.
type GetWmSyncRequestCounter struct {
	WithReply[SyncCounterReply]
	Window xgb.Window
}

func (r GetWmSyncRequestCounter) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetWmSyncRequestCounter, xgb.AtomCardinal)
}

// SetWmSyncRequestCounter writes _NET_WM_SYNC_REQUEST_COUNTER.
type SetWmSyncRequestCounter struct {
	WithoutReply
	Window  xgb.Window
	Counter uint64
}

func (r SetWmSyncRequestCounter) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Window, NetWmSyncRequestCounter, xgb.AtomCardinal, 32,
		Uint32Data(uint32(r.Counter), uint32(r.Counter>>32)))
}
