package ewmh

import (
	"github.com/BurntSushi/xgbewmh/xgb"
)

// Root window properties. Each is read and written on the root window of
// Screen.

// GetSupported asks which hints the window manager supports.
type GetSupported struct {
	WithReply[AtomsReply]
	Screen int
}

func (r GetSupported) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetSupported, xgb.AtomAtom)
}

// SetSupported writes _NET_SUPPORTED. Window managers set it to the hints
// they implement.
type SetSupported struct {
	WithoutReply
	Screen int
	Atoms  []xgb.Atom
}

func (r SetSupported) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetSupported, xgb.AtomAtom, 32,
		atomData(r.Atoms))
}

// GetClientList asks for the managed windows in initial mapping order.
type GetClientList struct {
	WithReply[WindowsReply]
	Screen int
}

func (r GetClientList) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetClientList, xgb.AtomWindow)
}

// SetClientList writes _NET_CLIENT_LIST.
type SetClientList struct {
	WithoutReply
	Screen  int
	Windows []xgb.Window
}

func (r SetClientList) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetClientList, xgb.AtomWindow, 32,
		windowData(r.Windows))
}

// GetClientListStacking asks for the managed windows in bottom-to-top
// stacking order.
type GetClientListStacking struct {
	WithReply[WindowsReply]
	Screen int
}

func (r GetClientListStacking) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetClientListStacking, xgb.AtomWindow)
}

// SetClientListStacking writes _NET_CLIENT_LIST_STACKING, bottom to top.
type SetClientListStacking struct {
	WithoutReply
	Screen  int
	Windows []xgb.Window
}

func (r SetClientListStacking) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetClientListStacking, xgb.AtomWindow, 32,
		windowData(r.Windows))
}

// GetNumberOfDesktops reads _NET_NUMBER_OF_DESKTOPS.
type GetNumberOfDesktops struct {
	WithReply[CardinalReply]
	Screen int
}

func (r GetNumberOfDesktops) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetNumberOfDesktops, xgb.AtomCardinal)
}

// SetNumberOfDesktops writes the property directly. Pagers ask the window
// manager instead, with RequestChangeNumberOfDesktops.
type SetNumberOfDesktops struct {
	WithoutReply
	Screen int
	Number uint32
}

func (r SetNumberOfDesktops) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetNumberOfDesktops, xgb.AtomCardinal, 32,
		Uint32Data(r.Number))
}

// GetDesktopGeometry reads _NET_DESKTOP_GEOMETRY, the size of a large
// desktop.
type GetDesktopGeometry struct {
	WithReply[DesktopGeometryReply]
	Screen int
}

func (r GetDesktopGeometry) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetDesktopGeometry, xgb.AtomCardinal)
}

// SetDesktopGeometry writes _NET_DESKTOP_GEOMETRY.
type SetDesktopGeometry struct {
	WithoutReply
	Screen        int
	Width, Height uint32
}

func (r SetDesktopGeometry) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetDesktopGeometry, xgb.AtomCardinal, 32,
		Uint32Data(r.Width, r.Height))
}

// GetDesktopViewport reads _NET_DESKTOP_VIEWPORT, one viewport per desktop.
type GetDesktopViewport struct {
	WithReply[ViewportReply]
	Screen int
}

func (r GetDesktopViewport) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetDesktopViewport, xgb.AtomCardinal)
}

// SetDesktopViewport writes _NET_DESKTOP_VIEWPORT.
type SetDesktopViewport struct {
	WithoutReply
	Screen    int
	Viewports []Coordinates
}

func (r SetDesktopViewport) Encode(c *Conn) ([]byte, error) {
	vals := make([]uint32, 0, 2*len(r.Viewports))
	for _, v := range r.Viewports {
		vals = append(vals, v.X, v.Y)
	}
	return c.changeRootProperty(r.Screen, NetDesktopViewport, xgb.AtomCardinal, 32,
		Uint32Data(vals...))
}

// GetCurrentDesktop reads _NET_CURRENT_DESKTOP, counting from zero.
type GetCurrentDesktop struct {
	WithReply[CardinalReply]
	Screen int
}

func (r GetCurrentDesktop) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetCurrentDesktop, xgb.AtomCardinal)
}

// SetCurrentDesktop writes _NET_CURRENT_DESKTOP. Pagers should send
// RequestChangeCurrentDesktop instead.
type SetCurrentDesktop struct {
	WithoutReply
	Screen  int
	Desktop uint32
}

func (r SetCurrentDesktop) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetCurrentDesktop, xgb.AtomCardinal, 32,
		Uint32Data(r.Desktop))
}

// GetDesktopNames reads _NET_DESKTOP_NAMES.
type GetDesktopNames struct {
	WithReply[StringsReply]
	Screen int
}

func (r GetDesktopNames) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetDesktopNames, c.Atom(UTF8String))
}

// SetDesktopNames writes every name NUL terminated.
type SetDesktopNames struct {
	WithoutReply
	Screen int
	Names  []string
}

func (r SetDesktopNames) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetDesktopNames, c.Atom(UTF8String), 8,
		joinNul(r.Names))
}

// GetActiveWindow reads _NET_ACTIVE_WINDOW. A window manager sets it to
// xgb.WindowNone when no window is active.
type GetActiveWindow struct {
	WithReply[WindowReply]
	Screen int
}

func (r GetActiveWindow) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetActiveWindow, xgb.AtomWindow)
}

// SetActiveWindow writes _NET_ACTIVE_WINDOW.
type SetActiveWindow struct {
	WithoutReply
	Screen int
	Window xgb.Window
}

func (r SetActiveWindow) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetActiveWindow, xgb.AtomWindow, 32,
		Uint32Data(uint32(r.Window)))
}

// GetWorkarea reads _NET_WORKAREA, one geometry per desktop.
type GetWorkarea struct {
	WithReply[WorkareaReply]
	Screen int
}

func (r GetWorkarea) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetWorkarea, xgb.AtomCardinal)
}

// SetWorkarea writes _NET_WORKAREA.
type SetWorkarea struct {
	WithoutReply
	Screen int
	Areas  []Geometry
}

func (r SetWorkarea) Encode(c *Conn) ([]byte, error) {
	vals := make([]uint32, 0, 4*len(r.Areas))
	for _, a := range r.Areas {
		vals = append(vals, a.X, a.Y, a.Width, a.Height)
	}
	return c.changeRootProperty(r.Screen, NetWorkarea, xgb.AtomCardinal, 32,
		Uint32Data(vals...))
}

// GetSupportingWmCheck reads _NET_SUPPORTING_WM_CHECK from Window, which is
// the root window or the child window it points to.
type GetSupportingWmCheck struct {
	WithReply[WindowReply]
	Window xgb.Window
}

func (r GetSupportingWmCheck) Encode(c *Conn) ([]byte, error) {
	return c.getProperty(r.Window, NetSupportingWmCheck, xgb.AtomWindow)
}

// SetSupportingWmCheck makes Parent point to Child. A window manager does
// this for both the root window and the child.
type SetSupportingWmCheck struct {
	WithoutReply
	Parent, Child xgb.Window
}

func (r SetSupportingWmCheck) Encode(c *Conn) ([]byte, error) {
	return c.changeProperty(r.Parent, NetSupportingWmCheck, xgb.AtomWindow, 32,
		Uint32Data(uint32(r.Child)))
}

// GetVirtualRoots reads _NET_VIRTUAL_ROOTS.
type GetVirtualRoots struct {
	WithReply[WindowsReply]
	Screen int
}

func (r GetVirtualRoots) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetVirtualRoots, xgb.AtomWindow)
}

// SetVirtualRoots writes _NET_VIRTUAL_ROOTS.
type SetVirtualRoots struct {
	WithoutReply
	Screen  int
	Windows []xgb.Window
}

func (r SetVirtualRoots) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetVirtualRoots, xgb.AtomWindow, 32,
		windowData(r.Windows))
}

// GetDesktopLayout reads _NET_DESKTOP_LAYOUT, set by a pager.
type GetDesktopLayout struct {
	WithReply[DesktopLayoutReply]
	Screen int
}

func (r GetDesktopLayout) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetDesktopLayout, xgb.AtomCardinal)
}

// SetDesktopLayout is set by a pager. One of Columns and Rows may be zero,
// to be computed from the number of desktops.
type SetDesktopLayout struct {
	WithoutReply
	Screen         int
	Orientation    DesktopLayoutOrientation
	Columns, Rows  uint32
	StartingCorner DesktopLayoutStartingCorner
}

func (r SetDesktopLayout) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetDesktopLayout, xgb.AtomCardinal, 32,
		Uint32Data(uint32(r.Orientation), r.Columns, r.Rows, uint32(r.StartingCorner)))
}

// GetShowingDesktop reads _NET_SHOWING_DESKTOP.
type GetShowingDesktop struct {
	WithReply[CardinalReply]
	Screen int
}

func (r GetShowingDesktop) Encode(c *Conn) ([]byte, error) {
	return c.getRootProperty(r.Screen, NetShowingDesktop, xgb.AtomCardinal)
}

// SetShowingDesktop writes _NET_SHOWING_DESKTOP.
type SetShowingDesktop struct {
	WithoutReply
	Screen  int
	Showing bool
}

func (r SetShowingDesktop) Encode(c *Conn) ([]byte, error) {
	return c.changeRootProperty(r.Screen, NetShowingDesktop, xgb.AtomCardinal, 32,
		Uint32Data(boolValue(r.Showing)))
}

func boolValue(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
