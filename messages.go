package ewmh

import (
	"github.com/BurntSushi/xgbewmh/xgb"
)

// Client messages. A pager or application asks the window manager to change
// state by sending one of these to the root window, instead of writing the
// property itself. None of them has a reply.

// rootMessageMask is how root window messages reach the window manager.
const rootMessageMask = xgb.EventMaskSubstructureNotify | xgb.EventMaskSubstructureRedirect

func (c *Conn) rootMessage(screen int, window xgb.Window, typ AtomName,
	data ...uint32) ([]byte, error) {

	root, err := c.root(screen)
	if err != nil {
		return nil, err
	}
	if window == xgb.WindowNone {
		window = root
	}
	ev := xgb.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   c.Atom(typ),
		Data:   xgb.ClientMessageData32(data...),
	}
	return xgb.SendEventRequest(false, root, rootMessageMask, ev.Bytes()), nil
}

// RequestChangeNumberOfDesktops asks the window manager for Number desktops.
type RequestChangeNumberOfDesktops struct {
	WithoutReply
	Screen int
	Number uint32
}

func (r RequestChangeNumberOfDesktops) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, 0, NetNumberOfDesktops, r.Number)
}

// RequestChangeDesktopGeometry asks the window manager to resize the desktop.
type RequestChangeDesktopGeometry struct {
	WithoutReply
	Screen        int
	Width, Height uint32
}

func (r RequestChangeDesktopGeometry) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, 0, NetDesktopGeometry, r.Width, r.Height)
}

// RequestChangeDesktopViewport moves the viewport of the current desktop.
type RequestChangeDesktopViewport struct {
	WithoutReply
	Screen int
	X, Y   uint32
}

func (r RequestChangeDesktopViewport) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, 0, NetDesktopViewport, r.X, r.Y)
}

// RequestChangeCurrentDesktop asks the window manager to switch to Desktop.
type RequestChangeCurrentDesktop struct {
	WithoutReply
	Screen  int
	Desktop uint32
	Time    xgb.Timestamp
}

func (r RequestChangeCurrentDesktop) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, 0, NetCurrentDesktop, r.Desktop, uint32(r.Time))
}

// RequestChangeActiveWindow asks for Window to be activated. Current is the
// caller's currently active window, if it has one.
type RequestChangeActiveWindow struct {
	WithoutReply
	Screen  int
	Window  xgb.Window
	Source  ClientSourceType
	Time    xgb.Timestamp
	Current xgb.Window
}

func (r RequestChangeActiveWindow) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetActiveWindow,
		uint32(r.Source), uint32(r.Time), uint32(r.Current))
}

// RequestChangeShowingDesktop asks the window manager to enter or leave
// showing the desktop mode.
type RequestChangeShowingDesktop struct {
	WithoutReply
	Screen int
	Show   bool
}

func (r RequestChangeShowingDesktop) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, 0, NetShowingDesktop, boolValue(r.Show))
}

// RequestCloseWindow asks the window manager to close Window.
type RequestCloseWindow struct {
	WithoutReply
	Screen int
	Window xgb.Window
	Time   xgb.Timestamp
	Source ClientSourceType
}

func (r RequestCloseWindow) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetCloseWindow,
		uint32(r.Time), uint32(r.Source))
}

// RequestMoveresizeWindow moves and resizes Window as if by a
// ConfigureRequest. Flags selects which of the geometry fields are used.
type RequestMoveresizeWindow struct {
	WithoutReply
	Screen              int
	Window              xgb.Window
	Gravity             uint32
	Source              ClientSourceType
	Flags               MoveresizeFlags
	X, Y, Width, Height uint32
}

func (r RequestMoveresizeWindow) Encode(c *Conn) ([]byte, error) {
	flags := r.Gravity&0xff | uint32(r.Flags) | uint32(r.Source)<<12
	return c.rootMessage(r.Screen, r.Window, NetMoveresizeWindow,
		flags, r.X, r.Y, r.Width, r.Height)
}

// RequestWmMoveresize starts or cancels an interactive move or resize.
type RequestWmMoveresize struct {
	WithoutReply
	Screen       int
	Window       xgb.Window
	XRoot, YRoot uint32
	Direction    MoveresizeDirection
	Button       uint32
	Source       ClientSourceType
}

func (r RequestWmMoveresize) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetWmMoveresize,
		r.XRoot, r.YRoot, uint32(r.Direction), r.Button, uint32(r.Source))
}

// RequestRestackWindow restacks Window relative to Sibling. Detail is a
// stack mode as in ConfigureWindow.
type RequestRestackWindow struct {
	WithoutReply
	Screen  int
	Window  xgb.Window
	Sibling xgb.Window
	Detail  uint32
	Source  ClientSourceType
}

func (r RequestRestackWindow) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetRestackWindow,
		uint32(r.Source), uint32(r.Sibling), r.Detail)
}

// RequestFrameExtents asks the window manager to set _NET_FRAME_EXTENTS on
// a window before mapping it.
type RequestFrameExtents struct {
	WithoutReply
	Screen int
	Window xgb.Window
}

func (r RequestFrameExtents) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetRequestFrameExtents)
}

// RequestChangeWmDesktop asks the window manager to move Window to Desktop.
type RequestChangeWmDesktop struct {
	WithoutReply
	Screen  int
	Window  xgb.Window
	Desktop uint32
	Source  ClientSourceType
}

func (r RequestChangeWmDesktop) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetWmDesktop,
		r.Desktop, uint32(r.Source))
}

// RequestChangeWmState adds, removes or toggles one or two
// _NET_WM_STATE_* atoms. Second may be AtomNone.
type RequestChangeWmState struct {
	WithoutReply
	Screen        int
	Window        xgb.Window
	Action        WmStateAction
	First, Second xgb.Atom
	Source        ClientSourceType
}

func (r RequestChangeWmState) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetWmState,
		uint32(r.Action), uint32(r.First), uint32(r.Second), uint32(r.Source))
}

// RequestChangeWmFullscreenMonitors asks the window manager which monitors a
// fullscreen Window spans.
type RequestChangeWmFullscreenMonitors struct {
	WithoutReply
	Screen                   int
	Window                   xgb.Window
	Top, Bottom, Left, Right uint32
	Source                   ClientSourceType
}

func (r RequestChangeWmFullscreenMonitors) Encode(c *Conn) ([]byte, error) {
	return c.rootMessage(r.Screen, r.Window, NetWmFullscreenMonitors,
		r.Top, r.Bottom, r.Left, r.Right, uint32(r.Source))
}

// protocolMessage is a WM_PROTOCOLS message sent straight to a client.
func (c *Conn) protocolMessage(window xgb.Window, protocol AtomName,
	data ...uint32) []byte {

	ev := xgb.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   c.Atom(WmProtocols),
		Data:   xgb.ClientMessageData32(append([]uint32{uint32(c.Atom(protocol))}, data...)...),
	}
	return xgb.SendEventRequest(false, window, 0, ev.Bytes())
}

// SendWmPing pings a client that lists _NET_WM_PING in WM_PROTOCOLS. The
// client answers by sending the message back to the root window.
type SendWmPing struct {
	WithoutReply
	Window xgb.Window
	Time   xgb.Timestamp
}

func (r SendWmPing) Encode(c *Conn) ([]byte, error) {
	return c.protocolMessage(r.Window, NetWmPing, uint32(r.Time), uint32(r.Window)), nil
}

// SendWmSyncRequest tells a client which value to set its
// _NET_WM_SYNC_REQUEST_COUNTER to once it has redrawn after the next
// ConfigureNotify.
type SendWmSyncRequest struct {
	WithoutReply
	Window  xgb.Window
	Time    xgb.Timestamp
	Counter uint64
}

func (r SendWmSyncRequest) Encode(c *Conn) ([]byte, error) {
	return c.protocolMessage(r.Window, NetWmSyncRequest, uint32(r.Time),
		uint32(r.Counter), uint32(r.Counter>>32)), nil
}
