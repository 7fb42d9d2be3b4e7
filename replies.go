package ewmh

import (
	"github.com/BurntSushi/xgbewmh/xgb"
)

// WindowReply is a single WINDOW value.
type WindowReply struct {
	Window xgb.Window
}

func (r *WindowReply) Decode(c *Conn, buf []byte) error {
	p, err := parseExpect("WINDOW", buf, xgb.AtomWindow, 32)
	if err != nil {
		return err
	}
	if p.Count < 1 {
		return decodeErrorf("WINDOW", "no value")
	}
	r.Window = xgb.Window(xgb.Get32(p.Value))
	return nil
}

// CardinalReply is a single CARDINAL value.
type CardinalReply struct {
	Value uint32
}

func (r *CardinalReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL", buf, 1)
	if err != nil {
		return err
	}
	r.Value = vals[0]
	return nil
}

// WindowsReply is a list of windows.
type WindowsReply struct {
	Windows []xgb.Window
}

func (r *WindowsReply) Decode(c *Conn, buf []byte) error {
	p, err := parseExpect("WINDOW[]", buf, xgb.AtomWindow, 32)
	if err != nil {
		return err
	}
	r.Windows = make([]xgb.Window, p.Count)
	for i := range r.Windows {
		r.Windows[i] = xgb.Window(xgb.Get32(p.Value[i*4:]))
	}
	return nil
}

// AtomsReply is a list of atoms.
type AtomsReply struct {
	Atoms []xgb.Atom
}

func (r *AtomsReply) Decode(c *Conn, buf []byte) error {
	p, err := parseExpect("ATOM[]", buf, xgb.AtomAtom, 32)
	if err != nil {
		return err
	}
	r.Atoms = make([]xgb.Atom, p.Count)
	for i := range r.Atoms {
		r.Atoms[i] = xgb.Atom(xgb.Get32(p.Value[i*4:]))
	}
	return nil
}

// CardinalsReply is a list of CARDINAL values.
type CardinalsReply struct {
	Values []uint32
}

func (r *CardinalsReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[]", buf, 0)
	if err != nil {
		return err
	}
	r.Values = vals
	return nil
}

// StringReply is a UTF8_STRING value.
type StringReply struct {
	Value string
}

func (r *StringReply) Decode(c *Conn, buf []byte) error {
	p, err := parseExpect("UTF8_STRING", buf, c.Atom(UTF8String), 8)
	if err != nil {
		return err
	}
	r.Value = p.String()
	return nil
}

// StringsReply is a list of NUL separated UTF8_STRING values.
type StringsReply struct {
	Values []string
}

func (r *StringsReply) Decode(c *Conn, buf []byte) error {
	p, err := parseExpect("UTF8_STRING[]", buf, c.Atom(UTF8String), 8)
	if err != nil {
		return err
	}
	r.Values = p.Strings()
	return nil
}

// SyncCounterReply is a 64 bit value stored as two CARDINALs, low half
// first.
type SyncCounterReply struct {
	Value uint64
}

func (r *SyncCounterReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[2]", buf, 2)
	if err != nil {
		return err
	}
	r.Value = uint64(vals[0]) | uint64(vals[1])<<32
	return nil
}

// DesktopGeometryReply is the size of the desktop, shared by all desktops.
type DesktopGeometryReply struct {
	Width, Height uint32
}

func (r *DesktopGeometryReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[2]", buf, 2)
	if err != nil {
		return err
	}
	r.Width, r.Height = vals[0], vals[1]
	return nil
}

// ViewportReply holds the viewport of every desktop.
type ViewportReply struct {
	Viewports []Coordinates
}

func (r *ViewportReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[][2]", buf, 0)
	if err != nil {
		return err
	}
	if len(vals)%2 != 0 {
		return decodeErrorf("CARDINAL[][2]", "%d values is not a list of pairs", len(vals))
	}
	r.Viewports = make([]Coordinates, len(vals)/2)
	for i := range r.Viewports {
		r.Viewports[i] = Coordinates{vals[2*i], vals[2*i+1]}
	}
	return nil
}

// WorkareaReply holds the work area of every desktop.
type WorkareaReply struct {
	Areas []Geometry
}

func (r *WorkareaReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[][4]", buf, 0)
	if err != nil {
		return err
	}
	if len(vals)%4 != 0 {
		return decodeErrorf("CARDINAL[][4]", "%d values is not a list of rectangles", len(vals))
	}
	r.Areas = make([]Geometry, len(vals)/4)
	for i := range r.Areas {
		v := vals[4*i:]
		r.Areas[i] = Geometry{v[0], v[1], v[2], v[3]}
	}
	return nil
}

// DesktopLayoutReply is the layout of desktops in a pager. A value without
// a starting corner means the top left one.
type DesktopLayoutReply struct {
	Orientation    DesktopLayoutOrientation
	Columns, Rows  uint32
	StartingCorner DesktopLayoutStartingCorner
}

func (r *DesktopLayoutReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[4]", buf, 3)
	if err != nil {
		return err
	}
	r.Orientation = DesktopLayoutOrientation(vals[0])
	r.Columns, r.Rows = vals[1], vals[2]
	r.StartingCorner = DesktopLayoutStartingCornerTopLeft
	if len(vals) > 3 {
		r.StartingCorner = DesktopLayoutStartingCorner(vals[3])
	}
	return nil
}

// ExtentsReply is the border a window manager added around a window.
type ExtentsReply struct {
	Left, Right, Top, Bottom uint32
}

func (r *ExtentsReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[4]", buf, 4)
	if err != nil {
		return err
	}
	r.Left, r.Right, r.Top, r.Bottom = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// StrutReply is the space a window reserves at the edges of the screen.
type StrutReply struct {
	Left, Right, Top, Bottom uint32
}

func (r *StrutReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[4]", buf, 4)
	if err != nil {
		return err
	}
	r.Left, r.Right, r.Top, r.Bottom = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// StrutPartialReply is a strut that only covers part of each edge.
type StrutPartialReply struct {
	Left, Right, Top, Bottom uint32
	LeftStartY, LeftEndY     uint32
	RightStartY, RightEndY   uint32
	TopStartX, TopEndX       uint32
	BottomStartX, BottomEndX uint32
}

func (r *StrutPartialReply) Decode(c *Conn, buf []byte) error {
	v, err := cardinals("CARDINAL[12]", buf, 12)
	if err != nil {
		return err
	}
	*r = StrutPartialReply{
		v[0], v[1], v[2], v[3],
		v[4], v[5],
		v[6], v[7],
		v[8], v[9],
		v[10], v[11],
	}
	return nil
}

func (r StrutPartialReply) values() []uint32 {
	return []uint32{
		r.Left, r.Right, r.Top, r.Bottom,
		r.LeftStartY, r.LeftEndY,
		r.RightStartY, r.RightEndY,
		r.TopStartX, r.TopEndX,
		r.BottomStartX, r.BottomEndX,
	}
}

// IconGeometryReply is where a window's icon is, e.g. in a taskbar.
type IconGeometryReply struct {
	Geometry
}

func (r *IconGeometryReply) Decode(c *Conn, buf []byte) error {
	v, err := cardinals("CARDINAL[4]", buf, 4)
	if err != nil {
		return err
	}
	r.Geometry = Geometry{v[0], v[1], v[2], v[3]}
	return nil
}

// IconsReply holds every image of _NET_WM_ICON.
type IconsReply struct {
	Icons []Icon
}

func (r *IconsReply) Decode(c *Conn, buf []byte) error {
	vals, err := cardinals("CARDINAL[][2+n]", buf, 0)
	if err != nil {
		return err
	}
	r.Icons = []Icon{}
	for len(vals) > 0 {
		if len(vals) < 2 {
			return decodeErrorf("CARDINAL[][2+n]", "truncated icon header")
		}
		w, h := vals[0], vals[1]
		n := uint64(w) * uint64(h)
		if n > uint64(len(vals)-2) {
			return decodeErrorf("CARDINAL[][2+n]",
				"%dx%d icon needs %d pixels, %d left", w, h, n, len(vals)-2)
		}
		r.Icons = append(r.Icons, Icon{
			Width:  w,
			Height: h,
			Data:   append([]uint32(nil), vals[2:2+n]...),
		})
		vals = vals[2+n:]
	}
	return nil
}

// FullscreenMonitorsReply names the monitors whose edges a fullscreen
// window spans, by Xinerama index.
type FullscreenMonitorsReply struct {
	Top, Bottom, Left, Right uint32
}

func (r *FullscreenMonitorsReply) Decode(c *Conn, buf []byte) error {
	v, err := cardinals("CARDINAL[4]", buf, 4)
	if err != nil {
		return err
	}
	r.Top, r.Bottom, r.Left, r.Right = v[0], v[1], v[2], v[3]
	return nil
}
