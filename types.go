package ewmh

// ClientSourceType tells the window manager who sent a client message.
type ClientSourceType uint32

const (
	ClientSourceTypeNone   ClientSourceType = 0
	ClientSourceTypeNormal ClientSourceType = 1
	ClientSourceTypeOther  ClientSourceType = 2
)

// DesktopLayoutOrientation is the orientation in _NET_DESKTOP_LAYOUT.
type DesktopLayoutOrientation uint32

const (
	DesktopLayoutOrientationHorz DesktopLayoutOrientation = 0
	DesktopLayoutOrientationVert DesktopLayoutOrientation = 1
)

// DesktopLayoutStartingCorner is the corner desktop 0 sits in, in
// _NET_DESKTOP_LAYOUT.
type DesktopLayoutStartingCorner uint32

const (
	DesktopLayoutStartingCornerTopLeft     DesktopLayoutStartingCorner = 0
	DesktopLayoutStartingCornerTopRight    DesktopLayoutStartingCorner = 1
	DesktopLayoutStartingCornerBottomRight DesktopLayoutStartingCorner = 2
	DesktopLayoutStartingCornerBottomLeft  DesktopLayoutStartingCorner = 3
)

// MoveresizeFlags says which fields of a _NET_MOVERESIZE_WINDOW message
// are set.
type MoveresizeFlags uint32

const (
	MoveresizeWindowX      MoveresizeFlags = 1 << 8
	MoveresizeWindowY      MoveresizeFlags = 1 << 9
	MoveresizeWindowWidth  MoveresizeFlags = 1 << 10
	MoveresizeWindowHeight MoveresizeFlags = 1 << 11
)

// MoveresizeDirection is the operation of a _NET_WM_MOVERESIZE message.
type MoveresizeDirection uint32

const (
	MoveresizeSizeTopLeft MoveresizeDirection = iota
	MoveresizeSizeTop
	MoveresizeSizeTopRight
	MoveresizeSizeRight
	MoveresizeSizeBottomRight
	MoveresizeSizeBottom
	MoveresizeSizeBottomLeft
	MoveresizeSizeLeft
	MoveresizeMove
	MoveresizeSizeKeyboard
	MoveresizeMoveKeyboard
	MoveresizeCancel
)

// WmStateAction is what a _NET_WM_STATE message does with the states it
// names.
type WmStateAction uint32

const (
	WmStateRemove WmStateAction = 0
	WmStateAdd    WmStateAction = 1
	WmStateToggle WmStateAction = 2
)

// Coordinates is the top left corner of a desktop viewport.
type Coordinates struct {
	X, Y uint32
}

// Geometry is a rectangle in root window coordinates.
type Geometry struct {
	X, Y, Width, Height uint32
}

// Icon is one image of _NET_WM_ICON. Data holds Width*Height ARGB pixels
// in row-major order.
type Icon struct {
	Width, Height uint32
	Data          []uint32
}
