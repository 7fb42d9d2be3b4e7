package icccm

import (
	"fmt"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/xgb"
)

// WmState is a top-level window's state as the window manager sees it.
type WmState uint32

const (
	WmStateWithdrawn WmState = 0
	WmStateNormal    WmState = 1
	WmStateIconic    WmState = 3
)

// WmHintsFlags says which fields of WmHints are set.
type WmHintsFlags uint32

const (
	HintInput        WmHintsFlags = 1 << 0
	HintState        WmHintsFlags = 1 << 1
	HintIconPixmap   WmHintsFlags = 1 << 2
	HintIconWindow   WmHintsFlags = 1 << 3
	HintIconPosition WmHintsFlags = 1 << 4
	HintIconMask     WmHintsFlags = 1 << 5
	HintWindowGroup  WmHintsFlags = 1 << 6
	HintUrgency      WmHintsFlags = 1 << 8
)

// wmHintsLen is the number of values in WM_HINTS. Clients written against
// older revisions leave out the window group.
const wmHintsLen = 9

// WmHints is WM_HINTS. Fields whose flag is not set carry no meaning.
// Urgency has no field of its own: it is HintUrgency in Flags.
type WmHints struct {
	Flags        WmHintsFlags
	Input        bool
	InitialState WmState
	IconPixmap   uint32
	IconWindow   xgb.Window
	IconX, IconY int32
	IconMask     uint32
	WindowGroup  xgb.Window
}

// Urgent reports whether the client asked for the user's attention.
func (h WmHints) Urgent() bool {
	return h.Flags&HintUrgency != 0
}

func (h *WmHints) Decode(c *ewmh.Conn, buf []byte) error {
	p, err := ewmh.ParseProperty("WM_HINTS", buf)
	if err != nil {
		return err
	}
	if err := p.Check("WM_HINTS", xgb.AtomWmHints, 32); err != nil {
		return err
	}
	v := p.Uint32s()
	if len(v) < wmHintsLen-1 {
		return tooShort("WM_HINTS", len(v), wmHintsLen-1)
	}
	*h = WmHints{
		Flags:        WmHintsFlags(v[0]),
		Input:        v[1] != 0,
		InitialState: WmState(v[2]),
		IconPixmap:   v[3],
		IconWindow:   xgb.Window(v[4]),
		IconX:        int32(v[5]),
		IconY:        int32(v[6]),
		IconMask:     v[7],
	}
	if len(v) >= wmHintsLen {
		h.WindowGroup = xgb.Window(v[8])
	}
	return nil
}

func (h WmHints) values() []uint32 {
	return []uint32{
		uint32(h.Flags), boolValue(h.Input), uint32(h.InitialState),
		h.IconPixmap, uint32(h.IconWindow),
		uint32(h.IconX), uint32(h.IconY),
		h.IconMask, uint32(h.WindowGroup),
	}
}

func tooShort(shape string, n, min int) error {
	return &ewmh.DecodeError{
		Shape:  shape,
		Reason: fmt.Sprintf("%d values, want at least %d", n, min),
	}
}

func boolValue(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

type GetWmHints struct {
	ewmh.WithReply[WmHints]
	Window xgb.Window
}

func (r GetWmHints) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmHints, xgb.AtomWmHints)
}

type SetWmHints struct {
	ewmh.WithoutReply
	Window xgb.Window
	Hints  WmHints
}

func (r SetWmHints) Encode(c *ewmh.Conn) ([]byte, error) {
	return changeProperty(r.Window, xgb.AtomWmHints, xgb.AtomWmHints, 32,
		ewmh.Uint32Data(r.Hints.values()...))
}

// SizeHintsFlags says which fields of SizeHints are set.
type SizeHintsFlags uint32

const (
	SizeHintUSPosition  SizeHintsFlags = 1 << 0
	SizeHintUSSize      SizeHintsFlags = 1 << 1
	SizeHintPPosition   SizeHintsFlags = 1 << 2
	SizeHintPSize       SizeHintsFlags = 1 << 3
	SizeHintPMinSize    SizeHintsFlags = 1 << 4
	SizeHintPMaxSize    SizeHintsFlags = 1 << 5
	SizeHintPResizeInc  SizeHintsFlags = 1 << 6
	SizeHintPAspect     SizeHintsFlags = 1 << 7
	SizeHintPBaseSize   SizeHintsFlags = 1 << 8
	SizeHintPWinGravity SizeHintsFlags = 1 << 9
)

const (
	sizeHintsLen = 18
	// X11R3 clients write WM_NORMAL_HINTS without base size and gravity.
	sizeHintsOldLen = 15
)

// SizeHints is WM_NORMAL_HINTS. Position and size are obsolete but still
// written by some clients; window managers use the window's geometry.
type SizeHints struct {
	Flags                      SizeHintsFlags
	X, Y                       int32
	Width, Height              int32
	MinWidth, MinHeight        int32
	MaxWidth, MaxHeight        int32
	WidthInc, HeightInc        int32
	MinAspectNum, MinAspectDen int32
	MaxAspectNum, MaxAspectDen int32
	BaseWidth, BaseHeight      int32
	WinGravity                 uint32
}

func (h *SizeHints) Decode(c *ewmh.Conn, buf []byte) error {
	p, err := ewmh.ParseProperty("WM_SIZE_HINTS", buf)
	if err != nil {
		return err
	}
	if err := p.Check("WM_SIZE_HINTS", xgb.AtomWmSizeHints, 32); err != nil {
		return err
	}
	u := p.Uint32s()
	if len(u) < sizeHintsOldLen {
		return tooShort("WM_SIZE_HINTS", len(u), sizeHintsOldLen)
	}
	v := make([]int32, sizeHintsLen)
	for i := 0; i < len(v) && i < len(u); i++ {
		v[i] = int32(u[i])
	}
	*h = SizeHints{
		Flags:        SizeHintsFlags(u[0]),
		X:            v[1],
		Y:            v[2],
		Width:        v[3],
		Height:       v[4],
		MinWidth:     v[5],
		MinHeight:    v[6],
		MaxWidth:     v[7],
		MaxHeight:    v[8],
		WidthInc:     v[9],
		HeightInc:    v[10],
		MinAspectNum: v[11],
		MinAspectDen: v[12],
		MaxAspectNum: v[13],
		MaxAspectDen: v[14],
	}
	if len(u) >= sizeHintsLen {
		h.BaseWidth, h.BaseHeight = v[15], v[16]
		h.WinGravity = u[17]
	} else {
		h.Flags &^= SizeHintPBaseSize | SizeHintPWinGravity
	}
	return nil
}

func (h SizeHints) values() []uint32 {
	return []uint32{
		uint32(h.Flags),
		uint32(h.X), uint32(h.Y),
		uint32(h.Width), uint32(h.Height),
		uint32(h.MinWidth), uint32(h.MinHeight),
		uint32(h.MaxWidth), uint32(h.MaxHeight),
		uint32(h.WidthInc), uint32(h.HeightInc),
		uint32(h.MinAspectNum), uint32(h.MinAspectDen),
		uint32(h.MaxAspectNum), uint32(h.MaxAspectDen),
		uint32(h.BaseWidth), uint32(h.BaseHeight),
		h.WinGravity,
	}
}

type GetWmNormalHints struct {
	ewmh.WithReply[SizeHints]
	Window xgb.Window
}

func (r GetWmNormalHints) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmNormalHints, xgb.AtomWmSizeHints)
}

type SetWmNormalHints struct {
	ewmh.WithoutReply
	Window xgb.Window
	Hints  SizeHints
}

func (r SetWmNormalHints) Encode(c *ewmh.Conn) ([]byte, error) {
	return changeProperty(r.Window, xgb.AtomWmNormalHints, xgb.AtomWmSizeHints, 32,
		ewmh.Uint32Data(r.Hints.values()...))
}
