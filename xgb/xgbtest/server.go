// Package xgbtest provides an in-memory X server for tests. It understands
// the handful of core requests package xgb encodes, keeps window properties
// in maps, and can be told to fail requests.
package xgbtest

import (
	"sync"

	"github.com/BurntSushi/xgbewmh/xgb"
)

// Property is a stored window property.
type Property struct {
	Type   xgb.Atom
	Format byte
	Data   []byte
}

// SentEvent is an event received through SendEvent.
type SentEvent struct {
	Destination xgb.Window
	Propagate   bool
	EventMask   uint32
	Event       []byte
}

// Server is a fake X server. It is safe for concurrent use; requests are
// handled one at a time in the order they are written.
type Server struct {
	mu sync.Mutex

	roots      []xgb.Window
	windows    map[xgb.Window]map[xgb.Atom]*Property
	nextWindow xgb.Window

	atoms     map[string]xgb.Atom
	atomNames map[xgb.Atom]string
	nextAtom  xgb.Atom

	setupDone bool
	seq       uint64
	requests  map[byte]int
	sent      []SentEvent
	injected  map[uint64]xgb.ErrorCode
	silent    map[uint64]bool
	echo      bool
}

// NewServer returns a server with the given number of screens.
func NewServer(screens int) *Server {
	s := &Server{
		windows:    make(map[xgb.Window]map[xgb.Atom]*Property),
		nextWindow: 0x00400001,
		atoms:      make(map[string]xgb.Atom),
		atomNames:  make(map[xgb.Atom]string),
		nextAtom:   69,
		requests:   make(map[byte]int),
		injected:   make(map[uint64]xgb.ErrorCode),
		silent:     make(map[uint64]bool),
	}
	for name, atom := range predefined {
		s.atoms[name] = atom
		s.atomNames[atom] = name
	}
	for i := 0; i < screens; i++ {
		root := xgb.Window(0x100 + i)
		s.roots = append(s.roots, root)
		s.windows[root] = make(map[xgb.Atom]*Property)
	}
	return s
}

var predefined = map[string]xgb.Atom{
	"ATOM":              xgb.AtomAtom,
	"CARDINAL":          xgb.AtomCardinal,
	"STRING":            xgb.AtomString,
	"WINDOW":            xgb.AtomWindow,
	"WM_HINTS":          xgb.AtomWmHints,
	"WM_CLIENT_MACHINE": xgb.AtomWmClientMachine,
	"WM_ICON_NAME":      xgb.AtomWmIconName,
	"WM_NAME":           xgb.AtomWmName,
	"WM_NORMAL_HINTS":   xgb.AtomWmNormalHints,
	"WM_SIZE_HINTS":     xgb.AtomWmSizeHints,
	"WM_CLASS":          xgb.AtomWmClass,
	"WM_TRANSIENT_FOR":  xgb.AtomWmTransientFor,
}

// Roots returns the root window of every screen.
func (s *Server) Roots() []xgb.Window {
	return append([]xgb.Window(nil), s.roots...)
}

// CreateWindow makes a new top-level window without properties.
func (s *Server) CreateWindow() xgb.Window {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := s.nextWindow
	s.nextWindow++
	s.windows[w] = make(map[xgb.Atom]*Property)
	return w
}

// DestroyWindow forgets w. Later requests naming it fail with BadWindow.
func (s *Server) DestroyWindow(w xgb.Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, w)
}

// Atom returns the atom interned for name, if any.
func (s *Server) Atom(name string) (xgb.Atom, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.atoms[name]
	return a, ok
}

// SetProperty stores a property directly, bypassing the protocol.
func (s *Server) SetProperty(w xgb.Window, property, typ xgb.Atom, format byte,
	data []byte) {

	s.mu.Lock()
	defer s.mu.Unlock()
	if props, ok := s.windows[w]; ok {
		props[property] = &Property{typ, format, append([]byte(nil), data...)}
	}
}

// Property returns a copy of a stored property.
func (s *Server) Property(w xgb.Window, property xgb.Atom) (Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.windows[w][property]
	if !ok {
		return Property{}, false
	}
	return Property{p.Type, p.Format, append([]byte(nil), p.Data...)}, true
}

// Requests reports how many requests with the given major opcode have been
// handled.
func (s *Server) Requests(opcode byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[opcode]
}

// Sent returns every event received through SendEvent so far.
func (s *Server) Sent() []SentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SentEvent(nil), s.sent...)
}

// EchoClientMessages makes every SendEvent also come back to the client as
// an event, as if it had selected for it.
func (s *Server) EchoClientMessages(echo bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.echo = echo
}

// InjectError makes the request with sequence number seq fail with code,
// whatever it is.
func (s *Server) InjectError(seq uint64, code xgb.ErrorCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.injected[seq] = code
}

// Silence makes the server swallow the answer to request seq. The request
// is still carried out.
func (s *Server) Silence(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.silent[seq] = true
}

// handle answers one request cut from a NetConn's stream. The first is the
// connection setup request.
func (s *Server) handle(req []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.setupDone {
		s.setupDone = true
		return s.setupReply()
	}

	s.seq++
	if len(req) < 4 {
		return s.errorPacket(xgb.BadLength, 0, 0)
	}
	opcode := req[0]
	s.requests[opcode]++

	var out []byte
	if code, ok := s.injected[s.seq]; ok {
		out = s.errorPacket(code, 0, opcode)
	} else {
		out = s.dispatch(opcode, req)
	}
	if s.silent[s.seq] {
		return nil
	}
	return out
}

func (s *Server) dispatch(opcode byte, req []byte) []byte {
	switch opcode {
	case xgb.InternAtomOpcode:
		return s.internAtom(req)
	case xgb.ChangePropertyOpcode:
		return s.changeProperty(req)
	case xgb.DeletePropertyOpcode:
		return s.deleteProperty(req)
	case xgb.GetPropertyOpcode:
		return s.getProperty(req)
	case xgb.SendEventOpcode:
		return s.sendEvent(req)
	case xgb.GetInputFocusOpcode:
		reply := s.replyPacket(1, nil)
		xgb.Put32(reply[8:], uint32(s.roots[0]))
		return reply
	}
	return s.errorPacket(xgb.BadRequest, 0, opcode)
}

func (s *Server) setupReply() []byte {
	vendor := "xgbtest"
	size := 8 + 32 + xgb.Pad(len(vendor)) + 40*len(s.roots)
	buf := make([]byte, size)
	buf[0] = 1
	xgb.Put16(buf[2:], 11)
	xgb.Put16(buf[4:], 0)
	xgb.Put16(buf[6:], uint16((size-8)/4))
	xgb.Put32(buf[8:], 1)           // release
	xgb.Put32(buf[12:], 0x00200000) // resource id base
	xgb.Put32(buf[16:], 0x001fffff) // resource id mask
	xgb.Put16(buf[24:], uint16(len(vendor)))
	xgb.Put16(buf[26:], 0xffff) // maximum request length
	buf[28] = byte(len(s.roots))
	buf[29] = 0 // pixmap formats
	copy(buf[40:], vendor)

	b := 40 + xgb.Pad(len(vendor))
	for _, root := range s.roots {
		xgb.Put32(buf[b:], uint32(root))
		xgb.Put16(buf[b+20:], 1920)
		xgb.Put16(buf[b+22:], 1080)
		buf[b+38] = 24
		b += 40
	}
	return buf
}

func (s *Server) replyPacket(detail byte, extra []byte) []byte {
	buf := make([]byte, 32+xgb.Pad(len(extra)))
	buf[0] = 1
	buf[1] = detail
	xgb.Put16(buf[2:], uint16(s.seq))
	xgb.Put32(buf[4:], uint32(xgb.Pad(len(extra))/4))
	copy(buf[32:], extra)
	return buf
}

func (s *Server) errorPacket(code xgb.ErrorCode, bad uint32, major byte) []byte {
	buf := make([]byte, 32)
	buf[0] = 0
	buf[1] = byte(code)
	xgb.Put16(buf[2:], uint16(s.seq))
	xgb.Put32(buf[4:], bad)
	buf[10] = major
	return buf
}

func (s *Server) internAtom(req []byte) []byte {
	if len(req) < 8 {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	n := int(xgb.Get16(req[4:]))
	if 8+n > len(req) {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	name := string(req[8 : 8+n])
	atom, ok := s.atoms[name]
	if !ok && req[1] == 0 {
		atom = s.nextAtom
		s.nextAtom++
		s.atoms[name] = atom
		s.atomNames[atom] = name
	}
	reply := s.replyPacket(0, nil)
	xgb.Put32(reply[8:], uint32(atom))
	return reply
}

func (s *Server) changeProperty(req []byte) []byte {
	if len(req) < 24 {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	mode := req[1]
	w := xgb.Window(xgb.Get32(req[4:]))
	property := xgb.Atom(xgb.Get32(req[8:]))
	typ := xgb.Atom(xgb.Get32(req[12:]))
	format := req[16]
	count := int(xgb.Get32(req[20:]))

	props, ok := s.windows[w]
	if !ok {
		return s.errorPacket(xgb.BadWindow, uint32(w), req[0])
	}
	if _, ok := s.atomNames[property]; !ok {
		return s.errorPacket(xgb.BadAtom, uint32(property), req[0])
	}
	if format != 8 && format != 16 && format != 32 {
		return s.errorPacket(xgb.BadValue, uint32(format), req[0])
	}
	size := count * int(format) / 8
	if 24+size > len(req) {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	data := append([]byte(nil), req[24:24+size]...)

	old, exists := props[property]
	switch mode {
	case xgb.PropModeReplace:
		props[property] = &Property{typ, format, data}
	case xgb.PropModePrepend, xgb.PropModeAppend:
		if !exists {
			props[property] = &Property{typ, format, data}
			break
		}
		if old.Type != typ || old.Format != format {
			return s.errorPacket(xgb.BadMatch, 0, req[0])
		}
		if mode == xgb.PropModeAppend {
			old.Data = append(old.Data, data...)
		} else {
			old.Data = append(data, old.Data...)
		}
	default:
		return s.errorPacket(xgb.BadValue, uint32(mode), req[0])
	}
	return nil
}

func (s *Server) deleteProperty(req []byte) []byte {
	if len(req) < 12 {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	w := xgb.Window(xgb.Get32(req[4:]))
	props, ok := s.windows[w]
	if !ok {
		return s.errorPacket(xgb.BadWindow, uint32(w), req[0])
	}
	delete(props, xgb.Atom(xgb.Get32(req[8:])))
	return nil
}

func (s *Server) getProperty(req []byte) []byte {
	if len(req) < 24 {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	del := req[1] != 0
	w := xgb.Window(xgb.Get32(req[4:]))
	property := xgb.Atom(xgb.Get32(req[8:]))
	typ := xgb.Atom(xgb.Get32(req[12:]))
	offset := int(xgb.Get32(req[16:])) * 4
	length := int(xgb.Get32(req[20:])) * 4

	props, ok := s.windows[w]
	if !ok {
		return s.errorPacket(xgb.BadWindow, uint32(w), req[0])
	}
	p, ok := props[property]
	if !ok {
		return s.replyPacket(0, nil)
	}
	if typ != xgb.AtomAny && typ != p.Type {
		reply := s.replyPacket(p.Format, nil)
		xgb.Put32(reply[8:], uint32(p.Type))
		xgb.Put32(reply[12:], uint32(len(p.Data)))
		return reply
	}
	if offset > len(p.Data) {
		return s.errorPacket(xgb.BadValue, uint32(offset/4), req[0])
	}
	n := len(p.Data) - offset
	if length < n {
		n = length
	}
	after := len(p.Data) - offset - n
	value := p.Data[offset : offset+n]

	reply := s.replyPacket(p.Format, value)
	xgb.Put32(reply[8:], uint32(p.Type))
	xgb.Put32(reply[12:], uint32(after))
	if p.Format != 0 {
		xgb.Put32(reply[16:], uint32(n/(int(p.Format)/8)))
	}
	if del && after == 0 {
		delete(props, property)
	}
	return reply
}

func (s *Server) sendEvent(req []byte) []byte {
	if len(req) < 44 {
		return s.errorPacket(xgb.BadLength, 0, req[0])
	}
	dest := xgb.Window(xgb.Get32(req[4:]))
	if _, ok := s.windows[dest]; !ok {
		return s.errorPacket(xgb.BadWindow, uint32(dest), req[0])
	}
	ev := append([]byte(nil), req[12:44]...)
	s.sent = append(s.sent, SentEvent{
		Destination: dest,
		Propagate:   req[1] != 0,
		EventMask:   xgb.Get32(req[8:]),
		Event:       ev,
	})
	if s.echo {
		echo := append([]byte(nil), ev...)
		echo[0] |= 0x80 // sent by SendEvent
		xgb.Put16(echo[2:], uint16(s.seq))
		return echo
	}
	return nil
}
