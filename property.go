package ewmh

import (
	"strings"

	"github.com/BurntSushi/xgbewmh/xgb"
)

// propertyLength is the length, in 32 bit units, asked for by every
// GetProperty request: the whole value.
const propertyLength = ^uint32(0) / 4

// PropertyValue is a parsed GetProperty reply. Value aliases the reply
// buffer and holds exactly Count values of Format bits each.
type PropertyValue struct {
	Type   xgb.Atom
	Format byte
	Count  uint32
	Value  []byte
}

// ParseProperty parses a GetProperty reply. shape names the expected value
// in errors.
//
// The value count declared by the reply is authoritative: a reply holding
// fewer bytes than the count needs is a *DecodeError, and bytes beyond it
// are ignored. A property that is not set is a *DecodeError wrapping
// ErrPropertyNotSet.
func ParseProperty(shape string, buf []byte) (PropertyValue, error) {
	if len(buf) < 32 {
		return PropertyValue{}, decodeErrorf(shape,
			"reply of %d bytes is shorter than its header", len(buf))
	}
	if buf[0] != 1 {
		return PropertyValue{}, decodeErrorf(shape,
			"packet type %d is not a reply", buf[0])
	}

	p := PropertyValue{
		Format: buf[1],
		Type:   xgb.Atom(xgb.Get32(buf[8:])),
		Count:  xgb.Get32(buf[16:]),
	}
	if p.Type == xgb.AtomNone {
		return PropertyValue{}, &DecodeError{Shape: shape, Err: ErrPropertyNotSet}
	}

	var unit uint64
	switch p.Format {
	case 0:
		if p.Count != 0 {
			return PropertyValue{}, decodeErrorf(shape,
				"format 0 with %d values", p.Count)
		}
	case 8, 16, 32:
		unit = uint64(p.Format / 8)
	default:
		return PropertyValue{}, decodeErrorf(shape, "invalid format %d", p.Format)
	}

	avail := uint64(len(buf) - 32)
	if declared := uint64(xgb.Get32(buf[4:])) * 4; declared < avail {
		avail = declared
	}
	need := uint64(p.Count) * unit
	if need > avail {
		return PropertyValue{}, decodeErrorf(shape,
			"%d values of format %d need %d bytes, reply has %d",
			p.Count, p.Format, need, avail)
	}
	p.Value = buf[32 : 32+need]
	return p, nil
}

// Check fails unless the property has the given type and format.
func (p PropertyValue) Check(shape string, typ xgb.Atom, format byte) error {
	if p.Type != typ || p.Format != format {
		return decodeErrorf(shape, "got type %d format %d, want type %d format %d",
			p.Type, p.Format, typ, format)
	}
	return nil
}

// Uint32s copies out a format 32 value.
func (p PropertyValue) Uint32s() []uint32 {
	if p.Format != 32 {
		return nil
	}
	vals := make([]uint32, p.Count)
	for i := range vals {
		vals[i] = xgb.Get32(p.Value[i*4:])
	}
	return vals
}

// String copies out a format 8 value.
func (p PropertyValue) String() string {
	return string(p.Value)
}

// Strings splits a format 8 value on NUL. One trailing NUL is dropped
// first, so "a\x00b\x00" and "a\x00b" both give [a b]. An empty value
// gives an empty list.
func (p PropertyValue) Strings() []string {
	return splitNul(string(p.Value))
}

func splitNul(s string) []string {
	s = strings.TrimSuffix(s, "\x00")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\x00")
}

// joinNul is the inverse of splitNul. Every name is terminated, as EWMH
// asks for lists of strings.
func joinNul(vals []string) []byte {
	var b strings.Builder
	for _, v := range vals {
		b.WriteString(v)
		b.WriteByte(0)
	}
	return []byte(b.String())
}

// parseExpect is ParseProperty followed by Check.
func parseExpect(shape string, buf []byte, typ xgb.Atom, format byte) (PropertyValue, error) {
	p, err := ParseProperty(shape, buf)
	if err != nil {
		return p, err
	}
	return p, p.Check(shape, typ, format)
}

// cardinals parses a CARDINAL/32 value with at least min values.
func cardinals(shape string, buf []byte, min int) ([]uint32, error) {
	p, err := parseExpect(shape, buf, xgb.AtomCardinal, 32)
	if err != nil {
		return nil, err
	}
	if int(p.Count) < min {
		return nil, decodeErrorf(shape, "%d values, want at least %d", p.Count, min)
	}
	return p.Uint32s(), nil
}

// Uint32Data encodes values for a format 32 ChangeProperty.
func Uint32Data(vals ...uint32) []byte {
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		xgb.Put32(buf[i*4:], v)
	}
	return buf
}

func windowData(ws []xgb.Window) []byte {
	buf := make([]byte, 4*len(ws))
	for i, w := range ws {
		xgb.Put32(buf[i*4:], uint32(w))
	}
	return buf
}

func atomData(as []xgb.Atom) []byte {
	buf := make([]byte, 4*len(as))
	for i, a := range as {
		xgb.Put32(buf[i*4:], uint32(a))
	}
	return buf
}

func (c *Conn) getProperty(w xgb.Window, name AtomName, typ xgb.Atom) ([]byte, error) {
	return xgb.GetPropertyRequest(false, w, c.Atom(name), typ, 0, propertyLength), nil
}

func (c *Conn) getRootProperty(screen int, name AtomName, typ xgb.Atom) ([]byte, error) {
	root, err := c.root(screen)
	if err != nil {
		return nil, err
	}
	return c.getProperty(root, name, typ)
}

func (c *Conn) changeProperty(w xgb.Window, name AtomName, typ xgb.Atom,
	format byte, data []byte) ([]byte, error) {

	return xgb.ChangePropertyRequest(xgb.PropModeReplace, w, c.Atom(name), typ,
		format, data), nil
}

func (c *Conn) changeRootProperty(screen int, name AtomName, typ xgb.Atom,
	format byte, data []byte) ([]byte, error) {

	root, err := c.root(screen)
	if err != nil {
		return nil, err
	}
	return c.changeProperty(root, name, typ, format, data)
}

// DeleteProperty removes an EWMH property from a window.
type DeleteProperty struct {
	WithoutReply
	Window   xgb.Window
	Property AtomName
}

func (r DeleteProperty) Encode(c *Conn) ([]byte, error) {
	return xgb.DeletePropertyRequest(r.Window, c.Atom(r.Property)), nil
}
