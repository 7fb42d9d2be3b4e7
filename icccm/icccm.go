// Package icccm reads and writes the client properties of the ICCCM. Its
// requests are sent through an ewmh.Conn like any EWMH request:
//
//	ck, err := ewmh.Send[icccm.ClassReply](c, icccm.GetWmClass{Window: w})
package icccm

import (
	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/xgb"
)

// wholeValue asks GetProperty for the entire value.
const wholeValue = ^uint32(0) / 4

func getProperty(w xgb.Window, property, typ xgb.Atom) ([]byte, error) {
	return xgb.GetPropertyRequest(false, w, property, typ, 0, wholeValue), nil
}

func changeProperty(w xgb.Window, property, typ xgb.Atom, format byte,
	data []byte) ([]byte, error) {

	return xgb.ChangePropertyRequest(xgb.PropModeReplace, w, property, typ,
		format, data), nil
}

// TextReply is a TEXT property. Value is in the encoding named by Encoding,
// usually STRING (Latin-1) or UTF8_STRING.
type TextReply struct {
	Encoding xgb.Atom
	Value    string
}

func (r *TextReply) Decode(c *ewmh.Conn, buf []byte) error {
	p, err := ewmh.ParseProperty("TEXT", buf)
	if err != nil {
		return err
	}
	if err := p.Check("TEXT", p.Type, 8); err != nil {
		return err
	}
	r.Encoding = p.Type
	r.Value = p.String()
	return nil
}

// text is shared by the three TEXT properties. A zero Encoding is STRING.
func text(w xgb.Window, property, encoding xgb.Atom, value string) ([]byte, error) {
	if encoding == xgb.AtomNone {
		encoding = xgb.AtomString
	}
	return changeProperty(w, property, encoding, 8, []byte(value))
}

type GetWmName struct {
	ewmh.WithReply[TextReply]
	Window xgb.Window
}

func (r GetWmName) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmName, xgb.AtomAny)
}

type SetWmName struct {
	ewmh.WithoutReply
	Window   xgb.Window
	Encoding xgb.Atom
	Name     string
}

func (r SetWmName) Encode(c *ewmh.Conn) ([]byte, error) {
	return text(r.Window, xgb.AtomWmName, r.Encoding, r.Name)
}

type GetWmIconName struct {
	ewmh.WithReply[TextReply]
	Window xgb.Window
}

func (r GetWmIconName) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmIconName, xgb.AtomAny)
}

type SetWmIconName struct {
	ewmh.WithoutReply
	Window   xgb.Window
	Encoding xgb.Atom
	Name     string
}

func (r SetWmIconName) Encode(c *ewmh.Conn) ([]byte, error) {
	return text(r.Window, xgb.AtomWmIconName, r.Encoding, r.Name)
}

// GetWmClientMachine reads the host name the client runs on.
type GetWmClientMachine struct {
	ewmh.WithReply[TextReply]
	Window xgb.Window
}

func (r GetWmClientMachine) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmClientMachine, xgb.AtomAny)
}

type SetWmClientMachine struct {
	ewmh.WithoutReply
	Window   xgb.Window
	Encoding xgb.Atom
	Machine  string
}

func (r SetWmClientMachine) Encode(c *ewmh.Conn) ([]byte, error) {
	return text(r.Window, xgb.AtomWmClientMachine, r.Encoding, r.Machine)
}

// ClassReply is WM_CLASS: the instance and class names a client's
// resources are looked up by.
type ClassReply struct {
	Instance, Class string
}

func (r *ClassReply) Decode(c *ewmh.Conn, buf []byte) error {
	p, err := ewmh.ParseProperty("STRING[2]", buf)
	if err != nil {
		return err
	}
	if err := p.Check("STRING[2]", xgb.AtomString, 8); err != nil {
		return err
	}
	names := p.Strings()
	if len(names) > 0 {
		r.Instance = names[0]
	}
	if len(names) > 1 {
		r.Class = names[1]
	}
	return nil
}

type GetWmClass struct {
	ewmh.WithReply[ClassReply]
	Window xgb.Window
}

func (r GetWmClass) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmClass, xgb.AtomString)
}

type SetWmClass struct {
	ewmh.WithoutReply
	Window          xgb.Window
	Instance, Class string
}

func (r SetWmClass) Encode(c *ewmh.Conn) ([]byte, error) {
	data := make([]byte, 0, len(r.Instance)+len(r.Class)+2)
	data = append(data, r.Instance...)
	data = append(data, 0)
	data = append(data, r.Class...)
	data = append(data, 0)
	return changeProperty(r.Window, xgb.AtomWmClass, xgb.AtomString, 8, data)
}

// GetWmTransientFor reads the window a dialog belongs to.
type GetWmTransientFor struct {
	ewmh.WithReply[ewmh.WindowReply]
	Window xgb.Window
}

func (r GetWmTransientFor) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, xgb.AtomWmTransientFor, xgb.AtomWindow)
}

type SetWmTransientFor struct {
	ewmh.WithoutReply
	Window xgb.Window
	For    xgb.Window
}

func (r SetWmTransientFor) Encode(c *ewmh.Conn) ([]byte, error) {
	return changeProperty(r.Window, xgb.AtomWmTransientFor, xgb.AtomWindow, 32,
		ewmh.Uint32Data(uint32(r.For)))
}

// GetWmProtocols reads the protocols, such as WM_DELETE_WINDOW and
// _NET_WM_PING, a client takes part in.
type GetWmProtocols struct {
	ewmh.WithReply[ewmh.AtomsReply]
	Window xgb.Window
}

func (r GetWmProtocols) Encode(c *ewmh.Conn) ([]byte, error) {
	return getProperty(r.Window, c.Atom(ewmh.WmProtocols), xgb.AtomAtom)
}

type SetWmProtocols struct {
	ewmh.WithoutReply
	Window    xgb.Window
	Protocols []xgb.Atom
}

func (r SetWmProtocols) Encode(c *ewmh.Conn) ([]byte, error) {
	vals := make([]uint32, len(r.Protocols))
	for i, a := range r.Protocols {
		vals[i] = uint32(a)
	}
	return changeProperty(r.Window, c.Atom(ewmh.WmProtocols), xgb.AtomAtom, 32,
		ewmh.Uint32Data(vals...))
}
