package xgb

import (
	"github.com/pkg/errors"
)

// Window, Atom and Timestamp are the core protocol identifiers this package
// deals in.
type (
	Window    uint32
	Atom      uint32
	Timestamp uint32
)

const (
	WindowNone Window = 0

	AtomNone Atom = 0
	AtomAny  Atom = 0

	TimeCurrentTime Timestamp = 0
)

// Predefined atoms. The server never has to intern these.
const (
	AtomAtom            Atom = 4
	AtomCardinal        Atom = 6
	AtomString          Atom = 31
	AtomWindow          Atom = 33
	AtomWmHints         Atom = 35
	AtomWmClientMachine Atom = 36
	AtomWmIconName      Atom = 37
	AtomWmName          Atom = 39
	AtomWmNormalHints   Atom = 40
	AtomWmSizeHints     Atom = 41
	AtomWmClass         Atom = 67
	AtomWmTransientFor  Atom = 68
)

// PropMode values for ChangeProperty.
const (
	PropModeReplace byte = 0
	PropModePrepend byte = 1
	PropModeAppend  byte = 2
)

// Event masks used by this package.
const (
	EventMaskSubstructureNotify   uint32 = 1 << 19
	EventMaskSubstructureRedirect uint32 = 1 << 20
	EventMaskPropertyChange       uint32 = 1 << 22
)

// Major opcodes of the core requests this package encodes.
const (
	InternAtomOpcode     = 16
	ChangePropertyOpcode = 18
	DeletePropertyOpcode = 19
	GetPropertyOpcode    = 20
	SendEventOpcode      = 25
	GetInputFocusOpcode  = 43
)

// InternAtomRequest encodes an InternAtom request. It has a reply.
func InternAtomRequest(onlyIfExists bool, name string) []byte {
	size := 8 + Pad(len(name))
	buf := make([]byte, size)
	buf[0] = InternAtomOpcode
	if onlyIfExists {
		buf[1] = 1
	}
	Put16(buf[2:], uint16(size/4))
	Put16(buf[4:], uint16(len(name)))
	copy(buf[8:], name)
	return buf
}

// InternAtomReply extracts the atom from an InternAtom reply.
func InternAtomReply(buf []byte) (Atom, error) {
	if len(buf) < packetSize || buf[0] != 1 {
		return 0, errors.Errorf("malformed InternAtom reply (%d bytes)", len(buf))
	}
	return Atom(Get32(buf[8:])), nil
}

// GetPropertyRequest encodes a GetProperty request. It has a reply.
// offset and length are in 32 bit units.
func GetPropertyRequest(delete bool, window Window, property, typ Atom,
	offset, length uint32) []byte {

	buf := make([]byte, 24)
	buf[0] = GetPropertyOpcode
	if delete {
		buf[1] = 1
	}
	Put16(buf[2:], 6)
	Put32(buf[4:], uint32(window))
	Put32(buf[8:], uint32(property))
	Put32(buf[12:], uint32(typ))
	Put32(buf[16:], offset)
	Put32(buf[20:], length)
	return buf
}

// ChangePropertyRequest encodes a ChangeProperty request. data holds the
// raw value; its length must be a multiple of format/8.
func ChangePropertyRequest(mode byte, window Window, property, typ Atom,
	format byte, data []byte) []byte {

	unit := int(format) / 8
	if unit == 0 {
		unit = 1
	}
	size := 24 + Pad(len(data))
	buf := make([]byte, 24, size)
	buf[0] = ChangePropertyOpcode
	buf[1] = mode
	Put16(buf[2:], uint16(size/4))
	Put32(buf[4:], uint32(window))
	Put32(buf[8:], uint32(property))
	Put32(buf[12:], uint32(typ))
	buf[16] = format
	Put32(buf[20:], uint32(len(data)/unit))
	buf = append(buf, data...)
	return bytesPadding(buf)
}

// DeletePropertyRequest encodes a DeleteProperty request.
func DeletePropertyRequest(window Window, property Atom) []byte {
	buf := make([]byte, 12)
	buf[0] = DeletePropertyOpcode
	Put16(buf[2:], 3)
	Put32(buf[4:], uint32(window))
	Put32(buf[8:], uint32(property))
	return buf
}

// SendEventRequest encodes a SendEvent request carrying a 32 byte event.
func SendEventRequest(propagate bool, destination Window, eventMask uint32,
	event []byte) []byte {

	buf := make([]byte, 44)
	buf[0] = SendEventOpcode
	if propagate {
		buf[1] = 1
	}
	Put16(buf[2:], 11)
	Put32(buf[4:], uint32(destination))
	Put32(buf[8:], eventMask)
	copy(buf[12:], event)
	return buf
}

func getInputFocusRequest() []byte {
	buf := make([]byte, 4)
	buf[0] = GetInputFocusOpcode
	Put16(buf[2:], 1)
	return buf
}
