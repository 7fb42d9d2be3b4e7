package xgb

import "fmt"

// Event is an interface that can contain any of the events returned by the
// server. Use a type assertion switch to extract the Event structs.
type Event interface {
	ImplementsEvent()
	String() string
}

// Event codes this package decodes. Every other event comes back as an
// UnknownEvent.
const (
	KeymapNotify   = 11
	PropertyNotify = 28
	ClientMessage  = 33
)

// newEventFuncs is a map from event numbers to functions that create
// the corresponding event.
var newEventFuncs = map[byte]func(buf []byte) Event{
	PropertyNotify: propertyNotifyEventNew,
	ClientMessage:  clientMessageEventNew,
}

// newEvent copies the 32 byte packet buf into an Event. buf is not retained.
func newEvent(buf []byte) Event {
	code := buf[0] & 0x7f
	if f, ok := newEventFuncs[code]; ok {
		return f(buf)
	}
	ev := UnknownEvent{Code: code}
	copy(ev.Bytes[:], buf)
	return ev
}

// PropertyNotifyEvent reports a change of a window property.
type PropertyNotifyEvent struct {
	Sequence uint16
	Window   Window
	Atom     Atom
	Time     Timestamp
	State    byte
}

func propertyNotifyEventNew(buf []byte) Event {
	return PropertyNotifyEvent{
		Sequence: Get16(buf[2:]),
		Window:   Window(Get32(buf[4:])),
		Atom:     Atom(Get32(buf[8:])),
		Time:     Timestamp(Get32(buf[12:])),
		State:    buf[16],
	}
}

func (v PropertyNotifyEvent) ImplementsEvent() {}

func (v PropertyNotifyEvent) String() string {
	return fmt.Sprintf("PropertyNotify {Sequence: %d, Window: %d, Atom: %d, "+
		"Time: %d, State: %d}", v.Sequence, v.Window, v.Atom, v.Time, v.State)
}

// ClientMessageEvent is a client message, either received from the server
// or built to be sent with SendEvent.
type ClientMessageEvent struct {
	Format   byte
	Sequence uint16
	Window   Window
	Type     Atom
	Data     ClientMessageData
}

func clientMessageEventNew(buf []byte) Event {
	v := ClientMessageEvent{
		Format:   buf[1],
		Sequence: Get16(buf[2:]),
		Window:   Window(Get32(buf[4:])),
		Type:     Atom(Get32(buf[8:])),
	}
	getClientMessageData(buf[12:], &v.Data)
	return v
}

// Bytes encodes the event in the 32 byte form SendEvent expects.
func (v ClientMessageEvent) Bytes() []byte {
	buf := make([]byte, 32)
	buf[0] = ClientMessage
	buf[1] = v.Format
	Put32(buf[4:], uint32(v.Window))
	Put32(buf[8:], uint32(v.Type))
	switch v.Format {
	case 16:
		for i, d := range v.Data.Data16 {
			Put16(buf[12+i*2:], d)
		}
	case 32:
		for i, d := range v.Data.Data32 {
			Put32(buf[12+i*4:], d)
		}
	default:
		copy(buf[12:], v.Data.Data8[:])
	}
	return buf
}

func (v ClientMessageEvent) ImplementsEvent() {}

func (v ClientMessageEvent) String() string {
	return fmt.Sprintf("ClientMessage {Format: %d, Sequence: %d, Window: %d, "+
		"Type: %d, Data: %v}", v.Format, v.Sequence, v.Window, v.Type,
		v.Data.Data32)
}

// UnknownEvent is any event without a decoder in this package.
type UnknownEvent struct {
	Code  byte
	Bytes [32]byte
}

func (v UnknownEvent) ImplementsEvent() {}

func (v UnknownEvent) String() string {
	return fmt.Sprintf("UnknownEvent {Code: %d}", v.Code)
}
