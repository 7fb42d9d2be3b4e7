package xgb

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is an interface that can contain any of the errors returned by
// the server. Use a type assertion switch to extract the Error structs.
type Error interface {
	ImplementsError()
	SequenceId() uint64
	BadId() uint32
	Error() string
}

// ErrorCode is the error number found in byte 1 of an X error packet.
// The codes are themselves errors so they can be matched with errors.Is:
//
//	if errors.Is(err, xgb.BadWindow) { ... }
type ErrorCode byte

const (
	BadRequest ErrorCode = iota + 1
	BadValue
	BadWindow
	BadPixmap
	BadAtom
	BadCursor
	BadFont
	BadMatch
	BadDrawable
	BadAccess
	BadAlloc
	BadColormap
	BadGContext
	BadIDChoice
	BadName
	BadLength
	BadImplementation
)

var errorNames = map[ErrorCode]string{
	BadRequest:        "BadRequest",
	BadValue:          "BadValue",
	BadWindow:         "BadWindow",
	BadPixmap:         "BadPixmap",
	BadAtom:           "BadAtom",
	BadCursor:         "BadCursor",
	BadFont:           "BadFont",
	BadMatch:          "BadMatch",
	BadDrawable:       "BadDrawable",
	BadAccess:         "BadAccess",
	BadAlloc:          "BadAlloc",
	BadColormap:       "BadColormap",
	BadGContext:       "BadGContext",
	BadIDChoice:       "BadIDChoice",
	BadName:           "BadName",
	BadLength:         "BadLength",
	BadImplementation: "BadImplementation",
}

func (e ErrorCode) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("UnknownError(%d)", byte(e))
}

// ProtocolError is an error packet sent by the server for one request.
type ProtocolError struct {
	Code        ErrorCode
	Sequence    uint64
	BadValue    uint32
	MinorOpcode uint16
	MajorOpcode byte
}

// newProtocolError parses a 32 byte error packet. seq is the full sequence
// number already widened by the reader.
func newProtocolError(buf []byte, seq uint64) *ProtocolError {
	return &ProtocolError{
		Code:        ErrorCode(buf[1]),
		Sequence:    seq,
		BadValue:    Get32(buf[4:]),
		MinorOpcode: Get16(buf[8:]),
		MajorOpcode: buf[10],
	}
}

func (err *ProtocolError) ImplementsError() {}

func (err *ProtocolError) SequenceId() uint64 { return err.Sequence }

func (err *ProtocolError) BadId() uint32 { return err.BadValue }

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("%s {Sequence: %d, BadValue: %d, MinorOpcode: %d, "+
		"MajorOpcode: %d}", err.Code, err.Sequence, err.BadValue,
		err.MinorOpcode, err.MajorOpcode)
}

// Is reports whether target is the error code of err.
func (err *ProtocolError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == err.Code
}

// ErrClosed is the cause of a ConnError once Close has been called.
var ErrClosed = errors.New("xgb: connection closed")

// ErrCookieConsumed is returned when a sequence number is redeemed that has
// no outstanding cookie: it was already waited for or discarded, or it was
// never issued with tracking.
var ErrCookieConsumed = errors.New("xgb: cookie already consumed")

// ConnError reports that the connection itself is unusable. Once a Conn has
// failed, every outstanding and future operation returns the same ConnError.
type ConnError struct {
	Err error
}

func (err *ConnError) Error() string {
	return "xgb: connection failed: " + err.Err.Error()
}

func (err *ConnError) Unwrap() error { return err.Err }

// Cause lets errors.Cause from github.com/pkg/errors see through a ConnError.
func (err *ConnError) Cause() error { return err.Err }
