package ewmh

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/BurntSushi/xgbewmh/xgb"
)

// ErrPropertyNotSet is the cause of a DecodeError for a property the window
// does not have.
var ErrPropertyNotSet = errors.New("property not set")

// HandshakeError is returned by Connect when the atoms could not be
// interned. No Conn exists afterwards.
type HandshakeError struct {
	// Name is the atom whose request or reply failed.
	Name string
	Err  error
}

func (e *HandshakeError) Error() string {
	return fmt.Sprintf("ewmh: interning %s: %v", e.Name, e.Err)
}

func (e *HandshakeError) Unwrap() error { return e.Err }

func (e *HandshakeError) Cause() error { return e.Err }

// DecodeError reports a reply that does not have the shape its request
// promised: a wrong type or format, or fewer bytes than the declared value
// count needs. It is a protocol error, not a connection failure.
type DecodeError struct {
	Sequence uint64
	// Shape names what was being decoded, e.g. "WINDOW[]".
	Shape  string
	Reason string
	Err    error
}

func decodeErrorf(shape, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Shape: shape, Reason: fmt.Sprintf(format, args...)}
}

func (e *DecodeError) ImplementsError() {}

func (e *DecodeError) SequenceId() uint64 { return e.Sequence }

func (e *DecodeError) BadId() uint32 { return 0 }

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ewmh: decoding %s reply (sequence %d): %v",
			e.Shape, e.Sequence, e.Err)
	}
	return fmt.Sprintf("ewmh: decoding %s reply (sequence %d): %s",
		e.Shape, e.Sequence, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var _ xgb.Error = (*DecodeError)(nil)
