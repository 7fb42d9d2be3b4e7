package ewmh

import (
	"github.com/pkg/errors"
)

// Request is one operation on the server. Encode serializes it; the atoms
// it needs come from c.
//
// A request type also says whether it has a reply, by embedding either
// WithoutReply or WithReply.
type Request interface {
	Encode(c *Conn) ([]byte, error)
}

// WithoutReply is embedded by requests the server does not answer.
type WithoutReply struct{}

func (WithoutReply) noReply() {}

// WithReply is embedded by requests answered with a reply decoded into R.
type WithReply[R any] struct{}

func (WithReply[R]) replyOf(*R) {}

// VoidRequest is a request without a reply.
type VoidRequest interface {
	Request
	noReply()
}

// ReplyRequest is a request whose reply decodes into R.
type ReplyRequest[R any] interface {
	Request
	replyOf(*R)
}

// Reply is satisfied by *R when R can be decoded from a reply buffer.
// Decode must copy everything it keeps: buf is released as soon as it
// returns.
type Reply[R any] interface {
	*R
	Decode(c *Conn, buf []byte) error
}

// Cookie is the handle of a checked request with a reply. Redeem it once
// with WaitForReply.
type Cookie[R any] struct {
	seq uint64
}

// Sequence returns the sequence number of the request.
func (ck Cookie[R]) Sequence() uint64 { return ck.seq }

// UncheckedCookie is the handle of an unchecked request with a reply.
// Redeem it once with WaitForReplyUnchecked.
type UncheckedCookie[R any] struct {
	seq uint64
}

func (ck UncheckedCookie[R]) Sequence() uint64 { return ck.seq }

// VoidCookie is returned for unchecked requests without a reply. There is
// nothing to redeem: errors go to the transport's event queue.
type VoidCookie struct {
	seq uint64
}

func (ck VoidCookie) Sequence() uint64 { return ck.seq }

// CheckedVoidCookie is the handle of a checked request without a reply.
// Redeem it once with Conn.Check.
type CheckedVoidCookie struct {
	seq uint64
}

func (ck CheckedVoidCookie) Sequence() uint64 { return ck.seq }

// Send sends a request whose errors are returned by WaitForReply.
//
//	ck, err := ewmh.Send[ewmh.WindowReply](c, ewmh.GetActiveWindow{})
//	...
//	reply, err := ewmh.WaitForReply(c, ck)
func Send[R any, PR Reply[R]](c *Conn, req ReplyRequest[R]) (Cookie[R], error) {
	seq, err := c.dispatch(req, true)
	if err != nil {
		return Cookie[R]{}, err
	}
	return Cookie[R]{seq}, nil
}

// SendUnchecked sends a request whose errors are not tracked. If the server
// answers with an error, WaitForReplyUnchecked returns no reply and the
// error is delivered to the transport's event queue.
func SendUnchecked[R any, PR Reply[R]](c *Conn, req ReplyRequest[R]) (UncheckedCookie[R], error) {
	seq, err := c.dispatch(req, false)
	if err != nil {
		return UncheckedCookie[R]{}, err
	}
	return UncheckedCookie[R]{seq}, nil
}

// SendVoid sends a request without a reply and without tracking it.
func SendVoid(c *Conn, req VoidRequest) (VoidCookie, error) {
	seq, err := c.dispatch(req, false)
	if err != nil {
		return VoidCookie{}, err
	}
	return VoidCookie{seq}, nil
}

// SendVoidChecked sends a request without a reply. Its error, if any, is
// returned by Conn.Check.
func SendVoidChecked(c *Conn, req VoidRequest) (CheckedVoidCookie, error) {
	seq, err := c.dispatch(req, true)
	if err != nil {
		return CheckedVoidCookie{}, err
	}
	return CheckedVoidCookie{seq}, nil
}

// SendAndCheck is SendVoidChecked followed by Check.
func SendAndCheck(c *Conn, req VoidRequest) error {
	ck, err := SendVoidChecked(c, req)
	if err != nil {
		return err
	}
	return c.Check(ck)
}

// dispatch is the single path every request takes to the transport.
func (c *Conn) dispatch(req Request, checked bool) (uint64, error) {
	if c.atoms.Load() == nil {
		return 0, ErrClosed
	}
	buf, err := req.Encode(c)
	if err != nil {
		return 0, err
	}
	_, void := req.(VoidRequest)
	return c.t.SendRequest(buf, checked, !void)
}

// WaitForReply blocks until the reply to ck arrives and decodes it.
// A protocol error, a *DecodeError or a connection failure is returned
// instead of a reply. Redeeming ck twice fails with xgb.ErrCookieConsumed.
func WaitForReply[R any, PR Reply[R]](c *Conn, ck Cookie[R]) (*R, error) {
	return await[R, PR](c, ck.seq, true)
}

// WaitForReplyUnchecked blocks until the reply to ck arrives and decodes
// it. It returns nil and no error when the server answered with an error or
// the reply could not be decoded. Only a failed connection, a closed Conn
// or a cookie redeemed twice is reported.
func WaitForReplyUnchecked[R any, PR Reply[R]](c *Conn, ck UncheckedCookie[R]) (*R, error) {
	return await[R, PR](c, ck.seq, false)
}

func await[R any, PR Reply[R]](c *Conn, seq uint64, checked bool) (*R, error) {
	if c.atoms.Load() == nil {
		c.t.Discard(seq)
		return nil, ErrClosed
	}

	var buf []byte
	var err error
	if checked {
		buf, err = c.t.WaitForReply(seq)
	} else {
		buf, err = c.t.WaitForReplyUnchecked(seq)
	}
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, nil
	}
	defer c.t.Release(buf)

	r := PR(new(R))
	if err := r.Decode(c, buf); err != nil {
		var derr *DecodeError
		if errors.As(err, &derr) {
			derr.Sequence = seq
		}
		if !checked {
			logger().WithError(err).WithField("seq", seq).
				Warn("dropping undecodable reply")
			return nil, nil
		}
		return nil, err
	}
	return (*R)(r), nil
}

// Check blocks until the request behind ck is known to have succeeded, and
// returns its error otherwise.
func (c *Conn) Check(ck CheckedVoidCookie) error {
	return c.t.CheckRequest(ck.seq)
}

// Sequencer is implemented by every cookie.
type Sequencer interface {
	Sequence() uint64
}

// Discard gives up on a cookie that will not be redeemed. Its reply is
// freed by the transport whenever it arrives, and its error is dropped.
func (c *Conn) Discard(ck Sequencer) {
	c.t.Discard(ck.Sequence())
}
