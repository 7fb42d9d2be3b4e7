package xgb

import (
	"github.com/pkg/errors"
)

// cookie is the transport side of one tracked request. The caller only ever
// sees its sequence number.
type cookie struct {
	Sequence  uint64
	replyChan chan []byte
	errorChan chan error
	pingChan  chan bool

	// discarded is guarded by Conn.cookieLock.
	discarded bool
}

// newCookie returns nil for unchecked requests without a reply: nothing will
// ever wait on them, so nothing is tracked.
func newCookie(seq uint64, checked, reply bool) *cookie {
	if !checked && !reply {
		return nil
	}
	cookie := &cookie{Sequence: seq}

	// There are four different kinds of cookies:
	// Checked requests with replies get a reply channel and an error channel.
	// Unchecked requests with replies get a reply channel and a ping channel.
	// Checked requests w/o replies get a ping channel and an error channel.
	// Unchecked requests w/o replies get no channels.
	// The reply channel is used to send reply data.
	// The error channel is used to send error data.
	// The ping channel is used when one of the 'reply' or 'error' channels
	// is missing but the other is present. The ping channel is way to force
	// the blocking to stop and basically say "the error has been received
	// in the main event loop" (when the ping channel is coupled with a reply
	// channel) or "the request you made that has no reply was successful"
	// (when the ping channel is coupled with an error channel).
	if checked {
		cookie.errorChan = make(chan error, 1)
		if !reply {
			cookie.pingChan = make(chan bool, 1)
		}
	}
	if reply {
		cookie.replyChan = make(chan []byte, 1)
		if !checked {
			cookie.pingChan = make(chan bool, 1)
		}
	}
	return cookie
}

// ping resolves a cookie that will never get a reply or an error routed to
// it. It is a no-op for checked reply cookies.
func (c *cookie) ping() {
	if c.pingChan == nil {
		return
	}
	select {
	case c.pingChan <- true:
	default:
	}
}

// take removes the cookie for seq from the set of redeemable cookies.
// Only one caller can ever take a given cookie.
func (c *Conn) take(seq uint64) (*cookie, error) {
	if err := c.connErr(); err != nil {
		return nil, err
	}

	c.cookieLock.Lock()
	defer c.cookieLock.Unlock()

	cookie, ok := c.cookies[seq]
	if !ok {
		return nil, errors.Wrapf(ErrCookieConsumed, "sequence number %d", seq)
	}
	delete(c.cookies, seq)
	return cookie, nil
}

// WaitForReply blocks until the reply or the error for the checked request
// seq arrives. The returned buffer belongs to the caller, who must hand it
// back with Release.
func (c *Conn) WaitForReply(seq uint64) ([]byte, error) {
	cookie, err := c.take(seq)
	if err != nil {
		return nil, err
	}
	if cookie.replyChan == nil {
		return nil, errors.New("Cannot call 'WaitForReply' on a cookie that " +
			"is not expecting a *reply* or an error.")
	}
	if cookie.errorChan == nil {
		return nil, errors.New("Cannot call 'WaitForReply' on a cookie that " +
			"is not expecting a reply or an *error*.")
	}

	select {
	case reply := <-cookie.replyChan:
		return reply, nil
	case err := <-cookie.errorChan:
		return nil, err
	case <-c.done:
	}

	// The reader may have delivered right before failing.
	select {
	case reply := <-cookie.replyChan:
		return reply, nil
	case err := <-cookie.errorChan:
		return nil, err
	default:
		return nil, c.connErr()
	}
}

// WaitForReplyUnchecked blocks until the reply for the unchecked request seq
// arrives. If the server answered with an error instead, the error is queued
// for WaitForEvent and both return values are nil. Only a failed connection
// is reported as an error.
func (c *Conn) WaitForReplyUnchecked(seq uint64) ([]byte, error) {
	cookie, err := c.take(seq)
	if err != nil {
		return nil, err
	}
	if cookie.replyChan == nil || cookie.errorChan != nil {
		return nil, errors.New("Cannot call 'WaitForReplyUnchecked' on a " +
			"cookie that is not expecting a *reply*.")
	}

	select {
	case reply := <-cookie.replyChan:
		return reply, nil
	case <-cookie.pingChan:
		return nil, nil
	case <-c.done:
	}

	select {
	case reply := <-cookie.replyChan:
		return reply, nil
	case <-cookie.pingChan:
		return nil, nil
	default:
		return nil, c.connErr()
	}
}

// CheckRequest blocks until the checked request seq, which has no reply, is
// known to have succeeded or failed. If the answer isn't in yet, a round
// trip is forced.
func (c *Conn) CheckRequest(seq uint64) error {
	cookie, err := c.take(seq)
	if err != nil {
		return err
	}
	if cookie.replyChan != nil {
		return errors.New("Cannot call 'CheckRequest' on a cookie that is " +
			"expecting a *reply*. Use 'WaitForReply' instead.")
	}
	if cookie.errorChan == nil {
		return errors.New("Cannot call 'CheckRequest' on a cookie that is " +
			"not expecting a possible *error*.")
	}

	select {
	case err := <-cookie.errorChan:
		return err
	case <-cookie.pingChan:
		return nil
	default:
	}

	// Any reply with a later sequence number resolves this cookie before the
	// reply itself is delivered.
	if err := c.Sync(); err != nil {
		return err
	}

	select {
	case err := <-cookie.errorChan:
		return err
	case <-cookie.pingChan:
		return nil
	case <-c.done:
		return c.connErr()
	}
}

// Discard gives up on the cookie for seq. A reply that already arrived is
// freed, one that arrives later is freed by the reader, and an error is
// dropped. Discarding an unknown sequence number does nothing.
func (c *Conn) Discard(seq uint64) {
	c.cookieLock.Lock()
	defer c.cookieLock.Unlock()

	cookie, ok := c.cookies[seq]
	if !ok {
		return
	}
	delete(c.cookies, seq)
	cookie.discarded = true
	if cookie.replyChan != nil {
		select {
		case buf := <-cookie.replyChan:
			c.alloc.Free(buf)
		default:
		}
	}
}

// Release returns a buffer obtained from WaitForReply or
// WaitForReplyUnchecked to the connection's allocator.
func (c *Conn) Release(buf []byte) {
	if buf != nil {
		c.alloc.Free(buf)
	}
}
