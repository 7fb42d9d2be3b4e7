/*
Package xgb is the X transport underneath xgbewmh. It speaks just enough of
the core X protocol to get and set window properties and to send client
messages, and it does the bookkeeping that makes requests asynchronous.

It is *very* closely modeled on XCB, so that experience with XCB (or xpyb) is
easily translatable to XGB. That is, it uses the same cookie/reply model
and is thread safe.

Sequence numbers

Every request is assigned a 64 bit sequence number when it is handed to
SendRequest. The server only ever talks about the low 16 bits; the reader
widens them again, and SendRequest slips in a GetInputFocus whenever too many
requests without replies have gone out in a row for that to be ambiguous.

Cookies

Whether a request is checked and whether it has a reply is decided when it is
sent, and decides which of WaitForReply, WaitForReplyUnchecked and
CheckRequest can redeem its sequence number. A sequence number can be redeemed
once. Errors for requests nobody checks show up in WaitForEvent.

Buffers

Replies are read into buffers from an Allocator (see WithAllocator). The
caller of WaitForReply owns the buffer it gets back and returns it with
Release.

Example

	X, err := xgb.NewConn()
	if err != nil {
		log.Fatal(err)
	}
	defer X.Close()

	seq, err := X.SendRequest(xgb.InternAtomRequest(false, "_NET_SUPPORTED"),
		true, true)
	if err != nil {
		log.Fatal(err)
	}
	buf, err := X.WaitForReply(seq)
	if err != nil {
		log.Fatal(err)
	}
	atom, err := xgb.InternAtomReply(buf)
	X.Release(buf)

Errors

A failed connection makes every call return the same *ConnError. Errors sent
by the server are *ProtocolError values whose codes can be matched with
errors.Is:

	if errors.Is(err, xgb.BadWindow) {
		...
	}
*/
package xgb
