/*
Package ewmh reads and writes the Extended Window Manager Hints over an X
connection, asynchronously and with typed replies.

A Conn is made from a transport, usually an *xgb.Conn. Connect interns every
atom EWMH uses in one round trip and fails without a Conn if any of them
could not be interned:

	X, err := xgb.NewConn()
	if err != nil {
		log.Fatal(err)
	}
	defer X.Close()

	c, err := ewmh.Connect(X)
	if err != nil {
		log.Fatal(err)
	}

Requests and cookies

Every property and client message is a request type. Request types with a
reply name their reply type, so a cookie can only be redeemed for the reply
its request produces:

	ck, err := ewmh.Send[ewmh.WindowsReply](c, ewmh.GetClientList{Screen: 0})
	if err != nil {
		log.Fatal(err)
	}
	reply, err := ewmh.WaitForReply(c, ck)

Any number of requests can be sent before the first reply is waited for,
and replies can be waited for in any order.

Checked and unchecked

Send and SendVoidChecked track errors: WaitForReply and Conn.Check return
them. SendUnchecked and SendVoid do not: WaitForReplyUnchecked returns no
reply and no error when the server answered with an error, which then turns
up in the transport's event queue. A failed connection is reported either
way.

A cookie is redeemed at most once. Cookies that will not be redeemed should
be given to Conn.Discard.

Errors

Server errors come back as *xgb.ProtocolError. A reply that does not have
the type, format or length its request expects is a *DecodeError; for a
property that is not set its cause is ErrPropertyNotSet:

	if errors.Is(err, ewmh.ErrPropertyNotSet) {
		...
	}
*/
package ewmh
