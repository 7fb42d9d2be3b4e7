package xgbtest

import (
	"github.com/BurntSushi/xgbewmh/xgb"
)

// Connect starts a Server with the given number of screens and returns an
// xgb.Conn dialed to it. Closing the xgb.Conn closes the NetConn too.
func Connect(screens int, opts ...xgb.Option) (*xgb.Conn, *Server, *NetConn, error) {
	srv := NewServer(screens)
	nc := srv.Dial("xgbtest")
	X, err := xgb.NewConnNet(nc, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return X, srv, nc, nil
}
