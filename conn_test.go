package ewmh_test

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ewmh "github.com/BurntSushi/xgbewmh"
	"github.com/BurntSushi/xgbewmh/internal/mocks"
	"github.com/BurntSushi/xgbewmh/xgb"
)

func internAtomReply(atom xgb.Atom) []byte {
	buf := make([]byte, 32)
	buf[0] = 1
	xgb.Put32(buf[8:], uint32(atom))
	return buf
}

// expectHandshake sets up a mock transport for a successful Connect on one
// screen. Atom i is 100+i.
func expectHandshake(T *mocks.MockTransport) {
	n := len(ewmh.AtomNames()) + 1
	var next uint64

	T.EXPECT().Roots().Return([]xgb.Window{0x100})
	sends := T.EXPECT().SendRequest(gomock.Any(), true, true).Times(n).
		DoAndReturn(func(buf []byte, checked, hasReply bool) (uint64, error) {
			next++
			return next, nil
		})
	T.EXPECT().WaitForReply(gomock.Any()).Times(n).After(sends).
		DoAndReturn(func(seq uint64) ([]byte, error) {
			return internAtomReply(xgb.Atom(99 + seq)), nil
		})
	T.EXPECT().Release(gomock.Any()).Times(n)
}

func mockConn(t *testing.T) (*ewmh.Conn, *mocks.MockTransport) {
	ctrl := gomock.NewController(t)
	T := mocks.NewMockTransport(ctrl)
	expectHandshake(T)
	c, err := ewmh.Connect(T)
	require.NoError(t, err)
	return c, T
}

func TestConnectPipelines(t *testing.T) {
	ctrl := gomock.NewController(t)
	T := mocks.NewMockTransport(ctrl)

	n := len(ewmh.AtomNames()) + 1
	var sent, waited int
	T.EXPECT().Roots().Return([]xgb.Window{0x100})
	T.EXPECT().SendRequest(gomock.Any(), true, true).Times(n).
		DoAndReturn(func(buf []byte, checked, hasReply bool) (uint64, error) {
			assert.Equal(t, byte(xgb.InternAtomOpcode), buf[0])
			assert.Zero(t, waited, "InternAtom sent after a reply was collected")
			sent++
			return uint64(sent), nil
		})
	T.EXPECT().WaitForReply(gomock.Any()).Times(n).
		DoAndReturn(func(seq uint64) ([]byte, error) {
			waited++
			assert.Equal(t, n, sent)
			assert.Equal(t, uint64(waited), seq, "replies collected out of order")
			return internAtomReply(xgb.Atom(99 + seq)), nil
		})
	T.EXPECT().Release(gomock.Any()).Times(n)

	c, err := ewmh.Connect(T)
	require.NoError(t, err)
	assert.Equal(t, xgb.Atom(100), c.Atom(ewmh.AtomName(0)))
	assert.Equal(t, xgb.Atom(99+n), c.Atoms().WmCMSn(0))
}

func TestConnectAbortsOnReplyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	T := mocks.NewMockTransport(ctrl)

	n := len(ewmh.AtomNames()) + 1
	var next uint64
	var discarded []uint64
	T.EXPECT().Roots().Return([]xgb.Window{0x100})
	T.EXPECT().SendRequest(gomock.Any(), true, true).Times(n).
		DoAndReturn(func(buf []byte, checked, hasReply bool) (uint64, error) {
			next++
			return next, nil
		})
	gomock.InOrder(
		T.EXPECT().WaitForReply(uint64(1)).Return(internAtomReply(100), nil),
		T.EXPECT().Release(gomock.Any()),
		T.EXPECT().WaitForReply(uint64(2)).Return(internAtomReply(101), nil),
		T.EXPECT().Release(gomock.Any()),
		T.EXPECT().WaitForReply(uint64(3)).Return(nil, xgb.BadAtom),
	)
	T.EXPECT().Discard(gomock.Any()).Times(n - 3).
		Do(func(seq uint64) { discarded = append(discarded, seq) })

	c, err := ewmh.Connect(T)
	assert.Nil(t, c)
	var herr *ewmh.HandshakeError
	require.True(t, errors.As(err, &herr), "got %v", err)
	assert.Equal(t, ewmh.AtomNames()[2], herr.Name)
	assert.True(t, errors.Is(err, xgb.BadAtom))

	require.Len(t, discarded, n-3)
	for i, seq := range discarded {
		assert.Equal(t, uint64(i+4), seq)
	}
}

func TestConnectAbortsOnSendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	T := mocks.NewMockTransport(ctrl)

	failed := &xgb.ConnError{Err: errors.New("broken pipe")}
	T.EXPECT().Roots().Return([]xgb.Window{0x100})
	gomock.InOrder(
		T.EXPECT().SendRequest(gomock.Any(), true, true).Return(uint64(1), nil),
		T.EXPECT().SendRequest(gomock.Any(), true, true).Return(uint64(2), nil),
		T.EXPECT().SendRequest(gomock.Any(), true, true).Return(uint64(0), failed),
	)
	T.EXPECT().Discard(uint64(1))
	T.EXPECT().Discard(uint64(2))

	c, err := ewmh.Connect(T)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, failed))
}

func TestDispatchFlags(t *testing.T) {
	c, T := mockConn(t)

	T.EXPECT().SendRequest(gomock.Any(), true, true).Return(uint64(200), nil)
	T.EXPECT().SendRequest(gomock.Any(), false, true).Return(uint64(201), nil)
	T.EXPECT().SendRequest(gomock.Any(), false, false).Return(uint64(202), nil)
	T.EXPECT().SendRequest(gomock.Any(), true, false).Return(uint64(203), nil)

	ck, err := ewmh.Send[ewmh.WindowReply](c, ewmh.GetActiveWindow{})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), ck.Sequence())

	uck, err := ewmh.SendUnchecked[ewmh.WindowReply](c, ewmh.GetActiveWindow{})
	require.NoError(t, err)
	assert.Equal(t, uint64(201), uck.Sequence())

	vck, err := ewmh.SendVoid(c, ewmh.SetActiveWindow{Window: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(202), vck.Sequence())

	cvck, err := ewmh.SendVoidChecked(c, ewmh.RequestChangeCurrentDesktop{Desktop: 1})
	require.NoError(t, err)
	assert.Equal(t, uint64(203), cvck.Sequence())
}

func TestUncheckedDecodeErrorReleases(t *testing.T) {
	c, T := mockConn(t)

	bad := make([]byte, 32)
	bad[0] = 1
	xgb.Put32(bad[8:], uint32(xgb.AtomString))
	bad[1] = 8

	gomock.InOrder(
		T.EXPECT().SendRequest(gomock.Any(), false, true).Return(uint64(300), nil),
		T.EXPECT().WaitForReplyUnchecked(uint64(300)).Return(bad, nil),
		T.EXPECT().Release(bad),
	)

	ck, err := ewmh.SendUnchecked[ewmh.CardinalReply](c, ewmh.GetCurrentDesktop{})
	require.NoError(t, err)
	reply, err := ewmh.WaitForReplyUnchecked(c, ck)
	assert.NoError(t, err)
	assert.Nil(t, reply)
}

func TestCloseDiscardsCookie(t *testing.T) {
	c, T := mockConn(t)

	gomock.InOrder(
		T.EXPECT().SendRequest(gomock.Any(), true, true).Return(uint64(400), nil),
		T.EXPECT().Discard(uint64(400)),
	)
	ck, err := ewmh.Send[ewmh.CardinalReply](c, ewmh.GetCurrentDesktop{})
	require.NoError(t, err)

	c.Close()
	_, err = ewmh.WaitForReply(c, ck)
	assert.Equal(t, ewmh.ErrClosed, err)
}
