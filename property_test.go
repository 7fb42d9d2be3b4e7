package ewmh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BurntSushi/xgbewmh/xgb"
)

const testUTF8 xgb.Atom = 300

func testConn() *Conn {
	var fixed [atomNameCount]xgb.Atom
	for i := range fixed {
		fixed[i] = xgb.Atom(300 + i)
	}
	c := &Conn{roots: []xgb.Window{0x100}}
	c.atoms.Store(newAtomTable(fixed, []xgb.Atom{500}))
	return c
}

// propertyReply builds a GetProperty reply declaring count values. value is
// copied as is, whether or not it agrees with count.
func propertyReply(typ xgb.Atom, format byte, count uint32, value []byte) []byte {
	buf := make([]byte, 32+xgb.Pad(len(value)))
	buf[0] = 1
	buf[1] = format
	xgb.Put32(buf[4:], uint32(xgb.Pad(len(value))/4))
	xgb.Put32(buf[8:], uint32(typ))
	xgb.Put32(buf[16:], count)
	copy(buf[32:], value)
	return buf
}

func TestParsePropertyCountIsAuthoritative(t *testing.T) {
	value := Uint32Data(1, 2, 3, 4)

	p, err := ParseProperty("CARDINAL[]", propertyReply(xgb.AtomCardinal, 32, 2, value))
	require.NoError(t, err)
	assert.Equal(t, uint32(2), p.Count)
	assert.Equal(t, []uint32{1, 2}, p.Uint32s())

	_, err = ParseProperty("CARDINAL[]", propertyReply(xgb.AtomCardinal, 32, 5, value))
	var derr *DecodeError
	require.True(t, errors.As(err, &derr), "got %v", err)
	assert.Equal(t, "CARDINAL[]", derr.Shape)

	_, err = ParseProperty("CARDINAL[]", propertyReply(xgb.AtomCardinal, 32, 0xffffffff, value))
	assert.Error(t, err)
}

func TestParsePropertyRespectsReplyLength(t *testing.T) {
	buf := propertyReply(xgb.AtomCardinal, 32, 4, Uint32Data(1, 2, 3, 4))
	// The reply claims to be shorter than the buffer it arrived in.
	xgb.Put32(buf[4:], 2)
	_, err := ParseProperty("CARDINAL[]", buf)
	assert.Error(t, err)

	xgb.Put32(buf[16:], 2)
	p, err := ParseProperty("CARDINAL[]", buf)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, p.Uint32s())
}

func TestParsePropertyTruncated(t *testing.T) {
	full := propertyReply(xgb.AtomWindow, 32, 3, Uint32Data(7, 8, 9))
	for n := 0; n < len(full); n++ {
		buf := append([]byte(nil), full[:n]...)
		var r WindowsReply
		assert.NotPanics(t, func() {
			err := r.Decode(nil, buf)
			assert.Error(t, err, "length %d", n)
		})
	}

	var r WindowsReply
	require.NoError(t, r.Decode(nil, full))
	assert.Equal(t, []xgb.Window{7, 8, 9}, r.Windows)

	// Bytes past the declared count are ignored.
	long := propertyReply(xgb.AtomWindow, 32, 3, Uint32Data(7, 8, 9, 10, 11))
	require.NoError(t, r.Decode(nil, long))
	assert.Equal(t, []xgb.Window{7, 8, 9}, r.Windows)
}

func TestParsePropertyMalformed(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"error packet", func() []byte {
			b := propertyReply(xgb.AtomWindow, 32, 0, nil)
			b[0] = 0
			return b
		}()},
		{"bad format", propertyReply(xgb.AtomWindow, 12, 1, Uint32Data(1))},
		{"format 0 with values", propertyReply(xgb.AtomWindow, 0, 1, nil)},
		{"short header", make([]byte, 31)},
	}
	for _, tt := range tests {
		_, err := ParseProperty("WINDOW", tt.buf)
		var derr *DecodeError
		assert.True(t, errors.As(err, &derr), "%s: got %v", tt.name, err)
	}

	_, err := ParseProperty("WINDOW", propertyReply(xgb.AtomNone, 0, 0, nil))
	assert.True(t, errors.Is(err, ErrPropertyNotSet))
}

func TestDecodeChecksShape(t *testing.T) {
	c := testConn()

	var w WindowReply
	err := w.Decode(c, propertyReply(xgb.AtomCardinal, 32, 1, Uint32Data(1)))
	assert.Error(t, err)
	err = w.Decode(c, propertyReply(xgb.AtomWindow, 8, 4, []byte("abcd")))
	assert.Error(t, err)
	err = w.Decode(c, propertyReply(xgb.AtomWindow, 32, 0, nil))
	assert.Error(t, err)

	var s StringReply
	assert.Error(t, s.Decode(c, propertyReply(xgb.AtomString, 8, 2, []byte("hi"))))
	require.NoError(t, s.Decode(c, propertyReply(testUTF8, 8, 2, []byte("hi"))))
	assert.Equal(t, "hi", s.Value)

	var v ViewportReply
	assert.Error(t, v.Decode(c, propertyReply(xgb.AtomCardinal, 32, 3, Uint32Data(1, 2, 3))))

	var wa WorkareaReply
	assert.Error(t, wa.Decode(c, propertyReply(xgb.AtomCardinal, 32, 5, Uint32Data(1, 2, 3, 4, 5))))

	var dl DesktopLayoutReply
	require.NoError(t, dl.Decode(c, propertyReply(xgb.AtomCardinal, 32, 3, Uint32Data(1, 4, 2))))
	assert.Equal(t, DesktopLayoutReply{
		Orientation:    DesktopLayoutOrientationVert,
		Columns:        4,
		Rows:           2,
		StartingCorner: DesktopLayoutStartingCornerTopLeft,
	}, dl)
}

func TestStringsTrailingNul(t *testing.T) {
	c := testConn()
	tests := []struct {
		raw  string
		want []string
	}{
		{"a\x00b\x00", []string{"a", "b"}},
		{"a\x00b", []string{"a", "b"}},
		{"", []string{}},
		{"\x00", []string{}},
		{"a\x00\x00b", []string{"a", "", "b"}},
		{"only", []string{"only"}},
	}
	for _, tt := range tests {
		var r StringsReply
		buf := propertyReply(testUTF8, 8, uint32(len(tt.raw)), []byte(tt.raw))
		require.NoError(t, r.Decode(c, buf), "%q", tt.raw)
		assert.Equal(t, tt.want, r.Values, "%q", tt.raw)
	}

	// Bytes past the declared length are not part of the list.
	var r StringsReply
	buf := propertyReply(testUTF8, 8, 3, []byte("a\x00b\x00c"))
	require.NoError(t, r.Decode(c, buf))
	assert.Equal(t, []string{"a", "b"}, r.Values)

	assert.Equal(t, []byte("a\x00b\x00"), joinNul([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, splitNul(string(joinNul([]string{"a", "b"}))))
}

func TestIconsDecode(t *testing.T) {
	var r IconsReply
	vals := Uint32Data(2, 2, 1, 2, 3, 4, 1, 1, 9)
	require.NoError(t, r.Decode(nil, propertyReply(xgb.AtomCardinal, 32, 9, vals)))
	require.Len(t, r.Icons, 2)
	assert.Equal(t, Icon{Width: 2, Height: 2, Data: []uint32{1, 2, 3, 4}}, r.Icons[0])
	assert.Equal(t, Icon{Width: 1, Height: 1, Data: []uint32{9}}, r.Icons[1])

	// An icon claiming more pixels than there are.
	vals = Uint32Data(0xffff, 0xffff, 1)
	assert.Error(t, r.Decode(nil, propertyReply(xgb.AtomCardinal, 32, 3, vals)))
	vals = Uint32Data(1, 1, 5, 7)
	assert.Error(t, r.Decode(nil, propertyReply(xgb.AtomCardinal, 32, 4, vals)))
}

func TestRepliesDoNotAliasBuffer(t *testing.T) {
	c := testConn()
	buf := propertyReply(xgb.AtomWindow, 32, 2, Uint32Data(5, 6))
	var r WindowsReply
	require.NoError(t, r.Decode(c, buf))
	for i := range buf {
		buf[i] = 0xff
	}
	assert.Equal(t, []xgb.Window{5, 6}, r.Windows)

	buf = propertyReply(testUTF8, 8, 3, []byte("a\x00b"))
	var s StringsReply
	require.NoError(t, s.Decode(c, buf))
	for i := range buf {
		buf[i] = 'z'
	}
	assert.Equal(t, []string{"a", "b"}, s.Values)
}

func TestAtomTable(t *testing.T) {
	c := testConn()
	atoms := c.Atoms()

	assert.Equal(t, xgb.Atom(300), atoms.Atom(UTF8String))
	assert.Equal(t, xgb.AtomNone, atoms.Atom(atomNameCount))
	assert.Equal(t, xgb.Atom(500), atoms.WmCMSn(0))
	assert.Equal(t, xgb.AtomNone, atoms.WmCMSn(-1))

	a, ok := atoms.Lookup("_NET_WM_CM_S0")
	assert.True(t, ok)
	assert.Equal(t, xgb.Atom(500), a)
	_, ok = atoms.Lookup("_NET_NOT_A_HINT")
	assert.False(t, ok)

	name, ok := atoms.Name(c.Atom(NetWmStateHidden))
	assert.True(t, ok)
	assert.Equal(t, "_NET_WM_STATE_HIDDEN", name)

	for i, name := range atomNames {
		assert.NotEmpty(t, name, "AtomName %d has no name", i)
	}
	assert.Equal(t, "AtomName(-1)", AtomName(-1).String())
}
