package xgb

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidenSequence(t *testing.T) {
	tests := []struct {
		last uint64
		wire uint16
		want uint64
	}{
		{0, 1, 1},
		{1, 1, 1},
		{65535, 65535, 65535},
		{65535, 0, 65536},
		{65001, 4466, 70002},
		{0x3fffe, 0xffff, 0x3ffff},
		{0x3ffff, 2, 0x40002},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, widenSequence(tt.last, tt.wire),
			"widenSequence(%d, %d)", tt.last, tt.wire)
	}
}

func TestDisplayParsing(t *testing.T) {
	tests := []struct {
		display, network, addr, host string
		screen                       int
	}{
		{":1", "unix", "/tmp/.X11-unix/X1", "", 0},
		{":0.2", "unix", "/tmp/.X11-unix/X0", "", 2},
		{"/tmp/launch-123/:0", "unix", "/tmp/launch-123/:0", "", 0},
		{"hostname:2.1", "tcp", "hostname:6002", "hostname", 1},
		{"tcp/hostname:1.0", "tcp", "hostname:6001", "hostname", 0},
	}
	for _, tt := range tests {
		c := &Conn{}
		network, addr, err := c.dial(tt.display)
		require.NoError(t, err, tt.display)
		assert.Equal(t, tt.network, network, tt.display)
		assert.Equal(t, tt.addr, addr, tt.display)
		assert.Equal(t, tt.host, c.host, tt.display)
		assert.Equal(t, tt.screen, c.defaultScreen, tt.display)
	}

	for _, bad := range []string{"nocolon", "host:", "host:x", ":1.y"} {
		_, _, err := (&Conn{}).dial(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadSetupInfoTruncated(t *testing.T) {
	buf := make([]byte, 40+8+40)
	Put16(buf[24:], 5) // vendor length
	buf[28] = 1        // one screen
	copy(buf[40:], "xorg")
	Put32(buf[48:], 0x2a)

	var v SetupInfo
	require.NoError(t, readSetupInfo(buf, &v))
	assert.Equal(t, "xorg\x00", v.Vendor)
	require.Len(t, v.Roots, 1)
	assert.Equal(t, Window(0x2a), v.Roots[0].Root)

	for _, n := range []int{10, 44, 60} {
		assert.Error(t, readSetupInfo(buf[:n], &v), "length %d", n)
	}

	// A screen claiming a depth that isn't there.
	buf[48+39] = 1
	assert.Error(t, readSetupInfo(buf, &v))
}

func TestFindAuthority(t *testing.T) {
	var file bytes.Buffer
	entry := func(family uint16, fields ...string) {
		file.Write([]byte{byte(family >> 8), byte(family)})
		for _, f := range fields {
			file.Write([]byte{byte(len(f) >> 8), byte(len(f))})
			file.WriteString(f)
		}
	}
	entry(familyLocal, "otherhost", "0", "MIT-MAGIC-COOKIE-1", "nope")
	entry(familyLocal, "myhost", "1", "MIT-MAGIC-COOKIE-1", "nope")
	entry(familyLocal, "myhost", "0", "MIT-MAGIC-COOKIE-1", "secret")

	name, data, err := findAuthority(bytes.NewReader(file.Bytes()), "myhost", "0")
	require.NoError(t, err)
	assert.Equal(t, "MIT-MAGIC-COOKIE-1", name)
	assert.Equal(t, []byte("secret"), data)

	_, _, err = findAuthority(bytes.NewReader(file.Bytes()), "myhost", "7")
	assert.Error(t, err)
}

func TestProtocolErrorCodes(t *testing.T) {
	buf := make([]byte, 32)
	buf[1] = byte(BadAtom)
	Put32(buf[4:], 99)
	buf[10] = GetPropertyOpcode
	err := newProtocolError(buf, 70000)

	assert.True(t, errors.Is(err, BadAtom))
	assert.False(t, errors.Is(err, BadWindow))
	assert.Equal(t, uint64(70000), err.SequenceId())
	assert.Equal(t, uint32(99), err.BadId())
	assert.Contains(t, err.Error(), "BadAtom")
	assert.Equal(t, "UnknownError(200)", ErrorCode(200).Error())
}

func TestClientMessageEventBytes(t *testing.T) {
	ev := ClientMessageEvent{
		Format: 32,
		Window: 7,
		Type:   300,
		Data:   ClientMessageData32(1, 2, 3, 4, 5),
	}
	buf := ev.Bytes()
	require.Len(t, buf, 32)
	assert.Equal(t, byte(ClientMessage), buf[0])

	back := clientMessageEventNew(buf).(ClientMessageEvent)
	assert.Equal(t, ev.Window, back.Window)
	assert.Equal(t, ev.Type, back.Type)
	assert.Equal(t, [5]uint32{1, 2, 3, 4, 5}, back.Data.Data32)
}

func TestChangePropertyRequestPadding(t *testing.T) {
	buf := ChangePropertyRequest(PropModeAppend, 1, 2, AtomString, 8, []byte("abcde"))
	assert.Len(t, buf, 32)
	assert.Equal(t, uint16(8), Get16(buf[2:]))
	assert.Equal(t, uint32(5), Get32(buf[20:]))

	buf = ChangePropertyRequest(PropModeReplace, 1, 2, AtomCardinal, 32, make([]byte, 8))
	assert.Equal(t, uint32(2), Get32(buf[20:]))
}
