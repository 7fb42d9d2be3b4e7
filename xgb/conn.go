package xgb

/*
conn.go contains a couple of functions that do some real dirty work related
to the initial connection handshake with X.
*/

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// connect connects to the X server given in the 'display' string,
// and does all the necessary setup handshaking.
// If 'display' is empty it will be taken from os.Getenv("DISPLAY").
// Note that you should read and understand the "Connection Setup" of the
// X Protocol Reference Manual before changing this function:
// http://goo.gl/4zGQg
func (c *Conn) connect(display string) error {
	network, addr, err := c.dial(display)
	if err != nil {
		return err
	}
	conn, err := net.Dial(network, addr)
	if err != nil {
		return errors.Wrapf(err, "cannot connect to %s", display)
	}
	c.conn = conn

	authName, authData, err := readAuthority(c.host, c.display)
	if err != nil {
		logger().WithError(err).Debug("could not get authority info, " +
			"trying without")
		authName, authData = "", nil
	}

	if err := c.postConnect(authName, authData); err != nil {
		conn.Close()
		return err
	}
	return nil
}

// dial parses the DISPLAY string and works out where to connect to. It also
// sets c.host, c.display and c.defaultScreen.
func (c *Conn) dial(display string) (network, addr string, err error) {
	if len(display) == 0 {
		display = os.Getenv("DISPLAY")
	}

	display0 := display
	if len(display) == 0 {
		return "", "", errors.New("empty display string")
	}

	colonIdx := strings.LastIndex(display, ":")
	if colonIdx < 0 {
		return "", "", errors.New("bad display string: " + display0)
	}

	var protocol, socket string

	if display[0] == '/' {
		socket = display[0:colonIdx]
	} else {
		slashIdx := strings.LastIndex(display, "/")
		if slashIdx >= 0 {
			protocol = display[0:slashIdx]
			c.host = display[slashIdx+1 : colonIdx]
		} else {
			c.host = display[0:colonIdx]
		}
	}

	display = display[colonIdx+1:]
	if len(display) == 0 {
		return "", "", errors.New("bad display string: " + display0)
	}

	var scr string
	dotIdx := strings.LastIndex(display, ".")
	if dotIdx < 0 {
		c.display = display[0:]
	} else {
		c.display = display[0:dotIdx]
		scr = display[dotIdx+1:]
	}

	dispnum, err := strconv.Atoi(c.display)
	if err != nil || dispnum < 0 {
		return "", "", errors.New("bad display string: " + display0)
	}

	if len(scr) != 0 {
		c.defaultScreen, err = strconv.Atoi(scr)
		if err != nil {
			return "", "", errors.New("bad display string: " + display0)
		}
	}

	// Connect to server
	switch {
	case len(socket) != 0:
		return "unix", socket + ":" + c.display, nil
	case len(c.host) != 0:
		if protocol == "" {
			protocol = "tcp"
		}
		return protocol, c.host + ":" + strconv.Itoa(6000+dispnum), nil
	default:
		return "unix", "/tmp/.X11-unix/X" + c.display, nil
	}
}

// postConnect sends the connection setup request and reads the server's
// setup information.
func (c *Conn) postConnect(authName string, authData []byte) error {
	buf := make([]byte, 12+Pad(len(authName))+Pad(len(authData)))
	buf[0] = 0x6c // 'l': least significant byte first
	buf[1] = 0
	Put16(buf[2:], 11)
	Put16(buf[4:], 0)
	Put16(buf[6:], uint16(len(authName)))
	Put16(buf[8:], uint16(len(authData)))
	Put16(buf[10:], 0)
	copy(buf[12:], []byte(authName))
	copy(buf[12+Pad(len(authName)):], authData)
	if _, err := c.conn.Write(buf); err != nil {
		return errors.Wrap(err, "cannot send setup request")
	}

	head := make([]byte, 8)
	if _, err := io.ReadFull(c.conn, head); err != nil {
		return errors.Wrap(err, "cannot read setup reply")
	}
	code := head[0]
	reasonLen := head[1]
	major := Get16(head[2:])
	minor := Get16(head[4:])
	dataLen := Get16(head[6:])

	if major != 11 || minor != 0 {
		return errors.Errorf("x protocol version mismatch: %d.%d", major, minor)
	}

	buf = make([]byte, 8+int(dataLen)*4)
	copy(buf, head)
	if _, err := io.ReadFull(c.conn, buf[8:]); err != nil {
		return errors.Wrap(err, "cannot read setup reply")
	}

	switch code {
	case 0:
		end := 8 + int(reasonLen)
		if end > len(buf) {
			end = len(buf)
		}
		return errors.Errorf("x protocol authentication refused: %s",
			string(buf[8:end]))
	case 1:
	case 2:
		return errors.Errorf("x protocol authentication refused: %s",
			strings.TrimRight(string(buf[8:]), "\x00"))
	default:
		return errors.Errorf("unknown setup status %d", code)
	}

	if err := readSetupInfo(buf, &c.Setup); err != nil {
		return err
	}
	if c.defaultScreen >= len(c.Setup.Roots) {
		c.defaultScreen = 0
	}
	return nil
}

// SetupInfo is the part of the server's connection setup reply this package
// keeps.
type SetupInfo struct {
	ProtocolMajorVersion uint16
	ProtocolMinorVersion uint16
	ReleaseNumber        uint32
	ResourceIdBase       uint32
	ResourceIdMask       uint32
	MaximumRequestLength uint16
	Vendor               string
	Roots                []ScreenInfo
}

// ScreenInfo describes one screen.
type ScreenInfo struct {
	Root            Window
	DefaultColormap uint32
	WhitePixel      uint32
	BlackPixel      uint32
	WidthInPixels   uint16
	HeightInPixels  uint16
	RootVisual      uint32
	RootDepth       byte
}

const (
	setupFixedSize  = 40
	formatSize      = 8
	screenFixedSize = 40
	depthFixedSize  = 8
	visualSize      = 24
)

func errShortSetup(what string) error {
	return errors.Errorf("setup reply too short for %s", what)
}

// readSetupInfo parses a successful setup reply, header included.
func readSetupInfo(buf []byte, v *SetupInfo) error {
	if len(buf) < setupFixedSize {
		return errShortSetup("the fixed part")
	}
	v.ProtocolMajorVersion = Get16(buf[2:])
	v.ProtocolMinorVersion = Get16(buf[4:])
	v.ReleaseNumber = Get32(buf[8:])
	v.ResourceIdBase = Get32(buf[12:])
	v.ResourceIdMask = Get32(buf[16:])
	vendorLen := int(Get16(buf[24:]))
	v.MaximumRequestLength = Get16(buf[26:])
	numRoots := int(buf[28])
	numFormats := int(buf[29])

	b := setupFixedSize
	if b+Pad(vendorLen) > len(buf) {
		return errShortSetup("the vendor")
	}
	v.Vendor = string(buf[b : b+vendorLen])
	b += Pad(vendorLen)
	b += numFormats * formatSize
	if b > len(buf) {
		return errShortSetup("the pixmap formats")
	}

	v.Roots = make([]ScreenInfo, numRoots)
	for i := range v.Roots {
		if b+screenFixedSize > len(buf) {
			return errShortSetup(fmt.Sprintf("screen %d", i))
		}
		s := buf[b:]
		v.Roots[i] = ScreenInfo{
			Root:            Window(Get32(s[0:])),
			DefaultColormap: Get32(s[4:]),
			WhitePixel:      Get32(s[8:]),
			BlackPixel:      Get32(s[12:]),
			WidthInPixels:   Get16(s[20:]),
			HeightInPixels:  Get16(s[22:]),
			RootVisual:      Get32(s[32:]),
			RootDepth:       s[38],
		}
		numDepths := int(s[39])
		b += screenFixedSize

		for j := 0; j < numDepths; j++ {
			if b+depthFixedSize > len(buf) {
				return errShortSetup(fmt.Sprintf("depth %d of screen %d", j, i))
			}
			numVisuals := int(Get16(buf[b+2:]))
			b += depthFixedSize + numVisuals*visualSize
			if b > len(buf) {
				return errShortSetup(fmt.Sprintf("visuals of screen %d", i))
			}
		}
	}
	return nil
}
