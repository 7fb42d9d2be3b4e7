package xgb

// Pad a length to align on 4 bytes.
func Pad(n int) int { return (n + 3) & ^3 }

// Put16 writes v to buf in the client's (little endian) byte order.
func Put16(buf []byte, v uint16) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
}

// Put32 writes v to buf in the client's (little endian) byte order.
func Put32(buf []byte, v uint32) {
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
}

// Get16 reads a 16 bit value written by Put16.
func Get16(buf []byte) uint16 {
	v := uint16(buf[0])
	v |= uint16(buf[1]) << 8
	return v
}

// Get32 reads a 32 bit value written by Put32.
func Get32(buf []byte) uint32 {
	v := uint32(buf[0])
	v |= uint32(buf[1]) << 8
	v |= uint32(buf[2]) << 16
	v |= uint32(buf[3]) << 24
	return v
}

// bytesPadding extends buf with zeroes up to the next 4 byte boundary.
func bytesPadding(buf []byte) []byte {
	return append(buf, make([]byte, Pad(len(buf))-len(buf))...)
}

// widenSequence turns the 16 bit sequence number found on the wire into the
// full sequence number, given the last full sequence number seen.
// The server never answers out of order, and the writer makes sure no more
// than 0xffff requests go out between two packets that carry a sequence
// number, so the result is never behind last.
func widenSequence(last uint64, wire uint16) uint64 {
	seq := (last &^ 0xffff) | uint64(wire)
	if seq < last {
		seq += 0x10000
	}
	return seq
}

// ClientMessageData holds the data from a client message,
// duplicated in three forms because Go doesn't have unions.
type ClientMessageData struct {
	Data8  [20]byte
	Data16 [10]uint16
	Data32 [5]uint32
}

// ClientMessageData32 builds the 32 bit form of a client message payload.
// Missing trailing values are zero.
func ClientMessageData32(vals ...uint32) ClientMessageData {
	var d ClientMessageData
	for i := 0; i < len(vals) && i < 5; i++ {
		d.Data32[i] = vals[i]
		Put32(d.Data8[i*4:], vals[i])
	}
	for i := 0; i < 10; i++ {
		d.Data16[i] = Get16(d.Data8[i*2:])
	}
	return d
}

func getClientMessageData(b []byte, v *ClientMessageData) int {
	copy(v.Data8[:], b)
	for i := 0; i < 10; i++ {
		v.Data16[i] = Get16(b[i*2:])
	}
	for i := 0; i < 5; i++ {
		v.Data32[i] = Get32(b[i*4:])
	}
	return 20
}
