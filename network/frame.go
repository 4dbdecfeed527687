package network

import (
	"encoding/binary"
	"errors"
)

// FrameHeaderSize is the number of bytes that precede the radio payload in a
// UDP datagram: the radio group followed by the sender's identity.
const FrameHeaderSize = 5

// ErrShortFrame is returned when decoding a datagram that is too short to
// contain a frame header.
var ErrShortFrame = errors.New("network: frame is shorter than its header")

// Frame is a radio packet as carried within a UDP datagram.
type Frame struct {
	Group   uint8
	Sender  int32
	Payload []byte
}

// DecodeFrame parses the given datagram. The returned payload aliases buf.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < FrameHeaderSize {
		return Frame{}, ErrShortFrame
	}
	return Frame{
		Group:   buf[0],
		Sender:  int32(binary.LittleEndian.Uint32(buf[1:])),
		Payload: buf[FrameHeaderSize:],
	}, nil
}

// Encode returns the datagram for the frame.
func (f Frame) Encode() []byte {
	buf := make([]byte, FrameHeaderSize+len(f.Payload))
	buf[0] = f.Group
	binary.LittleEndian.PutUint32(buf[1:], uint32(f.Sender))
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf
}
