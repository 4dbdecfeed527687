// Package radio models the broadcast medium that devices gossip over. Packets
// are small, unacknowledged and may be lost, duplicated or reordered.
package radio // import "chainspace.io/radiochain/radio"

import (
	"errors"
)

// DefaultMaxPayload is the largest payload, in bytes, that a single radio
// packet can carry.
const DefaultMaxPayload = 19

// DefaultGroup is the radio group that devices listen on unless configured
// otherwise.
const DefaultGroup = 100

// ErrPayloadTooLarge is returned when transmitting a payload that doesn't fit
// within a single radio packet.
var ErrPayloadTooLarge = errors.New("radio: payload exceeds the maximum packet size")

// Packet is a payload received from the medium along with the identity of the
// device that sent it.
type Packet struct {
	Sender  int32
	Payload []byte
}

// Handler is called for every packet received by a device.
type Handler func(Packet)

// Transmitter broadcasts payloads to every device in range. Transmission is
// fire-and-forget and a nil error does not imply delivery.
type Transmitter interface {
	Transmit(payload []byte) error
}

// CheckPayload returns ErrPayloadTooLarge if the payload exceeds the given
// limit. A non-positive limit uses DefaultMaxPayload.
func CheckPayload(payload []byte, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxPayload
	}
	if len(payload) > limit {
		return ErrPayloadTooLarge
	}
	return nil
}
