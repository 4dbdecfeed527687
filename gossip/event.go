package gossip

import (
	"strconv"
)

// EventKind identifies a notification raised by the Engine.
type EventKind uint8

// Event kinds.
const (
	Updated     EventKind = 1
	Broadcasted EventKind = 2
)

func (k EventKind) String() string {
	switch k {
	case Broadcasted:
		return "Broadcasted"
	case Updated:
		return "Updated"
	default:
		return "EventKind(" + strconv.FormatUint(uint64(k), 10) + ")"
	}
}

// Event is passed to subscribers. ChainLength is the length of the local chain,
// excluding the genesis block, at the time the event was raised.
type Event struct {
	ChainLength int
	Kind        EventKind
}
