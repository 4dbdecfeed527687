package ledger

import (
	"encoding/binary"
	"errors"
	"strconv"
)

// Tag identifies the type of a wire message by its first byte.
type Tag uint8

// Message tags.
const (
	TagQueryChain Tag = 1
	TagBlock      Tag = 2
)

// Encoded message sizes.
const (
	BlockSize      = 16
	QueryChainSize = 6
)

// Error values.
var (
	ErrHashMismatch     = errors.New("ledger: block hash does not match its contents")
	ErrMalformedMessage = errors.New("ledger: malformed message")
)

func (t Tag) String() string {
	switch t {
	case TagBlock:
		return "Block"
	case TagQueryChain:
		return "QueryChain"
	default:
		return "Tag(" + strconv.FormatUint(uint64(t), 10) + ")"
	}
}

// MessageTag returns the tag of the given message.
func MessageTag(buf []byte) (Tag, error) {
	if len(buf) == 0 {
		return 0, ErrMalformedMessage
	}
	return Tag(buf[0]), nil
}

// EncodeQueryChain encodes a request for the chain of the given target. A
// target of 0 asks every listener to respond.
func EncodeQueryChain(target int32) []byte {
	buf := make([]byte, QueryChainSize)
	buf[0] = byte(TagQueryChain)
	binary.LittleEndian.PutUint32(buf[2:], uint32(target))
	return buf
}

// DecodeQueryChain returns the target of an encoded QueryChain message.
func DecodeQueryChain(buf []byte) (int32, error) {
	if len(buf) < QueryChainSize || Tag(buf[0]) != TagQueryChain {
		return 0, ErrMalformedMessage
	}
	return int32(binary.LittleEndian.Uint32(buf[2:])), nil
}
