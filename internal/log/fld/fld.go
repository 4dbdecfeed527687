// Package fld provides field constructors with preset key names.
package fld

import (
	"chainspace.io/radiochain/internal/log"
)

// Address log field.
func Address(value string) log.Field {
	return log.String("address", value)
}

// AuthorID log field.
func AuthorID(value int32) log.Field {
	return log.Int32("author.id", value)
}

// BlockHash log field.
func BlockHash(value uint8) log.Field {
	return log.Uint8("block.hash", value)
}

// BlockIndex log field.
func BlockIndex(value int32) log.Field {
	return log.Int32("block.index", value)
}

// ChainLength log field.
func ChainLength(value int) log.Field {
	return log.Int("chain.length", value)
}

// Err log field.
func Err(value error) log.Field {
	return log.Err(value)
}

// Group log field.
func Group(value uint8) log.Field {
	return log.Uint8("radio.group", value)
}

// NodeID log field.
func NodeID(value int32) log.Field {
	return log.Int32("node.id", value)
}

// Path log field.
func Path(value string) log.Field {
	return log.String("path", value)
}

// PayloadLimit log field.
func PayloadLimit(value int) log.Field {
	return log.Int("payload.limit", value)
}

// PeerID log field.
func PeerID(value int32) log.Field {
	return log.Int32("peer.id", value)
}

// Size log field.
func Size(value int) log.Field {
	return log.Int("size", value)
}

// Tag log field.
func Tag(value uint8) log.Field {
	return log.Uint8("message.tag", value)
}

// Target log field.
func Target(value int32) log.Field {
	return log.Int32("target", value)
}

// Values log field.
func Values(value []int32) log.Field {
	return log.Int32s("values", value)
}
