package ledger

import (
	"strconv"
)

const djb2Seed = 5381

// Digest returns the DJB2 hash of the decimal representations of the given
// block fields concatenated together. The arithmetic wraps at 32 bits so that
// every device computes the same value.
func Digest(index, authorID, data, previousHash int32) int32 {
	buf := make([]byte, 0, 44)
	buf = strconv.AppendInt(buf, int64(index), 10)
	buf = strconv.AppendInt(buf, int64(authorID), 10)
	buf = strconv.AppendInt(buf, int64(data), 10)
	buf = strconv.AppendInt(buf, int64(previousHash), 10)
	h := int32(djb2Seed)
	for _, c := range buf {
		h = (h << 5) + h + int32(c)
	}
	return h
}

// Sum8 returns the low 8 bits of the Digest, which is the form carried on the
// wire and stored within blocks.
func Sum8(index, authorID, data int32, previousHash uint8) uint8 {
	return uint8(Digest(index, authorID, data, int32(previousHash)))
}
