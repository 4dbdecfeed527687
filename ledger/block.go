package ledger

import (
	"encoding/binary"
	"fmt"
)

// Block is an immutable, hash-linked entry in a Chain.
type Block struct {
	Index        int32
	AuthorID     int32
	Data         int32
	PreviousHash uint8
	Hash         uint8
}

// NewBlock constructs a block and computes its hash.
func NewBlock(index, authorID, data int32, previousHash uint8) Block {
	return Block{
		Index:        index,
		AuthorID:     authorID,
		Data:         data,
		PreviousHash: previousHash,
		Hash:         Sum8(index, authorID, data, previousHash),
	}
}

// Genesis returns the initial block of a chain owned by the given identity.
func Genesis(authorID int32) Block {
	return NewBlock(0, authorID, 0, 0)
}

// Next derives the successor of the block with the given author and data.
func (b Block) Next(authorID, data int32) Block {
	return NewBlock(b.Index+1, authorID, data, b.Hash)
}

// Verify returns whether the stored hash matches the block's contents.
func (b Block) Verify() bool {
	return b.Hash == Sum8(b.Index, b.AuthorID, b.Data, b.PreviousHash)
}

// Encode returns the 16-byte wire form of the block.
func (b Block) Encode() []byte {
	buf := make([]byte, BlockSize)
	buf[0] = byte(TagBlock)
	buf[1] = b.Hash
	buf[2] = b.PreviousHash
	binary.LittleEndian.PutUint32(buf[4:], uint32(b.Index))
	binary.LittleEndian.PutUint32(buf[8:], uint32(b.AuthorID))
	binary.LittleEndian.PutUint32(buf[12:], uint32(b.Data))
	return buf
}

func (b Block) String() string {
	return fmt.Sprintf("block %d %d %d %d", b.Index, b.AuthorID, b.Data, b.Hash)
}

// DecodeBlock decodes a block from its wire form. It rejects buffers without
// the Block tag as well as blocks whose hash doesn't match their contents.
func DecodeBlock(buf []byte) (Block, error) {
	if len(buf) < BlockSize || Tag(buf[0]) != TagBlock {
		return Block{}, ErrMalformedMessage
	}
	b := NewBlock(
		int32(binary.LittleEndian.Uint32(buf[4:])),
		int32(binary.LittleEndian.Uint32(buf[8:])),
		int32(binary.LittleEndian.Uint32(buf[12:])),
		buf[2],
	)
	if b.Hash != buf[1] {
		return Block{}, ErrHashMismatch
	}
	return b, nil
}
