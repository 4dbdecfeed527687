package ledger

import (
	"sort"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
)

// Chain is the sequence of blocks belonging to one identity. Blocks received
// from peers may arrive out of order, so a Chain can contain holes until the
// missing indices are filled in. A Chain is not safe for concurrent use.
type Chain struct {
	blocks map[int32]Block
	last   int32
	owner  int32
}

// Append derives a new block from the last one in the chain, authored by the
// chain's owner, and adds it to the chain.
func (c *Chain) Append(data int32) Block {
	var b Block
	if last, ok := c.LastBlock(); ok {
		b = last.Next(c.owner, data)
	} else {
		b = NewBlock(0, c.owner, data, 0)
	}
	c.Insert(b)
	return b
}

// Blocks returns the blocks held by the chain in index order, skipping any
// holes.
func (c *Chain) Blocks() []Block {
	blocks := make([]Block, 0, len(c.blocks))
	for _, b := range c.blocks {
		blocks = append(blocks, b)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Index < blocks[j].Index
	})
	return blocks
}

// Get returns the block at the given index.
func (c *Chain) Get(index int32) (Block, bool) {
	b, ok := c.blocks[index]
	return b, ok
}

// Insert places the block at its index, overwriting whatever was there before.
// Blocks with a negative index are ignored.
func (c *Chain) Insert(b Block) {
	if b.Index < 0 {
		log.Debug("Ignoring block with negative index", fld.PeerID(c.owner), fld.BlockIndex(b.Index))
		return
	}
	c.blocks[b.Index] = b
	if b.Index > c.last {
		c.last = b.Index
	}
}

// IsComplete returns whether the chain holds every block from the genesis
// through to its last block.
func (c *Chain) IsComplete() bool {
	if c.last < 0 {
		return false
	}
	return int64(len(c.blocks)) == int64(c.last)+1
}

// IsValid returns whether the chain is complete with each block following on
// from the previous one and hashing correctly. A block whose previous hash
// doesn't match its predecessor is logged but doesn't invalidate the chain.
func (c *Chain) IsValid() bool {
	if !c.IsComplete() {
		if log.AtDebug() {
			log.Debug("Chain is not complete", fld.PeerID(c.owner), fld.BlockIndex(c.last))
		}
		return false
	}
	prev := c.blocks[0]
	if !prev.Verify() {
		log.Warn("Invalid genesis hash", fld.PeerID(c.owner))
		return false
	}
	for i := int32(1); i <= c.last; i++ {
		next := c.blocks[i]
		if prev.Index+1 != next.Index {
			log.Warn("Invalid block index", fld.PeerID(c.owner), fld.BlockIndex(next.Index))
			return false
		}
		if prev.Hash != next.PreviousHash {
			log.Warn("Invalid previous hash", fld.PeerID(c.owner), fld.BlockIndex(next.Index),
				fld.BlockHash(prev.Hash), log.Uint8("block.prev", next.PreviousHash))
		}
		if !next.Verify() {
			log.Warn("Invalid block hash", fld.PeerID(c.owner), fld.BlockIndex(next.Index))
			return false
		}
		prev = next
	}
	return true
}

// LastBlock returns the block with the highest index in the chain.
func (c *Chain) LastBlock() (Block, bool) {
	if c.last < 0 {
		return Block{}, false
	}
	b, ok := c.blocks[c.last]
	return b, ok
}

// LastIndex returns the highest block index in the chain, or -1 if the chain
// is empty.
func (c *Chain) LastIndex() int32 {
	return c.last
}

// Len returns the number of blocks held by the chain.
func (c *Chain) Len() int {
	return len(c.blocks)
}

// Owner returns the identity of the chain's owner.
func (c *Chain) Owner() int32 {
	return c.owner
}

// Replace adopts the blocks of the other chain if it is valid and strictly
// longer than this one. It returns whether the replacement happened.
func (c *Chain) Replace(other *Chain) bool {
	if other.Len() <= c.Len() {
		return false
	}
	if !other.IsValid() {
		return false
	}
	blocks := make(map[int32]Block, len(other.blocks))
	for idx, b := range other.blocks {
		blocks[idx] = b
	}
	c.blocks = blocks
	c.last = other.last
	return true
}

// NewChain returns an empty chain for the given identity. Peer chains start
// off this way and are filled in as blocks are received.
func NewChain(owner int32) *Chain {
	return &Chain{
		blocks: map[int32]Block{},
		last:   -1,
		owner:  owner,
	}
}

// NewLocalChain returns a chain for the given identity that is initialised with
// a genesis block.
func NewLocalChain(owner int32) *Chain {
	c := NewChain(owner)
	c.Insert(Genesis(owner))
	return c
}
