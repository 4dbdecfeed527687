package ledger

// PeerTable tracks the chain observed for each peer. Entries are created on
// first sighting and are never removed.
type PeerTable struct {
	chains map[int32]*Chain
}

// Len returns the number of peers seen so far.
func (p *PeerTable) Len() int {
	return len(p.chains)
}

// Lookup returns the chain for the given peer if it has been seen.
func (p *PeerTable) Lookup(peerID int32) (*Chain, bool) {
	c, ok := p.chains[peerID]
	return c, ok
}

// LookupOrCreate returns the chain for the given peer, registering an empty one
// if the peer hasn't been seen before.
func (p *PeerTable) LookupOrCreate(peerID int32) *Chain {
	c, ok := p.chains[peerID]
	if !ok {
		c = NewChain(peerID)
		p.chains[peerID] = c
	}
	return c
}

// NewPeerTable returns an empty peer table.
func NewPeerTable() *PeerTable {
	return &PeerTable{chains: map[int32]*Chain{}}
}
