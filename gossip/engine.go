// Package gossip implements the reconciliation of chains between devices that
// share a broadcast radio medium.
package gossip // import "chainspace.io/radiochain/gossip"

import (
	"sync"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
	"chainspace.io/radiochain/ledger"
	"chainspace.io/radiochain/radio"
)

// Engine holds the local chain along with the chains observed from peers, and
// reacts to inbound messages by requesting missing blocks or adopting a longer
// valid chain. All methods are safe for concurrent use and are serialised so
// that only one handler mutates state at a time.
type Engine struct {
	driver    *Driver
	id        int32
	local     *ledger.Chain
	log       *log.Logger
	mu        sync.Mutex
	observers map[EventKind][]func(Event)
	peers     *ledger.PeerTable
}

// AllAuthorIDs returns the author of every block in the local chain, including
// the genesis block, in chain order.
func (e *Engine) AllAuthorIDs() []int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	blocks := e.local.Blocks()
	ids := make([]int32, len(blocks))
	for i, b := range blocks {
		ids[i] = b.AuthorID
	}
	return ids
}

// AllValues returns the data of every block in the local chain after the
// genesis block.
func (e *Engine) AllValues() []int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return values(e.local, func(ledger.Block) bool { return true })
}

// AppendLocal mints a new block with the given data onto the local chain and
// broadcasts it.
func (e *Engine) AppendLocal(data int32) ledger.Block {
	e.mu.Lock()
	b := e.local.Append(data)
	e.driver.BroadcastBlock(b)
	e.mu.Unlock()
	e.log.Info("Appended block", fld.BlockIndex(b.Index), log.Int32("data", data))
	return b
}

// Blocks returns a copy of the local chain's blocks.
func (e *Engine) Blocks() []ledger.Block {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.local.Blocks()
}

// ChainLength returns the number of blocks in the local chain, excluding the
// genesis block.
func (e *Engine) ChainLength() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.local.Len() - 1
}

// Handle processes a message received from the given sender. Malformed and
// corrupted messages are logged and dropped.
func (e *Engine) Handle(sender int32, payload []byte) {
	e.mu.Lock()
	events := e.handle(sender, payload)
	e.mu.Unlock()
	e.notify(events)
}

// HandlePacket is a radio.Handler for the Engine.
func (e *Engine) HandlePacket(pkt radio.Packet) {
	e.Handle(pkt.Sender, pkt.Payload)
}

// LocalIdentity returns the identity of this device.
func (e *Engine) LocalIdentity() int32 {
	return e.id
}

// PeerCount returns the number of peers that have been heard from.
func (e *Engine) PeerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.peers.Len()
}

// Start announces the device by asking every listener for its chain.
func (e *Engine) Start() {
	e.mu.Lock()
	e.driver.BroadcastQueryChain(0)
	e.mu.Unlock()
}

// Subscribe registers a handler for the given kind of event. Handlers are
// called in the order they were raised, after the triggering operation has
// released the engine, so they may call back into the Engine.
func (e *Engine) Subscribe(kind EventKind, handler func(Event)) {
	e.mu.Lock()
	e.observers[kind] = append(e.observers[kind], handler)
	e.mu.Unlock()
}

// ValuesByAuthor returns the data of the blocks in the local chain that were
// minted by the given identity, excluding the genesis block.
func (e *Engine) ValuesByAuthor(authorID int32) []int32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return values(e.local, func(b ledger.Block) bool {
		return b.AuthorID == authorID
	})
}

func (e *Engine) event(kind EventKind) Event {
	return Event{ChainLength: e.local.Len() - 1, Kind: kind}
}

func (e *Engine) handle(sender int32, payload []byte) []Event {
	tag, err := ledger.MessageTag(payload)
	if err != nil {
		e.log.Debug("Dropping empty message", fld.PeerID(sender))
		return nil
	}
	switch tag {
	case ledger.TagQueryChain:
		return e.handleQueryChain(sender, payload)
	case ledger.TagBlock:
		return e.handleBlock(sender, payload)
	default:
		if log.AtDebug() {
			e.log.Debug("Dropping message with unknown tag", fld.PeerID(sender), fld.Tag(uint8(tag)))
		}
		return nil
	}
}

func (e *Engine) handleBlock(sender int32, payload []byte) []Event {
	b, err := ledger.DecodeBlock(payload)
	if err != nil {
		if err == ledger.ErrHashMismatch {
			e.log.Warn("Dropping corrupted block", fld.PeerID(sender), fld.Err(err))
		} else {
			e.log.Debug("Dropping malformed block", fld.PeerID(sender), fld.Err(err))
		}
		return nil
	}
	if log.AtDebug() {
		e.log.Debug("Received block", fld.PeerID(sender), fld.BlockIndex(b.Index), fld.AuthorID(b.AuthorID))
	}
	peer := e.peers.LookupOrCreate(sender)
	peer.Insert(b)
	if peer.LastIndex() <= e.local.LastIndex() {
		return nil
	}
	if !peer.IsComplete() {
		e.log.Debug("Peer chain is incomplete", fld.PeerID(sender), fld.BlockIndex(peer.LastIndex()))
		e.driver.BroadcastQueryChain(sender)
		return nil
	}
	if !e.local.Replace(peer) {
		return nil
	}
	last, _ := e.local.LastBlock()
	e.log.Info("Adopted longer chain from peer", fld.PeerID(sender), fld.ChainLength(e.local.Len()-1))
	e.driver.BroadcastBlock(last)
	return []Event{e.event(Updated)}
}

func (e *Engine) handleQueryChain(sender int32, payload []byte) []Event {
	target, err := ledger.DecodeQueryChain(payload)
	if err != nil {
		e.log.Debug("Dropping malformed chain query", fld.PeerID(sender), fld.Err(err))
		return nil
	}
	if target != 0 && target != e.id {
		return nil
	}
	if log.AtDebug() {
		e.log.Debug("Answering chain query", fld.PeerID(sender), fld.Target(target))
	}
	e.driver.BroadcastChain(e.local)
	return []Event{e.event(Broadcasted)}
}

func (e *Engine) notify(events []Event) {
	if len(events) == 0 {
		return
	}
	e.mu.Lock()
	observers := make([][]func(Event), len(events))
	for i, ev := range events {
		observers[i] = e.observers[ev.Kind]
	}
	e.mu.Unlock()
	for i, ev := range events {
		for _, handler := range observers[i] {
			handler(ev)
		}
	}
}

func values(c *ledger.Chain, include func(ledger.Block) bool) []int32 {
	var vals []int32
	for _, b := range c.Blocks() {
		if b.Index == 0 || !include(b) {
			continue
		}
		vals = append(vals, b.Data)
	}
	return vals
}

// New returns an Engine for the device with the given identity. The local
// chain is initialised with a genesis block authored by that identity.
func New(id int32, tx radio.Transmitter) *Engine {
	l := log.With(fld.NodeID(id))
	return &Engine{
		driver:    NewDriver(tx, l),
		id:        id,
		local:     ledger.NewLocalChain(id),
		log:       l,
		observers: map[EventKind][]func(Event){},
		peers:     ledger.NewPeerTable(),
	}
}
