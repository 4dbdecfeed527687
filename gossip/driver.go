package gossip

import (
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
	"chainspace.io/radiochain/ledger"
	"chainspace.io/radiochain/radio"
)

// Driver encodes outbound messages and hands them to the radio. Failed
// transmissions are logged and otherwise ignored.
type Driver struct {
	log *log.Logger
	tx  radio.Transmitter
}

// BroadcastBlock transmits a single block.
func (d *Driver) BroadcastBlock(b ledger.Block) {
	if log.AtDebug() {
		d.log.Debug("Broadcasting block", fld.BlockIndex(b.Index), fld.AuthorID(b.AuthorID), fld.BlockHash(b.Hash))
	}
	d.send(b.Encode())
}

// BroadcastChain transmits every block held by the chain in index order.
func (d *Driver) BroadcastChain(c *ledger.Chain) {
	for _, b := range c.Blocks() {
		d.BroadcastBlock(b)
	}
}

// BroadcastQueryChain asks the given target to broadcast its chain. A target of
// 0 asks every listener.
func (d *Driver) BroadcastQueryChain(target int32) {
	if log.AtDebug() {
		d.log.Debug("Broadcasting chain query", fld.Target(target))
	}
	d.send(ledger.EncodeQueryChain(target))
}

func (d *Driver) send(payload []byte) {
	if err := d.tx.Transmit(payload); err != nil {
		d.log.Error("Unable to transmit message", fld.Size(len(payload)), fld.Err(err))
	}
}

// NewDriver returns a driver that transmits via the given radio.
func NewDriver(tx radio.Transmitter, l *log.Logger) *Driver {
	if l == nil {
		l = log.With()
	}
	return &Driver{log: l, tx: tx}
}
