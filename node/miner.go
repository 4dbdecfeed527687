package node

import (
	"context"
	"math/rand"
	"time"

	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/ledger"
)

// Appender mints blocks onto a local chain.
type Appender interface {
	AppendLocal(data int32) ledger.Block
}

// Miner periodically appends blocks, each tick succeeding with a fixed
// probability. It stands in for a device owner shaking their device.
type Miner struct {
	data        int32
	interval    time.Duration
	probability float64
	rand        *rand.Rand
	target      Appender
}

// Run ticks the miner at its interval until the context is cancelled.
func (m *Miner) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick rolls the dice once and appends a block on success. It returns whether
// a block was appended.
func (m *Miner) Tick() bool {
	if m.rand.Float64() >= m.probability {
		return false
	}
	m.target.AppendLocal(m.data)
	return true
}

// NewMiner returns a miner for the given target.
func NewMiner(target Appender, cfg *config.Miner, seed int64) *Miner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = config.DefaultMinerInterval
	}
	return &Miner{
		data:        cfg.Data,
		interval:    interval,
		probability: cfg.Probability,
		rand:        rand.New(rand.NewSource(seed)),
		target:      target,
	}
}
