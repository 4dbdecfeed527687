// Package sim runs a set of gossip engines over an in-memory radio hub.
package sim // import "chainspace.io/radiochain/sim"

import (
	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/gossip"
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/ledger"
	"chainspace.io/radiochain/node"
	"chainspace.io/radiochain/radio"
)

// Config represents the parameters of a simulation.
type Config struct {
	Data       int32
	Drop       float64
	Duplicate  float64
	MaxPayload int
	// Miners is the number of devices, starting from the first, that mine
	// blocks. Zero means every device mines.
	Miners      int
	Nodes       int
	Probability float64
	Reorder     bool
	Rounds      int
	Seed        int64
	// Settle is the number of chain query rounds issued by every node once
	// mining has stopped.
	Settle int
}

// Result summarises the state of the devices at the end of a simulation.
type Result struct {
	Chains    map[int32][]ledger.Block
	Converged bool
	Delivered int
	Lengths   map[int32]int
}

// Run executes the simulation described by the config.
func Run(cfg Config) *Result {
	hub := radio.NewHub(radio.HubConfig{
		Drop:       cfg.Drop,
		Duplicate:  cfg.Duplicate,
		MaxPayload: cfg.MaxPayload,
		Reorder:    cfg.Reorder,
		Seed:       cfg.Seed,
	})
	if cfg.Nodes < 0 {
		cfg.Nodes = 0
	}
	engines := make([]*gossip.Engine, cfg.Nodes)
	miners := make([]*node.Miner, cfg.Nodes)
	mcfg := &config.Miner{Data: cfg.Data, Probability: cfg.Probability}
	for i := range engines {
		id := int32(i + 1)
		station := hub.Join(id)
		engines[i] = gossip.New(id, station)
		station.Listen(engines[i].HandlePacket)
		miners[i] = node.NewMiner(engines[i], mcfg, cfg.Seed+int64(id))
	}
	res := &Result{
		Chains:  map[int32][]ledger.Block{},
		Lengths: map[int32]int{},
	}
	for _, e := range engines {
		e.Start()
	}
	res.Delivered += hub.Flush(0)
	for round := 0; round < cfg.Rounds; round++ {
		for i, m := range miners {
			if cfg.Miners > 0 && i >= cfg.Miners {
				break
			}
			m.Tick()
		}
		res.Delivered += hub.Flush(0)
	}
	for i := 0; i < cfg.Settle; i++ {
		for _, e := range engines {
			e.Start()
		}
		res.Delivered += hub.Flush(0)
	}
	res.Converged = true
	var first []ledger.Block
	for i, e := range engines {
		blocks := e.Blocks()
		res.Chains[e.LocalIdentity()] = blocks
		res.Lengths[e.LocalIdentity()] = e.ChainLength()
		if i == 0 {
			first = blocks
		} else if !equal(first, blocks) {
			res.Converged = false
		}
	}
	if log.AtInfo() {
		log.Info("Simulation finished", log.Int("nodes", cfg.Nodes), log.Int("rounds", cfg.Rounds),
			log.Bool("converged", res.Converged), log.Int("delivered", res.Delivered))
	}
	return res
}

func equal(a, b []ledger.Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
