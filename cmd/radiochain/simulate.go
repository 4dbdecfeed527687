package main

import (
	"fmt"
	"sort"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/radio"
	"chainspace.io/radiochain/sim"
)

func cmdSimulate(args []string, usage string) {

	opts := newOpts("simulate [OPTIONS]", usage)
	nodes := opts.Flags("-n", "--nodes").Label("N").Int("number of devices [5]", 5)
	rounds := opts.Flags("-r", "--rounds").Label("N").Int("number of mining rounds [20]", 20)
	miners := opts.Flags("--miners").Label("N").Int("number of devices that mine, 0 for all [0]", 0)
	settle := opts.Flags("--settle").Label("N").Int("chain query rounds after mining stops [3]", 3)
	drop := opts.Flags("--drop").Label("PERCENT").Int("percentage of packets lost [10]", 10)
	dup := opts.Flags("--duplicate").Label("PERCENT").Int("percentage of packets duplicated [5]", 5)
	chance := opts.Flags("--chance").Label("PERCENT").Int("chance that a device mines each round [33]", 33)
	seed := opts.Flags("--seed").Label("N").Int("seed for the random number generators [1]", 1)
	ordered := opts.Flags("--ordered").Bool("deliver packets in the order they were sent")
	verbose := opts.Flags("-v", "--verbose").Bool("log at the debug level")
	opts.Parse(args)

	if *nodes < 0 {
		log.Fatal("The number of devices cannot be negative", log.Int("nodes", *nodes))
	}

	if *verbose {
		log.ToConsole(log.DebugLevel)
	} else {
		log.ToConsole(log.InfoLevel)
	}

	res := sim.Run(sim.Config{
		Data:        1,
		Drop:        float64(*drop) / 100,
		Duplicate:   float64(*dup) / 100,
		MaxPayload:  radio.DefaultMaxPayload,
		Miners:      *miners,
		Nodes:       *nodes,
		Probability: float64(*chance) / 100,
		Reorder:     !*ordered,
		Rounds:      *rounds,
		Seed:        int64(*seed),
		Settle:      *settle,
	})

	ids := make([]int, 0, len(res.Lengths))
	for id := range res.Lengths {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	for _, id := range ids {
		var authors []int32
		for _, b := range res.Chains[int32(id)][1:] {
			authors = append(authors, b.AuthorID)
		}
		fmt.Printf("device %d: length %d, authors %v\n", id, res.Lengths[int32(id)], authors)
	}
	fmt.Printf("converged: %v (%d packets delivered)\n", res.Converged, res.Delivered)

}
