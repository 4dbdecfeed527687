package main

import (
	"fmt"
	"os"
	"path/filepath"

	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
)

func cmdInit(args []string, usage string) {

	opts := newOpts("init NETWORK_NAME [OPTIONS]", usage)
	configRoot := opts.Flags("-c", "--config-root").Label("PATH").String("path to the radiochain root directory [~/.radiochain]", defaultRootDir())
	nodeCount := opts.Flags("--node-count").Label("N").Int("number of nodes in the network [4]", 4)
	transport := opts.Flags("--transport").Label("TYPE").String("transport to carry packets over: multicast or unicast [unicast]", config.UnicastTransport)
	basePort := opts.Flags("--base-port").Label("PORT").Int("first port used by the unicast transport [9100]", 9100)
	group := opts.Flags("--group").Label("N").Int("radio group to listen on [100]", 100)
	mine := opts.Flags("--mine").Bool("enable the miner on every node")
	params := opts.Parse(args)

	log.ToConsole(log.InfoLevel)

	if len(params) < 1 {
		opts.PrintUsage()
		os.Exit(1)
	}
	if *nodeCount < 1 {
		log.Fatalf("The given --node-count of %d must be at least 1", *nodeCount)
	}
	if *group < 0 || *group > 255 {
		log.Fatalf("The given --group of %d must be between 0 and 255", *group)
	}

	networkName := params[0]
	netDir := filepath.Join(*configRoot, networkName)
	createUnlessExists(netDir)

	network := &config.Network{Name: networkName}
	static := map[int32]string{}
	for i := 1; i <= *nodeCount; i++ {
		id := int32(i)
		network.Nodes = append(network.Nodes, id)
		static[id] = fmt.Sprintf("127.0.0.1:%d", *basePort+i-1)
	}

	for i, id := range network.Nodes {

		log.Info("Generating node config", fld.NodeID(id))

		nodeDir := filepath.Join(netDir, fmt.Sprintf("node-%d", id))
		createUnlessExists(nodeDir)

		cfg := &config.Node{
			ID:      id,
			Network: networkName,
			Radio: &config.Radio{
				Group: uint8(*group),
			},
			Transport: &config.Transport{
				Type: *transport,
			},
			Miner: &config.Miner{
				Enabled: *mine,
			},
			Logging: &config.Logging{
				FileLevel: log.DebugLevel,
				FilePath:  "node.log",
			},
		}
		if *transport == config.UnicastTransport {
			cfg.Transport.Host = "127.0.0.1"
			cfg.Transport.Port = *basePort + i
			cfg.Bootstrap = &config.Bootstrap{Static: static}
		}
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			log.Fatal("Invalid node config", fld.Err(err))
		}

		if err := writeYAML(filepath.Join(nodeDir, "node.yaml"), cfg); err != nil {
			log.Fatal("Could not write node.yaml", fld.Err(err))
		}

	}

	if err := writeYAML(filepath.Join(netDir, "network.yaml"), network); err != nil {
		log.Fatal("Could not write network.yaml", fld.Err(err))
	}

	log.Info("Network config generated", log.String("network.name", networkName), fld.Path(netDir))

}
