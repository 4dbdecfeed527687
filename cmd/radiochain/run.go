package main

import (
	"os"
	"path/filepath"
	"strconv"

	"chainspace.io/radiochain/config"
	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
	"chainspace.io/radiochain/node"

	"github.com/tav/golly/optparse"
	"github.com/tav/golly/process"
)

func getNetworkNameAndNodeID(opts *optparse.Parser, params []string) (string, int32) {
	if len(params) < 2 {
		opts.PrintUsage()
		os.Exit(1)
	}
	nodeID, err := strconv.ParseInt(params[1], 10, 32)
	if err != nil {
		log.Fatal("Invalid node ID", log.String("node.id", params[1]), fld.Err(err))
	}
	return params[0], int32(nodeID)
}

func cmdRun(args []string, usage string) {

	opts := newOpts("run NETWORK_NAME NODE_ID [OPTIONS]", usage)
	configRoot := opts.Flags("-c", "--config-root").Label("PATH").String("path to the radiochain root directory [~/.radiochain]", defaultRootDir())
	consoleLog := opts.Flags("--console-log").Label("LEVEL").String("set the console log level")
	fileLog := opts.Flags("--file-log").Label("LEVEL").String("set the file log level")
	mine := opts.Flags("--mine").Bool("enable the miner regardless of the config")
	networkName, nodeID := getNetworkNameAndNodeID(opts, opts.Parse(args))

	_, err := os.Stat(*configRoot)
	if err != nil {
		if os.IsNotExist(err) {
			log.Fatal("Could not find the radiochain root directory", fld.Path(*configRoot))
		}
		log.Fatal("Unable to access the radiochain root directory", fld.Path(*configRoot), fld.Err(err))
	}

	netPath := filepath.Join(*configRoot, networkName)
	nodeDir := filepath.Join(netPath, "node-"+strconv.FormatInt(int64(nodeID), 10))
	nodeCfg, err := config.LoadNode(filepath.Join(nodeDir, "node.yaml"))
	if err != nil {
		log.Fatal("Could not load node.yaml", fld.Err(err))
	}
	if nodeCfg.ID == 0 {
		nodeCfg.ID = nodeID
	}
	if *mine {
		nodeCfg.Miner.Enabled = true
	}

	if err := configureLogging(nodeCfg.Logging, nodeDir, *consoleLog, *fileLog); err != nil {
		log.Fatal("Could not configure logging", fld.Err(err))
	}

	log.SetGlobal(fld.NodeID(nodeCfg.ID))
	srv, err := node.Run(&node.Config{
		NetworkName: networkName,
		Node:        nodeCfg,
	})
	if err != nil {
		log.Fatal("Could not start node", fld.Err(err))
	}

	process.SetExitHandler(srv.Shutdown)
	if err := srv.Wait(); err != nil {
		log.Fatal("Node stopped unexpectedly", fld.Err(err))
	}

}

func configureLogging(cfg *config.Logging, dir, console, file string) error {
	consoleLevel, fileLevel := cfg.ConsoleLevel, cfg.FileLevel
	if console != "" {
		if err := parseLevel(console, &consoleLevel); err != nil {
			return err
		}
	}
	if file != "" {
		if err := parseLevel(file, &fileLevel); err != nil {
			return err
		}
	}
	log.ToConsole(consoleLevel)
	if cfg.FilePath != "" && fileLevel != 0 {
		path := cfg.FilePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return log.ToFile(path, fileLevel)
	}
	return nil
}

func parseLevel(raw string, lvl *log.Level) error {
	return lvl.UnmarshalYAML(func(v interface{}) error {
		*(v.(*string)) = raw
		return nil
	})
}
