package main

import (
	"github.com/tav/golly/optparse"
)

func main() {
	cmds := map[string]func([]string, string){
		"init":     cmdInit,
		"run":      cmdRun,
		"simulate": cmdSimulate,
	}
	info := map[string]string{
		"init":     "initialise the config for a new radiochain network",
		"run":      "run a radiochain node",
		"simulate": "simulate a network over an in-memory radio",
	}
	optparse.Commands("radiochain", "0.0.1", cmds, info)
}
