package main

import (
	"os"
	"path/filepath"

	"chainspace.io/radiochain/internal/log"

	"github.com/tav/golly/fsutil"
	"github.com/tav/golly/optparse"
	"gopkg.in/yaml.v2"
)

const (
	dirPerms = 0700
)

func createUnlessExists(path string) {
	if exists, _ := fsutil.Exists(path); exists {
		log.Fatalf("A directory already exists at: %s", path)
	}
	if err := os.MkdirAll(path, dirPerms); err != nil {
		log.Fatal("Could not create directory", log.String("path", path), log.Err(err))
	}
}

func defaultRootDir() string {
	return filepath.Join(os.ExpandEnv("$HOME"), ".radiochain")
}

func newOpts(command string, usage string) *optparse.Parser {
	return optparse.New("Usage: radiochain " + command + "\n\n  " + usage + "\n")
}

func writeYAML(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
