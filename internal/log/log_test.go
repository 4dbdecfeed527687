package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestLevelYAML(t *testing.T) {
	for raw, expected := range map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"fatal":   FatalLevel,
	} {
		var lvl Level
		if err := yaml.Unmarshal([]byte(raw), &lvl); err != nil {
			t.Fatalf("unable to decode %q: %s", raw, err)
		}
		if lvl != expected {
			t.Fatalf("decoded %q as %s, expected %s", raw, lvl, expected)
		}
	}
	var lvl Level
	if err := yaml.Unmarshal([]byte("loud"), &lvl); err == nil {
		t.Fatalf("expected an error decoding an unknown level")
	}
	out, err := yaml.Marshal(WarnLevel)
	if err != nil {
		t.Fatalf("unable to encode level: %s", err)
	}
	if strings.TrimSpace(string(out)) != "warn" {
		t.Fatalf("unexpected encoding of WarnLevel: %q", out)
	}
}

func TestWithCopiesFields(t *testing.T) {
	base := With(String("a", "1"))
	l1 := base.With(Int("b", 2))
	l2 := base.With(Int("c", 3))
	if len(base.fields) != 1 || len(l1.fields) != 2 || len(l2.fields) != 2 {
		t.Fatalf("unexpected field counts: %d %d %d", len(base.fields), len(l1.fields), len(l2.fields))
	}
	if l1.fields[1].key != "b" || l2.fields[1].key != "c" {
		t.Fatalf("derived loggers should not share fields")
	}
}

func TestToFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "radiochain-log")
	if err != nil {
		t.Fatalf("unable to create temp dir: %s", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "node.log")
	if err := ToFile(path, InfoLevel); err != nil {
		t.Fatalf("unable to log to file: %s", err)
	}
	defer func() {
		fileMu.Lock()
		logFile.Close()
		logFile = nil
		fileMu.Unlock()
		fileLevel = maxLevel
		updateMinLevels()
	}()
	Debug("hidden")
	Info("Block appended", Int32("block.index", 3), Int32s("values", []int32{1, 2}), Bool("ok", true))
	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("unable to read log file: %s", err)
	}
	out := string(data)
	for _, want := range []string{"Block appended", "block.index", " 3", "[1, 2]", "true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q is missing %q", out, want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entries should not be written at InfoLevel")
	}
}
