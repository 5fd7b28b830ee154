package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
loglevel: 2
logfile: /tmp/bridge.log
configfile: /tmp/bridge.json
toolsdir: /opt/tools/Prettier
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadServerConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.Version != 1 || config.LogLevel != 2 {
		t.Fatalf("config = %+v", config)
	}
	if config.ConfigFile != "/tmp/bridge.json" || config.ToolsDir != "/opt/tools/Prettier" {
		t.Fatalf("config = %+v", config)
	}
}

func TestLoadServerConfigMissing(t *testing.T) {
	if _, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
