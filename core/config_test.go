package core

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLoadWithoutPath(t *testing.T) {
	cfg := NewConfigStore("", testLogger()).Load()
	if !cfg.UseProjectConfigFile {
		t.Fatal("expected useProjectConfigFile default true")
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("timeout = %v, want %v", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.ExecutablePath != "" {
		t.Fatalf("executable path = %q, want empty", cfg.ExecutablePath)
	}
}

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := NewConfigStore(path, testLogger()).Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.Get("// timeoutSeconds").Exists() {
		t.Fatal("expected comment entry for timeoutSeconds in written file")
	}
	if got := doc.Get("formatterOptions.printWidth").Int(); got != 80 {
		t.Fatalf("written printWidth = %v, want 80", got)
	}
	if got := doc.Get("formatterOptions.rangeEnd").String(); got != "Infinity" {
		t.Fatalf("written rangeEnd = %q, want Infinity", got)
	}

	// The in-memory config must not carry the comment entries.
	for _, key := range cfg.Options.Keys() {
		if strings.HasPrefix(key, "//") {
			t.Fatalf("comment key leaked into options: %q", key)
		}
	}
}

func TestLoadMergesUserValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	user := `{
		"// timeoutSeconds": "ignore me",
		"timeoutSeconds": 5,
		"useProjectConfigFile": false,
		"executablePathOverride": "/opt/prettier",
		"formatterOptions": {
			"// printWidth": "ignore me too",
			"printWidth": 120,
			"futureOption": "kept"
		}
	}`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := NewConfigStore(path, testLogger()).Load()
	if cfg.TimeoutSeconds != 5 {
		t.Fatalf("timeout = %v, want 5", cfg.TimeoutSeconds)
	}
	if cfg.UseProjectConfigFile {
		t.Fatal("useProjectConfigFile should be false")
	}
	if cfg.ExecutablePath != "/opt/prettier" {
		t.Fatalf("executable path = %q", cfg.ExecutablePath)
	}
	if v, _ := cfg.Options.Get("printWidth"); v != float64(120) {
		t.Fatalf("printWidth = %v (%T), want 120", v, v)
	}
	// Defaults the user did not touch survive the merge.
	if v, _ := cfg.Options.Get("tabWidth"); v != 2 {
		t.Fatalf("tabWidth = %v, want default 2", v)
	}
	// Unknown option keys are unioned in, not rejected.
	if v, _ := cfg.Options.Get("futureOption"); v != "kept" {
		t.Fatalf("futureOption = %v, want kept", v)
	}
	if cfg.Options.Has("// printWidth") {
		t.Fatal("comment key must be stripped")
	}
}

func TestLoadInvalidJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfigStore(path, testLogger()).Load()
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds || !cfg.UseProjectConfigFile {
		t.Fatalf("invalid file did not fall back to defaults: %+v", cfg)
	}
}

func TestLoadMistypedValueKeepsValidFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	user := `{
		"timeoutSeconds": "soon",
		"useProjectConfigFile": false,
		"formatterOptions": {"printWidth": 120}
	}`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := NewConfigStore(path, testLogger()).Load()
	// The mistyped timeout falls back to the default on its own.
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Fatalf("timeout = %v, want default", cfg.TimeoutSeconds)
	}
	// The rest of the file still merges.
	if cfg.UseProjectConfigFile {
		t.Fatal("useProjectConfigFile should be false")
	}
	if v, _ := cfg.Options.Get("printWidth"); v != float64(120) {
		t.Fatalf("printWidth = %v, want 120", v)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewConfigStore(path, testLogger())

	cfg := defaultConfig()
	cfg.TimeoutSeconds = 30
	cfg.UseProjectConfigFile = false
	cfg.Options.Set("printWidth", 100)
	if err := store.Save(cfg); err != nil {
		t.Fatal(err)
	}

	got := store.Load()
	if got.TimeoutSeconds != 30 {
		t.Fatalf("timeout = %v, want 30", got.TimeoutSeconds)
	}
	if got.UseProjectConfigFile {
		t.Fatal("useProjectConfigFile should stay false")
	}
	if v, _ := got.Options.Get("printWidth"); v != float64(100) {
		t.Fatalf("printWidth = %v, want 100", v)
	}

	// Merging is idempotent: saving the merged form and loading again must
	// not change anything or resurrect comment keys.
	if err := store.Save(got); err != nil {
		t.Fatal(err)
	}
	again := store.Load()
	if diff := cmp.Diff(got.Options.Keys(), again.Options.Keys()); diff != "" {
		t.Fatalf("option keys changed across reload (-want +got):\n%s", diff)
	}
	if again.TimeoutSeconds != 30 || again.UseProjectConfigFile {
		t.Fatalf("top level changed across reload: %+v", again)
	}
}

func TestDefaultPrettierrcPayload(t *testing.T) {
	payload := NewConfigStore("", testLogger()).DefaultPrettierrcPayload()
	doc := gjson.ParseBytes(payload)
	if !doc.IsObject() {
		t.Fatalf("payload is not a JSON object: %s", payload)
	}
	if got := doc.Get("rangeEnd").Int(); got != maxRangeEnd {
		t.Fatalf("rangeEnd = %v, want %v", got, maxRangeEnd)
	}
	var comments []string
	doc.ForEach(func(key, _ gjson.Result) bool {
		if strings.HasPrefix(key.String(), "//") {
			comments = append(comments, key.String())
		}
		return true
	})
	if len(comments) != 0 {
		t.Fatalf("payload carries comment keys: %v", comments)
	}
}
