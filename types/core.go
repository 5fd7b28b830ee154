package types

import (
	"io"
	"strings"
)

// CommentPrefix marks documentation-only keys in the bridge config file.
// Keys carrying it exist for human readers and are stripped on load.
const CommentPrefix = "//"

// Config is the merged bridge configuration used for a single format
// request. It is rebuilt from disk on every request so external edits take
// effect immediately.
type Config struct {
	ExecutablePath       string
	TimeoutSeconds       float64
	UseProjectConfigFile bool
	Options              *OptionMap
}

// OptionMap is a string-keyed option mapping that remembers insertion order.
// Order matters twice: when the default config file is written with its
// comment entries, and when options are translated to command-line flags.
type OptionMap struct {
	keys   []string
	values map[string]any
}

func NewOptionMap() *OptionMap {
	return &OptionMap{values: make(map[string]any)}
}

// Set adds or overwrites a key. A new key is appended to the order, an
// existing key keeps its position.
func (m *OptionMap) Set(key string, value any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OptionMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OptionMap) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (m *OptionMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

func (m *OptionMap) Len() int {
	return len(m.keys)
}

func (m *OptionMap) Clone() *OptionMap {
	c := NewOptionMap()
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// ResolvedExecutable is either a direct filesystem path to the formatter or
// a package-manager invocation template such as ["npx", "prettier"]. Callers
// must treat the tokens as an argument-vector prefix, never as one path.
type ResolvedExecutable struct {
	Tokens []string
}

// Direct reports whether the executable is a plain path rather than a
// launcher invocation.
func (e ResolvedExecutable) Direct() bool {
	return len(e.Tokens) == 1
}

func (e ResolvedExecutable) String() string {
	return strings.Join(e.Tokens, " ")
}

// ResultKind tags the outcome of a format request.
type ResultKind int

const (
	FormatSuccess ResultKind = iota
	FormatUnsupported
	FormatExecutableNotFound
	FormatInvalidConfig
	FormatProcessFailure
	FormatTimeout
	FormatEmptyOutput
)

func (k ResultKind) String() string {
	switch k {
	case FormatSuccess:
		return "success"
	case FormatUnsupported:
		return "unsupported"
	case FormatExecutableNotFound:
		return "executable-not-found"
	case FormatInvalidConfig:
		return "invalid-config"
	case FormatProcessFailure:
		return "process-failure"
	case FormatTimeout:
		return "timeout"
	case FormatEmptyOutput:
		return "empty-output"
	default:
		return "unknown"
	}
}

// FormatResult is the tagged outcome threaded through the pipeline. Only the
// fields matching Kind are meaningful.
type FormatResult struct {
	Kind           ResultKind
	Text           string    // FormatSuccess: formatted output, verbatim
	Language       string    // FormatUnsupported: the unmapped language name
	Reason         string    // FormatInvalidConfig
	ExitCode       int       // FormatProcessFailure
	Stderr         string    // FormatProcessFailure: trimmed or truncated diagnostic
	TimeoutSeconds float64   // FormatTimeout
	ErrorPos       *Position // position parsed from stderr, when available
}

// ServerConfig is the server-level configuration loaded from config.yaml.
// It configures the process, not the formatter; formatter settings live in
// the JSON bridge config re-read on every request.
type ServerConfig struct {
	Version    int    `yaml:"version"`
	LogLevel   int    `yaml:"loglevel"`
	LogFile    string `yaml:"logfile"`
	ConfigFile string `yaml:"configfile"`
	ToolsDir   string `yaml:"toolsdir"`

	LogWriter io.Writer `yaml:"-"`
}
