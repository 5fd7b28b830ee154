package core

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/mattn/prettier-langserver/types"
)

// DefaultTimeoutSeconds is substituted whenever the configured timeout is
// missing or not a positive number.
const DefaultTimeoutSeconds float64 = 10

// maxRangeEnd replaces the "Infinity" sentinel in .prettierrc payloads.
// Some tools reject non-numeric values there, so the on-disk form uses the
// maximum 32-bit signed integer instead.
const maxRangeEnd = 2147483647

type configEntry struct {
	key     string
	value   any
	comment string
}

var defaultTopLevel = []configEntry{
	{"executablePathOverride", "", "Custom path to the Prettier executable. Leave empty for auto-detection"},
	{"timeoutSeconds", 10, "Prettier subprocess timeout in seconds (default: 10)"},
	{"useProjectConfigFile", true, "If true, uses .prettierrc from the project. If false, uses formatterOptions below"},
}

var defaultOptions = []configEntry{
	{"printWidth", 80, "Line length (default: 80)"},
	{"tabWidth", 2, "Spaces per indentation (default: 2)"},
	{"useTabs", false, "Use tabs instead of spaces (default: false)"},
	{"semi", true, "Add semicolons (default: true)"},
	{"singleQuote", false, "Use single quotes (default: false)"},
	{"jsxSingleQuote", false, "Single quotes in JSX (default: false)"},
	{"quoteProps", "as-needed", "Quote object properties: as-needed | consistent | preserve (default: as-needed)"},
	{"trailingComma", "es5", "Trailing commas: none | es5 | all (default: es5)"},
	{"bracketSpacing", true, "Spaces in brackets (default: true)"},
	{"bracketSameLine", false, "Put > on same line in HTML/JSX (default: false)"},
	{"arrowParens", "always", "Arrow function parens: avoid | always (default: always)"},
	{"proseWrap", "preserve", "Wrap prose: always | never | preserve (default: preserve)"},
	{"htmlWhitespaceSensitivity", "css", "HTML whitespace: css | strict | ignore (default: css)"},
	{"vueIndentScriptAndStyle", false, "Indent script/style in Vue (default: false)"},
	{"endOfLine", "lf", "Line ending: auto | lf | crlf | cr (default: lf)"},
	{"embeddedLanguageFormatting", "auto", "Format embedded code: auto | off (default: auto)"},
	{"singleAttributePerLine", false, "One attribute per line in HTML/JSX (default: false)"},
	{"objectWrap", "preserve", "Object wrap mode: preserve | collapse (default: preserve, v3.5.0+)"},
	{"experimentalTernaries", false, "Ternary formatting: false | true (default: false, v3.1.0+, experimental)"},
	{"insertPragma", false, "Insert @format pragma (default: false)"},
	{"requirePragma", false, "Only format files with pragma (default: false)"},
	{"rangeStart", 0, "Format from byte offset (default: 0 = start of file)"},
	{"rangeEnd", "Infinity", "Format to byte offset (default: Infinity = end of file)"},
}

//go:embed schema.json
var configSchemaSource string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaSource)

// ConfigStore loads, merges and persists the JSON bridge configuration.
// Every problem with the file recovers to defaults; a broken config never
// blocks formatting.
type ConfigStore struct {
	path   string
	logger *log.Logger
}

func NewConfigStore(path string, logger *log.Logger) *ConfigStore {
	return &ConfigStore{path: path, logger: logger}
}

// Path returns the config file location, empty when none is resolvable.
func (s *ConfigStore) Path() string {
	return s.path
}

// DefaultConfigPath returns the per-user bridge config location. The result
// is empty when no user config directory can be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prettier-langserver", "config.json")
}

func defaultConfig() *types.Config {
	cfg := &types.Config{
		TimeoutSeconds:       DefaultTimeoutSeconds,
		UseProjectConfigFile: true,
		Options:              types.NewOptionMap(),
	}
	for _, e := range defaultOptions {
		cfg.Options.Set(e.key, e.value)
	}
	return cfg
}

// Load reads the config file and merges it over the defaults. A missing
// file is created with the full commented default payload; an unreadable,
// invalid or mistyped file is logged and replaced by defaults in memory.
func (s *ConfigStore) Load() *types.Config {
	cfg := defaultConfig()
	if s.path == "" {
		return cfg
	}

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		if werr := s.Save(defaultConfig()); werr != nil {
			s.logger.Printf("cannot create config %v: %v", s.path, werr)
		} else {
			s.logger.Printf("created default config: %v", s.path)
		}
		return cfg
	}
	if err != nil {
		s.logger.Printf("cannot read config %v: %v", s.path, err)
		return cfg
	}
	if !gjson.ValidBytes(raw) {
		s.logger.Printf("invalid JSON in config %v", s.path)
		return cfg
	}
	// A schema violation names the offending field; the rest of the file is
	// still merged so one bad value does not discard the user's options.
	if err := validateConfigDocument(raw); err != nil {
		s.logger.Printf("config %v has mistyped values, keeping valid fields: %v", s.path, err)
	}

	doc := gjson.ParseBytes(raw)

	if opts := doc.Get("formatterOptions"); opts.IsObject() {
		opts.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if strings.HasPrefix(k, types.CommentPrefix) {
				return true
			}
			// User values overwrite defaults key-wise; unknown keys are
			// unioned in for forward compatibility.
			cfg.Options.Set(k, value.Value())
			return true
		})
	}

	doc.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if strings.HasPrefix(k, types.CommentPrefix) || k == "formatterOptions" {
			return true
		}
		switch k {
		case "executablePathOverride":
			if value.Type == gjson.String {
				cfg.ExecutablePath = value.String()
			}
		case "timeoutSeconds":
			if value.Type == gjson.Number {
				cfg.TimeoutSeconds = value.Float()
			}
		case "useProjectConfigFile":
			if value.Type == gjson.True || value.Type == gjson.False {
				cfg.UseProjectConfigFile = value.Bool()
			}
		default:
			s.logger.Printf("unknown config key ignored: %v", k)
		}
		return true
	})

	return cfg
}

// Save writes the configuration with its documentation entries re-attached,
// in the canonical key order.
func (s *ConfigStore) Save(cfg *types.Config) error {
	if s.path == "" {
		return errors.New("no config path")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	doc := "{}"
	for _, e := range defaultTopLevel {
		var value any
		switch e.key {
		case "executablePathOverride":
			value = cfg.ExecutablePath
		case "timeoutSeconds":
			value = cfg.TimeoutSeconds
		case "useProjectConfigFile":
			value = cfg.UseProjectConfigFile
		}
		doc, _ = sjson.Set(doc, e.key, value)
		doc, _ = sjson.Set(doc, commentKey(e.key), e.comment)
	}
	doc, _ = sjson.Set(doc, commentKey("formatterOptions"),
		"https://prettier.io/docs/en/options.html (only used when useProjectConfigFile=false)")
	for _, key := range cfg.Options.Keys() {
		value, _ := cfg.Options.Get(key)
		doc, _ = sjson.Set(doc, "formatterOptions."+key, value)
		if comment, ok := optionComment(key); ok {
			doc, _ = sjson.Set(doc, "formatterOptions."+commentKey(key), comment)
		}
	}

	return os.WriteFile(s.path, pretty.PrettyOptions([]byte(doc), prettyOptions), 0644)
}

// DefaultPrettierrcPayload renders the default formatter options as a plain
// .prettierrc document: no comment entries, and the "Infinity" sentinel
// replaced by maxRangeEnd.
func (s *ConfigStore) DefaultPrettierrcPayload() []byte {
	doc := "{}"
	for _, e := range defaultOptions {
		value := e.value
		if e.key == "rangeEnd" {
			value = maxRangeEnd
		}
		doc, _ = sjson.Set(doc, e.key, value)
	}
	return pretty.PrettyOptions([]byte(doc), prettyOptions)
}

var prettyOptions = &pretty.Options{Indent: "  "}

func commentKey(key string) string {
	return types.CommentPrefix + " " + key
}

func optionComment(key string) (string, bool) {
	for _, e := range defaultOptions {
		if e.key == key {
			return e.comment, true
		}
	}
	return "", false
}

func validateConfigDocument(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	return configSchema.Validate(v)
}
