package core

import (
	"fmt"
	"strconv"

	"github.com/mattn/prettier-langserver/types"
)

type flagKind int

const (
	flagValue   flagKind = iota // --flag <value> whenever the key is present
	flagIfTrue                  // bare flag emitted when the value is true
	flagIfFalse                 // negated flag emitted when the value is false
)

type optionFlag struct {
	key  string
	flag string
	kind flagKind
}

// optionFlags is the option-to-flag translation table, in emission order.
var optionFlags = []optionFlag{
	{"printWidth", "--print-width", flagValue},
	{"tabWidth", "--tab-width", flagValue},
	{"useTabs", "--use-tabs", flagIfTrue},
	{"semi", "--no-semi", flagIfFalse},
	{"singleQuote", "--single-quote", flagIfTrue},
	{"jsxSingleQuote", "--jsx-single-quote", flagIfTrue},
	{"quoteProps", "--quote-props", flagValue},
	{"trailingComma", "--trailing-comma", flagValue},
	{"bracketSpacing", "--no-bracket-spacing", flagIfFalse},
	{"bracketSameLine", "--bracket-same-line", flagIfTrue},
	{"arrowParens", "--arrow-parens", flagValue},
	{"endOfLine", "--end-of-line", flagValue},
	{"proseWrap", "--prose-wrap", flagValue},
	{"htmlWhitespaceSensitivity", "--html-whitespace-sensitivity", flagValue},
	{"vueIndentScriptAndStyle", "--vue-indent-script-and-style", flagIfTrue},
	{"embeddedLanguageFormatting", "--embedded-language-formatting", flagValue},
	{"singleAttributePerLine", "--single-attribute-per-line", flagIfTrue},
	{"objectWrap", "--object-wrap", flagValue},
	{"experimentalTernaries", "--experimental-ternaries", flagIfTrue},
	{"insertPragma", "--insert-pragma", flagIfTrue},
	{"requirePragma", "--require-pragma", flagIfTrue},
}

// BuildCommand translates the merged configuration into the argument vector
// for one invocation. --no-color is mandatory: the invoker classifies
// stderr text and ANSI escapes would corrupt that.
func BuildCommand(executable *types.ResolvedExecutable, parser string, cfg *types.Config) []string {
	args := append([]string{}, executable.Tokens...)
	args = append(args, "--parser", parser, "--no-color")

	// With a project config file the formatter discovers its own options;
	// inline flags would override them and defeat the user's intent.
	if cfg.UseProjectConfigFile {
		return args
	}

	for _, of := range optionFlags {
		value, ok := cfg.Options.Get(of.key)
		if !ok {
			continue
		}
		switch of.kind {
		case flagValue:
			args = append(args, of.flag, formatValue(value))
		case flagIfTrue:
			if truthy(value) {
				args = append(args, of.flag)
			}
		case flagIfFalse:
			if !truthy(value) {
				args = append(args, of.flag)
			}
		}
	}

	// The range bounds are always explicit so partial-range formatting has
	// deterministic defaults. rangeEnd's "Infinity" is the literal token
	// the formatter's own argument parser expects.
	rangeStart := "0"
	if v, ok := cfg.Options.Get("rangeStart"); ok {
		rangeStart = formatValue(v)
	}
	rangeEnd := "Infinity"
	if v, ok := cfg.Options.Get("rangeEnd"); ok {
		rangeEnd = formatValue(v)
	}
	args = append(args, "--range-start", rangeStart, "--range-end", rangeEnd)

	return args
}

func truthy(value any) bool {
	b, ok := value.(bool)
	return ok && b
}

// formatValue serializes an option value for the command line. Numbers come
// in as int from the defaults table and as float64 from parsed JSON.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
