package core

// languageParsers maps editor-reported language names to Prettier parser
// identifiers. The table is static; unknown names must fail the lookup
// instead of falling back to a guess.
var languageParsers = map[string]string{
	// JavaScript family
	"JavaScript":       "babel",
	"JavaScript Babel": "babel-flow",
	"TypeScript":       "typescript",

	// Stylesheets
	"CSS":  "css",
	"SCSS": "scss",
	"LESS": "less",

	// Markup
	"HTML":     "html",
	"XML":      "html",
	"Markdown": "markdown",
	"MDX":      "mdx",

	// Data formats
	"JSON": "json",
	"YAML": "yaml",

	"GraphQL": "graphql",

	// Template engines rendered as HTML
	"HTML Handlebars":    "html",
	"HTML Laravel Blade": "html",
	"HTML Django DTL":    "html",
	"Jinja2":             "html",
	"Twig":               "html",
	"Svelte":             "html",
	"Vue":                "vue",
	"Pug":                "pug",
	"Jade":               "pug",
}

// ParserFor returns the Prettier parser for an editor language name. The
// second result is false when the language is not supported.
func ParserFor(language string) (string, bool) {
	parser, ok := languageParsers[language]
	return parser, ok
}
