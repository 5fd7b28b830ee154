package core

import "testing"

func TestParserFor(t *testing.T) {
	tests := []struct {
		language string
		parser   string
		ok       bool
	}{
		{"JavaScript", "babel", true},
		{"JavaScript Babel", "babel-flow", true},
		{"TypeScript", "typescript", true},
		{"CSS", "css", true},
		{"SCSS", "scss", true},
		{"Markdown", "markdown", true},
		{"JSON", "json", true},
		{"YAML", "yaml", true},
		{"Vue", "vue", true},
		{"Jade", "pug", true},
		{"HTML Laravel Blade", "html", true},
		{"Plain Text", "", false},
		{"Go", "", false},
		{"javascript", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			parser, ok := ParserFor(tt.language)
			if ok != tt.ok || parser != tt.parser {
				t.Fatalf("ParserFor(%q) = %q, %v; want %q, %v", tt.language, parser, ok, tt.parser, tt.ok)
			}
		})
	}
}
