package core

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/mattn/go-unicodeclass"

	"github.com/mattn/prettier-langserver/types"
)

// Notifier abstracts the editor-facing notifications so the core package
// has no transport dependency.
type Notifier interface {
	LogMessage(ctx context.Context, typ types.MessageType, message string)
	ShowMessage(ctx context.Context, typ types.MessageType, message string)
	PublishDiagnostics(ctx context.Context, params *types.PublishDiagnosticsParams)
	ShowDocument(ctx context.Context, uri types.DocumentURI)
}

// LangHandler owns the open-document state and the formatting pipeline.
type LangHandler struct {
	formatMu   sync.Mutex
	loglevel   int
	logger     *log.Logger
	configPath string
	toolsDir   string
	files      map[types.DocumentURI]*fileRef
	invoker    *Invoker

	RootPath string
}

type fileRef struct {
	LanguageID string
	Text       string
	Version    int
}

// NewHandler creates a handler from the server configuration. The config
// file path and tools directory fall back to their conventional locations
// when unset.
func NewHandler(logger *log.Logger, config *types.ServerConfig) *LangHandler {
	configPath := config.ConfigFile
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	toolsDir := config.ToolsDir
	if toolsDir == "" {
		toolsDir = defaultToolsDir()
	}
	return &LangHandler{
		loglevel:   config.LogLevel,
		logger:     logger,
		configPath: configPath,
		toolsDir:   toolsDir,
		files:      make(map[types.DocumentURI]*fileRef),
		invoker:    NewInvoker(logger),
	}
}

// defaultToolsDir is <dir of the server binary>/../tools/Prettier, the
// layout an editor distribution ships the bundled formatter in.
func defaultToolsDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "tools", "Prettier")
}

func (h *LangHandler) Initialize(params *types.InitializeParams) (*types.InitializeResult, error) {
	if params.RootURI != "" {
		rootPath, err := fromURI(params.RootURI)
		if err == nil {
			h.RootPath = filepath.Clean(rootPath)
		}
	}
	return &types.InitializeResult{
		Capabilities: types.ServerCapabilities{
			TextDocumentSync:           types.TDSKFull,
			DocumentFormattingProvider: true,
			ExecuteCommandProvider: &types.ExecuteCommandProvider{
				Commands: Commands(),
			},
		},
	}, nil
}

// UpdateConfiguration applies workspace/didChangeConfiguration settings.
func (h *LangHandler) UpdateConfiguration(settings *types.BridgeSettings) {
	if settings == nil {
		return
	}
	if settings.ConfigFile != "" {
		h.configPath = settings.ConfigFile
	}
	if settings.LogLevel > 0 {
		h.loglevel = settings.LogLevel
	}
}

func (h *LangHandler) OnOpenFile(uri types.DocumentURI, languageID string, version int, text string) error {
	h.files[uri] = &fileRef{
		LanguageID: languageID,
		Text:       text,
		Version:    version,
	}
	return nil
}

func (h *LangHandler) OnUpdateFile(uri types.DocumentURI, text string, version *int) error {
	f, ok := h.files[uri]
	if !ok {
		return nil
	}
	f.Text = text
	if version != nil {
		f.Version = *version
	}
	return nil
}

func (h *LangHandler) OnSaveFile(uri types.DocumentURI) error {
	return nil
}

func (h *LangHandler) OnCloseFile(uri types.DocumentURI) error {
	delete(h.files, uri)
	return nil
}

func (h *LangHandler) configStore() *ConfigStore {
	return NewConfigStore(h.configPath, h.logger)
}

func (h *LangHandler) resolver() *Resolver {
	return NewResolver(h.toolsDir, h.RootPath, h.logger)
}

// wordAt returns the span of the word containing pos, for sizing the
// diagnostic range around a reported parse error. Offsets are UTF-16 code
// units per the protocol.
func (f *fileRef) wordAt(pos types.Position) types.Range {
	lines := strings.Split(f.Text, "\n")
	if pos.Line < 0 || pos.Line >= len(lines) {
		return types.Range{Start: pos, End: pos}
	}
	chars := utf16.Encode([]rune(lines[pos.Line]))
	if pos.Character < 0 || pos.Character > len(chars) {
		return types.Range{Start: pos, End: pos}
	}
	prevPos := 0
	currPos := -1
	prevCls := unicodeclass.Invalid
	for i, char := range chars {
		currCls := unicodeclass.Is(rune(char))
		if currCls != prevCls {
			if i <= pos.Character {
				prevPos = i
			} else {
				if char == '_' {
					continue
				}
				currPos = i
				break
			}
		}
		prevCls = currCls
	}
	if currPos == -1 {
		currPos = len(chars)
	}
	return types.Range{
		Start: types.Position{Line: pos.Line, Character: prevPos},
		End:   types.Position{Line: pos.Line, Character: currPos},
	}
}

func isWindowsDrivePath(path string) bool {
	if len(path) < 4 {
		return false
	}
	return unicode.IsLetter(rune(path[0])) && path[1] == ':'
}

func isWindowsDriveURI(uri string) bool {
	if len(uri) < 4 {
		return false
	}
	return uri[0] == '/' && unicode.IsLetter(rune(uri[1])) && uri[2] == ':'
}

// fromURI converts a file URI to a filesystem path. Non-file schemes are
// an error; those documents have no on-disk location.
func fromURI(uri types.DocumentURI) (string, error) {
	u, err := url.ParseRequestURI(string(uri))
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("only file URIs are supported, got %v", u.Scheme)
	}
	if isWindowsDriveURI(u.Path) {
		u.Path = u.Path[1:]
	}
	return u.Path, nil
}

func toURI(path string) types.DocumentURI {
	if isWindowsDrivePath(path) {
		path = "/" + path
	}
	return types.DocumentURI((&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(path),
	}).String())
}
