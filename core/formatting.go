package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/prettier-langserver/diff"
	"github.com/mattn/prettier-langserver/types"
)

// Formatting handles a textDocument/formatting request. The returned edits
// are nil whenever the document must stay untouched; failures surface as
// log messages and diagnostics instead of request errors so the editor does
// not pop a modal on every syntax mistake.
func (h *LangHandler) Formatting(ctx context.Context, n Notifier, uri types.DocumentURI) ([]types.TextEdit, error) {
	h.formatMu.Lock()
	defer h.formatMu.Unlock()

	f, ok := h.files[uri]
	if !ok {
		return nil, fmt.Errorf("document not found: %v", uri)
	}

	// Unsaved documents have no directory for project config discovery;
	// the formatter then runs from the server's working directory.
	fileDir := ""
	if path, err := fromURI(uri); err == nil {
		fileDir = filepath.Dir(path)
	}

	result := h.FormatText(ctx, f.Text, f.LanguageID, fileDir)

	switch result.Kind {
	case types.FormatSuccess:
		n.PublishDiagnostics(ctx, &types.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []types.Diagnostic{},
		})
		return diff.ComputeEdits(uri, f.Text, result.Text), nil
	case types.FormatUnsupported:
		h.logger.Printf("formatting skipped, no parser for language: %v", f.LanguageID)
		n.LogMessage(ctx, types.LogInfo, fmt.Sprintf("Prettier does not support %q documents", f.LanguageID))
		return nil, nil
	case types.FormatProcessFailure:
		h.publishFailure(ctx, n, uri, f, result)
		return nil, nil
	case types.FormatExecutableNotFound:
		n.LogMessage(ctx, types.LogError, "Prettier executable not found. Install it via npm/yarn/pnpm or set executablePathOverride.")
		return nil, nil
	case types.FormatTimeout:
		n.LogMessage(ctx, types.LogError, fmt.Sprintf("Prettier timed out after %vs", result.TimeoutSeconds))
		return nil, nil
	case types.FormatEmptyOutput:
		n.LogMessage(ctx, types.LogError, "Prettier produced no output, document left unchanged")
		return nil, nil
	default:
		n.LogMessage(ctx, types.LogError, fmt.Sprintf("Prettier failed: %v", result.Reason))
		return nil, nil
	}
}

func (h *LangHandler) publishFailure(ctx context.Context, n Notifier, uri types.DocumentURI, f *fileRef, result types.FormatResult) {
	n.LogMessage(ctx, types.LogError, result.Stderr)
	if result.ErrorPos == nil {
		return
	}
	source := "prettier"
	d := types.Diagnostic{
		Range:    f.wordAt(*result.ErrorPos),
		Severity: types.Error,
		Source:   &source,
		Message:  result.Stderr,
	}
	n.PublishDiagnostics(ctx, &types.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []types.Diagnostic{d},
	})
}

// FormatText runs the full pipeline on one document: parser lookup, config
// load, executable resolution, command construction, invocation.
func (h *LangHandler) FormatText(ctx context.Context, text, languageID, fileDir string) types.FormatResult {
	// Whitespace-only input is returned untouched; Prettier would emit
	// nothing and that reads as a failure downstream.
	if strings.TrimSpace(text) == "" {
		return types.FormatResult{Kind: types.FormatSuccess, Text: text, Language: languageID}
	}

	parser, ok := ParserFor(languageID)
	if !ok {
		return types.FormatResult{Kind: types.FormatUnsupported, Language: languageID}
	}

	// The config file is re-read per request so edits take effect without
	// restarting the server.
	cfg := h.configStore().Load()

	executable := h.resolver().Find(cfg)
	if executable == nil {
		return types.FormatResult{Kind: types.FormatExecutableNotFound, Language: languageID}
	}

	command := BuildCommand(executable, parser, cfg)
	if h.loglevel >= 1 {
		h.logger.Printf("prettier command: %v", strings.Join(command, " "))
	}
	result := h.invoker.Run(ctx, command, text, fileDir, cfg.TimeoutSeconds)
	result.Language = languageID
	return result
}
