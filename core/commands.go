package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mattn/prettier-langserver/types"
)

const (
	// CommandOpenConfig opens the bridge's own config file in the editor,
	// creating it with defaults first if missing.
	CommandOpenConfig = "prettier.openConfig"
	// CommandCreatePrettierrc writes a .prettierrc next to the current
	// document, seeded from the configured formatter options.
	CommandCreatePrettierrc = "prettier.createPrettierrc"
	// CommandVersion reports the resolved Prettier version.
	CommandVersion = "prettier.version"
)

func Commands() []string {
	return []string{
		CommandOpenConfig,
		CommandCreatePrettierrc,
		CommandVersion,
	}
}

func (h *LangHandler) ExecuteCommand(ctx context.Context, n Notifier, params *types.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case CommandOpenConfig:
		return nil, h.openConfig(ctx, n)
	case CommandCreatePrettierrc:
		var uri types.DocumentURI
		if len(params.Arguments) > 0 {
			if s, ok := params.Arguments[0].(string); ok {
				uri = types.DocumentURI(s)
			}
		}
		return nil, h.createPrettierrc(ctx, n, uri)
	case CommandVersion:
		return nil, h.reportVersion(ctx, n)
	}
	return nil, fmt.Errorf("command not supported: %v", params.Command)
}

func (h *LangHandler) openConfig(ctx context.Context, n Notifier) error {
	store := h.configStore()
	path := store.Path()
	if path == "" {
		n.ShowMessage(ctx, types.LogError, "No config file location available")
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		// Load writes the default file when it is missing.
		store.Load()
	}
	n.ShowDocument(ctx, toURI(path))
	return nil
}

func (h *LangHandler) createPrettierrc(ctx context.Context, n Notifier, uri types.DocumentURI) error {
	if uri == "" {
		n.ShowMessage(ctx, types.LogWarning, "Save the document first so .prettierrc has a directory to live in")
		return nil
	}
	path, err := fromURI(uri)
	if err != nil {
		n.ShowMessage(ctx, types.LogWarning, "Save the document first so .prettierrc has a directory to live in")
		return nil
	}
	rcPath := filepath.Join(filepath.Dir(path), ".prettierrc")
	if _, err := os.Stat(rcPath); err == nil {
		n.ShowDocument(ctx, toURI(rcPath))
		return nil
	}
	payload := h.configStore().DefaultPrettierrcPayload()
	if err := os.WriteFile(rcPath, payload, 0644); err != nil {
		n.ShowMessage(ctx, types.LogError, fmt.Sprintf("Cannot write %v: %v", rcPath, err))
		return nil
	}
	h.logger.Printf("created %v", rcPath)
	n.ShowDocument(ctx, toURI(rcPath))
	return nil
}

func (h *LangHandler) reportVersion(ctx context.Context, n Notifier) error {
	cfg := h.configStore().Load()
	executable := h.resolver().Find(cfg)
	if executable == nil {
		n.ShowMessage(ctx, types.LogWarning, "Prettier not found. Install it via npm/yarn/pnpm or set executablePathOverride.")
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	tokens := executable.Tokens
	args := append(append([]string{}, tokens[1:]...), "--version")
	cmd := exec.CommandContext(probeCtx, tokens[0], args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	hideWindow(cmd)
	if err := cmd.Run(); err != nil {
		n.ShowMessage(ctx, types.LogError, fmt.Sprintf("Cannot query Prettier version: %v", err))
		return nil
	}
	n.ShowMessage(ctx, types.LogInfo, fmt.Sprintf("Prettier %v", strings.TrimSpace(stdout.String())))
	return nil
}
