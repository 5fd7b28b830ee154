package core

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/prettier-langserver/types"
)

// probeTimeout bounds each package-manager --version probe.
const probeTimeout = 3 * time.Second

// packageManagers are the executor templates tried in order when no direct
// installation is found. The first token is the launcher binary and gets
// the platform wrapper extension at probe time.
var packageManagers = [][]string{
	{"npx", "prettier"},
	{"yarn", "exec", "prettier"},
	{"pnpm", "exec", "prettier"},
	{"bunx", "prettier"},
}

// Resolver locates a usable Prettier command. Resolution is redone per
// request since PATH and project state may change between calls.
//
// The priority chain runs from explicit user intent down to the ambient
// environment: config override, bundled tools directory, project-local
// node_modules, package-manager executors, global PATH.
type Resolver struct {
	ToolsDir string // bundled tools directory, <app root>/tools/Prettier
	WorkDir  string // project root for the node_modules lookup

	logger *log.Logger

	// probe and lookPath are swappable in tests.
	probe    func(tokens []string) bool
	lookPath func(name string) (string, error)
}

func NewResolver(toolsDir, workDir string, logger *log.Logger) *Resolver {
	r := &Resolver{ToolsDir: toolsDir, WorkDir: workDir, logger: logger}
	r.probe = r.runProbe
	r.lookPath = exec.LookPath
	return r
}

// Find returns the first usable executable in the priority chain, or nil
// when Prettier cannot be located at all. Absence is a user-facing "not
// found" condition for the caller, not an error.
func (r *Resolver) Find(cfg *types.Config) *types.ResolvedExecutable {
	// 1. Explicit override from the config file.
	if custom := strings.TrimSpace(cfg.ExecutablePath); custom != "" {
		if _, err := os.Stat(custom); err == nil {
			r.logger.Printf("prettier: using custom path: %v", custom)
			return &types.ResolvedExecutable{Tokens: []string{custom}}
		}
	}

	// 2. Bundled tools directory.
	if r.ToolsDir != "" {
		for _, name := range bundledNames {
			bundled := filepath.Join(r.ToolsDir, name)
			if isRegularFile(bundled) {
				r.logger.Printf("prettier: using bundled version: %v", bundled)
				return &types.ResolvedExecutable{Tokens: []string{bundled}}
			}
		}
	}

	// 3. Project-local installation.
	workDir := r.WorkDir
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	local := filepath.Join(workDir, "node_modules", ".bin", localBinName)
	if isRegularFile(local) {
		r.logger.Printf("prettier: using local project installation: %v", local)
		return &types.ResolvedExecutable{Tokens: []string{local}}
	}

	// 4. Package-manager executors; the first zero-exit probe wins. The
	// result stays a multi-token invocation, not a path.
	for _, template := range packageManagers {
		tokens := make([]string, len(template))
		copy(tokens, template)
		tokens[0] = launcherName(tokens[0])
		if r.probe(tokens) {
			r.logger.Printf("prettier: using package manager: %v", strings.Join(tokens, " "))
			return &types.ResolvedExecutable{Tokens: tokens}
		}
	}

	// 5. Global PATH.
	if path, err := r.lookPath("prettier"); err == nil {
		r.logger.Printf("prettier: found in PATH: %v", path)
		return &types.ResolvedExecutable{Tokens: []string{path}}
	}

	r.logger.Printf("prettier not found - install via npm/yarn/pnpm or set executablePathOverride")
	return nil
}

func (r *Resolver) runProbe(tokens []string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	args := append(append([]string{}, tokens[1:]...), "--version")
	cmd := exec.CommandContext(ctx, tokens[0], args...)
	hideWindow(cmd)
	return cmd.Run() == nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
