package core

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/reviewdog/errorformat"

	"github.com/mattn/prettier-langserver/types"
)

// stderrFormats recognize the "message (line:col)" shape Prettier uses for
// parse errors on stdin input.
var stderrFormats = []string{
	`%m (%l:%c)`,
	`%f: %m (%l:%c)`,
}

// Invoker runs the resolved command as a subprocess, feeding the source
// text on stdin and collecting both output streams.
type Invoker struct {
	logger *log.Logger
}

func NewInvoker(logger *log.Logger) *Invoker {
	return &Invoker{logger: logger}
}

// Run executes one formatting subprocess and classifies the outcome. The
// timeout is validated here: anything non-positive is replaced by
// DefaultTimeoutSeconds rather than failing the request.
func (v *Invoker) Run(ctx context.Context, command []string, input, workDir string, timeoutSeconds float64) types.FormatResult {
	if len(command) == 0 {
		return types.FormatResult{Kind: types.FormatInvalidConfig, Reason: "empty command"}
	}
	if !(timeoutSeconds > 0) {
		v.logger.Printf("invalid timeout %v, using default: %v", timeoutSeconds, DefaultTimeoutSeconds)
		timeoutSeconds = DefaultTimeoutSeconds
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutSeconds*float64(time.Second)))
	defer cancel()

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	if workDir != "" {
		cmd.Dir = workDir
	}
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	hideWindow(cmd)

	// os/exec pumps stdin and drains both output buffers on its own
	// goroutines, so a large document cannot deadlock against a full pipe
	// buffer.
	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		v.logger.Printf("prettier timed out (>%vs)", timeoutSeconds)
		return types.FormatResult{Kind: types.FormatTimeout, TimeoutSeconds: timeoutSeconds}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The path resolved a moment ago but cannot be spawned now;
			// filesystems change between resolve and spawn.
			v.logger.Printf("prettier executable not runnable: %v", err)
			return types.FormatResult{Kind: types.FormatExecutableNotFound}
		}
		message, pos := classifyStderr(stderr.String())
		v.logger.Printf("prettier failed: %v", message)
		return types.FormatResult{
			Kind:     types.FormatProcessFailure,
			ExitCode: exitErr.ExitCode(),
			Stderr:   message,
			ErrorPos: pos,
		}
	}
	if stdout.Len() == 0 {
		// Should not happen for well-formed input, but callers must never
		// silently replace a document with nothing.
		v.logger.Printf("prettier returned empty output")
		return types.FormatResult{Kind: types.FormatEmptyOutput}
	}
	return types.FormatResult{Kind: types.FormatSuccess, Text: stdout.String()}
}

// classifyStderr trims the diagnostic for presentation and extracts the
// (line:col) position when the tool reported a parse error. Syntax errors
// are truncated to their first 3 lines; the code frame Prettier appends is
// useless outside a terminal.
func classifyStderr(stderr string) (string, *types.Position) {
	message := strings.TrimSpace(stderr)
	if message == "" {
		return "Unknown error", nil
	}

	pos := stderrPosition(message)
	if strings.Contains(message, "SyntaxError") || strings.Contains(message, "ParseError") {
		lines := strings.Split(message, "\n")
		if len(lines) > 3 {
			lines = lines[:3]
		}
		message = strings.Join(lines, "\n")
	}
	return message, pos
}

func stderrPosition(message string) *types.Position {
	efms, err := errorformat.NewErrorformat(stderrFormats)
	if err != nil {
		return nil
	}
	scanner := efms.NewScanner(strings.NewReader(message))
	for scanner.Scan() {
		entry := scanner.Entry()
		if !entry.Valid || entry.Lnum == 0 {
			continue
		}
		col := entry.Col
		if col == 0 {
			col = 1
		}
		return &types.Position{Line: entry.Lnum - 1, Character: col - 1}
	}
	return nil
}
