//go:build !windows

package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mattn/prettier-langserver/types"
)

func TestRunSuccess(t *testing.T) {
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"cat"}, "hello\n", "", 5)
	if res.Kind != types.FormatSuccess {
		t.Fatalf("kind = %v, want success", res.Kind)
	}
	if res.Text != "hello\n" {
		t.Fatalf("text = %q", res.Text)
	}
}

func TestRunEmptyOutput(t *testing.T) {
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"true"}, "input", "", 5)
	if res.Kind != types.FormatEmptyOutput {
		t.Fatalf("kind = %v, want empty-output", res.Kind)
	}
}

func TestRunProcessFailureSyntaxError(t *testing.T) {
	script := `echo 'SyntaxError: Unexpected token (3:7)' >&2
echo '  1 | const' >&2
echo '  2 | x' >&2
echo '  3 | code frame noise' >&2
exit 2`
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"sh", "-c", script}, "input", "", 5)
	if res.Kind != types.FormatProcessFailure {
		t.Fatalf("kind = %v, want process-failure", res.Kind)
	}
	if res.ExitCode != 2 {
		t.Fatalf("exit code = %v, want 2", res.ExitCode)
	}
	if got := strings.Count(res.Stderr, "\n"); got != 2 {
		t.Fatalf("stderr not truncated to 3 lines: %q", res.Stderr)
	}
	want := &types.Position{Line: 2, Character: 6}
	if diff := cmp.Diff(want, res.ErrorPos); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestRunProcessFailureNoStderr(t *testing.T) {
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"sh", "-c", "exit 1"}, "input", "", 5)
	if res.Kind != types.FormatProcessFailure {
		t.Fatalf("kind = %v, want process-failure", res.Kind)
	}
	if res.Stderr != "Unknown error" {
		t.Fatalf("stderr = %q, want Unknown error", res.Stderr)
	}
	if res.ErrorPos != nil {
		t.Fatalf("position = %v, want nil", res.ErrorPos)
	}
}

func TestRunTimeout(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "pid")
	script := fmt.Sprintf("echo $$ > %s; exec sleep 10", pidFile)

	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"sh", "-c", script}, "", "", 0.1)
	if res.Kind != types.FormatTimeout {
		t.Fatalf("kind = %v, want timeout", res.Kind)
	}
	if res.TimeoutSeconds != 0.1 {
		t.Fatalf("timeout seconds = %v, want 0.1", res.TimeoutSeconds)
	}

	// The child must be terminated, not left running past the deadline.
	raw, err := os.ReadFile(pidFile)
	if err != nil {
		t.Fatalf("pid file not written: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		t.Fatal(err)
	}
	if err := syscall.Kill(pid, 0); err == nil {
		t.Fatalf("process %d still running after timeout", pid)
	}
}

func TestRunExecutableMissing(t *testing.T) {
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), []string{"/no/such/prettier"}, "", "", 5)
	if res.Kind != types.FormatExecutableNotFound {
		t.Fatalf("kind = %v, want executable-not-found", res.Kind)
	}
}

func TestRunEmptyCommand(t *testing.T) {
	v := NewInvoker(testLogger())
	res := v.Run(context.Background(), nil, "", "", 5)
	if res.Kind != types.FormatInvalidConfig {
		t.Fatalf("kind = %v, want invalid-config", res.Kind)
	}
}

func TestRunInvalidTimeoutUsesDefault(t *testing.T) {
	v := NewInvoker(testLogger())
	for _, timeout := range []float64{0, -3} {
		res := v.Run(context.Background(), []string{"cat"}, "ok\n", "", timeout)
		if res.Kind != types.FormatSuccess {
			t.Fatalf("timeout %v: kind = %v, want success", timeout, res.Kind)
		}
	}
}

func TestClassifyStderr(t *testing.T) {
	tests := []struct {
		name   string
		stderr string
		want   string
	}{
		{"empty", "", "Unknown error"},
		{"whitespace", "  \n\t", "Unknown error"},
		{"plain", "something broke\n", "something broke"},
		{"parse error kept whole under limit", "ParseError: bad\nmore", "ParseError: bad\nmore"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := classifyStderr(tt.stderr)
			if got != tt.want {
				t.Fatalf("classifyStderr(%q) = %q, want %q", tt.stderr, got, tt.want)
			}
		})
	}
}
