//go:build !windows

package core

import "os/exec"

func hideWindow(_ *exec.Cmd) {}

var bundledNames = []string{"prettier"}

const localBinName = "prettier"

func launcherName(name string) string {
	return name
}
