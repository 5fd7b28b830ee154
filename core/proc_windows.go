//go:build windows

package core

import (
	"os/exec"
	"syscall"
)

// hideWindow keeps the child process from flashing a console window while
// the editor is in the foreground.
func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
}

// bundledNames are probed in order inside the bundled tools directory.
var bundledNames = []string{"prettier.exe", "prettier.cmd"}

// localBinName is the project-local install under node_modules/.bin.
const localBinName = "prettier.cmd"

// launcherName decorates a package-manager launcher with the command
// wrapper extension.
func launcherName(name string) string {
	return name + ".cmd"
}
