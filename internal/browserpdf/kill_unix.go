//go:build !windows

package browserpdf

import "syscall"

// killBrowserTree sends SIGKILL to the browser's process group so renderer
// and GPU helpers do not outlive Close.
func killBrowserTree(pid int) {
	// launcher.Kill runs afterwards and covers the main process.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
