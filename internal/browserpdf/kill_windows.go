//go:build windows

package browserpdf

import (
	"os/exec"
	"strconv"
)

// killBrowserTree terminates the browser and its children with taskkill.
func killBrowserTree(pid int) {
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
