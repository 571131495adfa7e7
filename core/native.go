package core

import (
	"os/exec"
	"runtime"
)

// RunNativeCommand passes cmd verbatim to the operating system's command
// interpreter and returns its combined stdout and stderr. A non-zero exit
// status surfaces as an *exec.ExitError alongside the captured output.
func RunNativeCommand(cmd string) ([]byte, error) {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/C", cmd).CombinedOutput()
	}
	return exec.Command("sh", "-c", cmd).CombinedOutput()
}
