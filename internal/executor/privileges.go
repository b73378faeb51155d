package executor

import (
	"os"
	"os/exec"
)

// IsRoot returns true if the current process is running as root.
func IsRoot() bool {
	return isRoot()
}

// CanElevate returns true if the process can run commands as root.
func CanElevate() bool {
	return isRoot() || hasSudo()
}

func isRoot() bool {
	return os.Geteuid() == 0
}

func hasSudo() bool {
	_, err := exec.LookPath("sudo")
	return err == nil
}
