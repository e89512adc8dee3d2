//go:build !windows

package download

import (
	"os/exec"
	"syscall"
)

// configureDetached moves the child into its own process group so signals sent
// to the server's group do not interrupt transfers.
func configureDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
