//go:build windows

package download

import "os/exec"

func configureDetached(cmd *exec.Cmd) {}
