//go:build windows

package player

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps a console window from flashing up next to the player.
const createNoWindow = 0x08000000

func detached() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: createNoWindow}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
