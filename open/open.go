// Package open launches media files and folders with the system's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/filesystem"
)

// Start opens path with the default handler without waiting for it to exit.
func Start(path string) error {
	return StartWith(path, "")
}

// StartWith opens path with app, or with the default handler when app is empty.
func StartWith(path, app string) error {
	if err := filesystem.Readable(path); err != nil {
		if info, statErr := filesystem.API().Stat(path); statErr != nil || !info.IsDir() {
			return err
		}
	}

	cmd, ok := command(runtime.GOOS, path, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func command(goos, path, app string) (*exec.Cmd, bool) {
	if app != "" {
		return commandWith(goos, path, app)
	}

	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", path), true
	case constant.Darwin:
		return exec.Command("open", path), true
	case constant.Linux:
		return exec.Command("xdg-open", path), true
	case constant.Android:
		return exec.Command("termux-open", path), true
	default:
		return nil, false
	}
}

func commandWith(goos, path, app string) (*exec.Cmd, bool) {
	switch goos {
	case constant.Windows:
		return exec.Command("cmd", "/C", "start", "", app, path), true
	case constant.Darwin:
		return exec.Command("open", "-a", app, path), true
	case constant.Linux:
		return exec.Command(app, path), true
	case constant.Android:
		return exec.Command("termux-open", "--choose", path), true
	default:
		return nil, false
	}
}
