// Package open hands web links to the system's default handler.
package open

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/peek-cli/peek/constant"
)

// Start opens link in the default handler without waiting for it.
// Only absolute http and https links are accepted.
func Start(link string) error {
	if err := validate(link); err != nil {
		return err
	}

	cmd, ok := command(runtime.GOOS, link)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return cmd.Start()
}

func validate(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("open %q: %w", link, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("open %q: not a web link", link)
	}

	return nil
}

func command(goos, link string) (*exec.Cmd, bool) {
	switch goos {
	case constant.Windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", link), true
	case constant.Darwin:
		return exec.Command("open", link), true
	case constant.Linux:
		return exec.Command("xdg-open", link), true
	case constant.Android:
		return exec.Command("termux-open-url", link), true
	default:
		return nil, false
	}
}
