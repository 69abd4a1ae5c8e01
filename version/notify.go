package version

import (
	"fmt"

	"github.com/peek-cli/peek/color"
	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/style"
	"github.com/peek-cli/peek/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
// Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	latest, err := Latest()
	erase()
	if err != nil {
		return
	}

	if newer, err := Newer(latest); err != nil || !newer {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/peek-cli/peek/releases/tag/v"+latest),
	)
}

// Newer reports whether latest is ahead of the running version.
func Newer(latest string) (bool, error) {
	comp, err := Compare(latest, constant.Version)
	if err != nil {
		return false, err
	}
	return comp > 0, nil
}
