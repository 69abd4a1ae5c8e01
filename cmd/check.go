package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/player"
	"github.com/peek-cli/peek/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd verifies that the preview player can be found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the media player used for previews is installed",
	Run: func(cmd *cobra.Command, args []string) {
		path := CheckDependencies()
		cmd.Printf("%s %s found at %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), viper.GetString(key.Player), path)
	},
}

// CheckDependencies exits with install instructions when the configured player is missing from PATH.
func CheckDependencies() string {
	path, err := player.Available()
	if err != nil {
		printMissingDependencyError(viper.GetString(key.Player))
		os.Exit(1)
	}
	return path
}

func installHint(goos, dep string) string {
	switch goos {
	case constant.Darwin:
		return "brew install " + dep
	case constant.Linux:
		return "sudo apt install " + dep
	case constant.Windows:
		return "scoop install " + dep
	default:
		return ""
	}
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The player '%s' was not found in your PATH. Run with --static to browse without previews.", dep))

	suggestion := ""
	if installCmd := installHint(runtime.GOOS, dep); installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
