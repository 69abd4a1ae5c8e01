// Package cmd implements the command-line interface for peek.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peek-cli/peek/color"
	"github.com/peek-cli/peek/config"
	"github.com/peek-cli/peek/constant"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/log"
	"github.com/peek-cli/peek/preview"
	"github.com/peek-cli/peek/style"
	"github.com/peek-cli/peek/tui"
	"github.com/peek-cli/peek/util"
	"github.com/peek-cli/peek/version"
	"github.com/peek-cli/peek/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("catalog", "u", "", "URL of the JSON feed to preview")
	lo.Must0(viper.BindPFlag(key.CatalogURL, rootCmd.PersistentFlags().Lookup("catalog")))

	rootCmd.Flags().Bool("static", false, "Render the grid without hover previews")

	rootCmd.Flags().String("input", "", "Input surface: auto, pointer or touch")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("input", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Default[key.PreviewInput].Options, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PreviewInput, rootCmd.Flags().Lookup("input")))

	rootCmd.Flags().IntP("columns", "c", 0, "Number of grid columns")
	lo.Must0(viper.BindPFlag(key.TUIColumns, rootCmd.Flags().Lookup("columns")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Leftover player sockets from a previous run.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd opens the preview grid.
var rootCmd = &cobra.Command{
	Use:   constant.App,
	Short: "Browse a video catalog in the terminal and preview items on hover",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Browse a video catalog in the terminal and preview items on hover"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options, err := tuiOptions(lo.Must(cmd.Flags().GetBool("static")))
		handleErr(err)

		if options.Mode == preview.ModeInteractive {
			CheckDependencies()
		}

		handleErr(tui.Run(options))
	},
}

// tuiOptions resolves the grid configuration from viper.
func tuiOptions(static bool) (*tui.Options, error) {
	mode, err := parseMode(viper.GetString(key.PreviewMode))
	if err != nil {
		return nil, err
	}
	if static {
		mode = preview.ModeStatic
	}

	surface, err := parseSurface(viper.GetString(key.PreviewInput), util.Interactive())
	if err != nil {
		return nil, err
	}

	return &tui.Options{
		CatalogURL: viper.GetString(key.CatalogURL),
		Mode:       mode,
		Surface:    surface,
		Columns:    viper.GetInt(key.TUIColumns),
		HoverDelay: time.Duration(viper.GetInt(key.PreviewHoverDelay)) * time.Millisecond,
		StartMuted: viper.GetBool(key.PreviewStartMuted),
		SeekStep:   viper.GetFloat64(key.PreviewSeekStep),
	}, nil
}

func parseMode(s string) (preview.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interactive":
		return preview.ModeInteractive, nil
	case "static":
		return preview.ModeStatic, nil
	default:
		return preview.ModeInteractive, fmt.Errorf("unknown preview mode %q, expected one of %s", s, strings.Join(config.Default[key.PreviewMode].Options, ", "))
	}
}

// parseSurface maps preview.input to a surface. auto picks pointer when a terminal that can report the mouse is attached.
func parseSurface(s string, tty bool) (preview.Surface, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		if tty {
			return preview.SurfacePointer, nil
		}
		return preview.SurfaceTouch, nil
	case "pointer":
		return preview.SurfacePointer, nil
	case "touch":
		return preview.SurfaceTouch, nil
	default:
		return preview.SurfacePointer, fmt.Errorf("unknown input surface %q, expected one of %s", s, strings.Join(config.Default[key.PreviewInput].Options, ", "))
	}
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
