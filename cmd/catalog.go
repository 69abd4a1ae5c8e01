package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/muesli/reflow/truncate"
	"github.com/peek-cli/peek/catalog"
	"github.com/peek-cli/peek/color"
	"github.com/peek-cli/peek/filesystem"
	"github.com/peek-cli/peek/icon"
	"github.com/peek-cli/peek/key"
	"github.com/peek-cli/peek/query"
	"github.com/peek-cli/peek/style"
	"github.com/peek-cli/peek/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolP("json", "j", false, "Print the catalog as JSON")
	catalogCmd.Flags().StringP("filter", "f", "", "Only print items fuzzily matching the filter")
	catalogCmd.Flags().StringP("output", "o", "", "Write the output to a file instead of stdout")
	lo.Must0(catalogCmd.RegisterFlagCompletionFunc("filter", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))

	catalogCmd.SetOut(os.Stdout)
}

// catalogCmd prints the catalog without opening the grid.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch and print the video catalog",
	Example: `  peek catalog --filter bunny
  peek catalog --json -o videos.json`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			asJson = lo.Must(cmd.Flags().GetBool("json"))
			filter = lo.Must(cmd.Flags().GetString("filter"))
			output = lo.Must(cmd.Flags().GetString("output"))
		)

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching catalog...", icon.Get(icon.Progress)))
		items, err := catalog.Fetch(context.Background(), viper.GetString(key.CatalogURL))
		erase()
		handleErr(err)

		if filter != "" {
			items = catalog.Filter(items, filter)
			handleErr(query.Remember(filter, 1))
		}

		out := cmd.OutOrStdout()
		if output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			out = file
		}

		if asJson {
			handleErr(writeJSON(out, items))
			return
		}

		width := 0
		if output == "" {
			width = util.TerminalWidth(0)
		}
		handleErr(writeItems(out, items, width))
	},
}

func init() {
	catalogCmd.AddCommand(catalogSchemaCmd)
	catalogSchemaCmd.SetOut(os.Stdout)
}

// catalogSchemaCmd prints the JSON Schema a catalog feed item must satisfy.
var catalogSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of a catalog item",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(writeJSON(cmd.OutOrStdout(), itemSchema()))
	},
}

func itemSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}

	schema := reflector.Reflect(&catalog.Item{})
	schema.Title = "Catalog item"
	schema.Description = "A single entry of the JSON array served at catalog.url"
	return schema
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeItems prints a numbered listing. Lines are cut to width unless it is 0.
func writeItems(w io.Writer, items []*catalog.Item, width int) error {
	fit := func(s string) string {
		if width <= 0 {
			return s
		}
		return truncate.StringWithTail(s, uint(width), "…")
	}

	for i, item := range items {
		lines := []string{
			fmt.Sprintf("%s %s %s",
				style.Fg(color.Purple)(fmt.Sprintf("%d.", i+1)),
				style.Bold(item.Title),
				style.Faint("("+item.Duration+")"),
			),
			"  " + item.Author + " • " + item.Subtitle(),
			"  " + style.Fg(color.Blue)(item.VideoURL),
		}

		for _, line := range lines {
			if _, err := fmt.Fprintln(w, fit(line)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, style.Faint(util.Quantify(len(items), "video", "videos")))
	return err
}
