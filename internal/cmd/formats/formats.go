// Package formats provides the formats command.
package formats

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wiko/internal/view"
	"github.com/open-cli-collective/wiko/pkg/wiki"
)

type formatsOptions struct {
	output  string
	noColor bool
	out     io.Writer
}

// NewCmdFormats creates the formats command.
func NewCmdFormats() *cobra.Command {
	opts := &formatsOptions{}

	cmd := &cobra.Command{
		Use:     "formats",
		Aliases: []string{"ls"},
		Short:   "List output formats",
		Long: `List the output formats wiko can compile to, with the extension of
their targets and the names accepted by **name payload** filter directives.`,
		Example: `  # List formats
  wiko formats

  # As JSON
  wiko formats -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.out = cmd.OutOrStdout()
			return runFormats(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json, plain")

	return cmd
}

func runFormats(opts *formatsOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out)

	headers := []string{"NAME", "ALIASES", "EXTENSION", "FILTERS"}
	var rows [][]string
	for _, f := range wiki.Formats() {
		aliases := strings.Join(f.Aliases, ",")
		if aliases == "" {
			aliases = "-"
		}
		rows = append(rows, []string{
			f.Name,
			aliases,
			f.Extension,
			view.Truncate(strings.Join(f.FilterNames(), ","), 30),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}
