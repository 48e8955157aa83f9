// Package initcmd provides the init command for wiko.
package initcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wiko/internal/config"
	"github.com/open-cli-collective/wiko/pkg/highlight"
	"github.com/open-cli-collective/wiko/pkg/wiki"
)

type initOptions struct {
	configPath string
	format     string
	defaults   bool
	force      bool
	out        io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize wiko configuration",
		Long: `Initialize wiko with your preferred output format and build settings.

This command will guide you through choosing a default format, the
extension of your wiki sources, and code highlighting. The configuration
will be saved to ~/.config/wiko/config.yml.`,
		Example: `  # Interactive setup
  wiko init

  # Pre-select DocBook
  wiko init --format db

  # Write defaults without prompting
  wiko init --defaults --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "default output format")
	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "write the configuration without prompting")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	configPath := config.ResolvePath(opts.configPath)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		if opts.defaults {
			return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	if opts.format != "" {
		cfg.Format = opts.format
	}

	if !opts.defaults {
		if err := newForm(cfg).Run(); err != nil {
			return err
		}
	}

	if f, ok := wiki.LookupFormat(cfg.Format); ok {
		cfg.Format = f.Name
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(opts.out, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(opts.out, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.out, "  wiko build")
	fmt.Fprintf(opts.out, "  wiko build -s skeleton%s\n", cfg.ExtensionFor(mustFormat(cfg.Format)))

	return nil
}

func mustFormat(name string) *wiki.Format {
	f, _ := wiki.LookupFormat(name)
	return f
}

// formatOptions lists every format as a select option labelled with its extension.
func formatOptions() []huh.Option[string] {
	var options []huh.Option[string]
	for _, f := range wiki.Formats() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%s)", f.Name, f.Extension), f.Name))
	}
	return options
}

func validateExt(s string) error {
	if !strings.HasPrefix(s, ".") || len(s) < 2 {
		return errors.New("extension must start with a dot, e.g. .wiki")
	}
	return nil
}

func newForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("Format used when --format is not given").
				Options(formatOptions()...).
				Value(&cfg.Format),

			huh.NewInput().
				Title("Source extension").
				Description("Files with this extension are compiled by 'wiko build'").
				Placeholder(config.DefaultSourceExt).
				Value(&cfg.SourceExt).
				Validate(validateExt),

			huh.NewConfirm().
				Title("Highlight code blocks?").
				Description("Colours Code: blocks in XML output and writes " + highlight.CSSFile).
				Value(&cfg.Highlight),

			huh.NewInput().
				Title("Highlight style").
				Description("Any chroma style name").
				Placeholder(highlight.DefaultStyle).
				Value(&cfg.Style),

			huh.NewConfirm().
				Title("Quiet by default?").
				Description("Suppress per-file progress messages").
				Value(&cfg.Quiet),
		),
	)
}
