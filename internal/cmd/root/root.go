// Package root provides the root command for the wiko CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wiko/internal/cmd/buildcmd"
	"github.com/open-cli-collective/wiko/internal/cmd/completion"
	"github.com/open-cli-collective/wiko/internal/cmd/configcmd"
	"github.com/open-cli-collective/wiko/internal/cmd/formats"
	"github.com/open-cli-collective/wiko/internal/cmd/initcmd"
	"github.com/open-cli-collective/wiko/internal/version"
)

// NewCmdRoot creates the root command for wiko.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wiko",
		Short: "Compile wiki markup into XML and lightweight markup",
		Long: `wiko compiles a small line-oriented wiki markup into Apache Forrest
or DocBook XML, MoinMoin wiki text, or reStructuredText.

Each document is merged into a skeleton template for its format.

Get started by running: wiko build`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/wiko/config.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress messages")

	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(buildcmd.NewCmdBuild())
	cmd.AddCommand(formats.NewCmdFormats())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
