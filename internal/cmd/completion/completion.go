// Package completion provides shell completion generation.
package completion

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for wiko.

To load completions in your current shell session:

  # bash
  source <(wiko completion bash)

  # zsh
  source <(wiko completion zsh)

  # fish
  wiko completion fish | source

  # PowerShell
  wiko completion powershell | Out-String | Invoke-Expression

To load completions for every new session, write the script to your
shell's completion directory, e.g.:

  wiko completion bash > /etc/bash_completion.d/wiko
  wiko completion zsh > "${fpath[1]}/_wiko"
  wiko completion fish > ~/.config/fish/completions/wiko.fish`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf("unsupported shell %q", args[0])
		},
	}
}
