package configcmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wiko/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective wiko configuration and where each value comes from.`,
		Example: `  # Show current config
  wiko config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")
			return runShow(cmd.OutOrStdout(), config.ResolvePath(configPath), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = config.Default()
	}

	// Load full config with env overrides
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "default"
		switch {
		case os.Getenv(envVar) != "":
			source = envVar
		case fileErr == nil && fileValue == value:
			source = "config"
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Format", cfg.Format, fileCfg.Format, "WIKO_FORMAT")
	printField("Source ext", cfg.SourceExt, fileCfg.SourceExt, "WIKO_SOURCE_EXT")
	printField("Style", cfg.Style, fileCfg.Style, "WIKO_STYLE")
	printField("Highlight", strconv.FormatBool(cfg.Highlight), strconv.FormatBool(fileCfg.Highlight), "WIKO_HIGHLIGHT")
	printField("Quiet", strconv.FormatBool(cfg.Quiet), strconv.FormatBool(fileCfg.Quiet), "WIKO_QUIET")

	printMap := func(label string, m map[string]string) {
		_, _ = bold.Fprintf(w, "%-12s", label+":")
		if len(m) == 0 {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + m[k]
		}
		fmt.Fprintln(w, strings.Join(pairs, ", "))
	}

	printMap("Extensions", cfg.Extensions)
	printMap("Skeletons", cfg.Skeletons)

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
