// Package buildcmd provides the build command.
package buildcmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/wiko/internal/build"
	"github.com/open-cli-collective/wiko/internal/config"
	"github.com/open-cli-collective/wiko/internal/logger"
	"github.com/open-cli-collective/wiko/internal/view"
	"github.com/open-cli-collective/wiko/pkg/highlight"
	"github.com/open-cli-collective/wiko/pkg/wiki"
)

type buildOptions struct {
	configPath  string
	format      string
	skeleton    string
	skeletonOut string
	sourceExt   string
	style       string
	highlight   bool
	diff        bool
	quiet       bool
	verbose     bool
	noColor     bool
	args        []string

	// changed records which flags were given, so they win over config.
	changed map[string]bool

	out    io.Writer
	errOut io.Writer
}

// NewCmdBuild creates the build command.
func NewCmdBuild() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build [source [target]]",
		Short: "Compile wiki files",
		Long: `Compile wiki markup files into the selected output format.

Without arguments every *.wiki file below the current directory is compiled,
each target named by swapping the extension. A single directory argument is
scanned the same way; a single file is compiled next to itself; a source and
target pair compiles exactly that file.

Each document is merged into the format's skeleton. A skeleton<ext> file in
the current directory replaces the built-in one.`,
		Example: `  # Compile every .wiki file to Forrest XML
  wiko build

  # Compile one file to DocBook
  wiko build -f db guide.wiki guide.xml

  # Preview changes to reStructuredText targets without writing
  wiko build -f rest --diff docs/

  # Write the default MoinMoin skeleton for editing
  wiko build -f moin -s skeleton.moin`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.quiet, _ = cmd.Flags().GetBool("quiet")
			opts.args = args
			opts.out = cmd.OutOrStdout()
			opts.errOut = cmd.ErrOrStderr()
			opts.changed = map[string]bool{}
			for _, name := range []string{"format", "source-ext", "style", "highlight", "quiet", "skeleton"} {
				opts.changed[name] = cmd.Flags().Changed(name)
			}
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: forrest, db (docbook), moin, rest")
	cmd.Flags().StringVar(&opts.skeleton, "skeleton", "", "skeleton file (default: skeleton<ext> in the current directory)")
	cmd.Flags().StringVarP(&opts.skeletonOut, "skeleton-out", "s", "", "write the format's default skeleton to this path and exit")
	cmd.Flags().StringVar(&opts.sourceExt, "source-ext", "", "extension of source files (default: .wiki)")
	cmd.Flags().StringVar(&opts.style, "style", "", "chroma style for highlighted code")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "syntax-highlight code blocks and write "+highlight.CSSFile)
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "show a diff against existing targets instead of writing")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every compiled file")

	return cmd
}

// applyFlags overrides configuration with explicitly given flags.
func (o *buildOptions) applyFlags(cfg *config.Config) {
	if o.changed["format"] {
		cfg.Format = o.format
	}
	if o.changed["source-ext"] {
		cfg.SourceExt = o.sourceExt
	}
	if o.changed["style"] {
		cfg.Style = o.style
	}
	if o.changed["highlight"] {
		cfg.Highlight = o.highlight
	}
	if o.changed["quiet"] {
		cfg.Quiet = o.quiet
	}
}

func runBuild(ctx context.Context, opts *buildOptions) error {
	cfg, err := config.LoadWithEnv(config.ResolvePath(opts.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	format, _ := wiki.LookupFormat(cfg.Format)

	renderer := view.NewRenderer(view.FormatTable, opts.noColor)
	renderer.SetWriter(opts.out)
	renderer.SetQuiet(cfg.Quiet)

	if opts.skeletonOut != "" {
		if err := build.DumpSkeleton(format, opts.skeletonOut); err != nil {
			return err
		}
		renderer.Success(fmt.Sprintf("Wrote %s skeleton to %s", format.Name, opts.skeletonOut))
		return nil
	}

	level := log.WarnLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	l := logger.NewWithLevel(opts.errOut, level)

	skeletonPath := cfg.SkeletonFor(format)
	if opts.changed["skeleton"] {
		skeletonPath = opts.skeleton
	}
	skeleton, loaded := build.LoadOrDefault(skeletonPath, format.Skeleton)
	if !loaded {
		l.SkeletonFallback(skeletonPath)
	}

	jobs, err := resolveJobs(opts.args, cfg.SourceExt, cfg.ExtensionFor(format))
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		renderer.RenderText(fmt.Sprintf("No %s files found.", cfg.SourceExt))
		return nil
	}

	var highlighter wiki.Highlighter
	if cfg.Highlight {
		highlighter = highlight.New(cfg.Style)
	}

	b := build.New(build.Options{
		Format:      format,
		Skeleton:    skeleton,
		Highlighter: highlighter,
		StyleSheet:  highlight.CSSFile,
		Diff:        opts.diff,
	}, l, renderer)
	b.SetOutput(opts.out)

	summary, err := b.Run(ctx, jobs)
	if err != nil {
		return err
	}
	if summary.Warnings > 0 {
		renderer.Warning(fmt.Sprintf("%d markup warning(s), see the log for details", summary.Warnings))
	}
	if err := summary.Err(); err != nil {
		return err
	}
	if !opts.diff {
		renderer.Success(fmt.Sprintf("Compiled %d file(s) to %s", summary.Files, format.Name))
	}
	return nil
}

// resolveJobs turns the positional arguments into jobs.
func resolveJobs(args []string, sourceExt, targetExt string) ([]build.Job, error) {
	switch len(args) {
	case 0:
		return build.Discover(".", sourceExt, targetExt)
	case 1:
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", args[0], err)
		}
		if info.IsDir() {
			return build.Discover(args[0], sourceExt, targetExt)
		}
		return []build.Job{{Source: args[0], Target: build.TargetFor(args[0], targetExt)}}, nil
	default:
		return []build.Job{{Source: args[0], Target: args[1]}}, nil
	}
}
