package build

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/open-cli-collective/wiko/internal/logger"
	"github.com/open-cli-collective/wiko/internal/view"
	"github.com/open-cli-collective/wiko/pkg/wiki"
)

// CSSWriter is implemented by highlighters that ship a style sheet.
type CSSWriter interface {
	WriteCSS(w io.Writer) error
}

// Options configures a Builder.
type Options struct {
	Format      *wiki.Format
	Skeleton    string // template the compiled variables are merged into
	Highlighter wiki.Highlighter
	StyleSheet  string // file name written next to targets when highlighting; "" disables
	Diff        bool   // print diffs against existing targets instead of writing
}

// Summary counts the outcome of a run.
type Summary struct {
	Files    int
	Failed   int
	Warnings int
}

// Err reports failed files as a single error, nil when all succeeded.
func (s *Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d files failed", s.Failed, s.Files)
}

// Builder compiles jobs and writes their targets.
type Builder struct {
	opts     Options
	log      *logger.Logger
	renderer *view.Renderer
	out      io.Writer
}

// New creates a Builder. Diffs go to stdout until SetOutput is called.
func New(opts Options, l *logger.Logger, r *view.Renderer) *Builder {
	return &Builder{
		opts:     opts,
		log:      l,
		renderer: r,
		out:      os.Stdout,
	}
}

// SetOutput sets where diffs are printed.
func (b *Builder) SetOutput(w io.Writer) {
	b.out = w
}

type outcome struct {
	output   string
	warnings []string
	err      error
}

// Run compiles every job in order. Each document gets a fresh compiler
// state. A failing file is reported and counted without stopping the
// others. The returned error is only set when ctx is cancelled.
func (b *Builder) Run(ctx context.Context, jobs []Job) (*Summary, error) {
	start := time.Now()
	b.log.BuildStarted(b.opts.Format.Name, len(jobs))

	summary := &Summary{Files: len(jobs)}
	var written []string
	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		o := b.compile(job)
		if o.err == nil {
			o.err = b.emit(job, o.output)
		}
		if o.err != nil {
			summary.Failed++
			b.log.FileError(job.Source, o.err)
			b.renderer.Error(o.err.Error())
			continue
		}
		summary.Warnings += len(o.warnings)
		written = append(written, job.Target)
	}

	if err := b.writeStyleSheets(written); err != nil {
		b.renderer.Error(err.Error())
	}

	b.log.BuildCompleted(summary.Files, summary.Failed, time.Since(start))
	return summary, nil
}

// compile turns one source into its finished target text.
func (b *Builder) compile(job Job) outcome {
	content, err := ReadSource(job.Source)
	if err != nil {
		return outcome{err: err}
	}

	c := wiki.NewCompiler(b.opts.Format,
		wiki.WithLogger(b.log.With("file", job.Source)),
		wiki.WithHighlighter(b.opts.Highlighter))
	result := c.Compile(content)

	output, err := wiki.ExpandSkeleton(b.opts.Skeleton, result.Vars)
	if err != nil {
		return outcome{err: fmt.Errorf("%s: %w", job.Source, err)}
	}
	return outcome{output: output, warnings: result.Warnings}
}

// emit writes the target, or prints its diff in diff mode.
func (b *Builder) emit(job Job, output string) error {
	if b.opts.Diff {
		current, err := readExisting(job.Target)
		if err != nil {
			return err
		}
		unified := UnifiedDiff(job.Target, current, output)
		if unified == "" {
			b.renderer.Progress("%s is up to date", job.Target)
			return nil
		}
		_, err = fmt.Fprint(b.out, RenderDiff(unified, b.renderer.NoColor()))
		return err
	}

	b.renderer.Progress("%s -> %s", job.Source, job.Target)
	if err := WriteTarget(job.Target, output); err != nil {
		return err
	}
	b.log.FileCompiled(job.Source, job.Target)
	return nil
}

// writeStyleSheets puts the highlighter's CSS once into every directory that
// received a target.
func (b *Builder) writeStyleSheets(targets []string) error {
	css, ok := b.opts.Highlighter.(CSSWriter)
	if !ok || b.opts.Diff || b.opts.StyleSheet == "" || !b.opts.Format.HighlightCode {
		return nil
	}

	var sheet bytes.Buffer
	if err := css.WriteCSS(&sheet); err != nil {
		return fmt.Errorf("failed to generate style sheet: %w", err)
	}

	seen := map[string]bool{}
	for _, target := range targets {
		dir := filepath.Dir(target)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := WriteTarget(filepath.Join(dir, b.opts.StyleSheet), sheet.String()); err != nil {
			return err
		}
	}
	return nil
}

// DumpSkeleton writes the built-in skeleton of f to path.
func DumpSkeleton(f *wiki.Format, path string) error {
	return WriteTarget(path, f.Skeleton)
}
