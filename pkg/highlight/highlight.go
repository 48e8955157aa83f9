// Package highlight provides syntax highlighting for code blocks using chroma.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "github"

// CSSFile is the style sheet name written next to generated documents.
const CSSFile = "style_code.css"

// Chroma highlights code into HTML spans that reference CSS classes.
type Chroma struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New creates a Chroma highlighter. Unknown style names fall back to chroma's default.
func New(style string) *Chroma {
	if style == "" {
		style = DefaultStyle
	}
	return &Chroma{
		style: styles.Get(style),
		formatter: html.New(
			html.WithClasses(true),
			html.PreventSurroundingPre(true),
		),
	}
}

// Highlight renders code for the given language. It returns the input
// unchanged and false if the language is unknown or tokenising fails.
func (c *Chroma) Highlight(code, language string) (string, bool) {
	lexer := lexers.Get(strings.ToLower(strings.TrimSpace(language)))
	if lexer == nil {
		return code, false
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code, false
	}
	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, iterator); err != nil {
		return code, false
	}
	return b.String(), true
}

// Supports reports whether a lexer exists for the language.
func (c *Chroma) Supports(language string) bool {
	return lexers.Get(strings.ToLower(strings.TrimSpace(language))) != nil
}

// WriteCSS writes the style sheet for the highlighter's classes.
func (c *Chroma) WriteCSS(w io.Writer) error {
	if err := c.formatter.WriteCSS(w, c.style); err != nil {
		return fmt.Errorf("failed to write code style sheet: %w", err)
	}
	return nil
}
