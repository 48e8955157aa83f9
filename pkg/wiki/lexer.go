// lexer.go classifies input lines for the block state machine.
package wiki

import (
	"regexp"
	"strings"
)

var (
	varPattern    = regexp.MustCompile(`^@([^:]*): (.*)$`)
	closePattern  = regexp.MustCompile(`^}}\s*$`)
	envPattern    = regexp.MustCompile(`^(\{*)([a-zA-Z]+):(-*|-?[0-9]+)\s*(.*)$`)
	listPattern   = regexp.MustCompile(`^(\{*)([*#~]+)(\s.*)?$`)
	headerPattern = regexp.MustCompile(`^==(\+|-?[0-9]+|-*)\s*([^=]+)\s*=*\s*(.*)$`)
)

// blockPrefix marks environments and list items that stay open until "}}".
const blockPrefix = "{{"

// Lexer turns raw lines into LineTokens. Each line is classified exactly once,
// with the first matching rule winning.
type Lexer struct {
	// IsEnvironment reports whether a kind name opens an environment.
	// Lines naming unknown kinds fall through to the later rules.
	IsEnvironment func(kind string) bool
}

// NewLexer creates a Lexer that recognises the environments of a format.
func NewLexer(f *Format) *Lexer {
	return &Lexer{
		IsEnvironment: func(kind string) bool {
			_, ok := f.Environment(kind)
			return ok
		},
	}
}

// Classify returns the token for line. In raw mode (inside code) only blank
// lines and the close marker are recognised; everything else is text.
func (l *Lexer) Classify(line string, raw bool) LineToken {
	tok := LineToken{Kind: LineText, Line: line}

	if strings.TrimSpace(line) == "" {
		tok.Kind = LineBlank
		return tok
	}

	if !raw {
		if m := varPattern.FindStringSubmatch(line); m != nil {
			tok.Kind = LineVariable
			tok.Key = m[1]
			tok.Value = m[2]
			return tok
		}
	}

	if closePattern.MatchString(line) {
		tok.Kind = LineClose
		return tok
	}

	if raw {
		return tok
	}

	if m := envPattern.FindStringSubmatch(line); m != nil && l.isEnvironment(m[2]) {
		tok.Kind = LineEnvironment
		tok.Block = m[1] == blockPrefix
		tok.Name = m[2]
		tok.Depth = m[3]
		tok.Extra = m[4]
		return tok
	}

	if m := listPattern.FindStringSubmatch(line); m != nil {
		tok.Kind = LineListItem
		tok.Block = m[1] == blockPrefix
		tok.Signature = m[2]
		tok.Text = strings.TrimSpace(m[3])
		return tok
	}

	if m := headerPattern.FindStringSubmatch(line); m != nil {
		tok.Kind = LineHeader
		tok.Depth = m[1]
		tok.Text = strings.TrimRight(m[2], " \t")
		tok.ID = strings.TrimSpace(m[3])
		return tok
	}

	return tok
}

func (l *Lexer) isEnvironment(kind string) bool {
	if l.IsEnvironment == nil {
		return false
	}
	return l.IsEnvironment(kind)
}

// SplitLines splits a document into lines, accepting \n, \r\n and \r endings.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
