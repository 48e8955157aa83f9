// compiler.go implements the block state machine and the Compiler entry point.
package wiki

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Highlighter turns one verbatim line into highlighted markup for a language.
// It returns ok=false when the language is unknown or highlighting fails.
type Highlighter interface {
	Highlight(code, language string) (string, bool)
}

// Compiler turns wiki markup into one output format. A Compiler holds only
// immutable configuration and may be reused for any number of documents.
type Compiler struct {
	format      *Format
	logger      *log.Logger
	highlighter Highlighter
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger that receives warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithHighlighter sets the syntax highlighter for code blocks.
func WithHighlighter(h Highlighter) Option {
	return func(c *Compiler) {
		c.highlighter = h
	}
}

// NewCompiler creates a Compiler for the given format.
func NewCompiler(f *Format, opts ...Option) *Compiler {
	c := &Compiler{
		format: f,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Format returns the output format of the compiler.
func (c *Compiler) Format() *Format {
	return c.format
}

// Compile converts a whole document. It never fails: unbalanced input is
// reported through Result.Warnings and the output is closed off regardless.
func (c *Compiler) Compile(content string) *Result {
	s := c.newState()
	for _, line := range SplitLines(content) {
		s.processLine(line)
	}
	s.stack.drain()
	s.result.Vars[VarContent] = s.out.String()
	return s.result
}

// parseMode governs how blank and text lines are interpreted.
type parseMode int

const (
	modeVoid     parseMode = iota // between blocks
	modePara                      // inside a paragraph
	modeCodePara                  // code, ends at the next blank line
	modeCode                      // code, ends at "}}"
	modeEnvPara                   // single-paragraph environment
	modeList                      // inside a list
	modeRaw                       // raw block, ends at "}}"
)

func (m parseMode) String() string {
	switch m {
	case modeVoid:
		return "void"
	case modePara:
		return "para"
	case modeCodePara:
		return "codepara"
	case modeCode:
		return "code"
	case modeEnvPara:
		return "envpara"
	case modeList:
		return "list"
	case modeRaw:
		return "raw"
	}
	return "unknown"
}

// code reports whether lines go to the verbatim processor.
func (m parseMode) code() bool {
	return m == modeCode || m == modeCodePara
}

// literal reports whether lines bypass block classification.
func (m parseMode) literal() bool {
	return m.code() || m == modeRaw
}

// envFrame records what to restore when an environment closes.
type envFrame struct {
	anchor     int  // stack entry the environment is anchored to
	inclusive  bool // close the anchor itself, not just its content
	mode       parseMode
	levels     []listLevel
	listReturn parseMode
}

// compileState is the per-document state of the block state machine.
type compileState struct {
	format      *Format
	lexer       *Lexer
	inliner     *Inliner
	highlighter Highlighter
	logger      *log.Logger
	result      *Result

	out   strings.Builder
	stack *blockStack

	frames        []envFrame
	mode          parseMode
	codeLang      string
	sectionIndent int
	levels        []listLevel
	listReturn    parseMode
}

func (c *Compiler) newState() *compileState {
	s := &compileState{
		format:      c.format,
		lexer:       NewLexer(c.format),
		inliner:     NewInliner(c.format),
		highlighter: c.highlighter,
		logger:      c.logger,
		result:      newResult(c.logger),
	}
	s.stack = newBlockStack(&s.out, s.result.AddWarning)
	s.inliner.dropped = func(name string) {
		if s.logger != nil {
			s.logger.Debug("dropped filter directive", "filter", name, "format", s.format.Name)
		}
	}
	return s
}

func (s *compileState) processLine(line string) {
	tok := s.lexer.Classify(line, s.mode.literal())
	switch tok.Kind {
	case LineBlank:
		s.processEmptyLine()
	case LineVariable:
		s.result.Vars[tok.Key] = tok.Value
	case LineClose:
		s.closeEnvironment(true)
	case LineEnvironment:
		s.openEnvironment(tok)
	case LineListItem:
		s.processList(tok)
	case LineHeader:
		s.processSection(tok)
	default:
		s.processText(line)
	}
}

func (s *compileState) processEmptyLine() {
	switch s.mode {
	case modeCode, modeRaw:
		s.out.WriteString("\n")
	case modeCodePara, modeEnvPara:
		s.closeEnvironment(false)
	case modePara:
		s.stack.closeExpected(entryParagraph, KindPara)
		s.mode = modeVoid
	case modeList:
		s.endList()
	}
}

// processText writes one content line, opening a paragraph first if no
// block is active.
func (s *compileState) processText(line string) {
	if s.mode == modeVoid {
		s.openParagraph()
		s.mode = modePara
	}
	if s.mode.code() {
		s.out.WriteString(s.verbatim(line))
	} else {
		s.out.WriteString(s.inliner.Replace(line))
	}
	s.out.WriteString("\n")
}

// verbatim prepares a code line: the \blank escape is removed, then the
// highlighter is tried and the format's code escaping is the fallback.
func (s *compileState) verbatim(line string) string {
	text := strings.ReplaceAll(line, blankEscape, "")
	if s.format.HighlightCode && s.highlighter != nil && s.codeLang != "" {
		if out, ok := s.highlighter.Highlight(text, s.codeLang); ok {
			return strings.TrimRight(out, "\n")
		}
	}
	if s.format.EscapeCode != nil {
		return s.format.EscapeCode(text)
	}
	return text
}

func (s *compileState) openParagraph() {
	s.stack.push(entryParagraph, KindPara, s.format.block(KindPara), nil)
}

// leaveParagraph ends a plain paragraph before a new block starts.
func (s *compileState) leaveParagraph() {
	if s.mode == modePara {
		s.stack.closeExpected(entryParagraph, KindPara)
		s.mode = modeVoid
	}
}

func (s *compileState) openEnvironment(tok LineToken) {
	tag, _ := s.format.Environment(tok.Name)
	s.leaveParagraph()

	frame := envFrame{
		inclusive:  true,
		mode:       s.mode,
		levels:     append([]listLevel(nil), s.levels...),
		listReturn: s.listReturn,
	}

	var args map[string]string
	if tok.Name == KindFigure || tok.Name == KindImage {
		fref, atts := splitRef(tok.Extra)
		if strings.Contains(tok.Extra, "||") {
			atts = s.inliner.ApplyFilters(atts)
		}
		args = map[string]string{"fref": fref, "atts": atts}
	}
	frame.anchor = s.stack.push(entryEnvironment, tok.Name, tag, args)
	s.frames = append(s.frames, frame)
	s.codeLang = strings.TrimSpace(tok.Extra)

	if tok.Name == KindCode {
		if tok.Block {
			s.mode = modeCode
		} else {
			s.mode = modeCodePara
		}
		return
	}

	if tag.WrapPara {
		s.openParagraph()
	}
	switch {
	case tok.Block && tok.Name == KindRaw:
		s.mode = modeRaw
	case tok.Block && tag.WrapPara:
		s.mode = modePara
	case tok.Block:
		s.mode = modeVoid
	default:
		s.mode = modeEnvPara
	}

	if extra := strings.TrimSpace(tok.Extra); extra != "" && tok.Name != KindFigure && tok.Name != KindImage {
		s.processText(extra)
	}
}

// closeEnvironment closes the innermost environment and restores the mode
// that was active when it opened. explicit is set for a "}}" line.
func (s *compileState) closeEnvironment(explicit bool) {
	if len(s.frames) == 0 {
		if explicit {
			s.result.AddWarning("unmatched %q with no open environment", "}}")
		}
		return
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if !s.stack.closeThrough(f.anchor, f.inclusive) {
		s.result.AddWarning("environment was already closed")
	}
	s.mode = f.mode
	s.levels = s.liveLevels(f.levels)
	s.listReturn = f.listReturn
	if s.mode == modeList && len(s.levels) == 0 {
		s.mode = modeVoid
	}
}

// liveLevels truncates levels at the first one whose entries are gone.
func (s *compileState) liveLevels(levels []listLevel) []listLevel {
	for i, l := range levels {
		if !s.stack.contains(l.list) || !s.stack.contains(l.item) {
			return levels[:i]
		}
	}
	return levels
}

// processSection closes sections according to the header's depth code and
// opens a new one.
func (s *compileState) processSection(tok LineToken) {
	s.endBlocks()

	switch depth := tok.Depth; {
	case depth == "":
		s.stack.closeSections(1)
		s.sectionIndent--
	case depth[0] == '-':
		n := 1
		if len(depth) > 1 {
			n = strings.Count(depth, "-")
			if n == 1 {
				n, _ = strconv.Atoi(depth[1:])
			}
		}
		s.stack.closeSections(n + 1)
		s.sectionIndent -= n + 1
	case depth[0] == '+':
	default:
		target, _ := strconv.Atoi(depth)
		n := s.sectionIndent - target
		if n < 0 {
			n = 0
		}
		s.stack.closeSections(n)
		s.sectionIndent -= n
	}
	s.pruneFrames()

	if s.sectionIndent < -1 {
		s.sectionIndent = -1
	}
	s.sectionIndent++

	id := tok.ID
	if id == "" {
		id = sectionSlug(tok.Text)
	}
	title := s.inliner.Replace(tok.Text)
	if s.format.SectionTitle != nil {
		title = s.format.SectionTitle(title, s.sectionIndent)
	}
	s.stack.push(entrySection, "", s.format.Section, map[string]string{
		"title": title,
		"id":    s.inliner.Replace(id),
	})
	s.out.WriteString("\n")
}

// endBlocks ends paragraphs, lists and single-paragraph environments as a
// blank line would, until no such block is active.
func (s *compileState) endBlocks() {
	for guard := len(s.frames) + 3; guard > 0; guard-- {
		switch s.mode {
		case modePara, modeList, modeEnvPara:
			s.processEmptyLine()
		default:
			return
		}
	}
}

// pruneFrames drops environments whose blocks were closed by a header.
func (s *compileState) pruneFrames() {
	kept := s.frames[:0]
	for _, f := range s.frames {
		if s.stack.contains(f.anchor) {
			kept = append(kept, f)
		}
	}
	if len(kept) != len(s.frames) {
		s.mode = modeVoid
		s.levels = nil
		s.listReturn = modeVoid
	}
	s.frames = kept
}

// sectionSlug builds an id from a title: lowercased words, quotes trimmed,
// joined with underscores.
func sectionSlug(title string) string {
	words := strings.Fields(title)
	for i, w := range words {
		words[i] = strings.Trim(strings.ToLower(w), `"`)
	}
	return strings.Join(words, "_")
}
