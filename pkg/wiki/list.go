// list.go implements the list engine: nested, mixed-type lists driven by the
// marker signature of consecutive list-item lines.
package wiki

import "strings"

// listLevel is one open list container and its current item.
type listLevel struct {
	marker byte
	list   int // container entry serial
	item   int // entry closed when a sibling item starts
	body   int // entry that receives the item's content
}

func (s *compileState) signature() string {
	var b strings.Builder
	for _, l := range s.levels {
		b.WriteByte(l.marker)
	}
	return b.String()
}

// commonPrefix returns the length of the longest common prefix of a and b.
func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// processList handles one list-item line.
func (s *compileState) processList(tok LineToken) {
	if s.mode != modeList {
		s.leaveParagraph()
		if top, ok := s.stack.top(); ok && s.mode == modeEnvPara && top.kind == entryParagraph {
			s.stack.pop()
		}
		s.listReturn = s.mode
		s.levels = nil
		s.mode = modeList
	}

	text := s.diffLists(tok.Signature, tok.Text)

	if tok.Block {
		s.openItemBlock()
	}
	if text != "" {
		s.processText(text)
	}
}

// diffLists moves from the current signature to sig. Levels below the common
// prefix are closed; if any were, the item at the common level is closed and
// reopened before deeper levels open inside it. The returned text has not
// been consumed by a definition item and still has to be written into the
// innermost item.
func (s *compileState) diffLists(sig, text string) string {
	prev := s.signature()
	if prev == sig {
		last := len(s.levels) - 1
		s.closeItem(last)
		return s.openItem(last, text)
	}

	common := commonPrefix(prev, sig)
	for i := len(s.levels) - 1; i >= common; i-- {
		s.closeLevel(i)
	}
	if common > 0 && common < len(prev) {
		s.closeItem(common - 1)
		if common == len(sig) {
			return s.openItem(common-1, text)
		}
		s.openItem(common-1, "")
	}
	for i := common; i < len(sig); i++ {
		s.openLevel(sig[i])
		text = s.openItem(i, text)
	}
	return text
}

func (s *compileState) openLevel(marker byte) {
	name := string(marker)
	serial := s.stack.push(entryList, name, s.format.block(name), nil)
	s.levels = append(s.levels, listLevel{marker: marker, list: serial})
}

// openItem opens a new item at level i. Ordered and unordered items pass the
// text through; definition items consume it as "term||definition".
func (s *compileState) openItem(i int, text string) string {
	lvl := &s.levels[i]
	if i > 0 {
		s.out.WriteString(strings.Repeat(s.format.ListIndent, i))
	}

	switch lvl.marker {
	case ListOrdered[0], ListUnordered[0]:
		name := ItemUnordered
		if lvl.marker == ListOrdered[0] {
			name = ItemOrdered
		}
		lvl.item = s.pushItem(name)
		lvl.body = lvl.item
		return text
	}

	term, def, _ := strings.Cut(text, "||")
	lvl.item = s.stack.push(entryItem, ItemEntry, s.format.block(ItemEntry), nil)
	s.stack.push(entryItem, ItemTerm, s.format.block(ItemTerm), nil)
	s.out.WriteString(s.inliner.Replace(strings.TrimSpace(term)))
	s.stack.closeExpected(entryItem, ItemTerm)
	lvl.body = s.pushItem(ItemDefinition)
	if def = strings.TrimSpace(def); def != "" {
		s.out.WriteString(s.inliner.Replace(def))
		s.out.WriteString("\n")
	}
	return ""
}

// pushItem opens an item tag and its paragraph wrapper, returning the item's serial.
func (s *compileState) pushItem(name string) int {
	tag := s.format.block(name)
	serial := s.stack.push(entryItem, name, tag, nil)
	if tag.WrapPara {
		s.openParagraph()
	}
	return serial
}

func (s *compileState) closeItem(i int) {
	if i < 0 || i >= len(s.levels) {
		return
	}
	if !s.stack.closeThrough(s.levels[i].item, true) {
		s.result.AddWarning("list item at depth %d was already closed", i+1)
	}
}

func (s *compileState) closeLevel(i int) {
	if !s.stack.closeThrough(s.levels[i].list, true) {
		s.result.AddWarning("list at depth %d was already closed", i+1)
	}
	s.levels = s.levels[:i]
}

// endList closes every open level and returns to the mode the list started in.
func (s *compileState) endList() {
	for i := len(s.levels) - 1; i >= 0; i-- {
		s.closeLevel(i)
	}
	s.levels = nil
	s.mode = s.listReturn
	s.listReturn = modeVoid
	if s.mode == modeEnvPara {
		s.closeEnvironment(false)
	}
}

// openItemBlock keeps the innermost item open for multi-paragraph content
// until the next "}}".
func (s *compileState) openItemBlock() {
	lvl := s.levels[len(s.levels)-1]
	s.frames = append(s.frames, envFrame{
		anchor:     lvl.body,
		inclusive:  false,
		mode:       modeList,
		levels:     append([]listLevel(nil), s.levels...),
		listReturn: s.listReturn,
	})
	if top, ok := s.stack.top(); !ok || top.kind != entryParagraph {
		s.openParagraph()
	}
	s.mode = modePara
	s.levels = nil
	s.listReturn = modeVoid
}
