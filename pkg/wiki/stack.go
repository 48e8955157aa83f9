// stack.go implements the open-block stack shared by sections, environments,
// paragraphs and list levels.
package wiki

import "strings"

// entryKind tags an open-block stack entry.
type entryKind int

const (
	entrySection entryKind = iota
	entryEnvironment
	entryParagraph
	entryList
	entryItem
)

func (k entryKind) String() string {
	switch k {
	case entrySection:
		return "section"
	case entryEnvironment:
		return "environment"
	case entryParagraph:
		return "paragraph"
	case entryList:
		return "list"
	case entryItem:
		return "item"
	}
	return "unknown"
}

// entry is one open block. The close markup is captured at open time so
// closing never has to consult the tag table again.
type entry struct {
	kind   entryKind
	name   string
	tag    BlockTag
	serial int
}

func (e entry) String() string {
	if e.name == "" {
		return e.kind.String()
	}
	return e.kind.String() + " " + e.name
}

// blockStack writes open and close markup to out as blocks are pushed and popped.
// Every push emits exactly one open template and every pop exactly one close
// template.
type blockStack struct {
	out     *strings.Builder
	entries []entry
	serial  int
	warn    func(format string, args ...interface{})

	opened int
	closed int
}

func newBlockStack(out *strings.Builder, warn func(string, ...interface{})) *blockStack {
	return &blockStack{out: out, warn: warn}
}

// push opens a block, expanding placeholders in its open template, and
// returns the entry's serial for later targeted closing.
func (s *blockStack) push(kind entryKind, name string, tag BlockTag, args map[string]string) int {
	if args != nil {
		s.out.WriteString(expandTemplate(tag.Open, args))
	} else {
		s.out.WriteString(tag.Open)
	}
	s.serial++
	s.entries = append(s.entries, entry{kind: kind, name: name, tag: tag, serial: s.serial})
	s.opened++
	return s.serial
}

func (s *blockStack) top() (entry, bool) {
	if len(s.entries) == 0 {
		return entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *blockStack) depth() int {
	return len(s.entries)
}

// pop closes the innermost block.
func (s *blockStack) pop() (entry, bool) {
	e, ok := s.top()
	if !ok {
		return e, false
	}
	s.entries = s.entries[:len(s.entries)-1]
	s.out.WriteString(e.tag.Close)
	if e.tag.Newline {
		s.out.WriteString("\n")
	}
	s.closed++
	return e, true
}

// closeExpected closes the innermost block, warning when it is not the one
// the caller expected. The actual top is closed regardless so output stays
// balanced.
func (s *blockStack) closeExpected(kind entryKind, name string) {
	e, ok := s.top()
	if !ok {
		s.warn("unbalanced tag stack: expected %q but nothing is open", entry{kind: kind, name: name}.String())
		return
	}
	if e.kind != kind || e.name != name {
		s.warn("unbalanced tag stack: expected %q but found %q", entry{kind: kind, name: name}.String(), e.String())
	}
	s.pop()
}

// contains reports whether the entry with the given serial is still open.
func (s *blockStack) contains(serial int) bool {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].serial == serial {
			return true
		}
	}
	return false
}

// closeThrough closes every block opened after the given entry and, when
// inclusive, the entry itself. Returns false if the entry is no longer open.
func (s *blockStack) closeThrough(serial int, inclusive bool) bool {
	if !s.contains(serial) {
		return false
	}
	for {
		e, _ := s.top()
		if e.serial == serial {
			if inclusive {
				s.pop()
			}
			return true
		}
		s.pop()
	}
}

// closeSections pops blocks until n sections have been closed or the stack
// is empty. Blocks nested inside those sections are closed along the way.
func (s *blockStack) closeSections(n int) {
	for n > 0 {
		e, ok := s.pop()
		if !ok {
			return
		}
		if e.kind == entrySection {
			n--
		}
	}
}

// drain closes everything that is still open.
func (s *blockStack) drain() {
	for s.depth() > 0 {
		s.pop()
	}
}
