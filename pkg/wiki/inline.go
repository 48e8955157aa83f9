// inline.go implements the inline substitution engine.
package wiki

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	filterPattern = regexp.MustCompile(`\*\*([^\s:*]+):?\s+([^*]*)\*\*`)
	imagePattern  = regexp.MustCompile(`<<([^>]*)>>`)

	simpleURLPattern  = regexp.MustCompile(`\[\[([^\s]*?)\]\]`)
	simpleLinkPattern = regexp.MustCompile(`\(\(([^\s]*?)\)\)`)

	urlPattern  = regexp.MustCompile(`\[\[([^\s]*)\s+([^\]]*)\]\]`)
	xrefPattern = regexp.MustCompile(`&&([^\s]*)\s+([^&]*)&&`)
	linkPattern = regexp.MustCompile(`\(\(([^\s]*)\s+([^\)]*)\)\)`)

	placeholderRef = regexp.MustCompile("\x1a([0-9]+)\x1b")
)

// styleRule pairs an inline style with its delimiter pattern.
type styleRule struct {
	kind    InlineKind
	pattern *regexp.Regexp
}

// styleRules are applied in this order.
var styleRules = []styleRule{
	{InlineEm, regexp.MustCompile(`\\\\([^\\]*)\\\\`)},
	{InlineStrong, regexp.MustCompile(`!!([^!]*)!!`)},
	{InlineQuote, regexp.MustCompile(`''([^']*)''`)},
	{InlineCode, regexp.MustCompile(`\$\$([^$]*)\$\$`)},
	{InlineQuotedCode, regexp.MustCompile(`%%([^%]*)%%`)},
	{InlineAnchor, regexp.MustCompile(`@@([^@]*)@@`)},
}

// blankEscape forces a visually blank line without ending a block.
const blankEscape = `\blank`

// linkTextMark stands in for %(linktext)s while a dict template is split.
const linkTextMark = "\x00linktext\x00"

// shield holds markup that has already been emitted for the current run.
// Later passes only see an opaque reference, so inserted tags are never
// matched again.
type shield struct {
	parts []string
}

func (s *shield) protect(markup string) string {
	if markup == "" {
		return ""
	}
	s.parts = append(s.parts, markup)
	return "\x1a" + strconv.Itoa(len(s.parts)-1) + "\x1b"
}

func (s *shield) restore(text string) string {
	if len(s.parts) == 0 {
		return text
	}
	return placeholderRef.ReplaceAllStringFunc(text, func(m string) string {
		i, err := strconv.Atoi(m[1 : len(m)-1])
		if err != nil || i >= len(s.parts) {
			return ""
		}
		return s.parts[i]
	})
}

// Inliner applies the inline rules of one format to a text run.
type Inliner struct {
	format *Format
	// dropped is called for every filter directive removed because its
	// name is not accepted by the format.
	dropped func(name string)
}

// NewInliner creates an Inliner for a format.
func NewInliner(f *Format) *Inliner {
	return &Inliner{format: f}
}

// Replace runs every inline rule over text: filters, images, simple links,
// full links, paired styles and finally the \blank escape.
func (in *Inliner) Replace(text string) string {
	if text == "" {
		return text
	}
	// Shield markers cannot come from the source.
	text = strings.NewReplacer("\x1a", "", "\x1b", "").Replace(text)

	sh := &shield{}
	text = in.ApplyFilters(text)
	text = in.replaceImages(text, sh)

	text = in.replaceSimpleLinks(text, simpleURLPattern, DictULink, sh)
	text = in.replaceSimpleLinks(text, simpleLinkPattern, DictLink, sh)

	text = in.replaceLinks(text, urlPattern, DictULink, sh)
	text = in.replaceLinks(text, xrefPattern, DictXRef, sh)
	text = in.replaceLinks(text, linkPattern, DictLink, sh)

	for _, rule := range styleRules {
		text = in.replaceStyle(text, rule, sh)
	}

	text = strings.ReplaceAll(text, blankEscape, "")
	return sh.restore(text)
}

// ApplyFilters expands filter directives accepted by the format and deletes
// all others together with their payload.
func (in *Inliner) ApplyFilters(text string) string {
	if !strings.Contains(text, "**") {
		return text
	}
	return filterPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := filterPattern.FindStringSubmatch(m)
		name, content := sub[1], sub[2]
		tmpl, ok := in.format.Filters[name]
		if !ok {
			if in.dropped != nil {
				in.dropped(name)
			}
			return ""
		}
		return expandTemplate(tmpl, map[string]string{"content": content})
	})
}

// splitRef splits "ref||attrs" into the reference and its attribute text.
// Without attributes an alt attribute naming the reference is synthesised.
func splitRef(ref string) (string, string) {
	if pos := strings.Index(ref, "||"); pos > 0 {
		return ref[:pos], " " + ref[pos+2:]
	}
	return ref, ` alt="` + ref + `"`
}

func (in *Inliner) replaceImages(text string, sh *shield) string {
	return imagePattern.ReplaceAllStringFunc(text, func(m string) string {
		fref, atts := splitRef(imagePattern.FindStringSubmatch(m)[1])
		return sh.protect(expandTemplate(in.format.Dict[DictInlineMediaObject], map[string]string{
			"fref": fref,
			"atts": atts,
		}))
	})
}

func (in *Inliner) replaceSimpleLinks(text string, pattern *regexp.Regexp, key string, sh *shield) string {
	return pattern.ReplaceAllStringFunc(text, func(m string) string {
		ref := pattern.FindStringSubmatch(m)[1]
		return sh.protect(expandTemplate(in.format.Dict[key], map[string]string{
			"url":      ref,
			"atts":     "",
			"linktext": ref,
		}))
	})
}

// replaceLinks handles the "target text" forms. The link text stays in the
// run so the style rules still apply to it; only the surrounding markup is
// shielded.
func (in *Inliner) replaceLinks(text string, pattern *regexp.Regexp, key string, sh *shield) string {
	return pattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := pattern.FindStringSubmatch(m)
		url, linkText, atts := sub[1], sub[2], ""
		if pos := strings.Index(linkText, "||"); pos > 0 {
			atts = " " + linkText[pos+2:]
			linkText = linkText[:pos]
		}
		full := expandTemplate(in.format.Dict[key], map[string]string{
			"url":      url,
			"atts":     atts,
			"linktext": linkTextMark,
		})
		before, after, found := strings.Cut(full, linkTextMark)
		if !found {
			return sh.protect(full)
		}
		return sh.protect(before) + linkText + sh.protect(after)
	})
}

func (in *Inliner) replaceStyle(text string, rule styleRule, sh *shield) string {
	tag := in.format.Inline[rule.kind]
	return rule.pattern.ReplaceAllStringFunc(text, func(m string) string {
		inner := rule.pattern.FindStringSubmatch(m)[1]
		return sh.protect(tag.Open) + inner + sh.protect(tag.Close)
	})
}
