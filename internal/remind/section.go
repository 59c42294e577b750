package remind

import (
	"regexp"
	"strings"
)

// SectionIndex is an ordered view of a page's headed sections, built once
// per source document and queried to attribute lines back to sections.
type SectionIndex struct {
	sections []section
}

type section struct {
	title string
	body  string
}

var headingLine = regexp.MustCompile(`^={1,6}\s*(.+?)\s*={1,6}\s*$`)

// IndexSections splits wikitext into (title, body) pairs in document order.
// The un-headed preamble before the first heading is discarded; heading
// lines themselves are excluded from bodies.
func IndexSections(text string) SectionIndex {
	var idx SectionIndex
	var title string
	var body []string
	inSection := false

	flush := func() {
		if !inSection {
			return
		}
		idx.sections = append(idx.sections, section{
			title: title,
			body:  strings.TrimSpace(strings.Join(body, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headingLine.FindStringSubmatch(line); m != nil {
			flush()
			title = m[1]
			body = body[:0]
			inSection = true
			continue
		}
		if inSection {
			body = append(body, line)
		}
	}
	flush()
	return idx
}

// Lookup returns the title of the first section, in document order, whose
// body contains line verbatim. Ties resolve to the first match.
func (idx SectionIndex) Lookup(line string) (string, bool) {
	for _, s := range idx.sections {
		if strings.Contains(s.body, line) {
			return s.title, true
		}
	}
	return "", false
}
