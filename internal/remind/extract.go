package remind

import (
	"regexp"
	"strings"
	"unicode"
)

// listMarkup matches the bullet/indent prefix of a discussion line.
var listMarkup = regexp.MustCompile(`^[*: ]+`)

// Extractor turns a raw discussion line into a duration expression and a
// free-text note. It strips structural noise in a fixed order; steps that
// find nothing to strip are no-ops, so malformed lines degrade gracefully
// and duration parsing stays the real validity gate.
type Extractor struct {
	ping *regexp.Regexp
}

// NewExtractor compiles the mention pattern for the given bot name: a
// wiki-style user link or a template-style ping, preceded by arbitrary text.
func NewExtractor(botName string) *Extractor {
	b := regexp.QuoteMeta(botName)
	return &Extractor{
		ping: regexp.MustCompile(`.+ (\[\[(User:)?` + b + `(\|.*?)?\]\]|\{\{\w+\|` + b + `\}\})`),
	}
}

// Extract parses one line written by requester. The text between the ping
// and the signature splits on the first comma: duration expression before,
// note after. Without a comma the whole remainder is the expression.
func (e *Extractor) Extract(line, requester string) (durationExpr, note string) {
	line = listMarkup.ReplaceAllString(line, "")

	// Drop the salutation and the ping itself, keep what follows.
	if loc := e.ping.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}

	// Drop the requester's signature block and everything after it.
	line = signaturePattern(requester).ReplaceAllString(line, "")

	line = strings.TrimFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	durationExpr, note, _ = strings.Cut(line, ",")
	return strings.TrimSpace(durationExpr), strings.TrimSpace(note)
}

// signaturePattern matches a user link for the given name through the
// trailing UTC timestamp marker to the end of the line.
func signaturePattern(requester string) *regexp.Regexp {
	r := regexp.QuoteMeta(requester)
	return regexp.MustCompile(`\[\[User.*?:` + r + `.+\(UTC\).*$`)
}
