package transcript

import (
	"regexp"
	"strings"
)

var (
	bracketRe    = regexp.MustCompile(`\[[^\]]*\]`) // timestamps, e.g. [00:01:23]
	parenRe      = regexp.MustCompile(`\([^)]*\)`)  // speaker annotations, e.g. (CEO)
	whitespaceRe = regexp.MustCompile(`[ \t]+`)
	speakerLblRe = regexp.MustCompile(`([A-Z][A-Z ]*[A-Z])[ \t]*:`)
	// pageRe tolerates whitespace runs: it is applied before the collapse,
	// so "Page 1 of  2" must already match on the first pass.
	pageRe       = regexp.MustCompile(`Page\s+\d+\s+of\s+\d+`)
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
)

// Normalize cleans raw transcript text: bracketed and parenthesized spans are
// deleted, runs of horizontal whitespace collapse to a single space, all-caps
// speaker labels lose the whitespace before their colon, page artifacts and
// pure-digit lines are dropped, and every line is trimmed. Line structure is
// preserved so speaker segmentation and section extraction operate on lines.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = bracketRe.ReplaceAllString(line, "")
		line = parenRe.ReplaceAllString(line, "")
		line = pageRe.ReplaceAllString(line, "")
		line = whitespaceRe.ReplaceAllString(line, " ")
		line = speakerLblRe.ReplaceAllString(line, "$1:")
		line = strings.TrimSpace(line)

		if line == "" || digitsOnlyRe.MatchString(line) {
			continue
		}

		out = append(out, line)
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
