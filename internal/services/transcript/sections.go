package transcript

import (
	"regexp"
	"strings"

	"github.com/ternarybob/calldigest/internal/models"
)

// sectionRule pairs a section name with the pattern that opens it.
type sectionRule struct {
	name    string
	pattern *regexp.Regexp
}

// sectionRules is evaluated in order against the lowercase form of each line;
// the first matching rule wins. Kept as a data-driven table so the rules are
// testable independent of the scanning loop.
var sectionRules = []sectionRule{
	{models.SectionPreparedRemarks, regexp.MustCompile(`prepared remarks|opening remarks|prepared statement`)},
	{models.SectionQA, regexp.MustCompile(`question.?answer|q.?&.?a|questions`)},
	{models.SectionGuidance, regexp.MustCompile(`guidance|outlook|forward.?looking`)},
	{models.SectionFinancialMetrics, regexp.MustCompile(`financial|revenue|earnings|eps|margin`)},
	{models.SectionBusinessUpdate, regexp.MustCompile(`business update|operational|strategy`)},
}

// matchSectionRule returns the first rule name matching the line, or "".
func matchSectionRule(line string) string {
	lower := strings.ToLower(line)
	for _, rule := range sectionRules {
		if rule.pattern.MatchString(lower) {
			return rule.name
		}
	}
	return ""
}

// ExtractSections classifies normalized text into coarse topical sections.
// Accumulation starts under "general"; a matching line flushes the current
// accumulation under the active name and restarts accumulation under the
// matched name, including the triggering line. Every line is assigned to
// exactly one section. If a section name recurs, the later run overwrites
// the earlier value for that name (last-write-wins, intentionally).
func ExtractSections(text string) map[string]string {
	sections := make(map[string]string)

	current := models.SectionGeneral
	var accum []string

	for _, line := range strings.Split(text, "\n") {
		if name := matchSectionRule(line); name != "" {
			if len(accum) > 0 {
				sections[current] = strings.Join(accum, " ")
			}
			current = name
			accum = []string{line}
			continue
		}
		accum = append(accum, line)
	}

	if len(accum) > 0 {
		sections[current] = strings.Join(accum, " ")
	}

	return sections
}
