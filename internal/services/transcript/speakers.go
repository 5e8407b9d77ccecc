package transcript

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ternarybob/calldigest/internal/models"
)

// speakerLineRe matches a leading run of uppercase letters and spaces
// followed by a colon, capturing the label and the remainder of the line.
var speakerLineRe = regexp.MustCompile(`^([A-Z][A-Z ]+):\s*(.*)`)

var titleCaser = cases.Title(language.English)

// ExtractSpeakers splits normalized text into ordered speaker-attributed
// segments. A line matching an all-caps label starts a new segment; other
// lines extend the current one. Lines before the first label are dropped.
// Consecutive blocks under the same label are not merged: each label change
// produces a new segment even if the speaker recurs later.
func ExtractSpeakers(text string) []models.SpeakerSegment {
	var segments []models.SpeakerSegment

	currentSpeaker := ""
	var buffer []string

	flush := func() {
		if currentSpeaker == "" || buffer == nil {
			return
		}
		parts := make([]string, 0, len(buffer))
		for _, b := range buffer {
			if b != "" {
				parts = append(parts, b)
			}
		}
		segments = append(segments, models.SpeakerSegment{
			Speaker: currentSpeaker,
			Text:    strings.Join(parts, " "),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := speakerLineRe.FindStringSubmatch(line); m != nil {
			flush()
			currentSpeaker = normalizeSpeakerLabel(m[1])
			buffer = []string{m[2]}
			continue
		}

		if currentSpeaker != "" {
			buffer = append(buffer, line)
		}
		// No label seen yet: line is dropped.
	}

	flush()

	return segments
}

// normalizeSpeakerLabel converts an all-caps label to title case,
// e.g. "JOHN DOE" -> "John Doe".
func normalizeSpeakerLabel(label string) string {
	return titleCaser.String(strings.ToLower(strings.TrimSpace(label)))
}
