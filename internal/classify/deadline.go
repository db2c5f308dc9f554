package classify

import (
	"regexp"
	"strings"
	"time"
)

// Deadlines arrive either as ISO-8601 strings or as loosely formatted human
// strings like "7th January 2026, 5:18pm". Parsing never fails upward: an
// unparsable deadline means "no deadline".

var ordinalSuffix = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)\b`)

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02Z07:00",
}

var humanLayouts = []string{
	"2 January 2006, 3:04pm",
	"2 January 2006, 3:04PM",
	"2 January 2006 3:04pm",
	"2 January 2006",
	"January 2, 2006, 3:04pm",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
}

// ParseDeadline parses a backend deadline string. The second return is false
// when the string is absent or unparsable.
func ParseDeadline(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	// 'T' or 'Z' usually means an ISO timestamp. Month names can contain
	// a capital T too ("Tuesday, ..."), so a failed ISO parse still falls
	// through to the human formats.
	if strings.ContainsAny(s, "TZ") {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}

	// "7th January 2026" -> "7 January 2026"
	h := ordinalSuffix.ReplaceAllString(s, "$1")
	for _, layout := range humanLayouts {
		if t, err := time.Parse(layout, h); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
