package urlutil

import (
	"regexp"
	"strconv"
	"strings"
)

// urlPattern matches scheme://hostname:port occurrences. Path and query are
// deliberately not captured: only the port digits are ever replaced, so
// everything after the port survives byte-for-byte.
var urlPattern = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*)://([A-Za-z0-9._-]+):([0-9]+)`)

// Match is one URL occurrence found in scanned text.
type Match struct {
	// Start and End delimit the scheme://hostname:port span in the text.
	Start int
	End   int

	Scheme   string
	Hostname string
	Port     string

	portStart int
	portEnd   int
}

// FindURLs returns all scheme://hostname:port occurrences in text, in order.
func FindURLs(text string) []Match {
	idx := urlPattern.FindAllStringSubmatchIndex(text, -1)
	if idx == nil {
		return nil
	}

	matches := make([]Match, 0, len(idx))
	for _, m := range idx {
		matches = append(matches, Match{
			Start:     m[0],
			End:       m[1],
			Scheme:    text[m[2]:m[3]],
			Hostname:  text[m[4]:m[5]],
			Port:      text[m[6]:m[7]],
			portStart: m[6],
			portEnd:   m[7],
		})
	}
	return matches
}

// RewritePorts replaces the port of every URL in text whose hostname is
// recognized by portFor. URLs with unrecognized hostnames are left untouched.
// Only the port digits change; all surrounding text is preserved exactly.
func RewritePorts(text string, portFor func(hostname string) (int, bool)) string {
	matches := FindURLs(text)
	if len(matches) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for _, m := range matches {
		port, ok := portFor(m.Hostname)
		if !ok {
			continue
		}
		sb.WriteString(text[last:m.portStart])
		sb.WriteString(strconv.Itoa(port))
		last = m.portEnd
	}
	sb.WriteString(text[last:])
	return sb.String()
}
