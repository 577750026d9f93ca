package match

import (
	"strconv"
	"strings"
	"unicode"
)

// Score is a side's score as recorded. Empty means no score; a plain
// non-negative integer is numeric; anything else is an annotated score such
// as a walkover marker.
type Score string

func IntScore(goals int) Score {
	return Score(strconv.Itoa(goals))
}

func (s Score) IsEmpty() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Goals returns the numeric value for plain integer scores only.
func (s Score) Goals() (int, bool) {
	raw := strings.TrimSpace(string(s))
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsAnnotated reports a present score that is not a plain integer.
func (s Score) IsAnnotated() bool {
	if s.IsEmpty() {
		return false
	}
	_, ok := s.Goals()
	return !ok
}

var walkoverMarkers = map[string]struct{}{
	"w/o":      {},
	"wo":       {},
	"walkover": {},
	"awarded":  {},
	"awd":      {},
}

func (s Score) IsWalkover() bool {
	tokens := strings.FieldsFunc(strings.ToLower(string(s)), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '/'
	})
	for _, token := range tokens {
		if _, ok := walkoverMarkers[token]; ok {
			return true
		}
	}
	return false
}
