package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// affixes are organisational tokens dropped from either end of a key.
// Longer forms come first so "football club" wins over a bare "club"-like match.
var affixes = []string{"football club", "association", "f c", "fc"}

// Normalize folds a raw team or player name into a matching key.
// The key is for comparison only and must never be shown to users.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	s = stripDiacritics(s)
	s = strings.Join(strings.Fields(keepWordRunes(s)), " ")

	return stripAffixes(s)
}

// Equal reports whether a and b normalize to the same non-empty key.
func Equal(a, b string) bool {
	ka := Normalize(a)
	return ka != "" && ka == Normalize(b)
}

func stripDiacritics(s string) string {
	// A transformer chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func keepWordRunes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r), unicode.Is(unicode.Pd, r), r == '/', r == '_':
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func stripAffixes(s string) string {
	for {
		changed := false
		for _, affix := range affixes {
			if s == affix {
				return s
			}
			if strings.HasSuffix(s, " "+affix) {
				s = strings.TrimSuffix(s, " "+affix)
				changed = true
			}
			if strings.HasPrefix(s, affix+" ") {
				s = strings.TrimPrefix(s, affix+" ")
				changed = true
			}
		}
		if !changed {
			return s
		}
	}
}
