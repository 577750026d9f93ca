package resolver

import (
	"strings"
	"unicode/utf8"
)

// Tier is one matching strategy applied to normalized keys.
type Tier interface {
	Name() string
	Match(rawKey, candidateKey string) bool
}

// Exact matches identical keys.
type Exact struct{}

func (Exact) Name() string { return "exact" }

func (Exact) Match(rawKey, candidateKey string) bool {
	return rawKey == candidateKey
}

// Containment matches when either key contains the other and the shorter
// key has at least MinLength runes.
type Containment struct {
	MinLength int
}

func (Containment) Name() string { return "containment" }

func (c Containment) Match(rawKey, candidateKey string) bool {
	shorter, longer := rawKey, candidateKey
	if utf8.RuneCountInString(shorter) > utf8.RuneCountInString(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) < c.MinLength {
		return false
	}
	return strings.Contains(longer, shorter)
}

// EditDistance matches keys within MaxDistance Levenshtein edits. It is not
// part of the default chain; callers opt in with WithTiers.
type EditDistance struct {
	MaxDistance int
}

func (EditDistance) Name() string { return "edit_distance" }

func (e EditDistance) Match(rawKey, candidateKey string) bool {
	if e.MaxDistance <= 0 {
		return rawKey == candidateKey
	}
	return levenshtein([]rune(rawKey), []rune(candidateKey), e.MaxDistance) <= e.MaxDistance
}

// levenshtein returns the edit distance, or limit+1 once the distance is known
// to exceed limit.
func levenshtein(a, b []rune, limit int) int {
	if diff := len(a) - len(b); diff > limit || -diff > limit {
		return limit + 1
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			rowMin = min(rowMin, curr[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// DefaultTiers is the matching chain used by Resolve and NewIndex.
func DefaultTiers() []Tier {
	return []Tier{Exact{}, Containment{MinLength: 3}}
}
