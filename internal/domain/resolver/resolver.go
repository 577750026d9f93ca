// Package resolver binds free-text names to canonical entities.
//
// Matching runs over normalized keys in tier order and the first tier with
// any match wins. No match is a normal outcome: callers surface it for review.
package resolver

import (
	"sort"
	"unicode/utf8"

	"github.com/riskibarqy/league-hub/internal/domain/names"
)

// Entity is anything with a display name that can be matched.
type Entity interface {
	DisplayName() string
}

// Name adapts a plain string to Entity.
type Name string

func (n Name) DisplayName() string { return string(n) }

// Names converts strings into Name entities.
func Names(values []string) []Name {
	out := make([]Name, 0, len(values))
	for _, v := range values {
		out = append(out, Name(v))
	}
	return out
}

type Option func(*options)

type options struct {
	tiers []Tier
}

// WithTiers replaces the default matching chain.
func WithTiers(tiers ...Tier) Option {
	return func(o *options) {
		o.tiers = append([]Tier(nil), tiers...)
	}
}

type candidate[E Entity] struct {
	entity  E
	key     string
	display string
	order   int
}

// Index holds precomputed keys for one candidate set.
type Index[E Entity] struct {
	candidates []candidate[E]
	tiers      []Tier
}

// NewIndex normalizes every candidate once. Candidates whose key is empty can
// never be matched and are left out.
func NewIndex[E Entity](entities []E, opts ...Option) *Index[E] {
	o := options{tiers: DefaultTiers()}
	for _, opt := range opts {
		opt(&o)
	}

	items := make([]candidate[E], 0, len(entities))
	for i, e := range entities {
		display := e.DisplayName()
		key := names.Normalize(display)
		if key == "" {
			continue
		}
		items = append(items, candidate[E]{entity: e, key: key, display: display, order: i})
	}

	return &Index[E]{candidates: items, tiers: o.tiers}
}

// Len returns the number of matchable candidates.
func (ix *Index[E]) Len() int {
	return len(ix.candidates)
}

// Lookup resolves raw against the index.
func (ix *Index[E]) Lookup(raw string) (E, bool) {
	e, _, ok := ix.LookupWithTier(raw)
	return e, ok
}

// LookupWithTier resolves raw and also reports which tier produced the match.
func (ix *Index[E]) LookupWithTier(raw string) (E, string, bool) {
	c, tier, ok := ix.lookup(raw)
	if !ok {
		var zero E
		return zero, "", false
	}
	return c.entity, tier, true
}

// LookupPosition resolves raw to the position of the matched entity in the
// slice given to NewIndex. Callers that keep parallel per-entity state key it
// on this position, since entities need not carry unique identifiers.
func (ix *Index[E]) LookupPosition(raw string) (int, bool) {
	c, _, ok := ix.lookup(raw)
	if !ok {
		return -1, false
	}
	return c.order, true
}

func (ix *Index[E]) lookup(raw string) (candidate[E], string, bool) {
	key := names.Normalize(raw)
	if key == "" {
		return candidate[E]{}, "", false
	}

	for _, tier := range ix.tiers {
		var hits []candidate[E]
		for _, c := range ix.candidates {
			if tier.Match(key, c.key) {
				hits = append(hits, c)
			}
		}
		if len(hits) == 0 {
			continue
		}
		sort.SliceStable(hits, func(i, j int) bool {
			return lessCandidate(hits[i], hits[j])
		})
		return hits[0], tier.Name(), true
	}

	return candidate[E]{}, "", false
}

func lessCandidate[E Entity](a, b candidate[E]) bool {
	la, lb := utf8.RuneCountInString(a.display), utf8.RuneCountInString(b.display)
	if la != lb {
		return la < lb
	}
	if a.display != b.display {
		return a.display < b.display
	}
	return a.order < b.order
}

// Resolve matches raw against candidates with the default tiers.
func Resolve[E Entity](raw string, candidates []E) (E, bool) {
	return NewIndex(candidates).Lookup(raw)
}
