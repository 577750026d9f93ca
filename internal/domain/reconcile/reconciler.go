// Package reconcile turns externally fetched candidate matches into a
// reviewable batch and merges the selected items into a competition.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/league-hub/internal/domain/match"
	"github.com/riskibarqy/league-hub/internal/domain/resolver"
)

type pairKey struct {
	home string
	away string
}

type knownMatch struct {
	id    string
	match match.Match
}

// Reconcile classifies every candidate in order. Teams are bound through the
// resolver against officialTeamNames; existing records are bound the same way
// so spelling differences in the stored log do not hide duplicates.
func Reconcile(candidates []match.Match, existing Existing, officialTeamNames []string) []ReviewedMatch {
	index := resolver.NewIndex(resolver.Names(officialTeamNames))
	resolve := func(raw string) (string, bool) {
		name, ok := index.Lookup(raw)
		return string(name), ok
	}

	known := make(map[pairKey][]knownMatch)
	for _, m := range append(append([]match.Match(nil), existing.Fixtures...), existing.Results...) {
		home, okHome := resolve(m.TeamA)
		away, okAway := resolve(m.TeamB)
		if !okHome || !okAway {
			continue
		}
		key := pairKey{home: home, away: away}
		known[key] = append(known[key], knownMatch{id: m.ID, match: m})
	}

	batch := make(map[pairKey][]int)
	out := make([]ReviewedMatch, 0, len(candidates))
	for i, candidate := range candidates {
		reviewed := ReviewedMatch{Candidate: candidate.Clone()}
		reviewed.Warnings = warnings(candidate)

		home, okHome := resolve(candidate.TeamA)
		away, okAway := resolve(candidate.TeamB)
		if okHome {
			reviewed.TeamA = home
		}
		if okAway {
			reviewed.TeamB = away
		}

		switch {
		case !okHome || !okAway:
			reviewed.Classification = ClassificationError
			reviewed.Reason = unmappedReason(candidate, okHome, okAway)
		case home == away:
			reviewed.Classification = ClassificationError
			reviewed.Reason = fmt.Sprintf("both sides resolve to %s", home)
		default:
			key := pairKey{home: home, away: away}
			if dup, ok := findSameDay(known[key], candidate); ok {
				reviewed.Classification = ClassificationDuplicate
				reviewed.DuplicateOf = dup.id
				reviewed.Reason = fmt.Sprintf("matches existing record %s", dup.id)
			} else if prev, ok := findInBatch(batch[key], out, candidate); ok {
				reviewed.Classification = ClassificationDuplicate
				reviewed.Reason = fmt.Sprintf("repeats candidate %d in this import", prev)
			} else {
				reviewed.Classification = ClassificationNew
				reviewed.Selected = true
				batch[key] = append(batch[key], i)
			}
		}

		out = append(out, reviewed)
	}

	return out
}

func findSameDay(items []knownMatch, candidate match.Match) (knownMatch, bool) {
	for _, item := range items {
		if match.SameDay(item.match.Date, candidate.Date) {
			return item, true
		}
	}
	return knownMatch{}, false
}

func findInBatch(indexes []int, reviewed []ReviewedMatch, candidate match.Match) (int, bool) {
	for _, idx := range indexes {
		if match.SameDay(reviewed[idx].Candidate.Date, candidate.Date) {
			return idx, true
		}
	}
	return -1, false
}

func unmappedReason(candidate match.Match, okHome, okAway bool) string {
	var missing []string
	if !okHome {
		missing = append(missing, fmt.Sprintf("%q", candidate.TeamA))
	}
	if !okAway {
		missing = append(missing, fmt.Sprintf("%q", candidate.TeamB))
	}
	if len(missing) == 1 {
		return "unmapped team " + missing[0]
	}
	return "unmapped teams " + strings.Join(missing, " and ")
}

func warnings(candidate match.Match) []string {
	var out []string
	if candidate.ScoreA.IsAnnotated() || candidate.ScoreB.IsAnnotated() {
		out = append(out, warnAnnotatedScore)
	}
	if candidate.Status.IsFinished() && !candidate.HasScore() {
		out = append(out, "finished without a score: stored as a fixture")
	}
	if candidate.Date.IsZero() {
		out = append(out, "missing date")
	}
	return out
}
