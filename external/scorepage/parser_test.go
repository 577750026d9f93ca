package scorepage

import (
	"testing"
	"time"

	"github.com/riskibarqy/league-hub/internal/domain/match"
)

const resultsPage = `<html><body>
<h1>MTN Premier League</h1>
<table class="nav"><tr><td>Home</td><td>News</td></tr></table>
<table class="results">
  <thead>
    <tr><th>Date</th><th>Home Team</th><th>Score</th><th>Away Team</th><th>Venue</th></tr>
  </thead>
  <tbody>
    <tr><td colspan="5">Saturday 13th September 2025</td></tr>
    <tr><td></td><td>Royal Leopards</td><td>2 - 1</td><td>Mbabane Swallows</td><td>Mavuso</td></tr>
    <tr><td></td><td>Green  Mamba</td><td>3 (w/o) – 0</td><td>Manzini Wanderers</td><td></td></tr>
    <tr><td>20/09/2025</td><td>Young Buffaloes</td><td>P-P</td><td>Highlanders</td><td>Somhlolo</td></tr>
    <tr><td>27 Sep 2025</td><td>Mbabane Swallows</td><td>v</td><td>Green Mamba</td><td></td></tr>
    <tr><td>27 Sep 2025</td><td>Manzini Wanderers</td><td>15h00</td><td>Royal Leopards</td><td></td></tr>
    <tr><td>27 Sep 2025</td><td></td><td>v</td><td>Royal Leopards</td><td></td></tr>
  </tbody>
</table>
</body></html>`

func TestParseResultsPage(t *testing.T) {
	t.Parallel()

	items, err := ParseResultsPage([]byte(resultsPage))
	if err != nil {
		t.Fatalf("ParseResultsPage error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 matches, got %d: %+v", len(items), items)
	}

	sept13 := time.Date(2025, time.September, 13, 0, 0, 0, 0, time.UTC)
	first := items[0]
	if first.TeamA != "Royal Leopards" || first.ScoreA != "2" || first.ScoreB != "1" || first.Status != match.StatusFinished {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if !first.Date.Equal(sept13) || first.Venue != "Mavuso" {
		t.Fatalf("section date or venue not applied: %+v", first)
	}

	walkover := items[1]
	if walkover.TeamA != "Green Mamba" || walkover.ScoreA != "3 (w/o)" || walkover.ScoreB != "0" || !walkover.Date.Equal(sept13) {
		t.Fatalf("unexpected walkover row: %+v", walkover)
	}

	postponed := items[2]
	if postponed.Status != match.StatusPostponed || postponed.HasScore() {
		t.Fatalf("unexpected postponed row: %+v", postponed)
	}
	if !postponed.Date.Equal(time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected postponed date: %v", postponed.Date)
	}

	fixture := items[3]
	if fixture.Status != match.StatusScheduled || fixture.HasScore() {
		t.Fatalf("unexpected fixture row: %+v", fixture)
	}

	kickoff := items[4]
	if kickoff.Status != match.StatusScheduled || kickoff.Time != "15:00" {
		t.Fatalf("clock in score column should become kick-off time: %+v", kickoff)
	}
}

func TestParseResultsPage_NoResultsTable(t *testing.T) {
	t.Parallel()

	if _, err := ParseResultsPage([]byte(`<table><tr><td>Team</td><td>Pts</td></tr></table>`)); err == nil {
		t.Fatalf("expected error when no table has home and away columns")
	}
}

func TestParseScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw    string
		home   match.Score
		away   match.Score
		status match.Status
	}{
		{raw: "2 - 1", home: "2", away: "1"},
		{raw: "0-0", home: "0", away: "0"},
		{raw: "1:3", home: "1", away: "3"},
		{raw: "3 (w/o) - 0", home: "3 (w/o)", away: "0"},
		{raw: "vs"},
		{raw: ""},
		{raw: "P-P", status: match.StatusPostponed},
		{raw: "A-A", status: match.StatusAbandoned},
		{raw: "2 -"},
	}
	for _, tc := range cases {
		got := parseScore(tc.raw)
		if got.home != tc.home || got.away != tc.away || got.status != tc.status {
			t.Fatalf("parseScore(%q) = %+v", tc.raw, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2025-09-02", "02/09/2025", "2 Sep 2025", "Tuesday 2nd September 2025", "Sep 2, 2025"} {
		got, ok := parseDate(raw)
		if !ok || !got.Equal(want) {
			t.Fatalf("parseDate(%q) = %v, %v", raw, got, ok)
		}
	}
	if _, ok := parseDate("next week"); ok {
		t.Fatalf("expected parse failure")
	}
}
