package scorepage

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-hub/internal/domain/match"
)

type column string

const (
	columnDate   column = "date"
	columnTime   column = "time"
	columnHome   column = "home"
	columnAway   column = "away"
	columnScore  column = "score"
	columnVenue  column = "venue"
	columnStatus column = "status"
	columnRound  column = "round"
)

var headerAliases = map[string]column{
	"date":      columnDate,
	"day":       columnDate,
	"time":      columnTime,
	"ko":        columnTime,
	"kick off":  columnTime,
	"kick-off":  columnTime,
	"kickoff":   columnTime,
	"home":      columnHome,
	"home team": columnHome,
	"team a":    columnHome,
	"away":      columnAway,
	"away team": columnAway,
	"visitors":  columnAway,
	"team b":    columnAway,
	"score":     columnScore,
	"result":    columnScore,
	"ft":        columnScore,
	"venue":     columnVenue,
	"stadium":   columnVenue,
	"ground":    columnVenue,
	"status":    columnStatus,
	"round":     columnRound,
	"matchday":  columnRound,
	"md":        columnRound,
	"week":      columnRound,
}

var (
	ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	clockPattern  = regexp.MustCompile(`^\d{1,2}[:.h]\d{2}$`)
	spaces        = regexp.MustCompile(`\s+`)

	dateLayouts = []string{
		"2006-01-02",
		"02/01/2006",
		"2/1/2006",
		"02.01.2006",
		"2 Jan 2006",
		"2 January 2006",
		"Mon 2 Jan 2006",
		"Monday 2 January 2006",
		"Mon, 2 Jan 2006",
		"Monday, 2 January 2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
)

// ParseResultsPage extracts matches from every table on the page that has a
// recognisable home/away header. Rows spanning the whole table that read as
// a date set the date for the rows below them.
func ParseResultsPage(raw []byte) ([]match.Match, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrap(err, "parse results page")
	}

	var (
		out    []match.Match
		tables int
	)
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		columns, headerRow := detectColumns(table)
		if columns == nil {
			return
		}
		tables++
		out = append(out, parseTable(table, headerRow, columns)...)
	})

	if tables == 0 {
		return nil, crerr.New("results page has no table with home and away columns")
	}
	return out, nil
}

func detectColumns(table *goquery.Selection) (map[int]column, *goquery.Selection) {
	var (
		columns   map[int]column
		headerRow *goquery.Selection
	)
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("th,td")
		mapped := make(map[int]column, cells.Length())
		cells.Each(func(i int, cell *goquery.Selection) {
			if col, ok := headerAliases[strings.ToLower(cellText(cell))]; ok {
				mapped[i] = col
			}
		})
		if hasColumn(mapped, columnHome) && hasColumn(mapped, columnAway) {
			columns = mapped
			headerRow = row
			return false
		}
		return true
	})
	return columns, headerRow
}

func parseTable(table *goquery.Selection, headerRow *goquery.Selection, columns map[int]column) []match.Match {
	var (
		out         []match.Match
		sectionDate time.Time
		pastHeader  bool
	)
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.IsSelection(headerRow) {
			pastHeader = true
			return
		}
		if !pastHeader {
			return
		}

		cells := row.Find("th,td")
		if cells.Length() == 1 {
			if day, ok := parseDate(cellText(cells.First())); ok {
				sectionDate = day
			}
			return
		}

		values := make(map[column]string, len(columns))
		cells.Each(func(i int, cell *goquery.Selection) {
			if col, ok := columns[i]; ok {
				values[col] = cellText(cell)
			}
		})
		if m, ok := buildMatch(values, sectionDate); ok {
			out = append(out, m)
		}
	})
	return out
}

func buildMatch(values map[column]string, sectionDate time.Time) (match.Match, bool) {
	home := values[columnHome]
	away := values[columnAway]
	if home == "" || away == "" {
		return match.Match{}, false
	}

	out := match.Match{
		TeamA: home,
		TeamB: away,
		Venue: values[columnVenue],
		Time:  normalizeClock(values[columnTime]),
		Date:  sectionDate,
	}
	if day, ok := parseDate(values[columnDate]); ok {
		out.Date = day
	}
	if round, err := strconv.Atoi(strings.TrimSpace(values[columnRound])); err == nil && round > 0 {
		out.Matchday = round
	}

	score := parseScore(values[columnScore])
	out.ScoreA = score.home
	out.ScoreB = score.away
	if score.clock != "" && out.Time == "" {
		out.Time = score.clock
	}

	switch {
	case values[columnStatus] != "":
		out.Status = match.NormalizeStatus(values[columnStatus])
	case score.status != "":
		out.Status = score.status
	case !out.ScoreA.IsEmpty() && !out.ScoreB.IsEmpty():
		out.Status = match.StatusFinished
	default:
		out.Status = match.StatusScheduled
	}
	return out, true
}

type scoreCell struct {
	home   match.Score
	away   match.Score
	status match.Status
	clock  string
}

// parseScore reads "2 - 1", "3 (w/o) - 0", "P-P" or a fixture marker such as
// "v". Annotations are kept on the score text for later interpretation.
func parseScore(raw string) scoreCell {
	text := strings.NewReplacer("–", "-", "—", "-", "−", "-").Replace(strings.TrimSpace(raw))
	lower := strings.ToLower(text)

	switch lower {
	case "", "v", "vs", "vs.", "-", "x":
		return scoreCell{}
	case "p-p", "p - p", "pp", "postponed", "pst":
		return scoreCell{status: match.StatusPostponed}
	case "a-a", "a - a", "abandoned", "abd":
		return scoreCell{status: match.StatusAbandoned}
	case "c-c", "cancelled", "canceled":
		return scoreCell{status: match.StatusCancelled}
	}
	if clockPattern.MatchString(lower) {
		return scoreCell{clock: normalizeClock(lower)}
	}

	var parts []string
	if strings.Contains(text, " - ") {
		parts = strings.SplitN(text, " - ", 2)
	} else if strings.Contains(text, ":") {
		parts = strings.SplitN(text, ":", 2)
	} else {
		parts = strings.SplitN(text, "-", 2)
	}
	if len(parts) != 2 {
		return scoreCell{}
	}
	home := strings.TrimSpace(parts[0])
	away := strings.TrimSpace(parts[1])
	if home == "" || away == "" {
		return scoreCell{}
	}
	return scoreCell{home: match.Score(home), away: match.Score(away)}
}

func parseDate(raw string) (time.Time, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return time.Time{}, false
	}
	text = ordinalSuffix.ReplaceAllString(text, "$1")
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}

func normalizeClock(raw string) string {
	text := strings.TrimSpace(raw)
	if !clockPattern.MatchString(text) {
		return text
	}
	text = strings.NewReplacer(".", ":", "h", ":").Replace(text)
	if len(text) == 4 {
		text = "0" + text
	}
	return text
}

func cellText(cell *goquery.Selection) string {
	return strings.TrimSpace(spaces.ReplaceAllString(cell.Text(), " "))
}

func hasColumn(columns map[int]column, want column) bool {
	for _, col := range columns {
		if col == want {
			return true
		}
	}
	return false
}
