// Package period resolves natural-language period expressions such as
// "last week", "january 2025" or "2026-01-01 to 2026-01-31" into inclusive
// UTC date ranges.
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/anthropic-cost-report-go/internal/domain/entity"
	"github.com/diillson/anthropic-cost-report-go/internal/shared/types"
)

const dateLayout = "2006-01-02"

// resolveFunc turns today's UTC date into a concrete range. The parse step
// has already validated the expression's shape; only range-level problems
// (end before start) can fail here.
type resolveFunc func(today time.Time) (entity.DateRange, error)

// grammar is one supported period shape. Parse returns false when the
// expression doesn't belong to this grammar, letting the next one try.
type grammar struct {
	name  string
	parse func(expr string) (resolveFunc, bool)
}

// Grammars in priority order; the first match wins.
var grammars = []grammar{
	{"explicit-range", parseExplicitRange},
	{"single-date", parseSingleDate},
	{"day-relative", parseDayRelative},
	{"last-n-days", parseLastNDays},
	{"week-relative", parseWeekRelative},
	{"month-relative", parseMonthRelative},
	{"named-month", parseNamedMonth},
}

// Resolve maps a period expression and the current instant to an inclusive
// UTC date range. The instant is an explicit parameter so every relative
// branch is deterministic under test; its time-of-day is discarded.
func Resolve(expression string, now time.Time) (entity.DateRange, error) {
	expr := strings.ToLower(strings.TrimSpace(expression))
	today := entity.Midnight(now)

	for _, g := range grammars {
		if resolve, ok := g.parse(expr); ok {
			return resolve(today)
		}
	}
	return entity.DateRange{}, fmt.Errorf("%w: %q", types.ErrUnrecognizedPeriod, expression)
}

// parseExplicitRange handles "YYYY-MM-DD to YYYY-MM-DD".
func parseExplicitRange(expr string) (resolveFunc, bool) {
	first, second, found := strings.Cut(expr, " to ")
	if !found {
		return nil, false
	}
	start, err := time.Parse(dateLayout, strings.TrimSpace(first))
	if err != nil {
		return nil, false
	}
	end, err := time.Parse(dateLayout, strings.TrimSpace(second))
	if err != nil {
		return nil, false
	}
	return func(time.Time) (entity.DateRange, error) {
		if start.After(end) {
			return entity.DateRange{}, fmt.Errorf("%w: %s to %s",
				types.ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
		}
		return entity.DateRange{Start: start, End: end}, nil
	}, true
}

// parseSingleDate handles a lone "YYYY-MM-DD".
func parseSingleDate(expr string) (resolveFunc, bool) {
	date, err := time.Parse(dateLayout, expr)
	if err != nil {
		return nil, false
	}
	return func(time.Time) (entity.DateRange, error) {
		return entity.DateRange{Start: date, End: date}, nil
	}, true
}

// parseDayRelative handles "today" and "yesterday".
func parseDayRelative(expr string) (resolveFunc, bool) {
	var offset int
	switch expr {
	case "today":
		offset = 0
	case "yesterday":
		offset = -1
	default:
		return nil, false
	}
	return func(today time.Time) (entity.DateRange, error) {
		day := today.AddDate(0, 0, offset)
		return entity.DateRange{Start: day, End: day}, nil
	}, true
}

var lastNDaysRe = regexp.MustCompile(`^last (\d+) days?$`)

// parseLastNDays handles "last N days": an inclusive window of N calendar
// days ending today.
func parseLastNDays(expr string) (resolveFunc, bool) {
	m := lastNDaysRe.FindStringSubmatch(expr)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return nil, false
	}
	return func(today time.Time) (entity.DateRange, error) {
		return entity.DateRange{Start: today.AddDate(0, 0, -(n - 1)), End: today}, nil
	}, true
}

// parseWeekRelative handles "this week" and "last week". Weeks run Monday
// through Sunday (ISO convention); "this week" is the partial week up to
// today, never forward-looking.
func parseWeekRelative(expr string) (resolveFunc, bool) {
	switch expr {
	case "this week":
		return func(today time.Time) (entity.DateRange, error) {
			return entity.DateRange{Start: mondayOf(today), End: today}, nil
		}, true
	case "last week", "past week":
		return func(today time.Time) (entity.DateRange, error) {
			monday := mondayOf(today)
			return entity.DateRange{Start: monday.AddDate(0, 0, -7), End: monday.AddDate(0, 0, -1)}, nil
		}, true
	}
	return nil, false
}

// mondayOf returns the most recent Monday on or before the given date.
func mondayOf(today time.Time) time.Time {
	// time.Weekday counts from Sunday; shift so Monday is 0.
	sinceMonday := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -sinceMonday)
}

// parseMonthRelative handles "this month" and "last month". Previous-month
// arithmetic goes through the first of the current month, so year rollover
// and 28-31 day lengths come out of the calendar rather than a fixed span.
func parseMonthRelative(expr string) (resolveFunc, bool) {
	switch expr {
	case "this month":
		return func(today time.Time) (entity.DateRange, error) {
			first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			return entity.DateRange{Start: first, End: today}, nil
		}, true
	case "last month", "past month":
		return func(today time.Time) (entity.DateRange, error) {
			first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			return entity.DateRange{Start: first.AddDate(0, -1, 0), End: first.AddDate(0, 0, -1)}, nil
		}, true
	}
	return nil, false
}

var monthNames = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,
}

// parseNamedMonth handles a month name or three-letter abbreviation with an
// optional 4-digit year, e.g. "january" or "feb 2025". With the year
// omitted the month is taken from the current year unless it has not yet
// started, in which case it falls back to the previous year ("december"
// asked in January means last December, not eleven months ahead).
func parseNamedMonth(expr string) (resolveFunc, bool) {
	parts := strings.Fields(expr)
	if len(parts) == 0 || len(parts) > 2 {
		return nil, false
	}
	month, ok := monthNames[parts[0]]
	if !ok {
		return nil, false
	}

	year := 0
	if len(parts) == 2 {
		y, err := strconv.Atoi(parts[1])
		if err != nil || len(parts[1]) != 4 {
			return nil, false
		}
		year = y
	}

	return func(today time.Time) (entity.DateRange, error) {
		y := year
		if y == 0 {
			y = today.Year()
			if time.Date(y, month, 1, 0, 0, 0, 0, time.UTC).After(today) {
				y--
			}
		}
		first := time.Date(y, month, 1, 0, 0, 0, 0, time.UTC)
		return entity.DateRange{Start: first, End: first.AddDate(0, 1, -1)}, nil
	}, true
}
