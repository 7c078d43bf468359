// AngelaMos | 2026
// stats.go

package ledger

import (
	"math"
	"slices"
	"strings"
	"time"
)

type Dashboard struct {
	Total    int     `json:"total"`
	Paid     int     `json:"paid"`
	Unpaid   int     `json:"unpaid"`
	DueSoon  int     `json:"dueSoon"`
	Upcoming []Entry `json:"upcoming"`
}

type CustomerStats struct {
	TotalEntries  int     `json:"totalEntries"`
	TotalSpent    float64 `json:"totalSpent"`
	UnpaidEntries int     `json:"unpaidEntries"`
}

// DueWindow is an inclusive range of calendar days.
type DueWindow struct {
	From time.Time
	To   time.Time
}

// NewDueWindow covers today and the following days, with today taken as
// the calendar date of now in loc.
func NewDueWindow(now time.Time, days int, loc *time.Location) DueWindow {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return DueWindow{
		From: from,
		To:   from.AddDate(0, 0, days),
	}
}

// Contains compares calendar dates only. Entries with an unreadable due
// date are never due.
func (w DueWindow) Contains(e Entry) bool {
	due, err := time.ParseInLocation(DateLayout, e.DueDate, w.From.Location())
	if err != nil {
		return false
	}
	return !due.Before(w.From) && !due.After(w.To)
}

func ComputeDashboard(entries []Entry, window DueWindow) Dashboard {
	d := Dashboard{
		Total:    len(entries),
		Upcoming: []Entry{},
	}

	for _, e := range entries {
		if e.IsPaid {
			d.Paid++
		} else {
			d.Unpaid++
		}
		if window.Contains(e) {
			d.Upcoming = append(d.Upcoming, e)
		}
	}

	// DueDate is YYYY-MM-DD so string order is date order.
	slices.SortStableFunc(d.Upcoming, func(a, b Entry) int {
		if c := strings.Compare(a.DueDate, b.DueDate); c != 0 {
			return c
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	d.DueSoon = len(d.Upcoming)

	return d
}

// EntriesFor matches on the exact stored customer name. No case or
// whitespace folding is applied.
func EntriesFor(entries []Entry, customerName string) []Entry {
	matched := []Entry{}
	for _, e := range entries {
		if e.CustomerName == customerName {
			matched = append(matched, e)
		}
	}
	return matched
}

func ComputeCustomerStats(entries []Entry, customerName string) CustomerStats {
	var stats CustomerStats
	for _, e := range EntriesFor(entries, customerName) {
		stats.TotalEntries++
		stats.TotalSpent += e.Price
		if !e.IsPaid {
			stats.UnpaidEntries++
		}
	}
	stats.TotalSpent = roundMoney(stats.TotalSpent)
	return stats
}

// FilterEntries applies the paid status filter and a case-insensitive
// customer name search.
func FilterEntries(entries []Entry, status, search string) []Entry {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := []Entry{}
	for _, e := range entries {
		switch status {
		case StatusPaid:
			if !e.IsPaid {
				continue
			}
		case StatusUnpaid:
			if e.IsPaid {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(e.CustomerName), search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
