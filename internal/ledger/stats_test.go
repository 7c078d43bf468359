// AngelaMos | 2026
// stats_test.go

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopZone = time.FixedZone("shop", -5*60*60)

func dueIn(now time.Time, days int) string {
	return now.In(shopZone).AddDate(0, 0, days).Format(DateLayout)
}

func TestDueWindow_Boundaries(t *testing.T) {
	// 02:00 UTC is still the previous evening in the shop's zone.
	now := time.Date(2026, 5, 11, 2, 0, 0, 0, time.UTC)
	window := NewDueWindow(now, 3, shopZone)

	tests := []struct {
		due  string
		want bool
	}{
		{"2026-05-09", false},
		{"2026-05-10", true},
		{"2026-05-12", true},
		{"2026-05-13", true},
		{"2026-05-14", false},
		{"not-a-date", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			assert.Equal(t, tt.want, window.Contains(Entry{DueDate: tt.due}))
		})
	}
}

func TestComputeDashboard(t *testing.T) {
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, shopZone)
	created := now.Add(-time.Hour)

	entries := []Entry{
		{ID: "later", DueDate: dueIn(now, 2), IsPaid: true, CreatedAt: created},
		{ID: "today", DueDate: dueIn(now, 0), CreatedAt: created},
		{ID: "too-far", DueDate: dueIn(now, 4), CreatedAt: created},
		{ID: "overdue", DueDate: dueIn(now, -1), CreatedAt: created},
	}

	d := ComputeDashboard(entries, NewDueWindow(now, 3, shopZone))

	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 1, d.Paid)
	assert.Equal(t, 3, d.Unpaid)
	assert.Equal(t, 2, d.DueSoon)
	require.Len(t, d.Upcoming, 2)
	assert.Equal(t, "today", d.Upcoming[0].ID)
	assert.Equal(t, "later", d.Upcoming[1].ID)
}

func TestComputeDashboard_IncludesLastDayAndOrdersByCreation(t *testing.T) {
	now := time.Date(2026, 5, 10, 23, 59, 0, 0, shopZone)
	last := dueIn(now, 3)

	entries := []Entry{
		{ID: "second", DueDate: last, CreatedAt: now.Add(-time.Minute)},
		{ID: "first", DueDate: last, CreatedAt: now.Add(-time.Hour)},
	}

	d := ComputeDashboard(entries, NewDueWindow(now, 3, shopZone))
	require.Equal(t, 2, d.DueSoon)
	assert.Equal(t, "first", d.Upcoming[0].ID)
	assert.Equal(t, "second", d.Upcoming[1].ID)
}

func TestComputeDashboard_Empty(t *testing.T) {
	d := ComputeDashboard(nil, NewDueWindow(time.Now(), 3, time.UTC))

	assert.Zero(t, d.Total)
	assert.NotNil(t, d.Upcoming)
	assert.Empty(t, d.Upcoming)
}

func TestComputeCustomerStats_ExactNameMatch(t *testing.T) {
	entries := []Entry{
		{CustomerName: "Ada Lovelace", Price: 12.5},
		{CustomerName: "Ada Lovelace", Price: 7.25, IsPaid: true},
		{CustomerName: "ada lovelace", Price: 100},
		{CustomerName: "Ada Lovelace ", Price: 100},
		{CustomerName: "Grace Hopper", Price: 3},
	}

	stats := ComputeCustomerStats(entries, "Ada Lovelace")
	assert.Equal(t, CustomerStats{
		TotalEntries:  2,
		TotalSpent:    19.75,
		UnpaidEntries: 1,
	}, stats)

	assert.Equal(t, CustomerStats{}, ComputeCustomerStats(entries, "Ada King"))
}

func TestComputeCustomerStats_RoundsToCents(t *testing.T) {
	entries := []Entry{
		{CustomerName: "A", Price: 0.1},
		{CustomerName: "A", Price: 0.2},
	}

	assert.Equal(t, 0.3, ComputeCustomerStats(entries, "A").TotalSpent)
}

func TestFilterEntries(t *testing.T) {
	entries := []Entry{
		{ID: "1", CustomerName: "Ada Lovelace", IsPaid: true},
		{ID: "2", CustomerName: "Grace Hopper"},
		{ID: "3", CustomerName: "Adam Smith"},
	}

	ids := func(es []Entry) []string {
		out := []string{}
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterEntries(entries, "", "")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterEntries(entries, StatusAll, "")))
	assert.Equal(t, []string{"1"}, ids(FilterEntries(entries, StatusPaid, "")))
	assert.Equal(t, []string{"2", "3"}, ids(FilterEntries(entries, StatusUnpaid, "")))
	assert.Equal(t, []string{"1", "3"}, ids(FilterEntries(entries, "", "  ADA ")))
	assert.Equal(t, []string{"3"}, ids(FilterEntries(entries, StatusUnpaid, "ada")))
	assert.Empty(t, FilterEntries(entries, StatusAll, "nobody"))
}
