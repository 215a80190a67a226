package derive

import (
	"sort"
	"strings"
	"time"

	"github.com/sss654654/rentdeck/internal/gateway"
)

// StockStatus classifies an item's loanability for display.
type StockStatus int

const (
	// OutOfStock means nothing is left to lend.
	OutOfStock StockStatus = iota
	// LowStock means stock has dropped to a fifth of capacity or less.
	LowStock
	// Available means the item can be lent right now.
	Available
	// Unavailable means the item is in stock but withdrawn from lending.
	Unavailable
)

func (s StockStatus) String() string {
	switch s {
	case OutOfStock:
		return "OUT_OF_STOCK"
	case LowStock:
		return "LOW_STOCK"
	case Available:
		return "AVAILABLE"
	case Unavailable:
		return "UNAVAILABLE"
	}
	return "UNKNOWN"
}

// StockStatusOf classifies one item. Low stock wins over the available
// flag: a nearly-depleted item shows as low even when flagged loanable.
func StockStatusOf(item gateway.Item) StockStatus {
	switch {
	case item.Stock == 0:
		return OutOfStock
	case float64(item.Stock) <= 0.2*float64(item.TotalStock):
		return LowStock
	case item.Available:
		return Available
	default:
		return Unavailable
	}
}

// Stats are the dashboard headline counters.
type Stats struct {
	Ongoing        int
	AvailableItems int
	TodayRentals   int
	Overdue        int
}

// ComputeStats derives the headline counters. AvailableItems counts items
// that are both flagged loanable and actually in stock; TodayRentals counts
// rentals started on now's calendar day in local time.
func ComputeStats(rentals []gateway.Rental, items []gateway.Item, now time.Time) Stats {
	var stats Stats
	for _, r := range rentals {
		switch r.Status {
		case gateway.StatusOngoing:
			stats.Ongoing++
		case gateway.StatusOverdue:
			stats.Overdue++
		}
		if sameDay(r.ParsedRentalDate(), now) {
			stats.TodayRentals++
		}
	}
	for _, i := range items {
		if i.Available && i.Stock > 0 {
			stats.AvailableItems++
		}
	}
	return stats
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// PopularItem is one row of the top-5 ranking.
type PopularItem struct {
	Rank  int
	Name  string
	Count int
}

// PopularItems groups rentals by item name, counts them and returns the
// five most-rented, ranked from 1. Ties keep the order the names were
// first seen in the input.
func PopularItems(rentals []gateway.Rental) []PopularItem {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var names []string
	for i, r := range rentals {
		if _, seen := counts[r.ItemName]; !seen {
			firstSeen[r.ItemName] = i
			names = append(names, r.ItemName)
		}
		counts[r.ItemName]++
	}

	sort.SliceStable(names, func(a, b int) bool {
		if counts[names[a]] != counts[names[b]] {
			return counts[names[a]] > counts[names[b]]
		}
		return firstSeen[names[a]] < firstSeen[names[b]]
	})

	if len(names) > 5 {
		names = names[:5]
	}
	ranked := make([]PopularItem, 0, len(names))
	for i, name := range names {
		ranked = append(ranked, PopularItem{Rank: i + 1, Name: name, Count: counts[name]})
	}
	return ranked
}

// ActivityKind distinguishes the two halves of the activity feed.
type ActivityKind int

const (
	ActivityRental ActivityKind = iota
	ActivityReturn
)

// Activity is one row of the recent activity feed.
type Activity struct {
	RentalID   int
	Kind       ActivityKind
	ItemName   string
	RenterName string
	Time       time.Time
}

// RecentActivity merges the five most-recently-started ongoing rentals
// with the five most-recently-closed completed ones, re-sorts the union by
// event time descending and truncates to ten rows.
func RecentActivity(rentals []gateway.Rental) []Activity {
	var started, returned []Activity
	for _, r := range rentals {
		switch {
		case r.Status == gateway.StatusOngoing:
			started = append(started, Activity{
				RentalID:   r.ID,
				Kind:       ActivityRental,
				ItemName:   r.ItemName,
				RenterName: r.RenterName,
				Time:       r.ParsedRentalDate(),
			})
		case r.Status == gateway.StatusCompleted && r.ReturnDate != "":
			returned = append(returned, Activity{
				RentalID:   r.ID,
				Kind:       ActivityReturn,
				ItemName:   r.ItemName,
				RenterName: r.RenterName,
				Time:       r.ParsedReturnDate(),
			})
		}
	}

	byTimeDesc := func(rows []Activity) {
		sort.SliceStable(rows, func(a, b int) bool { return rows[a].Time.After(rows[b].Time) })
	}
	byTimeDesc(started)
	byTimeDesc(returned)
	if len(started) > 5 {
		started = started[:5]
	}
	if len(returned) > 5 {
		returned = returned[:5]
	}

	merged := append(started, returned...)
	byTimeDesc(merged)
	if len(merged) > 10 {
		merged = merged[:10]
	}
	return merged
}

// MonthBucket is one calendar month of rental and return counts.
type MonthBucket struct {
	Year    int
	Month   time.Month
	Rentals int
	Returns int
}

// Label renders the bucket as YYYY-MM.
func (b MonthBucket) Label() string {
	return time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// MonthlyStats buckets rentals and returns into the twelve calendar months
// ending at now's month, oldest first. Events outside the window are
// dropped silently.
func MonthlyStats(rentals []gateway.Rental, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	index := make(map[string]int, 12)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)
	for i := 0; i < 12; i++ {
		m := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Year: m.Year(), Month: m.Month()}
		index[m.Format("2006-01")] = i
	}

	for _, r := range rentals {
		if started := r.ParsedRentalDate(); !started.IsZero() {
			if i, ok := index[started.Format("2006-01")]; ok {
				buckets[i].Rentals++
			}
		}
		if returned := r.ParsedReturnDate(); !returned.IsZero() {
			if i, ok := index[returned.Format("2006-01")]; ok {
				buckets[i].Returns++
			}
		}
	}
	return buckets
}

// StatusAll is the filter value that matches every rental status.
const StatusAll = "ALL"

// FilterRentals narrows rentals to those matching the status filter
// (exact, or StatusAll/"" for everything) AND a case-insensitive substring
// match of query against the item name or renter name.
func FilterRentals(rentals []gateway.Rental, status string, query string) []gateway.Rental {
	needle := strings.ToLower(strings.TrimSpace(query))
	var out []gateway.Rental
	for _, r := range rentals {
		if status != "" && status != StatusAll && string(r.Status) != status {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.ItemName), needle) &&
			!strings.Contains(strings.ToLower(r.RenterName), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PageSize is the fixed number of rentals per page.
const PageSize = 5

// TotalPages reports how many 1-based pages the filtered count spans.
// Zero rentals still make zero pages; callers clamp navigation themselves.
func TotalPages(filtered int) int {
	if filtered <= 0 {
		return 0
	}
	return (filtered + PageSize - 1) / PageSize
}

// ClampPage keeps a 1-based page number inside [1, totalPages]. With no
// pages at all it reports 1 so an empty list still has a stable position.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// PageSlice returns the rentals on the given 1-based page. Pages outside
// the range come back empty; the computation never fixes the caller's
// stored page state.
func PageSlice(rentals []gateway.Rental, page int) []gateway.Rental {
	if page < 1 {
		return nil
	}
	start := (page - 1) * PageSize
	if start >= len(rentals) {
		return nil
	}
	end := start + PageSize
	if end > len(rentals) {
		end = len(rentals)
	}
	return rentals[start:end]
}
