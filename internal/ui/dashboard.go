package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sss654654/rentdeck/internal/derive"
)

// renderDashboard renders the overview: stat cards, popular items, recent
// activity and the monthly trend chart.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	now := time.Now()

	stats := derive.ComputeStats(m.rentals, m.items, now)
	cards := m.renderStatCards(styles, stats)

	popular := styles.Card.Render(m.renderPopular(styles))
	activity := styles.Card.Render(m.renderActivity(styles, now))
	middle := lipgloss.JoinHorizontal(lipgloss.Top, popular, " ", activity)

	chart := styles.Card.Render(m.renderMonthlyChart(styles, now))

	return lipgloss.JoinVertical(lipgloss.Left, cards, middle, chart)
}

// renderStatCards renders the four headline counters.
func (m Model) renderStatCards(styles Styles, stats derive.Stats) string {
	type card struct {
		label string
		value int
		style lipgloss.Style
	}
	cards := []card{
		{"Ongoing", stats.Ongoing, styles.InfoText},
		{"Available items", stats.AvailableItems, styles.SuccessText},
		{"Rented today", stats.TodayRentals, styles.AccentText},
		{"Overdue", stats.Overdue, styles.DangerText},
	}

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		content := c.style.Bold(true).Render(fmt.Sprintf("%d", c.value)) + "\n" +
			styles.MutedText.Render(c.label)
		rendered = append(rendered, styles.Card.Width(18).Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderPopular renders the most-rented items ranking.
func (m Model) renderPopular(styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Popular items"))
	b.WriteString("\n")

	popular := derive.PopularItems(m.rentals)
	if len(popular) == 0 {
		b.WriteString(styles.MutedText.Render("No rentals yet"))
		return b.String()
	}

	for _, p := range popular {
		b.WriteString(styles.AccentText.Render(fmt.Sprintf("%d.", p.Rank)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(truncate(p.Name, 24)))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("×%d", p.Count)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderActivity renders the recent rental/return feed.
func (m Model) renderActivity(styles Styles, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Recent activity"))
	b.WriteString("\n")

	activity := derive.RecentActivity(m.rentals)
	if len(activity) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing yet"))
		return b.String()
	}

	for _, a := range activity {
		verb := "rented"
		verbStyle := styles.InfoText
		if a.Kind == derive.ActivityReturn {
			verb = "returned"
			verbStyle = styles.SuccessText
		}
		b.WriteString(styles.Text.Render(truncate(a.RenterName, 16)))
		b.WriteString(" ")
		b.WriteString(verbStyle.Render(verb))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(truncate(a.ItemName, 20)))
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(humanizeSince(a.Time, now)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderMonthlyChart renders a horizontal bar per month for the trailing
// twelve months.
func (m Model) renderMonthlyChart(styles Styles, now time.Time) string {
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Rentals by month"))
	b.WriteString("\n")

	buckets := derive.MonthlyStats(m.rentals, now)

	maxCount := 1
	for _, bucket := range buckets {
		if bucket.Rentals > maxCount {
			maxCount = bucket.Rentals
		}
		if bucket.Returns > maxCount {
			maxCount = bucket.Returns
		}
	}

	barWidth := 24
	if m.width < 100 {
		barWidth = 12
	}

	for _, bucket := range buckets {
		b.WriteString(styles.MutedText.Render(bucket.Label()))
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(bar(bucket.Rentals, maxCount, barWidth)))
		b.WriteString(styles.Text.Render(fmt.Sprintf(" %d", bucket.Rentals)))
		b.WriteString(styles.FaintText.Render(fmt.Sprintf(" (%d back)", bucket.Returns)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// bar renders a proportional bar of the given width.
func bar(value, maxValue, width int) string {
	if value <= 0 || maxValue <= 0 || width <= 0 {
		return ""
	}
	n := value * width / maxValue
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// humanizeSince renders a compact relative time.
func humanizeSince(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
