package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sss654654/rentdeck/internal/derive"
	"github.com/sss654654/rentdeck/internal/gateway"
)

// renderRentals renders the filterable, paginated rental table.
func (m Model) renderRentals() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.searching {
		b.WriteString(styles.AccentText.Render("Search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	visible := m.visibleRentals()
	if len(visible) == 0 {
		msg := "No rentals"
		if m.searchInput.Value() != "" || m.statusFilter != derive.StatusAll {
			msg = "No rentals match the current filter"
		}
		b.WriteString(styles.MutedText.Render(msg))
		return b.String()
	}

	page := derive.ClampPage(m.page, derive.TotalPages(len(visible)))
	rows := derive.PageSlice(visible, page)

	b.WriteString(m.renderRentalHeader(styles))
	b.WriteString("\n")
	for i, rental := range rows {
		b.WriteString(m.renderRentalRow(styles, rental, i == m.selectedRow))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(
		fmt.Sprintf("Page %d/%d (%d rentals)", page, derive.TotalPages(len(visible)), len(visible))))

	return b.String()
}

const (
	rentalItemWidth   = 24
	rentalRenterWidth = 18
	rentalDateWidth   = 12
)

func (m Model) renderRentalHeader(styles Styles) string {
	header := pad("ITEM", rentalItemWidth) +
		pad("RENTER", rentalRenterWidth) +
		pad("STATUS", 11) +
		pad("RENTED", rentalDateWidth) +
		pad("DUE / BACK", rentalDateWidth)
	return styles.MutedText.Bold(true).Render(header)
}

func (m Model) renderRentalRow(styles Styles, rental gateway.Rental, selected bool) string {
	due := rental.ExpectedReturnDate
	if rental.Status == gateway.StatusCompleted && rental.ReturnDate != "" {
		due = rental.ReturnDate
	}

	line := pad(truncate(rental.ItemName, rentalItemWidth-2), rentalItemWidth) +
		pad(truncate(rental.RenterName, rentalRenterWidth-2), rentalRenterWidth)

	badge := styles.StatusStyle(string(rental.Status)).Render(string(rental.Status))
	dates := pad(shortDate(rental.ParsedRentalDate(), rental.RentalDate), rentalDateWidth) +
		pad(shortDate(parsedOrZero(rental, due), due), rentalDateWidth)

	if selected {
		return styles.Selected.Render("▌ "+line) + badge + styles.Selected.Render(" "+dates)
	}
	return styles.Text.Render("  "+line) + badge + styles.Text.Render(" "+dates)
}

// parsedOrZero parses whichever date string the row displays in its last
// column.
func parsedOrZero(rental gateway.Rental, raw string) time.Time {
	if raw == rental.ReturnDate {
		return rental.ParsedReturnDate()
	}
	return rental.ParsedExpectedReturnDate()
}

// shortDate prefers the parsed form, falling back to the raw string.
func shortDate(t time.Time, raw string) string {
	if !t.IsZero() {
		return t.Format("2006-01-02")
	}
	return truncate(raw, 10)
}

// pad right-pads or truncates s to exactly width cells.
func pad(s string, width int) string {
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(s)
}
