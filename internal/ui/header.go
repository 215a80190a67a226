package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sss654654/rentdeck/internal/derive"
	"github.com/sss654654/rentdeck/internal/service"
)

// renderHeader renders the status bar with connection state and counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)
	compact := m.width < 100

	var parts []string

	// Logo
	parts = append(parts, bg.Render("rentdeck", styles.Logo))

	// Push channel indicator
	if m.listener != nil && m.listener.Connected() {
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("● RECONNECTING", styles.WarningText))
	}

	stats := derive.ComputeStats(m.rentals, m.items, time.Now())

	ongoingStyle := styles.MutedText
	if stats.Ongoing > 0 {
		ongoingStyle = styles.InfoText
	}
	overdueStyle := styles.MutedText
	if stats.Overdue > 0 {
		overdueStyle = styles.DangerText
	}

	if compact {
		parts = append(parts,
			bg.Render("O:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", stats.Ongoing), ongoingStyle)+
				sep+bg.Render("•", styles.FaintText)+sep+
				bg.Render("D:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", stats.Overdue), overdueStyle),
		)
	} else {
		parts = append(parts,
			bg.Render("Ongoing:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", stats.Ongoing), ongoingStyle)+
				sep+bg.Render("•", styles.FaintText)+sep+
				bg.Render("Overdue:", styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", stats.Overdue), overdueStyle),
		)
	}

	// Timestamp with relative indicator
	if timeStr := formatTimestamp(m.lastUpdated, time.Now()); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// Fetch error indicator
	if m.fetchErr != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		errText := truncate(fmt.Sprintf("%v", m.fetchErr), maxErr)
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(errText, styles.DangerText),
		)
	}

	// Latest notice
	if notice, ok := m.latestNotice(); ok {
		noticeStyle := styles.MutedText
		if notice.Level == service.LevelError {
			noticeStyle = styles.WarningText
		}
		maxNotice := 60
		if compact {
			maxNotice = 30
		}
		parts = append(parts, bg.Render(truncate(notice.Text, maxNotice), noticeStyle))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) latestNotice() (service.Notice, bool) {
	if m.svc == nil {
		return service.Notice{}, false
	}
	return m.svc.Notices().Latest()
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewRentals:
		commands = []cmd{
			{"f", m.filterLabel()}, // Shows current filter state
			{"/", "Search"},
			{"←/→", "Page"},
			{"j/k", "Navigate"},
			{"r", "Return"},
			{"d", "Delete"},
			{"Tab", "Views"},
			{"?", "More"},
		}
	case ViewItems:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"1", "Dashboard"},
			{"2", "Rentals"},
			{"Tab", "Views"},
			{"?", "More"},
		}
	default: // ViewDashboard
		commands = []cmd{
			{"2", "Rentals"},
			{"3", "Items"},
			{"Tab", "Views"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands))
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Show active search pattern
	if m.currentView == ViewRentals && m.searchInput.Value() != "" {
		pattern := truncate(m.searchInput.Value(), 18)
		segments = append(segments, bg.Render("/"+pattern, styles.AccentText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// formatTimestamp formats the last update time with a relative indicator.
func formatTimestamp(updated, now time.Time) string {
	if updated.IsZero() {
		return ""
	}

	since := now.Sub(updated)
	timeStr := updated.Format("15:04:05")

	if since < time.Minute {
		timeStr += " (now)"
	} else if since < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	} else if since < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return timeStr
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
