package ui

import (
	"fmt"
	"strings"

	"github.com/sss654654/rentdeck/internal/derive"
	"github.com/sss654654/rentdeck/internal/gateway"
)

// renderItems renders the item list with stock badges.
func (m Model) renderItems() string {
	styles := m.theme.Styles()

	if len(m.items) == 0 {
		return styles.MutedText.Render("No items registered")
	}

	var b strings.Builder
	header := pad("NAME", itemNameWidth) +
		pad("CATEGORY", itemCategoryWidth) +
		pad("STOCK", 10) +
		"STATUS"
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	for i, item := range m.items {
		b.WriteString(m.renderItemRow(styles, item, i == m.itemRow))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d items", len(m.items))))

	return b.String()
}

const (
	itemNameWidth     = 28
	itemCategoryWidth = 16
)

func (m Model) renderItemRow(styles Styles, item gateway.Item, selected bool) string {
	status := derive.StockStatusOf(item)

	line := pad(truncate(item.Name, itemNameWidth-2), itemNameWidth) +
		pad(truncate(item.Category, itemCategoryWidth-2), itemCategoryWidth) +
		pad(fmt.Sprintf("%d/%d", item.Stock, item.TotalStock), 10)

	badge := styles.StatusStyle(status.String()).Render(stockLabel(status))

	if selected {
		return styles.Selected.Render("▌ "+line) + badge
	}
	return styles.Text.Render("  "+line) + badge
}

// stockLabel maps a stock status to its display label.
func stockLabel(status derive.StockStatus) string {
	switch status {
	case derive.OutOfStock:
		return "Out of stock"
	case derive.LowStock:
		return "Low stock"
	case derive.Available:
		return "Available"
	default:
		return "Unavailable"
	}
}
