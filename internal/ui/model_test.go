package ui

import (
	"fmt"
	"testing"

	"github.com/sss654654/rentdeck/internal/derive"
	"github.com/sss654654/rentdeck/internal/gateway"
)

func testModel(rentalCount int) Model {
	m := New(Options{})
	for i := 1; i <= rentalCount; i++ {
		m.rentals = append(m.rentals, gateway.Rental{
			ID:         i,
			ItemName:   fmt.Sprintf("Item %d", i),
			RenterName: fmt.Sprintf("Renter %d", i),
			Status:     gateway.StatusOngoing,
		})
	}
	return m
}

func TestCycleFilter(t *testing.T) {
	m := New(Options{})

	want := []string{"ONGOING", "COMPLETED", "OVERDUE", derive.StatusAll}
	for _, expected := range want {
		m.cycleFilter()
		if m.statusFilter != expected {
			t.Fatalf("statusFilter = %q, want %q", m.statusFilter, expected)
		}
	}
}

func TestFilterLabel(t *testing.T) {
	m := New(Options{})
	if got := m.filterLabel(); got != "All" {
		t.Fatalf("filterLabel = %q, want All", got)
	}
	m.statusFilter = string(gateway.StatusOverdue)
	if got := m.filterLabel(); got != "Overdue" {
		t.Fatalf("filterLabel = %q, want Overdue", got)
	}
}

func TestPageRentals(t *testing.T) {
	m := testModel(12)

	if got := len(m.pageRentals()); got != derive.PageSize {
		t.Fatalf("page 1 has %d rows, want %d", got, derive.PageSize)
	}

	m.page = 3
	page := m.pageRentals()
	if len(page) != 2 {
		t.Fatalf("page 3 has %d rows, want 2", len(page))
	}
	if page[0].ID != 11 {
		t.Fatalf("page 3 starts at ID %d, want 11", page[0].ID)
	}
}

func TestSelectedRental(t *testing.T) {
	m := testModel(3)

	r := m.selectedRental()
	if r == nil || r.ID != 1 {
		t.Fatalf("selectedRental = %v, want ID 1", r)
	}

	m.selectedRow = 2
	r = m.selectedRental()
	if r == nil || r.ID != 3 {
		t.Fatalf("selectedRental = %v, want ID 3", r)
	}

	m.selectedRow = 10
	if r := m.selectedRental(); r != nil {
		t.Fatalf("selectedRental out of range = %v, want nil", r)
	}
}

func TestSearchNarrowsVisible(t *testing.T) {
	m := testModel(12)
	m.searchInput.SetValue("Item 3")

	visible := m.visibleRentals()
	if len(visible) != 1 || visible[0].ID != 3 {
		t.Fatalf("visibleRentals = %v, want only ID 3", visible)
	}
}

func TestClampSelectionAfterShrink(t *testing.T) {
	m := testModel(12)
	m.page = 3
	m.selectedRow = 1

	// Collection shrinks to one page
	m.rentals = m.rentals[:3]
	m.clampSelection()

	if m.page != 1 {
		t.Fatalf("page = %d, want 1", m.page)
	}
	if m.selectedRow > 2 {
		t.Fatalf("selectedRow = %d, want within the three rows", m.selectedRow)
	}
}

func TestClampSelectionEmpty(t *testing.T) {
	m := testModel(5)
	m.selectedRow = 4

	m.rentals = nil
	m.clampSelection()

	if m.page != 1 {
		t.Fatalf("page = %d, want 1", m.page)
	}
	if m.selectedRow != 0 {
		t.Fatalf("selectedRow = %d, want 0", m.selectedRow)
	}
}
