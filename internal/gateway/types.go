package gateway

import "time"

// RentalStatus is the lifecycle state reported by the backend.
// The server owns every transition; the client only reflects it.
type RentalStatus string

const (
	StatusOngoing   RentalStatus = "ONGOING"
	StatusCompleted RentalStatus = "COMPLETED"
	StatusOverdue   RentalStatus = "OVERDUE"
)

// Valid reports whether s is one of the statuses the backend emits.
func (s RentalStatus) Valid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Item mirrors the payload returned by /api/items.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	Stock       int    `json:"stock"`
	TotalStock  int    `json:"totalStock"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (i Item) ParsedCreatedAt() time.Time {
	return parseTime(i.CreatedAt)
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (i Item) ParsedUpdatedAt() time.Time {
	return parseTime(i.UpdatedAt)
}

// Rental mirrors the payload returned by /api/rentals. ReturnDate is set
// exactly when Status is COMPLETED; the item name is denormalized by the
// server so lists render without a join.
type Rental struct {
	ID                 int          `json:"id"`
	ItemID             int          `json:"itemId"`
	ItemName           string       `json:"itemName"`
	RenterName         string       `json:"renterName"`
	RenterContact      string       `json:"renterContact"`
	Status             RentalStatus `json:"status"`
	RentalDate         string       `json:"rentalDate"`
	ExpectedReturnDate string       `json:"expectedReturnDate"`
	ReturnDate         string       `json:"returnDate,omitempty"`
	Notes              string       `json:"notes,omitempty"`
}

// ParsedRentalDate returns the parsed RentalDate timestamp.
func (r Rental) ParsedRentalDate() time.Time {
	return parseTime(r.RentalDate)
}

// ParsedReturnDate returns the parsed ReturnDate timestamp, zero when the
// rental has not been returned.
func (r Rental) ParsedReturnDate() time.Time {
	return parseTime(r.ReturnDate)
}

// ParsedExpectedReturnDate returns the parsed ExpectedReturnDate timestamp.
func (r Rental) ParsedExpectedReturnDate() time.Time {
	return parseTime(r.ExpectedReturnDate)
}

// CreateItemRequest is the body for POST /api/items. Stock doubles as the
// total capacity; the backend rejects later changes to it.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// UpdateItemRequest is the body for PATCH /api/items/{id}. Nil fields are
// omitted so the server leaves them untouched.
type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

// CreateRentalRequest is the body for POST /api/rentals.
type CreateRentalRequest struct {
	ItemID             int    `json:"itemId"`
	RenterName         string `json:"renterName"`
	RenterContact      string `json:"renterContact"`
	ExpectedReturnDate string `json:"expectedReturnDate"`
	Notes              string `json:"notes,omitempty"`
}

// UpdateRentalRequest is the body for PATCH /api/rentals/{id}.
type UpdateRentalRequest struct {
	RenterName         *string `json:"renterName,omitempty"`
	RenterContact      *string `json:"renterContact,omitempty"`
	ExpectedReturnDate *string `json:"expectedReturnDate,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
