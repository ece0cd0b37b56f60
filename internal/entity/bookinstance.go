package entity

import (
	"errors"
	"time"
)

// ErrBookInstanceNotFound is returned when a book copy is not found.
var ErrBookInstanceNotFound = errors.New("book instance not found")

// Loan status of a physical copy.
const (
	StatusAvailable   = "Available"
	StatusMaintenance = "Maintenance"
	StatusLoaned      = "Loaned"
	StatusReserved    = "Reserved"
)

// Statuses lists every valid copy status, in form display order.
var Statuses = []string{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// BookInstance is a physical copy of a book. Book carries the expanded
// entity when the store was asked to populate the reference.
type BookInstance struct {
	ID      string
	BookID  string
	Book    *Book
	Imprint string
	Status  string
	DueBack time.Time
}

// URL is the canonical detail path for this copy.
func (bi BookInstance) URL() string {
	return "/catalog/bookinstance/" + bi.ID
}

// Available reports whether the copy can be borrowed right now.
func (bi BookInstance) Available() bool {
	return bi.Status == StatusAvailable
}

// DueBackFormatted renders the due date for display.
func (bi BookInstance) DueBackFormatted() string {
	if bi.DueBack.IsZero() {
		return ""
	}
	return bi.DueBack.Format("January 2, 2006")
}
