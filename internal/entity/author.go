package entity

import (
	"errors"
	"time"
)

// ErrAuthorNotFound is returned when an author is not found.
var ErrAuthorNotFound = errors.New("author not found")

// Author represents a writer with zero or more books in the catalog.
type Author struct {
	ID          string
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

// Name returns the display name in "family, first" form.
func (a Author) Name() string {
	if a.FamilyName == "" && a.FirstName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the birth and death years as a range, leaving either
// side blank when the date is unknown.
func (a Author) Lifespan() string {
	span := formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
	if span == " - " {
		return ""
	}
	return span
}

// URL is the canonical detail path for this author.
func (a Author) URL() string {
	return "/catalog/author/" + a.ID
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("January 2, 2006")
}
