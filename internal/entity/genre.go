package entity

import "errors"

// ErrGenreNotFound is returned when a genre is not found.
var ErrGenreNotFound = errors.New("genre not found")

// Genre classifies books. Referenced by zero or more books.
type Genre struct {
	ID   string
	Name string
}

// URL is the canonical detail path for this genre.
func (g Genre) URL() string {
	return "/catalog/genre/" + g.ID
}
