package entity

import "errors"

// ErrBookNotFound is returned when a book is not found.
var ErrBookNotFound = errors.New("book not found")

// Book represents a work in the catalog. AuthorID and GenreIDs are
// references; Author and Genres carry the expanded entities when the
// store was asked to populate them, and are nil otherwise.
type Book struct {
	ID       string
	Title    string
	Summary  string
	ISBN     string
	AuthorID string
	Author   *Author
	GenreIDs []string
	Genres   []Genre
}

// URL is the canonical detail path for this book.
func (b Book) URL() string {
	return "/catalog/book/" + b.ID
}

// HasGenre reports whether the book references the given genre id.
func (b Book) HasGenre(genreID string) bool {
	for _, id := range b.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}
