package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"locallibrary/internal/entity"
	"locallibrary/internal/view"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// TestAuthor is a mock author for testing
var TestAuthor = entity.Author{
	ID:          "test-author-id-123",
	FirstName:   "Patrick",
	FamilyName:  "Rothfuss",
	DateOfBirth: datePtr(1973, time.June, 6),
}

// TestGenre is a mock genre for testing
var TestGenre = entity.Genre{
	ID:   "test-genre-id-456",
	Name: "Fantasy",
}

// TestBook is a mock book for testing
var TestBook = entity.Book{
	ID:       "test-book-id-789",
	Title:    "The Name of the Wind",
	Summary:  "The tale of Kvothe, from his childhood in a troupe of traveling players to years spent as a near-feral orphan.",
	ISBN:     "9781473211896",
	AuthorID: TestAuthor.ID,
	GenreIDs: []string{TestGenre.ID},
}

// TestBookInstance is a mock copy for testing
var TestBookInstance = entity.BookInstance{
	ID:      "test-copy-id-012",
	BookID:  TestBook.ID,
	Imprint: "Gollancz, 2011",
	Status:  entity.StatusAvailable,
	DueBack: time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
}

// NewGetRequest creates a new GET request for testing
func NewGetRequest(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

// NewFormRequest creates a new POST request carrying an encoded form body
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// RenderedPage captures one call into the rendering layer
type RenderedPage struct {
	Status int
	Name   string
	Data   view.Data
}

// FakeRenderer records every page a handler asks it to render instead of
// executing templates
type FakeRenderer struct {
	Pages []RenderedPage
}

func (f *FakeRenderer) Render(w http.ResponseWriter, status int, name string, data view.Data) {
	f.Pages = append(f.Pages, RenderedPage{Status: status, Name: name, Data: data})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
}

// Last returns the most recently rendered page
func (f *FakeRenderer) Last() RenderedPage {
	if len(f.Pages) == 0 {
		return RenderedPage{}
	}
	return f.Pages[len(f.Pages)-1]
}

// AssertRedirect checks that the response is a redirect to the given location
func AssertRedirect(t interface {
	Errorf(format string, args ...any)
}, w *httptest.ResponseRecorder, location string) {
	if w.Code != http.StatusFound {
		t.Errorf("got status code %d, want %d", w.Code, http.StatusFound)
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("got redirect to %q, want %q", got, location)
	}
}
