package entity_test

import (
	"testing"
	"time"

	"locallibrary/internal/entity"

	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthorName(t *testing.T) {
	a := entity.Author{FirstName: "Patrick", FamilyName: "Rothfuss"}
	assert.Equal(t, "Rothfuss, Patrick", a.Name())

	assert.Equal(t, "", entity.Author{}.Name())
}

func TestAuthorLifespan(t *testing.T) {
	t.Run("both dates known", func(t *testing.T) {
		a := entity.Author{
			DateOfBirth: datePtr(1920, time.January, 2),
			DateOfDeath: datePtr(1992, time.April, 6),
		}
		assert.Equal(t, "January 2, 1920 - April 6, 1992", a.Lifespan())
	})

	t.Run("death unknown leaves the right side blank", func(t *testing.T) {
		a := entity.Author{DateOfBirth: datePtr(1973, time.June, 6)}
		assert.Equal(t, "June 6, 1973 - ", a.Lifespan())
	})

	t.Run("no dates at all", func(t *testing.T) {
		assert.Equal(t, "", entity.Author{}.Lifespan())
	})
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/catalog/author/a1", entity.Author{ID: "a1"}.URL())
	assert.Equal(t, "/catalog/book/b1", entity.Book{ID: "b1"}.URL())
	assert.Equal(t, "/catalog/genre/g1", entity.Genre{ID: "g1"}.URL())
	assert.Equal(t, "/catalog/bookinstance/c1", entity.BookInstance{ID: "c1"}.URL())
}

func TestBookInstanceAvailable(t *testing.T) {
	assert.True(t, entity.BookInstance{Status: entity.StatusAvailable}.Available())
	assert.False(t, entity.BookInstance{Status: entity.StatusLoaned}.Available())
}

func TestBookHasGenre(t *testing.T) {
	b := entity.Book{GenreIDs: []string{"g1", "g3"}}
	assert.True(t, b.HasGenre("g1"))
	assert.False(t, b.HasGenre("g2"))
}
