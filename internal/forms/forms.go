// Package forms validates and sanitizes submitted form fields. Every rule
// is checked so a single submission reports all of its problems at once;
// values are trimmed before checking and escaped before storage or
// redisplay, in that order, so length and character-class constraints see
// the text the user actually typed.
package forms

import (
	"html"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Error is a single field-level validation failure.
type Error struct {
	Field   string
	Message string
}

// Rule declares one check for one field: the constraint is a
// go-playground/validator tag expression and Message is reported verbatim
// when the constraint fails.
type Rule struct {
	Field      string
	Value      string
	Constraint string
	Message    string
}

// Check applies every rule in order and returns the accumulated failures.
// A nil result means the input passed.
func Check(rules []Rule) []Error {
	var errs []Error
	for _, r := range rules {
		if err := validate.Var(r.Value, r.Constraint); err != nil {
			errs = append(errs, Error{Field: r.Field, Message: r.Message})
		}
	}
	return errs
}

// Trim strips leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// Escape replaces markup-unsafe characters so the value can be embedded
// in a page as-is.
func Escape(s string) string {
	return html.EscapeString(s)
}

// NormalizeMulti coerces a multi-select submission to a canonical
// sequence: an absent field (nil) becomes an empty slice, anything else
// is returned unchanged. A single selected option arrives from the form
// decoder as a one-element slice, so all three input shapes end up as a
// plain sequence before validation.
func NormalizeMulti(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ParseOptionalDate parses an ISO-8601 date field. The empty string means
// the field was left blank and yields a nil time with ok=true; a
// malformed value yields ok=false so the caller can report its own
// message.
func ParseOptionalDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, false
	}
	return &t, true
}
