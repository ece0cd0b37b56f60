package usecase

import "errors"

// ErrHasDependents is returned when a delete is refused because other
// records still reference the entity. The result accompanying the error
// carries the blocking records so the caller can show them.
var ErrHasDependents = errors.New("entity has dependent records")
