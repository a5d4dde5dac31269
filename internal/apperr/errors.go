package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// NotFound indicates that a referenced driver or order does not exist.
var NotFound = errors.New("not found")

// Conflict indicates a duplicate active assignment for a (driver, order) pair.
var Conflict = errors.New("duplicate assignment")
