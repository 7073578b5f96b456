package domain

import "errors"

// Storage-level sentinel errors. Repositories translate driver errors into
// these; services map them onto the apperror taxonomy.
var (
	// ErrUsernameTaken is returned when an account insert hits the unique
	// username constraint.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInsufficientBalance is returned when a conditional balance update
	// matches no row, i.e. the debit would drive the balance negative.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
