package expenses

import "errors"

var (
	// ErrTitleRequired is returned when the title is empty.
	ErrTitleRequired = errors.New("title is required")

	// ErrInvalidAmount is returned when the amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidCategory is returned when the category is not one of the
	// enumerated values.
	ErrInvalidCategory = errors.New("category must be selected from the list")

	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")
)
