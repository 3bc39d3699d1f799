package services

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every resource-specific not-found error
var ErrNotFound = errors.New("not found")

var (
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	ErrValidation       = errors.New("validation failed")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryInactive = errors.New("category is not active")
	ErrAccountInactive  = errors.New("account is not active")
	ErrInvalidParent    = errors.New("parent category is invalid")
)
