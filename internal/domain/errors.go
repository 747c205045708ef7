package domain

import (
	"errors"
	"fmt"
)

// Failure categories. Specific errors wrap one of these so callers can route
// on errors.Is without matching strings.
var (
	ErrConfiguration = errors.New("invalid search configuration")
	ErrRequest       = errors.New("marketplace request failed")
	ErrParsing       = errors.New("malformed marketplace response")
	ErrInternal      = errors.New("internal error")
)

// Configuration errors.
var (
	ErrEmptyProductName  = fmt.Errorf("%w: product name cannot be empty", ErrConfiguration)
	ErrInvalidPriceRange = fmt.Errorf("%w: min price cannot exceed max price", ErrConfiguration)
)
