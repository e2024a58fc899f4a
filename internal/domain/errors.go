// backend-go/internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughData is reported when a price series has fewer than two usable points
	ErrNotEnoughData = errors.New("not enough price data")

	// ErrNoVendors is reported when no vendor offers survive coercion for a material
	ErrNoVendors = errors.New("no vendors for material")

	// ErrCatalogNotLoaded is reported before the first successful catalog load
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)

// SchemaError indicates a required column is absent after normalization.
// It is fatal to the operation that needed the column, not to the process.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing required column %s", e.Table, e.Column)
}

// ValidationError indicates a missing or malformed requirement field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}
