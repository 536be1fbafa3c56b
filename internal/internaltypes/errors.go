package internaltypes

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRule    = errors.New("invalid reset rule")
	ErrInvalidCatalog = errors.New("invalid game catalog")
)
