package basis

import "errors"

// ErrInvalidOrder indicates a basis or quadrature order below 1.
var ErrInvalidOrder = errors.New("basis: order must be at least 1")
