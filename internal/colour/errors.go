// Package colour provides the colour-science and accessibility engine.
package colour

import "errors"

var (
	// ErrInvalidColorFormat is returned when a colour string cannot be parsed.
	ErrInvalidColorFormat = errors.New("invalid colour format")

	// ErrOutOfRangeChannel is returned when a directly constructed colour
	// component lies outside its declared domain.
	ErrOutOfRangeChannel = errors.New("colour channel out of range")

	// ErrReservedCategory is returned when a custom category reuses the
	// name of a built-in category.
	ErrReservedCategory = errors.New("category name is reserved")
)
