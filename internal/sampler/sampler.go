// Package sampler provides colour sources that sit outside the colour engine:
// image files and external sampler plugins. The engine never calls a
// Sampler; the CLI feeds sampled colours into it.
package sampler

import (
	"context"
	"errors"

	"github.com/jmylchreest/swatch/internal/colour"
)

var (
	// ErrOutOfBounds is returned when a sample point lies outside the image.
	ErrOutOfBounds = errors.New("sample point outside image bounds")

	// ErrEmptyImage is returned when an image has no pixels to sample.
	ErrEmptyImage = errors.New("image has no pixels")
)

// Sampler produces a single colour on demand.
type Sampler interface {
	Sample(ctx context.Context) (colour.Hex, error)
}

// Func adapts a function to the Sampler interface.
type Func func(ctx context.Context) (colour.Hex, error)

// Sample calls f(ctx).
func (f Func) Sample(ctx context.Context) (colour.Hex, error) {
	return f(ctx)
}
