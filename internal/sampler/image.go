package sampler

import (
	"context"
	"fmt"
	"image"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Mode selects how an ImageSampler reduces the image to one colour.
type Mode string

const (
	// ModePoint reads a single pixel, or the mean of a square region when
	// a radius is set.
	ModePoint Mode = "point"
	// ModeDominant returns the heaviest k-means cluster of the whole image.
	ModeDominant Mode = "dominant"
)

// ImageOptions configures an ImageSampler.
type ImageOptions struct {
	Mode Mode

	// X and Y are relative to the image's top-left corner.
	X, Y int

	// Radius widens a point sample to the (2r+1)x(2r+1) square around X,Y,
	// clipped to the image.
	Radius int

	// Clusters is the k used by ModeDominant (DefaultClusters when zero).
	Clusters int

	// Seed overrides the content-derived clustering seed when non-nil.
	Seed *uint64
}

// ImageSampler samples colours from a decoded image.
type ImageSampler struct {
	img  image.Image
	opts ImageOptions
}

// NewImageSampler creates a sampler over an already decoded image.
func NewImageSampler(img image.Image, opts ImageOptions) (*ImageSampler, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	if opts.Mode == "" {
		opts.Mode = ModePoint
	}
	if opts.Radius < 0 {
		return nil, fmt.Errorf("radius must be non-negative, got %d", opts.Radius)
	}

	switch opts.Mode {
	case ModePoint:
		b := img.Bounds()
		if opts.X < 0 || opts.Y < 0 || opts.X >= b.Dx() || opts.Y >= b.Dy() {
			return nil, fmt.Errorf("%w: (%d, %d) in %dx%d image", ErrOutOfBounds, opts.X, opts.Y, b.Dx(), b.Dy())
		}
	case ModeDominant:
	default:
		return nil, fmt.Errorf("unknown sample mode: %s", opts.Mode)
	}

	return &ImageSampler{img: img, opts: opts}, nil
}

// OpenImageSampler loads path and creates a sampler over it.
func OpenImageSampler(path string, opts ImageOptions) (*ImageSampler, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	return NewImageSampler(img, opts)
}

// Sample implements Sampler.
func (s *ImageSampler) Sample(ctx context.Context) (colour.Hex, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.opts.Mode == ModeDominant {
		clusters, err := s.Clusters(ctx)
		if err != nil {
			return "", err
		}
		return clusters[0].Colour.Hex(), nil
	}

	return s.region().Hex(), nil
}

// Clusters returns the image's k-means clusters, heaviest first.
func (s *ImageSampler) Clusters(ctx context.Context) ([]Cluster, error) {
	seed := ContentSeed(s.img)
	if s.opts.Seed != nil {
		seed = *s.opts.Seed
	}
	return Clusters(ctx, s.img, s.opts.Clusters, colour.NewRand(seed))
}

// region averages the square around the sample point in sRGB.
func (s *ImageSampler) region() colour.RGB {
	b := s.img.Bounds()
	cx, cy := b.Min.X+s.opts.X, b.Min.Y+s.opts.Y
	r := s.opts.Radius

	area := image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(b)

	var sumR, sumG, sumB float64
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			rgb := colour.ToRGB(s.img.At(x, y))
			sumR += float64(rgb.R)
			sumG += float64(rgb.G)
			sumB += float64(rgb.B)
		}
	}

	n := float64(area.Dx() * area.Dy())
	return colour.RGBFromFloat(sumR/n, sumG/n, sumB/n)
}
