package sampler

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/swatch/internal/colour"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// splitImage returns a w x h image whose first split columns are left and
// the rest right.
func splitImage(w, h, split int, left, right color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if x < split {
				img.Set(x, y, left)
			} else {
				img.Set(x, y, right)
			}
		}
	}
	return img
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return path
}

func TestImageSamplerPoint(t *testing.T) {
	img := splitImage(10, 10, 5, red, blue)

	tests := []struct {
		name string
		opts ImageOptions
		want colour.Hex
	}{
		{"left pixel", ImageOptions{X: 0, Y: 0}, "#ff0000"},
		{"right pixel", ImageOptions{X: 9, Y: 9}, "#0000ff"},
		{"region straddling edge", ImageOptions{X: 4, Y: 0, Radius: 1}, "#aa0055"},
		{"region fully inside", ImageOptions{X: 2, Y: 5, Radius: 2}, "#ff0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewImageSampler(img, tt.opts)
			require.NoError(t, err)

			got, err := s.Sample(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageSamplerOffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 20, 20))
	img.Set(10, 10, red)

	s, err := NewImageSampler(img, ImageOptions{X: 0, Y: 0})
	require.NoError(t, err)

	got, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, colour.Hex("#ff0000"), got, "coordinates are relative to the top-left corner")
}

func TestImageSamplerRejects(t *testing.T) {
	img := splitImage(4, 4, 2, red, blue)

	_, err := NewImageSampler(img, ImageOptions{X: 4, Y: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewImageSampler(img, ImageOptions{X: -1, Y: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewImageSampler(img, ImageOptions{Radius: -1})
	assert.Error(t, err)

	_, err = NewImageSampler(img, ImageOptions{Mode: "median"})
	assert.Error(t, err)

	_, err = NewImageSampler(image.NewRGBA(image.Rect(0, 0, 0, 0)), ImageOptions{})
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = NewImageSampler(nil, ImageOptions{})
	assert.Error(t, err)
}

func TestImageSamplerDominant(t *testing.T) {
	img := splitImage(10, 10, 7, red, blue)

	s, err := NewImageSampler(img, ImageOptions{Mode: ModeDominant})
	require.NoError(t, err)

	got, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, colour.Hex("#ff0000"), got)

	clusters, err := s.Clusters(context.Background())
	require.NoError(t, err)
	require.Len(t, clusters, 2)
	assert.InDelta(t, 0.7, clusters[0].Weight, 1e-9)
	assert.InDelta(t, 0.3, clusters[1].Weight, 1e-9)
}

func TestImageSamplerCancelled(t *testing.T) {
	s, err := NewImageSampler(splitImage(2, 2, 1, red, blue), ImageOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Sample(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenImageSampler(t *testing.T) {
	path := writePNG(t, splitImage(8, 8, 4, red, blue))

	s, err := OpenImageSampler(path, ImageOptions{X: 6, Y: 1})
	require.NoError(t, err)

	got, err := s.Sample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, colour.Hex("#0000ff"), got)
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage("")
	assert.Error(t, err)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = LoadImage(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o600))
	_, err = LoadImage(garbage)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode image")
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.JPG"))
	assert.True(t, IsImageFile("/tmp/a.webp"))
	assert.False(t, IsImageFile("notes.txt"))
	assert.False(t, IsImageFile("noext"))
}
