package sampler

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/swatch/internal/colour"
)

// shadedImage fills 60 pixels with four reds and 40 with four blues.
func shadedImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	reds := []uint8{255, 250, 245, 240}
	blues := []uint8{255, 250, 245, 240}
	for i := range 100 {
		x, y := i%10, i/10
		if i < 60 {
			img.Set(x, y, color.RGBA{R: reds[i%4], A: 255})
		} else {
			img.Set(x, y, color.RGBA{B: blues[i%4], A: 255})
		}
	}
	return img
}

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	return img
}

func TestClustersSeparatesHues(t *testing.T) {
	img := shadedImage()

	clusters, err := Clusters(context.Background(), img, 2, colour.NewRand(ContentSeed(img)))
	require.NoError(t, err)
	require.Len(t, clusters, 2)

	assert.InDelta(t, 0.6, clusters[0].Weight, 1e-9)
	assert.InDelta(t, 0.4, clusters[1].Weight, 1e-9)

	dominant := clusters[0].Colour
	assert.GreaterOrEqual(t, dominant.R, uint8(240))
	assert.Zero(t, dominant.G)
	assert.Zero(t, dominant.B)
}

func TestClustersDeterministic(t *testing.T) {
	img := gradientImage(64, 48)
	seed := ContentSeed(img)

	first, err := Clusters(context.Background(), img, 4, colour.NewRand(seed))
	require.NoError(t, err)
	second, err := Clusters(context.Background(), img, 4, colour.NewRand(seed))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClustersInvariants(t *testing.T) {
	img := gradientImage(100, 100)

	clusters, err := Clusters(context.Background(), img, 5, colour.NewRand(1))
	require.NoError(t, err)
	require.NotEmpty(t, clusters)
	assert.LessOrEqual(t, len(clusters), 5)

	total := 0.0
	for i, c := range clusters {
		total += c.Weight
		if i > 0 {
			assert.GreaterOrEqual(t, clusters[i-1].Weight, c.Weight, "clusters are ordered by weight")
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestClustersDefaultK(t *testing.T) {
	clusters, err := Clusters(context.Background(), gradientImage(50, 50), 0, colour.NewRand(7))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(clusters), DefaultClusters)
}

func TestClustersCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Clusters(ctx, gradientImage(50, 50), 3, colour.NewRand(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSamplePixelsLargeImage(t *testing.T) {
	pixels := samplePixels(image.NewRGBA(image.Rect(0, 0, 400, 400)))
	assert.LessOrEqual(t, len(pixels), maxSamples)
	assert.NotEmpty(t, pixels)
}

func TestContentSeed(t *testing.T) {
	a := splitImage(20, 20, 10, red, blue)
	b := splitImage(20, 20, 10, red, blue)
	c := splitImage(20, 20, 11, red, blue)

	assert.Equal(t, ContentSeed(a), ContentSeed(b))
	assert.NotEqual(t, ContentSeed(a), ContentSeed(c))
}
