package sampler

import (
	"cmp"
	"context"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/jmylchreest/swatch/internal/colour"
)

const (
	// DefaultClusters is the number of clusters used for dominant colour extraction.
	DefaultClusters = 5

	maxIterations = 20
	convergence   = 2.0
	maxSamples    = 2000
)

// Cluster is one k-means centroid and the share of sampled pixels it holds.
type Cluster struct {
	Colour colour.RGB
	Weight float64
}

// point3D represents a point in 3D RGB colour space.
type point3D struct {
	R, G, B float64
}

// distance calculates the Euclidean distance between two points in RGB space.
func (p point3D) distance(other point3D) float64 {
	dr := p.R - other.R
	dg := p.G - other.G
	db := p.B - other.B
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// samplePixels returns every pixel of small images and a regular grid of
// roughly maxSamples pixels of large ones.
func samplePixels(img image.Image) []colour.RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if totalPixels > maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)
	}

	pixels := make([]colour.RGB, 0, min(totalPixels, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, colour.ToRGB(img.At(x, y)))
			if len(pixels) >= maxSamples && step > 1 {
				return pixels
			}
		}
	}
	return pixels
}

// Clusters groups the image's pixels into at most k clusters, ordered by
// descending weight. The same image and rng seed always yield the same
// clusters. When the image has no more than k distinct colours those
// colours are returned directly.
func Clusters(ctx context.Context, img image.Image, k int, rng *rand.Rand) ([]Cluster, error) {
	if k < 1 {
		k = DefaultClusters
	}

	pixels := samplePixels(img)
	if len(pixels) == 0 {
		return nil, ErrEmptyImage
	}

	counts := make(map[colour.RGB]int)
	for _, p := range pixels {
		counts[p]++
	}

	var clusters []Cluster
	if len(counts) <= k {
		clusters = make([]Cluster, 0, len(counts))
		for rgb, n := range counts {
			clusters = append(clusters, Cluster{Colour: rgb, Weight: float64(n) / float64(len(pixels))})
		}
	} else {
		centroids, weights, err := kmeans(ctx, pixels, k, rng)
		if err != nil {
			return nil, err
		}
		clusters = make([]Cluster, 0, k)
		for i, c := range centroids {
			if weights[i] == 0 {
				continue
			}
			clusters = append(clusters, Cluster{
				Colour: colour.RGBFromFloat(c.R, c.G, c.B),
				Weight: weights[i],
			})
		}
	}

	// Map iteration order is random; sort fully so ties are stable.
	slices.SortFunc(clusters, func(a, b Cluster) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.Colour.Hex(), b.Colour.Hex())
	})

	return clusters, nil
}

// kmeans performs k-means clustering on the pixel data.
// Returns centroids and their weights (relative cluster sizes).
func kmeans(ctx context.Context, pixels []colour.RGB, k int, rng *rand.Rand) ([]point3D, []float64, error) {
	points := make([]point3D, len(pixels))
	for i, rgb := range pixels {
		points[i] = point3D{R: float64(rgb.R), G: float64(rgb.G), B: float64(rgb.B)}
	}

	centroids := initializeCentroids(points, k, rng)

	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range maxIterations {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		changed := 0
		for i, point := range points {
			nearest := findNearestCentroid(point, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}

		// Fewer than 1% of assignments changed.
		if float64(changed)/float64(len(points)) < 0.01 {
			break
		}

		newCentroids := recalculateCentroids(points, assignments, k, rng)

		totalMovement := 0.0
		for i := range centroids {
			totalMovement += centroids[i].distance(newCentroids[i])
		}
		centroids = newCentroids

		if totalMovement/float64(k) < convergence {
			break
		}
	}

	// Final assignment against the settled centroids.
	for i, point := range points {
		assignments[i] = findNearestCentroid(point, centroids)
	}

	weights := make([]float64, k)
	for _, a := range assignments {
		weights[a]++
	}
	for i := range weights {
		weights[i] /= float64(len(assignments))
	}

	return centroids, weights, nil
}

// initializeCentroids seeds centroids with k-means++.
func initializeCentroids(points []point3D, k int, rng *rand.Rand) []point3D {
	centroids := make([]point3D, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, point := range points {
			d := point.distance(centroids[findNearestCentroid(point, centroids)])
			distances[i] = d * d
			total += distances[i]
		}

		if total == 0 {
			// Every point coincides with a centroid; nudge a duplicate.
			last := centroids[len(centroids)-1]
			centroids = append(centroids, point3D{R: last.R + 0.1, G: last.G + 0.1, B: last.B + 0.1})
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}

	return centroids
}

// findNearestCentroid finds the index of the nearest centroid to a point.
func findNearestCentroid(point point3D, centroids []point3D) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, centroid := range centroids {
		if dist := point.distance(centroid); dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its points.
// Empty clusters are reseeded from a random point.
func recalculateCentroids(points []point3D, assignments []int, k int, rng *rand.Rand) []point3D {
	sums := make([]point3D, k)
	counts := make([]int, k)

	for i, point := range points {
		c := assignments[i]
		sums[c].R += point.R
		sums[c].G += point.G
		sums[c].B += point.B
		counts[c]++
	}

	centroids := make([]point3D, k)
	for i := range k {
		if counts[i] == 0 {
			centroids[i] = points[rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		centroids[i] = point3D{R: sums[i].R / n, G: sums[i].G / n, B: sums[i].B / n}
	}

	return centroids
}
