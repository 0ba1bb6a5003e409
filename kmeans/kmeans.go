// SPDX-License-Identifier: MIT

// Package kmeans provides the clustering primitive used by the hard search:
// a Clusterer capability interface, a seeded k-means++ implementation with
// Lloyd iterations and restarts, and a name → constructor Registry.
//
// Determinism: every FitPredict call reseeds its own rand.Rand from the
// configured seed, so equal inputs give equal labels regardless of call
// order or concurrent use.
package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrUnsupportedAlgorithm is returned by Registry.New for unknown names.
	ErrUnsupportedAlgorithm = errors.New("kmeans: unsupported clustering algorithm")

	// ErrEmptyInput is returned when there are no rows or no columns.
	ErrEmptyInput = errors.New("kmeans: empty input")

	// ErrRaggedInput is returned when rows differ in length.
	ErrRaggedInput = errors.New("kmeans: rows differ in length")

	// ErrBadK is returned when k is outside [1, len(rows)].
	ErrBadK = errors.New("kmeans: k out of range")
)

// Clusterer partitions feature rows into k groups.
// Labels are in [0, k-1], one per row.
type Clusterer interface {
	FitPredict(rows [][]float64, k int) ([]int, error)
}

// KMeans is Lloyd's algorithm with k-means++ seeding and NInit restarts;
// the restart with the lowest inertia wins.
type KMeans struct {
	Seed    int64
	NInit   int
	MaxIter int
	Tol     float64
}

// Defaults mirror common k-means practice.
const (
	DefaultNInit   = 10
	DefaultMaxIter = 300
	DefaultTol     = 1e-4
)

// New returns a KMeans with default restarts, iterations and tolerance.
func New(seed int64) *KMeans {
	return &KMeans{Seed: seed, NInit: DefaultNInit, MaxIter: DefaultMaxIter, Tol: DefaultTol}
}

var _ Clusterer = (*KMeans)(nil)

// FitPredict clusters rows into k groups.
// Labels are renumbered by first appearance, so row 0 is always label 0.
func (km *KMeans) FitPredict(rows [][]float64, k int) ([]int, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	dim := len(rows[0])
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRaggedInput, i, len(r), dim)
		}
	}
	if k < 1 || k > len(rows) {
		return nil, fmt.Errorf("%w: k=%d, rows=%d", ErrBadK, k, len(rows))
	}

	nInit, maxIter := km.NInit, km.MaxIter
	if nInit < 1 {
		nInit = 1
	}
	if maxIter < 1 {
		maxIter = DefaultMaxIter
	}

	rng := rand.New(rand.NewSource(km.Seed))
	var best []int
	bestInertia := math.Inf(1)
	for run := 0; run < nInit; run++ {
		labels, inertia := km.lloyd(rows, k, maxIter, rng)
		if inertia < bestInertia {
			best, bestInertia = labels, inertia
		}
	}

	return canonical(best), nil
}

// lloyd runs one seeded restart and returns labels and inertia.
func (km *KMeans) lloyd(rows [][]float64, k, maxIter int, rng *rand.Rand) ([]int, float64) {
	centers := seedPlusPlus(rows, k, rng)
	labels := make([]int, len(rows))
	dim := len(rows[0])

	var inertia float64
	for it := 0; it < maxIter; it++ {
		inertia = assign(rows, centers, labels)

		next := make([][]float64, k)
		counts := make([]int, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, r := range rows {
			counts[labels[i]]++
			for d, v := range r {
				next[labels[i]][d] += v
			}
		}
		reseedEmpty(rows, centers, next, labels, counts)
		for c := range next {
			for d := range next[c] {
				next[c][d] /= float64(counts[c])
			}
		}

		var shift float64
		for c := range centers {
			shift += sqDist(centers[c], next[c])
		}
		centers = next
		if shift <= km.Tol*km.Tol {
			break
		}
	}
	inertia = assign(rows, centers, labels)

	return labels, inertia
}

// seedPlusPlus picks k initial centers with D² weighting.
func seedPlusPlus(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	centers = append(centers, clone(rows[rng.Intn(len(rows))]))
	d2 := make([]float64, len(rows))
	for len(centers) < k {
		var total float64
		for i, r := range rows {
			d2[i] = math.Inf(1)
			for _, c := range centers {
				if d := sqDist(r, c); d < d2[i] {
					d2[i] = d
				}
			}
			total += d2[i]
		}
		pick := rng.Intn(len(rows))
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i, d := range d2 {
				acc += d
				if acc >= target && d > 0 {
					pick = i

					break
				}
			}
		}
		centers = append(centers, clone(rows[pick]))
	}

	return centers
}

// assign writes the nearest center of each row into labels; lowest center
// index wins ties. Returns the inertia.
func assign(rows, centers [][]float64, labels []int) float64 {
	var inertia float64
	for i, r := range rows {
		best, bestD := 0, math.Inf(1)
		for c, ctr := range centers {
			if d := sqDist(r, ctr); d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD
	}

	return inertia
}

// reseedEmpty gives every empty cluster the row farthest from its current
// center. next holds per-cluster sums; the moved row leaves its old bucket.
// A row is moved at most once, and never out of a singleton cluster. An
// empty cluster with no movable row keeps its previous center.
func reseedEmpty(rows, centers, next [][]float64, labels, counts []int) {
	taken := make([]bool, len(rows))
	for c := range next {
		if counts[c] > 0 {
			continue
		}
		far := farthest(rows, centers, labels, counts, taken)
		if far < 0 {
			copy(next[c], centers[c])
			counts[c] = 1

			continue
		}
		old := labels[far]
		for d, v := range rows[far] {
			next[old][d] -= v
		}
		counts[old]--
		copy(next[c], rows[far])
		counts[c] = 1
		labels[far] = c
		taken[far] = true
	}
}

// farthest returns the movable row farthest from its center, or -1.
func farthest(rows, centers [][]float64, labels, counts []int, taken []bool) int {
	idx, far := -1, -1.0
	for i, r := range rows {
		if taken[i] || counts[labels[i]] < 2 {
			continue
		}
		if d := sqDist(r, centers[labels[i]]); d > far {
			idx, far = i, d
		}
	}

	return idx
}

// canonical renumbers labels by first appearance.
func canonical(labels []int) []int {
	remap := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		m, ok := remap[l]
		if !ok {
			m = len(remap)
			remap[l] = m
		}
		out[i] = m
	}

	return out
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}
