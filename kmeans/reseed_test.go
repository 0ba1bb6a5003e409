// SPDX-License-Identifier: MIT

package kmeans

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReseedEmpty_DistinctRowsAndBuckets(t *testing.T) {
	rows := [][]float64{{0}, {0}, {10}, {10}, {11}}
	labels := []int{0, 0, 1, 1, 1}
	counts := []int{2, 3, 0, 0}
	centers := [][]float64{{0}, {31.0 / 3}, {5}, {6}}
	next := [][]float64{{0}, {31}, {0}, {0}}

	reseedEmpty(rows, centers, next, labels, counts)

	// 11 is farthest and goes to cluster 2; cluster 3 gets a 10, not 11 again
	assert.Equal(t, []int{0, 0, 3, 1, 2}, labels)
	assert.Equal(t, []int{2, 1, 1, 1}, counts)
	assert.Equal(t, [][]float64{{0}, {10}, {11}, {10}}, next)
}

func TestReseedEmpty_NoMovableRow(t *testing.T) {
	rows := [][]float64{{1}, {2}}
	labels := []int{0, 1}
	counts := []int{1, 1, 0}
	centers := [][]float64{{1}, {2}, {7}}
	next := [][]float64{{1}, {2}, {0}}

	reseedEmpty(rows, centers, next, labels, counts)

	assert.Equal(t, []int{0, 1}, labels)
	assert.Equal(t, []int{1, 1, 1}, counts)
	assert.Equal(t, [][]float64{{1}, {2}, {7}}, next)
}
