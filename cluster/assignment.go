// SPDX-License-Identifier: MIT

package cluster

import "sort"

// FuzzyLabel is the label reserved for ambiguous nodes.
const FuzzyLabel = 0

// Assignment holds one label per index position: 0 is fuzzy, ≥1 are
// ordinary clusters. Stages never mutate an Assignment they receive.
type Assignment []int

// Clone returns an independent copy.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)

	return out
}

// Labels returns the distinct labels in ascending order, FuzzyLabel included
// when present.
func (a Assignment) Labels() []int {
	seen := make(map[int]struct{}, 8)
	for _, l := range a {
		seen[l] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Ints(out)

	return out
}

// Members returns the positions carrying label l, ascending.
func (a Assignment) Members(l int) []int {
	var out []int
	for i, v := range a {
		if v == l {
			out = append(out, i)
		}
	}

	return out
}

// WithFuzzy returns a copy where every position in nodes is set to FuzzyLabel.
func (a Assignment) WithFuzzy(nodes []int) Assignment {
	out := a.Clone()
	for _, i := range nodes {
		if i >= 0 && i < len(out) {
			out[i] = FuzzyLabel
		}
	}

	return out
}
