// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/sigclust/core"
	"github.com/katalvlaran/sigclust/matrix"
)

// Detection is the outcome of DetectOscillators. Positions refer to the
// run's core.Index; cluster keys are assignment labels.
type Detection struct {
	// Amplitude is max−min of each node's diagonal series.
	Amplitude []float64

	// Candidates are the positions whose amplitude exceeds the threshold,
	// ascending.
	Candidates []int

	// Oscillators are the core oscillators, ascending.
	Oscillators []int

	// Partner maps each core oscillator to its strongest anti-correlated
	// core partner; PartnerMagnitude holds that pair's magnitude.
	Partner          map[int]int
	PartnerMagnitude map[int]float64

	// Anti maps a cluster to the cluster of its oscillator's partner.
	Anti map[int]int

	// ClusterOscillator maps a cluster to its representative core oscillator.
	ClusterOscillator map[int]int
}

// Empty reports whether no core oscillator was found.
func (d *Detection) Empty() bool {
	return d == nil || len(d.Oscillators) == 0
}

func newDetection(n int) *Detection {
	return &Detection{
		Amplitude:         make([]float64, n),
		Partner:           make(map[int]int),
		PartnerMagnitude:  make(map[int]float64),
		Anti:              make(map[int]int),
		ClusterOscillator: make(map[int]int),
	}
}

// DetectOscillators finds oscillating nodes in a diffusion trajectory and
// pairs clusters through their strongest anti-correlated oscillators.
//
// A node is a candidate when the amplitude of its diagonal series is above
// opts.AmplitudeThreshold. The magnitude of a candidate pair is the
// amplitude of the difference of their series. Each cluster keeps the pair
// of largest magnitude touching it; the union of kept pairs forms the core
// oscillators. Among core oscillators each node is paired with its
// strongest partner and Anti maps cluster(x) → cluster(partner(x)).
//
// Ties are broken by index order everywhere: the first pair or node in
// ascending position order wins. With fewer than two candidates only
// Amplitude and Candidates are populated.
func DetectOscillators(traj []matrix.Matrix, idx *core.Index, a Assignment, opts Options) (*Detection, error) {
	n := idx.Len()
	if len(a) != n {
		return nil, fmt.Errorf("%w: %d != %d", ErrAssignmentLength, len(a), n)
	}
	det := newDetection(n)
	if len(traj) == 0 {
		return det, nil
	}
	for t, m := range traj {
		if m == nil || m.Rows() != n || m.Cols() != n {
			return nil, fmt.Errorf("%w: step %d", ErrTrajectoryShape, t)
		}
	}

	series := make([][]float64, n)
	for i := 0; i < n; i++ {
		s, err := matrix.DiagonalSeries(traj, i)
		if err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
		series[i] = s
		det.Amplitude[i] = amplitude(s)
		if det.Amplitude[i] > opts.AmplitudeThreshold {
			det.Candidates = append(det.Candidates, i)
		}
	}
	log := opts.logger()
	log.Info("strong oscillators", zap.Strings("nodes", positionsToIDs(idx, det.Candidates)))
	if len(det.Candidates) < 2 {
		return det, nil
	}

	// pairwise magnitudes over candidates, keyed by candidate slot
	cands := det.Candidates
	mag := make([][]float64, len(cands))
	for p := range cands {
		mag[p] = make([]float64, len(cands))
	}
	for p := 0; p < len(cands); p++ {
		for q := p + 1; q < len(cands); q++ {
			m := diffAmplitude(series[cands[p]], series[cands[q]])
			mag[p][q], mag[q][p] = m, m
		}
	}

	// strongest pair per cluster
	type pair struct{ p, q int }
	best := make(map[int]float64)
	kept := make(map[int]pair)
	for p := 0; p < len(cands); p++ {
		for q := p + 1; q < len(cands); q++ {
			m := mag[p][q]
			for _, c := range []int{a[cands[p]], a[cands[q]]} {
				if m > best[c] {
					best[c] = m
					kept[c] = pair{p, q}
				}
			}
		}
	}

	inCore := make([]bool, len(cands))
	for _, pr := range kept {
		inCore[pr.p], inCore[pr.q] = true, true
	}
	var coreSlots []int
	for p, ok := range inCore {
		if ok {
			coreSlots = append(coreSlots, p)
			det.Oscillators = append(det.Oscillators, cands[p])
		}
	}

	// strongest partner within the core set
	for x := 0; x < len(coreSlots); x++ {
		for y := x + 1; y < len(coreSlots); y++ {
			p, q := coreSlots[x], coreSlots[y]
			m := mag[p][q]
			if m > det.PartnerMagnitude[cands[p]] {
				det.Partner[cands[p]] = cands[q]
				det.PartnerMagnitude[cands[p]] = m
			}
			if m > det.PartnerMagnitude[cands[q]] {
				det.Partner[cands[q]] = cands[p]
				det.PartnerMagnitude[cands[q]] = m
			}
		}
	}

	for _, o := range det.Oscillators {
		partner, ok := det.Partner[o]
		if !ok {
			continue
		}
		c := a[o]
		if _, seen := det.Anti[c]; !seen {
			det.Anti[c] = a[partner]
		}
		if cur, seen := det.ClusterOscillator[c]; !seen || det.PartnerMagnitude[o] > det.PartnerMagnitude[cur] {
			det.ClusterOscillator[c] = o
		}
	}

	log.Info("core oscillators",
		zap.Strings("nodes", positionsToIDs(idx, det.Oscillators)),
		zap.Any("anti", det.Anti))

	return det, nil
}

// amplitude is max−min of s; 0 for an empty series.
func amplitude(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	lo, hi := s[0], s[0]
	for _, v := range s[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return hi - lo
}

// diffAmplitude is the amplitude of the element-wise difference s−u.
func diffAmplitude(s, u []float64) float64 {
	d := make([]float64, len(s))
	for t := range s {
		d[t] = s[t] - u[t]
	}

	return amplitude(d)
}

func positionsToIDs(idx *core.Index, pos []int) []string {
	out := make([]string, len(pos))
	for i, p := range pos {
		out[i] = idx.ID(p)
	}

	return out
}
