// SPDX-License-Identifier: MIT

package cluster

import "errors"

// Sentinel errors for clustering. Configuration errors are returned before
// any vertex attribute is written.
var (
	// ErrGraphNil is returned when a nil graph is passed.
	ErrGraphNil = errors.New("cluster: graph is nil")

	// ErrBadClusterRange is returned when KMin < 2, KMax < KMin or KMax > n.
	ErrBadClusterRange = errors.New("cluster: invalid cluster range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("cluster: invalid option supplied")

	// ErrAssignmentLength is returned when an assignment does not match the index.
	ErrAssignmentLength = errors.New("cluster: assignment length does not match index")

	// ErrScoreShape is returned when the score matrix is not n×n.
	ErrScoreShape = errors.New("cluster: score matrix shape does not match index")

	// ErrTrajectoryShape is returned when a trajectory matrix is not n×n.
	ErrTrajectoryShape = errors.New("cluster: trajectory matrix shape does not match index")

	// ErrNodeOutOfRange is returned for a flagged position outside the index.
	ErrNodeOutOfRange = errors.New("cluster: node position out of range")
)
