// SPDX-License-Identifier: MIT

// Package graphio reads signed edge lists into a core.Graph and writes
// cluster assignments.
//
// Edge list format, one edge per record:
//
//	source<sep>target[<sep>weight]
//
// The separator is ',' for .csv files and a tab otherwise. A missing weight
// means 1. Lines starting with '#' are comments, and a first record whose
// weight column is not a number is taken as a header.
package graphio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/sigclust/core"
)

var (
	// ErrMalformedRecord is returned for a record with fewer than two fields
	// or an unparseable weight.
	ErrMalformedRecord = errors.New("graphio: malformed record")

	// ErrEmptyInput is returned when the input holds no edge.
	ErrEmptyInput = errors.New("graphio: no edges in input")
)

// ReadOptions controls parsing.
type ReadOptions struct {
	// Comma is the field separator. Zero means tab.
	Comma rune

	// AllowLoops keeps self-loop records instead of rejecting them.
	AllowLoops bool
}

// SeparatorFor returns ',' for .csv paths and '\t' for anything else.
func SeparatorFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ','
	}

	return '\t'
}

// ReadEdgeListFile opens path and reads it with the separator implied by
// its extension.
func ReadEdgeListFile(path string, allowLoops bool) (*core.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graphio: %w", err)
	}
	defer f.Close()

	g, err := ReadEdgeList(f, ReadOptions{Comma: SeparatorFor(path), AllowLoops: allowLoops})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// ReadEdgeList builds a graph from an edge list. Errors carry the line
// number of the offending record.
func ReadEdgeList(r io.Reader, opts ReadOptions) (*core.Graph, error) {
	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	if cr.Comma == 0 {
		cr.Comma = '\t'
	}
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var gopts []core.GraphOption
	if opts.AllowLoops {
		gopts = append(gopts, core.WithLoops())
	}
	g := core.NewGraph(gopts...)

	first := true
	edges := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("graphio: %w", err)
		}
		line, _ := cr.FieldPos(0)
		header := first
		first = false

		if len(rec) < 2 {
			return nil, fmt.Errorf("%w: line %d: want source and target", ErrMalformedRecord, line)
		}
		u, v := strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1])
		w := 1.0
		if len(rec) > 2 && strings.TrimSpace(rec[2]) != "" {
			w, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
			if err != nil {
				if header {
					continue
				}

				return nil, fmt.Errorf("%w: line %d: weight %q", ErrMalformedRecord, line, rec[2])
			}
		}
		if _, err = g.AddEdge(u, v, w); err != nil {
			return nil, fmt.Errorf("graphio: line %d: %w", line, err)
		}
		edges++
	}
	if edges == 0 {
		return nil, ErrEmptyInput
	}

	return g, nil
}

// WriteAssignment writes "node,cluster" records in index order, preceded
// by a header.
func WriteAssignment(w io.Writer, idx *core.Index, labels []int) error {
	if len(labels) != idx.Len() {
		return fmt.Errorf("graphio: %d labels for %d vertices", len(labels), idx.Len())
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"node", "cluster"}); err != nil {
		return fmt.Errorf("graphio: %w", err)
	}
	for i, id := range idx.IDs() {
		if err := cw.Write([]string{id, strconv.Itoa(labels[i])}); err != nil {
			return fmt.Errorf("graphio: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("graphio: %w", err)
	}

	return nil
}

// WriteAssignmentFile writes the assignment to path, creating or
// truncating it.
func WriteAssignmentFile(path string, idx *core.Index, labels []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("graphio: %w", cerr)
		}
	}()

	return WriteAssignment(f, idx, labels)
}
