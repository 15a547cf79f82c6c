// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

import (
	"cmp"
	"fmt"
)

// A directed CFA edge carrying one statement.  The target is mutable
// because edge contraction redirects edges in place; the source and
// statement are fixed at construction.

type EdgeT struct {
	source LocationT
	target LocationT
	stmt   StatementT
}

func MakeEdge(source LocationT, target LocationT, stmt StatementT) *EdgeT {
	return &EdgeT{source: source, target: target, stmt: stmt}
}

func (edge *EdgeT) Source() LocationT     { return edge.source }
func (edge *EdgeT) Target() LocationT     { return edge.target }
func (edge *EdgeT) Statement() StatementT { return edge.stmt }

func (edge *EdgeT) SetTarget(target LocationT) {
	edge.target = target
}

// Total order for deterministic iteration and deduplication: source,
// then target, then statement kind and rendering.

func (edge *EdgeT) Compare(other *EdgeT) int {
	if c := edge.source.Compare(other.source); c != 0 {
		return c
	}
	if c := edge.target.Compare(other.target); c != 0 {
		return c
	}
	if c := cmp.Compare(edge.stmt.Kind(), other.stmt.Kind()); c != 0 {
		return c
	}
	return cmp.Compare(edge.stmt.String(), other.stmt.String())
}

func (edge *EdgeT) String() string {
	return fmt.Sprintf("%s -> %s: %s", edge.source, edge.target, edge.stmt)
}
