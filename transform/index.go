// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package transform

import (
	"github.com/qsphan/jakstab/cfa"
	"github.com/qsphan/jakstab/util"
)

// One direction of the edge index: live edges keyed by one of their
// endpoints.  The index is an exact view of the edge set at all
// times, so keys with no remaining edges are deleted; iterating the
// keys then only visits locations that still have edges.

type edgeIndexT map[cfa.LocationT]util.SetT[*cfa.EdgeT]

func (index edgeIndexT) add(loc cfa.LocationT, edge *cfa.EdgeT) {
	edges, found := index[loc]
	if !found {
		edges = util.NewSet[*cfa.EdgeT]()
		index[loc] = edges
	}
	edges.Add(edge)
}

func (index edgeIndexT) remove(loc cfa.LocationT, edge *cfa.EdgeT) {
	edges, found := index[loc]
	if !found {
		return
	}
	edges.Remove(edge)
	if len(edges) == 0 {
		delete(index, loc)
	}
}

func (index edgeIndexT) count(loc cfa.LocationT) int {
	return len(index[loc])
}
