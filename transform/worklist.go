// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package transform

import (
	"container/heap"

	"github.com/qsphan/jakstab/cfa"
	"github.com/qsphan/jakstab/util"
)

// The locations whose live sets need recomputing.  Locations come out
// smallest first, which makes runs reproducible; correctness does not
// depend on the order.  Membership is tracked separately so that
// adding an already-pending location is a no-op.

type worklistT struct {
	queue   locationHeapT
	members util.SetT[cfa.LocationT]
}

func makeWorklist() *worklistT {
	return &worklistT{members: util.NewSet[cfa.LocationT]()}
}

func (worklist *worklistT) empty() bool {
	return len(worklist.queue) == 0
}

func (worklist *worklistT) add(loc cfa.LocationT) {
	if worklist.members.Contains(loc) {
		return
	}
	worklist.members.Add(loc)
	heap.Push(&worklist.queue, loc)
}

func (worklist *worklistT) pop() cfa.LocationT {
	if len(worklist.queue) == 0 {
		panic("popping from empty worklist")
	}
	loc := heap.Pop(&worklist.queue).(cfa.LocationT)
	worklist.members.Remove(loc)
	return loc
}

// heap.Interface over locations.

type locationHeapT []cfa.LocationT

func (queue locationHeapT) Len() int { return len(queue) }

func (queue locationHeapT) Less(i int, j int) bool {
	return queue[i].Compare(queue[j]) < 0
}

func (queue locationHeapT) Swap(i int, j int) {
	queue[i], queue[j] = queue[j], queue[i]
}

func (queue *locationHeapT) Push(x any) {
	*queue = append(*queue, x.(cfa.LocationT))
}

func (queue *locationHeapT) Pop() any {
	old := *queue
	last := len(old) - 1
	loc := old[last]
	*queue = old[:last]
	return loc
}
