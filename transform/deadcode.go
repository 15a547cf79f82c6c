// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Dead code elimination on a control flow automaton.  Removes edges
// whose statements provably cannot affect any future machine state:
// assignments to registers that are dead at the edge's target, skips,
// and, when jump threading is enabled, assumes that are the only exit
// of their source.  Each removal contracts the graph by rewiring the
// removed edge's predecessors to its target.  Contraction changes
// which registers are live, which can expose more dead edges, so
// liveness is recomputed and the rewrite repeated until a round
// removes nothing.

package transform

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/qsphan/jakstab/cfa"
	"github.com/qsphan/jakstab/util"
)

type DeadCodeEliminationT struct {
	program       cfa.ProgramT
	jumpThreading bool

	edges    util.SetT[*cfa.EdgeT]
	inEdges  edgeIndexT // live edges keyed by target
	outEdges edgeIndexT // live edges keyed by source

	liveVars    map[cfa.LocationT]*cfa.VarSetT // live set at each location
	liveInSinks *cfa.VarSetT                   // all architectural registers

	removalCount int64
	stop         atomic.Bool
}

// The CFA is taken over by the elimination: its edges are mutated in
// place and must not be touched by the caller until Run returns.
// Duplicate edges are dropped.  Malformed input is reported here;
// once constructed, a run cannot fail (other than being stopped).

func MakeDeadCodeElimination(program cfa.ProgramT, edges []*cfa.EdgeT,
	enableJumpThreading bool) (*DeadCodeEliminationT, error) {

	if program == nil {
		return nil, errors.New("dead code elimination needs a program oracle")
	}
	var badEdges error
	for i, edge := range edges {
		if edge == nil {
			badEdges = multierr.Append(badEdges, errors.Errorf("edge %d is nil", i))
		} else if edge.Statement() == nil {
			badEdges = multierr.Append(badEdges, errors.Errorf("edge %s carries no statement", edge))
		}
	}
	if badEdges != nil {
		return nil, errors.Wrap(badEdges, "malformed CFA")
	}

	sorted := slices.Clone(edges)
	slices.SortFunc(sorted, (*cfa.EdgeT).Compare)
	sorted = slices.CompactFunc(sorted,
		func(x *cfa.EdgeT, y *cfa.EdgeT) bool { return x.Compare(y) == 0 })

	dce := &DeadCodeEliminationT{
		program:       program,
		jumpThreading: enableJumpThreading,
		edges:         util.NewSet(sorted...),
		inEdges:       edgeIndexT{},
		outEdges:      edgeIndexT{},
		liveVars:      map[cfa.LocationT]*cfa.VarSetT{},
		liveInSinks:   cfa.MakeVarSet(program.Registers()...),
	}
	return dce, nil
}

// The current edge collection, in edge order.
func (dce *DeadCodeEliminationT) CFA() []*cfa.EdgeT {
	edges := dce.edges.Members()
	slices.SortFunc(edges, (*cfa.EdgeT).Compare)
	return edges
}

// The number of edges deleted so far.
func (dce *DeadCodeEliminationT) RemovalCount() int64 {
	return dce.removalCount
}

// The live set computed for loc, or nil if loc has not been analyzed.
func (dce *DeadCodeEliminationT) LiveIn(loc cfa.LocationT) *cfa.VarSetT {
	return dce.liveVars[loc]
}

// Stop makes a running Run return at its next checkpoint.  Safe to
// call from any goroutine; the flag is monotone, so a stopped
// elimination stays stopped.  The graph and live sets are left
// consistent but possibly not fully reduced.
func (dce *DeadCodeEliminationT) Stop() {
	dce.stop.Store(true)
}

// RunContext runs the elimination, stopping it early once ctx is
// done.  This is how callers bound wall-clock time.
func (dce *DeadCodeEliminationT) RunContext(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			dce.Stop()
		case <-done:
		}
	}()
	dce.Run()
	close(done)
}

func (dce *DeadCodeEliminationT) Run() {
	glog.V(1).Info("eliminating dead code")
	start := time.Now()

	worklist := makeWorklist()
	for edge := range dce.edges {
		dce.inEdges.add(edge.Target(), edge)
		dce.outEdges.add(edge.Source(), edge)
	}

	dce.removalCount = 0
	rounds := 0
	for {
		// Every edge source starts at bottom.  Sinks get the full
		// register set every round, which also picks up locations
		// whose last out edge was removed in the previous round.
		for edge := range dce.edges {
			if _, found := dce.liveVars[edge.Source()]; !found {
				dce.liveVars[edge.Source()] = cfa.MakeVarSet()
				worklist.add(edge.Source())
			}
		}
		for loc := range dce.inEdges {
			if dce.outEdges.count(loc) == 0 {
				dce.liveVars[loc] = dce.liveInSinks.Copy()
				worklist.add(loc)
			}
		}

		oldRemovalCount := dce.removalCount
		rounds += 1
		dce.fixpoint(worklist)
		// Never classify on unconverged live sets; they are an
		// under-approximation and would let live edges be removed.
		if dce.stop.Load() {
			break
		}

		deadEdges := []*cfa.EdgeT{}
		for _, edge := range dce.CFA() {
			if dce.isDeadEdge(edge) {
				deadEdges = append(deadEdges, edge)
			}
		}
		for _, deadEdge := range deadEdges {
			dce.removeEdge(deadEdge)
		}

		glog.V(2).Infof("round %d removed %d edges",
			rounds, dce.removalCount-oldRemovalCount)
		if dce.removalCount == oldRemovalCount {
			break
		}
	}

	glog.V(1).Infof("removed %d edges after %v and %d rounds",
		dce.removalCount, time.Since(start), rounds)
}

// Backward liveness to a least fixpoint.  Live sets only grow within
// a round and the lattice is the finite powerset of the variables, so
// this terminates.

func (dce *DeadCodeEliminationT) fixpoint(worklist *worklistT) {
	for !worklist.empty() && !dce.stop.Load() {
		node := worklist.pop()
		var newLive *cfa.VarSetT
		for edge := range dce.outEdges[node] {
			liveIn := dce.transfer(edge)
			if newLive == nil {
				newLive = liveIn
			} else {
				newLive.AddAll(liveIn) // join over all successors
			}
		}
		if newLive == nil {
			continue // a sink; it keeps its seeded live set
		}
		if !newLive.Equals(dce.liveVars[node]) {
			dce.liveVars[node] = newLive
			for edge := range dce.inEdges[node] {
				worklist.add(edge.Source())
			}
		}
	}
}

// The live set required at an edge's source, given the live set at
// its target.

func (dce *DeadCodeEliminationT) transfer(edge *cfa.EdgeT) *cfa.VarSetT {
	liveOut, found := dce.liveVars[edge.Target()]
	if !found {
		panic(fmt.Sprintf("no live set for %s", edge.Target()))
	}
	stmt := edge.Statement()
	live := liveOut.Copy()
	for _, vart := range stmt.DefinedVars() {
		live.Remove(vart)
		// Writing eax also kills ax, al, ah.
		live.RemoveVars(dce.program.CoveredRegisters(vart))
	}
	for _, vart := range stmt.UsedVars() {
		live.Add(vart)
		// Reading al keeps ax and eax live as well.
		live.AddVars(dce.program.CoveringRegisters(vart))
	}
	// Anything could be read inside an unknown procedure.
	if stmt.Kind() == cfa.UnknownCallStmt {
		live.AddVars(dce.program.Registers())
	}
	return live
}

func (dce *DeadCodeEliminationT) isDeadEdge(edge *cfa.EdgeT) bool {
	switch stmt := edge.Statement().(type) {
	case *cfa.AssignmentT:
		// A write nobody reads.
		return !dce.liveVars[edge.Target()].Contains(stmt.Lhs)
	case *cfa.SkipT:
		return true
	case *cfa.AssumeT:
		if !dce.jumpThreading {
			return false
		}
		// Only jumps with a single target can be threaded.
		if dce.outEdges.count(edge.Source()) != 1 {
			return false
		}
		// Calls and returns are kept for procedure detection.
		switch stmt.Instruction {
		case cfa.CallInstruction, cfa.ReturnInstruction:
			return false
		}
		// An edge with exactly one endpoint inside a stub or the
		// harness is a boundary and stays.
		if dce.program.IsStub(edge.Source().Address) != dce.program.IsStub(edge.Target().Address) {
			return false
		}
		if dce.program.IsHarness(edge.Source().Address) != dce.program.IsHarness(edge.Target().Address) {
			return false
		}
		return true
	}
	return false
}

// Deletes a dead edge and contracts the gap: everything that flowed
// into the edge's source flows to its target instead.

func (dce *DeadCodeEliminationT) removeEdge(deadEdge *cfa.EdgeT) {
	// A multi-way branch keeps all of its arms, even dead ones, until
	// the others have been removed.
	if 1 < dce.outEdges.count(deadEdge.Source()) {
		return
	}
	dce.inEdges.remove(deadEdge.Target(), deadEdge)
	dce.outEdges.remove(deadEdge.Source(), deadEdge)
	dce.edges.Remove(deadEdge)
	for _, inEdge := range dce.inEdges[deadEdge.Source()].Members() {
		dce.inEdges.remove(deadEdge.Source(), inEdge)
		inEdge.SetTarget(deadEdge.Target())
		dce.inEdges.add(inEdge.Target(), inEdge)
	}
	dce.removalCount += 1
}
