// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

import (
	"golang.org/x/tools/container/intsets"
)

// A set of variables, backed by a sparse bit set indexed by variable
// id.  The liveness fixpoint copies and mutates these constantly, so
// all the operations are cheap bit-vector updates.  Always use
// pointers; the underlying bit set must not be copied by assignment.

type VarSetT struct {
	bits intsets.Sparse
}

func MakeVarSet(vars ...*VariableT) *VarSetT {
	set := &VarSetT{}
	set.AddVars(vars)
	return set
}

func (set *VarSetT) Add(vart *VariableT) {
	set.bits.Insert(vart.Id)
}

func (set *VarSetT) AddVars(vars []*VariableT) {
	for _, vart := range vars {
		set.bits.Insert(vart.Id)
	}
}

func (set *VarSetT) AddAll(other *VarSetT) {
	set.bits.UnionWith(&other.bits)
}

func (set *VarSetT) Remove(vart *VariableT) {
	set.bits.Remove(vart.Id)
}

func (set *VarSetT) RemoveVars(vars []*VariableT) {
	for _, vart := range vars {
		set.bits.Remove(vart.Id)
	}
}

func (set *VarSetT) RemoveAll(other *VarSetT) {
	set.bits.DifferenceWith(&other.bits)
}

func (set *VarSetT) Contains(vart *VariableT) bool {
	return set.bits.Has(vart.Id)
}

func (set *VarSetT) Equals(other *VarSetT) bool {
	return set.bits.Equals(&other.bits)
}

func (set *VarSetT) Copy() *VarSetT {
	result := &VarSetT{}
	result.bits.Copy(&set.bits)
	return result
}

func (set *VarSetT) Len() int {
	return set.bits.Len()
}

func (set *VarSetT) IsEmpty() bool {
	return set.bits.IsEmpty()
}

// The member ids in increasing order.
func (set *VarSetT) Ids() []int {
	return set.bits.AppendTo(nil)
}

func (set *VarSetT) String() string {
	return set.bits.String()
}
