// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

import (
	"fmt"
)

// A machine register or analysis temporary.  The id is dense and
// unique, and indexes the bit sets in VarSetT.  Which variables cover
// which others (eax covering ax and al) is the architecture model's
// business; the analysis only asks (see ProgramT).

type VariableT struct {
	Name string
	Id   int
}

var nextVariableId = 0

func MakeVariable(name string) *VariableT {
	id := nextVariableId
	nextVariableId += 1
	return &VariableT{Name: name, Id: id}
}

func (vart *VariableT) String() string {
	return fmt.Sprintf("%s_%d", vart.Name, vart.Id)
}
