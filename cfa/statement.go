// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

import (
	"fmt"
	"strings"
)

//----------------------------------------------------------------
// Statements are the state transformers carried by CFA edges.  The
// analysis only ever looks at a statement's kind and its defined and
// used variable sets, so statement kinds it does not know about are
// treated as identity transformers with whatever variables they
// declare.

type StmtKindT int

const (
	AssignmentStmt = iota
	AssumeStmt
	SkipStmt
	UnknownCallStmt
)

type StatementT interface {
	Kind() StmtKindT
	// The variables written by the statement.
	DefinedVars() []*VariableT
	// The variables read by the statement.
	UsedVars() []*VariableT

	String() string
}

//----------------------------------------------------------------
// The classification of the instruction a statement was lifted from.
// Jump threading must not touch assumes that came from calls or
// returns.

type InstructionTypeT int

const (
	OrdinaryInstruction = iota
	CallInstruction
	ReturnInstruction
)

//----------------------------------------------------------------

// An assignment of some value computed from Uses to a single
// variable.

type AssignmentT struct {
	Lhs  *VariableT
	Uses []*VariableT
}

func (stmt *AssignmentT) Kind() StmtKindT           { return AssignmentStmt }
func (stmt *AssignmentT) DefinedVars() []*VariableT { return []*VariableT{stmt.Lhs} }
func (stmt *AssignmentT) UsedVars() []*VariableT    { return stmt.Uses }
func (stmt *AssignmentT) String() string {
	return fmt.Sprintf("%s := %s", stmt.Lhs, varsString(stmt.Uses))
}

// A branch guard.  Uses are the variables in the guard expression.

type AssumeT struct {
	Instruction InstructionTypeT
	Uses        []*VariableT
}

func (stmt *AssumeT) Kind() StmtKindT           { return AssumeStmt }
func (stmt *AssumeT) DefinedVars() []*VariableT { return nil }
func (stmt *AssumeT) UsedVars() []*VariableT    { return stmt.Uses }
func (stmt *AssumeT) String() string {
	return fmt.Sprintf("assume %s", varsString(stmt.Uses))
}

// Pure control flow, no data effect.

type SkipT struct{}

func (stmt *SkipT) Kind() StmtKindT           { return SkipStmt }
func (stmt *SkipT) DefinedVars() []*VariableT { return nil }
func (stmt *SkipT) UsedVars() []*VariableT    { return nil }
func (stmt *SkipT) String() string            { return "skip" }

// A call to a procedure the disassembler could not resolve.  Uses are
// the variables in the target expression; the callee itself may read
// any register at all, which the transfer function accounts for.

type UnknownCallT struct {
	Uses []*VariableT
}

func (stmt *UnknownCallT) Kind() StmtKindT           { return UnknownCallStmt }
func (stmt *UnknownCallT) DefinedVars() []*VariableT { return nil }
func (stmt *UnknownCallT) UsedVars() []*VariableT    { return stmt.Uses }
func (stmt *UnknownCallT) String() string {
	return fmt.Sprintf("unknown-call %s", varsString(stmt.Uses))
}

func varsString(vars []*VariableT) string {
	names := make([]string, len(vars))
	for i, vart := range vars {
		names[i] = vart.String()
	}
	return "(" + strings.Join(names, " ") + ")"
}
