// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

// The oracles the analysis queries about the program under analysis
// and its architecture.  Implemented by the surrounding framework;
// the analysis only reads.

type ProgramT interface {
	// All architectural registers.
	Registers() []*VariableT

	// The narrower registers written through vart: writing eax also
	// writes ax, al and ah.
	CoveredRegisters(vart *VariableT) []*VariableT

	// The wider registers that include vart: al is covered by ax and
	// eax.
	CoveringRegisters(vart *VariableT) []*VariableT

	// Whether the address lies inside a recognized library stub.
	IsStub(address AddressT) bool

	// Whether the address lies inside the analysis harness.
	IsHarness(address AddressT) bool
}
