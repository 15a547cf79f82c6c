// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package cfa

import (
	"cmp"
	"fmt"
)

type AddressT uint64

// A program point: the address of a machine instruction plus the
// index of the statement within that instruction's translation.
// Locations are values, usable as map keys, and totally ordered.

type LocationT struct {
	Address AddressT
	Index   int
}

func MakeLocation(address AddressT, index int) LocationT {
	return LocationT{Address: address, Index: index}
}

func (loc LocationT) Compare(other LocationT) int {
	if c := cmp.Compare(loc.Address, other.Address); c != 0 {
		return c
	}
	return cmp.Compare(loc.Index, other.Index)
}

func (loc LocationT) String() string {
	return fmt.Sprintf("%#x.%d", uint64(loc.Address), loc.Index)
}
