// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

package transform

// A pass that rewrites the program's control flow automaton in place.
// Stop may be called from another goroutine to make a running pass
// quit at its next checkpoint, keeping whatever partial result it has
// produced.

type CFATransformationT interface {
	Run()
	Stop()
}
