package dasha

import (
	"errors"
	"time"
)

// ErrTargetOutOfRange is returned when the target instant is further from
// the birth anchor than the locator is willing to walk. At mahadasha level
// the walk bound covers well over ten thousand years in either direction,
// so only pathological inputs hit it.
var ErrTargetOutOfRange = errors.New("target instant is outside the computable timeline")

// maxChainSteps bounds the mahadasha chain walk in each direction.
const maxChainSteps = 2000

// Locate finds the stack of nested periods containing the target instant,
// one period per level from mahadasha down to the requested depth.
//
// The level-1 chain is walked forward or backward from the birth mahadasha
// until the containing period is found, generating neighbors on demand;
// nothing is materialized beyond the periods actually visited. Deeper
// levels subdivide the located parent and pick the sub-period containing
// the same target.
func Locate(a Anchor, target time.Time, depth int) (PeriodStack, error) {
	if depth < 1 {
		depth = 1
	}

	current := FirstMahadasha(a)
	for steps := 0; !current.Contains(target); steps++ {
		if steps >= maxChainSteps {
			return nil, ErrTargetOutOfRange
		}
		if target.Before(current.Start) {
			current = PrevMahadasha(current)
		} else {
			current = NextMahadasha(current)
		}
	}

	stack := PeriodStack{current}
	for level := 2; level <= depth; level++ {
		parent := stack[len(stack)-1]
		located := false
		for _, sub := range SubPeriods(parent) {
			if sub.Contains(target) {
				stack = append(stack, sub)
				located = true
				break
			}
		}
		if !located {
			// Unreachable while sub-chains tile the parent exactly.
			return nil, ErrTargetOutOfRange
		}
	}
	return stack, nil
}

// FutureMahadashas enumerates the n mahadashas that follow current, in
// chronological order.
func FutureMahadashas(current Period, n int) []Period {
	periods := make([]Period, 0, n)
	p := current
	for k := 0; k < n; k++ {
		p = NextMahadasha(p)
		periods = append(periods, p)
	}
	return periods
}
