package testkit

import (
	"fmt"

	"shunt/internal/engine"
)

// CheckTraceInvariants runs the structural checks every trace must pass:
// 1) step indexes are 0..n-1 with at least a Start and a Finished step
// 2) every step locates exactly the result's tokens
// 3) input, stack and output positions form 0..count-1; discarded positions are 0
// 4) the first step has every token in the input, the last has none in input or stack
// 5) the first and last steps have no active token; others name a known token
func CheckTraceInvariants(res *engine.Result) error {
	if res == nil {
		return fmt.Errorf("nil result")
	}
	if len(res.Steps) < 2 {
		return fmt.Errorf("trace has %d steps, want at least 2", len(res.Steps))
	}
	known := make(map[string]struct{}, len(res.Tokens))
	for _, t := range res.Tokens {
		if _, dup := known[t.ID]; dup {
			return fmt.Errorf("duplicate token id %q", t.ID)
		}
		known[t.ID] = struct{}{}
	}

	last := len(res.Steps) - 1
	for i, st := range res.Steps {
		// 1) sequence
		if st.Index != i {
			return fmt.Errorf("step %d has index %d", i, st.Index)
		}
		// 2) coverage
		if len(st.Locations) != len(known) {
			return fmt.Errorf("step %d locates %d tokens, want %d", i, len(st.Locations), len(known))
		}
		for id := range st.Locations {
			if _, ok := known[id]; !ok {
				return fmt.Errorf("step %d locates unknown token %q", i, id)
			}
		}
		// 3) contiguity
		if err := checkZones(st); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		// 5) active token
		switch {
		case i == 0 || i == last:
			if st.ActiveTokenID != "" {
				return fmt.Errorf("step %d (%s) has active token %q", i, st.Title, st.ActiveTokenID)
			}
		default:
			if _, ok := known[st.ActiveTokenID]; !ok {
				return fmt.Errorf("step %d (%s) has unknown active token %q", i, st.Title, st.ActiveTokenID)
			}
		}
	}

	// 4) endpoints
	for id, loc := range res.Steps[0].Locations {
		if loc.Zone != engine.ZoneInput {
			return fmt.Errorf("first step has %q in %v", id, loc.Zone)
		}
	}
	for id, loc := range res.Steps[last].Locations {
		if loc.Zone == engine.ZoneInput || loc.Zone == engine.ZoneStack {
			return fmt.Errorf("last step still has %q in %v", id, loc.Zone)
		}
	}
	return nil
}

func checkZones(st engine.Step) error {
	positions := make(map[engine.Zone][]bool, len(engine.Zones))
	counts := make(map[engine.Zone]int, len(engine.Zones))
	for _, loc := range st.Locations {
		counts[loc.Zone]++
	}
	for z, n := range counts {
		positions[z] = make([]bool, n)
	}
	for id, loc := range st.Locations {
		if loc.Zone == engine.ZoneDiscarded {
			if loc.Position != 0 {
				return fmt.Errorf("discarded token %q has position %d", id, loc.Position)
			}
			continue
		}
		seen := positions[loc.Zone]
		if loc.Position < 0 || loc.Position >= len(seen) {
			return fmt.Errorf("token %q at %v position %d outside 0..%d", id, loc.Zone, loc.Position, len(seen)-1)
		}
		if seen[loc.Position] {
			return fmt.Errorf("duplicate %v position %d", loc.Zone, loc.Position)
		}
		seen[loc.Position] = true
	}
	return nil
}
