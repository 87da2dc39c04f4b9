package plan

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/herd"
	"github.com/okian/paddock/internal/domain/model"
)

// Reorder computes the minimal move sequence that leaves the zone's slots
// holding horses in descending rank order along the declared slot order
// (best horse in the first slot). entries must be the ranking restricted to
// this zone, best first.
//
// The permutation is resolved as a graph-cycle walk over slot indices:
// each occupied slot points at the slot its occupant must reach. Chains
// anchored on an empty slot are unwound from the empty end and cost one
// move per horse. Pure cycles have no free slot to start from, so one horse
// is parked in the holding slot first, costing cycle length + 1 moves.
// A zone already in rank order yields no instructions.
func Reorder(entries []model.RankedEntry, a *herd.Assignment, zone string) ([]model.Instruction, error) {
	z, ok := a.Zone(zone)
	if !ok {
		return nil, &herd.ValidationError{Field: "zone", Constraint: fmt.Sprintf("unknown zone %q", zone)}
	}
	if len(entries) > z.Capacity() {
		return nil, &herd.CapacityError{Zone: zone, Capacity: z.Capacity(), Requested: len(entries)}
	}

	n := z.Capacity()

	// Arena over slot indices: current occupant and desired occupant per
	// slot, horses referenced by their position in entries.
	const empty = -1
	current := make([]int, n)
	desired := make([]int, n)
	slotOf := make([]int, len(entries))
	for i := range current {
		current[i] = empty
		desired[i] = empty
	}
	for hi, e := range entries {
		h, ok := a.Horse(e.HorseID)
		if !ok || h.Zone != zone {
			return nil, &herd.ValidationError{HorseID: e.HorseID, Field: "ranking", Constraint: fmt.Sprintf("ranked horse not in zone %q", zone)}
		}
		si := z.SlotIndex(h.Slot)
		if current[si] != empty {
			return nil, &herd.ValidationError{HorseID: e.HorseID, Field: "ranking", Constraint: "duplicate horse in ranking"}
		}
		current[si] = hi
		slotOf[hi] = si
	}
	// Entry hi belongs in the hi-th declared slot; later slots stay empty.
	for hi := range entries {
		desired[hi] = hi
	}

	dest := func(hi int) int { return hi } // horse hi is destined for slot hi

	instructions := []model.Instruction{}
	resolved := make([]bool, n)
	for si := 0; si < n; si++ {
		if current[si] == desired[si] {
			resolved[si] = true // self-loop or empty slot that stays empty
		}
	}

	emit := func(hi, from, to int) {
		instructions = append(instructions, model.Move(entries[hi].HorseID, zone, z.Slots[from], zone, z.Slots[to]))
		current[to] = hi
		current[from] = empty
		slotOf[hi] = to
	}

	// Phase 1: unwind chains that end at an empty slot. The freed slot of
	// each move becomes the next hole, so the walk needs no temporary.
	for si := 0; si < n; si++ {
		if resolved[si] || current[si] != empty || desired[si] == empty {
			continue
		}
		hole := si
		for desired[hole] != empty && current[hole] == empty {
			want := desired[hole]
			from := slotOf[want]
			if from == hole || resolved[from] {
				break
			}
			emit(want, from, hole)
			resolved[hole] = true
			hole = from
		}
		resolved[hole] = true
	}

	// Phase 2: remaining mismatches are pure cycles. Park the first horse
	// in holding, rotate the cycle backwards, then bring it home.
	for si := 0; si < n; si++ {
		if resolved[si] || current[si] == empty || current[si] == desired[si] {
			continue
		}
		// Collect the cycle starting at si: slot -> destination of occupant.
		cycle := []int{si}
		for at := dest(current[si]); at != si; at = dest(current[at]) {
			cycle = append(cycle, at)
		}

		parked := current[si]
		instructions = append(instructions, model.ToHolding(entries[parked].HorseID, zone, z.Slots[si]))
		current[si] = empty

		// Walk the cycle backwards: each slot is filled by the occupant of
		// its predecessor, which frees that predecessor in turn.
		for i := len(cycle) - 1; i >= 1; i-- {
			emit(current[cycle[i]], cycle[i], cycle[(i+1)%len(cycle)])
			resolved[cycle[(i+1)%len(cycle)]] = true
		}

		// The parked horse's destination is now the only hole in the cycle.
		home := dest(parked)
		instructions = append(instructions, model.Move(entries[parked].HorseID, model.HoldingZone, model.HoldingSlot, zone, z.Slots[home]))
		current[home] = parked
		slotOf[parked] = home
		resolved[home] = true
		resolved[si] = true
	}

	// A leftover mismatch means the decomposition is broken, which is a
	// defect rather than a user error.
	for si := 0; si < n; si++ {
		if current[si] != desired[si] {
			panic(fmt.Sprintf("plan: slot %s/%s left unassigned after cycle decomposition", zone, z.Slots[si]))
		}
	}

	return instructions, nil
}
