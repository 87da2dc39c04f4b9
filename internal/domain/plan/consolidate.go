// Package plan turns a computed ranking into ordered, collision-free
// instruction sequences: consolidation merges two zones into one at fixed
// capacity, reorder achieves rank-sorted occupancy with minimal moves.
package plan

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/herd"
	"github.com/okian/paddock/internal/domain/model"
)

// Consolidate collapses zoneTwo into zoneOne after a breeding round.
// The top targetCapacity horses by rank survive; everyone else is killed,
// worst-ranked first. Survivors already in zoneOne keep their slot.
// Survivors from zoneTwo move into zoneOne slots that are free or vacated
// by kills, best mover into the earliest slot in declared order. Kills are
// emitted before moves so no move ever targets an occupied slot. After
// execution zoneOne holds exactly the survivors and zoneTwo is empty.
func Consolidate(entries []model.RankedEntry, a *herd.Assignment, zoneOne, zoneTwo string, targetCapacity int) ([]model.Instruction, error) {
	z1, ok := a.Zone(zoneOne)
	if !ok {
		return nil, &herd.ValidationError{Field: "zone_one", Constraint: fmt.Sprintf("unknown zone %q", zoneOne)}
	}
	if _, ok := a.Zone(zoneTwo); !ok {
		return nil, &herd.ValidationError{Field: "zone_two", Constraint: fmt.Sprintf("unknown zone %q", zoneTwo)}
	}
	if targetCapacity < 0 {
		return nil, &herd.ValidationError{Field: "target_capacity", Constraint: "must not be negative"}
	}
	if targetCapacity > z1.Capacity() {
		return nil, &herd.CapacityError{Zone: zoneOne, Capacity: z1.Capacity(), Requested: targetCapacity}
	}

	cut := targetCapacity
	if cut > len(entries) {
		cut = len(entries)
	}
	survivors := entries[:cut]
	killed := entries[cut:]

	killedIDs := make(map[string]struct{}, len(killed))
	instructions := []model.Instruction{}
	// Worst-ranked first, for readability of the emitted list.
	for i := len(killed) - 1; i >= 0; i-- {
		killedIDs[killed[i].HorseID] = struct{}{}
		instructions = append(instructions, model.Kill(killed[i].HorseID))
	}

	// Slots of zoneOne that end up free: never occupied, or vacated by a
	// kill. Declared slot order decides which mover lands where.
	var vacated []string
	for _, slot := range z1.Slots {
		occ, occupied := a.Occupant(zoneOne, slot)
		if !occupied {
			vacated = append(vacated, slot)
			continue
		}
		if _, dead := killedIDs[occ.ID]; dead {
			vacated = append(vacated, slot)
		}
	}

	next := 0
	for _, e := range survivors {
		h, ok := a.Horse(e.HorseID)
		if !ok {
			return nil, &herd.ValidationError{HorseID: e.HorseID, Field: "ranking", Constraint: "ranked horse not in assignment"}
		}
		if h.Zone == zoneOne {
			// Already placed; keeping its slot minimizes moves.
			continue
		}
		if next >= len(vacated) {
			// Unreachable for valid input: survivor count never exceeds
			// zoneOne slots in place plus vacated ones.
			panic(fmt.Sprintf("plan: no vacated slot left for horse %q", h.ID))
		}
		instructions = append(instructions, model.Move(h.ID, h.Zone, h.Slot, zoneOne, vacated[next]))
		next++
	}

	return instructions, nil
}
