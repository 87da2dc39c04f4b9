package herdtest

import (
	"fmt"
	"math"
)

const valueTolerance = 1e-9

// VerifyRanking checks the engine's core ranking properties against a
// locally recomputed view of the world: the output is a permutation of the
// input with strict 0-based ranks, front 0 is mutually non-dominating, and
// every reported value equals the sum of primary stats.
func VerifyRanking(world World, ranking []RankedEntry) error {
	if len(ranking) != len(world.Horses) {
		return fmt.Errorf("ranking has %d entries for %d horses", len(ranking), len(world.Horses))
	}

	byID := make(map[string]Horse, len(world.Horses))
	for _, h := range world.Horses {
		byID[h.ID] = h
	}

	seenRank := make(map[int]bool, len(ranking))
	seenID := make(map[string]bool, len(ranking))
	for i, e := range ranking {
		if e.Rank != i {
			return fmt.Errorf("entry %d carries rank %d; ranking must be emitted in rank order", i, e.Rank)
		}
		if seenRank[e.Rank] || seenID[e.HorseID] {
			return fmt.Errorf("duplicate rank %d or horse %q in ranking", e.Rank, e.HorseID)
		}
		seenRank[e.Rank] = true
		seenID[e.HorseID] = true

		h, ok := byID[e.HorseID]
		if !ok {
			return fmt.Errorf("ranked horse %q not in input", e.HorseID)
		}
		sum := 0.0
		for _, name := range world.Primary {
			sum += h.Stats[name]
		}
		if math.Abs(sum-e.Value) > valueTolerance {
			return fmt.Errorf("horse %q value %v, expected %v", e.HorseID, e.Value, sum)
		}
	}

	// Front 0 must be exactly the non-dominated set.
	for _, a := range ranking {
		if a.Front != 0 {
			continue
		}
		for _, b := range ranking {
			if b.Front == 0 && a.HorseID != b.HorseID && dominates(byID[b.HorseID], byID[a.HorseID], world.Primary) {
				return fmt.Errorf("front-0 horse %q is dominated by %q", a.HorseID, b.HorseID)
			}
		}
	}
	return nil
}

func dominates(a, b Horse, primary []string) bool {
	strict := false
	for _, name := range primary {
		if a.Stats[name] < b.Stats[name] {
			return false
		}
		if a.Stats[name] > b.Stats[name] {
			strict = true
		}
	}
	return strict
}

type location struct{ zone, slot string }

// apply executes a plan against the world's starting assignment and fails
// on any collision: a move into an occupied slot, a move of a dead or
// unknown horse, or a kill of an unknown horse.
func apply(world World, instructions []Instruction) (map[location]string, error) {
	occupied := make(map[location]string)
	at := make(map[string]location)
	for _, h := range world.Horses {
		loc := location{h.Zone, h.Slot}
		occupied[loc] = h.ID
		at[h.ID] = loc
	}

	for i, in := range instructions {
		switch in.Op {
		case "kill":
			loc, ok := at[in.HorseID]
			if !ok {
				return nil, fmt.Errorf("instruction %d kills unknown horse %q", i, in.HorseID)
			}
			delete(occupied, loc)
			delete(at, in.HorseID)
		case "move":
			from, ok := at[in.HorseID]
			if !ok {
				return nil, fmt.Errorf("instruction %d moves unknown horse %q", i, in.HorseID)
			}
			to := location{in.ToZone, in.ToSlot}
			if holder, taken := occupied[to]; taken && holder != in.HorseID {
				return nil, fmt.Errorf("instruction %d moves %q into %s/%s occupied by %q", i, in.HorseID, to.zone, to.slot, holder)
			}
			delete(occupied, from)
			occupied[to] = in.HorseID
			at[in.HorseID] = to
		default:
			return nil, fmt.Errorf("instruction %d has unknown op %q", i, in.Op)
		}
	}
	return occupied, nil
}

// VerifyConsolidate checks population preservation and the end state:
// zoneOne holds exactly the survivors, zoneTwo is empty, nobody is parked
// in holding.
func VerifyConsolidate(world World, zoneOne, zoneTwo string, target int, resp PlanResponse) error {
	kills := 0
	for _, in := range resp.Instructions {
		if in.Op == "kill" {
			kills++
		}
	}
	survivors := len(world.Horses) - kills
	want := target
	if want > len(world.Horses) {
		want = len(world.Horses)
	}
	if survivors != want {
		return fmt.Errorf("%d survivors after %d kills, expected %d", survivors, kills, want)
	}

	occupied, err := apply(world, resp.Instructions)
	if err != nil {
		return err
	}
	inOne := 0
	for loc := range occupied {
		switch loc.zone {
		case zoneOne:
			inOne++
		case zoneTwo:
			return fmt.Errorf("horse %q left in %s after consolidation", occupied[loc], zoneTwo)
		default:
			return fmt.Errorf("horse %q left in unexpected zone %q", occupied[loc], loc.zone)
		}
	}
	if inOne != want {
		return fmt.Errorf("%s holds %d horses, expected %d", zoneOne, inOne, want)
	}
	return nil
}

// VerifyReorder executes the plan and checks the zone ends rank-sorted
// along its declared slot order with no horse left in holding.
func VerifyReorder(world World, zone string, resp PlanResponse) error {
	occupied, err := apply(world, resp.Instructions)
	if err != nil {
		return err
	}
	for loc, id := range occupied {
		if loc.zone == "holding" {
			return fmt.Errorf("horse %q left in holding", id)
		}
	}

	var spec Zone
	for _, z := range world.Zones {
		if z.Name == zone {
			spec = z
		}
	}
	for i, e := range resp.Ranking {
		if id := occupied[location{zone, spec.Slots[i]}]; id != e.HorseID {
			return fmt.Errorf("slot %s/%s holds %q, expected rank-%d horse %q", zone, spec.Slots[i], id, i, e.HorseID)
		}
	}
	return nil
}

// Rebuild returns the world as it stands after executing a plan, so a
// follow-up reorder can assert idempotence (an already-sorted zone must
// yield no instructions).
func Rebuild(world World, occupied map[location]string) World {
	byID := make(map[string]Horse, len(world.Horses))
	for _, h := range world.Horses {
		byID[h.ID] = h
	}
	out := World{Primary: world.Primary, Zones: world.Zones}
	for loc, id := range occupied {
		h := byID[id]
		h.Zone = loc.zone
		h.Slot = loc.slot
		out.Horses = append(out.Horses, h)
	}
	return out
}
