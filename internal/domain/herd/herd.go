// Package herd models zones, slots and the horse-to-slot assignment for a
// single request, and validates that the caller supplied a consistent world.
package herd

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/model"
)

// ZoneSpec declares a zone as an ordered sequence of slot labels.
// Capacity is the sequence length; the order is the zone's declared slot
// order used by the instruction generators.
type ZoneSpec struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

// Capacity returns the number of slots in the zone.
func (z ZoneSpec) Capacity() int { return len(z.Slots) }

// SlotIndex returns the position of a slot label in declared order, or -1.
func (z ZoneSpec) SlotIndex(label string) int {
	for i, s := range z.Slots {
		if s == label {
			return i
		}
	}
	return -1
}

type location struct {
	zone string
	slot string
}

// Assignment is the validated one-to-one mapping of horses to (zone, slot)
// pairs for a single request. It is immutable once built.
type Assignment struct {
	zoneByName map[string]ZoneSpec
	occupants  map[location]model.Horse
	byID       map[string]model.Horse
}

// NewAssignment validates horses against the declared zones and builds the
// occupancy index. It fails with a *ValidationError on a duplicate horse id,
// a duplicate (zone, slot) claim, an unknown zone or slot, a stat outside
// [0,1], or use of the reserved holding location, and with a *CapacityError
// when a zone holds more horses than it has slots.
func NewAssignment(horses []model.Horse, zones []ZoneSpec) (*Assignment, error) {
	a := &Assignment{
		zoneByName: make(map[string]ZoneSpec, len(zones)),
		occupants:  make(map[location]model.Horse, len(horses)),
		byID:       make(map[string]model.Horse, len(horses)),
	}

	for _, z := range zones {
		if z.Name == model.HoldingZone {
			return nil, &ValidationError{Field: "zone", Constraint: "zone name 'holding' is reserved"}
		}
		if _, dup := a.zoneByName[z.Name]; dup {
			return nil, &ValidationError{Field: "zone", Constraint: fmt.Sprintf("duplicate zone %q", z.Name)}
		}
		seen := make(map[string]struct{}, len(z.Slots))
		for _, s := range z.Slots {
			if _, dup := seen[s]; dup {
				return nil, &ValidationError{Field: "zone", Constraint: fmt.Sprintf("duplicate slot %q in zone %q", s, z.Name)}
			}
			seen[s] = struct{}{}
		}
		a.zoneByName[z.Name] = z
	}

	counts := make(map[string]int, len(zones))
	for _, h := range horses {
		if h.ID == "" {
			return nil, &ValidationError{Field: "id", Constraint: "must not be empty"}
		}
		if _, dup := a.byID[h.ID]; dup {
			return nil, &ValidationError{HorseID: h.ID, Field: "id", Constraint: "duplicate horse id"}
		}
		for name, v := range h.Stats {
			if v < 0 || v > 1 {
				return nil, &ValidationError{
					HorseID:    h.ID,
					Field:      "stats." + name,
					Constraint: fmt.Sprintf("value %v outside [0,1]", v),
				}
			}
		}
		z, ok := a.zoneByName[h.Zone]
		if !ok {
			return nil, &ValidationError{HorseID: h.ID, Field: "zone", Constraint: fmt.Sprintf("unknown zone %q", h.Zone)}
		}
		if z.SlotIndex(h.Slot) < 0 {
			return nil, &ValidationError{
				HorseID:    h.ID,
				Field:      "slot",
				Constraint: fmt.Sprintf("unknown slot %q in zone %q", h.Slot, h.Zone),
			}
		}
		loc := location{zone: h.Zone, slot: h.Slot}
		if prev, taken := a.occupants[loc]; taken {
			return nil, &ValidationError{
				HorseID:    h.ID,
				Field:      "slot",
				Constraint: fmt.Sprintf("slot %s/%s already claimed by horse %q", h.Zone, h.Slot, prev.ID),
			}
		}
		a.occupants[loc] = h
		a.byID[h.ID] = h

		counts[h.Zone]++
		if counts[h.Zone] > z.Capacity() {
			return nil, &CapacityError{Zone: z.Name, Capacity: z.Capacity(), Requested: counts[h.Zone]}
		}
	}

	return a, nil
}

// ValidatePrimary checks that every primary stat name is carried by every
// horse. An empty selection is invalid: nothing would drive the ranking.
func ValidatePrimary(horses []model.Horse, primary model.StatSelection) error {
	if len(primary) == 0 {
		return &ValidationError{Field: "primary", Constraint: "at least one primary stat required"}
	}
	seen := make(map[string]struct{}, len(primary))
	for _, name := range primary {
		if _, dup := seen[name]; dup {
			return &ValidationError{Field: "primary", Constraint: fmt.Sprintf("duplicate primary stat %q", name)}
		}
		seen[name] = struct{}{}
	}
	for _, h := range horses {
		for _, name := range primary {
			if _, ok := h.Stats[name]; !ok {
				return &ValidationError{
					HorseID:    h.ID,
					Field:      "primary",
					Constraint: fmt.Sprintf("unknown stat %q referenced as primary", name),
				}
			}
		}
	}
	return nil
}

// Zone returns the declared spec for a zone name.
func (a *Assignment) Zone(name string) (ZoneSpec, bool) {
	z, ok := a.zoneByName[name]
	return z, ok
}

// Horse returns the horse with the given id.
func (a *Assignment) Horse(id string) (model.Horse, bool) {
	h, ok := a.byID[id]
	return h, ok
}

// Occupant returns the horse at (zone, slot), if any.
func (a *Assignment) Occupant(zone, slot string) (model.Horse, bool) {
	h, ok := a.occupants[location{zone: zone, slot: slot}]
	return h, ok
}

// Occupancy returns the number of horses in a zone.
func (a *Assignment) Occupancy(zone string) int {
	n := 0
	z, ok := a.zoneByName[zone]
	if !ok {
		return 0
	}
	for _, s := range z.Slots {
		if _, occupied := a.occupants[location{zone: zone, slot: s}]; occupied {
			n++
		}
	}
	return n
}

// FreeSlots returns the unoccupied slot labels of a zone in declared order.
func (a *Assignment) FreeSlots(zone string) []string {
	z, ok := a.zoneByName[zone]
	if !ok {
		return nil
	}
	var free []string
	for _, s := range z.Slots {
		if _, occupied := a.occupants[location{zone: zone, slot: s}]; !occupied {
			free = append(free, s)
		}
	}
	return free
}

// HorsesIn returns the horses of a zone in declared slot order.
func (a *Assignment) HorsesIn(zone string) []model.Horse {
	z, ok := a.zoneByName[zone]
	if !ok {
		return nil
	}
	var out []model.Horse
	for _, s := range z.Slots {
		if h, occupied := a.occupants[location{zone: zone, slot: s}]; occupied {
			out = append(out, h)
		}
	}
	return out
}
