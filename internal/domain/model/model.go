// Package model contains domain models passed between layers.
package model

// Holding is the reserved pseudo-zone used to park a horse mid-rotation
// during a reorder. It is never a legal zone in caller input.
const (
	HoldingZone = "holding"
	HoldingSlot = "T1"
)

// Horse represents a single horse as supplied by the caller.
// Stats are normalized to [0,1]; Zone/Slot locate the horse at request time.
type Horse struct {
	ID    string             `json:"id"`
	Stats map[string]float64 `json:"stats"`
	Zone  string             `json:"zone"`
	Slot  string             `json:"slot"`
}

// Stat returns the named stat value and whether the horse carries it.
func (h Horse) Stat(name string) (float64, bool) {
	v, ok := h.Stats[name]
	return v, ok
}

// StatSelection lists the primary stat names in declared priority order.
// The order matters: it drives the per-stat tiebreak during ranking, so this
// is an ordered slice and never a map.
type StatSelection []string

// RankedEntry is one row of a computed ranking. Rank is 0-based and forms a
// strict total order over the input herd.
type RankedEntry struct {
	Rank       int     `json:"rank"`
	HorseID    string  `json:"horse_id"`
	Front      int     `json:"front"`
	Value      float64 `json:"value"`
	Centrality float64 `json:"centrality"`
}

// Op discriminates instruction kinds.
type Op string

// Instruction operations.
const (
	OpKill Op = "kill"
	OpMove Op = "move"
)

// Instruction is a single management action. Instructions are executed in
// slice order; a Move never targets a slot still occupied by another horse.
type Instruction struct {
	Op       Op     `json:"op"`
	HorseID  string `json:"horse_id"`
	FromZone string `json:"from_zone,omitempty"`
	FromSlot string `json:"from_slot,omitempty"`
	ToZone   string `json:"to_zone,omitempty"`
	ToSlot   string `json:"to_slot,omitempty"`
}

// Kill builds a kill instruction for the given horse.
func Kill(horseID string) Instruction {
	return Instruction{Op: OpKill, HorseID: horseID}
}

// Move builds a move instruction between two locations.
func Move(horseID, fromZone, fromSlot, toZone, toSlot string) Instruction {
	return Instruction{
		Op:       OpMove,
		HorseID:  horseID,
		FromZone: fromZone,
		FromSlot: fromSlot,
		ToZone:   toZone,
		ToSlot:   toSlot,
	}
}

// ToHolding builds a move into the reserved holding slot.
func ToHolding(horseID, fromZone, fromSlot string) Instruction {
	return Move(horseID, fromZone, fromSlot, HoldingZone, HoldingSlot)
}
