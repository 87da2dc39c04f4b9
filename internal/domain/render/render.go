// Package render turns rankings and instruction plans into the stable,
// human-readable lines consumed by the spreadsheet integration.
package render

import (
	"fmt"

	"github.com/okian/paddock/internal/domain/model"
)

// NoMoves is emitted when a plan contains no instructions.
const NoMoves = "No moves recommended"

// Lines renders an instruction plan, one line per instruction, in execution
// order. An empty plan renders as a single NoMoves line.
func Lines(instructions []model.Instruction) []string {
	if len(instructions) == 0 {
		return []string{NoMoves}
	}
	out := make([]string, 0, len(instructions))
	for _, in := range instructions {
		out = append(out, Line(in))
	}
	return out
}

// Line renders a single instruction.
func Line(in model.Instruction) string {
	switch in.Op {
	case model.OpKill:
		return fmt.Sprintf("Kill horse %s", in.HorseID)
	case model.OpMove:
		if in.ToZone == model.HoldingZone {
			return fmt.Sprintf("Move horse %s to holding", in.HorseID)
		}
		if in.FromZone == model.HoldingZone {
			return fmt.Sprintf("Move horse %s from holding to %s/%s", in.HorseID, in.ToZone, in.ToSlot)
		}
		return fmt.Sprintf("Move horse %s from %s/%s to %s/%s", in.HorseID, in.FromZone, in.FromSlot, in.ToZone, in.ToSlot)
	default:
		return fmt.Sprintf("Unknown instruction for horse %s", in.HorseID)
	}
}

// RankingLines renders a ranking, best horse first. Ranks are shown 1-based
// for the reader even though the engine works 0-based.
func RankingLines(entries []model.RankedEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%d. horse %s (front %d, value %.4f)", e.Rank+1, e.HorseID, e.Front, e.Value))
	}
	return out
}
