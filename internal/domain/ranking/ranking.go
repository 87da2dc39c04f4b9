// Package ranking orders a herd by the multi-criterion comparator:
// Pareto front, energy, centrality, per-stat priority, then horse id.
// Rank is a pure function of its input and always yields a strict total
// order, so identical requests produce identical rankings.
package ranking

import (
	"sort"
	"strings"

	"github.com/okian/paddock/internal/domain/model"
)

// Rank orders the herd and returns one entry per horse with a 0-based rank.
// Only primary stats drive dominance and value; non-primary stats are
// ignored. An empty herd yields an empty ranking.
func Rank(horses []model.Horse, primary model.StatSelection) []model.RankedEntry {
	if len(horses) == 0 {
		return []model.RankedEntry{}
	}

	fronts := ParetoFronts(horses, primary)

	entries := make([]model.RankedEntry, len(horses))
	for i, h := range horses {
		entries[i] = model.RankedEntry{
			HorseID:    h.ID,
			Front:      fronts[i],
			Value:      Energy(h, primary),
			Centrality: Centrality(h, primary),
		}
	}

	byID := make(map[string]model.Horse, len(horses))
	for _, h := range horses {
		byID[h.ID] = h
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return less(entries[i], entries[j], byID, primary)
	})
	for i := range entries {
		entries[i].Rank = i
	}
	return entries
}

// less is the canonical comparator: true when a ranks strictly ahead of b.
func less(a, b model.RankedEntry, byID map[string]model.Horse, primary model.StatSelection) bool {
	if a.Front != b.Front {
		return a.Front < b.Front
	}
	if a.Value != b.Value {
		return a.Value > b.Value
	}
	if a.Centrality != b.Centrality {
		return a.Centrality > b.Centrality
	}
	// Per-stat tiebreak in declared priority order, descending.
	ha, hb := byID[a.HorseID], byID[b.HorseID]
	for _, name := range primary {
		va, vb := ha.Stats[name], hb.Stats[name]
		if va != vb {
			return va > vb
		}
	}
	return strings.Compare(a.HorseID, b.HorseID) < 0
}

// ParetoFronts partitions the herd into fronts by iterative peeling and
// returns the front index per input position. Front 0 is the non-dominated
// set; each subsequent front is the non-dominated set of the remainder.
// O(n^2) per peel, fine for the herd sizes this service sees.
func ParetoFronts(horses []model.Horse, primary model.StatSelection) []int {
	fronts := make([]int, len(horses))
	remaining := make([]int, len(horses))
	for i := range horses {
		remaining[i] = i
	}

	front := 0
	for len(remaining) > 0 {
		var peeled, rest []int
		for _, i := range remaining {
			dominated := false
			for _, j := range remaining {
				if i == j {
					continue
				}
				if dominates(horses[j], horses[i], primary) {
					dominated = true
					break
				}
			}
			if dominated {
				rest = append(rest, i)
			} else {
				peeled = append(peeled, i)
			}
		}
		for _, i := range peeled {
			fronts[i] = front
		}
		remaining = rest
		front++
	}
	return fronts
}

// dominates returns true if a dominates b over the primary stats: a is >= b
// on every stat and strictly greater on at least one. Equal vectors do not
// dominate each other, so duplicates land in the same front.
func dominates(a, b model.Horse, primary model.StatSelection) bool {
	strict := false
	for _, name := range primary {
		va, vb := a.Stats[name], b.Stats[name]
		if va < vb {
			return false
		}
		if va > vb {
			strict = true
		}
	}
	return strict
}

// Energy is the sum of a horse's primary stat values (l1 norm).
func Energy(h model.Horse, primary model.StatSelection) float64 {
	sum := 0.0
	for _, name := range primary {
		sum += h.Stats[name]
	}
	return sum
}

// Centrality measures stat balance as the negative spread of the primary
// stats: 0 for a perfectly even horse, more negative the more lopsided it
// is. At equal energy a horse at 0.80/0.80 outranks one at 0.85/0.75.
// With a single primary stat the spread is always 0 (maximal centrality).
func Centrality(h model.Horse, primary model.StatSelection) float64 {
	if len(primary) == 0 {
		return 0
	}
	lo, hi := h.Stats[primary[0]], h.Stats[primary[0]]
	for _, name := range primary[1:] {
		v := h.Stats[name]
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return -(hi - lo)
}
