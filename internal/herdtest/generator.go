package herdtest

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// Archetype ranges for generated stat values. Mixing profiles produces
// herds with real Pareto structure instead of uniform noise.
const (
	randomFloatDivisor = 1000000

	eliteMin    = 0.90
	eliteRange  = 0.10
	solidMin    = 0.60
	solidRange  = 0.25
	weakMin     = 0.05
	weakRange   = 0.40
	unevenSplit = 0.45
)

// Performance archetype cases.
const (
	caseElite = iota
	caseSolid
	caseWeak
	caseUneven
	archetypeCount
)

// randomFloat returns a random float64 in [0,1) using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomCase(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// clamp keeps generated values inside the engine's [0,1] contract.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// statValue draws one stat value for the given archetype.
func statValue(archetype int) float64 {
	switch archetype {
	case caseElite:
		return clamp(eliteMin + randomFloat()*eliteRange)
	case caseSolid:
		return clamp(solidMin + randomFloat()*solidRange)
	case caseWeak:
		return clamp(weakMin + randomFloat()*weakRange)
	case caseUneven:
		// Half the stats strong, half weak: exercises the centrality tiebreak.
		if randomFloat() < unevenSplit {
			return clamp(eliteMin + randomFloat()*eliteRange)
		}
		return clamp(weakMin + randomFloat()*weakRange)
	default:
		return randomFloat()
	}
}

// GenerateWorld builds a random world with two zones. Horses are split
// between the stable and the foals zone; each zone is declared one slot
// larger than its occupancy so empty-anchored reorder chains occur.
func GenerateWorld(cfg *Config) World {
	primary := make([]string, cfg.StatCount)
	for i := range primary {
		primary[i] = fmt.Sprintf("stat_%d", i)
	}

	stableSize := cfg.HerdSize/2 + 1
	foalsSize := cfg.HerdSize - cfg.HerdSize/2 + 1
	stable := Zone{Name: "stable", Slots: slotLabels("S", stableSize)}
	foals := Zone{Name: "foals", Slots: slotLabels("F", foalsSize)}

	horses := make([]Horse, 0, cfg.HerdSize)
	for i := 0; i < cfg.HerdSize; i++ {
		archetype := randomCase(archetypeCount)
		stats := make(map[string]float64, len(primary))
		for _, name := range primary {
			stats[name] = statValue(archetype)
		}

		var zone, slot string
		if i < cfg.HerdSize/2 {
			zone, slot = stable.Name, stable.Slots[i]
		} else {
			zone, slot = foals.Name, foals.Slots[i-cfg.HerdSize/2]
		}
		horses = append(horses, Horse{
			ID:    uuid.NewString(),
			Stats: stats,
			Zone:  zone,
			Slot:  slot,
		})
	}

	return World{Horses: horses, Primary: primary, Zones: []Zone{stable, foals}}
}

func slotLabels(prefix string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s%02d", prefix, i+1)
	}
	return labels
}
