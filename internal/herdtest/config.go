package herdtest

import "time"

// Config holds configuration for a herd test run.
type Config struct {
	BaseURL   string        // Base URL of the service
	Rounds    int           // Number of generated worlds to run
	HerdSize  int           // Horses per generated world
	StatCount int           // Primary stats per generated world
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// Horse mirrors the wire schema for a single horse.
type Horse struct {
	ID    string             `json:"id"`
	Stats map[string]float64 `json:"stats"`
	Zone  string             `json:"zone"`
	Slot  string             `json:"slot"`
}

// Zone mirrors the wire schema for a zone declaration.
type Zone struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

// World is the common request body for all engine operations.
type World struct {
	Horses  []Horse  `json:"horses"`
	Primary []string `json:"primary"`
	Zones   []Zone   `json:"zones"`
}

// RankedEntry mirrors one ranking row in responses.
type RankedEntry struct {
	Rank       int     `json:"rank"`
	HorseID    string  `json:"horse_id"`
	Front      int     `json:"front"`
	Value      float64 `json:"value"`
	Centrality float64 `json:"centrality"`
}

// Instruction mirrors one plan instruction in responses.
type Instruction struct {
	Op       string `json:"op"`
	HorseID  string `json:"horse_id"`
	FromZone string `json:"from_zone"`
	FromSlot string `json:"from_slot"`
	ToZone   string `json:"to_zone"`
	ToSlot   string `json:"to_slot"`
}

// RankResponse mirrors the /rank response body.
type RankResponse struct {
	Ranking []RankedEntry `json:"ranking"`
	Lines   []string      `json:"lines"`
}

// PlanResponse mirrors the /consolidate and /reorder response bodies.
type PlanResponse struct {
	Ranking      []RankedEntry `json:"ranking"`
	Instructions []Instruction `json:"instructions"`
	Lines        []string      `json:"lines"`
}

// Stats holds test statistics.
type Stats struct {
	WorldsGenerated    int
	RankChecks         int
	ConsolidateChecks  int
	ReorderChecks      int
	PropertyViolations int
	RequestsFailed     int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
