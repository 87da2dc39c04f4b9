// Package service provides the core business service that implements
// the dependencies required by the HTTP API. Each operation is a pure
// function of its request: the service holds no herd state between calls,
// only configuration and counters for /stats.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/paddock/internal/domain/herd"
	"github.com/okian/paddock/internal/domain/model"
	"github.com/okian/paddock/internal/domain/plan"
	"github.com/okian/paddock/internal/domain/ranking"
	"github.com/okian/paddock/internal/domain/render"
	"github.com/okian/paddock/pkg/logger"
	"github.com/okian/paddock/pkg/metrics"
)

// Operation names used for metrics and stats.
const (
	opRank        = "rank"
	opConsolidate = "consolidate"
	opReorder     = "reorder"
)

// RankRequest carries the world for a ranking-only operation.
type RankRequest struct {
	Horses  []model.Horse
	Primary model.StatSelection
	Zones   []herd.ZoneSpec
}

// ConsolidateRequest merges ZoneTwo into ZoneOne at TargetCapacity.
type ConsolidateRequest struct {
	RankRequest
	ZoneOne        string
	ZoneTwo        string
	TargetCapacity int
}

// ReorderRequest rank-sorts the occupancy of a single zone.
type ReorderRequest struct {
	RankRequest
	Zone string
}

// RankResult is the outcome of a ranking-only operation.
type RankResult struct {
	Entries []model.RankedEntry
	Lines   []string
}

// PlanResult is the outcome of an instruction-generating operation.
type PlanResult struct {
	Entries      []model.RankedEntry
	Instructions []model.Instruction
	Lines        []string
}

// Service implements the API dependencies for the decision engine.
type Service struct {
	maxHerdSize     int
	maxPrimaryStats int
	logger          logger.Logger

	mu       sync.Mutex
	requests map[string]int64
	rejected int64
	lastHerd int
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxHerdSize caps the number of horses accepted per request.
func WithMaxHerdSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxHerdSize = n
		}
	}
}

// WithMaxPrimaryStats caps the number of primary stats per request.
func WithMaxPrimaryStats(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPrimaryStats = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxHerdSize:     10_000,
		maxPrimaryStats: 32,
		requests:        make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	return s
}

// Rank computes the full-herd ranking.
func (s *Service) Rank(ctx context.Context, req RankRequest) (RankResult, error) {
	start := time.Now()
	if _, err := s.validate(ctx, req, opRank); err != nil {
		return RankResult{}, err
	}

	entries := ranking.Rank(req.Horses, req.Primary)
	s.finish(ctx, opRank, len(req.Horses), start)
	return RankResult{Entries: entries, Lines: render.RankingLines(entries)}, nil
}

// Consolidate ranks the union of the two zones and produces the kill/move
// plan that leaves ZoneOne holding the top TargetCapacity horses and
// ZoneTwo empty.
func (s *Service) Consolidate(ctx context.Context, req ConsolidateRequest) (PlanResult, error) {
	start := time.Now()
	a, err := s.validate(ctx, req.RankRequest, opConsolidate)
	if err != nil {
		return PlanResult{}, err
	}

	union := make([]model.Horse, 0, len(req.Horses))
	for _, h := range req.Horses {
		if h.Zone == req.ZoneOne || h.Zone == req.ZoneTwo {
			union = append(union, h)
		}
	}
	entries := ranking.Rank(union, req.Primary)

	instructions, err := plan.Consolidate(entries, a, req.ZoneOne, req.ZoneTwo, req.TargetCapacity)
	if err != nil {
		s.reject(ctx, opConsolidate, err)
		return PlanResult{}, err
	}

	s.finish(ctx, opConsolidate, len(req.Horses), start)
	s.countInstructions(opConsolidate, instructions)
	return PlanResult{
		Entries:      entries,
		Instructions: instructions,
		Lines:        render.Lines(instructions),
	}, nil
}

// Reorder ranks one zone's horses and produces the minimal move plan that
// leaves the zone rank-sorted along its declared slot order.
func (s *Service) Reorder(ctx context.Context, req ReorderRequest) (PlanResult, error) {
	start := time.Now()
	a, err := s.validate(ctx, req.RankRequest, opReorder)
	if err != nil {
		return PlanResult{}, err
	}

	var zoned []model.Horse
	for _, h := range req.Horses {
		if h.Zone == req.Zone {
			zoned = append(zoned, h)
		}
	}
	entries := ranking.Rank(zoned, req.Primary)

	instructions, err := plan.Reorder(entries, a, req.Zone)
	if err != nil {
		s.reject(ctx, opReorder, err)
		return PlanResult{}, err
	}

	s.finish(ctx, opReorder, len(req.Horses), start)
	s.countInstructions(opReorder, instructions)
	return PlanResult{
		Entries:      entries,
		Instructions: instructions,
		Lines:        render.Lines(instructions),
	}, nil
}

// validate builds the per-request world and enforces service limits.
func (s *Service) validate(ctx context.Context, req RankRequest, op string) (*herd.Assignment, error) {
	if len(req.Horses) > s.maxHerdSize {
		err := &herd.ValidationError{
			Field:      "horses",
			Constraint: "herd exceeds configured maximum",
		}
		s.reject(ctx, op, err)
		return nil, err
	}
	if len(req.Primary) > s.maxPrimaryStats {
		err := &herd.ValidationError{
			Field:      "primary",
			Constraint: "primary stat selection exceeds configured maximum",
		}
		s.reject(ctx, op, err)
		return nil, err
	}
	a, err := herd.NewAssignment(req.Horses, req.Zones)
	if err != nil {
		s.reject(ctx, op, err)
		return nil, err
	}
	if err := herd.ValidatePrimary(req.Horses, req.Primary); err != nil {
		s.reject(ctx, op, err)
		return nil, err
	}
	return a, nil
}

func (s *Service) finish(ctx context.Context, op string, herdSize int, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordRanking(op)
	metrics.RecordEngineLatency(op, float64(elapsed.Microseconds())/1000.0)
	metrics.ObserveHerdSize(herdSize)

	s.mu.Lock()
	s.requests[op]++
	s.lastHerd = herdSize
	s.mu.Unlock()

	s.logger.Debug(ctx, "operation completed",
		logger.String("operation", op),
		logger.Int("herdSize", herdSize),
		logger.String("elapsed", elapsed.String()),
	)
}

func (s *Service) reject(ctx context.Context, op string, err error) {
	metrics.RecordRequestRejected(op)
	s.mu.Lock()
	s.rejected++
	s.mu.Unlock()
	s.logger.Warn(ctx, "request rejected",
		logger.String("operation", op),
		logger.Error(err),
	)
}

func (s *Service) countInstructions(op string, instructions []model.Instruction) {
	kills, moves := 0, 0
	for _, in := range instructions {
		switch in.Op {
		case model.OpKill:
			kills++
		case model.OpMove:
			moves++
		}
	}
	metrics.RecordInstructions(op, "kill", kills)
	metrics.RecordInstructions(op, "move", moves)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"maxHerdSize":      s.maxHerdSize,
		"maxPrimaryStats":  s.maxPrimaryStats,
		"rejectedRequests": s.rejected,
		"lastHerdSize":     s.lastHerd,
	}
	for op, n := range s.requests {
		stats[op+"Requests"] = n
	}
	return stats
}
