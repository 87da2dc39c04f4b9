package herdtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/paddock/pkg/logger"
)

// Run executes the complete herd test: generate worlds, exercise all three
// operations against a live service, and verify the engine's properties on
// every response.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting paddock herd test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("herdSize", cfg.HerdSize),
		logger.Int("statCount", cfg.StatCount),
		logger.String("timeout", cfg.Timeout.String()),
	)

	if err := checkServiceHealth(ctx, cfg); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	client := newHTTPClient(cfg.Timeout)
	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("test cancelled: %w", err)
		}
		world := GenerateWorld(cfg)
		stats.WorldsGenerated++

		if err := runRound(ctx, client, cfg, world, stats); err != nil {
			stats.PropertyViolations++
			logger.Get().Error(ctx, "property violation",
				logger.Int("round", round),
				logger.Error(err),
			)
		}
		if cfg.Verbose {
			logger.Get().Info(ctx, "round completed", logger.Int("round", round))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	if stats.PropertyViolations > 0 {
		return fmt.Errorf("%d property violations in %d rounds", stats.PropertyViolations, cfg.Rounds)
	}
	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// runRound exercises /rank, /consolidate and /reorder on one world.
func runRound(ctx context.Context, client *HTTPClient, cfg *Config, world World, stats *Stats) error {
	var rankResp RankResponse
	status, err := client.PostJSON(ctx, cfg.BaseURL+"/rank", world, &rankResp)
	if err != nil || status != http.StatusOK {
		stats.RequestsFailed++
		return fmt.Errorf("rank request failed (status %d): %w", status, err)
	}
	if err := VerifyRanking(world, rankResp.Ranking); err != nil {
		return fmt.Errorf("rank properties: %w", err)
	}
	stats.RankChecks++

	target := len(world.Zones[0].Slots) - 1
	consolidateReq := struct {
		World
		ZoneOne        string `json:"zone_one"`
		ZoneTwo        string `json:"zone_two"`
		TargetCapacity int    `json:"target_capacity"`
	}{World: world, ZoneOne: world.Zones[0].Name, ZoneTwo: world.Zones[1].Name, TargetCapacity: target}

	var consolidateResp PlanResponse
	status, err = client.PostJSON(ctx, cfg.BaseURL+"/consolidate", consolidateReq, &consolidateResp)
	if err != nil || status != http.StatusOK {
		stats.RequestsFailed++
		return fmt.Errorf("consolidate request failed (status %d): %w", status, err)
	}
	if err := VerifyConsolidate(world, consolidateReq.ZoneOne, consolidateReq.ZoneTwo, target, consolidateResp); err != nil {
		return fmt.Errorf("consolidate properties: %w", err)
	}
	stats.ConsolidateChecks++

	reorderReq := struct {
		World
		Zone string `json:"zone"`
	}{World: world, Zone: world.Zones[0].Name}

	var reorderResp PlanResponse
	status, err = client.PostJSON(ctx, cfg.BaseURL+"/reorder", reorderReq, &reorderResp)
	if err != nil || status != http.StatusOK {
		stats.RequestsFailed++
		return fmt.Errorf("reorder request failed (status %d): %w", status, err)
	}
	if err := VerifyReorder(world, reorderReq.Zone, reorderResp); err != nil {
		return fmt.Errorf("reorder properties: %w", err)
	}
	stats.ReorderChecks++

	// Idempotence: reorder the already-sorted zone and expect no moves.
	occupied, err := apply(world, reorderResp.Instructions)
	if err != nil {
		return err
	}
	sortedReq := reorderReq
	sortedReq.World = Rebuild(world, occupied)

	var idempotentResp PlanResponse
	status, err = client.PostJSON(ctx, cfg.BaseURL+"/reorder", sortedReq, &idempotentResp)
	if err != nil || status != http.StatusOK {
		stats.RequestsFailed++
		return fmt.Errorf("idempotence request failed (status %d): %w", status, err)
	}
	if len(idempotentResp.Instructions) != 0 {
		return fmt.Errorf("reorder of a sorted zone emitted %d instructions", len(idempotentResp.Instructions))
	}
	stats.ReorderChecks++

	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, cfg *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(cfg.Timeout)
	resp, err := client.Get(ctx, cfg.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Any 200 counts as healthy (the endpoint serves Prometheus metrics).
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("worldsGenerated", stats.WorldsGenerated),
		logger.Int("rankChecks", stats.RankChecks),
		logger.Int("consolidateChecks", stats.ConsolidateChecks),
		logger.Int("reorderChecks", stats.ReorderChecks),
		logger.Int("propertyViolations", stats.PropertyViolations),
		logger.Int("requestsFailed", stats.RequestsFailed),
		logger.String("duration", stats.Duration.String()),
	)
}
