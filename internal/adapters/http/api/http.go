// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/internal/domain/herd"
	"github.com/okian/paddock/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	Rank(ctx context.Context, req service.RankRequest) (service.RankResult, error)
	Consolidate(ctx context.Context, req service.ConsolidateRequest) (service.PlanResult, error)
	Reorder(ctx context.Context, req service.ReorderRequest) (service.PlanResult, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	rankHandler        *RankHandler
	consolidateHandler *ConsolidateHandler
	reorderHandler     *ReorderHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		rankHandler:        NewRankHandler(deps),
		consolidateHandler: NewConsolidateHandler(deps),
		reorderHandler:     NewReorderHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", Middleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", Middleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rank", Middleware(s.rankHandler.HandleRank, "rank"))
	mux.HandleFunc("/consolidate", Middleware(s.consolidateHandler.HandleConsolidate, "consolidate"))
	mux.HandleFunc("/reorder", Middleware(s.reorderHandler.HandleReorder, "reorder"))
}

// horsePayload mirrors the OpenAPI schema for a single horse.
type horsePayload struct {
	ID    string             `json:"id"`
	Stats map[string]float64 `json:"stats"`
	Zone  string             `json:"zone"`
	Slot  string             `json:"slot"`
}

// zonePayload mirrors the OpenAPI schema for a zone declaration.
type zonePayload struct {
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
}

// worldRequest is the common body shared by all engine operations: the
// herd, the primary stat selection in priority order, and the zone specs.
type worldRequest struct {
	Horses  []horsePayload `json:"horses"`
	Primary []string       `json:"primary"`
	Zones   []zonePayload  `json:"zones"`
}

func (r worldRequest) validate() error {
	switch {
	case len(r.Horses) == 0:
		return errors.New("missing horses")
	case len(r.Primary) == 0:
		return errors.New("missing primary stats")
	case len(r.Zones) == 0:
		return errors.New("missing zones")
	}
	for i, h := range r.Horses {
		if strings.TrimSpace(h.ID) == "" {
			return errors.New("missing horse id")
		}
		if strings.TrimSpace(h.Zone) == "" || strings.TrimSpace(h.Slot) == "" {
			return errors.New("missing zone/slot for horse " + r.Horses[i].ID)
		}
	}
	for _, z := range r.Zones {
		if strings.TrimSpace(z.Name) == "" {
			return errors.New("missing zone name")
		}
		if len(z.Slots) == 0 {
			return errors.New("zone " + z.Name + " has no slots")
		}
	}
	return nil
}

// toDomain converts the wire shape to the service request.
func (r worldRequest) toDomain() service.RankRequest {
	horses := make([]model.Horse, len(r.Horses))
	for i, h := range r.Horses {
		horses[i] = model.Horse{ID: h.ID, Stats: h.Stats, Zone: h.Zone, Slot: h.Slot}
	}
	zones := make([]herd.ZoneSpec, len(r.Zones))
	for i, z := range r.Zones {
		zones[i] = herd.ZoneSpec{Name: z.Name, Slots: z.Slots}
	}
	return service.RankRequest{
		Horses:  horses,
		Primary: model.StatSelection(r.Primary),
		Zones:   zones,
	}
}

// instructionPayload mirrors the OpenAPI schema for one instruction.
type instructionPayload struct {
	Op       string `json:"op"`
	HorseID  string `json:"horse_id"`
	FromZone string `json:"from_zone,omitempty"`
	FromSlot string `json:"from_slot,omitempty"`
	ToZone   string `json:"to_zone,omitempty"`
	ToSlot   string `json:"to_slot,omitempty"`
}

type rankResponse struct {
	Ranking []model.RankedEntry `json:"ranking"`
	Lines   []string            `json:"lines"`
}

type planResponse struct {
	Ranking      []model.RankedEntry  `json:"ranking"`
	Instructions []instructionPayload `json:"instructions"`
	Lines        []string             `json:"lines"`
}

func toInstructionPayloads(instructions []model.Instruction) []instructionPayload {
	out := make([]instructionPayload, len(instructions))
	for i, in := range instructions {
		out[i] = instructionPayload{
			Op:       string(in.Op),
			HorseID:  in.HorseID,
			FromZone: in.FromZone,
			FromSlot: in.FromSlot,
			ToZone:   in.ToZone,
			ToSlot:   in.ToSlot,
		}
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError maps domain errors onto HTTP statuses: validation
// failures are the caller's fault (400), capacity failures are a semantic
// conflict with the declared zones (422), anything else is a defect (500).
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, herd.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, herd.ErrCapacity):
		writeError(w, http.StatusUnprocessableEntity, "capacity_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
