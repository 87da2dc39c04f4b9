// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/paddock/internal/app"
)

// ConsolidateDependencies defines the interface for consolidation operations.
type ConsolidateDependencies interface {
	Consolidate(ctx context.Context, req service.ConsolidateRequest) (service.PlanResult, error)
}

// ConsolidateHandler handles post-breeding consolidation requests.
type ConsolidateHandler struct {
	deps ConsolidateDependencies
}

// NewConsolidateHandler creates a new consolidate handler.
func NewConsolidateHandler(deps ConsolidateDependencies) *ConsolidateHandler {
	return &ConsolidateHandler{deps: deps}
}

// consolidateRequest mirrors the OpenAPI schema for POST /consolidate.
type consolidateRequest struct {
	worldRequest
	ZoneOne        string `json:"zone_one"`
	ZoneTwo        string `json:"zone_two"`
	TargetCapacity int    `json:"target_capacity"`
}

func (r consolidateRequest) validate() error {
	if err := r.worldRequest.validate(); err != nil {
		return err
	}
	switch {
	case strings.TrimSpace(r.ZoneOne) == "":
		return errors.New("missing zone_one")
	case strings.TrimSpace(r.ZoneTwo) == "":
		return errors.New("missing zone_two")
	case r.ZoneOne == r.ZoneTwo:
		return errors.New("zone_one and zone_two must differ")
	case r.TargetCapacity < 1:
		return errors.New("target_capacity must be positive")
	}
	return nil
}

// HandleConsolidate handles POST /consolidate requests.
func (h *ConsolidateHandler) HandleConsolidate(w http.ResponseWriter, r *http.Request) {
	const op = "api.consolidate"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req consolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.Consolidate(r.Context(), service.ConsolidateRequest{
		RankRequest:    req.toDomain(),
		ZoneOne:        req.ZoneOne,
		ZoneTwo:        req.ZoneTwo,
		TargetCapacity: req.TargetCapacity,
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{
		Ranking:      result.Entries,
		Instructions: toInstructionPayloads(result.Instructions),
		Lines:        result.Lines,
	})
}
