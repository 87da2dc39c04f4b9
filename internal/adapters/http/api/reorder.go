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

// ReorderDependencies defines the interface for reorder operations.
type ReorderDependencies interface {
	Reorder(ctx context.Context, req service.ReorderRequest) (service.PlanResult, error)
}

// ReorderHandler handles in-zone reorder requests.
type ReorderHandler struct {
	deps ReorderDependencies
}

// NewReorderHandler creates a new reorder handler.
func NewReorderHandler(deps ReorderDependencies) *ReorderHandler {
	return &ReorderHandler{deps: deps}
}

// reorderRequest mirrors the OpenAPI schema for POST /reorder.
type reorderRequest struct {
	worldRequest
	Zone string `json:"zone"`
}

func (r reorderRequest) validate() error {
	if err := r.worldRequest.validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Zone) == "" {
		return errors.New("missing zone")
	}
	return nil
}

// HandleReorder handles POST /reorder requests.
func (h *ReorderHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	const op = "api.reorder"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	result, err := h.deps.Reorder(r.Context(), service.ReorderRequest{
		RankRequest: req.toDomain(),
		Zone:        req.Zone,
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
