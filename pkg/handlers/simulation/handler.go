package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Blastoche/simu-solaire/pkg/adapters"
	"github.com/Blastoche/simu-solaire/pkg/models/api"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

// Runner is the pipeline dependency of the handler. *simulation.Engine
// satisfies it.
type Runner interface {
	Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error)
}

type Handler struct {
	runner Runner
}

func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// Simulate handles POST /api/v1/simulations.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	res, err := h.runner.Run(ctx, adapters.MapSimulationRequestApiToDomain(req))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error().Err(err).Msg("simulation run failed")
		http.Error(w, "simulation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapSimulationResultDomainToApi(*res)); err != nil {
		logger.Error().Err(err).Msg("failed to encode simulation response")
	}
}
