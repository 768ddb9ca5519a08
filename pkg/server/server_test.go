package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Blastoche/simu-solaire/pkg/models/api"
	"github.com/Blastoche/simu-solaire/pkg/models/domain"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, req domain.SimulationRequest) (*domain.SimulationResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimulationResult), args.Error(1)
}

func newTestAPI(runner *mockRunner) *WebAPI {
	logger := zerolog.Nop()
	return NewWebAPI(logger, Config{
		Addr:            ":0",
		ShutdownTimeout: time.Second,
		Dependencies:    Dependencies{Simulator: runner},
	})
}

func TestSimulateEndpoint(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return(&domain.SimulationResult{
		Production:        domain.ProductionResult{AnnualYieldKWh: 3400, Tier: domain.TierPhysical},
		Consumption:       domain.ConsumptionResult{AnnualKWh: 4200},
		WeatherProvenance: domain.ProvenanceLive,
	}, nil)

	webAPI := newTestAPI(runner)
	body := `{"latitude": 48.85, "longitude": 2.35, "power_kw": 3, "efficiency_class": "D", "occupants": 2, "floor_area_m2": 80}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.SimulationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "physical", resp.Production.ModelTier)
	assert.Equal(t, "live", resp.WeatherProvenance)
	assert.InDelta(t, 3400, resp.Production.AnnualYieldKWh, 1e-9)
	runner.AssertExpectations(t)
}

func TestSimulateRejectsMalformedBody(t *testing.T) {
	webAPI := newTestAPI(&mockRunner{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSimulateRejectsInvalidRequest(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidRequest)

	webAPI := newTestAPI(runner)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/simulations", strings.NewReader(`{"latitude": 95}`))
	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	webAPI := newTestAPI(&mockRunner{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	webAPI.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
