// ABOUTME: Health check handler for the Huma API
// ABOUTME: Reports liveness and the reachability of the shared cache

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Pinger is implemented by dependencies that can report reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health checks
type HealthHandler struct {
	checks  map[string]Pinger
	version string
}

// NewHealthHandler creates a health handler. checks may be nil.
func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Health)
}

// HealthOutput defines the output for the health check
type HealthOutput struct {
	Body struct {
		Status  string            `json:"status" doc:"ok or degraded"`
		Version string            `json:"version"`
		Checks  map[string]string `json:"checks,omitempty"`
	}
}

// Health handles the GET /healthz endpoint. A failing check degrades the
// status but still answers 200 so the process is not restarted for a
// cache outage.
func (h *HealthHandler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	out.Body.Version = h.version

	if len(h.checks) > 0 {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		out.Body.Checks = make(map[string]string, len(h.checks))
		for name, check := range h.checks {
			if err := check.Ping(ctx); err != nil {
				out.Body.Checks[name] = err.Error()
				out.Body.Status = "degraded"
				continue
			}
			out.Body.Checks[name] = "ok"
		}
	}
	return out, nil
}
