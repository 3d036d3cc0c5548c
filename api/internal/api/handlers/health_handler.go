package handlers

import (
	"context"
	"net/http"
	"time"

	"ecourts/api/internal/core/domain"
)

type HealthHandler struct {
	issuer domain.TokenIssuer
}

func NewHealthHandler(issuer domain.TokenIssuer) *HealthHandler {
	return &HealthHandler{issuer: issuer}
}

// Check verifies the upstream e-courts backend is reachable and issuing
// tokens. A tight timeout keeps the probe cheap.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.issuer.FetchToken(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unhealthy: e-courts backend unreachable"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("healthy"))
}
