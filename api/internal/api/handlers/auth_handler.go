package handlers

import (
	"log/slog"
	"net/http"

	"ecourts/api/internal/core/domain"
)

type AuthHandler struct {
	issuer domain.TokenIssuer
	logger *slog.Logger
}

func NewAuthHandler(issuer domain.TokenIssuer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, logger: logger}
}

// IssueToken handles POST /api/v1/auth/token. The returned token goes into
// the Authorization header of every other endpoint.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.issuer.FetchToken(r.Context())
	if err != nil {
		h.logger.Error("token generation failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	writeSuccess(w,
		"Token generated successfully. Use this token in Authorization header as 'Bearer <token>' for all API requests",
		map[string]string{"token": token})
}
