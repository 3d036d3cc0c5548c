package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"ecourts/api/internal/core/domain"
)

// Use a single instance of Validate, it caches struct info
var validate = validator.New()

// successResponse is the uniform success envelope every endpoint returns.
type successResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string         `json:"status"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeSuccess(w http.ResponseWriter, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(successResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{
		Status:  "error",
		Code:    status,
		Message: message,
	}
	if err != nil {
		resp.Details = map[string]any{"error": err.Error()}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// HandleError translates the domain error taxonomy into outward-facing HTTP
// statuses. The four upstream kinds stay distinguishable to callers.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unauthorized *domain.UnauthorizedError
		notFound     *domain.NotFoundError
		badRequest   *domain.RequestError
		decode       *domain.DecryptError
		validation   validator.ValidationErrors
	)

	switch {
	case errors.As(err, &unauthorized):
		writeError(w, http.StatusUnauthorized, "Authentication failed or token expired", err)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, "Resource not found", err)
	case errors.As(err, &badRequest):
		writeError(w, http.StatusBadRequest, "Bad request", err)
	case errors.As(err, &decode):
		writeError(w, http.StatusBadGateway, "Upstream response could not be decoded", err)
	case errors.As(err, &validation):
		writeError(w, http.StatusUnprocessableEntity, "Request validation failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}

// tokenFrom returns the upstream bearer token the auth middleware stored on
// the request context.
func tokenFrom(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(domain.TokenContextKey).(string)
	return token, ok && token != ""
}
