package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecourts/api/internal/core/domain"
)

type CaseHandler struct {
	cases  domain.CaseFinder
	logger *slog.Logger
}

func NewCaseHandler(cases domain.CaseFinder, logger *slog.Logger) *CaseHandler {
	return &CaseHandler{cases: cases, logger: logger}
}

// GetByCNR handles GET /api/v1/cases/{cnr}.
func (h *CaseHandler) GetByCNR(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	cnr := chi.URLParam(r, "cnr")
	if err := validate.Var(cnr, "required,alphanum,min=10,max=100"); err != nil {
		HandleError(w, r, err)
		return
	}

	h.logger.Info("fetching case details", slog.String("cnr", cnr))
	details, err := h.cases.DetailsByCNR(r.Context(), token, cnr)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	writeSuccess(w, "Case details retrieved successfully", details)
}
