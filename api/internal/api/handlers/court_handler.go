package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ecourts/api/internal/core/domain"
)

// ==============================================================================
// 1. Request Payloads (Input Validation)
// ==============================================================================

type DistrictsRequest struct {
	StateCode string `json:"state_code" validate:"required"`
}

type CourtComplexRequest struct {
	StateCode    string `json:"state_code" validate:"required"`
	DistrictCode string `json:"district_code" validate:"required"`
}

type CourtNamesRequest struct {
	StateCode    string `json:"state_code" validate:"required"`
	DistrictCode string `json:"district_code" validate:"required"`
	CourtCode    string `json:"court_code" validate:"required"`
}

type CauseListRequest struct {
	StateCode     string `json:"state_code" validate:"required"`
	DistrictCode  string `json:"district_code" validate:"required"`
	CourtCode     string `json:"court_code" validate:"required"`
	CourtNumber   string `json:"court_number" validate:"required"`
	CauseListType string `json:"cause_list_type" validate:"required,oneof=CIVIL CRIMINAL"`
	Date          string `json:"date" validate:"required,datetime=02-01-2006"`
}

// ==============================================================================
// 2. The Handler Struct (Dependency Injection)
// ==============================================================================

type CourtHandler struct {
	courts domain.CourtDirectory
	logger *slog.Logger
}

func NewCourtHandler(courts domain.CourtDirectory, logger *slog.Logger) *CourtHandler {
	return &CourtHandler{courts: courts, logger: logger}
}

// ==============================================================================
// 3. HTTP Methods
// ==============================================================================

// States handles GET /api/v1/court/states.
func (h *CourtHandler) States(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	states, err := h.courts.States(r.Context(), token)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeSuccess(w, "States retrieved successfully", states)
}

// Districts handles POST /api/v1/court/districts.
func (h *CourtHandler) Districts(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	var req DistrictsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	districts, err := h.courts.Districts(r.Context(), token, req.StateCode)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeSuccess(w, "Districts retrieved successfully", districts)
}

// Complex handles POST /api/v1/court/complex.
func (h *CourtHandler) Complex(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	var req CourtComplexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	complexes, err := h.courts.CourtComplex(r.Context(), token, req.StateCode, req.DistrictCode)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeSuccess(w, "Court complex retrieved successfully", complexes)
}

// Names handles POST /api/v1/court/names.
func (h *CourtHandler) Names(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	var req CourtNamesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	names, err := h.courts.CourtNames(r.Context(), token, req.StateCode, req.DistrictCode, req.CourtCode)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeSuccess(w, "Court names retrieved successfully", names)
}

// CauseList handles POST /api/v1/court/cause-list.
func (h *CourtHandler) CauseList(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing upstream token", nil)
		return
	}

	var req CauseListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		HandleError(w, r, err)
		return
	}

	causeType, err := domain.ParseCauseListType(req.CauseListType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid cause list type. Must be 'CIVIL' or 'CRIMINAL'", err)
		return
	}

	h.logger.Info("fetching cause list",
		slog.String("state", req.StateCode),
		slog.String("district", req.DistrictCode),
		slog.String("court", req.CourtCode),
		slog.String("date", req.Date),
		slog.String("type", req.CauseListType))

	causeList, err := h.courts.CauseList(r.Context(), token, domain.CauseListQuery{
		StateCode:    req.StateCode,
		DistrictCode: req.DistrictCode,
		CourtCode:    req.CourtCode,
		CourtNumber:  req.CourtNumber,
		Type:         causeType,
		Date:         req.Date,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}
	writeSuccess(w, "Cause list retrieved successfully", causeList)
}
