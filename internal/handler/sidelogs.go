package handler

import (
	"net/http"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (h *Handler) CreateVehicleRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if session.Completed {
		h.errorResponse(w, r, "the session is already completed")
		return
	}

	var req struct {
		Type        string `json:"type" validate:"required,oneof=2-wheeler 4-wheeler"`
		PlateNumber string `json:"plateNumber" validate:"required"`
		Model       string `json:"model"`
		Remarks     string `json:"remarks"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	vehicle := &domain.VehicleRecord{
		SessionID:   session.ID,
		Type:        domain.VehicleType(req.Type),
		PlateNumber: req.PlateNumber,
		Model:       req.Model,
		Remarks:     req.Remarks,
		ReportedBy:  myInfo.ID,
	}

	if err := h.repository.CreateVehicleRecord(vehicle); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "vehicle logged", vehicle)
}

func (h *Handler) GetSessionVehicleRecords(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	vehicles, err := h.repository.GetSessionVehicleRecords(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched vehicle records", vehicles)
}

func (h *Handler) CreateIssue(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if session.Completed {
		h.errorResponse(w, r, "the session is already completed")
		return
	}

	var req struct {
		Description string `json:"description" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	issue := &domain.Issue{
		SessionID:   session.ID,
		Description: req.Description,
		ReportedBy:  myInfo.ID,
	}

	if err := h.repository.CreateIssue(issue); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "issue logged", issue)
}

func (h *Handler) GetSessionIssues(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	issues, err := h.repository.GetSessionIssues(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched issues", issues)
}
