package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
	"github.com/skrm-sewa/duty-tracker/backend/internal/utils"
)

// CreateRecord marks a sewadar in for a duty point. The record is persisted
// first so the database assigns the id, then mirrored into the in-memory
// store and announced on the live-update feed.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	var req struct {
		SewadarID     int64  `json:"sewadarID" validate:"required"`
		Location      string `json:"location"`
		Point         string `json:"point"`
		InTime        string `json:"inTime" validate:"required"`
		OutTime       string `json:"outTime"`
		ProperUniform bool   `json:"properUniform"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateRecordTimes(req.InTime, req.OutTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	canMutate, err := h.store.CanMutate(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !canMutate {
		h.errorResponse(w, r, "the session is already completed")
		return
	}

	sewadar, err := h.repository.GetSewadarByID(req.SewadarID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "sewadar not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	record := &domain.AttendanceRecord{
		SessionID:     session.ID,
		SewadarID:     sewadar.ID,
		SewadarName:   sewadar.Name,
		Group:         sewadar.HomeGroup,
		Location:      req.Location,
		Point:         req.Point,
		InTime:        req.InTime,
		OutTime:       req.OutTime,
		ProperUniform: req.ProperUniform,
		MarkedBy:      myInfo.ID,
	}

	if err := h.repository.CreateAttendanceRecord(record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if _, err := h.store.Add(*record); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ev := domain.ChangeEvent{
		Type:     domain.ChangeEventCreate,
		RecordID: record.ID,
		Record:   record,
	}
	if err := h.feed.Publish(r.Context(), ev); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "attendance marked", record)
}

// GetSessionRecords lists the session's records: from memory while the
// session is open, from the database once it is completed.
func (h *Handler) GetSessionRecords(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if session.Completed {
		records, err := h.repository.GetSessionRecords(session.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		h.successResponse(w, r, "fetched records", records)
		return
	}

	records, err := h.store.ListBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched records", records)
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	recordIDParam := chi.URLParam(r, "recordID")
	recordID, err := strconv.ParseInt(recordIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid record id")
		return
	}

	var req struct {
		Location      *string `json:"location"`
		Point         *string `json:"point"`
		InTime        *string `json:"inTime"`
		OutTime       *string `json:"outTime"`
		ProperUniform *bool   `json:"properUniform"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	canMutate, err := h.store.CanMutate(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !canMutate {
		h.errorResponse(w, r, "the session is already completed")
		return
	}

	record, err := h.repository.GetAttendanceRecord(recordID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "record not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if record.SessionID != session.ID {
		h.errorResponse(w, r, "record does not belong to this session")
		return
	}

	if req.Location != nil {
		record.Location = *req.Location
	}
	if req.Point != nil {
		record.Point = *req.Point
	}
	if req.InTime != nil {
		record.InTime = *req.InTime
	}
	if req.OutTime != nil {
		record.OutTime = *req.OutTime
	}
	if req.ProperUniform != nil {
		record.ProperUniform = *req.ProperUniform
	}

	if err := utils.ValidateRecordTimes(record.InTime, record.OutTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAttendanceRecord(record); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update record, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	patch := dutycore.RecordPatch{
		Location:      req.Location,
		Point:         req.Point,
		InTime:        req.InTime,
		OutTime:       req.OutTime,
		ProperUniform: req.ProperUniform,
	}
	if err := h.store.Update(session.ID, recordID, patch); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ev := domain.ChangeEvent{
		Type:     domain.ChangeEventUpdate,
		RecordID: record.ID,
		Record:   record,
	}
	if err := h.feed.Publish(r.Context(), ev); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "record updated", record)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	recordIDParam := chi.URLParam(r, "recordID")
	recordID, err := strconv.ParseInt(recordIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid record id")
		return
	}

	if err := h.store.Remove(session.ID, recordID); err != nil {
		switch {
		case errors.Is(err, dutycore.ErrNotFound):
			h.errorResponse(w, r, "record not found")
		case errors.Is(err, dutycore.ErrSessionClosed):
			h.errorResponse(w, r, "the session is already completed")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteAttendanceRecord(recordID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	ev := domain.ChangeEvent{
		Type:     domain.ChangeEventDelete,
		RecordID: recordID,
	}
	if err := h.feed.Publish(r.Context(), ev); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "record deleted", nil)
}
