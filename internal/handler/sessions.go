package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
	"github.com/skrm-sewa/duty-tracker/backend/internal/utils"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.Incharge)

	var req struct {
		Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
		Group     string    `json:"group" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday Ladies Global"`
		Start     time.Time `json:"start" validate:"required"`
		End       time.Time `json:"end" validate:"required"`
		Locations []string  `json:"locations" validate:"required,min=1,dive,required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	group := domain.Group(req.Group)
	if group != domain.GroupGlobal && !myInfo.CanAccessGroup(group) {
		h.errorResponse(w, r, "no access to this group's sessions")
		return
	}

	session := &domain.DutySession{
		Date:      req.Date,
		Group:     group,
		Start:     req.Start,
		End:       req.End,
		Locations: req.Locations,
	}

	if err := utils.ValidateSessionWindow(session); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateSession(session); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "duty_sessions_one_open_per_group_idx":
				h.errorResponse(w, r, "the group already has an open session")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.store.PutSession(*session)

	h.successResponse(w, r, "session created", session)
}

func (h *Handler) GetSessions(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	date := r.URL.Query().Get("date")

	var (
		sessions []*domain.DutySession
		err      error
	)
	switch {
	case group != "":
		sessions, err = h.repository.GetSessionsByGroup(domain.Group(group))
	case date != "":
		sessions, err = h.repository.GetSessionsByDate(date)
	default:
		sessions, err = h.repository.GetAllSessions()
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched sessions", sessions)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)
	h.successResponse(w, r, "fetched session", session)
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if session.Completed {
		h.errorResponse(w, r, "the session is already completed")
		return
	}

	var req struct {
		Date      *string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Start     *time.Time `json:"start"`
		End       *time.Time `json:"end"`
		Locations []string   `json:"locations" validate:"omitempty,min=1,dive,required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Date != nil {
		session.Date = *req.Date
	}
	if req.Start != nil {
		session.Start = *req.Start
	}
	if req.End != nil {
		session.End = *req.End
	}
	if req.Locations != nil {
		session.Locations = req.Locations
	}

	if err := utils.ValidateSessionWindow(session); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateSession(session); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to update session, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.store.PutSession(*session)

	h.successResponse(w, r, "session updated", session)
}

func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if err := h.repository.DeleteSession(session.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.store.EvictSession(session.ID)

	h.successResponse(w, r, "session deleted", nil)
}

// CompleteSession finalizes the session: every record must be closed, the
// completion is persisted and the aggregated duty report is mailed to the
// group's incharges. Completing an already completed session succeeds without
// doing anything again.
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	if session.Completed {
		h.successResponse(w, r, "session already completed", session)
		return
	}

	records, err := h.store.ListBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if _, err := h.store.Complete(session.ID); err != nil {
		var openErr *dutycore.OpenRecordsError
		switch {
		case errors.As(err, &openErr):
			h.errorResponse(w, r, openErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	session.Completed = true
	if err := h.repository.UpdateSession(session); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "failed to complete session, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	report, err := h.buildSessionReport(session, records)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	emails, err := h.repository.GetGroupInchargeEmails(session.Group)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, email := range emails {
		mailMessage := domain.MailMessage{
			Type: "session_report",
			To:   email,
			Data: report,
		}
		if err := h.publishMail(mailMessage); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	// finalized sessions are served from the database from here on
	h.store.EvictSession(session.ID)

	h.successResponse(w, r, "session completed", session)
}

// WipeSession clears every attendance record of an in-progress session. The
// per-record delete events keep the other instances in sync.
func (h *Handler) WipeSession(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	records, err := h.store.ListBySession(session.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.store.Wipe(session.ID); err != nil {
		switch {
		case errors.Is(err, dutycore.ErrSessionClosed):
			h.errorResponse(w, r, "the session is already completed")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.DeleteSessionRecords(session.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	for _, record := range records {
		ev := domain.ChangeEvent{
			Type:     domain.ChangeEventDelete,
			RecordID: record.ID,
		}
		if err := h.feed.Publish(r.Context(), ev); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "session records wiped", nil)
}
