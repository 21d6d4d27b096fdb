package handler

import (
	"net/http"
	"strings"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
	"github.com/skrm-sewa/duty-tracker/backend/internal/dutycore"
)

// GetSessionReport aggregates the session's attendance into the duty report:
// per-band manpower totals, the per-point deployment table and the full
// record listing. Works on open sessions too, so incharges can watch coverage
// live.
func (h *Handler) GetSessionReport(w http.ResponseWriter, r *http.Request) {
	session := r.Context().Value(SessionCtx).(*domain.DutySession)

	var (
		records []domain.AttendanceRecord
		err     error
	)
	if session.Completed {
		persisted, err := h.repository.GetSessionRecords(session.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		records = make([]domain.AttendanceRecord, len(persisted))
		for i, rec := range persisted {
			records[i] = *rec
		}
	} else {
		records, err = h.store.ListBySession(session.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	report, err := h.buildSessionReport(session, records)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched session report", report)
}

func (h *Handler) buildSessionReport(session *domain.DutySession, records []domain.AttendanceRecord) (*domain.SessionReportMailData, error) {
	totals := dutycore.ShiftTotals(records, h.bands)

	shiftTotals := make([]domain.ShiftTotalRow, 0, len(h.bands))
	for _, band := range h.bands {
		shiftTotals = append(shiftTotals, domain.ShiftTotalRow{
			Band:  string(band.ID),
			Slot:  band.Slot(),
			Count: totals[band.ID],
		})
	}

	deployment := make([]domain.DeploymentRow, 0)
	for _, row := range dutycore.DeploymentTable(records, h.bands) {
		counts := make(map[string]int, len(row.Counts))
		for id, n := range row.Counts {
			counts[string(id)] = n
		}
		deployment = append(deployment, domain.DeploymentRow{
			Location: row.Location,
			Point:    row.Point,
			Counts:   counts,
			Total:    row.Total,
		})
	}

	incharges, err := h.repository.GetAllIncharges()
	if err != nil {
		return nil, err
	}
	inchargeNames := make(map[int64]string, len(incharges))
	for _, incharge := range incharges {
		inchargeNames[incharge.ID] = incharge.FullName
	}

	rows := make([]domain.ReportRecordRow, 0, len(records))
	present := make(map[int64]bool)
	for i := range records {
		rec := records[i]
		present[rec.SewadarID] = true
		rows = append(rows, domain.ReportRecordRow{
			SewadarName: rec.SewadarName,
			Group:       string(rec.Group),
			Location:    rec.Location,
			Point:       rec.Point,
			InTime:      rec.InTime,
			OutTime:     rec.OutTime,
			Duration:    dutycore.RecordDuration(rec),
			MarkedBy:    inchargeNames[rec.MarkedBy],
		})
	}

	vehicles, err := h.repository.GetSessionVehicleRecords(session.ID)
	if err != nil {
		return nil, err
	}
	issues, err := h.repository.GetSessionIssues(session.ID)
	if err != nil {
		return nil, err
	}

	return &domain.SessionReportMailData{
		Group:        string(session.Group),
		Date:         session.Date,
		Start:        session.Start.Format("2006-01-02 15:04"),
		End:          session.End.Format("2006-01-02 15:04"),
		Locations:    strings.Join(session.Locations, ", "),
		TotalPresent: len(present),
		ShiftTotals:  shiftTotals,
		Deployment:   deployment,
		Records:      rows,
		VehicleCount: len(vehicles),
		IssueCount:   len(issues),
	}, nil
}
