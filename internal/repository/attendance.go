package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (r *Repository) CreateAttendanceRecord(record *domain.AttendanceRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO attendance_records (session_id, sewadar_id, sewadar_name, group_name, location, point, in_time, out_time, proper_uniform, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10)
		RETURNING id, created_at, version
	`

	args := []any{record.SessionID, record.SewadarID, record.SewadarName, record.Group, record.Location, record.Point, record.InTime, record.OutTime, record.ProperUniform, record.MarkedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAttendanceRecord(id int64) (*domain.AttendanceRecord, error) {
	query := `
		SELECT session_id, sewadar_id, sewadar_name, group_name, location, point, in_time, COALESCE(out_time, ''), proper_uniform, marked_by, created_at, version
		FROM attendance_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	record := &domain.AttendanceRecord{
		ID: id,
	}

	dst := []any{&record.SessionID, &record.SewadarID, &record.SewadarName, &record.Group, &record.Location, &record.Point, &record.InTime, &record.OutTime, &record.ProperUniform, &record.MarkedBy, &record.CreatedAt, &record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return record, nil
}

// GetSessionRecords returns the session's attendance records in insertion
// order, matching the in-memory store's ordering contract.
func (r *Repository) GetSessionRecords(sessionID int64) ([]*domain.AttendanceRecord, error) {
	query := `
		SELECT id, session_id, sewadar_id, sewadar_name, group_name, location, point, in_time, COALESCE(out_time, ''), proper_uniform, marked_by, created_at, version
		FROM attendance_records
		WHERE session_id = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRecords(rows)
}

func (r *Repository) UpdateAttendanceRecord(record *domain.AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET
			location = $1,
			point = $2,
			in_time = $3,
			out_time = NULLIF($4, ''),
			proper_uniform = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{record.Location, record.Point, record.InTime, record.OutTime, record.ProperUniform, record.ID, record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAttendanceRecord(id int64) error {
	query := `
		DELETE FROM attendance_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// DeleteSessionRecords wipes every record of the session ("danger zone"
// reset of an in-progress duty).
func (r *Repository) DeleteSessionRecords(sessionID int64) error {
	query := `
		DELETE FROM attendance_records WHERE session_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, sessionID)
	if err != nil {
		return err
	}

	return nil
}

func scanAttendanceRecords(rows *sql.Rows) ([]*domain.AttendanceRecord, error) {
	records := make([]*domain.AttendanceRecord, 0)
	for rows.Next() {
		record := &domain.AttendanceRecord{}
		dst := []any{&record.ID, &record.SessionID, &record.SewadarID, &record.SewadarName, &record.Group, &record.Location, &record.Point, &record.InTime, &record.OutTime, &record.ProperUniform, &record.MarkedBy, &record.CreatedAt, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
