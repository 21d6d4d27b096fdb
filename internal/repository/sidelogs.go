package repository

import (
	"context"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (r *Repository) CreateVehicleRecord(vehicle *domain.VehicleRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO vehicle_records (session_id, type, plate_number, model, remarks, reported_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	args := []any{vehicle.SessionID, vehicle.Type, vehicle.PlateNumber, vehicle.Model, vehicle.Remarks, vehicle.ReportedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vehicle.ID, &vehicle.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSessionVehicleRecords(sessionID int64) ([]*domain.VehicleRecord, error) {
	query := `
		SELECT id, session_id, type, plate_number, model, remarks, reported_by, created_at
		FROM vehicle_records
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

	vehicles := make([]*domain.VehicleRecord, 0)
	for rows.Next() {
		vehicle := &domain.VehicleRecord{}
		dst := []any{&vehicle.ID, &vehicle.SessionID, &vehicle.Type, &vehicle.PlateNumber, &vehicle.Model, &vehicle.Remarks, &vehicle.ReportedBy, &vehicle.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *Repository) CreateIssue(issue *domain.Issue) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO issues (session_id, description, reported_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	if err := r.dbpool.QueryRowContext(ctx, query, issue.SessionID, issue.Description, issue.ReportedBy).Scan(&issue.ID, &issue.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSessionIssues(sessionID int64) ([]*domain.Issue, error) {
	query := `
		SELECT id, session_id, description, reported_by, created_at
		FROM issues
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

	issues := make([]*domain.Issue, 0)
	for rows.Next() {
		issue := &domain.Issue{}
		dst := []any{&issue.ID, &issue.SessionID, &issue.Description, &issue.ReportedBy, &issue.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return issues, nil
}
