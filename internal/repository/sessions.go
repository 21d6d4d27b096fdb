package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (r *Repository) CreateSession(session *domain.DutySession) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO duty_sessions (date, group_name, start_at, end_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed, created_at, version
	`
	args := []any{session.Date, session.Group, session.Start, session.End}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&session.ID, &session.Completed, &session.CreatedAt, &session.Version); err != nil {
		return err
	}

	for _, location := range session.Locations {
		query = `
			INSERT INTO duty_session_locations (session_id, location)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, session.ID, location); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSessionByID(id int64) (*domain.DutySession, error) {
	query := `
		SELECT
			ds.date,
			ds.group_name,
			ds.start_at,
			ds.end_at,
			ds.completed,
			ds.created_at,
			ds.version,
			dsl.location
		FROM duty_sessions ds
		LEFT JOIN duty_session_locations dsl ON ds.id = dsl.session_id
		WHERE ds.id = $1
		ORDER BY dsl.location
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var session *domain.DutySession
	for rows.Next() {
		if session == nil {
			session = &domain.DutySession{ID: id, Locations: make([]string, 0)}
		}

		var location sql.NullString
		dst := []any{&session.Date, &session.Group, &session.Start, &session.End, &session.Completed, &session.CreatedAt, &session.Version, &location}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if location.Valid {
			session.Locations = append(session.Locations, location.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if session == nil {
		return nil, sql.ErrNoRows
	}

	return session, nil
}

func (r *Repository) GetAllSessions() ([]*domain.DutySession, error) {
	return r.getSessions("", "")
}

func (r *Repository) GetSessionsByGroup(group domain.Group) ([]*domain.DutySession, error) {
	return r.getSessions(string(group), "")
}

func (r *Repository) GetSessionsByDate(date string) ([]*domain.DutySession, error) {
	return r.getSessions("", date)
}

func (r *Repository) getSessions(group string, date string) ([]*domain.DutySession, error) {
	query := `
		SELECT
			ds.id,
			ds.date,
			ds.group_name,
			ds.start_at,
			ds.end_at,
			ds.completed,
			ds.created_at,
			ds.version,
			dsl.location
		FROM duty_sessions ds
		LEFT JOIN duty_session_locations dsl ON ds.id = dsl.session_id
		WHERE ($1 = '' OR ds.group_name = $1) AND ($2 = '' OR ds.date = $2)
		ORDER BY ds.date DESC, ds.id, dsl.location
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, group, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.DutySession, 0)
	var current *domain.DutySession

	for rows.Next() {
		var row struct {
			ID        int64
			Date      string
			Group     domain.Group
			Start     time.Time
			End       time.Time
			Completed bool
			CreatedAt time.Time
			Version   int32
			Location  sql.NullString
		}

		dst := []any{&row.ID, &row.Date, &row.Group, &row.Start, &row.End, &row.Completed, &row.CreatedAt, &row.Version, &row.Location}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if current == nil || current.ID != row.ID {
			current = &domain.DutySession{
				ID:        row.ID,
				Date:      row.Date,
				Group:     row.Group,
				Start:     row.Start,
				End:       row.End,
				Completed: row.Completed,
				CreatedAt: row.CreatedAt,
				Version:   row.Version,
				Locations: make([]string, 0),
			}
			sessions = append(sessions, current)
		}

		if row.Location.Valid {
			current.Locations = append(current.Locations, row.Location.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetOpenSessionByGroup returns the group's uncompleted session, or
// sql.ErrNoRows if every session of the group is completed. A partial unique
// index on (group_name) WHERE NOT completed guarantees at most one.
func (r *Repository) GetOpenSessionByGroup(group domain.Group) (*domain.DutySession, error) {
	query := `
		SELECT id FROM duty_sessions
		WHERE group_name = $1 AND completed = FALSE
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var id int64
	if err := r.dbpool.QueryRowContext(ctx, query, group).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetSessionByID(id)
}

func (r *Repository) UpdateSession(session *domain.DutySession) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE duty_sessions
		SET
			date = $1,
			start_at = $2,
			end_at = $3,
			completed = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	args := []any{session.Date, session.Start, session.End, session.Completed, session.ID, session.Version}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&session.CreatedAt, &session.Version); err != nil {
		return err
	}

	query = `
		DELETE FROM duty_session_locations WHERE session_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, session.ID); err != nil {
		return err
	}

	for _, location := range session.Locations {
		query = `
			INSERT INTO duty_session_locations (session_id, location)
			VALUES ($1, $2)
		`
		if _, err := tx.ExecContext(ctx, query, session.ID, location); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteSession(id int64) error {
	query := `
		DELETE FROM duty_sessions WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
