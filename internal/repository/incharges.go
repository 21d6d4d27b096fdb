package repository

import (
	"context"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (r *Repository) CreateIncharge(incharge *domain.Incharge) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO incharges (username, password_hash, full_name, email, role, assigned_group)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_active, created_at, version
	`

	args := []any{incharge.Username, incharge.PasswordHash, incharge.FullName, incharge.Email, incharge.Role, incharge.AssignedGroup}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&incharge.ID, &incharge.IsActive, &incharge.CreatedAt, &incharge.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetInchargeByID(id int64) (*domain.Incharge, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, assigned_group, is_active, created_at, version
		FROM incharges WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	incharge := &domain.Incharge{
		ID: id,
	}

	dst := []any{&incharge.Username, &incharge.PasswordHash, &incharge.FullName, &incharge.Email, &incharge.Role, &incharge.AssignedGroup, &incharge.IsActive, &incharge.CreatedAt, &incharge.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return incharge, nil
}

func (r *Repository) GetInchargeByUsername(username string) (*domain.Incharge, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, assigned_group, is_active, created_at, version
		FROM incharges WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	incharge := &domain.Incharge{
		Username: username,
	}

	dst := []any{&incharge.ID, &incharge.PasswordHash, &incharge.FullName, &incharge.Email, &incharge.Role, &incharge.AssignedGroup, &incharge.IsActive, &incharge.CreatedAt, &incharge.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return incharge, nil
}

func (r *Repository) GetAllIncharges() ([]*domain.Incharge, error) {
	query := `
		SELECT id, username, password_hash, full_name, email, role, assigned_group, is_active, created_at, version
		FROM incharges
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incharges := make([]*domain.Incharge, 0)
	for rows.Next() {
		incharge := &domain.Incharge{}
		dst := []any{&incharge.ID, &incharge.Username, &incharge.PasswordHash, &incharge.FullName, &incharge.Email, &incharge.Role, &incharge.AssignedGroup, &incharge.IsActive, &incharge.CreatedAt, &incharge.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		incharges = append(incharges, incharge)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return incharges, nil
}

// GetGroupInchargeEmails returns the addresses of active incharges assigned
// to the group, used to deliver the completed-session duty report.
func (r *Repository) GetGroupInchargeEmails(group domain.Group) ([]string, error) {
	query := `
		SELECT email FROM incharges
		WHERE is_active = TRUE AND (assigned_group = $1 OR role = $2)
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, group, domain.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := make([]string, 0)
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return emails, nil
}

func (r *Repository) UpdateIncharge(incharge *domain.Incharge) error {
	query := `
		UPDATE incharges
		SET
			password_hash = $1,
			email = $2,
			role = $3,
			assigned_group = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING username, full_name, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{incharge.PasswordHash, incharge.Email, incharge.Role, incharge.AssignedGroup, incharge.IsActive, incharge.ID, incharge.Version}
	dst := []any{&incharge.Username, &incharge.FullName, &incharge.CreatedAt, &incharge.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteIncharge(id int64) error {
	query := `
		DELETE FROM incharges WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM incharges WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}
