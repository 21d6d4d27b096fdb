package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/skrm-sewa/duty-tracker/backend/internal/domain"
)

func (r *Repository) CreateSewadar(sewadar *domain.Sewadar) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO sewadars (name, gender, home_group, is_custom)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{sewadar.Name, sewadar.Gender, sewadar.HomeGroup, sewadar.IsCustom}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&sewadar.ID, &sewadar.CreatedAt, &sewadar.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSewadarByID(id int64) (*domain.Sewadar, error) {
	query := `
		SELECT name, gender, home_group, is_custom, created_at, version
		FROM sewadars WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	sewadar := &domain.Sewadar{
		ID: id,
	}

	dst := []any{&sewadar.Name, &sewadar.Gender, &sewadar.HomeGroup, &sewadar.IsCustom, &sewadar.CreatedAt, &sewadar.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return sewadar, nil
}

func (r *Repository) GetSewadarsByGroup(group domain.Group) ([]*domain.Sewadar, error) {
	query := `
		SELECT id, name, gender, home_group, is_custom, created_at, version
		FROM sewadars
		WHERE home_group = $1
		ORDER BY name, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSewadars(rows)
}

func (r *Repository) GetAllSewadars() ([]*domain.Sewadar, error) {
	query := `
		SELECT id, name, gender, home_group, is_custom, created_at, version
		FROM sewadars
		ORDER BY home_group, name, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSewadars(rows)
}

func scanSewadars(rows *sql.Rows) ([]*domain.Sewadar, error) {
	sewadars := make([]*domain.Sewadar, 0)
	for rows.Next() {
		sewadar := &domain.Sewadar{}
		dst := []any{&sewadar.ID, &sewadar.Name, &sewadar.Gender, &sewadar.HomeGroup, &sewadar.IsCustom, &sewadar.CreatedAt, &sewadar.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		sewadars = append(sewadars, sewadar)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sewadars, nil
}
