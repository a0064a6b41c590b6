package restrictions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rondelui/rondel/internal/apperror"
)

// RestrictionRepository defines the data access contract for date
// restriction rules.
type RestrictionRepository interface {
	// List returns every restriction ordered by start date.
	List(ctx context.Context) ([]Restriction, error)

	// FindByID returns a single restriction. Returns NotFound if the id
	// does not exist.
	FindByID(ctx context.Context, id int64) (*Restriction, error)

	// Create inserts a new restriction and sets its ID.
	Create(ctx context.Context, r *Restriction) error

	// Update rewrites an existing restriction. Returns NotFound if the id
	// does not exist.
	Update(ctx context.Context, r *Restriction) error

	// Delete removes a restriction. Returns NotFound if the id does not exist.
	Delete(ctx context.Context, id int64) error
}

// restrictionRepository implements RestrictionRepository using MariaDB.
type restrictionRepository struct {
	db *sql.DB
}

// NewRestrictionRepository creates a new restriction repository backed by MariaDB.
func NewRestrictionRepository(db *sql.DB) RestrictionRepository {
	return &restrictionRepository{db: db}
}

// List returns all restrictions ordered by start date.
func (r *restrictionRepository) List(ctx context.Context) ([]Restriction, error) {
	query := `SELECT id, kind, start_date, end_date, reason, created_at, updated_at
	          FROM date_restrictions ORDER BY start_date, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("querying restrictions: %w", err))
	}
	defer rows.Close()

	var list []Restriction
	for rows.Next() {
		var res Restriction
		var reason sql.NullString
		if err := rows.Scan(
			&res.ID, &res.Kind, &res.StartDate, &res.EndDate, &reason,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("scanning restriction row: %w", err))
		}
		res.Reason = reason.String
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("iterating restrictions: %w", err))
	}
	return list, nil
}

// FindByID returns a single restriction by its primary key.
func (r *restrictionRepository) FindByID(ctx context.Context, id int64) (*Restriction, error) {
	query := `SELECT id, kind, start_date, end_date, reason, created_at, updated_at
	          FROM date_restrictions WHERE id = ?`

	var res Restriction
	var reason sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.Kind, &res.StartDate, &res.EndDate, &reason,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound(fmt.Sprintf("restriction %d not found", id))
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("querying restriction %d: %w", id, err))
	}
	res.Reason = reason.String
	return &res, nil
}

// Create inserts a new restriction and populates its generated ID.
func (r *restrictionRepository) Create(ctx context.Context, res *Restriction) error {
	query := `INSERT INTO date_restrictions (kind, start_date, end_date, reason)
	          VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, res.Kind, res.StartDate, res.EndDate, nullableReason(res.Reason))
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("inserting restriction: %w", err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("reading restriction insert id: %w", err))
	}
	res.ID = id
	return nil
}

// Update rewrites an existing restriction row.
func (r *restrictionRepository) Update(ctx context.Context, res *Restriction) error {
	query := `UPDATE date_restrictions
	          SET kind = ?, start_date = ?, end_date = ?, reason = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, res.Kind, res.StartDate, res.EndDate, nullableReason(res.Reason), res.ID)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("updating restriction %d: %w", res.ID, err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// RowsAffected is also 0 for a no-op update, but callers always send
		// a changed row, so treat it as missing.
		if _, err := r.FindByID(ctx, res.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a restriction row.
func (r *restrictionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM date_restrictions WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting restriction %d: %w", id, err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound(fmt.Sprintf("restriction %d not found", id))
	}
	return nil
}

// nullableReason maps an empty reason to NULL so the column stays clean.
func nullableReason(reason string) sql.NullString {
	return sql.NullString{String: reason, Valid: reason != ""}
}
