package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

// pgPermitRepository backs one permit directory with one table; the
// handicapped and reserved directories are two instances over different
// tables. The table name is fixed at construction, never caller-supplied.
type pgPermitRepository struct {
	db    *sql.DB
	table string
}

func NewPgHandicappedPermitRepository(db *sql.DB) repository.PermitRepository {
	return &pgPermitRepository{db: db, table: "handicapped_permits"}
}

func NewPgReservedPermitRepository(db *sql.DB) repository.PermitRepository {
	return &pgPermitRepository{db: db, table: "reserved_permits"}
}

func (r *pgPermitRepository) Grant(ctx context.Context, plate string) error {
	plate = domain.NormalizePlate(plate)
	if plate == "" {
		return domain.ErrEmptyPlate
	}
	query := fmt.Sprintf(`INSERT INTO %s (plate) VALUES ($1) ON CONFLICT (plate) DO NOTHING`, r.table)
	res, err := r.db.ExecContext(ctx, query, plate)
	if err != nil {
		return fmt.Errorf("PermitRepository.Grant: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: permit for plate '%s'", repository.ErrDuplicateEntry, plate)
	}
	return nil
}

func (r *pgPermitRepository) Revoke(ctx context.Context, plate string) error {
	plate = domain.NormalizePlate(plate)
	query := fmt.Sprintf(`DELETE FROM %s WHERE plate = $1`, r.table)
	res, err := r.db.ExecContext(ctx, query, plate)
	if err != nil {
		return fmt.Errorf("PermitRepository.Revoke: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgPermitRepository) Has(ctx context.Context, plate string) (bool, error) {
	plate = domain.NormalizePlate(plate)
	var one int
	query := fmt.Sprintf(`SELECT 1 FROM %s WHERE plate = $1`, r.table)
	err := r.db.QueryRowContext(ctx, query, plate).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("PermitRepository.Has: %w", err)
	}
	return true, nil
}

func (r *pgPermitRepository) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT plate FROM %s ORDER BY plate`, r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("PermitRepository.List: %w", err)
	}
	defer rows.Close()

	var plates []string
	for rows.Next() {
		var plate string
		if err := rows.Scan(&plate); err != nil {
			return nil, fmt.Errorf("PermitRepository.List: %w", err)
		}
		plates = append(plates, plate)
	}
	return plates, rows.Err()
}
