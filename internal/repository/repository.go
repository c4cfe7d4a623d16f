package repository

import (
	"context"
	"errors"

	"parking_system_go/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

// PermitRepository is the authority directory consulted at exit time. Plates
// are stored normalized; Has never reports an error for an unknown plate,
// only for a failed lookup.
type PermitRepository interface {
	Grant(ctx context.Context, plate string) error
	Revoke(ctx context.Context, plate string) error
	Has(ctx context.Context, plate string) (bool, error)
	List(ctx context.Context) ([]string, error)
}

// LotSnapshot is everything the lot needs to resume after a restart.
type LotSnapshot struct {
	Spots       []*domain.ParkingSpot `json:"spots"`
	Debts       map[string]float64    `json:"debts"`
	History     []domain.Transaction  `json:"history"`
	FineScheme  string                `json:"fine_scheme"`
	Revenue     float64               `json:"revenue"`
	PersistedAt int64                 `json:"persisted_at"`
}

// StateStore persists and restores the lot snapshot. Load returns
// (nil, nil) when no prior snapshot exists; callers fall back to the
// default layout. Save failures must never crash the lot.
type StateStore interface {
	Save(ctx context.Context, snap *LotSnapshot) error
	Load(ctx context.Context) (*LotSnapshot, error)
}
