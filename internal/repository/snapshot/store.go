// Package snapshot persists the lot state as versioned JSON files so the
// lot resumes where it left off after a restart. Three files keep concerns
// separate: spots.json (layout and occupants), accounts.json (debt ledger
// and fine scheme), history.json (transaction log and revenue).
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/guregu/null.v4"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

const schemaVersion = 1

const (
	spotsFile    = "spots.json"
	accountsFile = "accounts.json"
	historyFile  = "history.json"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

var _ repository.StateStore = (*Store)(nil)

// spotRecord flattens the occupant so an empty spot serializes with null
// columns instead of a nested object.
type spotRecord struct {
	ID            string              `json:"id"`
	Category      domain.SpotCategory `json:"category"`
	HourlyRate    float64             `json:"hourly_rate"`
	OccupantPlate null.String         `json:"occupant_plate"`
	OccupantKind  null.String         `json:"occupant_kind"`
	EntryTime     null.Time           `json:"entry_time"`
}

type spotsDocument struct {
	Version     int          `json:"version"`
	PersistedAt time.Time    `json:"persisted_at"`
	Spots       []spotRecord `json:"spots"`
}

type accountsDocument struct {
	Version    int                `json:"version"`
	FineScheme string             `json:"fine_scheme"`
	Debts      map[string]float64 `json:"debts"`
}

type historyDocument struct {
	Version      int                  `json:"version"`
	Revenue      float64              `json:"revenue"`
	Transactions []domain.Transaction `json:"transactions"`
}

func (s *Store) Save(_ context.Context, snap *repository.LotSnapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: creating data dir: %w", err)
	}

	now := time.Now().UTC()
	spotsDoc := spotsDocument{Version: schemaVersion, PersistedAt: now}
	for _, spot := range snap.Spots {
		rec := spotRecord{
			ID:         spot.ID,
			Category:   spot.Category,
			HourlyRate: spot.HourlyRate,
		}
		if spot.Occupied && spot.Vehicle != nil {
			rec.OccupantPlate = null.StringFrom(spot.Vehicle.Plate)
			rec.OccupantKind = null.StringFrom(string(spot.Vehicle.Kind))
			rec.EntryTime = null.TimeFrom(spot.Vehicle.EntryTime)
		}
		spotsDoc.Spots = append(spotsDoc.Spots, rec)
	}

	accountsDoc := accountsDocument{
		Version:    schemaVersion,
		FineScheme: snap.FineScheme,
		Debts:      snap.Debts,
	}
	historyDoc := historyDocument{
		Version:      schemaVersion,
		Revenue:      snap.Revenue,
		Transactions: snap.History,
	}

	if err := s.writeFile(spotsFile, spotsDoc); err != nil {
		return err
	}
	if err := s.writeFile(accountsFile, accountsDoc); err != nil {
		return err
	}
	return s.writeFile(historyFile, historyDoc)
}

func (s *Store) Load(_ context.Context) (*repository.LotSnapshot, error) {
	var spotsDoc spotsDocument
	found, err := s.readFile(spotsFile, &spotsDoc)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	if spotsDoc.Version != schemaVersion {
		return nil, fmt.Errorf("snapshot: unsupported spots schema version %d", spotsDoc.Version)
	}

	snap := &repository.LotSnapshot{
		Debts:       map[string]float64{},
		PersistedAt: spotsDoc.PersistedAt.Unix(),
	}
	for _, rec := range spotsDoc.Spots {
		if _, err := domain.ParseSpotCategory(string(rec.Category)); err != nil {
			return nil, fmt.Errorf("snapshot: spot %s: %w", rec.ID, err)
		}
		spot := domain.NewParkingSpot(rec.ID, rec.Category, rec.HourlyRate)
		if rec.OccupantPlate.Valid {
			kind, err := domain.ParseVehicleKind(rec.OccupantKind.ValueOrZero())
			if err != nil {
				return nil, fmt.Errorf("snapshot: spot %s occupant: %w", rec.ID, err)
			}
			spot.Park(&domain.Vehicle{
				Plate:     domain.NormalizePlate(rec.OccupantPlate.ValueOrZero()),
				Kind:      kind,
				EntryTime: rec.EntryTime.ValueOrZero(),
			})
		}
		snap.Spots = append(snap.Spots, spot)
	}

	var accountsDoc accountsDocument
	if found, err := s.readFile(accountsFile, &accountsDoc); err != nil {
		return nil, err
	} else if found {
		snap.FineScheme = accountsDoc.FineScheme
		if accountsDoc.Debts != nil {
			snap.Debts = accountsDoc.Debts
		}
	}

	var historyDoc historyDocument
	if found, err := s.readFile(historyFile, &historyDoc); err != nil {
		return nil, err
	} else if found {
		snap.Revenue = historyDoc.Revenue
		snap.History = historyDoc.Transactions
	}

	return snap, nil
}

func (s *Store) writeFile(name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encoding %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", name, err)
	}
	return nil
}

// readFile reports found=false when the file does not exist; a file that
// exists but cannot be decoded is an error the caller surfaces before
// falling back to the default layout.
func (s *Store) readFile(name string, doc any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("snapshot: reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return false, fmt.Errorf("snapshot: decoding %s: %w", name, err)
	}
	return true, nil
}
