package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

func TestLoadWithoutSnapshotReturnsNil(t *testing.T) {
	store := NewStore(t.TempDir())
	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(filepath.Join(t.TempDir(), "data"))

	occupied := domain.NewParkingSpot("F1-S01", domain.CategoryReserved, 10)
	entry := time.Now().Add(-2 * time.Hour).UTC().Truncate(time.Second)
	occupied.Park(&domain.Vehicle{Plate: "ABC 1", Kind: domain.KindCar, EntryTime: entry})
	free := domain.NewParkingSpot("F2-S01", domain.CategoryRegular, 5)

	in := &repository.LotSnapshot{
		Spots:      []*domain.ParkingSpot{occupied, free},
		Debts:      map[string]float64{"XYZ 9": 150},
		History:    []domain.Transaction{domain.NewTransaction("ABC 1", "F1-S01", time.Now().UTC(), 70, domain.MethodCash)},
		FineScheme: string(domain.SchemeProgressive),
		Revenue:    70,
	}
	require.NoError(t, store.Save(ctx, in))

	out, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, out)

	require.Len(t, out.Spots, 2)
	require.Equal(t, "F1-S01", out.Spots[0].ID)
	require.True(t, out.Spots[0].Occupied)
	require.NotNil(t, out.Spots[0].Vehicle)
	require.Equal(t, "ABC 1", out.Spots[0].Vehicle.Plate)
	require.Equal(t, domain.KindCar, out.Spots[0].Vehicle.Kind)
	require.True(t, entry.Equal(out.Spots[0].Vehicle.EntryTime))

	require.False(t, out.Spots[1].Occupied)
	require.Nil(t, out.Spots[1].Vehicle)

	require.Equal(t, 150.0, out.Debts["XYZ 9"])
	require.Equal(t, string(domain.SchemeProgressive), out.FineScheme)
	require.Equal(t, 70.0, out.Revenue)
	require.Len(t, out.History, 1)
	require.Equal(t, 70.0, out.History[0].AmountPaid)
}

func TestLoadRejectsCorruptSpotsFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spots.json"), []byte("{not json"), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
}

func TestLoadRejectsUnknownSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	doc := `{"version": 99, "persisted_at": "2026-01-01T00:00:00Z", "spots": []}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spots.json"), []byte(doc), 0o644))

	_, err := store.Load(context.Background())
	require.Error(t, err)
}
