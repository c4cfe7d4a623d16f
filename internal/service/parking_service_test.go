package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

func newTestLot(t *testing.T) *ParkingService {
	t.Helper()
	return NewParkingService(domain.DefaultLayout(), zap.NewNop())
}

func TestParkFirstFitTakesFirstAcceptingSpot(t *testing.T) {
	svc := newTestLot(t)

	// Reserved spots accept any kind, so a car's first fit is F1-S01; a
	// violating occupant gets fined at exit, not turned away at entry.
	ticket, err := svc.ParkFirstFit("ABC 1", "car")
	require.NoError(t, err)
	require.Equal(t, "F1-S01", ticket.SpotID)
	require.Equal(t, domain.CategoryReserved, ticket.SpotCategory)

	ticket2, err := svc.ParkFirstFit("ABC 2", "car")
	require.NoError(t, err)
	require.Equal(t, "F1-S02", ticket2.SpotID)
}

func TestParkFirstFitHonorsSuitability(t *testing.T) {
	spots := []*domain.ParkingSpot{
		domain.NewParkingSpot("R1", domain.CategoryRegular, 5),
		domain.NewParkingSpot("C1", domain.CategoryCompact, 2),
	}
	svc := NewParkingService(spots, zap.NewNop())

	// Regular rejects motorcycles, so the first fit is the compact spot.
	ticket, err := svc.ParkFirstFit("MOT 9", "motorcycle")
	require.NoError(t, err)
	require.Equal(t, "C1", ticket.SpotID)

	_, err = svc.ParkFirstFit("MOT 10", "motorcycle")
	require.ErrorIs(t, err, domain.ErrNoSpotAvailable)
}

func TestParkAtSpotExclusivity(t *testing.T) {
	svc := newTestLot(t)

	_, err := svc.ParkAtSpot("AAA 1", "car", "F2-S05")
	require.NoError(t, err)

	_, err = svc.ParkAtSpot("BBB 2", "car", "F2-S05")
	require.ErrorIs(t, err, domain.ErrSpotOccupied)

	_, err = svc.ParkAtSpot("CCC 3", "car", "F9-S99")
	require.ErrorIs(t, err, domain.ErrSpotNotFound)
}

func TestParkRejectsUnsuitableSpot(t *testing.T) {
	svc := newTestLot(t)

	// Motorcycles may not take regular spots.
	_, err := svc.ParkAtSpot("MOT 1", "motorcycle", "F2-S01")
	require.ErrorIs(t, err, domain.ErrUnsuitableSpot)

	// SUVs do not fit compact spots.
	_, err = svc.ParkAtSpot("SUV 1", "suv", "F4-S01")
	require.ErrorIs(t, err, domain.ErrUnsuitableSpot)

	// Anyone may deliberately take a reserved spot; fines come later.
	_, err = svc.ParkAtSpot("VIP 1", "suv", "F1-S01")
	require.NoError(t, err)
}

func TestDuplicatePlateRejected(t *testing.T) {
	svc := newTestLot(t)

	_, err := svc.ParkFirstFit("DUP 1", "car")
	require.NoError(t, err)

	_, err = svc.ParkFirstFit("dup 1", "car")
	require.ErrorIs(t, err, domain.ErrDuplicateVehicle)

	_, err = svc.ParkAtSpot(" DUP 1 ", "car", "F3-S01")
	require.ErrorIs(t, err, domain.ErrDuplicateVehicle)
}

func TestFindSpotByPlateIsCaseInsensitive(t *testing.T) {
	svc := newTestLot(t)

	ticket, err := svc.ParkFirstFit("MiXeD 7", "car")
	require.NoError(t, err)

	spot, err := svc.FindSpotByPlate("mixed 7")
	require.NoError(t, err)
	require.Equal(t, ticket.SpotID, spot.ID)
	require.Equal(t, "MIXED 7", spot.Vehicle.Plate)

	_, err = svc.FindSpotByPlate("GHOST 0")
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestReleaseIsIdempotent(t *testing.T) {
	svc := newTestLot(t)

	ticket, err := svc.ParkFirstFit("REL 1", "car")
	require.NoError(t, err)

	require.NoError(t, svc.Release(ticket.SpotID))
	require.NoError(t, svc.Release(ticket.SpotID))

	_, err = svc.FindSpotByPlate("REL 1")
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)

	// The spot is usable again.
	again, err := svc.ParkAtSpot("REL 2", "car", ticket.SpotID)
	require.NoError(t, err)
	require.Equal(t, ticket.SpotID, again.SpotID)
}

func TestRecordPaymentAccumulatesRevenue(t *testing.T) {
	svc := newTestLot(t)

	svc.RecordPayment(domain.NewTransaction("PAY 1", "F2-S01", time.Now(), 25, domain.MethodCash))
	svc.RecordPayment(domain.NewTransaction("PAY 2", "F2-S02", time.Now(), 50, domain.MethodCard))

	require.Equal(t, 75.0, svc.Revenue())
	require.Len(t, svc.History(), 2)
}

type countingObserver struct {
	calls int
}

func (o *countingObserver) OnLotChanged() { o.calls++ }

type panickyObserver struct{}

func (panickyObserver) OnLotChanged() { panic("boom") }

func TestObserversNotifiedOnEveryChange(t *testing.T) {
	svc := newTestLot(t)
	obs := &countingObserver{}
	svc.Subscribe(panickyObserver{})
	svc.Subscribe(obs)

	ticket, err := svc.ParkFirstFit("OBS 1", "car")
	require.NoError(t, err)
	require.NoError(t, svc.Release(ticket.SpotID))
	svc.RecordPayment(domain.NewTransaction("OBS 1", ticket.SpotID, time.Now(), 5, domain.MethodCash))

	// park + release + payment, each delivered despite the panicking peer.
	require.Equal(t, 3, obs.calls)
}

func TestRestoreRecomputesRevenueFromHistory(t *testing.T) {
	svc := newTestLot(t)

	snap := &repository.LotSnapshot{
		History: []domain.Transaction{
			domain.NewTransaction("A 1", "F2-S01", time.Now(), 30, domain.MethodCash),
			domain.NewTransaction("B 2", "F2-S02", time.Now(), 45, domain.MethodCard),
		},
		// A drifted counter must not survive the restore.
		Revenue: 9999,
	}
	svc.Restore(snap)

	require.Equal(t, 75.0, svc.Revenue())
	require.Len(t, svc.History(), 2)
}

func TestAvailableSpotsFor(t *testing.T) {
	svc := newTestLot(t)

	spots, err := svc.AvailableSpotsFor("motorcycle")
	require.NoError(t, err)
	// 15 reserved + 5 handicapped + 20 compact.
	require.Len(t, spots, 40)

	_, err = svc.AvailableSpotsFor("spaceship")
	require.ErrorIs(t, err, domain.ErrUnknownVehicleKind)

	status := svc.Status()
	require.Equal(t, 80, status.Capacity)
	require.Equal(t, 0, status.Occupied)
}
