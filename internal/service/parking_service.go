package service

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

// LotObserver is notified after any committed change to lot state (a park,
// a release, a payment). Observers pull whatever they need through the
// service's read methods; the notification itself carries no payload.
type LotObserver interface {
	OnLotChanged()
}

// ParkingService owns the spot inventory, the transaction history and the
// revenue counter. All mutation happens under one mutex; observers are
// notified after the lock is released so a slow dashboard cannot stall the
// entry lane.
type ParkingService struct {
	mu        sync.RWMutex
	spots     []*domain.ParkingSpot
	revenue   float64
	history   []domain.Transaction
	observers []LotObserver
	logger    *zap.Logger
}

func NewParkingService(spots []*domain.ParkingSpot, logger *zap.Logger) *ParkingService {
	if len(spots) == 0 {
		spots = domain.DefaultLayout()
	}
	return &ParkingService{spots: spots, logger: logger}
}

func (s *ParkingService) Subscribe(obs LotObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// notifyObservers runs outside the lot lock. A panicking observer is
// logged and skipped so one broken listener cannot take down the lot.
func (s *ParkingService) notifyObservers() {
	s.mu.RLock()
	observers := make([]LotObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, obs := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("lot observer panicked", zap.Any("panic", r))
				}
			}()
			obs.OnLotChanged()
		}()
	}
}

// ParkAtSpot places a vehicle at a specific spot chosen by the driver.
func (s *ParkingService) ParkAtSpot(plate, kindLabel, spotID string) (domain.Ticket, error) {
	vehicle, err := domain.NewVehicle(plate, kindLabel)
	if err != nil {
		return domain.Ticket{}, err
	}

	s.mu.Lock()
	if existing := s.findByPlateLocked(vehicle.Plate); existing != nil {
		s.mu.Unlock()
		return domain.Ticket{}, fmt.Errorf("%w: already at spot %s", domain.ErrDuplicateVehicle, existing.ID)
	}

	spot := s.findByIDLocked(spotID)
	if spot == nil {
		s.mu.Unlock()
		return domain.Ticket{}, domain.ErrSpotNotFound
	}
	if spot.Occupied {
		s.mu.Unlock()
		return domain.Ticket{}, domain.ErrSpotOccupied
	}
	if !spot.SuitableFor(vehicle) {
		s.mu.Unlock()
		return domain.Ticket{}, fmt.Errorf("%w: %s at %s spot", domain.ErrUnsuitableSpot, vehicle.Kind, spot.Category)
	}

	spot.Park(vehicle)
	ticket := domain.NewTicket(vehicle, spot)
	s.mu.Unlock()

	s.logger.Info("vehicle parked",
		zap.String("plate", vehicle.Plate),
		zap.String("spot", spot.ID),
		zap.String("category", string(spot.Category)))
	s.notifyObservers()
	return ticket, nil
}

// ParkFirstFit places a vehicle at the first free spot in layout order
// whose category accepts the vehicle kind. Reserved and handicapped spots
// are candidates like any other; permits are checked at exit, not here.
func (s *ParkingService) ParkFirstFit(plate, kindLabel string) (domain.Ticket, error) {
	vehicle, err := domain.NewVehicle(plate, kindLabel)
	if err != nil {
		return domain.Ticket{}, err
	}

	s.mu.Lock()
	if existing := s.findByPlateLocked(vehicle.Plate); existing != nil {
		s.mu.Unlock()
		return domain.Ticket{}, fmt.Errorf("%w: already at spot %s", domain.ErrDuplicateVehicle, existing.ID)
	}

	var spot *domain.ParkingSpot
	for _, candidate := range s.spots {
		if !candidate.Occupied && candidate.SuitableFor(vehicle) {
			spot = candidate
			break
		}
	}
	if spot == nil {
		s.mu.Unlock()
		return domain.Ticket{}, domain.ErrNoSpotAvailable
	}

	spot.Park(vehicle)
	ticket := domain.NewTicket(vehicle, spot)
	s.mu.Unlock()

	s.logger.Info("vehicle parked",
		zap.String("plate", vehicle.Plate),
		zap.String("spot", spot.ID),
		zap.String("category", string(spot.Category)))
	s.notifyObservers()
	return ticket, nil
}

// FindSpotByPlate returns a copy of the spot currently holding the plate.
func (s *ParkingService) FindSpotByPlate(plate string) (domain.ParkingSpot, error) {
	p := domain.NormalizePlate(plate)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if spot := s.findByPlateLocked(p); spot != nil {
		out := *spot
		v := *spot.Vehicle
		out.Vehicle = &v
		return out, nil
	}
	return domain.ParkingSpot{}, domain.ErrVehicleNotFound
}

// Release frees a spot. Releasing an already-free spot is a no-op, so a
// double gate signal cannot corrupt the inventory.
func (s *ParkingService) Release(spotID string) error {
	s.mu.Lock()
	spot := s.findByIDLocked(spotID)
	if spot == nil {
		s.mu.Unlock()
		return domain.ErrSpotNotFound
	}
	if !spot.Occupied {
		s.mu.Unlock()
		return nil
	}
	plate := spot.Vehicle.Plate
	spot.Clear()
	s.mu.Unlock()

	s.logger.Info("spot released", zap.String("spot", spotID), zap.String("plate", plate))
	s.notifyObservers()
	return nil
}

// RecordPayment appends a settled transaction to the history and rolls it
// into the cached revenue total. The history is the source of truth; the
// counter only saves re-summing on every status read.
func (s *ParkingService) RecordPayment(tx domain.Transaction) {
	s.mu.Lock()
	s.history = append(s.history, tx)
	s.revenue += tx.AmountPaid
	s.mu.Unlock()

	s.logger.Info("payment recorded",
		zap.String("transaction", tx.ID),
		zap.String("plate", tx.Plate),
		zap.Float64("amount", tx.AmountPaid))
	s.notifyObservers()
}

// AvailableSpotsFor lists free spots the given vehicle kind may occupy,
// reserved and handicapped ones included, in layout order.
func (s *ParkingService) AvailableSpotsFor(kindLabel string) ([]domain.ParkingSpot, error) {
	kind, err := domain.ParseVehicleKind(kindLabel)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ParkingSpot
	for _, spot := range s.spots {
		if !spot.Occupied && spot.Category.Allows(kind) {
			out = append(out, *spot)
		}
	}
	return out, nil
}

// LotStatus is the dashboard projection of the lot.
type LotStatus struct {
	Capacity   int                         `json:"capacity"`
	Occupied   int                         `json:"occupied"`
	Revenue    float64                     `json:"revenue"`
	ByCategory map[domain.SpotCategory]int `json:"occupied_by_category"`
	Spots      []domain.ParkingSpot        `json:"spots"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

func (s *ParkingService) Status() LotStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := LotStatus{
		Capacity:   len(s.spots),
		Revenue:    s.revenue,
		ByCategory: make(map[domain.SpotCategory]int),
		UpdatedAt:  time.Now(),
	}
	for _, spot := range s.spots {
		copied := *spot
		if spot.Vehicle != nil {
			v := *spot.Vehicle
			copied.Vehicle = &v
		}
		status.Spots = append(status.Spots, copied)
		if spot.Occupied {
			status.Occupied++
			status.ByCategory[spot.Category]++
		}
	}
	return status
}

func (s *ParkingService) Revenue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue
}

// History returns a copy of the transaction log, newest last.
func (s *ParkingService) History() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, len(s.history))
	copy(out, s.history)
	return out
}

// SnapshotState captures a consistent deep copy of the lot for persistence.
func (s *ParkingService) SnapshotState() ([]*domain.ParkingSpot, []domain.Transaction, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spots := make([]*domain.ParkingSpot, 0, len(s.spots))
	for _, spot := range s.spots {
		copied := *spot
		if spot.Vehicle != nil {
			v := *spot.Vehicle
			copied.Vehicle = &v
		}
		spots = append(spots, &copied)
	}
	history := make([]domain.Transaction, len(s.history))
	copy(history, s.history)
	return spots, history, s.revenue
}

// Restore replaces lot state from a persisted snapshot.
func (s *ParkingService) Restore(snap *repository.LotSnapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(snap.Spots) > 0 {
		s.spots = snap.Spots
	}
	s.history = snap.History
	// The transaction log is the source of truth; the persisted counter is
	// ignored and the projection rebuilt from the log.
	s.revenue = 0
	for _, tx := range s.history {
		s.revenue += tx.AmountPaid
	}
}

func (s *ParkingService) findByIDLocked(spotID string) *domain.ParkingSpot {
	for _, spot := range s.spots {
		if spot.ID == spotID {
			return spot
		}
	}
	return nil
}

func (s *ParkingService) findByPlateLocked(normalizedPlate string) *domain.ParkingSpot {
	for _, spot := range s.spots {
		if spot.Occupied && spot.Vehicle != nil && spot.Vehicle.Plate == normalizedPlate {
			return spot
		}
	}
	return nil
}
