package service

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

// Exit session states and events. A plate moves idle -> quoted -> paid and
// leaves the map when the gate opens; payment is only accepted against a
// standing quote and the gate only opens after payment.
const (
	stateIdle   = "idle"
	stateQuoted = "quoted"
	statePaid   = "paid"

	eventQuote = "quote"
	eventPay   = "pay"
)

type exitSession struct {
	machine *fsm.FSM
	bill    domain.Bill
	receipt domain.Receipt
}

func newExitSession() *exitSession {
	return &exitSession{
		machine: fsm.NewFSM(
			stateIdle,
			fsm.Events{
				// Re-quoting refreshes the bill; prices move as time passes.
				{Name: eventQuote, Src: []string{stateIdle, stateQuoted}, Dst: stateQuoted},
				{Name: eventPay, Src: []string{stateQuoted}, Dst: statePaid},
			},
			fsm.Callbacks{},
		),
	}
}

// ExitService drives the exit-station flow: quote the bill, take payment
// (settling or deferring fines), then open the gate. TimeScale compresses
// wall-clock time for demos; 60 makes one real minute bill as one hour.
type ExitService struct {
	parking     *ParkingService
	fines       *FineService
	handicapped repository.PermitRepository
	reserved    repository.PermitRepository
	timeScale   float64
	logger      *zap.Logger

	mu       sync.Mutex
	sessions map[string]*exitSession
}

func NewExitService(
	parking *ParkingService,
	fines *FineService,
	handicapped repository.PermitRepository,
	reserved repository.PermitRepository,
	timeScale float64,
	logger *zap.Logger,
) *ExitService {
	if timeScale <= 0 {
		timeScale = 1
	}
	return &ExitService{
		parking:     parking,
		fines:       fines,
		handicapped: handicapped,
		reserved:    reserved,
		timeScale:   timeScale,
		logger:      logger,
		sessions:    make(map[string]*exitSession),
	}
}

// Quote computes the bill for a parked vehicle and opens (or refreshes) its
// exit session. Nothing is committed: the spot stays occupied and no money
// moves until Pay.
func (s *ExitService) Quote(ctx context.Context, plate string) (domain.Bill, error) {
	p := domain.NormalizePlate(plate)
	if p == "" {
		return domain.Bill{}, domain.ErrEmptyPlate
	}

	spot, err := s.parking.FindSpotByPlate(p)
	if err != nil {
		return domain.Bill{}, err
	}
	vehicle := spot.Vehicle

	now := time.Now()
	hours := now.Sub(vehicle.EntryTime).Hours() * s.timeScale

	// The exemption belongs to the spot: a permit holder parked at a
	// handicapped spot rides free whatever they drive, and a handicapped
	// vehicle elsewhere pays the spot's normal rate.
	exempt := false
	if spot.Category == domain.CategoryHandicapped {
		has, err := s.handicapped.Has(ctx, p)
		if err != nil {
			// Without the directory the driver pays the normal fee.
			s.logger.Warn("handicapped permit lookup failed", zap.String("plate", p), zap.Error(err))
		}
		exempt = err == nil && has
	}

	violation := false
	if spot.Category == domain.CategoryReserved {
		has, err := s.reserved.Has(ctx, p)
		if err != nil {
			// A lookup failure never fines a driver.
			s.logger.Warn("reserved permit lookup failed", zap.String("plate", p), zap.Error(err))
			has = true
		}
		violation = !has
	}

	fee := domain.ParkingFee(hours, spot.HourlyRate, exempt)
	fine := s.fines.Fine(hours, violation)
	oldDebt := s.fines.Debt(p)

	bill := domain.Bill{
		Plate:             p,
		SpotID:            spot.ID,
		SpotCategory:      spot.Category,
		EntryTime:         vehicle.EntryTime,
		QuotedAt:          now,
		HoursBilled:       domain.BilledHours(hours),
		HourlyRate:        spot.HourlyRate,
		ParkingFee:        fee,
		NewFine:           fine,
		OldDebt:           oldDebt,
		TotalDue:          fee + fine + oldDebt,
		ReservedViolation: violation,
		HandicappedExempt: exempt,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[p]
	if !ok {
		session = newExitSession()
		s.sessions[p] = session
	}
	if err := session.machine.Event(ctx, eventQuote); err != nil {
		return domain.Bill{}, domain.ErrAwaitingGate
	}
	session.bill = bill

	s.logger.Info("exit quoted",
		zap.String("plate", p),
		zap.Float64("fee", fee),
		zap.Float64("fine", fine),
		zap.Float64("old_debt", oldDebt),
		zap.Float64("total", bill.TotalDue))
	return bill, nil
}

// Pay settles the quoted bill. With settleFines the driver pays everything
// and the plate's account is wiped; without it only the parking fee is paid
// now and the new fine joins the old debt on the account.
func (s *ExitService) Pay(ctx context.Context, plate string, settleFines bool, methodLabel string) (domain.Receipt, error) {
	method, err := domain.ParsePaymentMethod(methodLabel)
	if err != nil {
		return domain.Receipt{}, err
	}
	p := domain.NormalizePlate(plate)

	s.mu.Lock()
	session, ok := s.sessions[p]
	if !ok || session.machine.Current() == stateIdle {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrExitNotQuoted
	}
	if err := session.machine.Event(ctx, eventPay); err != nil {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrExitNotPaid
	}
	bill := session.bill
	s.mu.Unlock()

	now := time.Now()
	var amount float64
	if settleFines {
		amount = bill.TotalDue
		s.fines.ClearDebt(p)
	} else {
		amount = bill.ParkingFee
		s.fines.AddDebt(p, bill.NewFine)
	}

	tx := domain.NewTransaction(p, bill.SpotID, now, amount, method)
	s.parking.RecordPayment(tx)

	// Transaction first, then the spot frees. Payment is what ends the
	// stay; the gate call afterwards only lets the vehicle out.
	if err := s.parking.Release(bill.SpotID); err != nil {
		s.logger.Error("releasing spot after payment", zap.String("spot", bill.SpotID), zap.Error(err))
	}

	receipt := domain.Receipt{
		Bill:            bill,
		TransactionID:   tx.ID,
		AmountPaid:      amount,
		Method:          method,
		DeferredBalance: s.fines.Debt(p),
		PaidAt:          now,
	}

	s.mu.Lock()
	session.receipt = receipt
	s.mu.Unlock()

	s.logger.Info("exit paid",
		zap.String("plate", p),
		zap.Float64("amount", amount),
		zap.Bool("settled_fines", settleFines),
		zap.String("method", string(method)))
	return receipt, nil
}

// OpenGate closes the exit session after payment. The spot was already
// freed when payment was taken, so a gate signal that never arrives cannot
// keep a paid spot occupied.
func (s *ExitService) OpenGate(_ context.Context, plate string) (domain.Receipt, error) {
	p := domain.NormalizePlate(plate)

	s.mu.Lock()
	session, ok := s.sessions[p]
	if !ok || session.machine.Current() != statePaid {
		s.mu.Unlock()
		return domain.Receipt{}, domain.ErrExitNotPaid
	}
	receipt := session.receipt
	delete(s.sessions, p)
	s.mu.Unlock()

	s.logger.Info("gate opened", zap.String("plate", p), zap.String("spot", receipt.Bill.SpotID))
	return receipt, nil
}
