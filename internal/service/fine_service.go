package service

import (
	"sync"

	"go.uber.org/zap"

	"parking_system_go/internal/domain"
)

// FineService owns the active fine scheme and the per-plate debt ledger.
// Debts accumulate additively when drivers defer payment and are keyed by
// normalized plate, so a returning vehicle carries its balance.
type FineService struct {
	mu     sync.RWMutex
	scheme domain.FineScheme
	debts  map[string]float64
	logger *zap.Logger
}

func NewFineService(logger *zap.Logger) *FineService {
	return &FineService{
		scheme: domain.SchemeFixed,
		debts:  make(map[string]float64),
		logger: logger,
	}
}

func (s *FineService) Scheme() domain.FineScheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheme
}

// SetScheme switches the active scheme. Existing ledger balances are kept:
// a recorded debt is a debt regardless of how it was computed.
func (s *FineService) SetScheme(label string) error {
	scheme, err := domain.ParseFineScheme(label)
	if err != nil {
		return err
	}
	s.mu.Lock()
	old := s.scheme
	s.scheme = scheme
	s.mu.Unlock()
	if old != scheme {
		s.logger.Info("fine scheme changed", zap.String("from", string(old)), zap.String("to", string(scheme)))
	}
	return nil
}

// Fine computes the penalty for a stay under the active scheme.
func (s *FineService) Fine(hours float64, reservedViolation bool) float64 {
	return s.Scheme().Fine(hours, reservedViolation)
}

func (s *FineService) Debt(plate string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debts[domain.NormalizePlate(plate)]
}

// AddDebt records a deferred amount on the plate's account, on top of
// whatever it already owes.
func (s *FineService) AddDebt(plate string, amount float64) {
	if amount <= 0 {
		return
	}
	p := domain.NormalizePlate(plate)
	s.mu.Lock()
	s.debts[p] += amount
	total := s.debts[p]
	s.mu.Unlock()
	s.logger.Info("debt recorded", zap.String("plate", p), zap.Float64("added", amount), zap.Float64("balance", total))
}

// ClearDebt wipes the plate's balance and returns the amount that was owed.
func (s *FineService) ClearDebt(plate string) float64 {
	p := domain.NormalizePlate(plate)
	s.mu.Lock()
	owed := s.debts[p]
	delete(s.debts, p)
	s.mu.Unlock()
	return owed
}

// Debts returns a copy of the ledger for reporting and persistence.
func (s *FineService) Debts() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.debts))
	for plate, amount := range s.debts {
		out[plate] = amount
	}
	return out
}

// Restore replaces scheme and ledger from a persisted snapshot. An
// unrecognized scheme label falls back to Fixed rather than failing the
// whole restore.
func (s *FineService) Restore(schemeLabel string, debts map[string]float64) {
	scheme, err := domain.ParseFineScheme(schemeLabel)
	if err != nil {
		scheme = domain.SchemeFixed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheme = scheme
	s.debts = make(map[string]float64, len(debts))
	for plate, amount := range debts {
		if amount > 0 {
			s.debts[domain.NormalizePlate(plate)] = amount
		}
	}
}
