package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parking_system_go/internal/domain"
)

func TestFineServiceDefaultsToFixed(t *testing.T) {
	svc := NewFineService(zap.NewNop())
	require.Equal(t, domain.SchemeFixed, svc.Scheme())
	require.Equal(t, 50.0, svc.Fine(26, false))
}

func TestSetSchemeChangesComputation(t *testing.T) {
	svc := NewFineService(zap.NewNop())

	require.NoError(t, svc.SetScheme("progressive"))
	require.Equal(t, 150.0, svc.Fine(26, false))

	require.NoError(t, svc.SetScheme("Hourly"))
	require.Equal(t, 40.0, svc.Fine(26, false))

	require.ErrorIs(t, svc.SetScheme("random"), domain.ErrUnknownFineScheme)
	require.Equal(t, domain.SchemeHourly, svc.Scheme(), "failed switch keeps the old scheme")
}

func TestDebtLedgerAccumulatesPerPlate(t *testing.T) {
	svc := NewFineService(zap.NewNop())

	svc.AddDebt("abc 1", 50)
	svc.AddDebt("ABC 1 ", 150)
	svc.AddDebt("XYZ 2", 20)
	svc.AddDebt("XYZ 2", 0)

	require.Equal(t, 200.0, svc.Debt("ABC 1"), "debts are additive and case-insensitive")
	require.Equal(t, 20.0, svc.Debt("xyz 2"))
	require.Equal(t, 0.0, svc.Debt("UNKNOWN"))

	owed := svc.ClearDebt("abc 1")
	require.Equal(t, 200.0, owed)
	require.Equal(t, 0.0, svc.Debt("ABC 1"))
	require.Equal(t, 20.0, svc.Debt("XYZ 2"), "clearing one plate leaves others")
}

func TestRestoreReplacesSchemeAndLedger(t *testing.T) {
	svc := NewFineService(zap.NewNop())
	svc.AddDebt("OLD 1", 10)

	svc.Restore("Progressive", map[string]float64{"new 1": 75, "zero": 0})
	require.Equal(t, domain.SchemeProgressive, svc.Scheme())
	require.Equal(t, 75.0, svc.Debt("NEW 1"))
	require.Equal(t, 0.0, svc.Debt("OLD 1"))
	require.Equal(t, 0.0, svc.Debt("ZERO"), "zero balances are not carried")

	svc.Restore("garbage", nil)
	require.Equal(t, domain.SchemeFixed, svc.Scheme(), "unknown persisted scheme falls back to Fixed")
}
