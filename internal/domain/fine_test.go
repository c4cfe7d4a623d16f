package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParkingFee(t *testing.T) {
	require.Equal(t, 10.0, ParkingFee(1.1, 5, false), "partial hours round up")
	require.Equal(t, 5.0, ParkingFee(0.5, 5, false), "one hour minimum")
	require.Equal(t, 5.0, ParkingFee(1.0, 5, false))
	require.Equal(t, 125.0, ParkingFee(25, 5, false))
	require.Equal(t, 0.0, ParkingFee(3, 2, true), "exempt stays are free")
}

func TestFineNotDueWithinThreshold(t *testing.T) {
	for _, scheme := range []FineScheme{SchemeFixed, SchemeProgressive, SchemeHourly} {
		require.Equal(t, 0.0, scheme.Fine(24, false), string(scheme))
		require.Equal(t, 0.0, scheme.Fine(1, false), string(scheme))
	}
}

func TestFineOverstay(t *testing.T) {
	require.Equal(t, 50.0, SchemeFixed.Fine(26, false))
	require.Equal(t, 150.0, SchemeProgressive.Fine(26, false))
	require.Equal(t, 40.0, SchemeHourly.Fine(26, false), "20/h on the ceiled excess")

	require.Equal(t, 300.0, SchemeProgressive.Fine(60, false))
	require.Equal(t, 500.0, SchemeProgressive.Fine(100, false))
	require.Equal(t, 20.0, SchemeHourly.Fine(24.5, false))
}

func TestFineReservedViolation(t *testing.T) {
	// A violation is fined even on a short stay; Hourly charges the whole
	// stay, not just the excess.
	require.Equal(t, 50.0, SchemeFixed.Fine(2, true))
	require.Equal(t, 50.0, SchemeProgressive.Fine(2, true))
	require.Equal(t, 40.0, SchemeHourly.Fine(1.5, true))
	require.Equal(t, 520.0, SchemeHourly.Fine(25.2, true))
}

func TestParseFineScheme(t *testing.T) {
	got, err := ParseFineScheme(" fixed ")
	require.NoError(t, err)
	require.Equal(t, SchemeFixed, got)

	_, err = ParseFineScheme("exponential")
	require.ErrorIs(t, err, ErrUnknownFineScheme)
}
