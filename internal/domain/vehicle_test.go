package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVehicleKind(t *testing.T) {
	cases := []struct {
		label string
		want  VehicleKind
	}{
		{"Car", KindCar},
		{"car", KindCar},
		{"  Motorcycle ", KindMotorcycle},
		{"SUV", KindSUV},
		{"SUV/Truck", KindSUV},
		{"truck", KindSUV},
		{"Handicapped", KindHandicapped},
		{"handicapped vehicle", KindHandicapped},
	}
	for _, tc := range cases {
		got, err := ParseVehicleKind(tc.label)
		require.NoError(t, err, tc.label)
		require.Equal(t, tc.want, got, tc.label)
	}

	_, err := ParseVehicleKind("hovercraft")
	require.ErrorIs(t, err, ErrUnknownVehicleKind)
}

func TestNewVehicleNormalizesPlate(t *testing.T) {
	v, err := NewVehicle("  abc-123 ", "car")
	require.NoError(t, err)
	require.Equal(t, "ABC-123", v.Plate)
	require.False(t, v.EntryTime.IsZero())

	_, err = NewVehicle("   ", "car")
	require.ErrorIs(t, err, ErrEmptyPlate)
}

func TestSpotCategoryAllows(t *testing.T) {
	cases := []struct {
		category SpotCategory
		kind     VehicleKind
		want     bool
	}{
		{CategoryMotorcycle, KindMotorcycle, true},
		{CategoryMotorcycle, KindCar, false},
		{CategoryMotorcycle, KindSUV, false},
		{CategoryCompact, KindMotorcycle, true},
		{CategoryCompact, KindCar, true},
		{CategoryCompact, KindSUV, false},
		{CategoryRegular, KindCar, true},
		{CategoryRegular, KindSUV, true},
		{CategoryRegular, KindHandicapped, true},
		{CategoryRegular, KindMotorcycle, false},
		{CategoryReserved, KindMotorcycle, true},
		{CategoryReserved, KindSUV, true},
		{CategoryHandicapped, KindCar, true},
		{CategoryHandicapped, KindMotorcycle, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.category.Allows(tc.kind), "%s / %s", tc.category, tc.kind)
	}
}

func TestTicketIDIsStableForSameEntry(t *testing.T) {
	v, err := NewVehicle("WXY 42", "suv")
	require.NoError(t, err)
	spot := NewParkingSpot("F2-S03", CategoryRegular, 5)

	a := NewTicket(v, spot)
	b := NewTicket(v, spot)
	require.Equal(t, a.TicketID, b.TicketID)
	require.Equal(t, "F2-S03", a.SpotID)
	require.Equal(t, KindSUV, a.VehicleKind)
}

func TestDefaultLayout(t *testing.T) {
	spots := DefaultLayout()
	require.Len(t, spots, 80)

	require.Equal(t, "F1-S01", spots[0].ID)
	require.Equal(t, CategoryReserved, spots[0].Category)
	require.Equal(t, 10.0, spots[0].HourlyRate)

	require.Equal(t, "F1-S16", spots[15].ID)
	require.Equal(t, CategoryHandicapped, spots[15].Category)
	require.Equal(t, 2.0, spots[15].HourlyRate)

	require.Equal(t, "F2-S01", spots[20].ID)
	require.Equal(t, CategoryRegular, spots[20].Category)
	require.Equal(t, 5.0, spots[20].HourlyRate)

	require.Equal(t, "F4-S20", spots[79].ID)
	require.Equal(t, CategoryCompact, spots[79].Category)
	require.Equal(t, 2.0, spots[79].HourlyRate)
}
