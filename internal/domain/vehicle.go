package domain

import (
	"strings"
	"time"
)

type VehicleKind string

const (
	KindCar         VehicleKind = "Car"
	KindMotorcycle  VehicleKind = "Motorcycle"
	KindSUV         VehicleKind = "SUV"
	KindHandicapped VehicleKind = "Handicapped"
)

// ParseVehicleKind maps an entry-form label to a vehicle kind. Labels are
// matched loosely ("SUV/Truck", "Handicapped Vehicle") because the station
// UI historically sent them in several spellings.
func ParseVehicleKind(label string) (VehicleKind, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "car":
		return KindCar, nil
	case "motorcycle":
		return KindMotorcycle, nil
	case "suv", "suv/truck", "truck":
		return KindSUV, nil
	case "handicapped", "handicapped vehicle":
		return KindHandicapped, nil
	default:
		return "", ErrUnknownVehicleKind
	}
}

// NormalizePlate is applied at every boundary that accepts a plate: plates
// are case-insensitive identities, stored uppercased and trimmed.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

type Vehicle struct {
	Plate     string      `json:"plate"`
	Kind      VehicleKind `json:"kind"`
	EntryTime time.Time   `json:"entry_time"`
}

// NewVehicle stamps the entry time immediately; it is never updated after.
func NewVehicle(plate string, kindLabel string) (*Vehicle, error) {
	normalized := NormalizePlate(plate)
	if normalized == "" {
		return nil, ErrEmptyPlate
	}
	kind, err := ParseVehicleKind(kindLabel)
	if err != nil {
		return nil, err
	}
	return &Vehicle{
		Plate:     normalized,
		Kind:      kind,
		EntryTime: time.Now(),
	}, nil
}
