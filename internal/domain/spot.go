package domain

import "strings"

type SpotCategory string

const (
	CategoryRegular     SpotCategory = "Regular"
	CategoryReserved    SpotCategory = "Reserved"
	CategoryHandicapped SpotCategory = "Handicapped"
	CategoryCompact     SpotCategory = "Compact"
	CategoryMotorcycle  SpotCategory = "Motorcycle"
)

func ParseSpotCategory(s string) (SpotCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular":
		return CategoryRegular, nil
	case "reserved":
		return CategoryReserved, nil
	case "handicapped":
		return CategoryHandicapped, nil
	case "compact":
		return CategoryCompact, nil
	case "motorcycle":
		return CategoryMotorcycle, nil
	default:
		return "", ErrUnknownSpotCategory
	}
}

// Allows reports whether a vehicle kind may physically occupy a spot of this
// category. Reserved and Handicapped spots admit every kind on purpose:
// authorization (reserved permit) and fee exemption (handicapped permit) are
// enforced at exit, so an unauthorized driver can still choose to park there
// and be fined later.
func (c SpotCategory) Allows(kind VehicleKind) bool {
	switch c {
	case CategoryMotorcycle:
		return kind == KindMotorcycle
	case CategoryCompact:
		return kind == KindMotorcycle || kind == KindCar
	case CategoryRegular:
		return kind != KindMotorcycle
	default:
		// Reserved, Handicapped: any kind fits.
		return true
	}
}

// ParkingSpot is mutated only by the allocator. Invariant: Vehicle is
// non-nil iff Occupied is true.
type ParkingSpot struct {
	ID         string       `json:"id"`
	Category   SpotCategory `json:"category"`
	HourlyRate float64      `json:"hourly_rate"`
	Occupied   bool         `json:"occupied"`
	Vehicle    *Vehicle     `json:"vehicle,omitempty"`
}

func NewParkingSpot(id string, category SpotCategory, hourlyRate float64) *ParkingSpot {
	return &ParkingSpot{ID: id, Category: category, HourlyRate: hourlyRate}
}

func (s *ParkingSpot) SuitableFor(v *Vehicle) bool {
	if v == nil {
		return false
	}
	return s.Category.Allows(v.Kind)
}

func (s *ParkingSpot) Park(v *Vehicle) {
	s.Vehicle = v
	s.Occupied = true
}

func (s *ParkingSpot) Clear() {
	s.Vehicle = nil
	s.Occupied = false
}
