package domain

import (
	"math"
	"strings"
)

// OverstayThresholdHours is the stay length beyond which an overstay fine
// applies. Reserved-spot violations are fined regardless of duration.
const OverstayThresholdHours = 24.0

type FineScheme string

const (
	SchemeFixed       FineScheme = "Fixed"
	SchemeProgressive FineScheme = "Progressive"
	SchemeHourly      FineScheme = "Hourly"
)

func ParseFineScheme(s string) (FineScheme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return SchemeFixed, nil
	case "progressive":
		return SchemeProgressive, nil
	case "hourly":
		return SchemeHourly, nil
	default:
		return "", ErrUnknownFineScheme
	}
}

// BilledHours rounds a stay up to whole hours with a one-hour minimum.
func BilledHours(hours float64) float64 {
	billed := math.Ceil(hours)
	if billed < 1 {
		billed = 1
	}
	return billed
}

// ParkingFee computes the base fee for a stay. Exempt stays (a permit
// holder at a handicapped spot) cost nothing.
func ParkingFee(hours, hourlyRate float64, exempt bool) float64 {
	if exempt {
		return 0
	}
	return BilledHours(hours) * hourlyRate
}

// Fine computes the penalty for a stay under this scheme. No fine applies
// unless the stay overran the threshold or violated a reserved spot.
func (sch FineScheme) Fine(hours float64, reservedViolation bool) float64 {
	if hours <= OverstayThresholdHours && !reservedViolation {
		return 0
	}

	switch sch {
	case SchemeProgressive:
		switch {
		case hours <= 24:
			return 50
		case hours <= 48:
			return 150
		case hours <= 72:
			return 300
		default:
			return 500
		}
	case SchemeHourly:
		// A reserved violation is charged for the whole stay; a plain
		// overstay only for the hours past the threshold.
		if reservedViolation {
			return 20 * BilledHours(hours)
		}
		return 20 * math.Ceil(hours-OverstayThresholdHours)
	default:
		// Fixed is also the fallback for an unset scheme.
		return 50
	}
}
