package domain

import "fmt"

// DefaultLayout builds the fixed reference layout: 4 floors of 20 spots.
// Floor 1 is split between VIP reserved (S01-S15, RM 10/h) and handicapped
// (S16-S20, RM 2/h); floors 2-3 are regular (RM 5/h); floor 4 is compact
// (RM 2/h). Spot order is the deterministic first-fit search order.
func DefaultLayout() []*ParkingSpot {
	const (
		floors        = 4
		spotsPerFloor = 20
	)

	spots := make([]*ParkingSpot, 0, floors*spotsPerFloor)
	for f := 1; f <= floors; f++ {
		for s := 1; s <= spotsPerFloor; s++ {
			id := fmt.Sprintf("F%d-S%02d", f, s)
			category := CategoryRegular
			rate := 5.0

			switch {
			case f == 1 && s <= 15:
				category = CategoryReserved
				rate = 10.0
			case f == 1:
				category = CategoryHandicapped
				rate = 2.0
			case f == 4:
				category = CategoryCompact
				rate = 2.0
			}

			spots = append(spots, NewParkingSpot(id, category, rate))
		}
	}
	return spots
}
