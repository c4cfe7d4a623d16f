package domain

import (
	"fmt"
	"time"
)

// Ticket is the immutable receipt issued at entry. The ID is derived from
// the plate and entry minute, so re-issuing for the same entry yields the
// same ticket ID.
type Ticket struct {
	TicketID     string       `json:"ticket_id"`
	Plate        string       `json:"plate"`
	SpotID       string       `json:"spot_id"`
	SpotCategory SpotCategory `json:"spot_category"`
	VehicleKind  VehicleKind  `json:"vehicle_kind"`
	EntryTime    time.Time    `json:"entry_time"`
}

func NewTicket(v *Vehicle, spot *ParkingSpot) Ticket {
	return Ticket{
		TicketID:     fmt.Sprintf("T-%s-%s", v.Plate, v.EntryTime.Format("200601021504")),
		Plate:        v.Plate,
		SpotID:       spot.ID,
		SpotCategory: spot.Category,
		VehicleKind:  v.Kind,
		EntryTime:    v.EntryTime,
	}
}
