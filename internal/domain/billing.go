package domain

import (
	"fmt"
	"time"
)

// FormatRM renders a monetary amount in the local currency notation with
// two decimal places, as shown on receipts and the admin dashboard.
func FormatRM(amount float64) string {
	return fmt.Sprintf("RM %.2f", amount)
}

// Bill is the quote presented at the exit station before payment. TotalDue
// is composed by the exit flow (fee + new fine + old debt) so the station
// can offer settle-now versus defer before anything is committed.
type Bill struct {
	Plate        string       `json:"plate"`
	SpotID       string       `json:"spot_id"`
	SpotCategory SpotCategory `json:"spot_category"`
	EntryTime    time.Time    `json:"entry_time"`
	QuotedAt     time.Time    `json:"quoted_at"`

	HoursBilled float64 `json:"hours_billed"`
	HourlyRate  float64 `json:"hourly_rate"`

	ParkingFee float64 `json:"parking_fee"`
	NewFine    float64 `json:"new_fine"`
	OldDebt    float64 `json:"old_debt"`
	TotalDue   float64 `json:"total_due"`

	ReservedViolation bool `json:"reserved_violation"`
	HandicappedExempt bool `json:"handicapped_exempt"`
}

// Receipt is the immutable outcome of a completed payment. When fines were
// deferred, DeferredBalance carries what remains on the plate's account.
type Receipt struct {
	Bill            Bill          `json:"bill"`
	TransactionID   string        `json:"transaction_id"`
	AmountPaid      float64       `json:"amount_paid"`
	Method          PaymentMethod `json:"method"`
	DeferredBalance float64       `json:"deferred_balance"`
	PaidAt          time.Time     `json:"paid_at"`
}

// --- API payloads ---

type ParkRequestDTO struct {
	Plate       string `json:"plate" binding:"required"`
	VehicleType string `json:"vehicle_type" binding:"required"`
	// Optional: empty means automatic first-fit allocation.
	SpotID string `json:"spot_id"`
}

type QuoteRequestDTO struct {
	Plate string `json:"plate" binding:"required"`
}

type PayRequestDTO struct {
	Plate string `json:"plate" binding:"required"`
	// SettleFines false defers new fines (and keeps old debt) on the
	// plate's account; only the parking fee is paid now.
	SettleFines bool   `json:"settle_fines"`
	Method      string `json:"method" binding:"required"`
}

type PermitRequestDTO struct {
	Plate string `json:"plate" binding:"required"`
}

type FineSchemeDTO struct {
	Scheme string `json:"scheme" binding:"required"`
}
