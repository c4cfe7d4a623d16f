package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return MethodCash, nil
	case "card", "debit/credit card":
		return MethodCard, nil
	default:
		return "", ErrUnknownPaymentMethod
	}
}

// Transaction is the immutable record of one settled payment. The sum of
// all transaction amounts is the lot's total revenue; the allocator's
// accumulator is only a cached projection of this log.
type Transaction struct {
	ID         string        `json:"id"`
	Plate      string        `json:"plate"`
	SpotID     string        `json:"spot_id"`
	ExitTime   time.Time     `json:"exit_time"`
	AmountPaid float64       `json:"amount_paid"`
	Method     PaymentMethod `json:"method"`
}

func NewTransaction(plate, spotID string, exitTime time.Time, amountPaid float64, method PaymentMethod) Transaction {
	return Transaction{
		ID:         uuid.NewString(),
		Plate:      NormalizePlate(plate),
		SpotID:     spotID,
		ExitTime:   exitTime,
		AmountPaid: amountPaid,
		Method:     method,
	}
}
