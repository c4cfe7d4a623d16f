package domain

import "errors"

// Core sentinel errors. Handlers distinguish them with errors.Is so the
// station UI can show a specific message; none of them corrupts lot state.
var (
	ErrEmptyPlate          = errors.New("license plate is empty")
	ErrUnknownVehicleKind  = errors.New("unrecognized vehicle type")
	ErrUnknownSpotCategory = errors.New("unrecognized spot category")

	ErrSpotNotFound    = errors.New("spot not found")
	ErrSpotOccupied    = errors.New("spot is already occupied")
	ErrUnsuitableSpot  = errors.New("vehicle is not suitable for this spot category")
	ErrNoSpotAvailable = errors.New("no suitable spot available")

	ErrVehicleNotFound  = errors.New("vehicle is not currently parked")
	ErrDuplicateVehicle = errors.New("vehicle with this plate is already parked")

	ErrUnknownFineScheme    = errors.New("unrecognized fine scheme")
	ErrUnknownPaymentMethod = errors.New("unrecognized payment method")

	ErrExitNotQuoted = errors.New("no quoted bill for this plate")
	ErrExitNotPaid   = errors.New("payment has not been completed for this plate")
	ErrAwaitingGate  = errors.New("payment complete, waiting for gate release")
)
