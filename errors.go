package paycal

import "errors"

var (
	// ErrInvalidRate is returned when a FX rate is not a finite value > 0.
	ErrInvalidRate = errors.New("fx rate must be a finite number greater than zero")
	// ErrInvalidCurrency is returned for a currency other than usd or uah.
	ErrInvalidCurrency = errors.New("unknown currency")
	// ErrInvalidSnapshot is returned when a backup payload is not a JSON object.
	ErrInvalidSnapshot = errors.New("invalid snapshot payload")
	// ErrProjectMismatch is returned when a backup belongs to another calendar.
	ErrProjectMismatch = errors.New("snapshot project mismatch")
	// ErrInvalidFilter is returned when a stored filter selects a year without payments.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrUnknownRecord is returned when a record key does not exist in the schedule.
	ErrUnknownRecord = errors.New("unknown payment record")
)
