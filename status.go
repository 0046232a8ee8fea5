package paycal

import "strings"

// Status is the canonical settlement state of a payment.
type Status string

const (
	Unpaid Status = "unpaid"
	Paid   Status = "paid"
	Early  Status = "early" // paid ahead of schedule
)

// Statuses lists canonical statuses in their toggle order.
var Statuses = []Status{Unpaid, Paid, Early}

// ParseStatus folds a raw status into the canonical space.
// The legacy "partial" and any unknown value fold into Unpaid.
func ParseStatus(raw string) Status {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case Paid, Early:
		return s
	default:
		return Unpaid
	}
}

// IsSettled reports whether nothing remains to pay.
func (s Status) IsSettled() bool { return s == Paid || s == Early }

// Next returns the following status in the toggle order.
func (s Status) Next() Status {
	for i, v := range Statuses {
		if v == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return Statuses[0]
}

// NormalizeStatus returns the canonical status of a record.
//
// The override status wins over the record's raw status. Any record whose
// period is before the current month is presumed settled and is Paid.
func NormalizeStatus(r *PaymentRecord, override Status, today Date) Status {
	raw := string(override)
	if raw == "" {
		raw = r.Status
	}
	status := ParseStatus(raw)
	if r.IsPast(today) {
		return Paid
	}
	return status
}

// BaseStatus is the status the record has without any override.
func BaseStatus(r *PaymentRecord, today Date) Status { return NormalizeStatus(r, "", today) }
