package paycal

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
)

// Override is a sparse user correction layered over a record.
//
// The zero value of each field means "not overridden".
type Override struct {
	Status      Status
	PaidUSD     Number
	PaidUAH     Number
	PaymentDate string
	Note        string
}

// IsEmpty reports whether the override carries no field at all.
func (o Override) IsEmpty() bool {
	return o.Status == "" && !o.PaidUSD.Valid() && !o.PaidUAH.Valid() && o.PaymentDate == "" && o.Note == ""
}

// Compact removes the redundant fields of o: the status is dropped when it is
// the record's normalized base status.
func Compact(o Override, base Status) Override {
	if o.Status != "" && o.Status == base {
		o.Status = ""
	}
	return o
}

// Patch describes an edit of an override.
//
// A nil field leaves the override untouched. An absent Number or an empty
// string clears the field.
type Patch struct {
	Status      *Status
	PaidUSD     *Number
	PaidUAH     *Number
	PaymentDate *string
	Note        *string
}

// Apply returns o with the patch merged in. Paid amounts are rounded to cents.
func (p Patch) Apply(o Override) Override {
	if p.Status != nil && *p.Status != "" {
		o.Status = ParseStatus(string(*p.Status))
	}
	if p.PaidUSD != nil {
		o.PaidUSD = roundNumber(*p.PaidUSD)
	}
	if p.PaidUAH != nil {
		o.PaidUAH = roundNumber(*p.PaidUAH)
	}
	if p.PaymentDate != nil {
		o.PaymentDate = strings.TrimSpace(*p.PaymentDate)
	}
	if p.Note != nil {
		o.Note = strings.TrimSpace(*p.Note)
	}
	return o
}

func roundNumber(n Number) Number {
	if d, ok := n.Decimal(); ok {
		return N(Round2(d))
	}
	return Number{}
}

func (o Override) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("status", string(o.Status))
	if o.PaidUSD.Valid() {
		w.Append("paid_usd", o.PaidUSD)
	}
	if o.PaidUAH.Valid() {
		w.Append("paid_uah", o.PaidUAH)
	}
	w.Optional("payment_date", o.PaymentDate)
	w.Optional("note", o.Note)
	return w.MarshalJSON()
}

func (o *Override) UnmarshalJSON(data []byte) error {
	var raw struct {
		Status      *string `json:"status"`
		PaidUSD     Number  `json:"paid_usd"`
		PaidUAH     Number  `json:"paid_uah"`
		PaymentDate *string `json:"payment_date"`
		Note        *string `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Override{
		PaidUSD:     raw.PaidUSD,
		PaidUAH:     raw.PaidUAH,
		PaymentDate: strOf(raw.PaymentDate),
		Note:        strOf(raw.Note),
	}
	if s := strOf(raw.Status); s != "" {
		o.Status = ParseStatus(s)
	}
	return nil
}

// Overrides is the set of user deviations from the plan, keyed by record key.
//
// Entries are always compacted: no empty override is ever stored.
type Overrides map[string]Override

// Get returns the override of key, or an empty one.
func (m Overrides) Get(key string) Override { return m[key] }

// Put stores o compacted against the base status, or deletes the entry if nothing remains.
func (m Overrides) Put(key string, o Override, base Status) {
	o = Compact(o, base)
	if o.IsEmpty() {
		delete(m, key)
		return
	}
	m[key] = o
}

// Update merges p into the current override of key, then compacts it.
func (m Overrides) Update(key string, p Patch, base Status) Override {
	m.Put(key, p.Apply(m[key]), base)
	return m[key]
}

// Delete removes the override of key.
func (m Overrides) Delete(key string) { delete(m, key) }

// Reset removes all overrides.
func (m Overrides) Reset() { clear(m) }

// Clone returns an independent copy.
func (m Overrides) Clone() Overrides {
	if m == nil {
		return Overrides{}
	}
	return maps.Clone(m)
}

// Keys returns the sorted keys.
func (m Overrides) Keys() []string { return slices.Sorted(maps.Keys(m)) }

// UnmarshalJSON drops entries that decode empty.
func (m *Overrides) UnmarshalJSON(data []byte) error {
	var raw map[string]Override
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Overrides, len(raw))
	for k, o := range raw {
		if !o.IsEmpty() {
			out[k] = o
		}
	}
	*m = out
	return nil
}
