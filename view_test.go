package paycal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildView_PastPeriodIsPaid(t *testing.T) {
	r := &PaymentRecord{ID: "1", DueDate: NewDate(2024, 1, 1), ScheduleUSD: N(500), Rate: N(40), Status: "unpaid"}
	v := BuildView(r, Override{Status: Unpaid}, RateContext{}, NewDate(2025, 1, 1))

	if v.Status != Paid {
		t.Errorf("Status = %q, want paid", v.Status)
	}
	decEqual(t, "PaidUSD", v.PaidUSD, "500")
	decEqual(t, "PaidUAH", v.PaidUAH, "20000")
	if v.Overdue {
		t.Error("Overdue = true, want false")
	}
}

func TestBuildView_ExplicitAmountsOnUnpaid(t *testing.T) {
	r := &PaymentRecord{ID: "1", DueDate: NewDate(2024, 1, 1), ScheduleUSD: N(500), Rate: N(40), Status: "unpaid"}
	v := BuildView(r, Override{PaidUAH: N(12000)}, RateContext{}, NewDate(2023, 6, 1))

	if v.Status != Unpaid {
		t.Errorf("Status = %q, want unpaid", v.Status)
	}
	decEqual(t, "PaidUSD", v.PaidUSD, "300")
	decEqual(t, "PaidUAH", v.PaidUAH, "12000")
}

func TestBuildView(t *testing.T) {
	today := NewDate(2026, 3, 15)
	rates := RateContext{Global: dec("41"), Default: dec("40")}
	tests := []struct {
		name   string
		record PaymentRecord
		o      Override
		check  func(t *testing.T, v PaymentView)
	}{
		{
			name:   "paid mirrors fact_uah when usd reconciles",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), FactUSD: N(1000.004), FactUAH: N(41500), Status: "paid"},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "PaidUSD", v.PaidUSD, "1000")
				decEqual(t, "PaidUAH", v.PaidUAH, "41500")
				decEqual(t, "AmountUAH", v.AmountUAH, "41500")
			},
		},
		{
			name:   "paid converts at the global rate without actuals",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), Status: "paid"},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "PaidUSD", v.PaidUSD, "1000")
				decEqual(t, "PaidUAH", v.PaidUAH, "41000")
				decEqual(t, "ScheduleUAH", v.ScheduleUAH, "41000")
			},
		},
		{
			name:   "record rate wins over global",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(100), Rate: N(42.5)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "ScheduleUAH", v.ScheduleUAH, "4250")
			},
		},
		{
			name:   "explicit usd derives uah",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), Rate: N(40)},
			o:      Override{Status: Paid, PaidUSD: N(250.5)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "PaidUSD", v.PaidUSD, "250.5")
				decEqual(t, "PaidUAH", v.PaidUAH, "10020")
			},
		},
		{
			name:   "both explicit amounts are kept",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), Rate: N(40)},
			o:      Override{PaidUSD: N(10), PaidUAH: N(999)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "PaidUSD", v.PaidUSD, "10")
				decEqual(t, "PaidUAH", v.PaidUAH, "999")
			},
		},
		{
			name:   "unpaid zeroes derived amounts",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), FactUSD: N(1000), FactUAH: N(41000)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "PaidUSD", v.PaidUSD, "0")
				decEqual(t, "PaidUAH", v.PaidUAH, "0")
				decEqual(t, "ScheduleUAH", v.ScheduleUAH, "41000")
			},
		},
		{
			name:   "early without amounts pays nothing",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000)},
			o:      Override{Status: Early},
			check: func(t *testing.T, v PaymentView) {
				if v.Status != Early {
					t.Errorf("Status = %q", v.Status)
				}
				decEqual(t, "PaidUSD", v.PaidUSD, "0")
			},
		},
		{
			name:   "schedule uah ignores fact_uah when usd differs",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1000), FactUSD: N(900), FactUAH: N(37000), Rate: N(40)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "ScheduleUAH", v.ScheduleUAH, "40000")
				decEqual(t, "AmountUSD", v.AmountUSD, "900")
				decEqual(t, "AmountUAH", v.AmountUAH, "37000")
			},
		},
		{
			name:   "overdue in the current month",
			record: PaymentRecord{DueDate: NewDate(2026, 3, 10), ScheduleUSD: N(1000)},
			check: func(t *testing.T, v PaymentView) {
				if !v.Overdue {
					t.Error("Overdue = false, want true")
				}
			},
		},
		{
			name:   "override note and payment date win",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1), Note: "plan", PaymentDate: "2026-04-30"},
			o:      Override{Note: "wire", PaymentDate: "2026-04-29"},
			check: func(t *testing.T, v PaymentView) {
				if v.Note != "wire" || v.PaymentDate != "2026-04-29" {
					t.Errorf("Note, PaymentDate = %q, %q", v.Note, v.PaymentDate)
				}
			},
		},
		{
			name:   "missing amounts fall back to zero",
			record: PaymentRecord{DueDate: NewDate(2026, 5, 1)},
			check: func(t *testing.T, v PaymentView) {
				decEqual(t, "ScheduleUSD", v.ScheduleUSD, "0")
				decEqual(t, "AmountUAH", v.AmountUAH, "0")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, BuildView(&tt.record, tt.o, rates, today))
		})
	}
}

func TestBuildView_IsPure(t *testing.T) {
	r := &PaymentRecord{DueDate: NewDate(2026, 5, 1), ScheduleUSD: N(1234.567), FactUAH: N(1), Rate: N(41.1)}
	o := Override{Status: Paid, PaidUSD: N(10)}
	today := NewDate(2026, 3, 15)
	a := BuildView(r, o, RateContext{}, today)
	b := BuildView(r, o, RateContext{}, today)
	if diff := cmp.Diff(a.Status, b.Status); diff != "" {
		t.Errorf("BuildView() mismatch (-first +second):\n%s", diff)
	}
	for name, pair := range map[string][2]string{
		"PaidUSD":     {a.PaidUSD.String(), b.PaidUSD.String()},
		"PaidUAH":     {a.PaidUAH.String(), b.PaidUAH.String()},
		"ScheduleUAH": {a.ScheduleUAH.String(), b.ScheduleUAH.String()},
	} {
		if pair[0] != pair[1] {
			t.Errorf("%s differs: %s != %s", name, pair[0], pair[1])
		}
	}
}

func TestEffectiveRate(t *testing.T) {
	tests := []struct {
		name  string
		rate  Number
		rates RateContext
		want  string
	}{
		{"record", N(40), RateContext{Global: dec("41"), Default: dec("42.5")}, "40"},
		{"non positive record rate", N(0), RateContext{Global: dec("41")}, "41"},
		{"global", Number{}, RateContext{Global: dec("41"), Default: dec("42.5")}, "41"},
		{"default", Number{}, RateContext{Default: dec("42.5")}, "42.5"},
		{"fallback", Number{}, RateContext{}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decEqual(t, "EffectiveRate", tt.rates.EffectiveRate(&PaymentRecord{Rate: tt.rate}), tt.want)
		})
	}
}

func TestDefaultRate(t *testing.T) {
	tests := []struct {
		name    string
		records []*PaymentRecord
		want    string
	}{
		{"mean of rates", []*PaymentRecord{{Rate: N(40)}, {Rate: N(41)}, {Rate: N(0)}, {}}, "40.5"},
		{"implied rates", []*PaymentRecord{{FactUSD: N(3), FactUAH: N(125)}, {FactUSD: N(0), FactUAH: N(1)}}, "41.6667"},
		{"fallback", []*PaymentRecord{{ScheduleUSD: N(1)}}, "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decEqual(t, "DefaultRate", DefaultRate(tt.records), tt.want)
		})
	}
}
