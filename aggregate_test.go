package paycal

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAggregate(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset), mustDecode(t, "", betaDataset))
	today := NewDate(2026, 2, 5)
	rows := rowsOf(s, today)

	tests := []struct {
		period Period
		keys   []string
	}{
		{Monthly, []string{"2025-12", "2026-01", "2026-02", "2026-03", "2026-04", "2026-05"}},
		{Quarterly, []string{"2025-Q4", "2026-Q1", "2026-Q2"}},
		{Yearly, []string{"2025", "2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			got := Aggregate(rows, tt.period)
			if len(got) != len(tt.keys) {
				t.Fatalf("Aggregate() = %d groups, want %d", len(got), len(tt.keys))
			}
			var count int
			var usd, uah decimal.Decimal
			for i, g := range got {
				if g.Key != tt.keys[i] {
					t.Errorf("group[%d].Key = %q, want %q", i, g.Key, tt.keys[i])
				}
				count += g.Count
				usd = usd.Add(g.ScheduleUSD)
				uah = uah.Add(g.ScheduleUAH)
			}
			if count != len(rows) {
				t.Errorf("total count = %d, want %d", count, len(rows))
			}
			var wantUSD, wantUAH decimal.Decimal
			for _, r := range rows {
				wantUSD = wantUSD.Add(r.View.ScheduleUSD)
				wantUAH = wantUAH.Add(r.View.ScheduleUAH)
			}
			decEqual(t, "sum ScheduleUSD", usd, wantUSD.String())
			decEqual(t, "sum ScheduleUAH", uah, wantUAH.String())
		})
	}
}

func TestAggregate_Status(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset))
	today := NewDate(2026, 2, 5)
	rows := rowsOf(s, today)

	byKey := make(map[string]PeriodSummary)
	for _, g := range Aggregate(rows, Monthly) {
		byKey[g.Key] = g
	}
	if got := byKey["2026-01"].Status(); got != Paid {
		t.Errorf("2026-01 status = %q, want paid", got)
	}
	if got := byKey["2026-04"].Status(); got != Unpaid {
		t.Errorf("2026-04 status = %q, want unpaid", got)
	}
	apr := byKey["2026-04"]
	if apr.Count != 2 || apr.UnpaidCount != 2 {
		t.Errorf("2026-04 counts = %d/%d, want 2/2", apr.UnpaidCount, apr.Count)
	}
	decEqual(t, "2026-04 ScheduleUSD", apr.ScheduleUSD, "1150")
	decEqual(t, "2026-04 RemainingUSD", apr.RemainingUSD, "1150")

	december := byKey["2025-12"]
	decEqual(t, "2025-12 PaidUAH", december.PaidUAH, "206000")
	decEqual(t, "2025-12 RemainingUSD", december.RemainingUSD, "0")

	early := PeriodSummary{EarlyCount: 2}
	if early.Status() != Early {
		t.Errorf("only early rows = %q, want early", early.Status())
	}
}
