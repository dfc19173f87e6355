package fiscal

import (
	"time"

	"github.com/shopspring/decimal"
)

// Apportion computes the fraction of a fiscal entry attributable to the
// reporting period and returns a scaled copy of the entry. The second
// return value is false when the entry has no overlap with the period and
// must be excluded from the book entirely.
//
// For proportional entries the fraction is overlapDays over the number of
// days in the month of the entry's period start, clamped to [0, 1].
// Amounts are rounded with a cumulative-difference scheme: the share of a
// period is round2(amount * daysThroughPeriodEnd/total) minus
// round2(amount * daysBeforePeriodStart/total). Adjacent period shares
// telescope, so splitting an entry across periods never drops or
// double-counts a cent.
//
// A proportional entry lacking its period range is deliberately treated as
// non-proportional and included at face value: legacy data contains such
// rows and dropping them would understate the book.
func Apportion(entry FiscalEntry, period Period) (FiscalEntry, bool) {
	if !entry.IsProportional || entry.PeriodStart == nil || entry.PeriodEnd == nil {
		return entry, period.Contains(entry.Date)
	}

	overlapDays := period.OverlapDays(*entry.PeriodStart, *entry.PeriodEnd)
	if overlapDays == 0 {
		return FiscalEntry{}, false
	}

	totalDays := daysInMonth(*entry.PeriodStart)
	daysBefore := daysStrictlyBefore(*entry.PeriodStart, *entry.PeriodEnd, period.Start)
	daysThrough := daysBefore + overlapDays
	if daysBefore == 0 && daysThrough >= totalDays {
		return entry, true
	}

	scaled := entry
	scaled.TaxBase = cumulativeShare(entry.TaxBase, daysBefore, daysThrough, totalDays)
	scaled.VATAmount = cumulativeShare(entry.VATAmount, daysBefore, daysThrough, totalDays)
	scaled.IRPFAmount = cumulativeShare(entry.IRPFAmount, daysBefore, daysThrough, totalDays)
	scaled.TotalAmount = scaled.TaxBase.Add(scaled.VATAmount).Sub(scaled.IRPFAmount)
	return scaled, true
}

// cumulativeShare returns round2(amount*through/total) - round2(amount*before/total),
// with both day counts clamped to total so the fraction never exceeds 1.
func cumulativeShare(amount decimal.Decimal, before, through, total int) decimal.Decimal {
	if before > total {
		before = total
	}
	if through > total {
		through = total
	}
	den := decimal.NewFromInt(int64(total))
	cumEnd := round2(amount.Mul(decimal.NewFromInt(int64(through))).Div(den))
	cumStart := round2(amount.Mul(decimal.NewFromInt(int64(before))).Div(den))
	return cumEnd.Sub(cumStart)
}

// daysStrictlyBefore counts the days of the inclusive range [from, to]
// that fall before the given boundary.
func daysStrictlyBefore(from, to, boundary time.Time) int {
	start := truncateToDay(from)
	end := truncateToDay(to)
	if !start.Before(boundary) {
		return 0
	}
	last := boundary.AddDate(0, 0, -1)
	if end.Before(last) {
		last = end
	}
	return int(last.Sub(start).Hours()/24) + 1
}
