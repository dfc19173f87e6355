package fiscal

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proportionalEntry(taxBase string, vatRate int64, from, to time.Time) FiscalEntry {
	base, _ := decimal.NewFromString(taxBase)
	e := newEntry(entryFields{
		ID:         uuid.New(),
		SourceType: SourceReceivedInvoice,
		Date:       from,
		TaxBase:    base,
		VATRate:    decimal.NewFromInt(vatRate),
	})
	e.IsProportional = true
	e.PeriodStart = &from
	e.PeriodEnd = &to
	return e
}

func TestApportion_PartialMonth(t *testing.T) {
	// 15 days of a 31-day month: 15/31 x 1000 = 483.87
	entry := proportionalEntry("1000", 21, date(2024, 7, 17), date(2024, 7, 31))
	july, err := ResolvePeriod(2024, nil, intPtr(7))
	require.NoError(t, err)

	scaled, included := Apportion(entry, july)
	require.True(t, included)
	assert.True(t, scaled.TaxBase.Equal(decimal.RequireFromString("483.87")), "got %s", scaled.TaxBase)
	// 210.00 x 15/31 = 101.61
	assert.True(t, scaled.VATAmount.Equal(decimal.RequireFromString("101.61")), "got %s", scaled.VATAmount)
	assert.True(t, scaled.TotalAmount.Equal(scaled.TaxBase.Add(scaled.VATAmount)))
}

func TestApportion_NoOverlapExcludesEntry(t *testing.T) {
	entry := proportionalEntry("1000", 21, date(2024, 7, 17), date(2024, 7, 31))
	june, err := ResolvePeriod(2024, nil, intPtr(6))
	require.NoError(t, err)

	_, included := Apportion(entry, june)
	assert.False(t, included)
}

func TestApportion_FullCoveragePassesThrough(t *testing.T) {
	entry := proportionalEntry("1000", 21, date(2024, 7, 1), date(2024, 7, 31))
	july, err := ResolvePeriod(2024, nil, intPtr(7))
	require.NoError(t, err)

	scaled, included := Apportion(entry, july)
	require.True(t, included)
	assert.True(t, scaled.TaxBase.Equal(entry.TaxBase))
	assert.True(t, scaled.VATAmount.Equal(entry.VATAmount))
}

func TestApportion_ConservationAcrossAdjacentPeriods(t *testing.T) {
	tests := []struct {
		name    string
		taxBase string
		from    time.Time
		to      time.Time
	}{
		{"awkward cent split", "1.55", date(2024, 6, 16), date(2024, 7, 15)},
		{"round thousand", "1000", date(2024, 6, 16), date(2024, 7, 15)},
		{"uneven thirds", "100", date(2024, 6, 21), date(2024, 7, 20)},
		{"tiny amount", "0.01", date(2024, 6, 16), date(2024, 7, 15)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry := proportionalEntry(tc.taxBase, 21, tc.from, tc.to)
			june, err := ResolvePeriod(2024, nil, intPtr(6))
			require.NoError(t, err)
			july, err := ResolvePeriod(2024, nil, intPtr(7))
			require.NoError(t, err)

			inJune, ok := Apportion(entry, june)
			require.True(t, ok)
			inJuly, ok := Apportion(entry, july)
			require.True(t, ok)

			sum := inJune.TaxBase.Add(inJuly.TaxBase)
			assert.True(t, sum.Equal(entry.TaxBase),
				"taxBase not conserved: %s + %s = %s, want %s",
				inJune.TaxBase, inJuly.TaxBase, sum, entry.TaxBase)

			vatSum := inJune.VATAmount.Add(inJuly.VATAmount)
			assert.True(t, vatSum.Equal(entry.VATAmount),
				"vatAmount not conserved: %s + %s = %s, want %s",
				inJune.VATAmount, inJuly.VATAmount, vatSum, entry.VATAmount)
		})
	}
}

func TestApportion_MissingPeriodStartFallsBackToFaceValue(t *testing.T) {
	entry := newEntry(entryFields{
		ID:         uuid.New(),
		SourceType: SourceReceivedInvoice,
		Date:       date(2024, 7, 10),
		TaxBase:    decimal.NewFromInt(500),
		VATRate:    decimal.NewFromInt(10),
	})
	entry.IsProportional = true // flagged proportional but no period range

	july, err := ResolvePeriod(2024, nil, intPtr(7))
	require.NoError(t, err)

	scaled, included := Apportion(entry, july)
	require.True(t, included)
	assert.True(t, scaled.TaxBase.Equal(entry.TaxBase))

	june, err := ResolvePeriod(2024, nil, intPtr(6))
	require.NoError(t, err)
	_, included = Apportion(entry, june)
	assert.False(t, included, "fallback entry follows its entry date")
}

func TestApportion_NonProportionalUsesEntryDate(t *testing.T) {
	entry := newEntry(entryFields{
		ID:         uuid.New(),
		SourceType: SourceIssuedInvoice,
		Date:       date(2024, 3, 31),
		TaxBase:    decimal.NewFromInt(100),
		VATRate:    decimal.NewFromInt(21),
	})

	q1, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)
	scaled, included := Apportion(entry, q1)
	require.True(t, included)
	assert.True(t, scaled.TaxBase.Equal(entry.TaxBase))

	q2, err := ResolvePeriod(2024, intPtr(2), nil)
	require.NoError(t, err)
	_, included = Apportion(entry, q2)
	assert.False(t, included)
}
