package fiscal

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryAt(taxBase string, vatRate int64) FiscalEntry {
	base, _ := decimal.NewFromString(taxBase)
	return newEntry(entryFields{
		ID:         uuid.New(),
		SourceType: SourceReceivedInvoice,
		Date:       date(2024, 1, 15),
		TaxBase:    base,
		VATRate:    decimal.NewFromInt(vatRate),
	})
}

func TestComputeBreakdown_GroupsByRate(t *testing.T) {
	entries := []FiscalEntry{
		entryAt("100", 21),
		entryAt("200", 21),
		entryAt("50", 10),
		entryAt("30", 4),
		entryAt("10", 0),
	}

	totals := ComputeBreakdown(entries, BookIVASoportado)

	require.Len(t, totals.DesgloseIVA, 4)
	// buckets sorted ascending by rate
	assert.True(t, totals.DesgloseIVA[0].Rate.Equal(decimal.NewFromInt(0)))
	assert.True(t, totals.DesgloseIVA[1].Rate.Equal(decimal.NewFromInt(4)))
	assert.True(t, totals.DesgloseIVA[2].Rate.Equal(decimal.NewFromInt(10)))
	assert.True(t, totals.DesgloseIVA[3].Rate.Equal(decimal.NewFromInt(21)))

	assert.Equal(t, 2, totals.DesgloseIVA[3].InvoiceCount)
	assert.True(t, totals.DesgloseIVA[3].BaseImponible.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.DesgloseIVA[3].CuotaIVA.Equal(decimal.NewFromInt(63)))

	require.NotNil(t, totals.CuotaIVADeducible)
	assert.Nil(t, totals.TotalCuotaIVA)
}

func TestComputeBreakdown_BucketSumsEqualTotalsExactly(t *testing.T) {
	// many small awkward amounts; fixed-point accumulation must not drift
	entries := make([]FiscalEntry, 0, 300)
	for i := 0; i < 100; i++ {
		entries = append(entries, entryAt("0.01", 21))
		entries = append(entries, entryAt("0.07", 10))
		entries = append(entries, entryAt("1.33", 4))
	}

	totals := ComputeBreakdown(entries, BookIVASoportado)

	baseSum := decimal.Zero
	cuotaSum := decimal.Zero
	for _, b := range totals.DesgloseIVA {
		baseSum = baseSum.Add(b.BaseImponible)
		cuotaSum = cuotaSum.Add(b.CuotaIVA)
	}
	assert.True(t, baseSum.Equal(totals.BaseImponibleTotal),
		"bucket base sum %s != total %s", baseSum, totals.BaseImponibleTotal)
	require.NotNil(t, totals.CuotaIVADeducible)
	assert.True(t, cuotaSum.Equal(*totals.CuotaIVADeducible),
		"bucket cuota sum %s != total %s", cuotaSum, *totals.CuotaIVADeducible)
}

func TestComputeBreakdown_ChargedBookUsesTotalCuotaIVA(t *testing.T) {
	totals := ComputeBreakdown([]FiscalEntry{entryAt("100", 21)}, BookIVARepercutido)

	require.NotNil(t, totals.TotalCuotaIVA)
	assert.Nil(t, totals.CuotaIVADeducible)
	assert.True(t, totals.TotalCuotaIVA.Equal(decimal.NewFromInt(21)))
	assert.True(t, totals.CuotaIVA().Equal(decimal.NewFromInt(21)))
}

func TestComputeBreakdown_Empty(t *testing.T) {
	totals := ComputeBreakdown(nil, BookIVASoportado)

	assert.True(t, totals.BaseImponibleTotal.IsZero())
	assert.True(t, totals.TotalFacturas.IsZero())
	assert.Empty(t, totals.DesgloseIVA)
	require.NotNil(t, totals.CuotaIVADeducible)
	assert.True(t, totals.CuotaIVADeducible.IsZero())
}

func TestNewEntry_Invariants(t *testing.T) {
	base := decimal.RequireFromString("123.45")
	e := newEntry(entryFields{
		ID:         uuid.New(),
		SourceType: SourceReceivedInvoice,
		Date:       date(2024, 5, 2),
		TaxBase:    base,
		VATRate:    decimal.NewFromInt(21),
		IRPFRate:   decimal.NewFromInt(15),
	})

	// 123.45 * 0.21 = 25.9245 -> 25.92, 123.45 * 0.15 = 18.5175 -> 18.52
	assert.True(t, e.VATAmount.Equal(decimal.RequireFromString("25.92")))
	assert.True(t, e.IRPFAmount.Equal(decimal.RequireFromString("18.52")))
	assert.True(t, e.TotalAmount.Equal(base.Add(e.VATAmount).Sub(e.IRPFAmount)))
}
