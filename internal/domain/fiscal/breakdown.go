package fiscal

import (
	"sort"

	"github.com/shopspring/decimal"
)

// VATBreakdownBucket aggregates entries sharing one VAT rate. Spanish VAT
// knows the rates 0, 4, 10 and 21, but the bucket keeps whatever rates are
// actually observed so historical rates keep working.
type VATBreakdownBucket struct {
	Rate          decimal.Decimal `json:"rate"`
	BaseImponible decimal.Decimal `json:"base_imponible"`
	CuotaIVA      decimal.Decimal `json:"cuota_iva"`
	InvoiceCount  int             `json:"invoice_count"`
}

// BookTotals carries the aggregate figures of one VAT book. Exactly one of
// CuotaIVADeducible (soportado) and TotalCuotaIVA (repercutido) is set,
// matching the side of the book.
type BookTotals struct {
	BaseImponibleTotal decimal.Decimal      `json:"base_imponible_total"`
	CuotaIVADeducible  *decimal.Decimal     `json:"cuota_iva_deducible,omitempty"`
	TotalCuotaIVA      *decimal.Decimal     `json:"total_cuota_iva,omitempty"`
	TotalFacturas      decimal.Decimal      `json:"total_facturas"`
	DesgloseIVA        []VATBreakdownBucket `json:"desglose_iva"`
}

// CuotaIVA returns the VAT quota of the book regardless of side.
func (t BookTotals) CuotaIVA() decimal.Decimal {
	if t.CuotaIVADeducible != nil {
		return *t.CuotaIVADeducible
	}
	if t.TotalCuotaIVA != nil {
		return *t.TotalCuotaIVA
	}
	return decimal.Zero
}

// ComputeBreakdown groups the (already apportioned) entries by VAT rate
// and produces the aggregate totals. All accumulation happens on decimals
// already rounded to cents, so the sum over buckets equals the total
// exactly rather than approximately.
func ComputeBreakdown(entries []FiscalEntry, bookType BookType) BookTotals {
	buckets := make(map[string]*VATBreakdownBucket)
	totals := BookTotals{
		BaseImponibleTotal: decimal.Zero,
		TotalFacturas:      decimal.Zero,
		DesgloseIVA:        make([]VATBreakdownBucket, 0),
	}
	cuota := decimal.Zero

	for _, e := range entries {
		key := e.VATRate.String()
		b, ok := buckets[key]
		if !ok {
			b = &VATBreakdownBucket{
				Rate:          e.VATRate,
				BaseImponible: decimal.Zero,
				CuotaIVA:      decimal.Zero,
			}
			buckets[key] = b
		}
		b.BaseImponible = b.BaseImponible.Add(e.TaxBase)
		b.CuotaIVA = b.CuotaIVA.Add(e.VATAmount)
		b.InvoiceCount++

		totals.BaseImponibleTotal = totals.BaseImponibleTotal.Add(e.TaxBase)
		totals.TotalFacturas = totals.TotalFacturas.Add(e.TotalAmount)
		cuota = cuota.Add(e.VATAmount)
	}

	for _, b := range buckets {
		totals.DesgloseIVA = append(totals.DesgloseIVA, *b)
	}
	sort.Slice(totals.DesgloseIVA, func(i, j int) bool {
		return totals.DesgloseIVA[i].Rate.LessThan(totals.DesgloseIVA[j].Rate)
	})

	if bookType == BookIVARepercutido {
		totals.TotalCuotaIVA = &cuota
	} else {
		totals.CuotaIVADeducible = &cuota
	}
	return totals
}
