package fiscal

import "github.com/shopspring/decimal"

// ResultadoLiquidacion classifies the outcome of a quarterly liquidation
type ResultadoLiquidacion string

const (
	ResultadoAPagar       ResultadoLiquidacion = "A_PAGAR"
	ResultadoADevolver    ResultadoLiquidacion = "A_DEVOLVER"
	ResultadoSinActividad ResultadoLiquidacion = "SIN_ACTIVIDAD"
)

// String returns the string representation of ResultadoLiquidacion
func (r ResultadoLiquidacion) String() string {
	return string(r)
}

// LiquidationResult is the quarterly VAT settlement (modelo 303 figures):
// output VAT charged minus input VAT supported, netted into a pay or
// refund amount. Derived, never stored.
type LiquidationResult struct {
	Period                Period               `json:"period"`
	TotalCuotaIVA         decimal.Decimal      `json:"total_cuota_iva"`
	CuotaIVADeducible     decimal.Decimal      `json:"cuota_iva_deducible"`
	ImporteResultado      decimal.Decimal      `json:"importe_resultado"`
	ResultadoLiquidacion  ResultadoLiquidacion `json:"resultado_liquidacion"`
}

// ComputeLiquidation nets the charged book against the supported book.
// Both books are required; a missing one is a MissingBookError rather
// than a partial result.
func ComputeLiquidation(period Period, supported, charged *VATBookResult) (*LiquidationResult, error) {
	if supported == nil {
		return nil, &MissingBookError{Book: BookIVASoportado, Period: period}
	}
	if charged == nil {
		return nil, &MissingBookError{Book: BookIVARepercutido, Period: period}
	}

	deducible := supported.Totals.CuotaIVA()
	cuota := charged.Totals.CuotaIVA()
	importe := cuota.Sub(deducible)

	resultado := ResultadoSinActividad
	switch {
	case supported.EntryCount == 0 && charged.EntryCount == 0:
		resultado = ResultadoSinActividad
	case importe.GreaterThan(decimal.Zero):
		resultado = ResultadoAPagar
	case importe.LessThan(decimal.Zero):
		resultado = ResultadoADevolver
	default:
		// Active quarter that nets to exactly zero still counts as a
		// settlement to pay (a zero "a ingresar" declaration).
		resultado = ResultadoAPagar
	}

	return &LiquidationResult{
		Period:               period,
		TotalCuotaIVA:        cuota,
		CuotaIVADeducible:    deducible,
		ImporteResultado:     importe,
		ResultadoLiquidacion: resultado,
	}, nil
}
