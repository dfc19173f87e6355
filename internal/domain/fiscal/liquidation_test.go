package fiscal

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookWithCuota(bookType BookType, cuota string, entryCount int) *VATBookResult {
	amount := decimal.RequireFromString(cuota)
	totals := BookTotals{}
	if bookType == BookIVARepercutido {
		totals.TotalCuotaIVA = &amount
	} else {
		totals.CuotaIVADeducible = &amount
	}
	return &VATBookResult{
		BookType:   bookType,
		BookCode:   bookType.Code(),
		Totals:     totals,
		EntryCount: entryCount,
	}
}

func TestComputeLiquidation_APagar(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	supported := bookWithCuota(BookIVASoportado, "1050.00", 3)
	charged := bookWithCuota(BookIVARepercutido, "1680.00", 5)

	result, err := ComputeLiquidation(period, supported, charged)
	require.NoError(t, err)

	assert.True(t, result.ImporteResultado.Equal(decimal.RequireFromString("630.00")),
		"got %s", result.ImporteResultado)
	assert.Equal(t, ResultadoAPagar, result.ResultadoLiquidacion)
}

func TestComputeLiquidation_ADevolver(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(1), nil)
	require.NoError(t, err)

	// swapped magnitudes relative to the A_PAGAR case
	supported := bookWithCuota(BookIVASoportado, "1680.00", 5)
	charged := bookWithCuota(BookIVARepercutido, "1050.00", 3)

	result, err := ComputeLiquidation(period, supported, charged)
	require.NoError(t, err)

	assert.True(t, result.ImporteResultado.Equal(decimal.RequireFromString("-630.00")))
	assert.Equal(t, ResultadoADevolver, result.ResultadoLiquidacion)
}

func TestComputeLiquidation_SinActividad(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(2), nil)
	require.NoError(t, err)

	result, err := ComputeLiquidation(period,
		bookWithCuota(BookIVASoportado, "0", 0),
		bookWithCuota(BookIVARepercutido, "0", 0))
	require.NoError(t, err)

	assert.Equal(t, ResultadoSinActividad, result.ResultadoLiquidacion)
	assert.True(t, result.ImporteResultado.IsZero())
}

func TestComputeLiquidation_ZeroNetWithActivityIsAPagar(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(2), nil)
	require.NoError(t, err)

	result, err := ComputeLiquidation(period,
		bookWithCuota(BookIVASoportado, "100.00", 1),
		bookWithCuota(BookIVARepercutido, "100.00", 1))
	require.NoError(t, err)

	assert.Equal(t, ResultadoAPagar, result.ResultadoLiquidacion)
}

func TestComputeLiquidation_MissingBook(t *testing.T) {
	period, err := ResolvePeriod(2024, intPtr(3), nil)
	require.NoError(t, err)

	_, err = ComputeLiquidation(period, nil, bookWithCuota(BookIVARepercutido, "10", 1))
	var missing *MissingBookError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, BookIVASoportado, missing.Book)

	_, err = ComputeLiquidation(period, bookWithCuota(BookIVASoportado, "10", 1), nil)
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, BookIVARepercutido, missing.Book)
}
