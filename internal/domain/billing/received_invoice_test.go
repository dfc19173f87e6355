package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewReceivedInvoice_DerivesAmounts(t *testing.T) {
	inv, err := NewReceivedInvoice("F-2024-0042", uuid.New(), "Fontaneria Perez SL", "b12345678",
		day(2024, 2, 10), dec("350.00"), dec("21"), dec("15"), "REPAIRS")
	require.NoError(t, err)

	assert.Equal(t, "B12345678", inv.SupplierTaxID)
	// 350 * 0.21 = 73.50, 350 * 0.15 = 52.50
	assert.True(t, inv.Amounts.VATAmount.Equal(dec("73.50")))
	assert.True(t, inv.Amounts.IRPFAmount.Equal(dec("52.50")))
	assert.True(t, inv.Amounts.TotalAmount.Equal(dec("371.00")))
	assert.False(t, inv.IsRefund)
	assert.Nil(t, inv.Proportional)
}

func TestNewReceivedInvoice_Invalid(t *testing.T) {
	supplierID := uuid.New()
	tests := []struct {
		name          string
		invoiceNumber string
		supplierID    uuid.UUID
		issueDate     time.Time
		vatRate       string
		irpfRate      string
	}{
		{"missing number", "", supplierID, day(2024, 1, 1), "21", "0"},
		{"nil supplier", "F-1", uuid.Nil, day(2024, 1, 1), "21", "0"},
		{"zero date", "F-1", supplierID, time.Time{}, "21", "0"},
		{"unknown vat rate", "F-1", supplierID, day(2024, 1, 1), "16", "0"},
		{"negative irpf", "F-1", supplierID, day(2024, 1, 1), "21", "-1"},
		{"irpf above 100", "F-1", supplierID, day(2024, 1, 1), "21", "101"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewReceivedInvoice(tc.invoiceNumber, tc.supplierID, "X", "B1",
				tc.issueDate, dec("100"), dec(tc.vatRate), dec(tc.irpfRate), "OTHER")
			assert.Error(t, err)
		})
	}
}

func TestReceivedInvoice_MarkProportional(t *testing.T) {
	inv, err := NewReceivedInvoice("F-1", uuid.New(), "X", "B1",
		day(2024, 7, 17), dec("1000"), dec("21"), dec("0"), "RENT")
	require.NoError(t, err)

	require.NoError(t, inv.MarkProportional(day(2024, 7, 17), day(2024, 7, 31)))
	require.NotNil(t, inv.Proportional)
	assert.Equal(t, day(2024, 7, 17), inv.Proportional.Start)

	assert.Error(t, inv.MarkProportional(day(2024, 7, 31), day(2024, 7, 17)), "inverted range")
	assert.Error(t, inv.MarkProportional(time.Time{}, day(2024, 7, 31)), "missing start")
}

func TestReceivedInvoice_Reprice(t *testing.T) {
	inv, err := NewReceivedInvoice("F-1", uuid.New(), "X", "B1",
		day(2024, 1, 1), dec("100"), dec("21"), dec("0"), "OTHER")
	require.NoError(t, err)

	require.NoError(t, inv.Reprice(dec("200"), dec("10"), dec("0")))
	assert.True(t, inv.Amounts.VATAmount.Equal(dec("20.00")))
	assert.True(t, inv.Amounts.TotalAmount.Equal(dec("220.00")))

	assert.Error(t, inv.Reprice(dec("200"), dec("7"), dec("0")), "unknown rate rejected")
}

func TestIssuedInvoice_Lifecycle(t *testing.T) {
	inv, err := NewIssuedInvoice("E-2024-0001", uuid.New(), "Comunidad Calle Mayor 5", "h28000000",
		day(2024, 1, 20), dec("300"), dec("21"), dec("0"), "MANAGEMENT_FEE")
	require.NoError(t, err)
	assert.Equal(t, IssuedStatusPending, inv.Status)

	require.NoError(t, inv.MarkPaid(day(2024, 2, 1)))
	assert.Equal(t, IssuedStatusPaid, inv.Status)
	assert.Error(t, inv.Cancel(), "paid invoice cannot be cancelled")

	other, err := NewIssuedInvoice("E-2024-0002", uuid.New(), "X", "H1",
		day(2024, 1, 21), dec("100"), dec("10"), dec("0"), "MANAGEMENT_FEE")
	require.NoError(t, err)
	require.NoError(t, other.Cancel())
	assert.Error(t, other.MarkPaid(day(2024, 2, 1)), "cancelled invoice cannot be paid")
}

func TestNewInternalExpense(t *testing.T) {
	exp, err := NewInternalExpense("Papeleria Central", day(2024, 3, 5),
		dec("50"), dec("10"), ExpenseCategoryOffice, "material de oficina")
	require.NoError(t, err)

	assert.True(t, exp.VATAmount.Equal(dec("5.00")))
	assert.True(t, exp.TotalAmount.Equal(dec("55.00")))
	assert.Nil(t, exp.EstateID)

	_, err = NewInternalExpense("", day(2024, 3, 5), dec("50"), dec("10"), ExpenseCategoryOffice, "")
	assert.Error(t, err)
	_, err = NewInternalExpense("X", day(2024, 3, 5), dec("50"), dec("10"), ExpenseCategory("TRAVEL"), "")
	assert.Error(t, err)
}
