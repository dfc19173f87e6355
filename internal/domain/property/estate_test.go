package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestNewEstate(t *testing.T) {
	ownerID := uuid.New()
	estate, err := NewEstate("9872023VH5797S0001WX", "Calle Mayor 5", "Madrid", "28013",
		[]OwnershipShare{{OwnerID: ownerID, OwnerName: "Ana", Percentage: pct("100")}})
	require.NoError(t, err)

	assert.Equal(t, "9872023VH5797S0001WX", estate.Reference)
	assert.True(t, estate.Active)
	assert.True(t, estate.ShareOf(ownerID).Equal(pct("100")))
	assert.True(t, estate.ShareOf(uuid.New()).IsZero())
}

func TestNewEstate_Invalid(t *testing.T) {
	owner := uuid.New()
	tests := []struct {
		name      string
		reference string
		address   string
		shares    []OwnershipShare
	}{
		{"missing reference", "", "Calle Mayor 5", []OwnershipShare{{OwnerID: owner, Percentage: pct("100")}}},
		{"missing address", "REF1", "", []OwnershipShare{{OwnerID: owner, Percentage: pct("100")}}},
		{"no shares", "REF1", "Calle Mayor 5", nil},
		{"shares under 100", "REF1", "Calle Mayor 5", []OwnershipShare{{OwnerID: owner, Percentage: pct("60")}}},
		{"shares over 100", "REF1", "Calle Mayor 5", []OwnershipShare{
			{OwnerID: owner, Percentage: pct("60")},
			{OwnerID: uuid.New(), Percentage: pct("50")},
		}},
		{"duplicate owner", "REF1", "Calle Mayor 5", []OwnershipShare{
			{OwnerID: owner, Percentage: pct("50")},
			{OwnerID: owner, Percentage: pct("50")},
		}},
		{"negative percentage", "REF1", "Calle Mayor 5", []OwnershipShare{
			{OwnerID: owner, Percentage: pct("110")},
			{OwnerID: uuid.New(), Percentage: pct("-10")},
		}},
		{"nil owner", "REF1", "Calle Mayor 5", []OwnershipShare{{Percentage: pct("100")}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEstate(tc.reference, tc.address, "", "", tc.shares)
			assert.Error(t, err)
		})
	}
}

func TestNewEstate_ToleratesRoundingDrift(t *testing.T) {
	// three-way split that only reaches 99.99
	_, err := NewEstate("REF2", "Av. Diagonal 100", "Barcelona", "08019", []OwnershipShare{
		{OwnerID: uuid.New(), Percentage: pct("33.33")},
		{OwnerID: uuid.New(), Percentage: pct("33.33")},
		{OwnerID: uuid.New(), Percentage: pct("33.33")},
	})
	assert.NoError(t, err)
}

func TestEstate_ReplaceShares(t *testing.T) {
	owner := uuid.New()
	estate, err := NewEstate("REF3", "Calle Sol 1", "Sevilla", "41001",
		[]OwnershipShare{{OwnerID: owner, Percentage: pct("100")}})
	require.NoError(t, err)

	other := uuid.New()
	err = estate.ReplaceShares([]OwnershipShare{
		{OwnerID: owner, Percentage: pct("50")},
		{OwnerID: other, Percentage: pct("50")},
	})
	require.NoError(t, err)
	assert.True(t, estate.ShareOf(other).Equal(pct("50")))

	// invalid replacement leaves the table untouched
	err = estate.ReplaceShares([]OwnershipShare{{OwnerID: owner, Percentage: pct("10")}})
	require.Error(t, err)
	assert.Len(t, estate.Shares, 2)
}
