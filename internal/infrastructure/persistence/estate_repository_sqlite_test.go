package persistence

import (
	"context"
	"testing"

	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEstateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.EstateModel{}, &models.EstateShareModel{})
	require.NoError(t, err)

	return db
}

func testShares(t *testing.T, percentages ...string) []property.OwnershipShare {
	t.Helper()
	shares := make([]property.OwnershipShare, len(percentages))
	for i, p := range percentages {
		shares[i] = property.OwnershipShare{
			OwnerID:    uuid.New(),
			OwnerName:  "Owner " + p,
			Percentage: decimal.RequireFromString(p),
		}
	}
	return shares
}

func TestGormEstateRepository_SaveAndFind(t *testing.T) {
	db := setupEstateTestDB(t)
	repo := NewGormEstateRepository(db)
	ctx := context.Background()

	estate, err := property.NewEstate("9872023VH5797S", "Calle Mayor 1", "Madrid", "28013",
		testShares(t, "50", "50"))
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, estate))

	t.Run("finds by id with shares preloaded", func(t *testing.T) {
		found, err := repo.FindByID(ctx, estate.ID)
		require.NoError(t, err)
		assert.Equal(t, "9872023VH5797S", found.Reference)
		assert.Equal(t, "Madrid", found.City)
		require.Len(t, found.Shares, 2)
		assert.True(t, found.Shares[0].Percentage.Add(found.Shares[1].Percentage).
			Equal(decimal.NewFromInt(100)))
	})

	t.Run("finds by reference case insensitively", func(t *testing.T) {
		found, err := repo.FindByReference(ctx, " 9872023vh5797s ")
		require.NoError(t, err)
		assert.Equal(t, estate.ID, found.ID)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormEstateRepository_SaveReplacesShares(t *testing.T) {
	db := setupEstateTestDB(t)
	repo := NewGormEstateRepository(db)
	ctx := context.Background()

	estate, err := property.NewEstate("1234567AB1234C", "Gran Via 5", "Madrid", "28013",
		testShares(t, "100"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, estate))

	newShares := testShares(t, "60", "40")
	require.NoError(t, estate.ReplaceShares(newShares))
	require.NoError(t, repo.Save(ctx, estate))

	shares, err := repo.SharesForEstate(ctx, estate.ID)
	require.NoError(t, err)
	require.Len(t, shares, 2)

	// old share rows must be gone, not accumulated
	var count int64
	require.NoError(t, db.Model(&models.EstateShareModel{}).
		Where("estate_id = ?", estate.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGormEstateRepository_SharesForEstate_MissingEstate(t *testing.T) {
	db := setupEstateTestDB(t)
	repo := NewGormEstateRepository(db)

	_, err := repo.SharesForEstate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormEstateRepository_FindByOwner(t *testing.T) {
	db := setupEstateTestDB(t)
	repo := NewGormEstateRepository(db)
	ctx := context.Background()

	owner := property.OwnershipShare{
		OwnerID:    uuid.New(),
		OwnerName:  "Carmen Ruiz",
		Percentage: decimal.NewFromInt(100),
	}

	first, err := property.NewEstate("AAA1111BB2222C", "Calle Sol 2", "Sevilla", "41001",
		[]property.OwnershipShare{owner})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := property.NewEstate("ZZZ9999YY8888X", "Calle Luna 3", "Sevilla", "41002",
		testShares(t, "100"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	estates, err := repo.FindByOwner(ctx, owner.OwnerID)
	require.NoError(t, err)
	require.Len(t, estates, 1)
	assert.Equal(t, first.Reference, estates[0].Reference)
}

func TestGormEstateRepository_Delete(t *testing.T) {
	db := setupEstateTestDB(t)
	repo := NewGormEstateRepository(db)
	ctx := context.Background()

	estate, err := property.NewEstate("4444444CD5555E", "Plaza Nueva 7", "Granada", "18001",
		testShares(t, "100"))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, estate))

	require.NoError(t, repo.Delete(ctx, estate.ID))

	_, err = repo.FindByID(ctx, estate.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, estate.ID), shared.ErrNotFound)
}
