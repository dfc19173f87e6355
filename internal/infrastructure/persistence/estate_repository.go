package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/inmogest/backend/internal/domain/property"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEstateRepository implements EstateRepository using GORM
type GormEstateRepository struct {
	db *gorm.DB
}

// NewGormEstateRepository creates a new GormEstateRepository
func NewGormEstateRepository(db *gorm.DB) *GormEstateRepository {
	return &GormEstateRepository{db: db}
}

// FindByID finds an estate with its share table by ID
func (r *GormEstateRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Estate, error) {
	var model models.EstateModel
	if err := r.db.WithContext(ctx).
		Preload("Shares").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByReference finds an estate by its cadastral reference
func (r *GormEstateRepository) FindByReference(ctx context.Context, reference string) (*property.Estate, error) {
	var model models.EstateModel
	if err := r.db.WithContext(ctx).
		Preload("Shares").
		Where("reference = ?", strings.ToUpper(strings.TrimSpace(reference))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all estates where the owner holds a share
func (r *GormEstateRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]property.Estate, error) {
	var estateModels []models.EstateModel
	if err := r.db.WithContext(ctx).
		Preload("Shares").
		Joins("JOIN estate_shares ON estate_shares.estate_id = estates.id").
		Where("estate_shares.owner_id = ?", ownerID).
		Order("estates.reference ASC").
		Find(&estateModels).Error; err != nil {
		return nil, err
	}

	estates := make([]property.Estate, len(estateModels))
	for i, model := range estateModels {
		estates[i] = *model.ToDomain()
	}
	return estates, nil
}

// SharesForEstate loads only the ownership table of one estate
func (r *GormEstateRepository) SharesForEstate(ctx context.Context, estateID uuid.UUID) ([]property.OwnershipShare, error) {
	var shareModels []models.EstateShareModel
	if err := r.db.WithContext(ctx).
		Where("estate_id = ?", estateID).
		Find(&shareModels).Error; err != nil {
		return nil, err
	}
	if len(shareModels) == 0 {
		// distinguish a missing estate from one with no shares
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.EstateModel{}).
			Where("id = ?", estateID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, shared.ErrNotFound
		}
	}

	shares := make([]property.OwnershipShare, len(shareModels))
	for i, s := range shareModels {
		shares[i] = property.OwnershipShare{
			OwnerID:    s.OwnerID,
			OwnerName:  s.OwnerName,
			Percentage: s.Percentage,
		}
	}
	return shares, nil
}

// FindAll finds all estates matching the filter
func (r *GormEstateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]property.Estate, error) {
	var estateModels []models.EstateModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EstateModel{}).Preload("Shares"), filter)

	if err := query.Find(&estateModels).Error; err != nil {
		return nil, err
	}

	estates := make([]property.Estate, len(estateModels))
	for i, model := range estateModels {
		estates[i] = *model.ToDomain()
	}
	return estates, nil
}

// Save creates or updates an estate, replacing its share table wholesale
func (r *GormEstateRepository) Save(ctx context.Context, estate *property.Estate) error {
	model := models.EstateModelFromDomain(estate)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("estate_id = ?", model.ID).Delete(&models.EstateShareModel{}).Error; err != nil {
			return err
		}
		return tx.Save(model).Error
	})
}

// Delete deletes an estate; share rows cascade
func (r *GormEstateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EstateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts estates matching the filter
func (r *GormEstateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.EstateModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormEstateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("reference ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormEstateRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR address ILIKE ? OR city ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "city":
			query = query.Where("city = ?", value)
		}
	}

	return query
}

// Ensure GormEstateRepository implements EstateRepository
var _ property.EstateRepository = (*GormEstateRepository)(nil)
