package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOwnerRepository implements OwnerRepository using GORM
type GormOwnerRepository struct {
	db *gorm.DB
}

// NewGormOwnerRepository creates a new GormOwnerRepository
func NewGormOwnerRepository(db *gorm.DB) *GormOwnerRepository {
	return &GormOwnerRepository{db: db}
}

// FindByID finds an owner by its ID
func (r *GormOwnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTaxID finds an owner by its tax ID
func (r *GormOwnerRepository) FindByTaxID(ctx context.Context, taxID string) (*partner.Owner, error) {
	var model models.OwnerModel
	if err := r.db.WithContext(ctx).
		Where("tax_id = ?", strings.ToUpper(strings.TrimSpace(taxID))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive finds all active owners ordered by name
func (r *GormOwnerRepository) FindActive(ctx context.Context) ([]partner.Owner, error) {
	var ownerModels []models.OwnerModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]partner.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// FindAll finds all owners matching the filter
func (r *GormOwnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Owner, error) {
	var ownerModels []models.OwnerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OwnerModel{}), filter)

	if err := query.Find(&ownerModels).Error; err != nil {
		return nil, err
	}

	owners := make([]partner.Owner, len(ownerModels))
	for i, model := range ownerModels {
		owners[i] = *model.ToDomain()
	}
	return owners, nil
}

// Save creates or updates an owner
func (r *GormOwnerRepository) Save(ctx context.Context, owner *partner.Owner) error {
	model := models.OwnerModelFromDomain(owner)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an owner
func (r *GormOwnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.OwnerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts owners matching the filter
func (r *GormOwnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OwnerModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOwnerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOwnerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR tax_id ILIKE ? OR email ILIKE ?",
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

// Ensure GormOwnerRepository implements OwnerRepository
var _ partner.OwnerRepository = (*GormOwnerRepository)(nil)
