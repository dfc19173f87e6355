package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInternalExpenseRepository implements InternalExpenseRepository using GORM
type GormInternalExpenseRepository struct {
	db *gorm.DB
}

// NewGormInternalExpenseRepository creates a new GormInternalExpenseRepository
func NewGormInternalExpenseRepository(db *gorm.DB) *GormInternalExpenseRepository {
	return &GormInternalExpenseRepository{db: db}
}

// FindByID finds an internal expense by its ID
func (r *GormInternalExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.InternalExpense, error) {
	var model models.InternalExpenseModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCategory finds expenses of one category matching the filter
func (r *GormInternalExpenseRepository) FindByCategory(ctx context.Context, category billing.ExpenseCategory, filter shared.Filter) ([]billing.InternalExpense, error) {
	var expenseModels []models.InternalExpenseModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.InternalExpenseModel{}).
			Where("category = ?", category),
		filter,
	)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]billing.InternalExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// FindInRange finds expenses dated inside a reporting window
func (r *GormInternalExpenseRepository) FindInRange(ctx context.Context, rng billing.DateRangeFilter) ([]billing.InternalExpense, error) {
	var expenseModels []models.InternalExpenseModel
	if err := r.db.WithContext(ctx).
		Where("expense_date >= ? AND expense_date < ?", rng.From, rng.To).
		Order("expense_date ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]billing.InternalExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// FindAll finds all internal expenses matching the filter
func (r *GormInternalExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.InternalExpense, error) {
	var expenseModels []models.InternalExpenseModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InternalExpenseModel{}), filter)

	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]billing.InternalExpense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an internal expense
func (r *GormInternalExpenseRepository) Save(ctx context.Context, expense *billing.InternalExpense) error {
	model := models.InternalExpenseModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an internal expense
func (r *GormInternalExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InternalExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts internal expenses matching the filter
func (r *GormInternalExpenseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InternalExpenseModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInternalExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("expense_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInternalExpenseRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("payee_name ILIKE ? OR description ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "estate_id":
			query = query.Where("estate_id = ?", value)
		}
	}

	return query
}

// Ensure GormInternalExpenseRepository implements InternalExpenseRepository
var _ billing.InternalExpenseRepository = (*GormInternalExpenseRepository)(nil)
