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

// GormReceivedInvoiceRepository implements ReceivedInvoiceRepository using GORM
type GormReceivedInvoiceRepository struct {
	db *gorm.DB
}

// NewGormReceivedInvoiceRepository creates a new GormReceivedInvoiceRepository
func NewGormReceivedInvoiceRepository(db *gorm.DB) *GormReceivedInvoiceRepository {
	return &GormReceivedInvoiceRepository{db: db}
}

// FindByID finds a received invoice by its ID
func (r *GormReceivedInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.ReceivedInvoice, error) {
	var model models.ReceivedInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds a supplier's invoice by its number
func (r *GormReceivedInvoiceRepository) FindByInvoiceNumber(ctx context.Context, supplierID uuid.UUID, invoiceNumber string) (*billing.ReceivedInvoice, error) {
	var model models.ReceivedInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND invoice_number = ?", supplierID, strings.TrimSpace(invoiceNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySupplier finds invoices of one supplier matching the filter
func (r *GormReceivedInvoiceRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]billing.ReceivedInvoice, error) {
	var invoiceModels []models.ReceivedInvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReceivedInvoiceModel{}).
			Where("supplier_id = ?", supplierID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.ReceivedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindInRange finds invoices relevant to a reporting window. Proportional
// invoices match on their declared period overlap, the rest on issue date.
func (r *GormReceivedInvoiceRepository) FindInRange(ctx context.Context, rng billing.DateRangeFilter) ([]billing.ReceivedInvoice, error) {
	var invoiceModels []models.ReceivedInvoiceModel
	if err := r.db.WithContext(ctx).
		Where(
			"(period_start IS NOT NULL AND period_start < ? AND period_end >= ?) OR (period_start IS NULL AND issue_date >= ? AND issue_date < ?)",
			rng.To, rng.From, rng.From, rng.To,
		).
		Order("issue_date ASC, invoice_number ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.ReceivedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindAll finds all received invoices matching the filter
func (r *GormReceivedInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.ReceivedInvoice, error) {
	var invoiceModels []models.ReceivedInvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReceivedInvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.ReceivedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates a received invoice
func (r *GormReceivedInvoiceRepository) Save(ctx context.Context, invoice *billing.ReceivedInvoice) error {
	model := models.ReceivedInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a received invoice
func (r *GormReceivedInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReceivedInvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts received invoices matching the filter
func (r *GormReceivedInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ReceivedInvoiceModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReceivedInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("issue_date DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceivedInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR supplier_name ILIKE ? OR supplier_tax_id ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "estate_id":
			query = query.Where("estate_id = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "is_refund":
			query = query.Where("is_refund = ?", value)
		}
	}

	return query
}

// Ensure GormReceivedInvoiceRepository implements ReceivedInvoiceRepository
var _ billing.ReceivedInvoiceRepository = (*GormReceivedInvoiceRepository)(nil)
