package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inmogest/backend/internal/domain/billing"
	"github.com/inmogest/backend/internal/domain/shared"
	"github.com/inmogest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIssuedInvoiceRepository implements IssuedInvoiceRepository using GORM
type GormIssuedInvoiceRepository struct {
	db           *gorm.DB
	numberPrefix string
}

// NewGormIssuedInvoiceRepository creates a new GormIssuedInvoiceRepository.
// numberPrefix is the correlative prefix, e.g. "FAC" yields FAC-2024-00001.
func NewGormIssuedInvoiceRepository(db *gorm.DB, numberPrefix string) *GormIssuedInvoiceRepository {
	return &GormIssuedInvoiceRepository{db: db, numberPrefix: numberPrefix}
}

// FindByID finds an issued invoice by its ID
func (r *GormIssuedInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.IssuedInvoice, error) {
	var model models.IssuedInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds an issued invoice by its correlative number
func (r *GormIssuedInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.IssuedInvoice, error) {
	var model models.IssuedInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("invoice_number = ?", strings.TrimSpace(invoiceNumber)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByClient finds invoices of one client matching the filter
func (r *GormIssuedInvoiceRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]billing.IssuedInvoice, error) {
	var invoiceModels []models.IssuedInvoiceModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.IssuedInvoiceModel{}).
			Where("client_id = ?", clientID),
		filter,
	)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.IssuedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindInRange finds invoices relevant to a reporting window. Proportional
// invoices match on their declared period overlap, the rest on issue date.
func (r *GormIssuedInvoiceRepository) FindInRange(ctx context.Context, rng billing.DateRangeFilter) ([]billing.IssuedInvoice, error) {
	var invoiceModels []models.IssuedInvoiceModel
	if err := r.db.WithContext(ctx).
		Where(
			"(period_start IS NOT NULL AND period_start < ? AND period_end >= ?) OR (period_start IS NULL AND issue_date >= ? AND issue_date < ?)",
			rng.To, rng.From, rng.From, rng.To,
		).
		Order("issue_date ASC, invoice_number ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.IssuedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// NextInvoiceNumber draws the next correlative number for the year. The
// sequence row is locked for the duration of the transaction so two
// concurrent draws never produce the same number.
func (r *GormIssuedInvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq models.InvoiceSequenceModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(models.InvoiceSequenceModel{Year: year}).
			FirstOrCreate(&seq).Error; err != nil {
			return err
		}
		seq.LastNumber++
		next = seq.LastNumber
		return tx.Save(&seq).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to draw invoice number for %d: %w", year, err)
	}
	return fmt.Sprintf("%s-%d-%05d", r.numberPrefix, year, next), nil
}

// FindAll finds all issued invoices matching the filter
func (r *GormIssuedInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.IssuedInvoice, error) {
	var invoiceModels []models.IssuedInvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.IssuedInvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.IssuedInvoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an issued invoice
func (r *GormIssuedInvoiceRepository) Save(ctx context.Context, invoice *billing.IssuedInvoice) error {
	model := models.IssuedInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an issued invoice
func (r *GormIssuedInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.IssuedInvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts issued invoices matching the filter
func (r *GormIssuedInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.IssuedInvoiceModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormIssuedInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormIssuedInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ? OR client_name ILIKE ? OR client_tax_id ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "estate_id":
			query = query.Where("estate_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "is_refund":
			query = query.Where("is_refund = ?", value)
		}
	}

	return query
}

// Ensure GormIssuedInvoiceRepository implements IssuedInvoiceRepository
var _ billing.IssuedInvoiceRepository = (*GormIssuedInvoiceRepository)(nil)
