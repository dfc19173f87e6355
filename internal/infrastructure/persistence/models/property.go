package models

import (
	"github.com/inmogest/backend/internal/domain/property"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstateModel is the persistence model for managed estates
type EstateModel struct {
	AggregateModel
	Reference  string             `gorm:"type:varchar(30);not null;uniqueIndex"`
	Address    string             `gorm:"type:text;not null"`
	City       string             `gorm:"type:varchar(100)"`
	PostalCode string             `gorm:"type:varchar(10)"`
	Notes      string             `gorm:"type:text"`
	Active     bool               `gorm:"not null;default:true;index"`
	Shares     []EstateShareModel `gorm:"foreignKey:EstateID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (EstateModel) TableName() string {
	return "estates"
}

// EstateShareModel is one row of an estate's ownership table. Rows are
// replaced wholesale whenever the share table changes.
type EstateShareModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	EstateID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	OwnerName  string          `gorm:"type:varchar(200);not null"`
	Percentage decimal.Decimal `gorm:"type:decimal(8,4);not null"`
}

// TableName returns the table name for GORM
func (EstateShareModel) TableName() string {
	return "estate_shares"
}

// ToDomain converts the persistence model to a domain Estate
func (m *EstateModel) ToDomain() *property.Estate {
	shares := make([]property.OwnershipShare, len(m.Shares))
	for i, s := range m.Shares {
		shares[i] = property.OwnershipShare{
			OwnerID:    s.OwnerID,
			OwnerName:  s.OwnerName,
			Percentage: s.Percentage,
		}
	}
	return &property.Estate{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Reference:         m.Reference,
		Address:           m.Address,
		City:              m.City,
		PostalCode:        m.PostalCode,
		Notes:             m.Notes,
		Shares:            shares,
		Active:            m.Active,
	}
}

// EstateModelFromDomain builds the persistence model from a domain Estate
func EstateModelFromDomain(e *property.Estate) *EstateModel {
	m := &EstateModel{
		Reference:  e.Reference,
		Address:    e.Address,
		City:       e.City,
		PostalCode: e.PostalCode,
		Notes:      e.Notes,
		Active:     e.Active,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	m.Shares = make([]EstateShareModel, len(e.Shares))
	for i, s := range e.Shares {
		m.Shares[i] = EstateShareModel{
			ID:         uuid.New(),
			EstateID:   m.ID,
			OwnerID:    s.OwnerID,
			OwnerName:  s.OwnerName,
			Percentage: s.Percentage,
		}
	}
	return m
}
