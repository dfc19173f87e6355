package models

import (
	"time"

	"github.com/inmogest/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// ClientModel is the persistence model for clients
type ClientModel struct {
	AggregateModel
	Name       string `gorm:"type:varchar(200);not null"`
	TaxID      string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email      string `gorm:"type:varchar(200);index"`
	Phone      string `gorm:"type:varchar(50)"`
	Address    string `gorm:"type:text"`
	City       string `gorm:"type:varchar(100)"`
	PostalCode string `gorm:"type:varchar(10)"`
	IBAN       string `gorm:"type:varchar(34)"`
	Notes      string `gorm:"type:text"`
	Active     bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		City:              m.City,
		PostalCode:        m.PostalCode,
		IBAN:              m.IBAN,
		Notes:             m.Notes,
		Active:            m.Active,
	}
}

// ClientModelFromDomain builds the persistence model from a domain Client
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		Name:       c.Name,
		TaxID:      c.TaxID,
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		IBAN:       c.IBAN,
		Notes:      c.Notes,
		Active:     c.Active,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// OwnerModel is the persistence model for property owners
type OwnerModel struct {
	AggregateModel
	Name       string          `gorm:"type:varchar(200);not null"`
	TaxID      string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email      string          `gorm:"type:varchar(200)"`
	Phone      string          `gorm:"type:varchar(50)"`
	Address    string          `gorm:"type:text"`
	City       string          `gorm:"type:varchar(100)"`
	PostalCode string          `gorm:"type:varchar(10)"`
	IBAN       string          `gorm:"type:varchar(34)"`
	IRPFRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Active     bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (OwnerModel) TableName() string {
	return "owners"
}

// ToDomain converts the persistence model to a domain Owner
func (m *OwnerModel) ToDomain() *partner.Owner {
	return &partner.Owner{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		City:              m.City,
		PostalCode:        m.PostalCode,
		IBAN:              m.IBAN,
		IRPFRate:          m.IRPFRate,
		Active:            m.Active,
	}
}

// OwnerModelFromDomain builds the persistence model from a domain Owner
func OwnerModelFromDomain(o *partner.Owner) *OwnerModel {
	m := &OwnerModel{
		Name:       o.Name,
		TaxID:      o.TaxID,
		Email:      o.Email,
		Phone:      o.Phone,
		Address:    o.Address,
		City:       o.City,
		PostalCode: o.PostalCode,
		IBAN:       o.IBAN,
		IRPFRate:   o.IRPFRate,
		Active:     o.Active,
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	return m
}

// SupplierModel is the persistence model for suppliers
type SupplierModel struct {
	AggregateModel
	Name       string                   `gorm:"type:varchar(200);not null"`
	TaxID      string                   `gorm:"type:varchar(20);not null;uniqueIndex"`
	Category   partner.SupplierCategory `gorm:"type:varchar(20);not null;index"`
	Email      string                   `gorm:"type:varchar(200)"`
	Phone      string                   `gorm:"type:varchar(50)"`
	Address    string                   `gorm:"type:text"`
	City       string                   `gorm:"type:varchar(100)"`
	PostalCode string                   `gorm:"type:varchar(10)"`
	IBAN       string                   `gorm:"type:varchar(34)"`
	Notes      string                   `gorm:"type:text"`
	Active     bool                     `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (SupplierModel) TableName() string {
	return "suppliers"
}

// ToDomain converts the persistence model to a domain Supplier
func (m *SupplierModel) ToDomain() *partner.Supplier {
	return &partner.Supplier{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		Category:          m.Category,
		Email:             m.Email,
		Phone:             m.Phone,
		Address:           m.Address,
		City:              m.City,
		PostalCode:        m.PostalCode,
		IBAN:              m.IBAN,
		Notes:             m.Notes,
		Active:            m.Active,
	}
}

// SupplierModelFromDomain builds the persistence model from a domain Supplier
func SupplierModelFromDomain(s *partner.Supplier) *SupplierModel {
	m := &SupplierModel{
		Name:       s.Name,
		TaxID:      s.TaxID,
		Category:   s.Category,
		Email:      s.Email,
		Phone:      s.Phone,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
		IBAN:       s.IBAN,
		Notes:      s.Notes,
		Active:     s.Active,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// EmployeeModel is the persistence model for employees
type EmployeeModel struct {
	AggregateModel
	Name        string          `gorm:"type:varchar(200);not null"`
	TaxID       string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email       string          `gorm:"type:varchar(200)"`
	Phone       string          `gorm:"type:varchar(50)"`
	Position    string          `gorm:"type:varchar(100)"`
	GrossSalary decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IRPFRate    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	HiredAt     time.Time       `gorm:"type:date;not null"`
	LeftAt      *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *partner.Employee {
	return &partner.Employee{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		Email:             m.Email,
		Phone:             m.Phone,
		Position:          m.Position,
		GrossSalary:       m.GrossSalary,
		IRPFRate:          m.IRPFRate,
		HiredAt:           m.HiredAt,
		LeftAt:            m.LeftAt,
	}
}

// EmployeeModelFromDomain builds the persistence model from a domain Employee
func EmployeeModelFromDomain(e *partner.Employee) *EmployeeModel {
	m := &EmployeeModel{
		Name:        e.Name,
		TaxID:       e.TaxID,
		Email:       e.Email,
		Phone:       e.Phone,
		Position:    e.Position,
		GrossSalary: e.GrossSalary,
		IRPFRate:    e.IRPFRate,
		HiredAt:     e.HiredAt,
		LeftAt:      e.LeftAt,
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
