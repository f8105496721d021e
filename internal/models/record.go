package models

import (
	"strings"

	"github.com/dds-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CashFlowRecord is a single movement of money, filed under one
// Status and one Type → Category → Subcategory path.
type CashFlowRecord struct {
	DefaultModel
	Date          types.Date      `gorm:"index"`
	Status        Status          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	StatusID      uuid.UUID       `gorm:"type:uuid;index"`
	Type          Type            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TypeID        uuid.UUID       `gorm:"type:uuid;index"`
	Category      Category        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;index"`
	Subcategory   Subcategory     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	SubcategoryID uuid.UUID       `gorm:"type:uuid;index"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	Comment       string
}

// RecordOrder is the default ordering for records: newest first.
const RecordOrder = "date DESC, created_at DESC"

func (r *CashFlowRecord) BeforeSave(_ *gorm.DB) error {
	r.Comment = strings.TrimSpace(r.Comment)
	r.Amount = r.Amount.Round(2)

	if r.Date.IsZero() {
		r.Date = types.Today()
	}

	return nil
}

func (r *CashFlowRecord) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	return CheckRecord(tx, *r)
}

// BeforeUpdate re-validates every record as it will be stored.
func (r *CashFlowRecord) BeforeUpdate(tx *gorm.DB) error {
	if r.ID != uuid.Nil {
		return checkUpdated(tx, *r)
	}

	// Batch updates carry no loaded record, the matching rows are checked
	var stored []CashFlowRecord
	query := tx.Session(&gorm.Session{NewDB: true}).Model(&CashFlowRecord{})
	if where, ok := tx.Statement.Clauses["WHERE"]; ok && where.Expression != nil {
		query = query.Clauses(where.Expression)
	}

	err := query.Find(&stored).Error
	if err != nil {
		return err
	}

	for _, record := range stored {
		err = checkUpdated(tx, record)
		if err != nil {
			return err
		}
	}

	return nil
}

func checkUpdated(tx *gorm.DB, stored CashFlowRecord) error {
	toSave := updated(tx, stored)
	toSave.Amount = toSave.Amount.Round(2)

	return CheckRecord(tx, toSave)
}
