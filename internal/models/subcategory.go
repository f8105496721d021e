package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subcategory belongs to exactly one Category. The name is unique per category.
type Subcategory struct {
	DefaultModel
	Name        string    `gorm:"uniqueIndex:subcategory_name_category;size:100"`
	Category    Category  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID  uuid.UUID `gorm:"type:uuid;uniqueIndex:subcategory_name_category"`
	Description string
}

func (s *Subcategory) BeforeSave(_ *gorm.DB) error {
	return trimNamed(&s.Name, &s.Description)
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	_ = s.DefaultModel.BeforeCreate(tx)

	return s.checkIntegrity(tx, *s)
}

func (s *Subcategory) BeforeUpdate(tx *gorm.DB) error {
	toSave := updated(tx, *s)

	if tx.Statement.Changed("Name") && strings.TrimSpace(toSave.Name) == "" {
		return ErrNameEmpty
	}

	if !tx.Statement.Changed("CategoryID") && !saving(tx) {
		return nil
	}

	err := s.checkIntegrity(tx, toSave)
	if err != nil {
		return err
	}

	var count int64
	err = tx.Session(&gorm.Session{NewDB: true}).
		Model(&CashFlowRecord{}).
		Where("subcategory_id = ? AND category_id <> ?", s.ID, toSave.CategoryID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %d records are filed under the subcategory with another category", ErrHierarchyViolation, count)
	}

	return nil
}

func (s *Subcategory) checkIntegrity(tx *gorm.DB, toSave Subcategory) error {
	_, err := load[Category](tx, toSave.CategoryID)
	return err
}

// DeleteSubcategory deletes a subcategory and all records filed under it.
func DeleteSubcategory(db *gorm.DB, subcategory Subcategory) error {
	return Transaction(db, func(tx *gorm.DB) error {
		err := tx.Where("subcategory_id = ?", subcategory.ID).Delete(&CashFlowRecord{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&subcategory).Error
	})
}
