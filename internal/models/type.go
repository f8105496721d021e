package models

import (
	"strings"

	"gorm.io/gorm"
)

// Type is the direction of a cash flow, e.g. "Replenishment" or "Write-off".
// It owns its categories.
type Type struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex;size:50"`
	Description string
}

func (t *Type) BeforeSave(_ *gorm.DB) error {
	return trimNamed(&t.Name, &t.Description)
}

func (t *Type) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") && strings.TrimSpace(updated(tx, *t).Name) == "" {
		return ErrNameEmpty
	}

	return nil
}

// Categories returns all categories owned by the type, ordered by name.
func (t Type) Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category

	err := db.
		Where("type_id = ?", t.ID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return []Category{}, err
	}

	return categories, nil
}

// DeleteType deletes a type, all categories it owns and their subcategories.
// Records referencing any of the deleted resources are deleted, too.
func DeleteType(db *gorm.DB, t Type) error {
	return Transaction(db, func(tx *gorm.DB) error {
		categories, err := t.Categories(tx)
		if err != nil {
			return err
		}

		for _, category := range categories {
			err = deleteCategory(tx, category)
			if err != nil {
				return err
			}
		}

		err = tx.Where("type_id = ?", t.ID).Delete(&CashFlowRecord{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&t).Error
	})
}
