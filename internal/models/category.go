package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category belongs to exactly one Type. Category names are unique.
type Category struct {
	DefaultModel
	Name        string    `gorm:"uniqueIndex;size:100"`
	Type        Type      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TypeID      uuid.UUID `gorm:"type:uuid;index"`
	Description string
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	return trimNamed(&c.Name, &c.Description)
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	return c.checkIntegrity(tx, *c)
}

func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	toSave := updated(tx, *c)

	if tx.Statement.Changed("Name") && strings.TrimSpace(toSave.Name) == "" {
		return ErrNameEmpty
	}

	if !tx.Statement.Changed("TypeID") && !saving(tx) {
		return nil
	}

	err := c.checkIntegrity(tx, toSave)
	if err != nil {
		return err
	}

	// Records keep their type, so a category with records cannot move
	var count int64
	err = tx.Session(&gorm.Session{NewDB: true}).
		Model(&CashFlowRecord{}).
		Where("category_id = ? AND type_id <> ?", c.ID, toSave.TypeID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return fmt.Errorf("%w: %d records are filed under the category with another type", ErrHierarchyViolation, count)
	}

	return nil
}

// checkIntegrity verifies that the owning type exists.
func (c *Category) checkIntegrity(tx *gorm.DB, toSave Category) error {
	_, err := load[Type](tx, toSave.TypeID)
	return err
}

// Subcategories returns all subcategories of the category, ordered by name.
func (c Category) Subcategories(db *gorm.DB) ([]Subcategory, error) {
	var subcategories []Subcategory

	err := db.
		Where("category_id = ?", c.ID).
		Order("name ASC").
		Find(&subcategories).Error
	if err != nil {
		return []Subcategory{}, err
	}

	return subcategories, nil
}

// DeleteCategory deletes a category with all of its subcategories and
// all records referencing any of them.
func DeleteCategory(db *gorm.DB, category Category) error {
	return Transaction(db, func(tx *gorm.DB) error {
		return deleteCategory(tx, category)
	})
}

func deleteCategory(tx *gorm.DB, category Category) error {
	err := tx.Where("category_id = ?", category.ID).Delete(&CashFlowRecord{}).Error
	if err != nil {
		return err
	}

	err = tx.Where("category_id = ?", category.ID).Delete(&Subcategory{}).Error
	if err != nil {
		return err
	}

	return tx.Delete(&category).Error
}
