package models

import (
	"strings"

	"gorm.io/gorm"
)

// Status is the top level of the taxonomy, e.g. "Business" or "Personal".
type Status struct {
	DefaultModel
	Name        string `gorm:"uniqueIndex;size:50"`
	Description string
}

func (s *Status) BeforeSave(_ *gorm.DB) error {
	return trimNamed(&s.Name, &s.Description)
}

func (s *Status) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("Name") && strings.TrimSpace(updated(tx, *s).Name) == "" {
		return ErrNameEmpty
	}

	return nil
}

// DeleteStatus deletes a status and every record filed under it.
func DeleteStatus(db *gorm.DB, status Status) error {
	return Transaction(db, func(tx *gorm.DB) error {
		err := tx.Where("status_id = ?", status.ID).Delete(&CashFlowRecord{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&status).Error
	})
}
