package models

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DefaultModel is the base model for all taxonomy entities and records.
//
// Resources are hard deleted so that deleting an owning resource removes
// everything it owns.
type DefaultModel struct {
	ID uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce" gorm:"type:uuid;primaryKey"` // UUID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	return nil
}

// BeforeCreate is set to generate a UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// trimNamed removes surrounding whitespace from name and description
// and rejects empty names.
func trimNamed(name, description *string) error {
	*name = strings.TrimSpace(*name)
	*description = strings.TrimSpace(*description)

	if *name == "" {
		return ErrNameEmpty
	}

	return nil
}

// updated returns stored with the values changed by an update statement
// applied to it.
//
// The hook receiver is the model loaded from the database while the new
// values are in the statement destination. Struct and map destinations
// are supported, which covers Updates, Update(column, value) and Save.
func updated[T any](tx *gorm.DB, stored T) T {
	stmt := tx.Statement
	if stmt.Schema == nil {
		return stored
	}

	target := reflect.ValueOf(&stored).Elem()
	for _, field := range stmt.Schema.Fields {
		if field.DBName == "" || !stmt.Changed(field.Name) {
			continue
		}

		value, ok := updateValue(stmt, field)
		if !ok {
			continue
		}

		// Values that cannot be set fail the update itself
		_ = field.Set(stmt.Context, target, value)
	}

	return stored
}

// updateValue returns the value an update statement sets for field.
func updateValue(stmt *gorm.Statement, field *schema.Field) (any, bool) {
	if dest, ok := stmt.Dest.(map[string]any); ok {
		if value, ok := dest[field.Name]; ok {
			return value, true
		}

		value, ok := dest[field.DBName]
		return value, ok
	}

	dest := reflect.Indirect(reflect.ValueOf(stmt.Dest))
	if dest.Kind() != reflect.Struct || dest.Type() != field.Schema.ModelType {
		return nil, false
	}

	value, _ := field.ValueOf(stmt.Context, dest)
	return value, true
}

// saving reports if the statement is a Save, where the hook receiver
// already holds the new values.
func saving(tx *gorm.DB) bool {
	return tx.Statement.Dest == tx.Statement.Model
}
