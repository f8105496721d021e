// Package seed creates the initial taxonomy of statuses, types, categories
// and subcategories.
package seed

import (
	"github.com/dds-tracker/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Category is a category with its type and subcategories, all referenced
// by name.
type Category struct {
	Name          string
	Type          string
	Subcategories []string
}

// Data is a taxonomy to seed.
type Data struct {
	Statuses   []string
	Types      []string
	Categories []Category
}

// Default is the taxonomy every new installation starts with.
var Default = Data{
	Statuses: []string{"Бизнес", "Личное", "Налог"},
	Types:    []string{"Пополнение", "Списание"},
	Categories: []Category{
		{Name: "Инфраструктура", Type: "Списание", Subcategories: []string{"VPS", "Proxy"}},
		{Name: "Маркетинг", Type: "Списание", Subcategories: []string{"Farpost", "Avito"}},
	},
}

// Result counts the entities that were created.
type Result struct {
	Statuses      int
	Types         int
	Categories    int
	Subcategories int
}

// Total returns the number of all created entities.
func (r Result) Total() int {
	return r.Statuses + r.Types + r.Categories + r.Subcategories
}

// Run creates every entity of data that does not exist yet. Existing
// entities are matched by name and left untouched, so Run can be called
// any number of times.
//
// Everything is created in one transaction.
func Run(db *gorm.DB, data Data) (Result, error) {
	var result Result

	err := models.Transaction(db, func(tx *gorm.DB) error {
		for _, name := range data.Statuses {
			_, created, err := getOrCreate(tx, &models.Status{Name: name}, models.Status{Name: name})
			if err != nil {
				return err
			}
			if created {
				result.Statuses++
			}
		}

		types := make(map[string]models.Type, len(data.Types))
		for _, name := range data.Types {
			t, created, err := getOrCreate(tx, &models.Type{Name: name}, models.Type{Name: name})
			if err != nil {
				return err
			}
			if created {
				result.Types++
			}
			types[name] = t
		}

		for _, c := range data.Categories {
			t, ok := types[c.Type]
			if !ok {
				var (
					created bool
					err     error
				)
				t, created, err = getOrCreate(tx, &models.Type{Name: c.Type}, models.Type{Name: c.Type})
				if err != nil {
					return err
				}
				if created {
					result.Types++
				}
				types[c.Type] = t
			}

			category, created, err := getOrCreate(tx, &models.Category{Name: c.Name}, models.Category{Name: c.Name, TypeID: t.ID})
			if err != nil {
				return err
			}
			if created {
				result.Categories++
			}

			for _, name := range c.Subcategories {
				_, created, err := getOrCreate(tx, &models.Subcategory{Name: name, CategoryID: category.ID}, models.Subcategory{Name: name, CategoryID: category.ID})
				if err != nil {
					return err
				}
				if created {
					result.Subcategories++
				}
			}
		}

		return nil
	})
	if err != nil {
		return Result{}, err
	}

	return result, nil
}

// getOrCreate returns the first entity matching query. If there is none,
// model is created.
func getOrCreate[T models.Status | models.Type | models.Category | models.Subcategory](tx *gorm.DB, query *T, model T) (T, bool, error) {
	var existing T
	q := tx.Where(query).Limit(1).Find(&existing)
	if q.Error != nil {
		return existing, false, q.Error
	}

	if q.RowsAffected > 0 {
		return existing, false, nil
	}

	err := tx.Create(&model).Error
	if err != nil {
		return model, false, err
	}

	log.Info().Str("entity", entityName(model)).Str("name", name(model)).Msg("Seed")
	return model, true, nil
}

func entityName(model any) string {
	switch model.(type) {
	case models.Status:
		return "status"
	case models.Type:
		return "type"
	case models.Category:
		return "category"
	default:
		return "subcategory"
	}
}

func name(model any) string {
	switch m := model.(type) {
	case models.Status:
		return m.Name
	case models.Type:
		return m.Name
	case models.Category:
		return m.Name
	case models.Subcategory:
		return m.Name
	}

	return ""
}
