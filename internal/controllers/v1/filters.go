package v1

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// defaultLimit is the number of taxonomy resources returned when no limit is set.
const defaultLimit = 50

// nameFilters filters resources by name and searches in their name and description.
func nameFilters(db, query *gorm.DB, setFields []string, name, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("description LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// paginate applies offset and limit to the query and returns the limit used.
func paginate(query *gorm.DB, setFields []string, offset uint, limit, fallback int) (*gorm.DB, int) {
	if !slices.Contains(setFields, "Limit") {
		limit = fallback
	}

	return query.Offset(int(offset)).Limit(limit), limit
}
