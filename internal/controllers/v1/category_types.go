package v1

import (
	"fmt"

	"github.com/dds-tracker/backend/internal/models"
	dds_uuid "github.com/dds-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name        string    `json:"name" example:"Маркетинг" default:""`                            // Name of the category
	TypeID      uuid.UUID `json:"typeId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`          // ID of the type the category belongs to
	Description string    `json:"description" example:"Advertising and promotion" default:""` // Description of the category
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:        editable.Name,
		TypeID:      editable.TypeID,
		Description: editable.Description,
	}
}

type CategoryLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                     // The category itself
	Subcategories string `json:"subcategories" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f/subcategories"` // Subcategories of this category, for selections
	Records       string `json:"records" example:"https://example.com/api/v1/records?category=3b1ea324-d438-4419-882a-2fc91d71772f"`          // Records with this category
}

type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:        model.Name,
			TypeID:      model.TypeID,
			Description: model.Description,
		},
		Links: CategoryLinks{
			Self:          fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Subcategories: fmt.Sprintf("%s/v1/categories/%s/subcategories", url, model.ID),
			Records:       fmt.Sprintf("%s/v1/records?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	TypeID dds_uuid.UUID `form:"type"`                       // By ID of the type
	Name   string        `form:"name" filterField:"false"`   // By name
	Search string        `form:"search" filterField:"false"` // By string in name or description
	Offset uint          `form:"offset" filterField:"false"` // The offset of the first category returned. Defaults to 0.
	Limit  int           `form:"limit" filterField:"false"`  // Maximum number of categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		TypeID: f.TypeID.UUID,
	}
}
