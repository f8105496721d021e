package v1

import (
	"fmt"

	"github.com/dds-tracker/backend/internal/models"
	dds_uuid "github.com/dds-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SubcategoryEditable represents all user configurable parameters
type SubcategoryEditable struct {
	Name        string    `json:"name" example:"Avito" default:""`                          // Name of the subcategory
	CategoryID  uuid.UUID `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the category the subcategory belongs to
	Description string    `json:"description" example:"Listings on Avito" default:""`      // Description of the subcategory
}

func (editable SubcategoryEditable) model() models.Subcategory {
	return models.Subcategory{
		Name:        editable.Name,
		CategoryID:  editable.CategoryID,
		Description: editable.Description,
	}
}

type SubcategoryLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/subcategories/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The subcategory itself
	Records string `json:"records" example:"https://example.com/api/v1/records?subcategory=3b1ea324-d438-4419-882a-2fc91d71772f"` // Records with this subcategory
}

type Subcategory struct {
	models.DefaultModel
	SubcategoryEditable
	Links SubcategoryLinks `json:"links"`
}

func newSubcategory(c *gin.Context, model models.Subcategory) Subcategory {
	url := c.GetString(string(models.DBContextURL))

	return Subcategory{
		DefaultModel: model.DefaultModel,
		SubcategoryEditable: SubcategoryEditable{
			Name:        model.Name,
			CategoryID:  model.CategoryID,
			Description: model.Description,
		},
		Links: SubcategoryLinks{
			Self:    fmt.Sprintf("%s/v1/subcategories/%s", url, model.ID),
			Records: fmt.Sprintf("%s/v1/records?subcategory=%s", url, model.ID),
		},
	}
}

type SubcategoryListResponse struct {
	Data       []Subcategory `json:"data"`                                                          // List of subcategories
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SubcategoryCreateResponse struct {
	Data  []SubcategoryResponse `json:"data"`                                                          // List of the created subcategories or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SubcategoryCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SubcategoryResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SubcategoryResponse struct {
	Data  *Subcategory `json:"data"`                                                          // Data for the subcategory
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubcategoryQueryFilter struct {
	CategoryID dds_uuid.UUID `form:"category"`                   // By ID of the category
	Name       string        `form:"name" filterField:"false"`   // By name
	Search     string        `form:"search" filterField:"false"` // By string in name or description
	Offset     uint          `form:"offset" filterField:"false"` // The offset of the first subcategory returned. Defaults to 0.
	Limit      int           `form:"limit" filterField:"false"`  // Maximum number of subcategories to return. Defaults to 50.
}

func (f SubcategoryQueryFilter) model() models.Subcategory {
	return models.Subcategory{
		CategoryID: f.CategoryID.UUID,
	}
}
