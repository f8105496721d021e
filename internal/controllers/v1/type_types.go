package v1

import (
	"fmt"

	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// TypeEditable represents all user configurable parameters
type TypeEditable struct {
	Name        string `json:"name" example:"Пополнение" default:""`                  // Name of the type
	Description string `json:"description" example:"Money coming in" default:""` // Description of the type
}

func (editable TypeEditable) model() models.Type {
	return models.Type{
		Name:        editable.Name,
		Description: editable.Description,
	}
}

type TypeLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/types/3b1ea324-d438-4419-882a-2fc91d71772f"`                  // The type itself
	Categories string `json:"categories" example:"https://example.com/api/v1/types/3b1ea324-d438-4419-882a-2fc91d71772f/categories"` // Categories of this type, for selections
	Records    string `json:"records" example:"https://example.com/api/v1/records?type=3b1ea324-d438-4419-882a-2fc91d71772f"`       // Records with this type
}

type Type struct {
	models.DefaultModel
	TypeEditable
	Links TypeLinks `json:"links"`
}

func newType(c *gin.Context, model models.Type) Type {
	url := c.GetString(string(models.DBContextURL))

	return Type{
		DefaultModel: model.DefaultModel,
		TypeEditable: TypeEditable{
			Name:        model.Name,
			Description: model.Description,
		},
		Links: TypeLinks{
			Self:       fmt.Sprintf("%s/v1/types/%s", url, model.ID),
			Categories: fmt.Sprintf("%s/v1/types/%s/categories", url, model.ID),
			Records:    fmt.Sprintf("%s/v1/records?type=%s", url, model.ID),
		},
	}
}

type TypeListResponse struct {
	Data       []Type    `json:"data"`                                                          // List of types
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type TypeCreateResponse struct {
	Data  []TypeResponse `json:"data"`                                                          // List of the created types or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *TypeCreateResponse) appendError(err error, currentType int) int {
	e := err.Error()
	s.Data = append(s.Data, TypeResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newType := status(err)
	if newType > currentType {
		return newType
	}

	return currentType
}

type TypeResponse struct {
	Data  *Type `json:"data"`                                                          // Data for the type
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TypeQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in name or description
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first type returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of types to return. Defaults to 50.
}
