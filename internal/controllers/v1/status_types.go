package v1

import (
	"fmt"

	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// StatusEditable represents all user configurable parameters
type StatusEditable struct {
	Name        string `json:"name" example:"Бизнес" default:""`                       // Name of the status
	Description string `json:"description" example:"Company expenses" default:""` // Description of the status
}

func (editable StatusEditable) model() models.Status {
	return models.Status{
		Name:        editable.Name,
		Description: editable.Description,
	}
}

type StatusLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/statuses/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The status itself
	Records string `json:"records" example:"https://example.com/api/v1/records?status=3b1ea324-d438-4419-882a-2fc91d71772f"` // Records with this status
}

type Status struct {
	models.DefaultModel
	StatusEditable
	Links StatusLinks `json:"links"`
}

func newStatus(c *gin.Context, model models.Status) Status {
	url := c.GetString(string(models.DBContextURL))

	return Status{
		DefaultModel: model.DefaultModel,
		StatusEditable: StatusEditable{
			Name:        model.Name,
			Description: model.Description,
		},
		Links: StatusLinks{
			Self:    fmt.Sprintf("%s/v1/statuses/%s", url, model.ID),
			Records: fmt.Sprintf("%s/v1/records?status=%s", url, model.ID),
		},
	}
}

type StatusListResponse struct {
	Data       []Status    `json:"data"`                                                          // List of statuses
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type StatusCreateResponse struct {
	Data  []StatusResponse `json:"data"`                                                          // List of the created statuses or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *StatusCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, StatusResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type StatusResponse struct {
	Data  *Status `json:"data"`                                                          // Data for the status
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type StatusQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in name or description
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first status returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of statuses to return. Defaults to 50.
}
