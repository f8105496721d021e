package v1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/internal/types"
	dds_uuid "github.com/dds-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordEditable represents all user configurable parameters
type RecordEditable struct {
	Date          types.Date      `json:"date" swaggertype:"string" example:"2025-10-01"`                 // Date of the record. Defaults to today.
	StatusID      uuid.UUID       `json:"statusId" example:"1e777d24-3f5b-4c43-8000-04f65f895578"`        // ID of the status
	TypeID        uuid.UUID       `json:"typeId" example:"9e1a3c2b-41c5-4b5a-a6d0-5f3e2b6d0c11"`          // ID of the type
	CategoryID    uuid.UUID       `json:"categoryId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // ID of the category. Must belong to the type.
	SubcategoryID uuid.UUID       `json:"subcategoryId" example:"0b7dbb6e-0a29-4c52-8a8b-0c7ab43b4e07"`   // ID of the subcategory. Must belong to the category.
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"1000.00" minimum:"0.01"` // Amount of the record, rounded to two decimal places
	Comment       string          `json:"comment" example:"Затраты на VPS сервер" default:""`             // Free text comment
}

func (editable RecordEditable) model() models.CashFlowRecord {
	date := editable.Date
	if date.IsZero() {
		date = types.Today()
	}

	return models.CashFlowRecord{
		Date:          date,
		StatusID:      editable.StatusID,
		TypeID:        editable.TypeID,
		CategoryID:    editable.CategoryID,
		SubcategoryID: editable.SubcategoryID,
		Amount:        editable.Amount.Round(2),
		Comment:       strings.TrimSpace(editable.Comment),
	}
}

type RecordLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/records/3b1ea324-d438-4419-882a-2fc91d71772f"` // The record itself
}

type Record struct {
	models.DefaultModel
	RecordEditable
	Links RecordLinks `json:"links"`
}

func newRecord(c *gin.Context, model models.CashFlowRecord) Record {
	url := c.GetString(string(models.DBContextURL))

	return Record{
		DefaultModel: model.DefaultModel,
		RecordEditable: RecordEditable{
			Date:          model.Date,
			StatusID:      model.StatusID,
			TypeID:        model.TypeID,
			CategoryID:    model.CategoryID,
			SubcategoryID: model.SubcategoryID,
			Amount:        model.Amount,
			Comment:       model.Comment,
		},
		Links: RecordLinks{
			Self: fmt.Sprintf("%s/v1/records/%s", url, model.ID),
		},
	}
}

type RecordListResponse struct {
	Data       []Record    `json:"data"`                                                          // List of records
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RecordCreateResponse struct {
	Data  []RecordResponse `json:"data"`                                                          // List of the created records or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecordCreateResponse) appendError(err error, currentStatus int) int {
	r.Data = append(r.Data, recordError(err))

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecordResponse struct {
	Data   *Record           `json:"data"`                                                                       // Data for the record
	Error  *string           `json:"error" example:"the selected category does not belong to the selected type"` // The error, if any occurred
	Fields map[string]string `json:"fields,omitempty"`                                                           // Error messages per field for rejected writes
}

// recordError creates the response for a failed record write.
// Every broken consistency rule is listed for the fields it applies to.
func recordError(err error) RecordResponse {
	e := err.Error()
	r := RecordResponse{Error: &e}

	var v *models.ValidationError
	if errors.As(err, &v) {
		r.Fields = v.Fields()
	}

	return r
}

type RecordQueryFilter struct {
	DateFrom      types.Date    `form:"dateFrom" filterField:"false"` // From this date, inclusive
	DateTo        types.Date    `form:"dateTo" filterField:"false"`   // Until this date, inclusive
	StatusID      dds_uuid.UUID `form:"status"`                       // By ID of the status
	TypeID        dds_uuid.UUID `form:"type"`                         // By ID of the type
	CategoryID    dds_uuid.UUID `form:"category"`                     // By ID of the category
	SubcategoryID dds_uuid.UUID `form:"subcategory"`                  // By ID of the subcategory
	Offset        uint          `form:"offset" filterField:"false"`   // The offset of the first record returned. Defaults to 0.
	Limit         int           `form:"limit" filterField:"false"`    // Maximum number of records to return. Defaults to 25.
}

func (f RecordQueryFilter) model() models.CashFlowRecord {
	return models.CashFlowRecord{
		StatusID:      f.StatusID.UUID,
		TypeID:        f.TypeID.UUID,
		CategoryID:    f.CategoryID.UUID,
		SubcategoryID: f.SubcategoryID.UUID,
	}
}

// validate checks the filter values that binding cannot check.
func (f RecordQueryFilter) validate() error {
	if !f.DateFrom.IsZero() && !f.DateTo.IsZero() && f.DateFrom.After(f.DateTo) {
		return errDateRange
	}

	return nil
}

type RecordSummary struct {
	Count    int64           `json:"count" example:"12"`                            // Number of matching records
	Income   decimal.Decimal `json:"income" swaggertype:"string" example:"15000"`   // Sum of all records with an income type
	Expenses decimal.Decimal `json:"expenses" swaggertype:"string" example:"4250.5"` // Sum of all records with an expense type
	Balance  decimal.Decimal `json:"balance" swaggertype:"string" example:"10749.5"` // Income minus expenses
}

type RecordSummaryResponse struct {
	Data  *RecordSummary `json:"data"`                                                                           // The summary
	Error *string        `json:"error" example:"the dateFrom parameter must not be after the dateTo parameter"` // The error, if any occurred
}
