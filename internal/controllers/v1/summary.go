package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SummaryConfig configures which types count as income and which as expenses.
type SummaryConfig struct {
	IncomeTypeNames  []string
	ExpenseTypeNames []string
}

// OptionsRecordSummary returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Records
//	@Success		204
//	@Router			/v1/records/summary [options]
func OptionsRecordSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetRecordSummary returns the handler for the record summary.
//
//	@Summary		Get record summary
//	@Description	Returns the number of matching records and the totals for income and expense types
//	@Tags			Records
//	@Produce		json
//	@Success		200			{object}	RecordSummaryResponse
//	@Failure		400			{object}	RecordSummaryResponse
//	@Failure		500			{object}	RecordSummaryResponse
//	@Router			/v1/records/summary [get]
//	@Param			dateFrom	query	string	false	"Records on or after this date, YYYY-MM-DD"
//	@Param			dateTo		query	string	false	"Records on or before this date, YYYY-MM-DD"
//	@Param			status		query	string	false	"Filter by status ID"
//	@Param			type		query	string	false	"Filter by type ID"
//	@Param			category	query	string	false	"Filter by category ID"
//	@Param			subcategory	query	string	false	"Filter by subcategory ID"
func GetRecordSummary(config SummaryConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, queryFields, _, err := bindRecordFilter(c)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, RecordSummaryResponse{
				Error: &s,
			})
			return
		}

		var summary RecordSummary
		err = filterRecords(models.DB.Model(&models.CashFlowRecord{}), filter, queryFields).Count(&summary.Count).Error
		if err != nil {
			e := err.Error()
			c.JSON(status(err), RecordSummaryResponse{
				Error: &e,
			})
			return
		}

		summary.Income, err = total(filter, queryFields, config.IncomeTypeNames)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), RecordSummaryResponse{
				Error: &e,
			})
			return
		}

		summary.Expenses, err = total(filter, queryFields, config.ExpenseTypeNames)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), RecordSummaryResponse{
				Error: &e,
			})
			return
		}

		summary.Balance = summary.Income.Sub(summary.Expenses)
		c.JSON(http.StatusOK, RecordSummaryResponse{Data: &summary})
	}
}

// total sums the amounts of all filtered records with a type named
// in typeNames.
func total(filter RecordQueryFilter, queryFields []any, typeNames []string) (decimal.Decimal, error) {
	if len(typeNames) == 0 {
		return decimal.Zero, nil
	}

	q := models.DB.
		Model(&models.CashFlowRecord{}).
		Joins("JOIN types ON types.id = cash_flow_records.type_id").
		Where("types.name IN ?", typeNames)

	var amounts []decimal.Decimal
	err := filterRecords(q, filter, queryFields).Pluck("cash_flow_records.amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	return sum, nil
}
