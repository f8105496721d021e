package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// defaultRecordLimit is the number of records returned when no limit is set.
const defaultRecordLimit = 25

// RegisterRecordRoutes registers the routes for records with
// the RouterGroup that is passed.
func RegisterRecordRoutes(r *gin.RouterGroup, summary SummaryConfig) {
	// Root group
	{
		r.OPTIONS("", OptionsRecordList)
		r.GET("", GetRecords)
		r.POST("", CreateRecords)
	}

	// Summary for the filtered records
	{
		r.OPTIONS("/summary", OptionsRecordSummary)
		r.GET("/summary", GetRecordSummary(summary))
	}

	// Record with ID
	{
		r.OPTIONS("/:id", OptionsRecordDetail)
		r.GET("/:id", GetRecord)
		r.PATCH("/:id", UpdateRecord)
		r.DELETE("/:id", DeleteRecord)
	}
}

// OptionsRecordList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Records
//	@Success		204
//	@Router			/v1/records [options]
func OptionsRecordList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsRecordDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Records
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/records/{id} [options]
func OptionsRecordDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CashFlowRecord{})
}

// CreateRecords creates records
//
//	@Summary		Create records
//	@Description	Creates records from the list of submitted record data. The response code is the highest response code number that a single record creation would have caused. If it is not equal to 201, at least one record has an error.
//	@Tags			Records
//	@Produce		json
//	@Success		201		{object}	RecordCreateResponse
//	@Failure		400		{object}	RecordCreateResponse
//	@Failure		404		{object}	RecordCreateResponse
//	@Failure		500		{object}	RecordCreateResponse
//	@Param			records	body		[]RecordEditable	true	"Records"
//	@Router			/v1/records [post]
func CreateRecords(c *gin.Context) {
	var editables []RecordEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecordCreateResponse{}

	for _, editable := range editables {
		record := editable.model()

		// Check before writing so that all violations are reported
		err = models.CheckRecord(models.DB, record)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		err = models.DB.Create(&record).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecord(c, record)
		r.Data = append(r.Data, RecordResponse{Data: &data})
	}

	c.JSON(status, r)
}

// filterRecords applies the record filter to a query.
func filterRecords(q *gorm.DB, filter RecordQueryFilter, queryFields []any) *gorm.DB {
	model := filter.model()
	q = q.Where(&model, queryFields...)

	if !filter.DateFrom.IsZero() {
		q = q.Where("cash_flow_records.date >= ?", filter.DateFrom)
	}

	if !filter.DateTo.IsZero() {
		q = q.Where("cash_flow_records.date < ?", filter.DateTo.AddDays(1))
	}

	return q
}

// bindRecordFilter binds and validates the record filter of the request.
func bindRecordFilter(c *gin.Context) (RecordQueryFilter, []any, []string, error) {
	var filter RecordQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		return RecordQueryFilter{}, nil, nil, httputil.ValidationErrorsToText(err)
	}

	if err := filter.validate(); err != nil {
		return RecordQueryFilter{}, nil, nil, err
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	return filter, queryFields, setFields, nil
}

// GetRecords returns a list of records
//
//	@Summary		Get records
//	@Description	Returns a list of records, newest first
//	@Tags			Records
//	@Produce		json
//	@Success		200			{object}	RecordListResponse
//	@Failure		400			{object}	RecordListResponse
//	@Failure		500			{object}	RecordListResponse
//	@Router			/v1/records [get]
//	@Param			dateFrom	query	string	false	"Records on or after this date, YYYY-MM-DD"
//	@Param			dateTo		query	string	false	"Records on or before this date, YYYY-MM-DD"
//	@Param			status		query	string	false	"Filter by status ID"
//	@Param			type		query	string	false	"Filter by type ID"
//	@Param			category	query	string	false	"Filter by category ID"
//	@Param			subcategory	query	string	false	"Filter by subcategory ID"
//	@Param			offset		query	uint	false	"The offset of the first record returned. Defaults to 0."
//	@Param			limit		query	int		false	"Maximum number of records to return. Defaults to 25."
func GetRecords(c *gin.Context) {
	filter, queryFields, setFields, err := bindRecordFilter(c)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, RecordListResponse{
			Error: &s,
		})
		return
	}

	q := filterRecords(models.DB.Order(models.RecordOrder), filter, queryFields)

	limit := defaultRecordLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var records []models.CashFlowRecord
	err = q.Find(&records).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Record, 0, len(records))
	for _, record := range records {
		data = append(data, newRecord(c, record))
	}

	c.JSON(http.StatusOK, RecordListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetRecord returns a specific record
//
//	@Summary		Get record
//	@Description	Returns a specific record
//	@Tags			Records
//	@Produce		json
//	@Success		200	{object}	RecordResponse
//	@Failure		400	{object}	RecordResponse
//	@Failure		404	{object}	RecordResponse
//	@Failure		500	{object}	RecordResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/records/{id} [get]
func GetRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &s,
		})
		return
	}

	var record models.CashFlowRecord
	err = models.DB.First(&record, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &e,
		})
		return
	}

	data := newRecord(c, record)
	c.JSON(http.StatusOK, RecordResponse{Data: &data})
}

// UpdateRecord updates a specific record
//
//	@Summary		Update record
//	@Description	Update an existing record. Only values to be updated need to be specified. The record is validated as it will be stored.
//	@Tags			Records
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	RecordResponse
//	@Failure		400		{object}	RecordResponse
//	@Failure		404		{object}	RecordResponse
//	@Failure		500		{object}	RecordResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			record	body		RecordEditable	true	"Record"
//	@Router			/v1/records/{id} [patch]
func UpdateRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &s,
		})
		return
	}

	var record models.CashFlowRecord
	err = models.DB.First(&record, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecordEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &e,
		})
		return
	}

	var data RecordEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecordResponse{
			Error: &e,
		})
		return
	}

	update := data.model()
	err = models.CheckRecord(models.DB, merge(record, update, updateFields))
	if err != nil {
		c.JSON(status(err), recordError(err))
		return
	}

	err = models.DB.Model(&record).Select("", updateFields...).Updates(update).Error
	if err != nil {
		c.JSON(status(err), recordError(err))
		return
	}

	r := newRecord(c, record)
	c.JSON(http.StatusOK, RecordResponse{Data: &r})
}

// merge returns the record as it is stored after the fields
// are updated with the values of update.
func merge(record, update models.CashFlowRecord, fields []any) models.CashFlowRecord {
	for _, field := range fields {
		switch field {
		case "Date":
			record.Date = update.Date
		case "StatusID":
			record.StatusID = update.StatusID
		case "TypeID":
			record.TypeID = update.TypeID
		case "CategoryID":
			record.CategoryID = update.CategoryID
		case "SubcategoryID":
			record.SubcategoryID = update.SubcategoryID
		case "Amount":
			record.Amount = update.Amount
		case "Comment":
			record.Comment = update.Comment
		}
	}

	return record
}

// DeleteRecord deletes a specific record
//
//	@Summary		Delete record
//	@Description	Deletes a record
//	@Tags			Records
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/records/{id} [delete]
func DeleteRecord(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var record models.CashFlowRecord
	err = models.DB.First(&record, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&record).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
