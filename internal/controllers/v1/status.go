package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterStatusRoutes registers the routes for statuses with
// the RouterGroup that is passed.
func RegisterStatusRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsStatusList)
		r.GET("", GetStatuses)
		r.POST("", CreateStatuses)
	}

	// Status with ID
	{
		r.OPTIONS("/:id", OptionsStatusDetail)
		r.GET("/:id", GetStatus)
		r.PATCH("/:id", UpdateStatus)
		r.DELETE("/:id", DeleteStatus)
	}
}

// OptionsStatusList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Statuses
//	@Success		204
//	@Router			/v1/statuses [options]
func OptionsStatusList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsStatusDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Statuses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/statuses/{id} [options]
func OptionsStatusDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Status{})
}

// CreateStatuses creates statuses
//
//	@Summary		Create statuses
//	@Description	Creates statuses from the list of submitted status data. The response code is the highest response code number that a single status creation would have caused. If it is not equal to 201, at least one status has an error.
//	@Tags			Statuses
//	@Produce		json
//	@Success		201			{object}	StatusCreateResponse
//	@Failure		400			{object}	StatusCreateResponse
//	@Failure		500			{object}	StatusCreateResponse
//	@Param			statuses	body		[]StatusEditable	true	"Statuses"
//	@Router			/v1/statuses [post]
func CreateStatuses(c *gin.Context) {
	var editables []StatusEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := StatusCreateResponse{}

	for _, editable := range editables {
		s := editable.model()

		err = models.DB.Create(&s).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newStatus(c, s)
		r.Data = append(r.Data, StatusResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetStatuses returns a list of statuses
//
//	@Summary		Get statuses
//	@Description	Returns a list of statuses
//	@Tags			Statuses
//	@Produce		json
//	@Success		200		{object}	StatusListResponse
//	@Failure		400		{object}	StatusListResponse
//	@Failure		500		{object}	StatusListResponse
//	@Router			/v1/statuses [get]
//	@Param			name	query	string	false	"Filter by name"
//	@Param			search	query	string	false	"Search for this text in name and description"
//	@Param			offset	query	uint	false	"The offset of the first status returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of statuses to return. Defaults to 50."
func GetStatuses(c *gin.Context) {
	var filter StatusQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		s := httputil.ValidationErrorsToText(err).Error()
		c.JSON(http.StatusBadRequest, StatusListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit, defaultLimit)

	var statuses []models.Status
	err := q.Find(&statuses).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Status, 0, len(statuses))
	for _, s := range statuses {
		data = append(data, newStatus(c, s))
	}

	c.JSON(http.StatusOK, StatusListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetStatus returns a specific status
//
//	@Summary		Get status
//	@Description	Returns a specific status
//	@Tags			Statuses
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Failure		400	{object}	StatusResponse
//	@Failure		404	{object}	StatusResponse
//	@Failure		500	{object}	StatusResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/statuses/{id} [get]
func GetStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &s,
		})
		return
	}

	var s models.Status
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &e,
		})
		return
	}

	data := newStatus(c, s)
	c.JSON(http.StatusOK, StatusResponse{Data: &data})
}

// UpdateStatus updates a specific status
//
//	@Summary		Update status
//	@Description	Update an existing status. Only values to be updated need to be specified.
//	@Tags			Statuses
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	StatusResponse
//	@Failure		404		{object}	StatusResponse
//	@Failure		500		{object}	StatusResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			status	body		StatusEditable	true	"Status"
//	@Router			/v1/statuses/{id} [patch]
func UpdateStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &s,
		})
		return
	}

	var s models.Status
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, StatusEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &e,
		})
		return
	}

	var data StatusEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&s).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), StatusResponse{
			Error: &e,
		})
		return
	}

	r := newStatus(c, s)
	c.JSON(http.StatusOK, StatusResponse{Data: &r})
}

// DeleteStatus deletes a specific status
//
//	@Summary		Delete status
//	@Description	Deletes a status and all records filed under it
//	@Tags			Statuses
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/statuses/{id} [delete]
func DeleteStatus(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var s models.Status
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteStatus(models.DB, s)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
