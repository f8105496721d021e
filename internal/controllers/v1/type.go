package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterTypeRoutes registers the routes for types with
// the RouterGroup that is passed.
func RegisterTypeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTypeList)
		r.GET("", GetTypes)
		r.POST("", CreateTypes)
	}

	// Type with ID
	{
		r.OPTIONS("/:id", OptionsTypeDetail)
		r.GET("/:id", GetType)
		r.PATCH("/:id", UpdateType)
		r.DELETE("/:id", DeleteType)
	}

	// Categories of the type
	{
		r.OPTIONS("/:id/categories", OptionsTypeCategories)
		r.GET("/:id/categories", GetTypeCategories)
	}
}

// OptionsTypeList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Types
//	@Success		204
//	@Router			/v1/types [options]
func OptionsTypeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsTypeDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Types
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/types/{id} [options]
func OptionsTypeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Type{})
}

// CreateTypes creates types
//
//	@Summary		Create types
//	@Description	Creates types from the list of submitted type data. The response code is the highest response code number that a single type creation would have caused. If it is not equal to 201, at least one type has an error.
//	@Tags			Types
//	@Produce		json
//	@Success		201			{object}	TypeCreateResponse
//	@Failure		400			{object}	TypeCreateResponse
//	@Failure		500			{object}	TypeCreateResponse
//	@Param			types	body		[]TypeEditable	true	"Types"
//	@Router			/v1/types [post]
func CreateTypes(c *gin.Context) {
	var editables []TypeEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TypeCreateResponse{}

	for _, editable := range editables {
		s := editable.model()

		err = models.DB.Create(&s).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newType(c, s)
		r.Data = append(r.Data, TypeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetTypes returns a list of types
//
//	@Summary		Get types
//	@Description	Returns a list of types
//	@Tags			Types
//	@Produce		json
//	@Success		200		{object}	TypeListResponse
//	@Failure		400		{object}	TypeListResponse
//	@Failure		500		{object}	TypeListResponse
//	@Router			/v1/types [get]
//	@Param			name	query	string	false	"Filter by name"
//	@Param			search	query	string	false	"Search for this text in name and description"
//	@Param			offset	query	uint	false	"The offset of the first type returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of types to return. Defaults to 50."
func GetTypes(c *gin.Context) {
	var filter TypeQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		s := httputil.ValidationErrorsToText(err).Error()
		c.JSON(http.StatusBadRequest, TypeListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit, defaultLimit)

	var types []models.Type
	err := q.Find(&types).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Type, 0, len(types))
	for _, s := range types {
		data = append(data, newType(c, s))
	}

	c.JSON(http.StatusOK, TypeListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetType returns a specific type
//
//	@Summary		Get type
//	@Description	Returns a specific type
//	@Tags			Types
//	@Produce		json
//	@Success		200	{object}	TypeResponse
//	@Failure		400	{object}	TypeResponse
//	@Failure		404	{object}	TypeResponse
//	@Failure		500	{object}	TypeResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/types/{id} [get]
func GetType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &s,
		})
		return
	}

	var s models.Type
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &e,
		})
		return
	}

	data := newType(c, s)
	c.JSON(http.StatusOK, TypeResponse{Data: &data})
}

// UpdateType updates a specific type
//
//	@Summary		Update type
//	@Description	Update an existing type. Only values to be updated need to be specified.
//	@Tags			Types
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	TypeResponse
//	@Failure		400		{object}	TypeResponse
//	@Failure		404		{object}	TypeResponse
//	@Failure		500		{object}	TypeResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			type	body		TypeEditable	true	"Type"
//	@Router			/v1/types/{id} [patch]
func UpdateType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &s,
		})
		return
	}

	var s models.Type
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TypeEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &e,
		})
		return
	}

	var data TypeEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&s).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TypeResponse{
			Error: &e,
		})
		return
	}

	r := newType(c, s)
	c.JSON(http.StatusOK, TypeResponse{Data: &r})
}

// DeleteType deletes a specific type
//
//	@Summary		Delete type
//	@Description	Deletes a type with all of its categories, their subcategories and all records filed under any of them
//	@Tags			Types
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/types/{id} [delete]
func DeleteType(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var s models.Type
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteType(models.DB, s)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// OptionsTypeCategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Types
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/types/{id}/categories [options]
func OptionsTypeCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetTypeCategories returns the categories of a type
//
//	@Summary		Get categories of a type
//	@Description	Returns ID and name of all categories of the type, ordered by name. An unknown type has no categories.
//	@Tags			Types
//	@Produce		json
//	@Success		200	{array}		LookupItem
//	@Failure		400	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/types/{id}/categories [get]
func GetTypeCategories(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	categories, err := models.Type{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}.Categories(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, lookupItems(categories, func(category models.Category) LookupItem {
		return LookupItem{ID: category.ID, Name: category.Name}
	}))
}
