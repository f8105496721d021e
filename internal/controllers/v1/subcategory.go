package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSubcategoryRoutes registers the routes for subcategories with
// the RouterGroup that is passed.
func RegisterSubcategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSubcategoryList)
		r.GET("", GetSubcategories)
		r.POST("", CreateSubcategories)
	}

	// Subcategory with ID
	{
		r.OPTIONS("/:id", OptionsSubcategoryDetail)
		r.GET("/:id", GetSubcategory)
		r.PATCH("/:id", UpdateSubcategory)
		r.DELETE("/:id", DeleteSubcategory)
	}
}

// OptionsSubcategoryList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Subcategories
//	@Success		204
//	@Router			/v1/subcategories [options]
func OptionsSubcategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsSubcategoryDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Subcategories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/subcategories/{id} [options]
func OptionsSubcategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Subcategory{})
}

// CreateSubcategories creates subcategories
//
//	@Summary		Create subcategories
//	@Description	Creates subcategories from the list of submitted subcategory data. The response code is the highest response code number that a single subcategory creation would have caused. If it is not equal to 201, at least one subcategory has an error.
//	@Tags			Subcategories
//	@Produce		json
//	@Success		201			{object}	SubcategoryCreateResponse
//	@Failure		400			{object}	SubcategoryCreateResponse
//	@Failure		500			{object}	SubcategoryCreateResponse
//	@Param			subcategories	body		[]SubcategoryEditable	true	"Subcategories"
//	@Router			/v1/subcategories [post]
func CreateSubcategories(c *gin.Context) {
	var editables []SubcategoryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http subcategory. Will be modified when errors occur
	status := http.StatusCreated
	r := SubcategoryCreateResponse{}

	for _, editable := range editables {
		s := editable.model()

		err = models.DB.Create(&s).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSubcategory(c, s)
		r.Data = append(r.Data, SubcategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetSubcategories returns a list of subcategories
//
//	@Summary		Get subcategories
//	@Description	Returns a list of subcategories
//	@Tags			Subcategories
//	@Produce		json
//	@Success		200		{object}	SubcategoryListResponse
//	@Failure		400		{object}	SubcategoryListResponse
//	@Failure		500		{object}	SubcategoryListResponse
//	@Router			/v1/subcategories [get]
//	@Param			category	query	string	false	"Filter by category ID"
//	@Param			name	query	string	false	"Filter by name"
//	@Param			search	query	string	false	"Search for this text in name and description"
//	@Param			offset	query	uint	false	"The offset of the first subcategory returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of subcategories to return. Defaults to 50."
func GetSubcategories(c *gin.Context) {
	var filter SubcategoryQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		s := httputil.ValidationErrorsToText(err).Error()
		c.JSON(http.StatusBadRequest, SubcategoryListResponse{
			Error: &s,
		})
		return
	}

	model := filter.model()
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC").Where(&model, queryFields...)
	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit, defaultLimit)

	var subcategories []models.Subcategory
	err := q.Find(&subcategories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Subcategory, 0, len(subcategories))
	for _, s := range subcategories {
		data = append(data, newSubcategory(c, s))
	}

	c.JSON(http.StatusOK, SubcategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetSubcategory returns a specific subcategory
//
//	@Summary		Get subcategory
//	@Description	Returns a specific subcategory
//	@Tags			Subcategories
//	@Produce		json
//	@Success		200	{object}	SubcategoryResponse
//	@Failure		400	{object}	SubcategoryResponse
//	@Failure		404	{object}	SubcategoryResponse
//	@Failure		500	{object}	SubcategoryResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/subcategories/{id} [get]
func GetSubcategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &s,
		})
		return
	}

	var s models.Subcategory
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &e,
		})
		return
	}

	data := newSubcategory(c, s)
	c.JSON(http.StatusOK, SubcategoryResponse{Data: &data})
}

// UpdateSubcategory updates a specific subcategory
//
//	@Summary		Update subcategory
//	@Description	Update an existing subcategory. Only values to be updated need to be specified.
//	@Tags			Subcategories
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	SubcategoryResponse
//	@Failure		400		{object}	SubcategoryResponse
//	@Failure		404		{object}	SubcategoryResponse
//	@Failure		500		{object}	SubcategoryResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			subcategory	body		SubcategoryEditable	true	"Subcategory"
//	@Router			/v1/subcategories/{id} [patch]
func UpdateSubcategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &s,
		})
		return
	}

	var s models.Subcategory
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubcategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &e,
		})
		return
	}

	var data SubcategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&s).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubcategoryResponse{
			Error: &e,
		})
		return
	}

	r := newSubcategory(c, s)
	c.JSON(http.StatusOK, SubcategoryResponse{Data: &r})
}

// DeleteSubcategory deletes a specific subcategory
//
//	@Summary		Delete subcategory
//	@Description	Deletes a subcategory and all records filed under it
//	@Tags			Subcategories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/subcategories/{id} [delete]
func DeleteSubcategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var s models.Subcategory
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteSubcategory(models.DB, s)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
