package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategories)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}

	// Subcategories of the category
	{
		r.OPTIONS("/:id/subcategories", OptionsCategorySubcategories)
		r.GET("/:id/subcategories", GetCategorySubcategories)
	}
}

// OptionsCategoryList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Router			/v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsCategoryDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{})
}

// CreateCategories creates categories
//
//	@Summary		Create categories
//	@Description	Creates categories from the list of submitted category data. The response code is the highest response code number that a single category creation would have caused. If it is not equal to 201, at least one category has an error.
//	@Tags			Categories
//	@Produce		json
//	@Success		201			{object}	CategoryCreateResponse
//	@Failure		400			{object}	CategoryCreateResponse
//	@Failure		500			{object}	CategoryCreateResponse
//	@Param			categories	body		[]CategoryEditable	true	"Categories"
//	@Router			/v1/categories [post]
func CreateCategories(c *gin.Context) {
	var editables []CategoryEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http category. Will be modified when errors occur
	status := http.StatusCreated
	r := CategoryCreateResponse{}

	for _, editable := range editables {
		s := editable.model()

		err = models.DB.Create(&s).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newCategory(c, s)
		r.Data = append(r.Data, CategoryResponse{Data: &data})
	}

	c.JSON(status, r)
}

// GetCategories returns a list of categories
//
//	@Summary		Get categories
//	@Description	Returns a list of categories
//	@Tags			Categories
//	@Produce		json
//	@Success		200		{object}	CategoryListResponse
//	@Failure		400		{object}	CategoryListResponse
//	@Failure		500		{object}	CategoryListResponse
//	@Router			/v1/categories [get]
//	@Param			type	query	string	false	"Filter by type ID"
//	@Param			name	query	string	false	"Filter by name"
//	@Param			search	query	string	false	"Search for this text in name and description"
//	@Param			offset	query	uint	false	"The offset of the first category returned. Defaults to 0."
//	@Param			limit	query	int		false	"Maximum number of categories to return. Defaults to 50."
func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.ShouldBind(&filter); err != nil {
		s := httputil.ValidationErrorsToText(err).Error()
		c.JSON(http.StatusBadRequest, CategoryListResponse{
			Error: &s,
		})
		return
	}

	model := filter.model()
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC").Where(&model, queryFields...)
	q = nameFilters(models.DB, q, setFields, filter.Name, filter.Search)
	q, limit := paginate(q, setFields, filter.Offset, filter.Limit, defaultLimit)

	var categories []models.Category
	err := q.Find(&categories).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Category, 0, len(categories))
	for _, s := range categories {
		data = append(data, newCategory(c, s))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetCategory returns a specific category
//
//	@Summary		Get category
//	@Description	Returns a specific category
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{object}	CategoryResponse
//	@Failure		400	{object}	CategoryResponse
//	@Failure		404	{object}	CategoryResponse
//	@Failure		500	{object}	CategoryResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	var s models.Category
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	data := newCategory(c, s)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

// UpdateCategory updates a specific category
//
//	@Summary		Update category
//	@Description	Update an existing category. Only values to be updated need to be specified.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	CategoryResponse
//	@Failure		400		{object}	CategoryResponse
//	@Failure		404		{object}	CategoryResponse
//	@Failure		500		{object}	CategoryResponse
//	@Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Param			category	body		CategoryEditable	true	"Category"
//	@Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &s,
		})
		return
	}

	var s models.Category
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	var data CategoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&s).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{
			Error: &e,
		})
		return
	}

	r := newCategory(c, s)
	c.JSON(http.StatusOK, CategoryResponse{Data: &r})
}

// DeleteCategory deletes a specific category
//
//	@Summary		Delete category
//	@Description	Deletes a category with all of its subcategories and all records filed under any of them
//	@Tags			Categories
//	@Success		204
//	@Failure		400	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var s models.Category
	err = models.DB.First(&s, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DeleteCategory(models.DB, s)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// OptionsCategorySubcategories returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Categories
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id}/subcategories [options]
func OptionsCategorySubcategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetCategorySubcategories returns the subcategories of a category
//
//	@Summary		Get subcategories of a category
//	@Description	Returns ID and name of all subcategories of the category, ordered by name. An unknown category has no subcategories.
//	@Tags			Categories
//	@Produce		json
//	@Success		200	{array}		LookupItem
//	@Failure		400	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/categories/{id}/subcategories [get]
func GetCategorySubcategories(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	subcategories, err := models.Category{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}}.Subcategories(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, lookupItems(subcategories, func(subcategory models.Subcategory) LookupItem {
		return LookupItem{ID: subcategory.ID, Name: subcategory.Name}
	}))
}
