package v1

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Statuses      string `json:"statuses" example:"https://example.com/api/v1/statuses"`           // URL of Status collection endpoint
	Types         string `json:"types" example:"https://example.com/api/v1/types"`                 // URL of Type collection endpoint
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`       // URL of Category collection endpoint
	Subcategories string `json:"subcategories" example:"https://example.com/api/v1/subcategories"` // URL of Subcategory collection endpoint
	Records       string `json:"records" example:"https://example.com/api/v1/records"`             // URL of Record collection endpoint
	Summary       string `json:"summary" example:"https://example.com/api/v1/records/summary"`     // URL of the record summary endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Statuses:      url + "/v1/statuses",
			Types:         url + "/v1/types",
			Categories:    url + "/v1/categories",
			Subcategories: url + "/v1/subcategories",
			Records:       url + "/v1/records",
			Summary:       url + "/v1/records/summary",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
