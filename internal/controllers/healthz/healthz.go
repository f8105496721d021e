package healthz

import (
	"net/http"

	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Error string `json:"error" example:"The database cannot be accessed"` // The error, if any occurred
}

// RegisterRoutes registers the routes for the healthz endpoint.
func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// Get returns the application health
//
//	@Summary		Get health
//	@Description	Returns the application health and, if not healthy, an error
//	@Tags			General
//	@Success		200	{object}	Response
//	@Failure		503	{object}	Response
//	@Router			/healthz [get]
func Get(c *gin.Context) {
	err := ping()
	if err != nil {
		log.Error().Err(err).Msg("healthz")
		c.JSON(http.StatusServiceUnavailable, Response{
			Error: "the database cannot be accessed",
		})
		return
	}

	c.JSON(http.StatusOK, Response{})
}

func ping() error {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
