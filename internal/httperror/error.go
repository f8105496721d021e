// Package httperror renders errors for requests that are rejected by
// middleware before they reach a controller.
package httperror

import "github.com/gin-gonic/gin"

type Error struct {
	Message string `json:"error" example:"access denied: potential attack detected"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

// Abort stops the handler chain and responds with the error.
func Abort(c *gin.Context, status int, e error) {
	c.AbortWithStatusJSON(status, New(e))
}
