package v1

import (
	"github.com/dds-tracker/backend/internal/httputil"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.Status | models.Type | models.Category | models.Subcategory | models.CashFlowRecord](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// lookupItems converts named resources to LookupItems.
func lookupItems[R models.Category | models.Subcategory](resources []R, item func(R) LookupItem) []LookupItem {
	items := make([]LookupItem, 0, len(resources))
	for _, r := range resources {
		items = append(items, item(r))
	}

	return items
}
