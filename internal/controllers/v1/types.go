package v1

import (
	dds_uuid "github.com/dds-tracker/backend/internal/uuid"
	"github.com/google/uuid"
)

type URIID struct {
	ID dds_uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// LookupItem is a minimal representation of a category or subcategory
// used to populate dependent selections.
type LookupItem struct {
	ID   uuid.UUID `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the resource
	Name string    `json:"name" example:"Маркетинг"`                          // Name of the resource
}
