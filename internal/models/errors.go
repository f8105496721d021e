package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNameEmpty        = errors.New("the name must not be empty")
)

// Taxonomy errors
var (
	ErrStatusNameNotUnique      = errors.New("the status name must be unique")
	ErrTypeNameNotUnique        = errors.New("the type name must be unique")
	ErrCategoryNameNotUnique    = errors.New("the category name must be unique")
	ErrSubcategoryNameNotUnique = errors.New("the subcategory name must be unique for the category")
	ErrInvalidReference         = errors.New("a resource ID you specified does not identify an existing resource")
)

// Hierarchy errors
var (
	ErrHierarchyViolation = errors.New("the category hierarchy is inconsistent")
	ErrInvalidAmount      = errors.New("the amount must be greater than zero")
)
