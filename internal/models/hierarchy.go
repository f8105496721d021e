package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ViolationKind identifies which consistency rule a write breaks.
type ViolationKind string

const (
	KindSubcategoryMismatch ViolationKind = "subcategory_mismatch"
	KindCategoryMismatch    ViolationKind = "category_mismatch"
	KindInvalidAmount       ViolationKind = "invalid_amount"
)

// maxAmount is the first value that does not fit into DECIMAL(12,2).
var maxAmount = decimal.New(1, 10)

// Violation is a single broken rule.
type Violation struct {
	Kind    ViolationKind
	Fields  []string // The fields the violation is reported for
	Message string
}

// Candidate is the set of taxonomy references and the amount of a record
// that is about to be written. References that are nil are not checked.
type Candidate struct {
	Type        *Type
	Category    *Category
	Subcategory *Subcategory
	Amount      decimal.Decimal
}

// ValidationResult holds all violations found for a Candidate.
type ValidationResult struct {
	Violations []Violation
}

// Valid reports if the candidate satisfies all rules.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a valid candidate and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}

	return &ValidationError{Violations: r.Violations}
}

// ValidationError reports every violation of a rejected write.
//
// It matches ErrHierarchyViolation and ErrInvalidAmount with errors.Is
// depending on which rules were broken.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}

	return strings.Join(messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	for _, v := range e.Violations {
		switch {
		case target == ErrHierarchyViolation && (v.Kind == KindSubcategoryMismatch || v.Kind == KindCategoryMismatch):
			return true
		case target == ErrInvalidAmount && v.Kind == KindInvalidAmount:
			return true
		}
	}

	return false
}

// Fields maps every field that is part of a violation to its message.
// A field taking part in more than one violation gets all messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string)
	for _, v := range e.Violations {
		for _, f := range v.Fields {
			if existing, ok := fields[f]; ok {
				fields[f] = existing + "; " + v.Message
				continue
			}
			fields[f] = v.Message
		}
	}

	return fields
}

// ValidateHierarchy checks a record candidate against the taxonomy rules:
// the subcategory must belong to the category, the category must belong
// to the type and the amount must be positive.
//
// All violations are returned, not only the first one.
func ValidateHierarchy(c Candidate) ValidationResult {
	var result ValidationResult

	if c.Subcategory != nil && c.Category != nil && c.Subcategory.CategoryID != c.Category.ID {
		result.Violations = append(result.Violations, Violation{
			Kind:    KindSubcategoryMismatch,
			Fields:  []string{"subcategory", "category"},
			Message: "the selected subcategory does not belong to the selected category",
		})
	}

	if c.Category != nil && c.Type != nil && c.Category.TypeID != c.Type.ID {
		result.Violations = append(result.Violations, Violation{
			Kind:    KindCategoryMismatch,
			Fields:  []string{"category", "type"},
			Message: "the selected category does not belong to the selected type",
		})
	}

	if !c.Amount.IsPositive() {
		result.Violations = append(result.Violations, Violation{
			Kind:    KindInvalidAmount,
			Fields:  []string{"amount"},
			Message: ErrInvalidAmount.Error(),
		})
	} else if c.Amount.GreaterThanOrEqual(maxAmount) {
		result.Violations = append(result.Violations, Violation{
			Kind:    KindInvalidAmount,
			Fields:  []string{"amount"},
			Message: fmt.Sprintf("the amount must be less than %s", maxAmount),
		})
	}

	return result
}

// CheckRecord resolves the taxonomy references of a record and validates
// them together with the amount.
//
// A reference that does not exist is reported as ErrResourceNotFound for
// the respective resource.
func CheckRecord(db *gorm.DB, record CashFlowRecord) error {
	if _, err := load[Status](db, record.StatusID); err != nil {
		return err
	}

	t, err := load[Type](db, record.TypeID)
	if err != nil {
		return err
	}

	category, err := load[Category](db, record.CategoryID)
	if err != nil {
		return err
	}

	subcategory, err := load[Subcategory](db, record.SubcategoryID)
	if err != nil {
		return err
	}

	return ValidateHierarchy(Candidate{
		Type:        &t,
		Category:    &category,
		Subcategory: &subcategory,
		Amount:      record.Amount,
	}).Err()
}

// load fetches a single taxonomy entity by its ID.
//
// A new session is used so that the lookup does not inherit
// the statement of the hook it is called from.
func load[T Status | Type | Category | Subcategory](db *gorm.DB, id uuid.UUID) (T, error) {
	var resource T

	err := db.Session(&gorm.Session{NewDB: true}).First(&resource, "id = ?", id).Error
	if err != nil {
		return resource, err
	}

	return resource, nil
}

// IsValidationError reports if err is caused by the hierarchy or amount rules.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
