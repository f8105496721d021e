package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/dds-tracker/backend/internal/controllers/v1"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTypesCreateGet() {
	t := createTestType(suite.T(), v1.TypeEditable{Name: " Пополнение ", Description: "Money coming in"})
	assert.Equal(suite.T(), "Пополнение", t.Data.Name, "names must be trimmed")
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/types/%s/categories", t.Data.ID), t.Data.Links.Categories)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/records?type=%s", t.Data.ID), t.Data.Links.Records)

	r := test.Request(suite.T(), http.MethodGet, t.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TypeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), t.Data.ID, response.Data.ID)
	assert.Equal(suite.T(), "Money coming in", response.Data.Description)

	_ = createTestType(suite.T(), v1.TypeEditable{Name: "Пополнение"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTypesUpdate() {
	t := createTestType(suite.T(), v1.TypeEditable{Name: "Списание"})

	r := test.Request(suite.T(), http.MethodPatch, t.Data.Links.Self, v1.TypeEditable{Name: "Write-off", Description: "Money going out"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TypeResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Write-off", response.Data.Name)
	assert.Equal(suite.T(), "Money going out", response.Data.Description)
}

func (suite *TestSuiteStandard) TestTypeCategories() {
	t := createTestType(suite.T(), v1.TypeEditable{})
	other := createTestType(suite.T(), v1.TypeEditable{})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Маркетинг", TypeID: t.Data.ID})
	infrastructure := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Инфраструктура", TypeID: t.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Налоги", TypeID: other.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, t.Data.Links.Categories, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var items []v1.LookupItem
	test.DecodeResponse(suite.T(), &r, &items)

	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), v1.LookupItem{ID: infrastructure.Data.ID, Name: "Инфраструктура"}, items[0], "items must be ordered by name")
	assert.Equal(suite.T(), "Маркетинг", items[1].Name)
}

func (suite *TestSuiteStandard) TestLookupEdgeCases() {
	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"Unknown type", fmt.Sprintf("http://example.com/v1/types/%s/categories", uuid.New()), http.StatusOK, "[]"},
		{"Malformed type ID", "http://example.com/v1/types/not-a-uuid/categories", http.StatusBadRequest, ""},
		{"Unknown category", fmt.Sprintf("http://example.com/v1/categories/%s/subcategories", uuid.New()), http.StatusOK, "[]"},
		{"Malformed category ID", "http://example.com/v1/categories/17/subcategories", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, tt.path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.body != "" {
				assert.JSONEq(t, tt.body, r.Body.String())
			}
		})
	}

	r := test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/types/%s/categories", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestTypesDeleteCascades() {
	h := createTestHierarchy(suite.T(), "")
	record := createTestRecord(suite.T(), h.record(42))

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/types/%s", h.Type), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	for _, path := range []string{
		fmt.Sprintf("http://example.com/v1/categories/%s", h.Category),
		fmt.Sprintf("http://example.com/v1/subcategories/%s", h.Subcategory),
		record.Data.Links.Self,
	} {
		r := test.Request(suite.T(), http.MethodGet, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/statuses/%s", h.Status), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCategoriesCreate() {
	t := createTestType(suite.T(), v1.TypeEditable{})

	c := createTestCategory(suite.T(), v1.CategoryEditable{Name: "Маркетинг", TypeID: t.Data.ID})
	assert.Equal(suite.T(), t.Data.ID, c.Data.TypeID)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/categories/%s/subcategories", c.Data.ID), c.Data.Links.Subcategories)

	tests := []struct {
		name     string
		category v1.CategoryEditable
		status   int
		err      error
	}{
		{"Duplicate name", v1.CategoryEditable{Name: "Маркетинг", TypeID: t.Data.ID}, http.StatusBadRequest, models.ErrCategoryNameNotUnique},
		{"Unknown type", v1.CategoryEditable{Name: "Реклама", TypeID: uuid.New()}, http.StatusNotFound, models.ErrResourceNotFound},
		{"Empty name", v1.CategoryEditable{Name: " ", TypeID: t.Data.ID}, http.StatusBadRequest, models.ErrNameEmpty},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{tt.category})
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.CategoryCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Contains(t, *response.Data[0].Error, tt.err.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesGetFilter() {
	t1 := createTestType(suite.T(), v1.TypeEditable{})
	t2 := createTestType(suite.T(), v1.TypeEditable{})

	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Маркетинг", TypeID: t1.Data.ID, Description: "Advertising"})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Инфраструктура", TypeID: t1.Data.ID})
	_ = createTestCategory(suite.T(), v1.CategoryEditable{Name: "Зарплата", TypeID: t2.Data.ID})

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 3, http.StatusOK},
		{"Type 1", fmt.Sprintf("type=%s", t1.Data.ID), 2, http.StatusOK},
		{"Type 2", fmt.Sprintf("type=%s", t2.Data.ID), 1, http.StatusOK},
		{"Type 2 and name", fmt.Sprintf("type=%s&name=Маркетинг", t2.Data.ID), 0, http.StatusOK},
		{"Unknown type", fmt.Sprintf("type=%s", uuid.New()), 0, http.StatusOK},
		{"Search", "search=Advertising", 1, http.StatusOK},
		{"Invalid type", "type=NotAUUID", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.CategoryListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/categories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)
			test.DecodeResponse(t, &r, &re)

			assert.Len(t, re.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoriesUpdate() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	t := createTestType(suite.T(), v1.TypeEditable{})

	// Without records, the category can move to another type
	r := test.Request(suite.T(), http.MethodPatch, c.Data.Links.Self, map[string]any{"typeId": t.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), t.Data.ID, response.Data.TypeID)

	r = test.Request(suite.T(), http.MethodPatch, c.Data.Links.Self, map[string]any{"typeId": uuid.New()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoriesUpdateWithRecords() {
	h := createTestHierarchy(suite.T(), "")
	_ = createTestRecord(suite.T(), h.record(10))
	t := createTestType(suite.T(), v1.TypeEditable{})
	url := fmt.Sprintf("http://example.com/v1/categories/%s", h.Category)

	r := test.Request(suite.T(), http.MethodPatch, url, map[string]any{"typeId": t.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrHierarchyViolation.Error())

	r = test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), h.Type, response.Data.TypeID)

	// Renaming does not touch the hierarchy
	r = test.Request(suite.T(), http.MethodPatch, url, map[string]any{"name": "Hosting"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestSubcategoriesUpdateWithRecords() {
	h := createTestHierarchy(suite.T(), "")
	_ = createTestRecord(suite.T(), h.record(10))
	c := createTestCategory(suite.T(), v1.CategoryEditable{TypeID: h.Type})
	url := fmt.Sprintf("http://example.com/v1/subcategories/%s", h.Subcategory)

	r := test.Request(suite.T(), http.MethodPatch, url, map[string]any{"categoryId": c.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SubcategoryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrHierarchyViolation.Error())

	r = test.Request(suite.T(), http.MethodGet, url, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), h.Category, response.Data.CategoryID)

	// A subcategory without records moves freely
	s := createTestSubcategory(suite.T(), v1.SubcategoryEditable{CategoryID: h.Category})
	r = test.Request(suite.T(), http.MethodPatch, s.Data.Links.Self, map[string]any{"categoryId": c.Data.ID})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), c.Data.ID, response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestCategoriesDeleteCascades() {
	h := createTestHierarchy(suite.T(), "")
	record := createTestRecord(suite.T(), h.record(10))

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/categories/%s", h.Category), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/subcategories/%s", h.Subcategory), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/types/%s", h.Type), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCategorySubcategories() {
	c := createTestCategory(suite.T(), v1.CategoryEditable{})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: c.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "Proxy", CategoryID: c.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "Avito"})

	r := test.Request(suite.T(), http.MethodGet, c.Data.Links.Subcategories, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var items []v1.LookupItem
	test.DecodeResponse(suite.T(), &r, &items)

	names := make([]string, 0, len(items))
	for _, i := range items {
		names = append(names, i.Name)
	}
	assert.Equal(suite.T(), []string{"Proxy", "VPS"}, names)
}

func (suite *TestSuiteStandard) TestSubcategoriesNameUniquePerCategory() {
	c1 := createTestCategory(suite.T(), v1.CategoryEditable{})
	c2 := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: c1.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: c2.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: c1.Data.ID}, http.StatusBadRequest)
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: uuid.New()}, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSubcategoriesGetFilter() {
	c1 := createTestCategory(suite.T(), v1.CategoryEditable{})
	c2 := createTestCategory(suite.T(), v1.CategoryEditable{})

	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "Farpost", CategoryID: c1.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "Avito", CategoryID: c1.Data.ID})
	_ = createTestSubcategory(suite.T(), v1.SubcategoryEditable{Name: "VPS", CategoryID: c2.Data.ID})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Category 1", fmt.Sprintf("category=%s", c1.Data.ID), 2},
		{"Category 2", fmt.Sprintf("category=%s", c2.Data.ID), 1},
		{"Name", "name=Avito", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.SubcategoryListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/subcategories?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Len(t, re.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestSubcategoriesDelete() {
	h := createTestHierarchy(suite.T(), "")
	record := createTestRecord(suite.T(), h.record(10))

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/subcategories/%s", h.Subcategory), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/categories/%s", h.Category), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}
