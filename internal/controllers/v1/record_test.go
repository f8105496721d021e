package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/dds-tracker/backend/internal/controllers/v1"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/internal/types"
	"github.com/dds-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRecordsCreate() {
	h := createTestHierarchy(suite.T(), "")

	editable := h.record(1000.005)
	editable.Date = types.NewDate(2025, 10, 1)
	editable.Comment = "  Затраты на VPS сервер "

	r := createTestRecord(suite.T(), editable)
	assert.True(suite.T(), decimal.NewFromFloat(1000.01).Equal(r.Data.Amount), "amount must be rounded to two decimal places, is %s", r.Data.Amount)
	assert.Equal(suite.T(), "Затраты на VPS сервер", r.Data.Comment)
	assert.Equal(suite.T(), types.NewDate(2025, 10, 1), r.Data.Date)
	assert.Equal(suite.T(), h.Subcategory, r.Data.SubcategoryID)
	assert.Nil(suite.T(), r.Fields)

	recorder := test.Request(suite.T(), http.MethodGet, r.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.RecordResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.True(suite.T(), r.Data.Amount.Equal(response.Data.Amount))
	assert.Equal(suite.T(), r.Data.Date, response.Data.Date)
}

func (suite *TestSuiteStandard) TestRecordsCreateDefaultDate() {
	r := createTestRecord(suite.T(), v1.RecordEditable{})
	assert.Equal(suite.T(), types.Today(), r.Data.Date)
}

// TestRecordsCreateViolations verifies that every broken rule is reported
// for the fields it applies to.
func (suite *TestSuiteStandard) TestRecordsCreateViolations() {
	h := createTestHierarchy(suite.T(), "")
	other := createTestHierarchy(suite.T(), "")

	tests := []struct {
		name   string
		record func() v1.RecordEditable
		fields []string
	}{
		{
			"Subcategory of another category",
			func() v1.RecordEditable {
				r := h.record(10)
				r.SubcategoryID = other.Subcategory
				return r
			},
			[]string{"subcategory", "category"},
		},
		{
			"Category of another type",
			func() v1.RecordEditable {
				r := h.record(10)
				r.CategoryID = other.Category
				r.SubcategoryID = other.Subcategory
				return r
			},
			[]string{"category", "type"},
		},
		{
			"Negative amount",
			func() v1.RecordEditable {
				return h.record(-5)
			},
			[]string{"amount"},
		},
		{
			"Amount rounds to zero",
			func() v1.RecordEditable {
				return h.record(0.001)
			},
			[]string{"amount"},
		},
		{
			"Amount too large",
			func() v1.RecordEditable {
				return h.record(1e10)
			},
			[]string{"amount"},
		},
		{
			"Everything wrong",
			func() v1.RecordEditable {
				r := h.record(-1)
				r.TypeID = other.Type
				r.SubcategoryID = other.Subcategory
				return r
			},
			[]string{"subcategory", "category", "type", "amount"},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := createTestRecord(t, tt.record(), http.StatusBadRequest)
			require.NotNil(t, r.Error)

			keys := make([]string, 0, len(r.Fields))
			for k := range r.Fields {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.fields, keys)
		})
	}

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/records", "")
	var list v1.RecordListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	assert.Len(suite.T(), list.Data, 0, "rejected records must not be stored")
}

func (suite *TestSuiteStandard) TestRecordsCreateMissingReference() {
	h := createTestHierarchy(suite.T(), "")

	r := h.record(10)
	r.StatusID = uuid.New()

	response := createTestRecord(suite.T(), r, http.StatusNotFound)
	assert.Contains(suite.T(), *response.Error, "there is no status")

	r = h.record(10)
	r.SubcategoryID = uuid.Nil

	response = createTestRecord(suite.T(), r, http.StatusNotFound)
	assert.Contains(suite.T(), *response.Error, "there is no subcategory")
}

func (suite *TestSuiteStandard) TestRecordsCreateMixed() {
	h := createTestHierarchy(suite.T(), "")

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/records", []v1.RecordEditable{h.record(10), h.record(0)})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.RecordCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.NotNil(suite.T(), response.Data[0].Data)
	assert.Nil(suite.T(), response.Data[0].Error)
	assert.Nil(suite.T(), response.Data[1].Data)
	assert.Contains(suite.T(), response.Data[1].Fields, "amount")
}

func (suite *TestSuiteStandard) TestRecordsGetFilter() {
	h1 := createTestHierarchy(suite.T(), "")
	h2 := createTestHierarchy(suite.T(), "")

	dates := []types.Date{
		types.NewDate(2025, 9, 30),
		types.NewDate(2025, 10, 1),
		types.NewDate(2025, 10, 15),
		types.NewDate(2025, 10, 31),
	}

	for i, d := range dates {
		h := h1
		if i%2 == 1 {
			h = h2
		}

		r := h.record(float64(i + 1))
		r.Date = d
		_ = createTestRecord(suite.T(), r)
	}

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 4, http.StatusOK},
		{"From", "dateFrom=2025-10-01", 3, http.StatusOK},
		{"To", "dateTo=2025-10-01", 2, http.StatusOK},
		{"Range", "dateFrom=2025-10-01&dateTo=2025-10-15", 2, http.StatusOK},
		{"Single day", "dateFrom=2025-10-15&dateTo=2025-10-15", 1, http.StatusOK},
		{"Status", fmt.Sprintf("status=%s", h1.Status), 2, http.StatusOK},
		{"Type", fmt.Sprintf("type=%s", h2.Type), 2, http.StatusOK},
		{"Category", fmt.Sprintf("category=%s", h1.Category), 2, http.StatusOK},
		{"Subcategory and date", fmt.Sprintf("subcategory=%s&dateFrom=2025-10-01", h1.Subcategory), 1, http.StatusOK},
		{"Limit", "limit=1", 1, http.StatusOK},
		{"Offset", "offset=3", 1, http.StatusOK},
		{"Inverted range", "dateFrom=2025-10-31&dateTo=2025-10-01", 0, http.StatusBadRequest},
		{"Invalid date", "dateFrom=01.10.2025", 0, http.StatusBadRequest},
		{"Invalid status", "status=NotAUUID", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.RecordListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/records?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)
			test.DecodeResponse(t, &r, &re)

			assert.Len(t, re.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestRecordsGetDateRangeError() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/records?dateFrom=2025-10-02&dateTo=2025-10-01", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var re v1.RecordListResponse
	test.DecodeResponse(suite.T(), &r, &re)
	assert.Equal(suite.T(), "the dateFrom parameter must not be after the dateTo parameter", *re.Error)
}

func (suite *TestSuiteStandard) TestRecordsSorted() {
	h := createTestHierarchy(suite.T(), "")

	older := h.record(1)
	older.Date = types.NewDate(2025, 1, 1)
	older = createTestRecord(suite.T(), older).Data.RecordEditable

	first := h.record(2)
	first.Date = types.NewDate(2025, 6, 1)
	firstID := createTestRecord(suite.T(), first).Data.ID

	second := h.record(3)
	second.Date = types.NewDate(2025, 6, 1)
	secondID := createTestRecord(suite.T(), second).Data.ID

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/records", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var re v1.RecordListResponse
	test.DecodeResponse(suite.T(), &r, &re)
	require.Len(suite.T(), re.Data, 3)

	assert.Equal(suite.T(), secondID, re.Data[0].ID, "newest record of the newest date must be first")
	assert.Equal(suite.T(), firstID, re.Data[1].ID)
	assert.Equal(suite.T(), older.Date, re.Data[2].Date)
	assert.Equal(suite.T(), 25, re.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestRecordsUpdate() {
	h := createTestHierarchy(suite.T(), "")
	other := createTestHierarchy(suite.T(), "")
	record := createTestRecord(suite.T(), h.record(10))

	tests := []struct {
		name   string
		body   any
		status int
		fields []string
	}{
		{"Amount", map[string]any{"amount": "25.50"}, http.StatusOK, nil},
		{"Comment", map[string]any{"comment": "Оплата рекламы"}, http.StatusOK, nil},
		{"Date", map[string]any{"date": "2025-03-08"}, http.StatusOK, nil},
		{"Zero amount", map[string]any{"amount": 0}, http.StatusBadRequest, []string{"amount"}},
		{"Category only", map[string]any{"categoryId": other.Category}, http.StatusBadRequest, []string{"subcategory", "category", "type"}},
		{"Whole path", map[string]any{"typeId": other.Type, "categoryId": other.Category, "subcategoryId": other.Subcategory}, http.StatusOK, nil},
		{"Unknown status", map[string]any{"statusId": uuid.New()}, http.StatusNotFound, nil},
		{"Broken body", `{ "amount": 2" }`, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, record.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.fields != nil {
				var response v1.RecordResponse
				test.DecodeResponse(t, &r, &response)

				keys := make([]string, 0, len(response.Fields))
				for k := range response.Fields {
					keys = append(keys, k)
				}
				assert.ElementsMatch(t, tt.fields, keys)
			}
		})
	}

	r := test.Request(suite.T(), http.MethodGet, record.Data.Links.Self, "")
	var response v1.RecordResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.True(suite.T(), decimal.NewFromFloat(25.5).Equal(response.Data.Amount), "amount is %s", response.Data.Amount)
	assert.Equal(suite.T(), "Оплата рекламы", response.Data.Comment)
	assert.Equal(suite.T(), types.NewDate(2025, 3, 8), response.Data.Date)
	assert.Equal(suite.T(), other.Subcategory, response.Data.SubcategoryID)
	assert.Equal(suite.T(), h.Status, response.Data.StatusID)
}

func (suite *TestSuiteStandard) TestRecordsDelete() {
	record := createTestRecord(suite.T(), v1.RecordEditable{})

	r := test.Request(suite.T(), http.MethodDelete, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/subcategories/%s", record.Data.SubcategoryID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestRecordsOptions() {
	record := createTestRecord(suite.T(), v1.RecordEditable{})

	r := test.Request(suite.T(), http.MethodOptions, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/records/summary", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestRecordsDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/records", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var re v1.RecordListResponse
	test.DecodeResponse(suite.T(), &r, &re)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *re.Error)
}
