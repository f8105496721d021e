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
)

// TestStatusesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestStatusesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestStatus(t, v1.StatusEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/statuses", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.StatusListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestStatusesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestStatusesOptions() {
	tests := []struct {
		name   string
		id     string // path at the statuses endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No status with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Status exists", createTestStatus(suite.T(), v1.StatusEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/statuses", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}

	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/statuses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

// TestStatusesGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestStatusesGetSingle() {
	s := createTestStatus(suite.T(), v1.StatusEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing status", s.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No status with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodPatch},
		{"PATCH No status with this ID", uuid.New().String(), http.StatusNotFound, http.MethodPatch},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
		{"DELETE No status with this ID", uuid.New().String(), http.StatusNotFound, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/statuses/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestStatusesCreate() {
	tests := []struct {
		name     string
		statuses []v1.StatusEditable
		status   int
	}{
		{"Single", []v1.StatusEditable{{Name: "Бизнес"}}, http.StatusCreated},
		{"Multiple", []v1.StatusEditable{{Name: "Личное"}, {Name: "Налог", Description: "Taxes"}}, http.StatusCreated},
		{"Empty name", []v1.StatusEditable{{Name: "  "}}, http.StatusBadRequest},
		{"Duplicate name", []v1.StatusEditable{{Name: "Другое"}, {Name: "Другое"}}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/statuses", tt.statuses)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.StatusCreateResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, len(tt.statuses))
		})
	}
}

func (suite *TestSuiteStandard) TestStatusesCreateDuplicateError() {
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Бизнес"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/statuses", []v1.StatusEditable{{Name: "Бизнес"}})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.StatusCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), models.ErrStatusNameNotUnique.Error(), *response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestStatusesCreateBrokenBody() {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Empty", "", http.StatusBadRequest},
		{"Not an array", `{"name": "Бизнес"}`, http.StatusBadRequest},
		{"Broken JSON", `[{"name": "Бизнес"`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/statuses", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestStatusesGetFilter() {
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Бизнес", Description: "Company money"})
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Личное", Description: "Private money"})
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Налог"})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"Name", "name=Бизнес", 1, 1},
		{"Search description", "search=money", 2, 2},
		{"Search name", "search=Налог", 1, 1},
		{"No match", "name=Nothing", 0, 0},
		{"Limit", "limit=2", 2, 3},
		{"Offset", "offset=2", 1, 3},
		{"Limit 0", "limit=0", 0, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.StatusListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/statuses?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Len(t, re.Data, tt.len, "Request ID: %s", r.Result().Header.Get("x-request-id"))
			assert.Equal(t, tt.total, re.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestStatusesSorted() {
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Налог"})
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Бизнес"})
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Личное"})

	var re v1.StatusListResponse
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/statuses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &re)

	names := make([]string, 0, len(re.Data))
	for _, s := range re.Data {
		names = append(names, s.Name)
	}
	assert.Equal(suite.T(), []string{"Бизнес", "Личное", "Налог"}, names)
}

func (suite *TestSuiteStandard) TestStatusesUpdate() {
	s := createTestStatus(suite.T(), v1.StatusEditable{Name: "Бизнес", Description: "Company money"})

	r := test.Request(suite.T(), http.MethodPatch, s.Data.Links.Self, map[string]any{
		"name": "Бизнес-2",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.StatusResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "Бизнес-2", updated.Data.Name)
	assert.Equal(suite.T(), "Company money", updated.Data.Description, "fields not sent must not be changed")

	r = test.Request(suite.T(), http.MethodPatch, s.Data.Links.Self, map[string]any{"description": ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &updated)
	assert.Equal(suite.T(), "", updated.Data.Description, "fields sent with zero values must be updated")
}

func (suite *TestSuiteStandard) TestStatusesUpdateFails() {
	s := createTestStatus(suite.T(), v1.StatusEditable{})
	_ = createTestStatus(suite.T(), v1.StatusEditable{Name: "Налог"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Broken body", `{ "name": 2" }`, http.StatusBadRequest},
		{"Wrong type", `{ "name": 2 }`, http.StatusBadRequest},
		{"Empty name", map[string]any{"name": " "}, http.StatusBadRequest},
		{"Duplicate name", map[string]any{"name": "Налог"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, s.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestStatusesDelete() {
	record := createTestRecord(suite.T(), v1.RecordEditable{})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/statuses/%s", record.Data.StatusID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/statuses/%s", record.Data.StatusID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, record.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
