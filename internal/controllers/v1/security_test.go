package v1_test

import (
	"net/http"
	"net/url"
	"testing"

	v1 "github.com/dds-tracker/backend/internal/controllers/v1"
	"github.com/dds-tracker/backend/internal/security"
	"github.com/dds-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestThreatsRejectedBeforeWrite verifies that rejected requests never
// reach the handlers.
func (suite *TestSuiteStandard) TestThreatsRejectedBeforeWrite() {
	h := createTestHierarchy(suite.T(), "")

	comments := []string{
		"'; DROP TABLE cash_flow_records; --",
		"<script>alert(1)</script>",
		"password=hunter2",
	}

	for _, comment := range comments {
		suite.T().Run(comment, func(t *testing.T) {
			editable := h.record(10)
			editable.Comment = comment

			r := test.Request(t, http.MethodPost, "http://example.com/v1/records", []v1.RecordEditable{editable})
			test.AssertHTTPStatus(t, &r, http.StatusForbidden)
			assert.JSONEq(t, `{"error": "access denied: potential attack detected"}`, r.Body.String())
			assert.Equal(t, "nosniff", r.Header().Get("X-Content-Type-Options"), "rejections must carry the security headers")
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/records", "")
	var list v1.RecordListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	assert.Len(suite.T(), list.Data, 0)
}

func (suite *TestSuiteStandard) TestThreatsInQuery() {
	tests := []struct {
		name   string
		query  url.Values
		status int
	}{
		{"Tautology", url.Values{"name": {"x' OR 1=1"}}, http.StatusForbidden},
		{"Script", url.Values{"search": {"<script>alert(1)</script>"}}, http.StatusForbidden},
		{"Unknown parameter", url.Values{"debug": {"token=abc"}}, http.StatusForbidden},
		{"Safe", url.Values{"search": {"Оплата рекламы на Avito"}}, http.StatusOK},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/statuses?"+tt.query.Encode(), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestThreatsInForms() {
	body, headers := test.MultipartForm(suite.T(), map[string]string{"comment": "<img src=x onerror=alert(1)>"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/records", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
	assert.Equal(suite.T(), security.ErrThreatDetected.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestSecurityHeaders() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/statuses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	assert.Equal(suite.T(), "DENY", r.Header().Get("X-Frame-Options"))
	assert.Equal(suite.T(), "1; mode=block", r.Header().Get("X-XSS-Protection"))
	assert.Equal(suite.T(), "strict-origin-when-cross-origin", r.Header().Get("Referrer-Policy"))
	assert.Equal(suite.T(), "geolocation=(), microphone=(), camera=()", r.Header().Get("Permissions-Policy"))
	assert.Empty(suite.T(), r.Header().Get("Strict-Transport-Security"))
}
