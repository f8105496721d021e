package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dds-tracker/backend/internal/httperror"
	"github.com/dds-tracker/backend/internal/models"
	"github.com/dds-tracker/backend/internal/security"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
)

var (
	errBodyTooLarge    = errors.New("the request body is too large")
	errTooManyRequests = errors.New("too many requests, please try again later")
	errRateLimit       = errors.New("the rate limit could not be checked")
)

func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}

var metrics = []prometheus.Collector{
	requestCount,
	requestDuration,
	securityRejections,
}

// registerPrometheusMetrics registers all Prometheus metrics
// with the default registry.
func registerPrometheusMetrics() error {
	for _, c := range metrics {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics unregisters all Prometheus metrics.
//
// This is needed to cleanly exit.
func unregisterPrometheusMetrics() bool {
	ok := true
	for _, c := range metrics {
		if !prometheus.Unregister(c) {
			ok = false
		}
	}

	return ok
}

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "requests_total",
		Help: "How many HTTP requests processed, partitioned by status code and HTTP method.",
	},
	[]string{"code", "method", "url"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "request_duration_seconds",
		Help: "The HTTP request latencies in seconds.",
	},
	[]string{"code", "method", "url"},
)

var securityRejections = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "security_rejections_total",
		Help: "How many requests the security filter rejected, partitioned by threat kind.",
	},
	[]string{"kind"},
)

// MetricsMiddleware updates Prometheus metrics.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		elapsed := float64(time.Since(start)) / float64(time.Second)

		// The route template keeps the cardinality low,
		// unmatched requests are counted together
		url := c.FullPath()
		if url == "" {
			url = "unmatched"
		}

		requestDuration.WithLabelValues(status, c.Request.Method, url).Observe(elapsed)
		requestCount.WithLabelValues(status, c.Request.Method, url).Inc()
	}
}

// SecurityHeadersMiddleware sets the security headers. They are set before
// the rest of the chain runs so that they are also sent for aborted requests.
func SecurityHeadersMiddleware(trustForwardedProto bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		security.SetHeaders(c.Writer.Header(), security.IsSecure(c.Request, trustForwardedProto))
		c.Next()
	}
}

// RateLimitMiddleware limits the number of requests per client IP.
func RateLimitMiddleware(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		context, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			log.Error().Str("request-id", requestid.Get(c)).Str("ip", ip).Err(err).Msg("rate limit")
			httperror.Abort(c, http.StatusInternalServerError, errRateLimit)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(context.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(context.Remaining, 10))

		if context.Reached {
			log.Warn().Str("request-id", requestid.Get(c)).Str("ip", ip).Int64("limit", context.Limit).Msg("rate limit exceeded")
			httperror.Abort(c, http.StatusTooManyRequests, errTooManyRequests)
			return
		}

		c.Next()
	}
}

// FilterMiddleware inspects query parameters, form values and the string
// values of JSON bodies with the filter and rejects the request with
// 403 Forbidden when a threat is detected.
//
// Bodies larger than maxBodyBytes are rejected with 413 Request Entity Too Large.
func FilterMiddleware(f *security.Filter, maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !f.Enabled() || f.Excluded(c.Request.URL.Path) {
			c.Next()
			return
		}

		params, err := requestParams(c.Request, maxBodyBytes)
		if err != nil {
			if errors.Is(err, errBodyTooLarge) {
				httperror.Abort(c, http.StatusRequestEntityTooLarge, err)
				return
			}

			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			httperror.Abort(c, http.StatusBadRequest, err)
			return
		}

		decision := f.Inspect(security.Request{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			FullPath:      c.Request.URL.RequestURI(),
			ClientAddress: c.ClientIP(),
			UserAgent:     c.Request.UserAgent(),
			Params:        params,
		})

		if !decision.Allowed {
			securityRejections.WithLabelValues(decision.Reason.String()).Inc()
			httperror.Abort(c, http.StatusForbidden, security.ErrThreatDetected)
			return
		}

		c.Next()
	}
}

// requestParams collects the query parameters and the body values of r.
// The body is restored so that handlers can read it again.
func requestParams(r *http.Request, maxBodyBytes int64) (url.Values, error) {
	params := url.Values{}
	for name, values := range r.URL.Query() {
		params[name] = append(params[name], values...)
	}

	if r.Body == nil || r.Body == http.NoBody {
		return params, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("could not read request body: %w", err)
	}
	r.Body.Close()

	if int64(len(body)) > maxBodyBytes {
		return nil, errBodyTooLarge
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	if len(body) == 0 {
		return params, nil
	}

	mediaType, mediaParams, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case gin.MIMEPOSTForm:
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("could not parse form body: %w", err)
		}
		merge(params, values)

	case gin.MIMEMultipartPOSTForm:
		form, err := multipart.NewReader(bytes.NewReader(body), mediaParams["boundary"]).ReadForm(maxBodyBytes)
		if err != nil {
			return nil, fmt.Errorf("could not parse multipart body: %w", err)
		}
		defer form.RemoveAll()
		merge(params, form.Value)

	default:
		// Everything else is treated as JSON. Bodies that are not valid JSON
		// are rejected by the handlers
		var v any
		if json.Unmarshal(body, &v) == nil {
			flattenJSON("", v, params)
		}
	}

	return params, nil
}

func merge(dst, src url.Values) {
	for name, values := range src {
		dst[name] = append(dst[name], values...)
	}
}

// flattenJSON adds all string values in v to params. Names are the dotted
// path to the value, e.g. 0.comment for the comment of the first element.
func flattenJSON(prefix string, v any, params url.Values) {
	switch x := v.(type) {
	case map[string]any:
		for k, vv := range x {
			flattenJSON(join(prefix, k), vv, params)
		}
	case []any:
		for i, vv := range x {
			flattenJSON(join(prefix, strconv.Itoa(i)), vv, params)
		}
	case string:
		if prefix == "" {
			prefix = "body"
		}
		params.Add(prefix, x)
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return strings.Join([]string{prefix, key}, ".")
}
