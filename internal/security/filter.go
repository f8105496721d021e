package security

import (
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// ErrThreatDetected is the client visible reason for rejected requests.
// It never names the rule that matched.
var ErrThreatDetected = errors.New("access denied: potential attack detected")

// auditValueLength is the maximum number of characters of a rejected value
// written to the audit log.
const auditValueLength = 100

// DefaultExcludedPaths are the path prefixes that are never inspected.
var DefaultExcludedPaths = []string{
	"/static/",
	"/media/",
	"/favicon.ico",
	"/robots.txt",
}

// Request is the view of an inbound request the filter inspects.
type Request struct {
	Method        string
	Path          string
	FullPath      string // Path including the query string
	ClientAddress string
	UserAgent     string
	Params        url.Values // Query and body parameters
}

// Decision is the outcome of inspecting a request.
type Decision struct {
	Allowed   bool
	Reason    Kind
	Rule      string
	Parameter string
	Value     string // Prefix of the offending value
}

// Allow returns a Decision that lets the request pass.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Reject returns a Decision that blocks the request.
func Reject(kind Kind, rule, parameter, value string) Decision {
	return Decision{
		Reason:    kind,
		Rule:      rule,
		Parameter: parameter,
		Value:     truncate(value, auditValueLength),
	}
}

// FilterConfig configures a Filter.
type FilterConfig struct {
	Disabled      bool
	ExcludedPaths []string // Path prefixes, may contain * wildcards
}

// Filter rejects requests carrying a parameter value that the Engine
// classifies as a threat.
type Filter struct {
	engine   *Engine
	disabled bool
	excluded []string
	logger   zerolog.Logger
}

// NewFilter creates a Filter. Audit entries for rejected requests are
// written to logger.
func NewFilter(engine *Engine, config FilterConfig, logger zerolog.Logger) *Filter {
	excluded := make([]string, 0, len(config.ExcludedPaths))
	for _, p := range config.ExcludedPaths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		// Entries are prefixes
		excluded = append(excluded, p+"*")
	}

	return &Filter{
		engine:   engine,
		disabled: config.Disabled,
		excluded: excluded,
		logger:   logger,
	}
}

// Enabled reports if the filter inspects requests at all.
func (f *Filter) Enabled() bool {
	return !f.disabled
}

// Excluded reports if requests for the path are passed without inspection.
func (f *Filter) Excluded(path string) bool {
	for _, pattern := range f.excluded {
		if glob.Glob(pattern, path) {
			return true
		}
	}

	return false
}

// Inspect classifies every value of every parameter and rejects the
// request on the first match.
//
// Parameters are inspected in lexical order of their names so that the
// decision and the audit entry are deterministic.
func (f *Filter) Inspect(req Request) Decision {
	if f.disabled || f.Excluded(req.Path) {
		return Allow()
	}

	names := make([]string, 0, len(req.Params))
	for name := range req.Params {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		for _, value := range req.Params[name] {
			kind, rule := f.engine.Match(value)
			if kind == KindNone {
				continue
			}

			decision := Reject(kind, rule, name, value)
			f.audit(req, decision)
			return decision
		}
	}

	return Allow()
}

func (f *Filter) audit(req Request, d Decision) {
	f.logger.Warn().
		Str("client_address", req.ClientAddress).
		Str("user_agent", req.UserAgent).
		Str("method", req.Method).
		Str("path", req.FullPath).
		Str("parameter", d.Parameter).
		Str("value", d.Value).
		Str("kind", d.Reason.String()).
		Str("rule", d.Rule).
		Msg("potential attack detected, request rejected")
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
