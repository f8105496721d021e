// Package security detects injection attempts in request parameters and
// hardens responses with security headers.
package security

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Kind is the class of threat a value was classified as.
type Kind int

const (
	KindNone Kind = iota
	KindSQL
	KindXSS
	KindAuthProbe
)

func (k Kind) String() string {
	switch k {
	case KindSQL:
		return "sql"
	case KindXSS:
		return "xss"
	case KindAuthProbe:
		return "auth_probe"
	default:
		return "none"
	}
}

type compiledRule struct {
	name string
	re   *regexp.Regexp
}

type compiledGroup struct {
	kind  Kind
	rules []compiledRule
}

// Engine classifies strings with an immutable, ordered rule table.
// It is safe for concurrent use.
type Engine struct {
	groups []compiledGroup
}

// NewEngine compiles the rule groups. Groups are evaluated in the order
// they are passed in.
func NewEngine(groups ...Group) (*Engine, error) {
	e := &Engine{}

	for _, g := range groups {
		if g.Kind == KindNone {
			return nil, fmt.Errorf("rule group must not have kind %s", g.Kind)
		}

		cg := compiledGroup{kind: g.Kind}
		for _, r := range g.Rules {
			// (?s) lets paired tags match across line breaks
			re, err := regexp.Compile("(?is)" + r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %s has an invalid pattern: %w", r.Name, err)
			}

			cg.rules = append(cg.rules, compiledRule{name: r.Name, re: re})
		}

		e.groups = append(e.groups, cg)
	}

	return e, nil
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := NewEngine(DefaultGroups()...)
	if err != nil {
		panic(err)
	}

	return e
})

// DefaultEngine returns the engine for the built-in rule table.
func DefaultEngine() *Engine {
	return defaultEngine()
}

// Classify returns the kind of the first rule group matching the value,
// KindNone if no rule matches.
func (e *Engine) Classify(value string) Kind {
	kind, _ := e.Match(value)
	return kind
}

// Match works like Classify, but also returns the name of the matching rule.
func (e *Engine) Match(value string) (Kind, string) {
	if value == "" {
		return KindNone, ""
	}

	// Full-width and other compatibility characters are folded
	// to their ASCII form before matching
	normalized := strings.ToLower(norm.NFKC.String(value))

	for _, g := range e.groups {
		for _, r := range g.rules {
			if r.re.MatchString(normalized) {
				return g.kind, r.name
			}
		}
	}

	return KindNone, ""
}
