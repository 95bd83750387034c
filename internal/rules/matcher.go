// Package rules implements the rule pipeline: match an inbound message
// against the user's rules, resolve action arguments (static or
// AI-generated), and execute or defer the resulting Gmail mutations.
package rules

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"inboxpilot/internal/cache"
	"inboxpilot/internal/models"
)

// Matcher evaluates rules against messages. Rules are checked in input
// order and the first rule whose every configured pattern matches wins.
type Matcher struct {
	patterns         *cache.PatternCache
	maxPatternLength int
	logger           zerolog.Logger
}

// NewMatcher creates a matcher backed by a compiled-pattern cache
func NewMatcher(patterns *cache.PatternCache, maxPatternLength int, logger zerolog.Logger) *Matcher {
	return &Matcher{
		patterns:         patterns,
		maxPatternLength: maxPatternLength,
		logger:           logger,
	}
}

// Match returns the first rule matching the message, or nil. Later rules
// are never evaluated once one matches.
func (m *Matcher) Match(rules []models.Rule, email models.EmailContext) *models.Rule {
	for i := range rules {
		if m.ruleMatches(&rules[i], email) {
			return &rules[i]
		}
	}
	return nil
}

// ruleMatches evaluates all configured field patterns; an unset pattern is
// vacuously true
func (m *Matcher) ruleMatches(rule *models.Rule, email models.EmailContext) bool {
	return m.fieldMatches(rule, "from", rule.From, email.From) &&
		m.fieldMatches(rule, "to", rule.To, email.To) &&
		m.fieldMatches(rule, "subject", rule.Subject, email.Subject) &&
		m.fieldMatches(rule, "body", rule.Body, email.Content)
}

// fieldMatches applies one pattern to one field. An invalid or oversized
// pattern counts as a non-match for this field only, never a pipeline
// failure: one malformed rule must not block message processing.
func (m *Matcher) fieldMatches(rule *models.Rule, field string, pattern *string, value string) bool {
	if pattern == nil || strings.TrimSpace(*pattern) == "" {
		return true
	}

	p := *pattern
	if m.maxPatternLength > 0 && len(p) > m.maxPatternLength {
		m.logger.Warn().Str("rule_id", rule.ID).Str("field", field).
			Int("length", len(p)).Msg("Rule pattern exceeds length limit")
		return false
	}

	re, err := m.compile(p)
	if err != nil {
		m.logger.Warn().Str("rule_id", rule.ID).Str("field", field).
			Err(err).Msg("Invalid rule pattern")
		return false
	}
	return re.MatchString(value)
}

// compile returns the compiled pattern, caching by pattern text so edited
// rules take effect on their next evaluation
func (m *Matcher) compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := m.patterns.Get(pattern); ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	m.patterns.Set(pattern, re)
	return re, nil
}
