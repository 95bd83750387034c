package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inboxpilot/internal/cache"
	"inboxpilot/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestMatcher() *Matcher {
	return NewMatcher(cache.New(time.Minute), 1000, zerolog.Nop())
}

func TestMatch_FirstMatchWins(t *testing.T) {
	rules := []models.Rule{
		{ID: "r1", From: strPtr("billing@example\\.com")},
		{ID: "r2", From: strPtr("newsletter@example\\.com")},
		{ID: "r3", From: strPtr("newsletter@.*")},
	}
	email := models.EmailContext{From: "newsletter@example.com"}

	matched := newTestMatcher().Match(rules, email)
	require.NotNil(t, matched)
	assert.Equal(t, "r2", matched.ID)
}

func TestMatch_WildcardRuleMatchesEverything(t *testing.T) {
	rules := []models.Rule{{ID: "catch-all"}}
	email := models.EmailContext{From: "anyone@example.com", Subject: "anything"}

	matched := newTestMatcher().Match(rules, email)
	require.NotNil(t, matched)
	assert.Equal(t, "catch-all", matched.ID)
}

func TestMatch_AllConfiguredFieldsMustMatch(t *testing.T) {
	rules := []models.Rule{{
		ID:      "r1",
		From:    strPtr("sender@example\\.com"),
		Subject: strPtr("^Invoice"),
	}}

	matcher := newTestMatcher()

	matched := matcher.Match(rules, models.EmailContext{
		From:    "sender@example.com",
		Subject: "Invoice for March",
	})
	require.NotNil(t, matched)

	assert.Nil(t, matcher.Match(rules, models.EmailContext{
		From:    "sender@example.com",
		Subject: "Receipt for March",
	}))
}

func TestMatch_InvalidRegexIsNonMatchNotFatal(t *testing.T) {
	rules := []models.Rule{
		{ID: "broken", From: strPtr("([unclosed")},
		{ID: "valid", From: strPtr("sender@example\\.com")},
	}

	matched := newTestMatcher().Match(rules, models.EmailContext{From: "sender@example.com"})
	require.NotNil(t, matched)
	assert.Equal(t, "valid", matched.ID)
}

func TestMatch_BodyPatternMatchesContent(t *testing.T) {
	rules := []models.Rule{{ID: "r1", Body: strPtr("unsubscribe")}}

	matcher := newTestMatcher()
	matched := matcher.Match(rules, models.EmailContext{Content: "Click here to unsubscribe."})
	require.NotNil(t, matched)

	assert.Nil(t, matcher.Match(rules, models.EmailContext{Content: "Hello"}))
}

func TestMatch_OversizedPatternIsNonMatch(t *testing.T) {
	huge := strings.Repeat("a", 2000)
	rules := []models.Rule{{ID: "huge", From: strPtr(huge)}}

	assert.Nil(t, newTestMatcher().Match(rules, models.EmailContext{From: huge}))
}

func TestMatch_NoRuleMatches(t *testing.T) {
	rules := []models.Rule{{ID: "r1", From: strPtr("other@example\\.com")}}
	assert.Nil(t, newTestMatcher().Match(rules, models.EmailContext{From: "me@example.com"}))
}

func TestMatch_CachesCompiledPatterns(t *testing.T) {
	patterns := cache.New(time.Minute)
	matcher := NewMatcher(patterns, 1000, zerolog.Nop())

	rules := []models.Rule{{ID: "r1", From: strPtr("sender@example\\.com")}}
	email := models.EmailContext{From: "sender@example.com"}

	require.NotNil(t, matcher.Match(rules, email))
	assert.Equal(t, 1, patterns.Len())
	require.NotNil(t, matcher.Match(rules, email))
	assert.Equal(t, 1, patterns.Len())
}
