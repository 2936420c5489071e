package score_test

import (
	"testing"

	"github.com/psd2scout/apiscout"
	"github.com/psd2scout/apiscout/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_classifies_payment_initiation_page_as_PIS(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	analysis := a.Analyze(
		"Our payment initiation interface supports SEPA payment submission.",
		"https://bank.example/products",
		"Payments",
	)

	require.Len(t, analysis.Types, 1)
	assert.Equal(t, apiscout.APITypePIS, analysis.Types[0])
}

func TestAnalyzer_page_without_keywords_is_not_api_related(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	analysis := a.Analyze(
		"Welcome to our branch locator. Find opening hours near you.",
		"https://bank.example/branches",
		"Branches",
	)

	assert.False(t, analysis.APIRelated)
	assert.Empty(t, analysis.Keywords)
	assert.Zero(t, analysis.Relevance)
	require.Len(t, analysis.Types, 1)
	assert.Equal(t, apiscout.APITypeUnknown, analysis.Types[0])
}

func TestAnalyzer_score_is_bounded_and_deterministic(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	// Text matching every category plus an API-looking URL would sum
	// past 1.0 without clamping.
	text := "psd2 open banking account information payment initiation " +
		"confirmation of funds swagger openapi sandbox environment"
	url := "https://bank.example/developer/psd2"

	first := a.Analyze(text, url, "Developer Portal")
	second := a.Analyze(text, url, "Developer Portal")

	assert.Equal(t, 1.0, first.Relevance)
	assert.True(t, first.APIRelated)
	assert.Equal(t, first.Relevance, second.Relevance)
	assert.Equal(t, first.Keywords, second.Keywords)
	assert.Equal(t, first.Types, second.Types)
}

func TestAnalyzer_url_pattern_bonus(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)
	text := "psd2 compliance statement" // general only: 0.30

	plain := a.Analyze(text, "https://bank.example/about", "")
	boosted := a.Analyze(text, "https://bank.example/developer", "")

	assert.InDelta(t, 0.30, plain.Relevance, 1e-9)
	assert.InDelta(t, 0.50, boosted.Relevance, 1e-9)
}

func TestAnalyzer_general_only_evidence_classifies_as_PSD2(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	analysis := a.Analyze(
		"We are a licensed third party provider under psd2 using oauth2.",
		"https://bank.example/compliance",
		"",
	)

	require.Len(t, analysis.Types, 1)
	assert.Equal(t, apiscout.APITypePSD2, analysis.Types[0])
}

func TestAnalyzer_page_can_evidence_multiple_types(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	analysis := a.Analyze(
		"account information and payment initiation services for TPPs",
		"https://bank.example/openbanking",
		"",
	)

	assert.Equal(t, []apiscout.APIType{apiscout.APITypeAIS, apiscout.APITypePIS}, analysis.Types)
}

func TestAnalyzer_keywords_listed_once_with_category_prefix(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(nil)

	// "balance" appears twice; the tag must be listed once while the
	// category match count reflects both occurrences.
	analysis := a.Analyze(
		"check your balance here, balance updates are instant",
		"https://bank.example",
		"",
	)

	assert.Equal(t, []string{"ais:balance"}, analysis.Keywords)
	assert.Equal(t, 2, analysis.Matches[apiscout.CategoryAIS])
}

func TestAnalyzer_custom_taxonomy(t *testing.T) {
	t.Parallel()

	a := score.NewAnalyzer(apiscout.Keywords{
		apiscout.CategoryGeneral: {"open finance"},
	})

	analysis := a.Analyze("our open finance program", "https://bank.example", "")

	assert.Equal(t, []string{"general:open finance"}, analysis.Keywords)
	assert.InDelta(t, 0.30, analysis.Relevance, 1e-9)
}

func TestIsAPIURL(t *testing.T) {
	t.Parallel()

	assert.True(t, score.IsAPIURL("https://bank.example/developer/apis"))
	assert.True(t, score.IsAPIURL("https://bank.example/XS2A/info"))
	assert.False(t, score.IsAPIURL("https://bank.example/careers"))
}
