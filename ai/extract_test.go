package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope-backend/model"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"surrounded by noise", `noise {"a":1} trailing`, `{"a":1}`, true},
		{"markdown fences", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"no braces", "plain prose without payload", "", false},
		{"only opening brace", "starts { and never closes", "", false},
		{"closing before opening", "} backwards {", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractObject(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractArray(t *testing.T) {
	got, ok := extractArray(`Here you go: [{"a":1},{"b":2}] hope that helps!`)
	require.True(t, ok)
	assert.Equal(t, `[{"a":1},{"b":2}]`, got)

	_, ok = extractArray(`just an object {"a":1}`)
	assert.False(t, ok)
}

func TestCoerceScoreEnumGuard(t *testing.T) {
	fallback := FallbackScore(testListing(), FallbackComparables(testListing()))

	// An illegal label rejects the payload wholesale: the high score in the
	// same object must not leak into the result.
	out, ok := coerceScore(`{"label":"Amazing","score":95}`, fallback)
	assert.False(t, ok)
	assert.Equal(t, fallback, out)

	// Case variants count as illegal too.
	_, ok = coerceScore(`{"label":"fair","score":50}`, fallback)
	assert.False(t, ok)

	// Absent label is equally fatal.
	_, ok = coerceScore(`{"score":50}`, fallback)
	assert.False(t, ok)
}

func TestCoerceScoreMergeIsIdempotent(t *testing.T) {
	fallback := FallbackScore(testListing(), FallbackComparables(testListing()))

	payload := `{"label":"Great Deal","score":85,"estimated_fair_range":{"min":18000,"max":21000},"confidence":0.9,"explanation":"Priced under comparable Accords."}`
	out, ok := coerceScore(payload, fallback)
	require.True(t, ok)

	assert.Equal(t, model.DealScore{
		Label:              model.LabelGreatDeal,
		Score:              85,
		EstimatedFairRange: model.FairRange{Min: 18000, Max: 21000},
		Confidence:         0.9,
		Explanation:        "Priced under comparable Accords.",
	}, out)
}

func TestCoerceScorePartialPayloadKeepsFallbackFields(t *testing.T) {
	fallback := FallbackScore(testListing(), FallbackComparables(testListing()))

	out, ok := coerceScore(`{"label":"Fair"}`, fallback)
	require.True(t, ok)

	assert.Equal(t, model.LabelFair, out.Label)
	assert.Equal(t, fallback.Score, out.Score)
	assert.Equal(t, fallback.EstimatedFairRange, out.EstimatedFairRange)
	assert.Equal(t, fallback.Confidence, out.Confidence)
	assert.Equal(t, fallback.Explanation, out.Explanation)
}

func TestCoerceScoreClamps(t *testing.T) {
	fallback := FallbackScore(testListing(), FallbackComparables(testListing()))

	out, ok := coerceScore(`{"label":"Fair","score":250,"confidence":3.5}`, fallback)
	require.True(t, ok)
	assert.Equal(t, 99, out.Score)
	assert.Equal(t, float64(1), out.Confidence)

	out, ok = coerceScore(`{"label":"Fair","score":-10,"confidence":-1}`, fallback)
	require.True(t, ok)
	assert.Equal(t, 1, out.Score)
	assert.Equal(t, float64(0), out.Confidence)
}

func TestCoerceScoreInvertedRangeFallsBack(t *testing.T) {
	fallback := FallbackScore(testListing(), FallbackComparables(testListing()))

	out, ok := coerceScore(`{"label":"Fair","estimated_fair_range":{"min":25000,"max":10000}}`, fallback)
	require.True(t, ok)
	assert.Equal(t, fallback.EstimatedFairRange, out.EstimatedFairRange)
}

func TestCoerceComparablesClamping(t *testing.T) {
	fallback := FallbackComparables(testListing())

	payload := `[{"make":"Honda","model":"Accord","price":10,"relevance":150,"mileage":-5}]`
	out, ok := coerceComparables(payload, fallback)
	require.True(t, ok)
	require.Len(t, out, 1)

	assert.Equal(t, float64(1000), out[0].Price)
	assert.Equal(t, 100, out[0].Relevance)
	assert.Equal(t, 0, out[0].Mileage)
}

func TestCoerceComparablesDropsUnidentifiedItems(t *testing.T) {
	fallback := FallbackComparables(testListing())

	// First item has neither make nor model and is dropped; the second keeps
	// its make and survives.
	payload := `[{"price":15000,"relevance":90},{"make":"Toyota","price":16000}]`
	out, ok := coerceComparables(payload, fallback)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, "Toyota", out[0].Make)

	// Nothing identifiable at all: the whole fallback set is substituted.
	out, ok = coerceComparables(`[{"price":15000},{"price":16000}]`, fallback)
	assert.False(t, ok)
	assert.Equal(t, fallback, out)
}

func TestCoerceComparablesMissingNumericsBorrowFromFallback(t *testing.T) {
	fallback := FallbackComparables(testListing())

	out, ok := coerceComparables(`[{"make":"Kia","model":"Sportage"}]`, fallback)
	require.True(t, ok)
	require.Len(t, out, 1)

	assert.Equal(t, fallback[0].Price, out[0].Price)
	assert.Equal(t, fallback[0].Mileage, out[0].Mileage)
	assert.Equal(t, fallback[0].Relevance, out[0].Relevance)
}

func TestCoerceRiskEnumAndArrays(t *testing.T) {
	fallback := FallbackRisk(testListing())

	// Illegal level rejects the whole payload.
	out, ok := coerceRisk(`{"risk_level":"Severe","flags":["a"]}`, fallback)
	assert.False(t, ok)
	assert.Equal(t, fallback, out)

	// Empty string arrays are substituted wholesale from the fallback, not
	// left empty.
	out, ok = coerceRisk(`{"risk_level":"High","flags":[],"recommended_questions":[]}`, fallback)
	require.True(t, ok)
	assert.Equal(t, model.RiskHigh, out.RiskLevel)
	assert.Equal(t, fallback.Flags, out.Flags)
	assert.Equal(t, fallback.RecommendedQuestions, out.RecommendedQuestions)

	// Populated arrays are taken as-is.
	out, ok = coerceRisk(`{"risk_level":"Low","flags":["Frame damage reported"],"recommended_questions":["Why so cheap?"]}`, fallback)
	require.True(t, ok)
	assert.Equal(t, []string{"Frame damage reported"}, out.Flags)
	assert.Equal(t, []string{"Why so cheap?"}, out.RecommendedQuestions)
}

func TestCoerceNegotiation(t *testing.T) {
	fallback := FallbackNegotiation(testListing())

	out, ok := coerceNegotiation(`{"target_offer":17000,"walk_away_price":19000,"talking_points":["point one"]}`, fallback)
	require.True(t, ok)
	assert.Equal(t, float64(17000), out.TargetOffer)
	assert.Equal(t, float64(19000), out.WalkAwayPrice)
	assert.Equal(t, []string{"point one"}, out.TalkingPoints)

	// Target above walk-away violates the plan invariant; both prices revert.
	out, ok = coerceNegotiation(`{"target_offer":21000,"walk_away_price":18000}`, fallback)
	require.True(t, ok)
	assert.Equal(t, fallback.TargetOffer, out.TargetOffer)
	assert.Equal(t, fallback.WalkAwayPrice, out.WalkAwayPrice)
}

func TestCoerceListing(t *testing.T) {
	fallback := FallbackParse(model.Listing{Title: "2019 Honda Accord EX"})

	payload := `{"title":"2019 Honda Accord EX-L","year":2019,"make":"Honda","model":"Accord","trim":"EX-L","mileage":61250,"price":19995,"location":"Marietta, GA","seller_type":"dealer","condition_notes":"One owner."}`
	out, ok := coerceListing(payload, fallback)
	require.True(t, ok)
	assert.Equal(t, "EX-L", out.Trim)
	assert.Equal(t, 61250, out.Mileage)
	assert.Equal(t, float64(19995), out.Price)
	assert.Equal(t, "Marietta, GA", out.Location)

	// Seller type is a critical enum for parsed listings.
	_, ok = coerceListing(`{"make":"Honda","seller_type":"Dealer"}`, fallback)
	assert.False(t, ok)
	_, ok = coerceListing(`{"make":"Honda"}`, fallback)
	assert.False(t, ok)
}

func TestCoerceQa(t *testing.T) {
	fallback := FallbackQa(testListing(), "any question")

	out, ok := coerceQa(`{"answer":"The timing chain was replaced at 60k."}`, fallback)
	require.True(t, ok)
	assert.Equal(t, "The timing chain was replaced at 60k.", out.Answer)

	out, ok = coerceQa(`{"answer":"   "}`, fallback)
	assert.False(t, ok)
	assert.Equal(t, fallback, out)

	_, ok = coerceQa(`no json here`, fallback)
	assert.False(t, ok)
}
