package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealscope-backend/model"
)

// fakeGenerator returns a canned response, or nothing when text is empty.
type fakeGenerator struct {
	text    string
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, bool) {
	f.prompts = append(f.prompts, prompt)
	if f.text == "" {
		return "", false
	}
	return f.text, true
}

func TestProviderFallsBackWhenGeneratorSilent(t *testing.T) {
	gen := &fakeGenerator{}
	p := NewProvider(gen, nil)
	listing := testListing()
	ctx := context.Background()

	// With no generated text, every operation must equal the deterministic
	// fallback for the same input.
	assert.Equal(t, FallbackScore(listing, nil), p.BuildDealScore(ctx, listing, nil))
	assert.Equal(t, FallbackRisk(listing), p.BuildRiskAssessment(ctx, listing))
	assert.Equal(t, FallbackNegotiation(listing), p.BuildNegotiationPlan(ctx, listing))
	assert.Equal(t, FallbackQa(listing, "q"), p.AnswerQuestion(ctx, listing, "q"))

	comps := p.BuildComparables(ctx, listing)
	want := FallbackComparables(listing)
	require.Len(t, comps, len(want))
	for i := range comps {
		comps[i].ID = ""
		want[i].ID = ""
	}
	assert.Equal(t, want, comps)

	parsed := p.ParseListing(ctx, listing, "")
	assert.Equal(t, FallbackParse(listing), parsed)

	assert.Len(t, gen.prompts, 6, "one generation attempt per operation")
}

func TestProviderFallsBackOnGarbage(t *testing.T) {
	gen := &fakeGenerator{text: "I could not produce JSON, sorry!"}
	p := NewProvider(gen, nil)
	listing := testListing()
	ctx := context.Background()

	assert.Equal(t, FallbackRisk(listing), p.BuildRiskAssessment(ctx, listing))
	assert.Equal(t, FallbackNegotiation(listing), p.BuildNegotiationPlan(ctx, listing))
}

func TestProviderUsesValidGeneratedScore(t *testing.T) {
	gen := &fakeGenerator{
		text: `Here is my analysis: {"label":"Overpriced","score":22,"explanation":"Above comparable Accords."} done.`,
	}
	p := NewProvider(gen, nil)
	listing := testListing()

	score := p.BuildDealScore(context.Background(), listing, FallbackComparables(listing))

	assert.Equal(t, model.LabelOverpriced, score.Label)
	assert.Equal(t, 22, score.Score)
	assert.Equal(t, "Above comparable Accords.", score.Explanation)
	// Omitted fields come from the fallback.
	assert.InDelta(t, 0.78, score.Confidence, 0.001)
}

func TestProviderPromptsEmbedListing(t *testing.T) {
	gen := &fakeGenerator{}
	p := NewProvider(gen, nil)
	listing := testListing()

	p.BuildRiskAssessment(context.Background(), listing)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"Accord"`)
	assert.Contains(t, gen.prompts[0], "JSON")
}

func TestParseListingSeedsFromURL(t *testing.T) {
	gen := &fakeGenerator{}
	p := NewProvider(gen, nil)
	// Non-routable host keeps the snapshot fetch a fast failure.
	input := model.Listing{
		ID:        "seeded",
		SourceURL: "http://listings.invalid/2017-honda-civic-lx/12345",
	}

	out := p.ParseListing(context.Background(), input, "")

	assert.Equal(t, 2017, out.Year)
	assert.Equal(t, "Honda", out.Make)
	assert.Equal(t, "Civic", out.Model)
	// Defaults still fill the rest.
	assert.Positive(t, out.Price)
	assert.Positive(t, out.Mileage)
}

func TestAnswerQuestionMergesValidAnswer(t *testing.T) {
	gen := &fakeGenerator{text: `{"answer":"Yes, the EX trim has remote start."}`}
	p := NewProvider(gen, nil)

	out := p.AnswerQuestion(context.Background(), testListing(), "Does it have remote start?")
	assert.Equal(t, "Yes, the EX trim has remote start.", out.Answer)
}
