package ai

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dealscope-backend/model"
)

// Generator produces free-form text for a prompt, or nothing. Implementations
// must never surface transport or configuration problems as errors; "got
// nothing" is the only failure the provider distinguishes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, bool)
}

// Provider exposes the six analysis operations. Every operation computes its
// deterministic fallback first and degrades to it silently whenever the
// generator is absent, fails, or returns an unusable payload.
type Provider struct {
	gen     Generator
	fetcher *http.Client
	log     *zap.Logger
}

func NewProvider(gen Generator, log *zap.Logger) *Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &Provider{
		gen: gen,
		fetcher: &http.Client{
			Timeout: 5 * time.Second,
		},
		log: log,
	}
}

// ParseListing resolves a partial listing (manual fields, source URL, or raw
// pasted text) into a complete one. The URL seeds the fallback before any
// network access, so even a fully offline parse is specific to the locator.
func (p *Provider) ParseListing(ctx context.Context, input model.Listing, rawText string) model.Listing {
	seeded := input
	if input.SourceURL != "" {
		seeded = mergeSeed(input, listingSeedFromURL(input.SourceURL))
	}
	fallback := FallbackParse(seeded)

	snapshot := ""
	if input.SourceURL != "" {
		snapshot = p.fetchSnapshot(ctx, input.SourceURL)
	}

	text, ok := p.gen.Generate(ctx, parsePrompt(seeded, rawText, snapshot))
	if !ok {
		return fallback
	}
	out, ok := coerceListing(text, fallback)
	if !ok {
		p.log.Debug("parse payload rejected, using fallback")
		return fallback
	}
	return out
}

// BuildComparables returns five benchmark vehicles for the listing.
func (p *Provider) BuildComparables(ctx context.Context, listing model.Listing) []model.Comparable {
	fallback := FallbackComparables(listing)

	text, ok := p.gen.Generate(ctx, comparablesPrompt(listing))
	if !ok {
		return fallback
	}
	out, ok := coerceComparables(text, fallback)
	if !ok {
		p.log.Debug("comparables payload rejected, using fallback")
		return fallback
	}
	return out
}

// BuildDealScore rates the listing price against the comparable set.
func (p *Provider) BuildDealScore(ctx context.Context, listing model.Listing, comps []model.Comparable) model.DealScore {
	fallback := FallbackScore(listing, comps)

	text, ok := p.gen.Generate(ctx, scorePrompt(listing, comps))
	if !ok {
		return fallback
	}
	out, ok := coerceScore(text, fallback)
	if !ok {
		p.log.Debug("score payload rejected, using fallback")
		return fallback
	}
	return out
}

// BuildRiskAssessment surfaces red flags and questions to ask the seller.
func (p *Provider) BuildRiskAssessment(ctx context.Context, listing model.Listing) model.RiskAssessment {
	fallback := FallbackRisk(listing)

	text, ok := p.gen.Generate(ctx, riskPrompt(listing))
	if !ok {
		return fallback
	}
	out, ok := coerceRisk(text, fallback)
	if !ok {
		p.log.Debug("risk payload rejected, using fallback")
		return fallback
	}
	return out
}

// BuildNegotiationPlan proposes an opening offer, a ceiling, and leverage.
func (p *Provider) BuildNegotiationPlan(ctx context.Context, listing model.Listing) model.NegotiationPlan {
	fallback := FallbackNegotiation(listing)

	text, ok := p.gen.Generate(ctx, negotiationPrompt(listing))
	if !ok {
		return fallback
	}
	out, ok := coerceNegotiation(text, fallback)
	if !ok {
		p.log.Debug("negotiation payload rejected, using fallback")
		return fallback
	}
	return out
}

// AnswerQuestion responds to a free-text question about the listing.
func (p *Provider) AnswerQuestion(ctx context.Context, listing model.Listing, question string) model.QaResponse {
	fallback := FallbackQa(listing, question)

	text, ok := p.gen.Generate(ctx, qaPrompt(listing, question))
	if !ok {
		return fallback
	}
	out, ok := coerceQa(text, fallback)
	if !ok {
		p.log.Debug("qa payload rejected, using fallback")
		return fallback
	}
	return out
}
