package usecase

import (
	"context"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"dealscope-backend/ai"
	"dealscope-backend/dao"
	"dealscope-backend/model"
)

func newID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// AnalysisUsecase fronts the six AI operations and records completed analyses
// into the requesting user's history.
type AnalysisUsecase struct {
	provider    *ai.Provider
	historyRepo *dao.HistoryRepository
}

func NewAnalysisUsecase(provider *ai.Provider, historyRepo *dao.HistoryRepository) *AnalysisUsecase {
	return &AnalysisUsecase{
		provider:    provider,
		historyRepo: historyRepo,
	}
}

func (u *AnalysisUsecase) ParseListing(ctx context.Context, input model.Listing, rawText string) model.Listing {
	return u.provider.ParseListing(ctx, input, rawText)
}

func (u *AnalysisUsecase) BuildComparables(ctx context.Context, listing model.Listing) []model.Comparable {
	return u.provider.BuildComparables(ctx, listing)
}

func (u *AnalysisUsecase) BuildDealScore(ctx context.Context, listing model.Listing, comps []model.Comparable) model.DealScore {
	return u.provider.BuildDealScore(ctx, listing, comps)
}

func (u *AnalysisUsecase) BuildRiskAssessment(ctx context.Context, listing model.Listing) model.RiskAssessment {
	return u.provider.BuildRiskAssessment(ctx, listing)
}

func (u *AnalysisUsecase) BuildNegotiationPlan(ctx context.Context, listing model.Listing) model.NegotiationPlan {
	return u.provider.BuildNegotiationPlan(ctx, listing)
}

func (u *AnalysisUsecase) AnswerQuestion(ctx context.Context, listing model.Listing, question string) model.QaResponse {
	return u.provider.AnswerQuestion(ctx, listing, question)
}

// Analyze runs the full pipeline for a listing. Comparables feed the score, so
// that pair runs sequentially; risk and negotiation are independent and run
// alongside. Individual operations cannot fail, so the group only aggregates
// scheduling.
func (u *AnalysisUsecase) Analyze(ctx context.Context, listing model.Listing, userID string) (*model.AnalysisBundle, error) {
	bundle := &model.AnalysisBundle{Listing: listing}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		bundle.Comparables = u.provider.BuildComparables(gctx, listing)
		bundle.DealScore = u.provider.BuildDealScore(gctx, listing, bundle.Comparables)
		return nil
	})
	g.Go(func() error {
		bundle.Risk = u.provider.BuildRiskAssessment(gctx, listing)
		return nil
	})
	g.Go(func() error {
		bundle.Negotiation = u.provider.BuildNegotiationPlan(gctx, listing)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// History is best-effort for anonymous callers; only recorded when the
	// request carries a valid session.
	if userID != "" {
		entry := &model.HistoryEntry{
			ID:        newID(),
			UserID:    userID,
			CreatedAt: time.Now(),
			Listing:   listing,
			DealScore: &bundle.DealScore,
			Risk:      &bundle.Risk,
		}
		if err := u.historyRepo.Insert(entry); err != nil {
			return nil, err
		}
	}

	return bundle, nil
}

func (u *AnalysisUsecase) ListHistory(userID string) ([]model.HistoryEntry, error) {
	return u.historyRepo.ListByUser(userID)
}
