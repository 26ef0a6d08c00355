package model

// DealLabel is the three-way verdict on a listing's price.
type DealLabel string

const (
	LabelGreatDeal  DealLabel = "Great Deal"
	LabelFair       DealLabel = "Fair"
	LabelOverpriced DealLabel = "Overpriced"
)

// ValidDealLabel reports whether l is one of the fixed verdicts.
func ValidDealLabel(l DealLabel) bool {
	switch l {
	case LabelGreatDeal, LabelFair, LabelOverpriced:
		return true
	}
	return false
}

// FairRange is the estimated fair-value band for a listing. Min <= Max.
type FairRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type DealScore struct {
	Label              DealLabel `json:"label"`
	Score              int       `json:"score"` // 1-99
	EstimatedFairRange FairRange `json:"estimated_fair_range"`
	Confidence         float64   `json:"confidence"` // 0-1
	Explanation        string    `json:"explanation"`
}

// RiskLevel is the three-way risk verdict.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func ValidRiskLevel(l RiskLevel) bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// RiskAssessment always carries at least one flag; a "no red flags" sentinel
// fills the list when nothing triggered.
type RiskAssessment struct {
	RiskLevel            RiskLevel `json:"risk_level"`
	Flags                []string  `json:"flags"`
	RecommendedQuestions []string  `json:"recommended_questions"`
}

// NegotiationPlan holds the opening offer and the ceiling. TargetOffer <= WalkAwayPrice.
type NegotiationPlan struct {
	TargetOffer   float64  `json:"target_offer"`
	WalkAwayPrice float64  `json:"walk_away_price"`
	TalkingPoints []string `json:"talking_points"`
}

type QaResponse struct {
	Answer string `json:"answer"`
}

// AnalysisBundle is the combined output of one full listing analysis.
type AnalysisBundle struct {
	Listing     Listing         `json:"listing"`
	Comparables []Comparable    `json:"comparables"`
	DealScore   DealScore       `json:"deal_score"`
	Risk        RiskAssessment  `json:"risk"`
	Negotiation NegotiationPlan `json:"negotiation"`
}
