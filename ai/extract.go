package ai

import (
	"encoding/json"
	"strings"

	"dealscope-backend/model"
)

// Generated text arrives with prose, markdown fences, or nothing useful
// around the payload. Extraction slices out the first balanced-looking JSON
// fragment; coercion then clamps every field into its legal range, taking the
// fallback entity's value for anything missing or malformed. No branch in
// this file returns an error: the only outcomes are a usable entity or a
// signal to keep the fallback.

const priceFloor = 1000

// extractObject returns the substring between the first '{' and the last '}'.
func extractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return text[start : end+1], true
}

// extractArray is the list-shaped twin, keyed on '[' and ']'.
func extractArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || start >= end {
		return "", false
	}
	return text[start : end+1], true
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func floorFloat(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

func floorInt(v, min int) int {
	if v < min {
		return min
	}
	return v
}

// Payload mirrors use pointer fields so a missing key is distinguishable
// from a zero value.

type listingPayload struct {
	Title          *string  `json:"title"`
	Year           *float64 `json:"year"`
	Make           *string  `json:"make"`
	Model          *string  `json:"model"`
	Trim           *string  `json:"trim"`
	Mileage        *float64 `json:"mileage"`
	Price          *float64 `json:"price"`
	Location       *string  `json:"location"`
	VIN            *string  `json:"vin"`
	SellerType     *string  `json:"seller_type"`
	ConditionNotes *string  `json:"condition_notes"`
}

// coerceListing merges a generated listing payload over the fallback listing.
// The seller type is a critical enum: anything but an exact legal value
// rejects the whole payload.
func coerceListing(text string, fallback model.Listing) (model.Listing, bool) {
	raw, ok := extractObject(text)
	if !ok {
		return fallback, false
	}
	var p listingPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fallback, false
	}

	if p.SellerType == nil || !model.ValidSellerType(model.SellerType(*p.SellerType)) {
		return fallback, false
	}

	out := fallback
	out.SellerType = model.SellerType(*p.SellerType)
	if p.Title != nil && *p.Title != "" {
		out.Title = *p.Title
	}
	if p.Year != nil {
		out.Year = int(*p.Year)
	}
	if p.Make != nil && *p.Make != "" {
		out.Make = *p.Make
	}
	if p.Model != nil && *p.Model != "" {
		out.Model = *p.Model
	}
	if p.Trim != nil && *p.Trim != "" {
		out.Trim = *p.Trim
	}
	if p.Mileage != nil {
		out.Mileage = floorInt(int(*p.Mileage), 0)
	}
	if p.Price != nil {
		out.Price = floorFloat(*p.Price, priceFloor)
	}
	if p.Location != nil && *p.Location != "" {
		out.Location = *p.Location
	}
	if p.VIN != nil && *p.VIN != "" {
		out.VIN = *p.VIN
	}
	if p.ConditionNotes != nil && *p.ConditionNotes != "" {
		out.ConditionNotes = *p.ConditionNotes
	}
	return out, true
}

type comparablePayload struct {
	Year          *float64 `json:"year"`
	Make          *string  `json:"make"`
	Model         *string  `json:"model"`
	Trim          *string  `json:"trim"`
	Price         *float64 `json:"price"`
	Mileage       *float64 `json:"mileage"`
	DistanceMiles *float64 `json:"distance_miles"`
	Source        *string  `json:"source"`
	Relevance     *float64 `json:"relevance"`
}

// coerceComparables validates a generated comparable array. Items missing
// both make and model are dropped; if nothing survives, the caller keeps the
// fallback set. Missing numerics borrow from the position-matched fallback item.
func coerceComparables(text string, fallback []model.Comparable) ([]model.Comparable, bool) {
	raw, ok := extractArray(text)
	if !ok {
		return fallback, false
	}
	var items []comparablePayload
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fallback, false
	}

	out := make([]model.Comparable, 0, len(items))
	for idx, p := range items {
		missingMake := p.Make == nil || *p.Make == ""
		missingModel := p.Model == nil || *p.Model == ""
		if missingMake && missingModel {
			continue
		}

		base := model.Comparable{Price: priceFloor, Relevance: 65}
		if len(fallback) > 0 {
			if idx < len(fallback) {
				base = fallback[idx]
			} else {
				base = fallback[len(fallback)-1]
			}
		}

		c := base
		c.ID = newID()
		if !missingMake {
			c.Make = *p.Make
		}
		if !missingModel {
			c.Model = *p.Model
		}
		if p.Trim != nil && *p.Trim != "" {
			c.Trim = *p.Trim
		}
		if p.Source != nil && *p.Source != "" {
			c.Source = *p.Source
		}
		if p.Year != nil {
			c.Year = int(*p.Year)
		}
		if p.Price != nil {
			c.Price = floorFloat(*p.Price, priceFloor)
		}
		if p.Mileage != nil {
			c.Mileage = floorInt(int(*p.Mileage), 0)
		}
		if p.DistanceMiles != nil {
			c.DistanceMiles = floorInt(int(*p.DistanceMiles), 0)
		}
		if p.Relevance != nil {
			c.Relevance = clampInt(int(*p.Relevance), 1, 100)
		}
		out = append(out, c)
	}

	if len(out) == 0 {
		return fallback, false
	}
	return out, true
}

type scorePayload struct {
	Label              *string  `json:"label"`
	Score              *float64 `json:"score"`
	EstimatedFairRange *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"estimated_fair_range"`
	Confidence  *float64 `json:"confidence"`
	Explanation *string  `json:"explanation"`
}

func coerceScore(text string, fallback model.DealScore) (model.DealScore, bool) {
	raw, ok := extractObject(text)
	if !ok {
		return fallback, false
	}
	var p scorePayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fallback, false
	}

	if p.Label == nil || !model.ValidDealLabel(model.DealLabel(*p.Label)) {
		return fallback, false
	}

	out := fallback
	out.Label = model.DealLabel(*p.Label)
	if p.Score != nil {
		out.Score = clampInt(int(*p.Score), 1, 99)
	}
	if p.EstimatedFairRange != nil {
		if p.EstimatedFairRange.Min != nil {
			out.EstimatedFairRange.Min = *p.EstimatedFairRange.Min
		}
		if p.EstimatedFairRange.Max != nil {
			out.EstimatedFairRange.Max = *p.EstimatedFairRange.Max
		}
		if out.EstimatedFairRange.Min > out.EstimatedFairRange.Max {
			out.EstimatedFairRange = fallback.EstimatedFairRange
		}
	}
	if p.Confidence != nil {
		out.Confidence = clampFloat(*p.Confidence, 0, 1)
	}
	if p.Explanation != nil && *p.Explanation != "" {
		out.Explanation = *p.Explanation
	}
	return out, true
}

type riskPayload struct {
	RiskLevel            *string  `json:"risk_level"`
	Flags                []string `json:"flags"`
	RecommendedQuestions []string `json:"recommended_questions"`
}

func coerceRisk(text string, fallback model.RiskAssessment) (model.RiskAssessment, bool) {
	raw, ok := extractObject(text)
	if !ok {
		return fallback, false
	}
	var p riskPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fallback, false
	}

	if p.RiskLevel == nil || !model.ValidRiskLevel(model.RiskLevel(*p.RiskLevel)) {
		return fallback, false
	}

	out := fallback
	out.RiskLevel = model.RiskLevel(*p.RiskLevel)
	// String arrays are all-or-nothing: an empty generated list keeps the
	// fallback list wholesale.
	if len(p.Flags) > 0 {
		out.Flags = p.Flags
	}
	if len(p.RecommendedQuestions) > 0 {
		out.RecommendedQuestions = p.RecommendedQuestions
	}
	return out, true
}

type negotiationPayload struct {
	TargetOffer   *float64 `json:"target_offer"`
	WalkAwayPrice *float64 `json:"walk_away_price"`
	TalkingPoints []string `json:"talking_points"`
}

func coerceNegotiation(text string, fallback model.NegotiationPlan) (model.NegotiationPlan, bool) {
	raw, ok := extractObject(text)
	if !ok {
		return fallback, false
	}
	var p negotiationPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fallback, false
	}

	out := fallback
	if p.TargetOffer != nil {
		out.TargetOffer = floorFloat(*p.TargetOffer, 0)
	}
	if p.WalkAwayPrice != nil {
		out.WalkAwayPrice = floorFloat(*p.WalkAwayPrice, 0)
	}
	if out.TargetOffer > out.WalkAwayPrice {
		out.TargetOffer = fallback.TargetOffer
		out.WalkAwayPrice = fallback.WalkAwayPrice
	}
	if len(p.TalkingPoints) > 0 {
		out.TalkingPoints = p.TalkingPoints
	}
	return out, true
}

type qaPayload struct {
	Answer *string `json:"answer"`
}

func coerceQa(text string, fallback model.QaResponse) (model.QaResponse, bool) {
	raw, ok := extractObject(text)
	if !ok {
		return fallback, false
	}
	var p qaPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return fallback, false
	}
	if p.Answer == nil || strings.TrimSpace(*p.Answer) == "" {
		return fallback, false
	}
	return model.QaResponse{Answer: *p.Answer}, true
}
