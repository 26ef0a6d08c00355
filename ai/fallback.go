package ai

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"dealscope-backend/model"
)

// The fallback generator is the system of record whenever external generation
// is unavailable or returns garbage. Everything here is deterministic given
// the input listing (IDs aside) and must never fail.

var (
	fallbackMakes   = []string{"Toyota", "Honda", "Hyundai", "Mazda", "Kia"}
	fallbackModels  = []string{"Camry", "Accord", "Elantra", "CX-5", "Sportage"}
	fallbackSources = []string{"Dealer", "Craigslist", "Facebook", "eBay"}
)

const (
	defaultTitle     = "2019 Honda Accord EX"
	defaultMileage   = 64000
	defaultPrice     = 19400
	defaultLocation  = "Atlanta, GA"
	defaultCondition = "Well maintained, clean title."

	lowPriceFlagThreshold = 9000
	fallbackConfidence    = 0.78
)

func newID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// FallbackParse completes a partial listing without any external call. A bare
// title (or nothing at all) is decomposed positionally: first token is the
// year if numeric, the next two are make and model, the remainder is the trim.
func FallbackParse(input model.Listing) model.Listing {
	title := input.Title
	if title == "" {
		title = defaultTitle
	}

	tokens := strings.Fields(title)
	year, mk, mdl, trim := 2019, "Honda", "Accord", "EX"
	if len(tokens) > 0 {
		if y, err := strconv.Atoi(tokens[0]); err == nil {
			year = y
		}
	}
	if len(tokens) > 1 {
		mk = tokens[1]
	}
	if len(tokens) > 2 {
		mdl = tokens[2]
	}
	if len(tokens) > 3 {
		trim = strings.Join(tokens[3:], " ")
	}

	out := input
	out.Title = title
	if out.ID == "" {
		out.ID = newID()
	}
	if out.Year == 0 {
		out.Year = year
	}
	if out.Make == "" {
		out.Make = mk
	}
	if out.Model == "" {
		out.Model = mdl
	}
	if out.Trim == "" {
		out.Trim = trim
	}
	if out.Mileage == 0 {
		out.Mileage = defaultMileage
	}
	if out.Price == 0 {
		out.Price = defaultPrice
	}
	if out.Location == "" {
		out.Location = defaultLocation
	}
	if !model.ValidSellerType(out.SellerType) {
		out.SellerType = model.SellerDealer
	}
	if out.ConditionNotes == "" {
		out.ConditionNotes = defaultCondition
	}
	return out
}

// FallbackComparables synthesizes a fixed set of five nearby vehicles by
// perturbing the listing: year alternates -1 on odd slots, price ramps
// multiplicatively, mileage ramps around the listing's own. Relevance decays
// down the set and never drops below 65.
func FallbackComparables(listing model.Listing) []model.Comparable {
	comps := make([]model.Comparable, 0, 5)
	for idx := 0; idx < 5; idx++ {
		year := listing.Year
		if idx%2 == 1 {
			year--
		}
		relevance := 95 - idx*6
		if relevance < 65 {
			relevance = 65
		}
		mileage := listing.Mileage + (idx-2)*7000
		if mileage < 20000 {
			mileage = 20000
		}
		comps = append(comps, model.Comparable{
			ID:            newID(),
			Year:          year,
			Make:          fallbackMakes[idx%len(fallbackMakes)],
			Model:         fallbackModels[idx%len(fallbackModels)],
			Trim:          listing.Trim,
			Price:         math.Round(listing.Price * (0.88 + float64(idx)*0.045)),
			Mileage:       mileage,
			DistanceMiles: 5 + idx*12,
			Source:        fallbackSources[idx%len(fallbackSources)],
			Relevance:     relevance,
		})
	}
	return comps
}

// FallbackScore prices the listing against the mean of the comparables.
// Score is 70 minus two points per percent above market, clamped to [1,99].
func FallbackScore(listing model.Listing, comps []model.Comparable) model.DealScore {
	avg := listing.Price
	if len(comps) > 0 {
		var sum float64
		for _, c := range comps {
			sum += c.Price
		}
		avg = sum / float64(len(comps))
	}

	delta := 0.0
	if avg != 0 {
		delta = (listing.Price - avg) / avg * 100
	}

	score := int(math.Round(70 - delta*2))
	if score < 1 {
		score = 1
	}
	if score > 99 {
		score = 99
	}

	label := model.LabelFair
	if delta < -7 {
		label = model.LabelGreatDeal
	} else if delta > 7 {
		label = model.LabelOverpriced
	}

	direction := "above"
	if delta <= 0 {
		direction = "below"
	}

	return model.DealScore{
		Label: label,
		Score: score,
		EstimatedFairRange: model.FairRange{
			Min: math.Round(avg * 0.93),
			Max: math.Round(avg * 1.07),
		},
		Confidence: fallbackConfidence,
		Explanation: fmt.Sprintf("%d %s %s sits %d%% %s nearby market averages.",
			listing.Year, listing.Make, listing.Model, int(math.Abs(math.Round(delta))), direction),
	}
}

// FallbackRisk runs the deterministic rule checks. Zero triggered flags still
// yields a non-empty flag list via the sentinel.
func FallbackRisk(listing model.Listing) model.RiskAssessment {
	var flags []string
	if listing.Price < lowPriceFlagThreshold {
		flags = append(flags, "Price is unusually low for segment; verify title and seller identity.")
	}
	if listing.VIN == "" {
		flags = append(flags, "VIN is missing from listing details.")
	}
	if strings.Contains(strings.ToLower(listing.ConditionNotes), "as-is") {
		flags = append(flags, "Sold as-is; prioritize pre-purchase inspection.")
	}

	level := model.RiskLow
	if len(flags) >= 3 {
		level = model.RiskHigh
	} else if len(flags) > 0 {
		level = model.RiskMedium
	}

	if len(flags) == 0 {
		flags = []string{"No critical red flags detected from provided inputs."}
	}

	return model.RiskAssessment{
		RiskLevel: level,
		Flags:     flags,
		RecommendedQuestions: []string{
			"Can you share service records for the last 2 years?",
			"Any accident history, open recalls, or pending repairs?",
			"Can I have an independent mechanic inspection before purchase?",
		},
	}
}

func FallbackNegotiation(listing model.Listing) model.NegotiationPlan {
	return model.NegotiationPlan{
		TargetOffer:   math.Round(listing.Price * 0.92),
		WalkAwayPrice: math.Round(listing.Price * 1.02),
		TalkingPoints: []string{
			"Comparable listings in nearby zip codes are priced lower.",
			"Use mileage and expected maintenance as negotiation leverage.",
			"Request pre-purchase inspection and adjust offer if repairs are needed.",
		},
	}
}

func FallbackQa(listing model.Listing, question string) model.QaResponse {
	generic := fmt.Sprintf("Based on this listing (%d %s %s), verify records, inspect thoroughly, and compare local comps before committing.",
		listing.Year, listing.Make, listing.Model)

	if strings.TrimSpace(question) == "" {
		return model.QaResponse{Answer: generic}
	}
	if strings.Contains(strings.ToLower(question), "good deal") {
		return model.QaResponse{Answer: "Potentially, but confirm with market comps and a mechanic inspection before finalizing."}
	}
	return model.QaResponse{Answer: generic}
}
