package ai

import (
	"encoding/json"
	"fmt"

	"dealscope-backend/model"
)

// Prompt builders. Each embeds the relevant domain entities as literal JSON
// and states the exact schema expected back, so extraction has a fighting
// chance even with a sloppy model.

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func parsePrompt(input model.Listing, rawText, snapshot string) string {
	extra := ""
	if rawText != "" {
		extra += fmt.Sprintf("\nRaw listing text:\n%s\n", rawText)
	}
	if snapshot != "" {
		extra += fmt.Sprintf("\nPage snapshot:\n%s\n", snapshot)
	}

	return fmt.Sprintf(`You are a used-car listing extractor.

Known fields so far: %s
%s
Extract the complete listing. Return a valid JSON object:
{"title": "<string>", "year": <int>, "make": "<string>", "model": "<string>", "trim": "<string>", "mileage": <int>, "price": <number>, "location": "<string>", "vin": "<string>", "seller_type": "dealer" | "private" | "marketplace", "condition_notes": "<string>"}`,
		mustJSON(input), extra)
}

func comparablesPrompt(listing model.Listing) string {
	return fmt.Sprintf(`You are a used-car market analyst. Find 5 realistic comparable vehicles for this listing.

Listing: %s

Return a valid JSON array of 5 objects:
[{"year": <int>, "make": "<string>", "model": "<string>", "trim": "<string>", "price": <number>, "mileage": <int>, "distance_miles": <int>, "source": "<string>", "relevance": <1-100>}]`,
		mustJSON(listing))
}

func scorePrompt(listing model.Listing, comps []model.Comparable) string {
	return fmt.Sprintf(`You are a used-car pricing analyst. Score this listing against the comparables.

Listing: %s
Comparables: %s

Return a valid JSON object:
{"label": "Great Deal" | "Fair" | "Overpriced", "score": <1-99>, "estimated_fair_range": {"min": <number>, "max": <number>}, "confidence": <0.0-1.0>, "explanation": "<string>"}`,
		mustJSON(listing), mustJSON(comps))
}

func riskPrompt(listing model.Listing) string {
	return fmt.Sprintf(`Evaluate the risk level for this used-car listing and provide 3 concise buyer questions.

Listing: %s

Return a valid JSON object:
{"risk_level": "Low" | "Medium" | "High", "flags": ["<string>"], "recommended_questions": ["<string>", "<string>", "<string>"]}`,
		mustJSON(listing))
}

func negotiationPrompt(listing model.Listing) string {
	return fmt.Sprintf(`You are a car-buying negotiation coach. Build a plan for this listing.

Listing: %s

Return a valid JSON object:
{"target_offer": <number>, "walk_away_price": <number>, "talking_points": ["<string>", "<string>", "<string>"]}`,
		mustJSON(listing))
}

func qaPrompt(listing model.Listing, question string) string {
	return fmt.Sprintf(`Answer the buyer's question about this used-car listing.

Listing: %s
Question: %s

Return a valid JSON object:
{"answer": "<string>"}`,
		mustJSON(listing), question)
}
