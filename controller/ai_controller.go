package controller

import (
	"encoding/json"
	"net/http"

	"dealscope-backend/auth"
	"dealscope-backend/model"
	"dealscope-backend/usecase"
)

// AIController exposes the six analysis operations and the combined analyze
// endpoint. Handlers validate input shape only; the provider guarantees every
// response is a complete entity, so these never return 5xx for AI failures.
type AIController struct {
	usecase  *usecase.AnalysisUsecase
	sessions *auth.Manager
}

func NewAIController(usecase *usecase.AnalysisUsecase, sessions *auth.Manager) *AIController {
	return &AIController{usecase: usecase, sessions: sessions}
}

func writeCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// preflight handles CORS and method filtering; returns false when the request
// is already answered.
func preflight(w http.ResponseWriter, r *http.Request, method string) bool {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

type parseRequest struct {
	model.Listing
	RawText string `json:"raw_text,omitempty"`
}

func (c *AIController) HandleParse(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	listing := c.usecase.ParseListing(r.Context(), req.Listing, req.RawText)
	writeJSON(w, http.StatusOK, listing)
}

type listingRequest struct {
	Listing model.Listing `json:"listing"`
}

func (c *AIController) HandleCompare(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	comps := c.usecase.BuildComparables(r.Context(), req.Listing)
	writeJSON(w, http.StatusOK, comps)
}

type scoreRequest struct {
	Listing     model.Listing      `json:"listing"`
	Comparables []model.Comparable `json:"comparables"`
}

func (c *AIController) HandleScore(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	score := c.usecase.BuildDealScore(r.Context(), req.Listing, req.Comparables)
	writeJSON(w, http.StatusOK, score)
}

func (c *AIController) HandleRisk(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	risk := c.usecase.BuildRiskAssessment(r.Context(), req.Listing)
	writeJSON(w, http.StatusOK, risk)
}

func (c *AIController) HandleNegotiate(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	plan := c.usecase.BuildNegotiationPlan(r.Context(), req.Listing)
	writeJSON(w, http.StatusOK, plan)
}

type qaRequest struct {
	Listing  model.Listing `json:"listing"`
	Question string        `json:"question"`
}

func (c *AIController) HandleQa(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	answer := c.usecase.AnswerQuestion(r.Context(), req.Listing, req.Question)
	writeJSON(w, http.StatusOK, answer)
}

func (c *AIController) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodPost) {
		return
	}
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bundle, err := c.usecase.Analyze(r.Context(), req.Listing, c.sessions.UserID(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}
