package controller

import (
	"encoding/json"
	"net/http"

	"dealscope-backend/auth"
	"dealscope-backend/model"
	"dealscope-backend/usecase"
)

type GarageController struct {
	garage   *usecase.GarageUsecase
	analysis *usecase.AnalysisUsecase
	sessions *auth.Manager
}

func NewGarageController(garage *usecase.GarageUsecase, analysis *usecase.AnalysisUsecase, sessions *auth.Manager) *GarageController {
	return &GarageController{garage: garage, analysis: analysis, sessions: sessions}
}

// HandleGarage serves GET (list), POST (save) and DELETE (?listing_id=) on
// /user/garage.
func (c *GarageController) HandleGarage(w http.ResponseWriter, r *http.Request) {
	writeCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	uid := c.sessions.UserID(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		items, err := c.garage.List(uid)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []model.SavedListing{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var req listingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		item, err := c.garage.Save(uid, req.Listing)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"item": item})

	case http.MethodDelete:
		listingID := r.URL.Query().Get("listing_id")
		if listingID == "" {
			http.Error(w, "listing_id required", http.StatusBadRequest)
			return
		}
		if err := c.garage.Delete(uid, listingID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleHistory lists the user's past analyses, newest first.
func (c *GarageController) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if !preflight(w, r, http.MethodGet) {
		return
	}

	uid := c.sessions.UserID(r)
	if uid == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := c.analysis.ListHistory(uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}
