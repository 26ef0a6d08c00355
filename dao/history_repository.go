package dao

import (
	"database/sql"
	"encoding/json"

	"dealscope-backend/model"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Insert(entry *model.HistoryEntry) error {
	listingJSON, err := json.Marshal(entry.Listing)
	if err != nil {
		return err
	}

	var scoreJSON, riskJSON []byte
	if entry.DealScore != nil {
		if scoreJSON, err = json.Marshal(entry.DealScore); err != nil {
			return err
		}
	}
	if entry.Risk != nil {
		if riskJSON, err = json.Marshal(entry.Risk); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO history_entries (id, user_id, listing_json, score_json, risk_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, entry.ID, entry.UserID, listingJSON, scoreJSON, riskJSON, entry.CreatedAt)
	return err
}

func (r *HistoryRepository) ListByUser(userID string) ([]model.HistoryEntry, error) {
	query := `
		SELECT id, user_id, listing_json, score_json, risk_json, created_at
		FROM history_entries
		WHERE user_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var entry model.HistoryEntry
		var listingJSON, scoreJSON, riskJSON []byte

		if err := rows.Scan(&entry.ID, &entry.UserID, &listingJSON, &scoreJSON, &riskJSON, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(listingJSON, &entry.Listing); err != nil {
			return nil, err
		}
		if len(scoreJSON) > 0 {
			entry.DealScore = &model.DealScore{}
			if err := json.Unmarshal(scoreJSON, entry.DealScore); err != nil {
				return nil, err
			}
		}
		if len(riskJSON) > 0 {
			entry.Risk = &model.RiskAssessment{}
			if err := json.Unmarshal(riskJSON, entry.Risk); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
