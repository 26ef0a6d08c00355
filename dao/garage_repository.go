package dao

import (
	"database/sql"
	"encoding/json"

	"dealscope-backend/model"
)

// GarageRepository stores listings a user pinned for later. The listing itself
// is kept as a JSON column; only identity and ordering fields get their own
// columns.
type GarageRepository struct {
	db *sql.DB
}

func NewGarageRepository(db *sql.DB) *GarageRepository {
	return &GarageRepository{db: db}
}

func (r *GarageRepository) ListByUser(userID string) ([]model.SavedListing, error) {
	query := `
		SELECT id, user_id, listing_id, listing_json, saved_at
		FROM garage_items
		WHERE user_id = ?
		ORDER BY saved_at DESC
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.SavedListing
	for rows.Next() {
		var item model.SavedListing
		var listingID string
		var listingJSON []byte

		if err := rows.Scan(&item.ID, &item.UserID, &listingID, &listingJSON, &item.SavedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(listingJSON, &item.Listing); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert saves the listing for the user, refreshing the row when the same
// listing is saved again.
func (r *GarageRepository) Upsert(item *model.SavedListing) error {
	listingJSON, err := json.Marshal(item.Listing)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO garage_items (id, user_id, listing_id, listing_json, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE listing_json = VALUES(listing_json), saved_at = VALUES(saved_at)
	`
	_, err = r.db.Exec(query, item.ID, item.UserID, item.Listing.ID, listingJSON, item.SavedAt)
	return err
}

func (r *GarageRepository) Delete(userID, listingID string) error {
	_, err := r.db.Exec(`DELETE FROM garage_items WHERE user_id = ? AND listing_id = ?`, userID, listingID)
	return err
}
