package model

// SellerType classifies who is offering the vehicle.
type SellerType string

const (
	SellerDealer      SellerType = "dealer"
	SellerPrivate     SellerType = "private"
	SellerMarketplace SellerType = "marketplace"
)

// ValidSellerType reports whether s is one of the fixed seller categories.
func ValidSellerType(s SellerType) bool {
	switch s {
	case SellerDealer, SellerPrivate, SellerMarketplace:
		return true
	}
	return false
}

// Listing is the vehicle-for-sale record under analysis. Year, mileage and
// price are always populated on records handed to callers, even when inferred.
type Listing struct {
	ID             string     `json:"id"`
	SourceURL      string     `json:"source_url,omitempty"`
	Title          string     `json:"title"`
	Year           int        `json:"year"`
	Make           string     `json:"make"`
	Model          string     `json:"model"`
	Trim           string     `json:"trim,omitempty"`
	Mileage        int        `json:"mileage"`
	Price          float64    `json:"price"`
	Location       string     `json:"location"`
	VIN            string     `json:"vin,omitempty"`
	SellerType     SellerType `json:"seller_type"`
	ConditionNotes string     `json:"condition_notes,omitempty"`
}

// Comparable is a similar vehicle used to benchmark the listing's price.
type Comparable struct {
	ID            string  `json:"id"`
	Year          int     `json:"year"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Trim          string  `json:"trim,omitempty"`
	Price         float64 `json:"price"`
	Mileage       int     `json:"mileage"`
	DistanceMiles int     `json:"distance_miles"`
	Source        string  `json:"source"`
	Relevance     int     `json:"relevance"` // 1-100
}
