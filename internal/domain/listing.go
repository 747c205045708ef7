package domain

import "time"

// SellerPlatform tags every result with the marketplace it came from.
const SellerPlatform = "WALLAPOP"

type Price struct {
	Amount   float64
	Currency string
}

// Listing is a validated marketplace item. Every listing has a non-empty
// ID, Title, Description, Price, Location and SellerID; records missing any
// of those are never materialized.
type Listing struct {
	ID          string
	Title       string
	Description string
	Price       Price
	Location    string
	SellerID    string
	Reserved    bool
	CreatedAt   *time.Time // UTC; nil when the marketplace omitted or mangled the timestamp
	Link        string
	SellerLink  string
	MainImage   string
	Images      []string
}

// Result is one accepted listing plus the filter outcome that admitted it.
type Result struct {
	SearchTerm           string
	Platform             string
	Listing              Listing
	MatchScore           int
	MatchedInDescription bool
}
