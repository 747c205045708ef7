package marketplace

import (
	"encoding/json"
	"time"
)

// RawListing is the typed projection of one item as the search API returns
// it. Nothing here is guaranteed to be present; pointer fields are the ones
// whose absence must be distinguishable from a zero value.
type RawListing struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	WebSlug     string       `json:"web_slug"`
	Price       *RawPrice    `json:"price"`
	UserID      string       `json:"user_id"`
	Location    *RawLocation `json:"location"`
	Flags       RawFlags     `json:"flags"`
	CreatedAt   EpochMillis  `json:"created_at"`
	Images      []RawImage   `json:"images"`
}

type RawPrice struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type RawLocation struct {
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryCode string `json:"country_code"`
}

type RawFlags struct {
	Reserved bool `json:"reserved"`
}

type RawImage struct {
	URLs RawImageURLs `json:"urls"`
}

type RawImageURLs struct {
	Big      string `json:"big"`
	Medium   string `json:"medium"`
	Original string `json:"original"`
	Small    string `json:"small"`
}

// EpochMillis is a millisecond timestamp that tolerates junk: a value that
// is not a number reads as zero instead of failing the whole listing.
type EpochMillis int64

func (e *EpochMillis) UnmarshalJSON(b []byte) error {
	var v int64
	if err := json.Unmarshal(b, &v); err == nil {
		*e = EpochMillis(v)
	}
	return nil
}

// Time reports the timestamp as a UTC instant; ok is false when the
// timestamp was missing or unreadable.
func (e EpochMillis) Time() (time.Time, bool) {
	if e == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(e)).UTC(), true
}
