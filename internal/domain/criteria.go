package domain

import "strings"

// DefaultMaxItems bounds a search when the caller does not set a budget.
const DefaultMaxItems = 100

type SortOrder string

const (
	SortNewest         SortOrder = "newest"
	SortPriceLowToHigh SortOrder = "price_low_to_high"
	SortPriceHighToLow SortOrder = "price_high_to_low"
)

func (s SortOrder) IsValid() bool {
	switch s {
	case SortNewest, SortPriceLowToHigh, SortPriceHighToLow:
		return true
	}
	return false
}

// TimeFilter is passed to the API verbatim. The set of accepted values is
// not fully specified upstream, so it is deliberately not validated here.
type TimeFilter string

const (
	TimeToday     TimeFilter = "today"
	TimeLastWeek  TimeFilter = "lastWeek"
	TimeLastMonth TimeFilter = "lastMonth"
)

// Criteria describes one search. Built once per call and treated as
// immutable after Sanitize.
type Criteria struct {
	ProductName      string
	Keywords         []string
	ExcludedKeywords []string
	MinPrice         *float64
	MaxPrice         *float64
	MaxItems         int
	OrderBy          SortOrder
	TimeFilter       TimeFilter
}

func (c *Criteria) Validate() error {
	if strings.TrimSpace(c.ProductName) == "" {
		return ErrEmptyProductName
	}
	if c.MinPrice != nil && c.MaxPrice != nil && *c.MinPrice > *c.MaxPrice {
		return ErrInvalidPriceRange
	}
	return nil
}

// Sanitize cleans the keyword lists for matching, drops entries that clean
// to nothing, and fills the item budget default.
func (c *Criteria) Sanitize() {
	c.ProductName = strings.TrimSpace(c.ProductName)
	c.Keywords = cleanAll(c.Keywords)
	c.ExcludedKeywords = cleanAll(c.ExcludedKeywords)
	if c.MaxItems <= 0 {
		c.MaxItems = DefaultMaxItems
	}
}

func cleanAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if cleaned := CleanText(t); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

// CleanText lowercases, trims and collapses internal whitespace.
func CleanText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
