package wallapop

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/wallaseek/wallaseek/internal/domain"
)

// DefaultBaseURL is the marketplace search endpoint.
const DefaultBaseURL = "https://api.wallapop.com/api/v3/search"

const (
	paramKeywords   = "keywords"
	paramMinPrice   = "min_sale_price"
	paramMaxPrice   = "max_sale_price"
	paramOrderBy    = "order_by"
	paramTimeFilter = "time_filter"
	paramCursor     = "start_cursor"
	paramLatitude   = "latitude"
	paramLongitude  = "longitude"
)

// Geo is the search origin sent with every query.
type Geo struct {
	Latitude  float64
	Longitude float64
}

var DefaultGeo = Geo{Latitude: 43.318611, Longitude: 11.330556}

// BuildSearchURL constructs the first-page query URL for the criteria.
// Pure function of its inputs.
func BuildSearchURL(c domain.Criteria, geo Geo, baseURL string) string {
	q := url.Values{}
	q.Set("source", "search_box")
	q.Set(paramKeywords, domain.CleanText(c.ProductName))

	// The API takes whole-unit prices only; fractions truncate.
	if c.MinPrice != nil {
		q.Set(paramMinPrice, strconv.Itoa(int(*c.MinPrice)))
	}
	if c.MaxPrice != nil {
		q.Set(paramMaxPrice, strconv.Itoa(int(*c.MaxPrice)))
	}

	// An unrecognized sort order silently falls back to newest. The live
	// API behaves the same way, so this stays a fallback and not an error.
	order := c.OrderBy
	if !order.IsValid() {
		order = domain.SortNewest
	}
	q.Set(paramOrderBy, string(order))

	if c.TimeFilter != "" {
		q.Set(paramTimeFilter, string(c.TimeFilter))
	}

	q.Set(paramLatitude, strconv.FormatFloat(geo.Latitude, 'f', -1, 64))
	q.Set(paramLongitude, strconv.FormatFloat(geo.Longitude, 'f', -1, 64))

	return strings.TrimSuffix(baseURL, "/") + "?" + q.Encode()
}

// nextPageURL rewrites current with the pagination cursor, dropping
// parameters that only make sense on the first request.
func nextPageURL(current, cursor string) (string, error) {
	u, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(paramCursor, cursor)
	q.Del("since")
	q.Del("next_page")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
