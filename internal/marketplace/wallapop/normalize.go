package wallapop

import (
	"go.uber.org/zap"

	"github.com/wallaseek/wallaseek/internal/domain"
	"github.com/wallaseek/wallaseek/internal/marketplace"
)

const (
	itemLinkBase   = "https://it.wallapop.com/item/"
	sellerLinkBase = "https://it.wallapop.com/user/"
)

// Normalize validates one raw listing and reshapes it into a domain
// listing. A nil return means a required field was missing; the API
// routinely emits partial records, so that is a silent skip, not an error.
func (c *Client) Normalize(raw marketplace.RawListing) *domain.Listing {
	if raw.ID == "" {
		c.logger.Debug("skipping listing without id")
		return nil
	}

	// Location by priority: city, else region, else country code.
	var location string
	if raw.Location != nil {
		switch {
		case raw.Location.City != "":
			location = raw.Location.City
		case raw.Location.Region != "":
			location = raw.Location.Region
		case raw.Location.CountryCode != "":
			location = raw.Location.CountryCode
		}
	}

	if raw.Title == "" || raw.Description == "" || raw.WebSlug == "" || raw.UserID == "" ||
		raw.Price == nil || raw.Price.Amount == nil || location == "" {
		c.logger.Debug("listing missing required fields", zap.String("id", raw.ID))
		return nil
	}

	l := &domain.Listing{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Price: domain.Price{
			Amount:   *raw.Price.Amount,
			Currency: raw.Price.Currency,
		},
		Location:   location,
		SellerID:   raw.UserID,
		Reserved:   raw.Flags.Reserved,
		Link:       itemLinkBase + raw.WebSlug,
		SellerLink: sellerLinkBase + raw.UserID,
	}

	if t, ok := raw.CreatedAt.Time(); ok {
		l.CreatedAt = &t
	} else {
		c.logger.Debug("listing has no usable creation date", zap.String("id", raw.ID))
	}

	l.MainImage, l.Images = extractImages(raw.Images)
	return l
}

// extractImages picks one URL per image by size preference. The main image
// comes from the first entry only, so it can be empty even when later
// entries carry URLs.
func extractImages(images []marketplace.RawImage) (main string, all []string) {
	if len(images) == 0 {
		return "", nil
	}
	main = pickImageURL(images[0].URLs)
	for _, img := range images {
		if u := pickImageURL(img.URLs); u != "" {
			all = append(all, u)
		}
	}
	return main, all
}

func pickImageURL(u marketplace.RawImageURLs) string {
	switch {
	case u.Big != "":
		return u.Big
	case u.Medium != "":
		return u.Medium
	case u.Original != "":
		return u.Original
	case u.Small != "":
		return u.Small
	}
	return ""
}
