package filter

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/wallaseek/wallaseek/internal/domain"
)

// Thresholds are the 0-100 fuzzy score cutoffs per match target.
type Thresholds struct {
	Title       int
	Description int
	Excluded    int
}

var DefaultThresholds = Thresholds{Title: 75, Description: 65, Excluded: 85}

// Decision is the outcome of running one listing through the rule chain.
// Score stays 0 when no keywords were supplied.
type Decision struct {
	Pass                 bool
	Score                int
	MatchedInDescription bool
}

type Engine struct {
	thresholds Thresholds
}

func New(t Thresholds) *Engine {
	if t == (Thresholds{}) {
		t = DefaultThresholds
	}
	return &Engine{thresholds: t}
}

// Evaluate runs the rules in order: reservation, excluded terms, keywords,
// price. The order is part of the contract — price gates inclusion but only
// after keyword scoring has run, so a price miss still produced a score.
func (e *Engine) Evaluate(l *domain.Listing, c domain.Criteria) Decision {
	if l.Reserved {
		return Decision{}
	}

	// Excluded terms match against the raw title+description; keywords
	// below match against the cleaned text. Asymmetric on purpose.
	fullText := l.Title + " " + l.Description
	for _, term := range c.ExcludedKeywords {
		if term == "" {
			continue
		}
		if fuzzy.PartialRatio(term, fullText) >= e.thresholds.Excluded {
			return Decision{}
		}
	}

	var d Decision
	keywords := nonEmpty(c.Keywords)
	if len(keywords) == 0 {
		d.Pass = true
	} else {
		title := domain.CleanText(l.Title)
		desc := domain.CleanText(l.Description)

		for _, kw := range keywords {
			if s := fuzzy.PartialRatio(kw, title); s > e.thresholds.Title {
				d.Pass = true
				if s > d.Score {
					d.Score = s
					d.MatchedInDescription = false
				}
			}
			if s := fuzzy.PartialRatio(kw, desc); s > e.thresholds.Description {
				d.Pass = true
				if s > d.Score {
					d.Score = s
					d.MatchedInDescription = true
				}
			}
		}
		if !d.Pass {
			return Decision{}
		}
	}

	if c.MinPrice != nil && l.Price.Amount < *c.MinPrice {
		return Decision{}
	}
	if c.MaxPrice != nil && l.Price.Amount > *c.MaxPrice {
		return Decision{}
	}

	return d
}

func nonEmpty(terms []string) []string {
	out := terms[:0:0]
	for _, t := range terms {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
