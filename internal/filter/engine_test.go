package filter

import (
	"testing"

	"github.com/wallaseek/wallaseek/internal/domain"
)

func fp(v float64) *float64 { return &v }

func listing(opts ...func(*domain.Listing)) *domain.Listing {
	l := &domain.Listing{
		ID:          "A1",
		Title:       "PS5 console bundle",
		Description: "Like new, barely used",
		Price:       domain.Price{Amount: 150, Currency: "EUR"},
		Location:    "Rome",
		SellerID:    "u1",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func TestEngine_Evaluate_Reserved(t *testing.T) {
	e := New(DefaultThresholds)
	l := listing(func(l *domain.Listing) { l.Reserved = true })

	// reserved wins over everything else
	d := e.Evaluate(l, domain.Criteria{ProductName: "ps5", Keywords: []string{"ps5"}})
	if d.Pass {
		t.Error("Evaluate() passed a reserved listing")
	}
}

func TestEngine_Evaluate_ExcludedTerms(t *testing.T) {
	e := New(DefaultThresholds)

	tests := []struct {
		name     string
		excluded []string
		wantPass bool
	}{
		{"exact term in title", []string{"bundle"}, false},
		{"exact term in description", []string{"barely used"}, false},
		{"unrelated term", []string{"xbox series"}, true},
		{"empty list", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Evaluate(listing(), domain.Criteria{ProductName: "ps5", ExcludedKeywords: tt.excluded})
			if d.Pass != tt.wantPass {
				t.Errorf("Evaluate() pass = %v, want %v", d.Pass, tt.wantPass)
			}
		})
	}
}

func TestEngine_Evaluate_NoKeywords(t *testing.T) {
	e := New(DefaultThresholds)

	d := e.Evaluate(listing(), domain.Criteria{ProductName: "ps5"})
	if !d.Pass {
		t.Fatal("Evaluate() should pass when no keywords are supplied")
	}
	if d.Score != 0 {
		t.Errorf("Score = %d, want 0 with no keywords", d.Score)
	}
	if d.MatchedInDescription {
		t.Error("MatchedInDescription should be false with no keywords")
	}
}

func TestEngine_Evaluate_EmptyStringKeywords(t *testing.T) {
	e := New(DefaultThresholds)

	// keywords that clean down to nothing behave like no keywords
	d := e.Evaluate(listing(), domain.Criteria{ProductName: "ps5", Keywords: []string{"", ""}})
	if !d.Pass || d.Score != 0 {
		t.Errorf("Evaluate() = %+v, want pass with score 0", d)
	}
}

func TestEngine_Evaluate_KeywordMatching(t *testing.T) {
	e := New(DefaultThresholds)

	tests := []struct {
		name          string
		keywords      []string
		wantPass      bool
		wantInDesc    bool
		wantScoreOver int
	}{
		{
			name:          "keyword in title",
			keywords:      []string{"console"},
			wantPass:      true,
			wantInDesc:    false,
			wantScoreOver: DefaultThresholds.Title,
		},
		{
			name:          "keyword in description only",
			keywords:      []string{"barely used"},
			wantPass:      true,
			wantInDesc:    true,
			wantScoreOver: DefaultThresholds.Description,
		},
		{
			name:     "no keyword matches",
			keywords: []string{"lawnmower"},
			wantPass: false,
		},
		{
			name:          "one of several matches is enough",
			keywords:      []string{"lawnmower", "ps5"},
			wantPass:      true,
			wantScoreOver: DefaultThresholds.Title,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Evaluate(listing(), domain.Criteria{ProductName: "ps5", Keywords: tt.keywords})
			if d.Pass != tt.wantPass {
				t.Fatalf("Evaluate() pass = %v, want %v", d.Pass, tt.wantPass)
			}
			if !tt.wantPass {
				return
			}
			if d.Score <= tt.wantScoreOver {
				t.Errorf("Score = %d, want > %d", d.Score, tt.wantScoreOver)
			}
			if d.MatchedInDescription != tt.wantInDesc {
				t.Errorf("MatchedInDescription = %v, want %v", d.MatchedInDescription, tt.wantInDesc)
			}
		})
	}
}

func TestEngine_Evaluate_PriceRule(t *testing.T) {
	e := New(DefaultThresholds)

	tests := []struct {
		name     string
		min, max *float64
		wantPass bool
	}{
		{"inside bounds", fp(100), fp(200), true},
		{"below min", fp(160), nil, false},
		{"above max", nil, fp(140), false},
		{"equal to min", fp(150), nil, true},
		{"equal to max", nil, fp(150), true},
		{"no bounds", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.Criteria{
				ProductName: "ps5",
				Keywords:    []string{"ps5"},
				MinPrice:    tt.min,
				MaxPrice:    tt.max,
			}
			d := e.Evaluate(listing(), c)
			if d.Pass != tt.wantPass {
				t.Errorf("Evaluate() pass = %v, want %v", d.Pass, tt.wantPass)
			}
		})
	}
}

func TestEngine_Evaluate_PriceGatesEvenWhenKeywordsMatch(t *testing.T) {
	e := New(DefaultThresholds)

	l := listing(func(l *domain.Listing) { l.Price.Amount = 250 })
	c := domain.Criteria{
		ProductName: "ps5",
		Keywords:    []string{"console", "ps5"},
		MinPrice:    fp(100),
		MaxPrice:    fp(200),
	}
	if d := e.Evaluate(l, c); d.Pass {
		t.Error("Evaluate() passed a listing priced outside the bounds despite keyword match")
	}
}

func TestNew_ZeroThresholdsFallBackToDefaults(t *testing.T) {
	e := New(Thresholds{})
	if e.thresholds != DefaultThresholds {
		t.Errorf("thresholds = %+v, want defaults %+v", e.thresholds, DefaultThresholds)
	}
}
