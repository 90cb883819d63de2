package planner_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tripgraph/tripgraph"
	"github.com/tripgraph/tripgraph/planner"
)

func TestSelect_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		entities   tripgraph.Entities
		template   planner.TemplateID
		params     map[string]any
		wantNoPlan bool
	}{
		{
			name:     "hotel name",
			entities: tripgraph.Entities{"hotel_name": "Hilton"},
			template: planner.TemplateHotelByName,
			params:   map[string]any{"hotel_name": "Hilton"},
		},
		{
			name:     "hotel name takes precedence over city",
			entities: tripgraph.Entities{"hotel_name": "Hilton", "city": "Paris"},
			template: planner.TemplateHotelByName,
			params:   map[string]any{"hotel_name": "Hilton"},
		},
		{
			name:     "city",
			entities: tripgraph.Entities{"city": "Paris"},
			template: planner.TemplateHotelsInCity,
			params:   map[string]any{"city": "Paris"},
		},
		{
			name: "visa pair",
			entities: tripgraph.Entities{
				"target_country":  "France",
				"current_country": "Egypt",
			},
			template: planner.TemplateVisaCheck,
			params: map[string]any{
				"from_country": "Egypt",
				"to_country":   "France",
			},
		},
		{
			name:       "target country alone is not enough",
			entities:   tripgraph.Entities{"target_country": "France"},
			wantNoPlan: true,
		},
		{
			name:       "no slots",
			entities:   tripgraph.Entities{},
			wantNoPlan: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := planner.Select(tripgraph.IntentSearch, tt.entities)

			if tt.wantNoPlan {
				if p != nil {
					t.Fatalf("Select() = %+v, want no plan", p)
				}

				return
			}

			if p == nil {
				t.Fatal("Select() = nil, want a plan")
			}

			if p.Template != tt.template {
				t.Errorf("template = %s, want %s", p.Template, tt.template)
			}

			if diff := cmp.Diff(tt.params, p.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_Recommendation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entities tripgraph.Entities
		template planner.TemplateID
		params   map[string]any
	}{
		{
			name:     "age range",
			entities: tripgraph.Entities{"age_min": 20.0, "age_max": 35.0},
			template: planner.TemplateByAgeGroup,
			params:   map[string]any{"age_min": 20.0, "age_max": 35.0},
		},
		{
			name:     "age max defaults to age min plus ten",
			entities: tripgraph.Entities{"age_min": 20.0},
			template: planner.TemplateByAgeGroup,
			params:   map[string]any{"age_min": 20.0, "age_max": 30.0},
		},
		{
			name:     "age takes precedence over traveller type",
			entities: tripgraph.Entities{"age_min": 20.0, "traveller_type": "Family"},
			template: planner.TemplateByAgeGroup,
			params:   map[string]any{"age_min": 20.0, "age_max": 30.0},
		},
		{
			name:     "traveller type",
			entities: tripgraph.Entities{"traveller_type": "Family"},
			template: planner.TemplateByTravellerType,
			params:   map[string]any{"traveller_type": "Family"},
		},
		{
			name:     "attribute keywords map to thresholds",
			entities: tripgraph.Entities{"attributes": []any{"clean", "pool"}},
			template: planner.TemplateByAttributes,
			params: map[string]any{
				"min_cleanliness": 8.0,
				"min_comfort":     0.0,
				"min_facilities":  7.0,
			},
		},
		{
			name:     "unmatched attributes leave thresholds inactive",
			entities: tripgraph.Entities{"attributes": []string{"haunted"}},
			template: planner.TemplateByAttributes,
			params: map[string]any{
				"min_cleanliness": 0.0,
				"min_comfort":     0.0,
				"min_facilities":  0.0,
			},
		},
		{
			name:     "min rating",
			entities: tripgraph.Entities{"min_rating": 8.5},
			template: planner.TemplateByRating,
			params:   map[string]any{"minRating": 8.5, "minStars": 0},
		},
		{
			name:     "min stars alone",
			entities: tripgraph.Entities{"min_stars": 4.0},
			template: planner.TemplateByRating,
			params:   map[string]any{"minRating": 0.0, "minStars": 4},
		},
		{
			name:     "no slots falls back to top rated",
			entities: tripgraph.Entities{},
			template: planner.TemplateTopRated,
			params:   map[string]any{},
		},
		{
			name:     "unknown slots fall through to top rated",
			entities: tripgraph.Entities{"mood": "adventurous"},
			template: planner.TemplateTopRated,
			params:   map[string]any{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := planner.Select(tripgraph.IntentRecommendation, tt.entities)
			if p == nil {
				t.Fatal("Select() = nil, want a plan")
			}

			if p.Template != tt.template {
				t.Errorf("template = %s, want %s", p.Template, tt.template)
			}

			if diff := cmp.Diff(tt.params, p.Params); diff != "" {
				t.Errorf("params mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_Question(t *testing.T) {
	t.Parallel()

	p := planner.Select(tripgraph.IntentQuestion, tripgraph.Entities{"hotel_name": "Hilton"})
	if p == nil {
		t.Fatal("Select() = nil, want a plan")
	}

	if p.Template != planner.TemplateHotelReviews {
		t.Errorf("template = %s, want %s", p.Template, planner.TemplateHotelReviews)
	}

	if p := planner.Select(tripgraph.IntentQuestion, tripgraph.Entities{}); p != nil {
		t.Errorf("Select() without hotel_name = %+v, want no plan", p)
	}
}

func TestSelect_UnknownCategory(t *testing.T) {
	t.Parallel()

	if p := planner.Select("smalltalk", tripgraph.Entities{"city": "Paris"}); p != nil {
		t.Errorf("Select() = %+v, want no plan", p)
	}
}

// Equal entity mappings must plan identically regardless of how the map
// was built.
func TestSelect_Deterministic(t *testing.T) {
	t.Parallel()

	a := tripgraph.Entities{}
	a["hotel_name"] = "Hilton"
	a["city"] = "Paris"
	a["min_rating"] = 9.0

	b := tripgraph.Entities{}
	b["min_rating"] = 9.0
	b["city"] = "Paris"
	b["hotel_name"] = "Hilton"

	for i := 0; i < 50; i++ {
		pa := planner.Select(tripgraph.IntentSearch, a)
		pb := planner.Select(tripgraph.IntentSearch, b)

		if pa.Template != pb.Template {
			t.Fatalf("templates diverged: %s vs %s", pa.Template, pb.Template)
		}

		if diff := cmp.Diff(pa.Params, pb.Params); diff != "" {
			t.Fatalf("params diverged:\n%s", diff)
		}
	}
}

// The visa template itself carries the literal fallback for a missing
// NEEDS_VISA edge; an absent edge must surface as the string, not null.
func TestVisaTemplate_NoVisaLiteral(t *testing.T) {
	t.Parallel()

	p := planner.Select(tripgraph.IntentSearch, tripgraph.Entities{
		"target_country":  "France",
		"current_country": "Egypt",
	})
	if p == nil {
		t.Fatal("Select() = nil, want a plan")
	}

	if !strings.Contains(p.Query, "'No Visa Required'") {
		t.Errorf("visa template missing the no-visa literal:\n%s", p.Query)
	}

	if !strings.Contains(p.Query, "OPTIONAL MATCH") {
		t.Errorf("visa template must optional-match the NEEDS_VISA edge:\n%s", p.Query)
	}
}
