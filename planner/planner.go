// Package planner maps a classified user intent plus its extracted
// entity slots onto exactly one parameterized graph query. Planning is
// a decision table: within each intent category an ordered list of
// guard→build rules is evaluated top to bottom and the first match
// wins. It is a pure function over its inputs — no store access, no
// hidden state.
package planner

import (
	"strings"

	"github.com/tripgraph/tripgraph"
)

// Plan is a selected query template with its bound parameters.
type Plan struct {
	Template TemplateID
	Query    string
	Params   map[string]any
}

// rule pairs a guard over the entity slots with the plan it produces.
type rule struct {
	guard func(tripgraph.Entities) bool
	build func(tripgraph.Entities) *Plan
}

// Select returns the plan for the given intent category and entities,
// or nil when no branch matches. A nil plan is the defined "no plan"
// outcome, not an error; callers treat it as an empty result set.
func Select(category string, e tripgraph.Entities) *Plan {
	var rules []rule

	switch category {
	case tripgraph.IntentSearch:
		rules = searchRules
	case tripgraph.IntentRecommendation:
		rules = recommendationRules
	case tripgraph.IntentQuestion:
		rules = questionRules
	default:
		return nil
	}

	for _, r := range rules {
		if r.guard(e) {
			return r.build(e)
		}
	}

	return nil
}

// Rule order is significant: hotel_name beats city beats the country
// pair, and so on down each list.
var searchRules = []rule{
	{guard: hasString("hotel_name"), build: planHotelByName},
	{guard: hasString("city"), build: planHotelsInCity},
	{guard: bothStrings("target_country", "current_country"), build: planVisaCheck},
}

var recommendationRules = []rule{
	{guard: hasNumber("age_min"), build: planByAgeGroup},
	{guard: hasString("traveller_type"), build: planByTravellerType},
	{guard: hasList("attributes"), build: planByAttributes},
	{guard: anyNumber("min_rating", "min_stars"), build: planByRating},
	{guard: always, build: planTopRated},
}

var questionRules = []rule{
	{guard: hasString("hotel_name"), build: planHotelReviews},
}

func hasString(key string) func(tripgraph.Entities) bool {
	return func(e tripgraph.Entities) bool {
		_, ok := e.String(key)

		return ok
	}
}

func bothStrings(a, b string) func(tripgraph.Entities) bool {
	return func(e tripgraph.Entities) bool {
		_, okA := e.String(a)
		_, okB := e.String(b)

		return okA && okB
	}
}

func hasNumber(key string) func(tripgraph.Entities) bool {
	return func(e tripgraph.Entities) bool {
		_, ok := e.Float(key)

		return ok
	}
}

func anyNumber(keys ...string) func(tripgraph.Entities) bool {
	return func(e tripgraph.Entities) bool {
		for _, key := range keys {
			if _, ok := e.Float(key); ok {
				return true
			}
		}

		return false
	}
}

func hasList(key string) func(tripgraph.Entities) bool {
	return func(e tripgraph.Entities) bool {
		_, ok := e.Strings(key)

		return ok
	}
}

func always(tripgraph.Entities) bool {
	return true
}

func planHotelByName(e tripgraph.Entities) *Plan {
	name, _ := e.String("hotel_name")

	return &Plan{
		Template: TemplateHotelByName,
		Query:    hotelByNameQuery,
		Params:   map[string]any{"hotel_name": name},
	}
}

func planHotelsInCity(e tripgraph.Entities) *Plan {
	city, _ := e.String("city")

	return &Plan{
		Template: TemplateHotelsInCity,
		Query:    hotelsInCityQuery,
		Params:   map[string]any{"city": city},
	}
}

func planVisaCheck(e tripgraph.Entities) *Plan {
	target, _ := e.String("target_country")
	current, _ := e.String("current_country")

	return &Plan{
		Template: TemplateVisaCheck,
		Query:    visaCheckQuery,
		Params: map[string]any{
			"from_country": current,
			"to_country":   target,
		},
	}
}

func planByAgeGroup(e tripgraph.Entities) *Plan {
	ageMin, _ := e.Float("age_min")

	// Default age window is one decade wide.
	ageMax, ok := e.Float("age_max")
	if !ok {
		ageMax = ageMin + 10
	}

	return &Plan{
		Template: TemplateByAgeGroup,
		Query:    byAgeGroupQuery,
		Params: map[string]any{
			"age_min": ageMin,
			"age_max": ageMax,
		},
	}
}

func planByTravellerType(e tripgraph.Entities) *Plan {
	tt, _ := e.String("traveller_type")

	return &Plan{
		Template: TemplateByTravellerType,
		Query:    byTravellerTypeQuery,
		Params:   map[string]any{"traveller_type": tt},
	}
}

// planByAttributes maps attribute keywords onto minimum-threshold
// filters over the hotel base scores. Unmatched attributes are
// ignored; inactive thresholds stay at zero, which filters nothing.
func planByAttributes(e tripgraph.Entities) *Plan {
	attrs, _ := e.Strings("attributes")

	minClean, minComfort, minFacilities := 0.0, 0.0, 0.0

	for _, attr := range attrs {
		a := strings.ToLower(attr)

		if strings.Contains(a, "clean") {
			minClean = 8.0
		}

		if strings.Contains(a, "comfort") {
			minComfort = 8.0
		}

		// Pool and wifi requests approximate to the facilities score.
		if strings.Contains(a, "facilit") || strings.Contains(a, "pool") || strings.Contains(a, "wifi") {
			minFacilities = 7.0
		}
	}

	return &Plan{
		Template: TemplateByAttributes,
		Query:    byAttributesQuery,
		Params: map[string]any{
			"min_cleanliness": minClean,
			"min_comfort":     minComfort,
			"min_facilities":  minFacilities,
		},
	}
}

func planByRating(e tripgraph.Entities) *Plan {
	minRating, ok := e.Float("min_rating")
	if !ok {
		minRating = 0.0
	}

	minStars, ok := e.Int("min_stars")
	if !ok {
		minStars = 0
	}

	return &Plan{
		Template: TemplateByRating,
		Query:    byRatingQuery,
		Params: map[string]any{
			"minRating": minRating,
			"minStars":  minStars,
		},
	}
}

func planTopRated(tripgraph.Entities) *Plan {
	return &Plan{
		Template: TemplateTopRated,
		Query:    topRatedQuery,
		Params:   map[string]any{},
	}
}

func planHotelReviews(e tripgraph.Entities) *Plan {
	name, _ := e.String("hotel_name")

	return &Plan{
		Template: TemplateHotelReviews,
		Query:    hotelReviewsQuery,
		Params:   map[string]any{"hotel_name": name},
	}
}
