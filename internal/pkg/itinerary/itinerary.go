// Package itinerary produces day-by-day itinerary text for a destination.
// The recommendation core treats generators as opaque: it never interprets
// their output beyond JSON extraction.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Item is one itinerary entry within a day
type Item struct {
	TimeOfDay      string `json:"timeOfDay" bson:"timeOfDay"`
	Description    string `json:"description" bson:"description"`
	EstimatedPrice string `json:"estimatedPrice,omitempty" bson:"estimatedPrice,omitempty"`
}

// Plan maps day keys ("day_1", "day_2", ...) to that day's items
type Plan map[string][]Item

// Generator produces an itinerary for a destination
type Generator interface {
	Generate(ctx context.Context, city string, vibes []string, budget string, days int) (Plan, error)
}

// TemplateGenerator builds itineraries from fixed templates with price bands
// chosen by budget category. It stands in for an external text generator.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

func (g *TemplateGenerator) Generate(ctx context.Context, city string, vibes []string, budget string, days int) (Plan, error) {
	if days < 1 {
		days = 1
	}

	interests := "local highlights"
	if len(vibes) > 0 {
		interests = strings.Join(vibes, ", ")
	}

	plan := make(Plan, days)
	for day := 1; day <= days; day++ {
		plan[fmt.Sprintf("day_%d", day)] = []Item{
			{
				TimeOfDay:      "Morning",
				Description:    fmt.Sprintf("Explore %s's attractions", city),
				EstimatedPrice: priceBand(budget, "$0-20", "$20-50", "$50+"),
			},
			{
				TimeOfDay:      "Afternoon",
				Description:    fmt.Sprintf("Visit local spots matching your interests: %s", interests),
				EstimatedPrice: priceBand(budget, "$10-30", "$30-70", "$70+"),
			},
			{
				TimeOfDay:      "Evening",
				Description:    "Dinner and relaxation",
				EstimatedPrice: priceBand(budget, "$15-40", "$40-100", "$100+"),
			},
		}
	}

	return plan, nil
}

func priceBand(budget, low, medium, high string) string {
	switch budget {
	case "low":
		return low
	case "medium":
		return medium
	default:
		return high
	}
}

var jsonBlockRegex = regexp.MustCompile(`(?s)(\{.*\})`)

// Parse extracts a Plan from free-form generator output. It tries a direct
// JSON parse first, then the first {...} block embedded in the text.
// Returns nil when no parseable plan is found.
func Parse(text string) Plan {
	var plan Plan
	if err := json.Unmarshal([]byte(text), &plan); err == nil {
		return plan
	}

	match := jsonBlockRegex.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(match[1]), &plan); err != nil {
		return nil
	}

	return plan
}
