// Package catalog is the HTTP client for the upstream Catalog/POI service.
// Candidate lookups are best-effort and degrade to an empty list; city
// validation is fatal on any failure.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "tripspark/pkg/errors"
)

// POI is a candidate point of interest as returned by the catalog service.
// The vibes/activities/food fields are raw comma-joined tag strings that the
// scoring engine normalizes into tag sets.
type POI struct {
	ID               string   `json:"id" bson:"id"`
	Name             string   `json:"name" bson:"name"`
	City             string   `json:"city" bson:"city"`
	Country          string   `json:"country" bson:"country"`
	Latitude         *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	Vibes            string   `json:"vibes" bson:"vibes"`
	Activities       string   `json:"activities" bson:"activities"`
	Food             string   `json:"food" bson:"food"`
	SpendingCategory string   `json:"spendingCategory,omitempty" bson:"spendingCategory,omitempty"`
	Budget           *float64 `json:"budget,omitempty" bson:"budget,omitempty"`
	Rating           *float64 `json:"rating,omitempty" bson:"rating,omitempty"`
}

// Client calls the upstream Catalog service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("catalog service base URL is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// GetPOIs fetches candidate POIs filtered by city, tags and budget. The call
// is best-effort: transport failures and non-2xx replies yield an empty list.
func (c *Client) GetPOIs(ctx context.Context, city string, vibes []string, budget string) []POI {
	query := url.Values{}
	if city != "" {
		query.Set("city", city)
	}
	if len(vibes) > 0 {
		query.Set("tags", strings.Join(vibes, ","))
	}
	if budget != "" {
		query.Set("budget", budget)
	}

	endpoint := c.baseURL + "/pois"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil
	}

	var pois []POI
	if err := json.NewDecoder(resp.Body).Decode(&pois); err != nil {
		return nil
	}

	return pois
}

// ValidateCity checks that the catalog recognizes a destination. Any failure,
// transport included, is reported as an unrecognized destination.
func (c *Client) ValidateCity(ctx context.Context, name string) error {
	endpoint := fmt.Sprintf("%s/cities/%s", c.baseURL, url.PathEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("destination %q: %w", name, apperrors.ErrDestinationUnknown)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("destination %q: %w", name, apperrors.ErrDestinationUnknown)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("destination %q: %w", name, apperrors.ErrDestinationUnknown)
	}

	return nil
}
