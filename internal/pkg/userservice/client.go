// Package userservice is the HTTP client for the upstream User service.
// Profile lookups by id are fatal on not-found; preference lookups are
// best-effort and degrade to an empty profile.
package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	apperrors "tripspark/pkg/errors"
)

// User holds the basic fields returned by the user existence lookup
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is the preference document for a user. All fields are optional;
// an empty profile is a valid degraded result.
type Profile struct {
	UserID             string   `json:"userId" bson:"userId"`
	PreferredVibes     []string `json:"preferredVibes" bson:"preferredVibes"`
	FavoriteActivities []string `json:"favoriteActivities" bson:"favoriteActivities"`
	FavoriteFoods      []string `json:"favoriteFoods" bson:"favoriteFoods"`
	SpendingPreference string   `json:"spendingPreference,omitempty" bson:"spendingPreference,omitempty"`
	DailyBudgetLimit   *float64 `json:"dailyBudgetLimit,omitempty" bson:"dailyBudgetLimit,omitempty"`
}

// Interests returns the union of preferred vibes, favorite foods and favorite
// activities, deduplicated, preserving first-seen order.
func (p *Profile) Interests() []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range [][]string{p.PreferredVibes, p.FavoriteFoods, p.FavoriteActivities} {
		for _, tag := range group {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

// Client calls the upstream User service
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a user service client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("user service base URL is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// GetUser fetches a user by id. Returns ErrUserNotFound on 404 and
// ErrUpstreamDown on transport failures, timeouts and other non-2xx replies.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("user service: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service: %w: %v", apperrors.ErrUpstreamDown, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("user %q: %w", userID, apperrors.ErrUserNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("user service returned %d: %w", resp.StatusCode, apperrors.ErrUpstreamDown)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("user service: decode response: %w", err)
	}
	if user.ID == "" {
		user.ID = userID
	}

	return &user, nil
}

// GetPreferences fetches the preference document for a user. Preferences are
// best-effort: any transport or non-2xx failure yields an empty profile.
func (c *Client) GetPreferences(ctx context.Context, userID string) *Profile {
	empty := &Profile{UserID: userID}

	endpoint := fmt.Sprintf("%s/users/%s/preferences", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return empty
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return empty
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return empty
	}
	profile.UserID = userID

	return &profile
}
