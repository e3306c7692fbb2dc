package userservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "tripspark/pkg/errors"
)

func TestGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/u1":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"u1","username":"ines","email":"ines@example.com"}`))
		case "/users/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	user, err := client.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
	require.Equal(t, "ines", user.Username)

	_, err = client.GetUser(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = client.GetUser(context.Background(), "boom")
	require.ErrorIs(t, err, apperrors.ErrUpstreamDown)
}

func TestGetUser_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "u1")
	require.ErrorIs(t, err, apperrors.ErrUpstreamDown)
}

func TestGetUser_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, 10*time.Millisecond)
	require.NoError(t, err)

	_, err = client.GetUser(context.Background(), "u1")
	require.ErrorIs(t, err, apperrors.ErrUpstreamDown)
}

func TestGetPreferences_DegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	profile := client.GetPreferences(context.Background(), "u1")
	require.NotNil(t, profile)
	require.Equal(t, "u1", profile.UserID)
	require.Empty(t, profile.PreferredVibes)
	require.Empty(t, profile.SpendingPreference)
	require.Nil(t, profile.DailyBudgetLimit)
}

func TestGetPreferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/u1/preferences", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"preferredVibes":["art"],"favoriteFoods":["ramen"],"spendingPreference":"low","dailyBudgetLimit":80}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, time.Second)
	require.NoError(t, err)

	profile := client.GetPreferences(context.Background(), "u1")
	require.Equal(t, []string{"art"}, profile.PreferredVibes)
	require.Equal(t, "low", profile.SpendingPreference)
	require.NotNil(t, profile.DailyBudgetLimit)
	require.Equal(t, 80.0, *profile.DailyBudgetLimit)
}

func TestProfileInterests(t *testing.T) {
	profile := &Profile{
		PreferredVibes:     []string{"art", "history"},
		FavoriteFoods:      []string{"ramen", "art"}, // overlap deduped
		FavoriteActivities: []string{"hiking"},
	}
	require.Equal(t, []string{"art", "history", "ramen", "hiking"}, profile.Interests())
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("", time.Second)
	require.Error(t, err)
}
