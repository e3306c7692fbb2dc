package recommendations

import (
	"context"
	"sync"

	"tripspark/internal/pkg/catalog"
	"tripspark/internal/pkg/userservice"
	apperrors "tripspark/pkg/errors"
)

// UserFetcher is the upstream User service surface the pipeline needs
type UserFetcher interface {
	GetUser(ctx context.Context, userID string) (*userservice.User, error)
	GetPreferences(ctx context.Context, userID string) *userservice.Profile
}

// POIProvider is the upstream Catalog service surface the pipeline needs
type POIProvider interface {
	GetPOIs(ctx context.Context, city string, vibes []string, budget string) []catalog.POI
	ValidateCity(ctx context.Context, name string) error
}

type aggregateResult struct {
	Profile    *userservice.Profile
	Candidates []catalog.POI
}

// aggregate fans out to the User and Catalog services concurrently and joins
// both branches before returning. Neither branch cancels the other: both are
// cheap and independent, and a degraded branch still contributes data. A hard
// failure in any branch yields an AggregateError naming the failed branches.
func (s *Service) aggregate(ctx context.Context, userID string, p Params) (*aggregateResult, error) {
	var (
		wg         sync.WaitGroup
		profile    *userservice.Profile
		profileErr error
		candidates []catalog.POI
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		if _, err := s.users.GetUser(ctx, userID); err != nil {
			profileErr = err
			return
		}
		// Preferences degrade to an empty profile on their own
		profile = s.users.GetPreferences(ctx, userID)
	}()

	go func() {
		defer wg.Done()
		// Candidate fetch degrades to an empty list on failure
		candidates = s.catalog.GetPOIs(ctx, p.Destination, p.Vibes, p.Budget)
	}()

	wg.Wait()

	if agg := apperrors.NewAggregateError(map[string]error{
		"profile": profileErr,
	}); agg != nil {
		return nil, agg
	}

	return &aggregateResult{
		Profile:    profile,
		Candidates: candidates,
	}, nil
}
