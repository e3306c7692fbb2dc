package recommendations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"tripspark/internal/features/jobs"
	"tripspark/internal/pkg/itinerary"
	"tripspark/internal/pkg/logger"
)

// Pipeline progress checkpoints reported to the job store.
const (
	progressFetching = 0.1
	progressScoring  = 0.5
)

// Store persists generated recommendations
type Store interface {
	Save(ctx context.Context, rec *Recommendation) error
	GetByID(ctx context.Context, id string) (*Recommendation, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, page, limit int) ([]Recommendation, int64, error)
}

// Service orchestrates validation, fan-out, scoring and persistence for the
// synchronous path, and schedules the same pipeline as a background job for
// the asynchronous path.
type Service struct {
	users     UserFetcher
	catalog   POIProvider
	store     Store
	jobs      jobs.Store
	generator itinerary.Generator
	log       *logger.Logger
}

func NewService(users UserFetcher, cat POIProvider, store Store, jobStore jobs.Store, generator itinerary.Generator) *Service {
	return &Service{
		users:     users,
		catalog:   cat,
		store:     store,
		jobs:      jobStore,
		generator: generator,
		log:       logger.WithComponent("recommendations"),
	}
}

// GetRecommendations runs the pipeline synchronously and returns the combined
// response, or a validation / upstream / aggregate error.
func (s *Service) GetRecommendations(ctx context.Context, userID string, p Params) (*Recommendation, error) {
	if err := s.validate(ctx, userID, p); err != nil {
		return nil, err
	}
	return s.pipeline(ctx, userID, p, nil)
}

// StartAsync validates the request, registers an accepted job and schedules
// the pipeline in the background. The returned job id is available for
// polling immediately; failures surface only through the job's state.
func (s *Service) StartAsync(ctx context.Context, userID string, p Params) (string, error) {
	if err := s.validate(ctx, userID, p); err != nil {
		return "", err
	}

	jobID := uuid.New().String()
	s.jobs.Create(jobID)

	go s.runAsync(jobID, userID, p)

	return jobID, nil
}

// validate checks referenced entities before any fan-out work starts: the
// user must exist, and the destination, when given, must be known to the
// catalog.
func (s *Service) validate(ctx context.Context, userID string, p Params) error {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	if p.Destination != "" {
		if err := s.catalog.ValidateCity(ctx, p.Destination); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) runAsync(jobID, userID string, p Params) {
	// Detached from the submission request; upstream calls carry their own
	// per-call timeouts.
	ctx := context.Background()

	rec, err := s.pipeline(ctx, userID, p, func(progress float64) {
		if err := s.jobs.SetProcessing(jobID, progress); err != nil {
			s.log.Warn("job %s: progress update failed: %v", jobID, err)
		}
	})
	if err != nil {
		s.log.Error("job %s: pipeline failed: %v", jobID, err)
		if err := s.jobs.Fail(jobID, err.Error()); err != nil {
			s.log.Warn("job %s: fail update lost: %v", jobID, err)
		}
		return
	}

	if err := s.jobs.Complete(jobID, rec); err != nil {
		s.log.Warn("job %s: completion update lost: %v", jobID, err)
	}
}

// pipeline is the shared fetch-fetch-join-score run. progress, when non-nil,
// is called at each stage checkpoint.
func (s *Service) pipeline(ctx context.Context, userID string, p Params, progress func(float64)) (*Recommendation, error) {
	if progress != nil {
		progress(progressFetching)
	}

	agg, err := s.aggregate(ctx, userID, p)
	if err != nil {
		return nil, err
	}

	if progress != nil {
		progress(progressScoring)
	}

	ranked := scoreCandidates(agg.Candidates, agg.Profile, p.Vibes)

	rec := &Recommendation{
		ID:          uuid.New().String(),
		UserID:      userID,
		Destination: p.Destination,
		Vibes:       p.Vibes,
		Budget:      p.Budget,
		GeneratedAt: time.Now().UTC(),
		Results:     ranked,
		Profile:     agg.Profile,
		Candidates:  agg.Candidates,
	}

	if p.Days > 1 && s.generator != nil {
		plan, err := s.generator.Generate(ctx, p.Destination, p.Vibes, p.Budget, p.Days)
		if err != nil {
			s.log.Warn("itinerary generation failed for %s: %v", rec.ID, err)
		} else {
			rec.Itinerary = plan
		}
	}

	if s.store != nil {
		if err := s.store.Save(ctx, rec); err != nil {
			// Persistence is best-effort: the caller still gets the result
			s.log.Warn("failed to persist recommendation %s: %v", rec.ID, err)
		}
	}

	return rec, nil
}

// GetByID returns a previously persisted recommendation
func (s *Service) GetByID(ctx context.Context, id string) (*Recommendation, error) {
	return s.store.GetByID(ctx, id)
}

// Delete removes a previously persisted recommendation
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// History lists a user's persisted recommendations, newest first
func (s *Service) History(ctx context.Context, userID string, page, limit int) ([]Recommendation, int64, error) {
	return s.store.ListByUser(ctx, userID, page, limit)
}
