package jobs

import (
	"sync"
	"time"

	apperrors "tripspark/pkg/errors"
)

// Store tracks job state between the submission endpoint, the background
// pipeline and any number of status pollers. Implementations must be safe
// for concurrent use and must never expose partially-written state.
type Store interface {
	// Create registers a new job in the accepted state.
	Create(id string)

	// Get returns a snapshot of the job, or ErrJobNotFound.
	Get(id string) (*Job, error)

	// SetProcessing moves the job to processing with the given progress.
	// No-op once the job reached a terminal state.
	SetProcessing(id string, progress float64) error

	// Complete moves the job to completed with progress 1.0 and the result.
	// No-op once the job reached a terminal state.
	Complete(id string, result interface{}) error

	// Fail moves the job to failed with an error description.
	// No-op once the job reached a terminal state.
	Fail(id string, reason string) error
}

// MemoryStore is a mutex-guarded in-memory Store. Jobs are retained for the
// lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[string]*Job),
	}
}

func (s *MemoryStore) Create(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs[id] = &Job{
		ID:        id,
		Status:    StatusAccepted,
		Progress:  0.0,
		CreatedAt: time.Now().UTC(),
	}
}

func (s *MemoryStore) Get(id string) (*Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}

	// Return a copy so pollers never observe a half-applied update
	snapshot := *job
	return &snapshot, nil
}

func (s *MemoryStore) SetProcessing(id string, progress float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.Status.Terminal() {
		return nil
	}

	job.Status = StatusProcessing
	job.Progress = progress
	return nil
}

func (s *MemoryStore) Complete(id string, result interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.Status.Terminal() {
		return nil
	}

	now := time.Now().UTC()
	job.Status = StatusCompleted
	job.Progress = 1.0
	job.Result = result
	job.CompletedAt = &now
	return nil
}

func (s *MemoryStore) Fail(id string, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return apperrors.ErrJobNotFound
	}
	if job.Status.Terminal() {
		return nil
	}

	now := time.Now().UTC()
	job.Status = StatusFailed
	job.Error = reason
	job.CompletedAt = &now
	return nil
}
