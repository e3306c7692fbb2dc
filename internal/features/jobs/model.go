package jobs

import "time"

// Status is the lifecycle state of an asynchronous recommendation job
type Status string

const (
	StatusAccepted   Status = "accepted"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether no further transitions are allowed from s
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job tracks one background recommendation pipeline run
type Job struct {
	ID          string      `json:"jobId"`
	Status      Status      `json:"status"`
	Progress    float64     `json:"progress"`
	Result      interface{} `json:"result,omitempty"`
	Error       string      `json:"error,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}
