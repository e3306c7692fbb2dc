package jobs

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tripspark/internal/pkg/response"
	apperrors "tripspark/pkg/errors"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// GetJob returns the current status of an asynchronous recommendation job
// @Summary Get job status
// @Description Poll the status and progress of an asynchronous recommendation job
// @Tags jobs
// @Produce json
// @Param jobId path string true "Job ID"
// @Success 200 {object} response.SuccessResponse{data=Job}
// @Failure 404 {object} response.ErrorResponse
// @Router /jobs/{jobId} [get]
func (h *Handler) GetJob(c *gin.Context) {
	jobID := c.Param("jobId")

	job, err := h.store.Get(jobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrJobNotFound) {
			response.NotFound(c, "Job not found", "JOB_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch job", "INTERNAL_ERROR")
		return
	}

	response.Success(c, job)
}
