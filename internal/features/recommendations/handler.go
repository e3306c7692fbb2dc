package recommendations

import (
	"errors"

	"github.com/gin-gonic/gin"

	"tripspark/internal/pkg/pagination"
	"tripspark/internal/pkg/response"
	apperrors "tripspark/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRecommendations generates recommendations synchronously
// @Summary Get travel recommendations
// @Description Fetch the user profile and candidate POIs concurrently, score and rank them
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param destination query string false "Destination city"
// @Param vibes query string false "Comma-joined vibe tags"
// @Param budget query string false "Budget category (low/medium/high)"
// @Param days query int false "Itinerary length in days (default 1)"
// @Success 200 {object} response.SuccessResponse{data=Recommendation}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /recommendations/users/{userId} [get]
func (h *Handler) GetRecommendations(c *gin.Context) {
	var query recommendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	userID := c.Param("userId")

	rec, err := h.service.GetRecommendations(c.Request.Context(), userID, query.toParams())
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Success(c, rec)
}

// StartAsync submits an asynchronous recommendation job
// @Summary Submit an asynchronous recommendation job
// @Description Validate the request, register a job and run the pipeline in the background
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param destination query string false "Destination city"
// @Param vibes query string false "Comma-joined vibe tags"
// @Param budget query string false "Budget category (low/medium/high)"
// @Param days query int false "Itinerary length in days (default 1)"
// @Success 202 {object} response.SuccessResponse{data=AsyncAccepted}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 503 {object} response.ErrorResponse
// @Router /recommendations/users/{userId}/async [post]
func (h *Handler) StartAsync(c *gin.Context) {
	var query recommendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BindError(c, err)
		return
	}

	userID := c.Param("userId")

	jobID, err := h.service.StartAsync(c.Request.Context(), userID, query.toParams())
	if err != nil {
		h.renderError(c, err)
		return
	}

	response.Accepted(c, AsyncAccepted{
		JobID:  jobID,
		Status: "accepted",
	})
}

// GetByID returns a previously generated recommendation
// @Summary Get a stored recommendation
// @Tags recommendations
// @Produce json
// @Param recId path string true "Recommendation ID"
// @Success 200 {object} response.SuccessResponse{data=Recommendation}
// @Failure 404 {object} response.ErrorResponse
// @Router /recommendations/{recId} [get]
func (h *Handler) GetByID(c *gin.Context) {
	rec, err := h.service.GetByID(c.Request.Context(), c.Param("recId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recommendation not found", "RECOMMENDATION_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to fetch recommendation", "DATABASE_ERROR")
		return
	}

	response.Success(c, rec)
}

// Delete removes a previously generated recommendation
// @Summary Delete a stored recommendation
// @Tags recommendations
// @Param recId path string true "Recommendation ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /recommendations/{recId} [delete]
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("recId"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Recommendation not found", "RECOMMENDATION_NOT_FOUND")
			return
		}
		response.InternalServerError(c, "Failed to delete recommendation", "DATABASE_ERROR")
		return
	}

	response.NoContent(c)
}

// History lists a user's stored recommendations
// @Summary List a user's recommendation history
// @Tags recommendations
// @Produce json
// @Param userId path string true "User ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} response.PaginatedResponse{data=[]Recommendation}
// @Router /users/{userId}/recommendations [get]
func (h *Handler) History(c *gin.Context) {
	userID := c.Param("userId")
	page := pagination.FromQuery(c.Query("page"), c.Query("limit"))

	recs, total, err := h.service.History(c.Request.Context(), userID, page.Page, page.Limit)
	if err != nil {
		response.InternalServerError(c, "Failed to fetch history", "DATABASE_ERROR")
		return
	}

	response.Paginated(c, recs, total, page.Limit, page.Page)
}

// renderError maps pipeline errors onto the API error taxonomy
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUserNotFound):
		response.NotFound(c, "User not found", "USER_NOT_FOUND")
	case errors.Is(err, apperrors.ErrDestinationUnknown):
		response.BadRequest(c, "Destination not recognized", "UNKNOWN_DESTINATION")
	case errors.Is(err, apperrors.ErrUpstreamDown):
		response.ServiceUnavailable(c, "Upstream service unavailable", "UPSTREAM_UNAVAILABLE")
	default:
		if agg, ok := apperrors.AsAggregate(err); ok {
			response.ErrorWithDetails(c, 500, "Failed to aggregate recommendation data", "AGGREGATE_FAILURE", agg.Branches)
			return
		}
		response.InternalServerError(c, "Failed to generate recommendations", "INTERNAL_ERROR")
	}
}
