package recommendations

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripspark/internal/features/jobs"
	"tripspark/internal/pkg/catalog"
	apperrors "tripspark/pkg/errors"
)

func setupRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := NewHandler(svc)
	api := router.Group("/api/v1")
	{
		recs := api.Group("/recommendations")
		recs.GET("/users/:userId", handler.GetRecommendations)
		recs.POST("/users/:userId/async", handler.StartAsync)
		recs.GET("/:recId", handler.GetByID)
		recs.DELETE("/:recId", handler.Delete)

		api.GET("/users/:userId/recommendations", handler.History)
	}
	return router
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandlerGetRecommendations_Success(t *testing.T) {
	cat := &fakeCatalog{pois: []catalog.POI{{ID: "museum", Vibes: "art", Rating: floatPtr(4)}}}
	svc := NewService(&fakeUsers{}, cat, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/u1?destination=Lisbon&vibes=art,history")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string         `json:"status"`
		Data   Recommendation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "u1", body.Data.UserID)
	assert.Equal(t, "Lisbon", body.Data.Destination)
	require.Len(t, body.Data.Results, 1)
	assert.Equal(t, "museum", body.Data.Results[0].POI.ID)
}

func TestHandlerGetRecommendations_UserNotFound(t *testing.T) {
	users := &fakeUsers{errByCall: map[int]error{0: apperrors.ErrUserNotFound}}
	svc := NewService(users, &fakeCatalog{}, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/ghost")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeError(t, w)["code"])
}

func TestHandlerGetRecommendations_UnknownDestination(t *testing.T) {
	cat := &fakeCatalog{validateErr: apperrors.ErrDestinationUnknown}
	svc := NewService(&fakeUsers{}, cat, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/u1?destination=Atlantis")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_DESTINATION", decodeError(t, w)["code"])
}

func TestHandlerGetRecommendations_UpstreamUnavailable(t *testing.T) {
	users := &fakeUsers{errByCall: map[int]error{0: apperrors.ErrUpstreamDown}}
	svc := NewService(users, &fakeCatalog{}, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/u1")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UPSTREAM_UNAVAILABLE", decodeError(t, w)["code"])
}

func TestHandlerGetRecommendations_AggregateFailure(t *testing.T) {
	users := &fakeUsers{errByCall: map[int]error{2: apperrors.ErrUpstreamDown}}
	svc := NewService(users, &fakeCatalog{}, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/u1")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeError(t, w)
	assert.Equal(t, "AGGREGATE_FAILURE", body["code"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "profile")
}

func TestHandlerGetRecommendations_InvalidDays(t *testing.T) {
	svc := NewService(&fakeUsers{}, &fakeCatalog{}, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/users/u1?days=99")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, w)["code"])
}

func TestHandlerStartAsync_Accepted(t *testing.T) {
	jobStore := newRecordingJobs()
	svc := NewService(&fakeUsers{}, &fakeCatalog{}, &fakeStore{}, jobStore, nil)
	router := setupRouter(svc)

	w := perform(router, "POST", "/api/v1/recommendations/users/u1/async?destination=Lisbon")
	require.Equal(t, http.StatusAccepted, w.Code)

	var body struct {
		Status string        `json:"status"`
		Data   AsyncAccepted `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "accepted", body.Status)
	assert.Equal(t, "accepted", body.Data.Status)
	require.NotEmpty(t, body.Data.JobID)

	// The job is pollable immediately after submission
	_, err := jobStore.Get(body.Data.JobID)
	require.NoError(t, err)

	jobStore.await(t)
}

func TestHandlerStartAsync_ValidationError(t *testing.T) {
	users := &fakeUsers{errByCall: map[int]error{0: apperrors.ErrUserNotFound}}
	svc := NewService(users, &fakeCatalog{}, &fakeStore{}, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "POST", "/api/v1/recommendations/users/ghost/async")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeError(t, w)["code"])
}

func TestHandlerGetByID(t *testing.T) {
	store := &fakeStore{saved: []*Recommendation{{ID: "rec-1", UserID: "u1"}}}
	svc := NewService(&fakeUsers{}, &fakeCatalog{}, store, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/recommendations/rec-1")
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(router, "GET", "/api/v1/recommendations/rec-missing")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RECOMMENDATION_NOT_FOUND", decodeError(t, w)["code"])
}

func TestHandlerDelete(t *testing.T) {
	store := &fakeStore{saved: []*Recommendation{{ID: "rec-1", UserID: "u1"}}}
	svc := NewService(&fakeUsers{}, &fakeCatalog{}, store, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "DELETE", "/api/v1/recommendations/rec-1")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = perform(router, "DELETE", "/api/v1/recommendations/rec-1")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerHistory(t *testing.T) {
	store := &fakeStore{saved: []*Recommendation{
		{ID: "rec-1", UserID: "u1"},
		{ID: "rec-2", UserID: "u1"},
		{ID: "rec-3", UserID: "other"},
	}}
	svc := NewService(&fakeUsers{}, &fakeCatalog{}, store, jobs.NewMemoryStore(), nil)
	router := setupRouter(svc)

	w := perform(router, "GET", "/api/v1/users/u1/recommendations?page=1&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string           `json:"status"`
		Data   []Recommendation `json:"data"`
		Total  int64            `json:"total"`
		Limit  int              `json:"limit"`
		Page   int              `json:"page"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Total)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 10, body.Limit)
}
