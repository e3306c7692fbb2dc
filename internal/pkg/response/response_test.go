package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestSuccessAndErrorResponses(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]string{"foo": "bar"})
	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "success", body["status"])
	require.Contains(t, body, "data")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Error(c, 400, "bad request", "BAD_REQ")
	require.Equal(t, 400, w.Code)
	var bodyErr map[string]any
	err = json.Unmarshal(w.Body.Bytes(), &bodyErr)
	require.NoError(t, err)
	require.Equal(t, "bad request", bodyErr["error"])
	require.Equal(t, "BAD_REQ", bodyErr["code"])
}

func TestAcceptedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Accepted(c, map[string]string{"jobId": "abc"})
	require.Equal(t, 202, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "accepted", body["status"])
	data := body["data"].(map[string]any)
	require.Equal(t, "abc", data["jobId"])
}

func TestErrorWithDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ErrorWithDetails(c, 500, "aggregation failed", "AGGREGATE_FAILURE", map[string]string{
		"profile": "user service unreachable",
	})
	require.Equal(t, 500, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "AGGREGATE_FAILURE", body["code"])
	details := body["details"].(map[string]any)
	require.Equal(t, "user service unreachable", details["profile"])
}

func TestPaginatedResponse(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	items := []map[string]any{{"id": 1}, {"id": 2}}
	Paginated(c, items, 2, 10, 1)

	require.Equal(t, 200, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "success", body["status"])
	require.Equal(t, float64(2), body["total"])
	require.Equal(t, float64(10), body["limit"])
	require.Equal(t, float64(1), body["page"])
}
