package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"ai-edu-portal/cmd/api/services"
)

func TestListCommunityReportsRejectsInvalidPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/analytics/community?period=yearly", nil)

	// 기간 검증은 저장소 접근 전에 일어나므로 서비스에 실제 의존성이 필요 없다.
	ListCommunityReportsHandler(&services.AnalyticsService{})(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid_period", body["error"])
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return bytes.NewReader(raw)
}

func TestGenerateCommunityReportRejectsInvalidPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admin/analytics/community",
		jsonBody(t, map[string]string{"period": "hourly"}))
	c.Request.Header.Set("Content-Type", "application/json")

	GenerateCommunityReportHandler(&services.AnalyticsService{})(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "invalid_period", body["error"])
}
