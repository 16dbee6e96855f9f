package importer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/models"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupImportRouter(runner *fakeBatchRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewImportHandler(NewImportService(runner))
	handler.RegisterRoutes(router)
	return router
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := security.GenerateJWT("1", "admin", "tester")
	assert.NoError(t, err)
	return "Bearer " + token
}

func TestImportEndpointRequiresToken(t *testing.T) {
	router := setupImportRouter(&fakeBatchRunner{})

	req := httptest.NewRequest(http.MethodPost, "/assets/import", strings.NewReader("x"))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestPreviewEndpoint(t *testing.T) {
	runner := &fakeBatchRunner{}
	router := setupImportRouter(runner)

	payload := "Serial Number,Code Prefix,Category\nSN-001,LAP,Laptop\nSN-002,LAP,\n"
	req := httptest.NewRequest(http.MethodPost, "/assets/import/preview", strings.NewReader(payload))
	req.Header.Set("Authorization", authHeader(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var result models.BatchResult
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 2, result.TotalRequested)
	assert.Equal(t, 1, result.CreatedCount)
	assert.Equal(t, 1, result.FailedCount)
	assert.Empty(t, result.CreatedAssets)
	assert.Equal(t, 0, runner.calls)
}

func TestImportEndpointCommits(t *testing.T) {
	runner := &fakeBatchRunner{}
	router := setupImportRouter(runner)

	payload := "Serial Number,Code Prefix,Category\nSN-001,LAP,Laptop\n"
	req := httptest.NewRequest(http.MethodPost, "/assets/import", strings.NewReader(payload))
	req.Header.Set("Authorization", authHeader(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, runner.calls)

	var result models.BatchResult
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	assert.Equal(t, 1, result.CreatedCount)
}

func TestImportEndpointHardError(t *testing.T) {
	runner := &fakeBatchRunner{}
	router := setupImportRouter(runner)

	req := httptest.NewRequest(http.MethodPost, "/assets/import", strings.NewReader("Serial Number,Code Prefix\nSN-001,LAP\n"))
	req.Header.Set("Authorization", authHeader(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 0, runner.calls)
}

func TestImportEndpointEmptyBody(t *testing.T) {
	router := setupImportRouter(&fakeBatchRunner{})

	req := httptest.NewRequest(http.MethodPost, "/assets/import", strings.NewReader(""))
	req.Header.Set("Authorization", authHeader(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
