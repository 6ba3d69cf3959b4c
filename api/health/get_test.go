package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/revlence/transcribe-api/api/health"
	"github.com/revlence/transcribe-api/api/types"
	"github.com/revlence/transcribe-api/internal/database"
	"github.com/revlence/transcribe-api/internal/services/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func performHealthCheck(t *testing.T, deps *types.Dependencies) map[string]interface{} {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", health.Get(deps))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheckNoDependencies(t *testing.T) {
	body := performHealthCheck(t, nil)

	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])

	db := body["database"].(map[string]interface{})
	assert.Equal(t, "not configured", db["status"])

	store := body["object_store"].(map[string]interface{})
	assert.Equal(t, "not configured", store["status"])
}

func TestHealthCheckHealthyDependencies(t *testing.T) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	deps := &types.Dependencies{
		DB:          &database.DB{DB: gormDB},
		ObjectStore: objectstore.NewMemoryStore(),
	}

	body := performHealthCheck(t, deps)

	assert.Equal(t, "ok", body["status"])

	db := body["database"].(map[string]interface{})
	assert.Equal(t, "healthy", db["status"])

	store := body["object_store"].(map[string]interface{})
	assert.Equal(t, "healthy", store["status"])
}
