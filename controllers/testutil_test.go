package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/routes"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTest wires an in-memory database and the full router, returning the
// router plus a registered user and a valid token for it.
func setupTest(t *testing.T) (*gin.Engine, models.User, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Visit{},
		&models.Service{},
		&models.LoyaltyProgram{},
		&models.ClientReward{},
		&models.GreetingLog{},
	))

	config.DB = db

	user := models.User{
		Email:    "pro@example.com",
		Password: "password123",
		Name:     "Marina",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID.String())
	require.NoError(t, err)

	return routes.SetupRouter(), user, token
}

// doRequest performs a request against the router, marshalling body to JSON
// when present and attaching the bearer token when set.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createTestClient(t *testing.T, user models.User, name string) models.Client {
	t.Helper()
	client := models.Client{UserID: user.ID, Name: name}
	require.NoError(t, config.DB.Create(&client).Error)
	return client
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status, body: %s", w.Body.String())
}
