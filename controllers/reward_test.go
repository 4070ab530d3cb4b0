package controllers_test

import (
	"net/http"
	"testing"

	"glowloop-backend/config"
	"glowloop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProgram(t *testing.T, user models.User) models.LoyaltyProgram {
	t.Helper()
	program := models.LoyaltyProgram{
		UserID: user.ID,
		Name:   "Pontos por Visita",
		Type:   models.ProgramTypePoints,
		Reward: "Desconto de R$25",
	}
	require.NoError(t, config.DB.Create(&program).Error)
	return program
}

func TestCreateRewardComputesEstimatedValue(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")
	program := createTestProgram(t, user)

	w := doRequest(t, r, http.MethodPost, "/api/rewards", token, map[string]any{
		"clientId":  client.ID,
		"programId": program.ID,
		"points":    27,
	})
	mustStatus(t, w, http.StatusCreated)

	var created map[string]any
	decodeBody(t, w, &created)
	assert.Equal(t, float64(27), created["Points"])
	assert.Equal(t, 13.5, created["estimatedValue"])
}

func TestCreateRewardUnknownProgram(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")

	w := doRequest(t, r, http.MethodPost, "/api/rewards", token, map[string]any{
		"clientId":  client.ID,
		"programId": "9f1c9e6e-2f1a-4a43-8f2b-8a0f6f0a1b2c",
		"points":    10,
	})
	mustStatus(t, w, http.StatusNotFound)
}

func TestGetRewardsJoinsClientAndProgram(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")
	program := createTestProgram(t, user)

	points := 12
	reward := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
		Points:    &points,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doRequest(t, r, http.MethodGet, "/api/rewards", token, nil)
	mustStatus(t, w, http.StatusOK)

	var rewards []map[string]any
	decodeBody(t, w, &rewards)
	require.Len(t, rewards, 1)
	assert.Equal(t, "Isabela Rocha", rewards[0]["Client"].(map[string]any)["Name"])
	assert.Equal(t, "Pontos por Visita", rewards[0]["Program"].(map[string]any)["Name"])
}

func TestGetRewardByID(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")
	program := createTestProgram(t, user)

	points := 27
	reward := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
		Points:    &points,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doRequest(t, r, http.MethodGet, "/api/rewards/"+reward.ID.String(), token, nil)
	mustStatus(t, w, http.StatusOK)

	var got map[string]any
	decodeBody(t, w, &got)
	assert.Equal(t, 13.5, got["estimatedValue"])
	assert.Equal(t, "Isabela Rocha", got["Client"].(map[string]any)["Name"])
	assert.Equal(t, "Pontos por Visita", got["Program"].(map[string]any)["Name"])

	w = doRequest(t, r, http.MethodGet, "/api/rewards/9f1c9e6e-2f1a-4a43-8f2b-8a0f6f0a1b2c", token, nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestUpdateRewardPoints(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")
	program := createTestProgram(t, user)

	points := 10
	reward := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
		Points:    &points,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doRequest(t, r, http.MethodPut, "/api/rewards/"+reward.ID.String(), token, map[string]any{
		"points": 40,
	})
	mustStatus(t, w, http.StatusOK)

	var updated map[string]any
	decodeBody(t, w, &updated)
	assert.Equal(t, float64(40), updated["Points"])
	assert.Equal(t, 20.0, updated["estimatedValue"])
}

func TestDeleteRewardScopedToOwner(t *testing.T) {
	r, user, token := setupTest(t)
	client := createTestClient(t, user, "Isabela Rocha")
	program := createTestProgram(t, user)

	other := models.User{Email: "other@example.com", Password: "password123", Name: "Outra"}
	require.NoError(t, config.DB.Create(&other).Error)

	reward := models.ClientReward{
		UserID:    other.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doRequest(t, r, http.MethodDelete, "/api/rewards/"+reward.ID.String(), token, nil)
	mustStatus(t, w, http.StatusNotFound)
}
