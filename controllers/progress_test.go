package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"glowloop-backend/config"
	"glowloop-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressResponse struct {
	PointsEarned         int  `json:"pointsEarned"`
	PointsNeeded         int  `json:"pointsNeeded"`
	PointsProgress       int  `json:"pointsProgress"`
	VisitsCount          int  `json:"visitsCount"`
	VisitsTillNextReward int  `json:"visitsTillNextReward"`
	VisitsProgress       int  `json:"visitsProgress"`
	LastVisit            *time.Time               `json:"lastVisit"`
	AvailableRewards     []map[string]interface{} `json:"availableRewards"`
	ClaimedRewards       []map[string]interface{} `json:"claimedRewards"`
}

func TestProgressFreshClient(t *testing.T) {
	r, user, _ := setupTest(t)
	client := createTestClient(t, user, "Marina Silva")

	w := doRequest(t, r, http.MethodGet, "/progress/"+client.ID.String(), "", nil)
	mustStatus(t, w, http.StatusOK)

	var resp progressResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 0, resp.PointsEarned)
	assert.Equal(t, models.PointsPerReward, resp.PointsNeeded)
	assert.Equal(t, 0, resp.VisitsCount)
	assert.Equal(t, 10, resp.VisitsTillNextReward)
	assert.Nil(t, resp.LastVisit)
	assert.Empty(t, resp.AvailableRewards)
	assert.Empty(t, resp.ClaimedRewards)
}

func TestProgressVisitCadence(t *testing.T) {
	r, user, _ := setupTest(t)
	client := createTestClient(t, user, "Emma Johnson")

	for i := 0; i < 23; i++ {
		visit := models.Visit{
			UserID:    user.ID,
			ClientID:  client.ID,
			Service:   "Manicure",
			Value:     45,
			VisitDate: time.Now().AddDate(0, 0, -i),
		}
		require.NoError(t, config.DB.Create(&visit).Error)
	}

	w := doRequest(t, r, http.MethodGet, "/progress/"+client.ID.String(), "", nil)
	mustStatus(t, w, http.StatusOK)

	var resp progressResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 23, resp.VisitsCount)
	assert.Equal(t, 7, resp.VisitsTillNextReward)
	assert.Equal(t, 30, resp.VisitsProgress)
}

func TestProgressPointsAndBuckets(t *testing.T) {
	r, user, _ := setupTest(t)
	client := createTestClient(t, user, "Sophia Martinez")

	program := models.LoyaltyProgram{
		UserID: user.ID,
		Name:   "Visit Points",
		Type:   models.ProgramTypePoints,
		Reward: "Free Service",
	}
	require.NoError(t, config.DB.Create(&program).Error)

	points := 27
	open := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
		Points:    &points,
	}
	require.NoError(t, config.DB.Create(&open).Error)

	claimedAt := time.Now()
	claimed := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
		Claimed:   true,
		ClaimedAt: &claimedAt,
	}
	require.NoError(t, config.DB.Create(&claimed).Error)

	w := doRequest(t, r, http.MethodGet, "/progress/"+client.ID.String(), "", nil)
	mustStatus(t, w, http.StatusOK)

	var resp progressResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 27, resp.PointsEarned)
	// 27/50 rounded
	assert.Equal(t, 54, resp.PointsProgress)
	require.Len(t, resp.AvailableRewards, 1)
	require.Len(t, resp.ClaimedRewards, 1)
	// points estimate: 27 * 0.5
	assert.Equal(t, 13.5, resp.AvailableRewards[0]["estimatedValue"])
	assert.Equal(t, "Visit Points", resp.AvailableRewards[0]["program"])
}

func TestProgressUnknownClient(t *testing.T) {
	r, _, _ := setupTest(t)

	w := doRequest(t, r, http.MethodGet, "/progress/6a6f7e3e-0000-4000-8000-000000000000", "", nil)
	mustStatus(t, w, http.StatusNotFound)
}

func TestClaimRewardPersists(t *testing.T) {
	r, user, _ := setupTest(t)
	client := createTestClient(t, user, "Daniel Wilson")

	program := models.LoyaltyProgram{
		UserID: user.ID,
		Name:   "Haircut Bundle",
		Type:   models.ProgramTypeBundle,
		Reward: "Free Haircut",
	}
	require.NoError(t, config.DB.Create(&program).Error)

	reward := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	path := "/progress/" + client.ID.String() + "/rewards/" + reward.ID.String() + "/claim"

	w := doRequest(t, r, http.MethodPost, path, "", nil)
	mustStatus(t, w, http.StatusOK)

	var stored models.ClientReward
	require.NoError(t, config.DB.First(&stored, "id = ?", reward.ID).Error)
	assert.True(t, stored.Claimed)
	require.NotNil(t, stored.ClaimedAt)

	// Double claim is a conflict
	w = doRequest(t, r, http.MethodPost, path, "", nil)
	mustStatus(t, w, http.StatusConflict)
}

func TestClaimRewardWrongClient(t *testing.T) {
	r, user, _ := setupTest(t)
	client := createTestClient(t, user, "Ana")
	other := createTestClient(t, user, "Bia")

	program := models.LoyaltyProgram{
		UserID: user.ID,
		Name:   "Spa Cashback",
		Type:   models.ProgramTypeCashback,
	}
	require.NoError(t, config.DB.Create(&program).Error)

	reward := models.ClientReward{
		UserID:    user.ID,
		ClientID:  client.ID,
		ProgramID: program.ID,
	}
	require.NoError(t, config.DB.Create(&reward).Error)

	w := doRequest(t, r, http.MethodPost,
		"/progress/"+other.ID.String()+"/rewards/"+reward.ID.String()+"/claim", "", nil)
	mustStatus(t, w, http.StatusNotFound)
}
