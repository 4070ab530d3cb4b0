// controllers/progress.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"time"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type progressReward struct {
	ID             string     `json:"id"`
	Program        string     `json:"program"`
	Reward         string     `json:"reward"`
	Claimed        bool       `json:"claimed"`
	ClaimedAt      *time.Time `json:"claimedAt,omitempty"`
	EstimatedValue float64    `json:"estimatedValue"`
}

// GetClientProgress serves the public loyalty progress page for a client. Any
// holder of the link can view it; no authentication is required.
func GetClientProgress(c *gin.Context) {
	clientUUID, ok := pathUUID(c, "clientId")
	if !ok {
		return
	}

	var client models.Client
	if err := config.DB.First(&client, "id = ?", clientUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var visits []models.Visit
	if err := config.DB.Where("client_id = ?", client.ID).
		Order("visit_date DESC").Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	var rewards []models.ClientReward
	if err := config.DB.Preload("Program").Where("client_id = ?", client.ID).
		Order("created_at DESC").Find(&rewards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	pointsEarned := 0
	for _, r := range rewards {
		if r.Points != nil {
			pointsEarned += *r.Points
		}
	}

	visitsCount := len(visits)
	visitsTillNextReward := models.VisitsPerReward - visitsCount%models.VisitsPerReward
	if visitsTillNextReward < 0 {
		visitsTillNextReward = 0
	}

	pointsProgress := int(math.Min(100, math.Round(float64(pointsEarned)/float64(models.PointsPerReward)*100)))
	visitsProgress := int(math.Min(100, math.Round(float64(models.VisitsPerReward-visitsTillNextReward)/float64(models.VisitsPerReward)*100)))

	var lastVisit *time.Time
	if len(visits) > 0 {
		lastVisit = &visits[0].VisitDate
	}

	available := make([]progressReward, 0)
	claimed := make([]progressReward, 0)
	for _, r := range rewards {
		entry := progressReward{
			ID:             r.ID.String(),
			Program:        r.Program.Name,
			Reward:         r.Program.Reward,
			Claimed:        r.Claimed,
			ClaimedAt:      r.ClaimedAt,
			EstimatedValue: r.EstimatedValue(),
		}
		if r.Claimed {
			claimed = append(claimed, entry)
		} else {
			available = append(available, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"client": gin.H{
			"id":    client.ID,
			"name":  client.Name,
			"email": client.Email,
			"phone": client.Phone,
		},
		"pointsEarned":         pointsEarned,
		"pointsNeeded":         models.PointsPerReward,
		"pointsProgress":       pointsProgress,
		"visitsCount":          visitsCount,
		"visitsTillNextReward": visitsTillNextReward,
		"visitsProgress":       visitsProgress,
		"lastVisit":            lastVisit,
		"availableRewards":     available,
		"claimedRewards":       claimed,
	})
}

// ClaimReward marks a reward as claimed. The claim is persisted, so it
// survives a page reload; claiming an already-claimed reward is a conflict.
func ClaimReward(c *gin.Context) {
	clientUUID, ok := pathUUID(c, "clientId")
	if !ok {
		return
	}

	rewardUUID, ok := pathUUID(c, "rewardId")
	if !ok {
		return
	}

	var reward models.ClientReward
	if err := config.DB.Where("client_id = ? AND id = ?", clientUUID, rewardUUID).
		First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if reward.Claimed {
		utils.RespondWithError(c, http.StatusConflict, "Reward already claimed")
		return
	}

	now := time.Now()
	reward.Claimed = true
	reward.ClaimedAt = &now

	if err := config.DB.Save(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to claim reward")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward claimed successfully"})
}
