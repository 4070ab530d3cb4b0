package controllers

import (
	"errors"
	"net/http"
	"strings"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRewardInput defines the expected JSON structure for recording accrual
// under a loyalty program.
type CreateRewardInput struct {
	ClientID  uuid.UUID `json:"clientId" binding:"required"`
	ProgramID uuid.UUID `json:"programId" binding:"required"`
	Points    *int      `json:"points" binding:"omitempty,min=0"`
	Visits    *int      `json:"visits" binding:"omitempty,min=0"`
}

// UpdateRewardInput defines the expected JSON structure for updating accrual
type UpdateRewardInput struct {
	Points *int `json:"points" binding:"omitempty,min=0"`
	Visits *int `json:"visits" binding:"omitempty,min=0"`
}

type rewardResponse struct {
	models.ClientReward
	EstimatedValue float64 `json:"estimatedValue"`
}

func toRewardResponse(r models.ClientReward) rewardResponse {
	return rewardResponse{ClientReward: r, EstimatedValue: r.EstimatedValue()}
}

// CreateReward records accrued points/visits for a client under a program
func CreateReward(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	exists, err := ownedClientExists(userUUID, input.ClientID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	var programCount int64
	if err := config.DB.Model(&models.LoyaltyProgram{}).
		Where("user_id = ? AND id = ?", userUUID, input.ProgramID).
		Count(&programCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if programCount == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Loyalty program not found")
		return
	}

	reward := models.ClientReward{
		UserID:    userUUID,
		ClientID:  input.ClientID,
		ProgramID: input.ProgramID,
		Points:    input.Points,
		Visits:    input.Visits,
	}

	if err := config.DB.Create(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create reward")
		return
	}

	if err := config.DB.Preload("Client").Preload("Program").
		First(&reward, "id = ?", reward.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusCreated, toRewardResponse(reward))
}

// GetRewards retrieves the user's reward rows joined with client and program.
// An optional search term filters by client name.
func GetRewards(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Client").Preload("Program").
		Where("user_id = ?", userUUID).
		Order("created_at DESC")

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"client_id IN (?)",
			config.DB.Model(&models.Client{}).Select("id").
				Where("user_id = ? AND LOWER(name) LIKE ?", userUUID, "%"+strings.ToLower(search)+"%"),
		)
	}

	var rewards []models.ClientReward
	if err := query.Find(&rewards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	response := make([]rewardResponse, 0, len(rewards))
	for _, r := range rewards {
		response = append(response, toRewardResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

// GetReward retrieves a specific reward row by ID
func GetReward(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	rewardUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var reward models.ClientReward
	if err := config.DB.Preload("Client").Preload("Program").
		Where("user_id = ? AND id = ?", userUUID, rewardUUID).
		First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, toRewardResponse(reward))
}

// UpdateReward updates the accrued points/visits on a reward row
func UpdateReward(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	rewardUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateRewardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var reward models.ClientReward
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, rewardUUID).
		First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Points != nil {
		reward.Points = input.Points
	}
	if input.Visits != nil {
		reward.Visits = input.Visits
	}

	if err := config.DB.Save(&reward).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update reward")
		return
	}

	if err := config.DB.Preload("Client").Preload("Program").
		First(&reward, "id = ?", reward.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, toRewardResponse(reward))
}

// DeleteReward soft deletes a reward row
func DeleteReward(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	rewardUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, rewardUUID).
		Delete(&models.ClientReward{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete reward")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Reward not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reward deleted successfully"})
}
