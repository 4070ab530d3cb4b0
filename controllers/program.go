package controllers

import (
	"errors"
	"net/http"
	"strings"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateProgramInput defines the expected JSON structure for creating a loyalty program
type CreateProgramInput struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"required,oneof=Points Cashback Bundle"`
	Reward string `json:"reward"`
	Rule   string `json:"rule"`
}

// UpdateProgramInput defines the expected JSON structure for updating a loyalty program
type UpdateProgramInput struct {
	Name   *string `json:"name"`
	Type   *string `json:"type" binding:"omitempty,oneof=Points Cashback Bundle"`
	Reward *string `json:"reward"`
	Rule   *string `json:"rule"`
}

// CreateProgram creates a new loyalty program
func CreateProgram(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	program := models.LoyaltyProgram{
		UserID: userUUID,
		Name:   input.Name,
		Type:   input.Type,
		Reward: input.Reward,
		Rule:   input.Rule,
	}

	if err := config.DB.Create(&program).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create loyalty program")
		return
	}

	c.JSON(http.StatusCreated, program)
}

// GetPrograms retrieves all loyalty programs for the current user
func GetPrograms(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Where("user_id = ?", userUUID)
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var programs []models.LoyaltyProgram
	if err := query.Order("name").Find(&programs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve loyalty programs")
		return
	}

	if programs == nil {
		programs = []models.LoyaltyProgram{}
	}

	c.JSON(http.StatusOK, programs)
}

// GetProgram retrieves a specific loyalty program by ID
func GetProgram(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	programUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var program models.LoyaltyProgram
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, programUUID).
		First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Loyalty program not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, program)
}

// UpdateProgram updates an existing loyalty program
func UpdateProgram(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	programUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var program models.LoyaltyProgram
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, programUUID).
		First(&program).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Loyalty program not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		program.Name = *input.Name
	}
	if input.Type != nil {
		program.Type = *input.Type
	}
	if input.Reward != nil {
		program.Reward = *input.Reward
	}
	if input.Rule != nil {
		program.Rule = *input.Rule
	}

	if err := config.DB.Save(&program).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update loyalty program")
		return
	}

	c.JSON(http.StatusOK, program)
}

// DeleteProgram soft deletes a loyalty program
func DeleteProgram(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	programUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, programUUID).
		Delete(&models.LoyaltyProgram{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete loyalty program")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Loyalty program not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Loyalty program deleted successfully"})
}
