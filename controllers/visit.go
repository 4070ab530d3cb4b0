package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateVisitInput defines the expected JSON structure for recording a visit
type CreateVisitInput struct {
	ClientID  uuid.UUID  `json:"clientId" binding:"required"`
	Service   string     `json:"service" binding:"required"`
	Value     float64    `json:"value" binding:"min=0"`
	VisitDate *time.Time `json:"visitDate"`
}

// UpdateVisitInput defines the expected JSON structure for updating a visit
type UpdateVisitInput struct {
	ClientID  *uuid.UUID `json:"clientId"`
	Service   *string    `json:"service"`
	Value     *float64   `json:"value" binding:"omitempty,min=0"`
	VisitDate *time.Time `json:"visitDate"`
}

// ownedClientExists checks that the given client belongs to the user.
func ownedClientExists(userID, clientID uuid.UUID) (bool, error) {
	var count int64
	err := config.DB.Model(&models.Client{}).
		Where("user_id = ? AND id = ?", userID, clientID).
		Count(&count).Error
	return count > 0, err
}

// CreateVisit records a new visit for one of the user's clients
func CreateVisit(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateVisitInput
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

	visitDate := time.Now()
	if input.VisitDate != nil {
		visitDate = *input.VisitDate
	}

	visit := models.Visit{
		UserID:    userUUID,
		ClientID:  input.ClientID,
		Service:   input.Service,
		Value:     input.Value,
		VisitDate: visitDate,
	}

	if err := config.DB.Create(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create visit")
		return
	}

	if err := config.DB.Preload("Client").First(&visit, "id = ?", visit.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusCreated, visit)
}

// GetVisits retrieves the user's visits, most recent first. An optional search
// term filters by client name.
func GetVisits(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Client").
		Where("user_id = ?", userUUID).
		Order("visit_date DESC")

	if search := c.Query("search"); search != "" {
		query = query.Where(
			"client_id IN (?)",
			config.DB.Model(&models.Client{}).Select("id").
				Where("user_id = ? AND LOWER(name) LIKE ?", userUUID, "%"+strings.ToLower(search)+"%"),
		)
	}

	var visits []models.Visit
	if err := query.Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	if visits == nil {
		visits = []models.Visit{}
	}

	c.JSON(http.StatusOK, visits)
}

// GetVisit retrieves a specific visit by ID
func GetVisit(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	visitUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var visit models.Visit
	if err := config.DB.Preload("Client").
		Where("user_id = ? AND id = ?", userUUID, visitUUID).
		First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, visit)
}

// UpdateVisit updates an existing visit
func UpdateVisit(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	visitUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var input UpdateVisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var visit models.Visit
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, visitUUID).
		First(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		exists, err := ownedClientExists(userUUID, *input.ClientID)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		if !exists {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
			return
		}
		visit.ClientID = *input.ClientID
	}
	if input.Service != nil {
		visit.Service = *input.Service
	}
	if input.Value != nil {
		visit.Value = *input.Value
	}
	if input.VisitDate != nil {
		visit.VisitDate = *input.VisitDate
	}

	if err := config.DB.Save(&visit).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update visit")
		return
	}

	if err := config.DB.Preload("Client").First(&visit, "id = ?", visit.ID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	c.JSON(http.StatusOK, visit)
}

// DeleteVisit soft deletes a visit
func DeleteVisit(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	visitUUID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, visitUUID).
		Delete(&models.Visit{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete visit")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Visit not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Visit deleted successfully"})
}
