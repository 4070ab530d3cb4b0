package controllers

import (
	"net/http"
	"time"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
)

type birthdayClient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Birthday string `json:"birthday"` // MM-DD
}

// GetOverview returns the dashboard summary: total clients plus clients whose
// birthday falls today or within the next 7 days. Matching is month/day only;
// the year on the stored birthday is ignored.
func GetOverview(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var clients []models.Client
	if err := config.DB.Where("user_id = ?", userUUID).Find(&clients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	now := utils.BeginningOfDay(time.Now())
	today := make([]birthdayClient, 0)
	week := make([]birthdayClient, 0)

	for _, client := range clients {
		if client.Birthday == nil {
			continue
		}
		entry := birthdayClient{
			ID:       client.ID.String(),
			Name:     client.Name,
			Contact:  clientContact(client),
			Birthday: client.Birthday.Format("01-02"),
		}
		if utils.IsBirthdayToday(*client.Birthday, now) {
			today = append(today, entry)
		} else if utils.IsBirthdayInNextDays(*client.Birthday, now, 7) {
			week = append(week, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":   len(clients),
		"todayBirthdays": today,
		"weekBirthdays":  week,
	})
}

func clientContact(client models.Client) string {
	if client.Phone != "" {
		return client.Phone
	}
	return client.Email
}
