// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/utils"

	"github.com/gin-gonic/gin"
)

// reportWindowMonths is the length of the trailing window shown on the charts,
// current month inclusive.
const reportWindowMonths = 10

type monthBucket struct {
	Month   string `json:"month"` // e.g. "Jan 2026"
	Visits  int    `json:"visits"`
	Rewards int    `json:"rewards"`
}

// GetReports builds the trailing 10-month visit and reward series plus the
// scalar summaries for the reports screen. The window always has exactly 10
// buckets in ascending order ending at the current month, empty or not.
func GetReports(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	months := utils.TrailingMonths(now, reportWindowMonths)

	buckets := make([]monthBucket, len(months))
	index := make(map[string]int, len(months))
	for i, m := range months {
		key := m.Format("2006-01")
		buckets[i] = monthBucket{Month: m.Format("Jan 2006")}
		index[key] = i
	}

	var totalClients int64
	if err := config.DB.Model(&models.Client{}).
		Where("user_id = ?", userUUID).Count(&totalClients).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count clients")
		return
	}

	var visits []models.Visit
	if err := config.DB.Where("user_id = ?", userUUID).Find(&visits).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve visits")
		return
	}

	monthVisits := 0
	for _, v := range visits {
		if i, found := index[v.VisitDate.Format("2006-01")]; found {
			buckets[i].Visits++
		}
		if v.VisitDate.Year() == now.Year() && v.VisitDate.Month() == now.Month() {
			monthVisits++
		}
	}

	var rewards []models.ClientReward
	if err := config.DB.Where("user_id = ?", userUUID).Find(&rewards).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rewards")
		return
	}

	for _, r := range rewards {
		if i, found := index[r.CreatedAt.Format("2006-01")]; found {
			buckets[i].Rewards++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"months":       buckets,
		"totalClients": totalClients,
		"monthVisits":  monthVisits,
		"totalRewards": len(rewards),
	})
}
