package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loyalty accrual constants.
const (
	// PointsPerReward is how many points a client needs for the next reward.
	PointsPerReward = 50
	// VisitsPerReward is the every-N-visits bonus cadence.
	VisitsPerReward = 10
	// PointValue is the estimated monetary value of a single point.
	PointValue = 0.5
)

// ClientReward records points/visits a client accrued under a loyalty program.
type ClientReward struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProgramID uuid.UUID `gorm:"type:uuid;index;not null"`

	Points *int
	Visits *int

	Claimed   bool `gorm:"default:false"`
	ClaimedAt *time.Time

	Client  Client         `gorm:"foreignKey:ClientID"`
	Program LoyaltyProgram `gorm:"foreignKey:ProgramID"`

	gorm.Model
}

func (r *ClientReward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// EstimatedValue is the placeholder monetary value of a reward row: points times
// the per-point value, zero when no points are recorded.
func (r *ClientReward) EstimatedValue() float64 {
	if r.Points == nil {
		return 0
	}
	return float64(*r.Points) * PointValue
}
