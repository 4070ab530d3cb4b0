package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Program types
const (
	ProgramTypePoints   = "Points"
	ProgramTypeCashback = "Cashback"
	ProgramTypeBundle   = "Bundle"
)

type LoyaltyProgram struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name   string `gorm:"not null"`
	Type   string `gorm:"type:varchar(20);not null"` // Points, Cashback or Bundle
	Reward string
	Rule   string `gorm:"type:text"`

	gorm.Model
}

func (p *LoyaltyProgram) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
