package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WorkoutWalk     = "walk"
	WorkoutPlay     = "play"
	WorkoutTraining = "training"
)

type Workout struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	PetID        uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	ActivityType string    `gorm:"size:20;not null" json:"activity_type"`
	// Duration is in minutes.
	Duration int       `gorm:"not null" json:"duration"`
	Distance *float64  `gorm:"type:decimal(5,2)" json:"distance"`
	Date     time.Time `gorm:"type:date;not null" json:"date"`
	Notes    *string   `gorm:"size:1000" json:"notes"`
}

func (w *Workout) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
