package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pet belongs to exactly one user. UserID is set once at creation and is
// never written by updates.
type Pet struct {
	ID              uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Breed           string    `gorm:"size:255;not null" json:"breed"`
	Age             int       `gorm:"not null" json:"age"`
	Gender          string    `gorm:"size:10;not null" json:"gender"`
	MicrochipNumber *string   `gorm:"size:255" json:"microchip_number"`
	Notes           *string   `gorm:"size:1000" json:"notes"`
	// Photo is an opaque storage key ("pets/<uuid>.<ext>"); the frontend
	// resolves it to a URL.
	Photo *string `gorm:"size:255" json:"photo"`

	HealthRecords []HealthRecord `gorm:"foreignKey:PetID" json:"health_records"`
	Workouts      []Workout      `gorm:"foreignKey:PetID" json:"workouts"`
}

func (p *Pet) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
