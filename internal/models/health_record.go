package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	HealthRecordVaccination = "vaccination"
	HealthRecordVetVisit    = "vet_visit"
	HealthRecordMedication  = "medication"
	HealthRecordAllergy     = "allergy"
)

type HealthRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	PetID       uuid.UUID `gorm:"type:uuid;not null;index" json:"pet_id"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"size:1000" json:"description"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Veterinarian *string  `gorm:"size:255" json:"veterinarian"`
	// Meaningful when Type is "medication", but accepted for any type.
	MedicationName *string `gorm:"size:255" json:"medication_name"`
	Notes          *string `gorm:"size:1000" json:"notes"`
}

func (r *HealthRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
