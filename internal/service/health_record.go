package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pawtrail/backend/internal/models"
	"github.com/pawtrail/backend/internal/types"
)

type HealthRecordService struct {
	db *gorm.DB
}

func NewHealthRecordService(db *gorm.DB) *HealthRecordService {
	return &HealthRecordService{db: db}
}

// ownedRecord extends the ownership guard one level: the pet must belong
// to the user and the record must belong to the pet.
func (s *HealthRecordService) ownedRecord(tx *gorm.DB, userID, petID, recordID uuid.UUID) (*models.HealthRecord, error) {
	if _, err := ownedPet(tx, userID, petID); err != nil {
		return nil, err
	}
	var record models.HealthRecord
	if err := tx.First(&record, "id = ? AND pet_id = ?", recordID, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &record, nil
}

func (s *HealthRecordService) List(ctx context.Context, userID, petID uuid.UUID) ([]models.HealthRecord, error) {
	tx := s.db.WithContext(ctx)
	if _, err := ownedPet(tx, userID, petID); err != nil {
		return nil, err
	}
	var records []models.HealthRecord
	if err := childrenByDate(tx).Find(&records, "pet_id = ?", petID).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *HealthRecordService) Create(ctx context.Context, userID, petID uuid.UUID, in types.HealthRecordInput, date time.Time) (*models.HealthRecord, error) {
	var record models.HealthRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pet, err := ownedPetLocked(tx, userID, petID)
		if err != nil {
			return err
		}
		record = models.HealthRecord{
			PetID:          pet.ID,
			Type:           in.Type,
			Title:          in.Title,
			Description:    in.Description,
			Date:           date,
			Veterinarian:   in.Veterinarian,
			MedicationName: in.MedicationName,
			Notes:          in.Notes,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *HealthRecordService) Get(ctx context.Context, userID, petID, recordID uuid.UUID) (*models.HealthRecord, error) {
	return s.ownedRecord(s.db.WithContext(ctx), userID, petID, recordID)
}

func (s *HealthRecordService) Update(ctx context.Context, userID, petID, recordID uuid.UUID, in types.HealthRecordInput, date time.Time) (*models.HealthRecord, error) {
	tx := s.db.WithContext(ctx)
	record, err := s.ownedRecord(tx, userID, petID, recordID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"type":            in.Type,
		"title":           in.Title,
		"description":     in.Description,
		"date":            date,
		"veterinarian":    in.Veterinarian,
		"medication_name": in.MedicationName,
		"notes":           in.Notes,
	}
	if err := tx.Model(&models.HealthRecord{}).Where("id = ?", record.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, petID, recordID)
}

func (s *HealthRecordService) Delete(ctx context.Context, userID, petID, recordID uuid.UUID) error {
	tx := s.db.WithContext(ctx)
	record, err := s.ownedRecord(tx, userID, petID, recordID)
	if err != nil {
		return err
	}
	return tx.Delete(&models.HealthRecord{}, "id = ?", record.ID).Error
}
