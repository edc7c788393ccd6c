package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pawtrail/backend/internal/models"
	"github.com/pawtrail/backend/internal/types"
)

// ownedPet is the ownership guard: the pet must exist and belong to the
// acting user. Both failures collapse into ErrUnauthorized.
func ownedPet(tx *gorm.DB, userID, petID uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := tx.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if pet.UserID != userID {
		return nil, ErrUnauthorized
	}
	return &pet, nil
}

// ownedPetLocked is ownedPet with a row lock. Child inserts and the
// cascade delete both take it inside their transactions, which serializes
// a create racing a cascade on the same pet. SQLite (tests) has no
// FOR UPDATE but is single-writer anyway.
func ownedPetLocked(tx *gorm.DB, userID, petID uuid.UUID) (*models.Pet, error) {
	if tx.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return ownedPet(tx, userID, petID)
}

// childrenByDate orders a pet's sub-records most recent first; equal dates
// keep insertion order.
func childrenByDate(tx *gorm.DB) *gorm.DB {
	return tx.Order("date DESC, created_at ASC")
}

func preloadChildren(tx *gorm.DB) *gorm.DB {
	return tx.Preload("HealthRecords", childrenByDate).Preload("Workouts", childrenByDate)
}

type PetService struct {
	db     *gorm.DB
	photos *PhotoService
}

func NewPetService(db *gorm.DB, photos *PhotoService) *PetService {
	return &PetService{db: db, photos: photos}
}

// Authorize runs the ownership guard without loading relations. Handlers
// call it before validating a payload, so denial always wins over field
// errors.
func (s *PetService) Authorize(ctx context.Context, userID, petID uuid.UUID) error {
	_, err := ownedPet(s.db.WithContext(ctx), userID, petID)
	return err
}

// List returns the user's pets with their health records and workouts.
func (s *PetService) List(ctx context.Context, userID uuid.UUID) ([]models.Pet, error) {
	var pets []models.Pet
	err := preloadChildren(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// Get returns one owned pet with its children.
func (s *PetService) Get(ctx context.Context, userID, petID uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	err := preloadChildren(s.db.WithContext(ctx)).First(&pet, "id = ?", petID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if pet.UserID != userID {
		return nil, ErrUnauthorized
	}
	return &pet, nil
}

// Create persists a new pet for the user. When a photo is supplied it is
// stored first; if the row insert then fails the fresh binary is released
// so no stored asset is left unreferenced.
func (s *PetService) Create(ctx context.Context, userID uuid.UUID, in types.PetInput, photo *PhotoUpload) (*models.Pet, error) {
	pet := models.Pet{
		UserID:          userID,
		Name:            in.Name,
		Breed:           in.Breed,
		Age:             *in.Age,
		Gender:          in.Gender,
		MicrochipNumber: in.MicrochipNumber,
		Notes:           in.Notes,
	}

	if photo != nil {
		key, err := s.photos.Attach(ctx, *photo)
		if err != nil {
			return nil, err
		}
		pet.Photo = &key
	}

	if err := s.db.WithContext(ctx).Create(&pet).Error; err != nil {
		if pet.Photo != nil {
			s.photos.Release(ctx, *pet.Photo)
		}
		return nil, err
	}

	return s.Get(ctx, userID, pet.ID)
}

// Update overwrites the pet's mutable fields. owner_id is never part of
// the update set. Photo replacement follows store-new, swap-pointer,
// release-old: the previous binary is only released after the row points
// at the new one, and release failures are logged, not surfaced.
func (s *PetService) Update(ctx context.Context, userID, petID uuid.UUID, in types.PetInput, photo *PhotoUpload) (*models.Pet, error) {
	pet, err := ownedPet(s.db.WithContext(ctx), userID, petID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":             in.Name,
		"breed":            in.Breed,
		"age":              *in.Age,
		"gender":           in.Gender,
		"microchip_number": in.MicrochipNumber,
		"notes":            in.Notes,
	}

	newKey := ""
	if photo != nil {
		newKey, err = s.photos.Attach(ctx, *photo)
		if err != nil {
			return nil, err
		}
		updates["photo"] = newKey
	}

	err = s.db.WithContext(ctx).
		Model(&models.Pet{}).
		Where("id = ?", pet.ID).
		Updates(updates).Error
	if err != nil {
		if newKey != "" {
			s.photos.Release(ctx, newKey)
		}
		return nil, err
	}

	if newKey != "" && pet.Photo != nil {
		s.photos.Release(ctx, *pet.Photo)
	}

	return s.Get(ctx, userID, petID)
}

// Delete removes the pet and every record referencing it in one
// transaction, then releases its photo. Partial cascades cannot happen:
// either all three deletes commit or none do. The row lock keeps a
// concurrent child insert from slipping in behind the cascade.
func (s *PetService) Delete(ctx context.Context, userID, petID uuid.UUID) error {
	photoKey := ""
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pet, err := ownedPetLocked(tx, userID, petID)
		if err != nil {
			return err
		}
		if pet.Photo != nil {
			photoKey = *pet.Photo
		}
		if err := tx.Where("pet_id = ?", pet.ID).Delete(&models.HealthRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pet_id = ?", pet.ID).Delete(&models.Workout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pet{}, "id = ?", pet.ID).Error
	})
	if err != nil {
		return err
	}

	s.photos.Release(ctx, photoKey)
	return nil
}
