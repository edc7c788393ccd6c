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

type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

func (s *WorkoutService) ownedWorkout(tx *gorm.DB, userID, petID, workoutID uuid.UUID) (*models.Workout, error) {
	if _, err := ownedPet(tx, userID, petID); err != nil {
		return nil, err
	}
	var workout models.Workout
	if err := tx.First(&workout, "id = ? AND pet_id = ?", workoutID, petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return &workout, nil
}

func (s *WorkoutService) List(ctx context.Context, userID, petID uuid.UUID) ([]models.Workout, error) {
	tx := s.db.WithContext(ctx)
	if _, err := ownedPet(tx, userID, petID); err != nil {
		return nil, err
	}
	var workouts []models.Workout
	if err := childrenByDate(tx).Find(&workouts, "pet_id = ?", petID).Error; err != nil {
		return nil, err
	}
	return workouts, nil
}

func (s *WorkoutService) Create(ctx context.Context, userID, petID uuid.UUID, in types.WorkoutInput, date time.Time) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pet, err := ownedPetLocked(tx, userID, petID)
		if err != nil {
			return err
		}
		workout = models.Workout{
			PetID:        pet.ID,
			ActivityType: in.ActivityType,
			Duration:     *in.Duration,
			Distance:     in.Distance,
			Date:         date,
			Notes:        in.Notes,
		}
		return tx.Create(&workout).Error
	})
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (s *WorkoutService) Get(ctx context.Context, userID, petID, workoutID uuid.UUID) (*models.Workout, error) {
	return s.ownedWorkout(s.db.WithContext(ctx), userID, petID, workoutID)
}

func (s *WorkoutService) Update(ctx context.Context, userID, petID, workoutID uuid.UUID, in types.WorkoutInput, date time.Time) (*models.Workout, error) {
	tx := s.db.WithContext(ctx)
	workout, err := s.ownedWorkout(tx, userID, petID, workoutID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"activity_type": in.ActivityType,
		"duration":      *in.Duration,
		"distance":      in.Distance,
		"date":          date,
		"notes":         in.Notes,
	}
	if err := tx.Model(&models.Workout{}).Where("id = ?", workout.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, petID, workoutID)
}

func (s *WorkoutService) Delete(ctx context.Context, userID, petID, workoutID uuid.UUID) error {
	tx := s.db.WithContext(ctx)
	workout, err := s.ownedWorkout(tx, userID, petID, workoutID)
	if err != nil {
		return err
	}
	return tx.Delete(&models.Workout{}, "id = ?", workout.ID).Error
}
