package integration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pawtrail/backend/internal/models"
	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/storage"
	"github.com/pawtrail/backend/internal/testhelpers"
	"github.com/pawtrail/backend/internal/types"
)

// TestCascadeDeleteUnderConcurrentCreates races child inserts against the
// cascade delete on a real PostgreSQL. The pet row lock serializes them:
// every insert either lands before the cascade (and is swept with it) or
// is denied after it. Either way no orphaned child rows survive.
func TestCascadeDeleteUnderConcurrentCreates(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	user := models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	photos := service.NewPhotoService(storage.NewLocalStore(t.TempDir()), zap.NewNop().Sugar())
	pets := service.NewPetService(db, photos)
	workouts := service.NewWorkoutService(db)

	age := 3
	pet, err := pets.Create(ctx, user.ID, types.PetInput{
		Name: "Rex", Breed: "Labrador", Age: &age, Gender: "male",
	}, nil)
	require.NoError(t, err)

	date := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	duration := 30

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < 20; j++ {
				in := types.WorkoutInput{ActivityType: "walk", Duration: &duration, Date: "2024-05-10"}
				_, err := workouts.Create(ctx, user.ID, pet.ID, in, date)
				if errors.Is(err, service.ErrUnauthorized) {
					// The cascade won; the pet is gone.
					return
				}
				if err != nil {
					t.Errorf("unexpected create error: %v", err)
					return
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		time.Sleep(5 * time.Millisecond)
		if err := pets.Delete(ctx, user.ID, pet.ID); err != nil {
			t.Errorf("cascade delete failed: %v", err)
		}
	}()

	close(start)
	wg.Wait()

	var orphans int64
	require.NoError(t, db.Model(&models.Workout{}).Where("pet_id = ?", pet.ID).Count(&orphans).Error)
	assert.Zero(t, orphans, "cascade left orphaned workouts behind")

	var remaining int64
	require.NoError(t, db.Model(&models.Pet{}).Where("id = ?", pet.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
