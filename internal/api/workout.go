package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/types"
	"github.com/pawtrail/backend/internal/validation"
)

type WorkoutHandler struct {
	pets     *service.PetService
	workouts *service.WorkoutService
}

func NewWorkoutHandler(pets *service.PetService, workouts *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{pets: pets, workouts: workouts}
}

func (h *WorkoutHandler) RegisterRoutes(router *gin.RouterGroup) {
	workouts := router.Group("/pets/:petId/workouts")
	{
		workouts.GET("", h.List)
		workouts.POST("", h.Create)
		workouts.GET("/:workoutId", h.Show)
		workouts.PUT("/:workoutId", h.Update)
		workouts.DELETE("/:workoutId", h.Delete)
	}
}

func (h *WorkoutHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	workouts, err := h.workouts.List(c.Request.Context(), userID, petID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	if err := h.pets.Authorize(c.Request.Context(), userID, petID); err != nil {
		respondServiceError(c, err, "Failed to fetch pet")
		return
	}

	var in types.WorkoutInput
	if !bindInput(c, &in) {
		return
	}

	date, errs := validation.Workout(in)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	workout, err := h.workouts.Create(c.Request.Context(), userID, petID, in, date)
	if err != nil {
		respondServiceError(c, err, "Failed to create workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func (h *WorkoutHandler) Show(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	workout, err := h.workouts.Get(c.Request.Context(), userID, petID, workoutID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	if _, err := h.workouts.Get(c.Request.Context(), userID, petID, workoutID); err != nil {
		respondServiceError(c, err, "Failed to fetch workout")
		return
	}

	var in types.WorkoutInput
	if !bindInput(c, &in) {
		return
	}

	date, errs := validation.Workout(in)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	workout, err := h.workouts.Update(c.Request.Context(), userID, petID, workoutID, in, date)
	if err != nil {
		respondServiceError(c, err, "Failed to update workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

func (h *WorkoutHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	if err := h.workouts.Delete(c.Request.Context(), userID, petID, workoutID); err != nil {
		respondServiceError(c, err, "Failed to delete workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted successfully"})
}
