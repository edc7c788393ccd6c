package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pawtrail/backend/internal/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", h.Stats)
}

// DashboardStats aggregates counts across the caller's pets only.
type DashboardStats struct {
	PetsCount          int64 `json:"petsCount"`
	HealthRecordsCount int64 `json:"healthRecordsCount"`
	WorkoutsCount      int64 `json:"workoutsCount"`
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	db := h.db.WithContext(c.Request.Context())
	var stats DashboardStats

	if err := db.Model(&models.Pet{}).
		Where("user_id = ?", userID).
		Count(&stats.PetsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	if err := db.Model(&models.HealthRecord{}).
		Joins("JOIN pets ON pets.id = health_records.pet_id").
		Where("pets.user_id = ?", userID).
		Count(&stats.HealthRecordsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	if err := db.Model(&models.Workout{}).
		Joins("JOIN pets ON pets.id = workouts.pet_id").
		Where("pets.user_id = ?", userID).
		Count(&stats.WorkoutsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
