package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/types"
	"github.com/pawtrail/backend/internal/validation"
)

type HealthRecordHandler struct {
	pets    *service.PetService
	records *service.HealthRecordService
}

func NewHealthRecordHandler(pets *service.PetService, records *service.HealthRecordService) *HealthRecordHandler {
	return &HealthRecordHandler{pets: pets, records: records}
}

func (h *HealthRecordHandler) RegisterRoutes(router *gin.RouterGroup) {
	records := router.Group("/pets/:petId/health-records")
	{
		records.GET("", h.List)
		records.POST("", h.Create)
		records.GET("/:recordId", h.Show)
		records.PUT("/:recordId", h.Update)
		records.DELETE("/:recordId", h.Delete)
	}
}

func (h *HealthRecordHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	records, err := h.records.List(c.Request.Context(), userID, petID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch health records")
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *HealthRecordHandler) Create(c *gin.Context) {
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

	var in types.HealthRecordInput
	if !bindInput(c, &in) {
		return
	}

	date, errs := validation.HealthRecord(in)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	record, err := h.records.Create(c.Request.Context(), userID, petID, in, date)
	if err != nil {
		respondServiceError(c, err, "Failed to create health record")
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *HealthRecordHandler) Show(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordId")
	if !ok {
		return
	}

	record, err := h.records.Get(c.Request.Context(), userID, petID, recordID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch health record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *HealthRecordHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordId")
	if !ok {
		return
	}

	// Resolve the full chain before touching the payload.
	if _, err := h.records.Get(c.Request.Context(), userID, petID, recordID); err != nil {
		respondServiceError(c, err, "Failed to fetch health record")
		return
	}

	var in types.HealthRecordInput
	if !bindInput(c, &in) {
		return
	}

	date, errs := validation.HealthRecord(in)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	record, err := h.records.Update(c.Request.Context(), userID, petID, recordID, in, date)
	if err != nil {
		respondServiceError(c, err, "Failed to update health record")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *HealthRecordHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}
	recordID, ok := pathID(c, "recordId")
	if !ok {
		return
	}

	if err := h.records.Delete(c.Request.Context(), userID, petID, recordID); err != nil {
		respondServiceError(c, err, "Failed to delete health record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Health record deleted successfully"})
}
