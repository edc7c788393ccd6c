package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/types"
	"github.com/pawtrail/backend/internal/validation"
)

type PetHandler struct {
	pets *service.PetService
}

func NewPetHandler(pets *service.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

func (h *PetHandler) RegisterRoutes(router *gin.RouterGroup) {
	pets := router.Group("/pets")
	{
		pets.GET("", h.List)
		pets.POST("", h.Create)
		pets.GET("/:petId", h.Show)
		pets.PUT("/:petId", h.Update)
		pets.DELETE("/:petId", h.Delete)
	}
}

// photoUpload pulls an optional photo file part out of a multipart
// request, sniffs its real content type and checks the size ceiling.
func photoUpload(c *gin.Context) (*service.PhotoUpload, validation.Errors) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, nil
	}
	fh, err := c.FormFile("photo")
	if err != nil {
		// No photo part; the photo is optional.
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, validation.Errors{"photo": {"The photo could not be read."}}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, validation.Errors{"photo": {"The photo could not be read."}}
	}

	mimeType := http.DetectContentType(data)
	if errs := validation.Photo(int64(len(data)), mimeType); errs.Any() {
		return nil, errs
	}
	return &service.PhotoUpload{Data: data, ContentType: mimeType}, nil
}

func (h *PetHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	pets, err := h.pets.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch pets"})
		return
	}
	c.JSON(http.StatusOK, pets)
}

func (h *PetHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}

	var in types.PetInput
	if !bindInput(c, &in) {
		return
	}

	errs := validation.Pet(in)
	photo, photoErrs := photoUpload(c)
	mergeErrors(errs, photoErrs)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	pet, err := h.pets.Create(c.Request.Context(), userID, in, photo)
	if err != nil {
		respondServiceError(c, err, "Failed to create pet")
		return
	}
	c.JSON(http.StatusCreated, pet)
}

func (h *PetHandler) Show(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	pet, err := h.pets.Get(c.Request.Context(), userID, petID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch pet")
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	// Guard before validation so an unauthorized caller learns nothing
	// about the payload rules.
	if err := h.pets.Authorize(c.Request.Context(), userID, petID); err != nil {
		respondServiceError(c, err, "Failed to fetch pet")
		return
	}

	var in types.PetInput
	if !bindInput(c, &in) {
		return
	}

	errs := validation.Pet(in)
	photo, photoErrs := photoUpload(c)
	mergeErrors(errs, photoErrs)
	if errs.Any() {
		respondValidation(c, errs)
		return
	}

	pet, err := h.pets.Update(c.Request.Context(), userID, petID, in, photo)
	if err != nil {
		respondServiceError(c, err, "Failed to update pet")
		return
	}
	c.JSON(http.StatusOK, pet)
}

func (h *PetHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthenticated"})
		return
	}
	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	if err := h.pets.Delete(c.Request.Context(), userID, petID); err != nil {
		respondServiceError(c, err, "Failed to delete pet")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pet deleted successfully"})
}
