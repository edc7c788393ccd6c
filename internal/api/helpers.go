package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/validation"
)

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
}

func respondValidation(c *gin.Context, errs validation.Errors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}

// respondServiceError maps service failures onto the wire contract:
// ownership denials are 403, everything else is a 500 with a generic
// message.
func respondServiceError(c *gin.Context, err error, message string) {
	if errors.Is(err, service.ErrUnauthorized) {
		respondUnauthorized(c)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}

// pathID parses a path parameter as a UUID. A malformed id cannot name an
// owned resource, so it gets the same uniform deny as a missing one.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondUnauthorized(c)
		return uuid.Nil, false
	}
	return id, true
}

// bindInput decodes the request body (JSON, or form fields on multipart)
// into an allow-listed input struct. Type mismatches in JSON payloads are
// reported as 422 field errors so they share a shape with rule violations.
func bindInput(c *gin.Context, dst interface{}) bool {
	var err error
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		err = c.ShouldBind(dst)
	} else {
		err = c.ShouldBindJSON(dst)
	}
	if err == nil || errors.Is(err, io.EOF) {
		// An empty body is validated like any other: every required field
		// is reported missing.
		return true
	}

	errs := validation.Errors{}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		errs[typeErr.Field] = []string{fmt.Sprintf("The %s field must be of type %s.", typeErr.Field, typeErr.Type)}
	} else {
		errs["payload"] = []string{"The request payload is malformed."}
	}
	respondValidation(c, errs)
	return false
}

func mergeErrors(dst, src validation.Errors) {
	for field, msgs := range src {
		dst[field] = append(dst[field], msgs...)
	}
}
