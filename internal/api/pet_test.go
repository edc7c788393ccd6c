package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrail/backend/internal/validation"
)

// doMultipart performs a multipart form request with an optional file part.
func doMultipart(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, fileName string, file []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("photo", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePet(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, "POST", "/pets", token, map[string]interface{}{
		"name":   "Rex",
		"breed":  "Labrador",
		"age":    3,
		"gender": "male",
	})

	assert.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Rex", body["name"])
	assert.Equal(t, "Labrador", body["breed"])
	assert.Equal(t, float64(3), body["age"])
	assert.NotEmpty(t, body["user_id"])
	// Relations come back eagerly, empty on a fresh pet.
	assert.Contains(t, body, "health_records")
	assert.Empty(t, body["health_records"])
	assert.Empty(t, body["workouts"])
}

func TestCreatePetValidation(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, "POST", "/pets", token, map[string]interface{}{})
	assert.Equal(t, 422, w.Code)
	errs := fieldErrors(t, w)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "breed")
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "gender")

	w = doJSON(t, router, "POST", "/pets", token, map[string]interface{}{
		"name":   "Rex",
		"breed":  "Labrador",
		"age":    40,
		"gender": "robot",
	})
	assert.Equal(t, 422, w.Code)
	errs = fieldErrors(t, w)
	assert.Contains(t, errs, "age")
	assert.Contains(t, errs, "gender")
}

func TestPetOwnership(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	owner := registerTestUser(t, router, "Alice", "alice@example.com")
	other := registerTestUser(t, router, "Bob", "bob@example.com")

	petID := createTestPet(t, router, owner, "Rex")

	w := doJSON(t, router, "GET", "/pets/"+petID, other, nil)
	assert.Equal(t, 403, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["message"])

	w = doJSON(t, router, "DELETE", "/pets/"+petID, other, nil)
	assert.Equal(t, 403, w.Code)

	// A guard failure must win over validation: no field errors leak.
	w = doJSON(t, router, "PUT", "/pets/"+petID, other, map[string]interface{}{"age": 99})
	assert.Equal(t, 403, w.Code)
	assert.NotContains(t, decodeBody(t, w), "errors")
}

func TestUpdatePet(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	w := doJSON(t, router, "PUT", "/pets/"+petID, token, map[string]interface{}{
		"name":   "Rexford",
		"breed":  "Labrador",
		"age":    4,
		"gender": "male",
		"notes":  "now on a diet",
	})
	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Rexford", body["name"])
	assert.Equal(t, float64(4), body["age"])
	assert.Equal(t, "now on a diet", body["notes"])
}

func TestListPetsScopedToOwner(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	alice := registerTestUser(t, router, "Alice", "alice@example.com")
	bob := registerTestUser(t, router, "Bob", "bob@example.com")

	createTestPet(t, router, alice, "Rex")
	createTestPet(t, router, alice, "Maya")
	createTestPet(t, router, bob, "Zoe")

	w := doJSON(t, router, "GET", "/pets", alice, nil)
	assert.Equal(t, 200, w.Code)

	var pets []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pets))
	require.Len(t, pets, 2)
	names := []string{pets[0]["name"].(string), pets[1]["name"].(string)}
	assert.ElementsMatch(t, []string{"Rex", "Maya"}, names)
}

func TestDeletePetCascades(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	w := doJSON(t, router, "POST", "/pets/"+petID+"/health-records", token, map[string]interface{}{
		"type":  "vaccination",
		"title": "Rabies shot",
		"date":  "2024-03-01",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "POST", "/pets/"+petID+"/workouts", token, map[string]interface{}{
		"activity_type": "walk",
		"duration":      30,
		"date":          "2024-03-02",
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, router, "DELETE", "/pets/"+petID, token, nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Pet deleted successfully", decodeBody(t, w)["message"])

	// The pet is gone, so its children are unreachable; absence and lack
	// of permission look identical.
	w = doJSON(t, router, "GET", "/pets/"+petID+"/health-records", token, nil)
	assert.Equal(t, 403, w.Code)
	w = doJSON(t, router, "GET", "/pets/"+petID, token, nil)
	assert.Equal(t, 403, w.Code)
}

func TestCreatePetWithPhoto(t *testing.T) {
	router, _, photoDir := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")

	w := doMultipart(t, router, "POST", "/pets", token, map[string]string{
		"name":   "Rex",
		"breed":  "Labrador",
		"age":    "3",
		"gender": "male",
	}, "rex.png", pngBytes(128))

	assert.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	photo, ok := body["photo"].(string)
	require.True(t, ok, "photo key missing: %s", w.Body.String())
	assert.True(t, strings.HasPrefix(photo, "pets/"))

	_, err := os.Stat(filepath.Join(photoDir, photo))
	assert.NoError(t, err, "photo binary not stored")
}

func TestReplacePetPhoto(t *testing.T) {
	router, _, photoDir := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")

	w := doMultipart(t, router, "POST", "/pets", token, map[string]string{
		"name": "Rex", "breed": "Labrador", "age": "3", "gender": "male",
	}, "rex.png", pngBytes(128))
	require.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	petID := body["id"].(string)
	oldPhoto := body["photo"].(string)

	w = doMultipart(t, router, "PUT", "/pets/"+petID, token, map[string]string{
		"name": "Rex", "breed": "Labrador", "age": "4", "gender": "male",
	}, "rex2.png", pngBytes(256))
	require.Equal(t, 200, w.Code)
	newPhoto := decodeBody(t, w)["photo"].(string)

	assert.NotEqual(t, oldPhoto, newPhoto)
	_, err := os.Stat(filepath.Join(photoDir, newPhoto))
	assert.NoError(t, err, "new photo binary missing")
	_, err = os.Stat(filepath.Join(photoDir, oldPhoto))
	assert.True(t, os.IsNotExist(err), "old photo binary was not released")
}

func TestPetPhotoValidation(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")

	fields := map[string]string{
		"name": "Rex", "breed": "Labrador", "age": "3", "gender": "male",
	}

	// Not an image.
	w := doMultipart(t, router, "POST", "/pets", token, fields, "notes.txt", []byte("plain text, not an image"))
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, fieldErrors(t, w), "photo")

	// Over the 2048 KB ceiling.
	w = doMultipart(t, router, "POST", "/pets", token, fields, "big.png", pngBytes(validation.MaxPhotoBytes+1))
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, fieldErrors(t, w), "photo")
}
