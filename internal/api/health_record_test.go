package api

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRecord(t *testing.T, router *gin.Engine, token, petID string, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	w := doJSON(t, router, "POST", "/pets/"+petID+"/health-records", token, body)
	require.Equal(t, 201, w.Code, "create health record: %s", w.Body.String())
	return decodeBody(t, w)
}

func listRecords(t *testing.T, router *gin.Engine, token, petID string) []map[string]interface{} {
	t.Helper()
	w := doJSON(t, router, "GET", "/pets/"+petID+"/health-records", token, nil)
	require.Equal(t, 200, w.Code, "list health records: %s", w.Body.String())
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateHealthRecord(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	record := createTestRecord(t, router, token, petID, map[string]interface{}{
		"type":         "vet_visit",
		"title":        "Annual checkup",
		"date":         "2024-05-10",
		"veterinarian": "Dr. Silva",
	})
	assert.Equal(t, "vet_visit", record["type"])
	assert.Equal(t, "Annual checkup", record["title"])
	assert.Equal(t, petID, record["pet_id"])
	assert.Equal(t, "Dr. Silva", record["veterinarian"])
}

func TestCreateHealthRecordValidation(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	w := doJSON(t, router, "POST", "/pets/"+petID+"/health-records", token, map[string]interface{}{
		"type": "vaccination",
		"date": "2024-05-10",
	})
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, fieldErrors(t, w), "title")

	w = doJSON(t, router, "POST", "/pets/"+petID+"/health-records", token, map[string]interface{}{
		"type":  "grooming",
		"title": "Bath day",
		"date":  "2024-05-10",
	})
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, fieldErrors(t, w), "type")

	w = doJSON(t, router, "POST", "/pets/"+petID+"/health-records", token, map[string]interface{}{
		"type":  "vaccination",
		"title": "Rabies shot",
		"date":  "soon",
	})
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, fieldErrors(t, w), "date")
}

func TestHealthRecordMedicationNameAllowedOnAnyType(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	record := createTestRecord(t, router, token, petID, map[string]interface{}{
		"type":            "vaccination",
		"title":           "Rabies shot",
		"date":            "2024-05-10",
		"medication_name": "Nobivac",
	})
	assert.Equal(t, "Nobivac", record["medication_name"])
}

func TestListHealthRecordsOrdering(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")

	createTestRecord(t, router, token, petID, map[string]interface{}{
		"type": "vaccination", "title": "Old shot", "date": "2024-01-01",
	})
	createTestRecord(t, router, token, petID, map[string]interface{}{
		"type": "vet_visit", "title": "Checkup", "date": "2024-06-01",
	})
	// Same date as the first one; insertion order breaks the tie.
	createTestRecord(t, router, token, petID, map[string]interface{}{
		"type": "allergy", "title": "Pollen", "date": "2024-01-01",
	})

	records := listRecords(t, router, token, petID)
	require.Len(t, records, 3)
	assert.Equal(t, "Checkup", records[0]["title"])
	assert.Equal(t, "Old shot", records[1]["title"])
	assert.Equal(t, "Pollen", records[2]["title"])
}

func TestHealthRecordOwnership(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	owner := registerTestUser(t, router, "Alice", "alice@example.com")
	other := registerTestUser(t, router, "Bob", "bob@example.com")
	petID := createTestPet(t, router, owner, "Rex")
	record := createTestRecord(t, router, owner, petID, map[string]interface{}{
		"type": "vaccination", "title": "Rabies shot", "date": "2024-05-10",
	})
	recordID := record["id"].(string)

	w := doJSON(t, router, "GET", "/pets/"+petID+"/health-records", other, nil)
	assert.Equal(t, 403, w.Code)

	w = doJSON(t, router, "POST", "/pets/"+petID+"/health-records", other, map[string]interface{}{
		"type": "vaccination", "title": "Sneaky", "date": "2024-05-10",
	})
	assert.Equal(t, 403, w.Code)

	w = doJSON(t, router, "GET", "/pets/"+petID+"/health-records/"+recordID, other, nil)
	assert.Equal(t, 403, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["message"])
}

func TestHealthRecordCrossPet(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petA := createTestPet(t, router, token, "Rex")
	petB := createTestPet(t, router, token, "Maya")
	record := createTestRecord(t, router, token, petA, map[string]interface{}{
		"type": "vaccination", "title": "Rabies shot", "date": "2024-05-10",
	})
	recordID := record["id"].(string)

	// The record belongs to petA; addressing it through petB is denied
	// even though the caller owns both pets.
	w := doJSON(t, router, "GET", "/pets/"+petB+"/health-records/"+recordID, token, nil)
	assert.Equal(t, 403, w.Code)
}

func TestUpdateHealthRecord(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")
	record := createTestRecord(t, router, token, petID, map[string]interface{}{
		"type": "medication", "title": "Heartworm pill", "date": "2024-05-10",
	})
	recordID := record["id"].(string)

	w := doJSON(t, router, "PUT", "/pets/"+petID+"/health-records/"+recordID, token, map[string]interface{}{
		"type":            "medication",
		"title":           "Heartworm pill",
		"date":            "2024-06-10",
		"medication_name": "Heartgard",
	})
	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Heartgard", body["medication_name"])

	// Invalid payload against an owned record is a validation failure,
	// not a guard failure.
	w = doJSON(t, router, "PUT", "/pets/"+petID+"/health-records/"+recordID, token, map[string]interface{}{
		"type": "medication",
	})
	assert.Equal(t, 422, w.Code)
	errs := fieldErrors(t, w)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "date")
}

func TestDeleteHealthRecord(t *testing.T) {
	router, _, _ := setupTestRouter(t)
	token := registerTestUser(t, router, "Alice", "alice@example.com")
	petID := createTestPet(t, router, token, "Rex")
	record := createTestRecord(t, router, token, petID, map[string]interface{}{
		"type": "vaccination", "title": "Rabies shot", "date": "2024-05-10",
	})
	recordID := record["id"].(string)

	w := doJSON(t, router, "DELETE", "/pets/"+petID+"/health-records/"+recordID, token, nil)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Health record deleted successfully", decodeBody(t, w)["message"])

	assert.Empty(t, listRecords(t, router, token, petID))

	// Deleting again denies; the record no longer exists.
	w = doJSON(t, router, "DELETE", "/pets/"+petID+"/health-records/"+recordID, token, nil)
	assert.Equal(t, 403, w.Code)
}
