package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pawtrail/backend/internal/middleware"
	"github.com/pawtrail/backend/internal/service"
	"github.com/pawtrail/backend/internal/storage"
	"github.com/pawtrail/backend/internal/testhelpers"
)

// setupTestRouter wires the full handler stack against an in-memory
// database and a temp-dir photo store, mirroring the production router.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	photoDir := t.TempDir()

	authService := service.NewAuthService(db, "test-jwt-secret", service.NewMemoryRevocations())
	photoService := service.NewPhotoService(storage.NewLocalStore(photoDir), zap.NewNop().Sugar())
	petService := service.NewPetService(db, photoService)
	recordService := service.NewHealthRecordService(db)
	workoutService := service.NewWorkoutService(db)

	authHandler := NewAuthHandler(authService)
	petHandler := NewPetHandler(petService)
	recordHandler := NewHealthRecordHandler(petService, recordService)
	workoutHandler := NewWorkoutHandler(petService, workoutService)
	dashboardHandler := NewDashboardHandler(db)

	router := gin.New()
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/user", authHandler.CurrentUser)
		petHandler.RegisterRoutes(protected)
		recordHandler.RegisterRoutes(protected)
		workoutHandler.RegisterRoutes(protected)
		dashboardHandler.RegisterRoutes(protected)
	}

	return router, db, photoDir
}

// doJSON performs a JSON request against the test router.
func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// registerTestUser registers a user and returns the issued bearer token.
func registerTestUser(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	if w.Code != 201 {
		t.Fatalf("failed to register test user: status %d body %s", w.Code, w.Body.String())
	}

	token, ok := decodeBody(t, w)["token"].(string)
	if !ok || token == "" {
		t.Fatal("register response missing token")
	}
	return token
}

// createTestPet creates a pet and returns its id.
func createTestPet(t *testing.T, router *gin.Engine, token, name string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/pets", token, map[string]interface{}{
		"name":   name,
		"breed":  "Labrador",
		"age":    3,
		"gender": "male",
	})
	if w.Code != 201 {
		t.Fatalf("failed to create test pet: status %d body %s", w.Code, w.Body.String())
	}

	id, ok := decodeBody(t, w)["id"].(string)
	if !ok || id == "" {
		t.Fatal("create pet response missing id")
	}
	return id
}

// fieldErrors pulls the errors map out of a 422 response.
func fieldErrors(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	errs, ok := decodeBody(t, w)["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no errors map: %s", w.Body.String())
	}
	return errs
}

// pngBytes is a minimal payload that sniffs as image/png.
func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A})
	return data
}
