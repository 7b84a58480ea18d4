package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"robfu/internal/auth"
	"robfu/internal/config"
	"robfu/internal/database"
	"robfu/internal/handlers"
	"robfu/internal/models"
	"robfu/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// setupTest wires the full router against a fresh in-memory database.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	database.DB = db

	cfg := &config.Config{
		JWTSecret:   testSecret,
		UploadDir:   t.TempDir(),
		AvatarDir:   t.TempDir(),
		SenderEmail: "noreply@robfu.test",
		CORSOrigins: "*",
	}
	handlers.Setup(cfg)
	return server.NewRouter(cfg)
}

// seedUser inserts a user directly and returns it with a valid token.
func seedUser(t *testing.T, role models.UserRole) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		UserID:       uuid.NewString(),
		Name:         "Test " + string(role),
		Email:        fmt.Sprintf("%s-%s@robfu.test", role, uuid.NewString()[:8]),
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	token, err := auth.CreateToken(user.UserID, testSecret)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d; want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

// uploadDocument posts a multipart upload with a small fake payload.
func uploadDocument(t *testing.T, r *gin.Engine, token, projectID, docType, filename string) *httptest.ResponseRecorder {
	t.Helper()
	return uploadDocumentTo(t, r, token, projectID, docType, filename, "local")
}

func uploadDocumentTo(t *testing.T, r *gin.Engine, token, projectID, docType, filename, storageType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("project_id", projectID)
	_ = mw.WriteField("document_type", docType)
	_ = mw.WriteField("storage_type", storageType)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte("test file payload")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// createProject runs the create endpoint as the given designer.
func createProject(t *testing.T, r *gin.Engine, token string, designDays int) models.Project {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/projects", token, gin.H{
		"name":                  "Oak wardrobe",
		"client_name":           "Acme Interiors",
		"design_estimated_days": designDays,
	})
	wantStatus(t, w, http.StatusOK)

	var p models.Project
	decode(t, w, &p)
	return p
}
