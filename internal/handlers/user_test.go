package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"robfu/internal/models"

	"github.com/gin-gonic/gin"
)

func TestUpdateMe(t *testing.T) {
	r := setupTest(t)
	taken, _ := seedUser(t, models.RoleWarehouse)
	_, token := seedUser(t, models.RoleDesigner)

	w := doJSON(t, r, http.MethodPut, "/api/auth/me", token, gin.H{
		"name": "Ana Laine", "email": "ANA.new@robfu.test",
	})
	wantStatus(t, w, http.StatusOK)

	var me models.User
	decode(t, w, &me)
	if me.Email != "ana.new@robfu.test" {
		t.Fatalf("email not normalized: %s", me.Email)
	}

	// cannot take someone else's email
	w = doJSON(t, r, http.MethodPut, "/api/auth/me", token, gin.H{"email": taken.Email})
	wantStatus(t, w, http.StatusBadRequest)
}

func uploadAvatar(t *testing.T, r *gin.Engine, token, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("fake image bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/me/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAvatarUploadAndFetch(t *testing.T) {
	r := setupTest(t)
	user, token := seedUser(t, models.RoleDesigner)

	w := uploadAvatar(t, r, token, "notes.pdf")
	wantStatus(t, w, http.StatusBadRequest)

	w = uploadAvatar(t, r, token, "face.png")
	wantStatus(t, w, http.StatusOK)

	var resp struct {
		AvatarURL string `json:"avatar_url"`
	}
	decode(t, w, &resp)
	if resp.AvatarURL != "/api/avatars/"+user.UserID+".png" {
		t.Fatalf("avatar url = %s", resp.AvatarURL)
	}

	// fetching the avatar needs no token
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, resp.AvatarURL, nil))
	wantStatus(t, w2, http.StatusOK)
	if w2.Body.String() != "fake image bytes" {
		t.Fatalf("avatar payload = %q", w2.Body.String())
	}
}
