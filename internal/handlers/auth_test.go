package handlers_test

import (
	"net/http"
	"testing"

	"robfu/internal/models"

	"github.com/gin-gonic/gin"
)

func TestRegisterLoginAndMe(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "Ana@Robfu.Test",
		"password": "Secret123!",
		"name":     "Ana",
		"role":     "designer",
	})
	wantStatus(t, w, http.StatusOK)

	var reg struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        models.User `json:"user"`
	}
	decode(t, w, &reg)
	if reg.TokenType != "bearer" || reg.AccessToken == "" {
		t.Fatalf("bad token response: %+v", reg)
	}
	if reg.User.Email != "ana@robfu.test" {
		t.Fatalf("email not normalized: %s", reg.User.Email)
	}

	// the fresh token works against an authenticated route
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", reg.AccessToken, nil)
	wantStatus(t, w, http.StatusOK)

	var me models.User
	decode(t, w, &me)
	if me.UserID != reg.User.UserID {
		t.Fatalf("me returned %s; want %s", me.UserID, reg.User.UserID)
	}

	// login with the normalized email
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@robfu.test", "password": "Secret123!",
	})
	wantStatus(t, w, http.StatusOK)

	// duplicate registration
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "ana@robfu.test", "password": "Secret123!", "name": "Ana", "role": "designer",
	})
	wantStatus(t, w, http.StatusBadRequest)
}

func TestRegisterRejectsSuperadminRole(t *testing.T) {
	r := setupTest(t)

	for _, role := range []string{"superadmin", "director", ""} {
		w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
			"email": "x@robfu.test", "password": "Secret123!", "name": "X", "role": role,
		})
		wantStatus(t, w, http.StatusBadRequest)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r := setupTest(t)
	user, _ := seedUser(t, models.RoleDesigner)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": user.Email, "password": "not-the-password",
	})
	wantStatus(t, w, http.StatusUnauthorized)
}

func TestDisabledAccountIsLockedOut(t *testing.T) {
	r := setupTest(t)
	user, token := seedUser(t, models.RoleWarehouse)
	_, adminToken := seedUser(t, models.RoleSuperadmin)

	w := doJSON(t, r, http.MethodPut, "/api/users/"+user.UserID+"/active", adminToken, gin.H{"active": false})
	wantStatus(t, w, http.StatusOK)

	// the still-valid token is rejected
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", token, nil)
	wantStatus(t, w, http.StatusForbidden)

	// and so is a fresh login
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": user.Email, "password": "Secret123!",
	})
	wantStatus(t, w, http.StatusForbidden)
}

func TestSetUserActiveNeedsSuperadmin(t *testing.T) {
	r := setupTest(t)
	user, _ := seedUser(t, models.RoleWarehouse)
	_, designerToken := seedUser(t, models.RoleDesigner)

	w := doJSON(t, r, http.MethodPut, "/api/users/"+user.UserID+"/active", designerToken, gin.H{"active": false})
	wantStatus(t, w, http.StatusForbidden)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	r := setupTest(t)

	w := doJSON(t, r, http.MethodGet, "/api/projects", "", nil)
	wantStatus(t, w, http.StatusUnauthorized)

	w = doJSON(t, r, http.MethodGet, "/api/projects", "not-a-token", nil)
	wantStatus(t, w, http.StatusUnauthorized)
}
