package middleware

import (
	"net/http"
	"strings"

	"robfu/internal/auth"
	"robfu/internal/database"
	"robfu/internal/models"

	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the bearer token, loads the user and puts it on the
// context as CurrentUser. Disabled accounts are rejected.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid authentication credentials"})
			return
		}

		var user models.User
		if err := database.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "user not found"})
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "account disabled"})
			return
		}

		c.Set("CurrentUser", user)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Superadmins pass always.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "not authenticated"})
			return
		}

		if user.Role == models.RoleSuperadmin {
			c.Next()
			return
		}
		if _, ok := roleSet[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "access denied"})
			return
		}
		c.Next()
	}
}

// CurrentUser fetches the authenticated user placed by RequireAuth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	uVal, ok := c.Get("CurrentUser")
	if !ok {
		return models.User{}, false
	}
	user, ok := uVal.(models.User)
	return user, ok
}
