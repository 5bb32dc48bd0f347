package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/texcare/texcare360-backend/db"
	"github.com/texcare/texcare360-backend/session"
)

// AuthRequired verifies the token cookie, rejects revoked tokens and attaches
// the actor to the request context.
func AuthRequired(tokens *session.TokenStore, repo *db.Repo, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(TokenCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Not authenticated."})
			return
		}
		claims, err := ParseToken(cfg, ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Invalid or expired token."})
			return
		}
		if tokens != nil {
			if revoked, _ := tokens.IsRevoked(c.Request.Context(), claims.ID); revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Invalid or expired token."})
				return
			}
		}

		// 这里确认用户仍存在，并把角色放进 Context（只查一次）
		u, err := repo.FindUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "User not found."})
			return
		}
		c.Set("userID", u.ID)
		c.Set("userName", u.Name)
		c.Set("userEmail", u.Email)
		c.Set("userRole", u.Role)
		c.Set("tokenID", claims.ID)

		c.Next()
	}
}

// RoleRequired gates a route group to the given roles. Runs after AuthRequired.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"success": false, "message": "Not authenticated."})
			return
		}
		role, _ := v.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, H{"success": false, "message": "Forbidden."})
	}
}

// CurrentUser pulls the actor set by AuthRequired.
func CurrentUser(c *gin.Context) (id uint, name, role string) {
	if v, ok := c.Get("userID"); ok {
		id, _ = v.(uint)
	}
	if v, ok := c.Get("userName"); ok {
		name, _ = v.(string)
	}
	if v, ok := c.Get("userRole"); ok {
		role, _ = v.(string)
	}
	return id, name, role
}
