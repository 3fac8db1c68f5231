package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-backend/internal/core/auth"
	"shop-backend/internal/domain"
	"shop-backend/internal/transport/http/response"
)

// CtxUserKey holds the authenticated *domain.User for downstream handlers.
const CtxUserKey = "authUser"

// Authenticate extracts and verifies the bearer token, resolves the claimed
// user id to a live record and attaches it to the context. Pre-flight
// requests pass through. Every failure mode collapses into the same 401.
func Authenticate(j *auth.JWTer, users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			response.FailStatus(c, http.StatusUnauthorized, "authentication failed")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			response.FailStatus(c, http.StatusUnauthorized, "authentication failed")
			return
		}
		u, err := users.FindByID(claims.UID)
		if err != nil || u == nil {
			response.FailStatus(c, http.StatusUnauthorized, "authentication failed")
			return
		}
		u.PasswordHash = "" // the attached identity never carries the credential
		c.Set(CtxUserKey, u)
		c.Next()
	}
}

// Authorize gates a route on the authenticated identity's role. Each route
// group declares its own allowed set.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		u := UserFrom(c)
		if u == nil {
			response.FailStatus(c, http.StatusUnauthorized, "authentication failed")
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.FailStatus(c, http.StatusForbidden, "you are not authorized to access this route")
	}
}

func UserFrom(c *gin.Context) *domain.User {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
