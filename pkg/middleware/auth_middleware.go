package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware interface {
	CheckToken() gin.HandlerFunc
}

type authMiddleware struct {
	token string
}

func (a *authMiddleware) CheckToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if len(authHeader) == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Missing API token in request",
			})
			return
		}
		bearerToken, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Authorization header must use the Bearer scheme",
			})
			return
		}
		if subtle.ConstantTimeCompare([]byte(bearerToken), []byte(a.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "API token is invalid",
			})
			return
		}
		c.Next()
	}
}

func NewAuthMiddleware(token string) AuthMiddleware {
	return &authMiddleware{
		token: token,
	}
}
