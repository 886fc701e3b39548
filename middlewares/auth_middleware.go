package middlewares

import (
	"net/http"
	"strings"

	"github.com/Asep3580/kopkaka/models"
	"github.com/Asep3580/kopkaka/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token tidak ditemukan"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token tidak valid"})
			c.Abort()
			return
		}

		var memberID uint
		if v, ok := claims["member_id"].(float64); ok {
			memberID = uint(v)
		}
		role, _ := claims["role"].(string)

		perms := []string{}
		if raw, ok := claims["perms"].([]interface{}); ok {
			for _, p := range raw {
				if s, ok := p.(string); ok {
					perms = append(perms, s)
				}
			}
		}

		c.Set("member_id", memberID)
		c.Set("role", role)
		c.Set("perms", perms)
		c.Next()
	}
}

// Authorize meloloskan request kalau caller punya salah satu permission.
// Role admin lolos semua check (perilaku lama dipertahankan).
func Authorize(required ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role == models.RoleAdmin {
			c.Next()
			return
		}

		owned := map[string]bool{}
		if v, ok := c.Get("perms"); ok {
			if perms, ok := v.([]string); ok {
				for _, p := range perms {
					owned[p] = true
				}
			}
		}

		for _, code := range required {
			if owned[code] {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Anda tidak punya akses untuk aksi ini"})
		c.Abort()
	}
}
