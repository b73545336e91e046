package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/booki-saas/booki-api/internal/config"
)

const (
	ContextProfileID = "profileID"
	ContextCompanyID = "companyID"
	ContextRole      = "role"

	// Papel sintético de sessão de empresa (acesso por senha da empresa,
	// não por usuário do console).
	RoleCompany = "COMPANY"
)

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(ContextProfileID, sub)
		}
		if companyID, ok := claims["companyId"].(string); ok {
			c.Set(ContextCompanyID, companyID)
		}
		c.Set(ContextRole, role)

		c.Next()
	}
}

// RequireMaster restringe a rota ao console master (MASTER ou ADMIN).
func RequireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextRole)
		if role != "MASTER" && role != "ADMIN" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "master_only"})
			return
		}
		c.Next()
	}
}

// RequireCompany exige uma sessão de empresa (portal do tenant).
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextCompanyID); !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "company_session_required"})
			return
		}
		c.Next()
	}
}
