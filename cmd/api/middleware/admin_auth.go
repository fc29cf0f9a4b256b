package middleware

import (
	"log"
	"net/http"

	"ai-edu-portal/cmd/api/auth"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/models"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware 는 요청 헤더의 JWT를 검증하고, role이 'admin'인지 확인합니다.
func AdminAuthMiddleware(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		userID, role, err := authSvc.ParseAccessToken(token)
		if err != nil {
			log.Printf("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if role != models.RoleAdmin {
			log.Printf("access denied: user %s has role %s, want admin", userID, role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden_insufficient_permissions"})
			return
		}

		// 컨텍스트에 사용자 정보 저장
		c.Set("user_id", userID)
		c.Set("role", role)

		c.Next()
	}
}
