package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/auth"
	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/models"
)

// requireUser는 Authorization 헤더가 필수인 엔드포인트에서 JWT를 파싱하고
// 현재 사용자를 로드한다. 실패 시 적절한 에러 응답을 내려주고 false를 반환한다.
func requireUser(c *gin.Context, authSvc *services.AuthService) (*models.User, bool) {
	token, err := auth.ExtractBearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fail(err.Error()))
		return nil, false
	}

	userID, _, err := authSvc.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid_token"))
		return nil, false
	}

	u, err := authSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, dto.Fail("user_not_found"))
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_load_user"))
		return nil, false
	}

	return u, true
}

// canAccessUserResource 는 본인 리소스이거나 admin 역할인 경우에만 true 를 반환한다.
func canAccessUserResource(u *models.User, userID string) bool {
	if u == nil {
		return false
	}
	return u.Role == models.RoleAdmin || u.ID.Hex() == userID
}

func toUserDTO(u *models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
		Role:  u.Role,
	}
}
