package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/cmd/internal/logger"
)

const oauthStateCookieName = "oauth_state"

func generateState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// RegisterHandler godoc
// @Summary      이메일 회원가입
// @Description  이름/이메일/비밀번호로 계정을 생성하고 액세스 토큰을 발급합니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "회원가입 요청"
// @Success      201  {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Router       /auth/register [post]
func RegisterHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		u, token, err := authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				c.JSON(http.StatusConflict, dto.Fail("email_already_registered"))
				return
			}
			logger.ErrorWithFields("register failed", logger.Fields{
				"email": req.Email,
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_register"))
			return
		}

		c.JSON(http.StatusCreated, dto.OK(dto.AuthResponse{Token: token, User: toUserDTO(u)}))
	}
}

// LoginHandler godoc
// @Summary      이메일 로그인
// @Description  이메일/비밀번호를 검증하고 액세스 토큰을 발급합니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "로그인 요청"
// @Success      200  {object}  dto.Envelope{data=dto.AuthResponse}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/login [post]
func LoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		u, token, err := authSvc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, dto.Fail("invalid_credentials"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_login"))
			return
		}

		c.JSON(http.StatusOK, dto.OK(dto.AuthResponse{Token: token, User: toUserDTO(u)}))
	}
}

// MeHandler godoc
// @Summary      현재 로그인한 사용자 조회
// @Description  Authorization 헤더의 JWT를 검증하고 현재 사용자 프로필을 반환합니다.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=dto.UserDTO}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /auth/me [get]
func MeHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, dto.OK(toUserDTO(u)))
	}
}

// ForgotPasswordHandler godoc
// @Summary      비밀번호 재설정 메일 발송
// @Description  가입된 이메일이면 재설정 토큰을 발급하고 메일을 발송합니다. 계정 존재 여부는 응답으로 노출하지 않습니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "비밀번호 재설정 요청"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /auth/forgot-password [post]
func ForgotPasswordHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		if err := authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
			logger.ErrorWithFields("forgot password failed", logger.Fields{
				"email": req.Email,
				"error": err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_send_reset_email"))
			return
		}

		// 존재하지 않는 이메일이어도 동일한 응답을 내려준다.
		c.JSON(http.StatusOK, dto.OK(gin.H{"message": "reset email sent if the account exists"}))
	}
}

// ResetPasswordHandler godoc
// @Summary      비밀번호 재설정
// @Description  유효한 재설정 토큰을 소모하고 새 비밀번호를 저장합니다.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ResetPasswordRequest  true  "비밀번호 재설정"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /auth/reset-password [post]
func ResetPasswordHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		if err := authSvc.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
			if errors.Is(err, services.ErrInvalidResetToken) {
				c.JSON(http.StatusBadRequest, dto.Fail("invalid_or_expired_token"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_reset_password"))
			return
		}

		c.JSON(http.StatusOK, dto.OK(gin.H{"message": "password updated successfully"}))
	}
}

// GoogleLoginHandler godoc
// @Summary      Google 로그인 시작
// @Description  state 값을 생성해 쿠키에 저장한 뒤, Google OAuth 인증 페이지로 리다이렉트합니다. 실패 시에도 프론트의 로그인 완료 페이지로 토큰 없이 이동합니다.
// @Tags         auth
// @Produce      json
// @Success      302  {string}  string  "Google OAuth 로그인 페이지 또는 로그인 완료 페이지로 리다이렉트"
// @Router       /auth/google/login [get]
func GoogleLoginHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateState()
		if err != nil {
			redirectURL := authSvc.GetRedirectURL()
			logger.ErrorWithFields("google login failed to generate state", logger.Fields{
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			// 프론트 스펙: 실패 시에도 로그인 완료 페이지로 토큰 없이 리다이렉트
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		// state 를 쿠키에 저장해 CSRF 를 방지한다.
		c.SetCookie(oauthStateCookieName, state, 300, "/", "", false, true)

		loginURL := authSvc.BuildGoogleLoginURL(state)
		logger.InfoWithFields("redirect to google oauth", logger.Fields{
			"redirect_to": loginURL,
			"request_id":  c.Request.Header.Get("X-Request-Id"),
			"span_id":     c.Request.Header.Get("X-Span-Id"),
		})
		c.Redirect(http.StatusFound, loginURL)
	}
}

// GoogleCallbackHandler godoc
// @Summary      Google OAuth 콜백 처리
// @Description  state 값을 검증하고, code로 Google 액세스 토큰을 교환한 뒤 사용자 정보를 조회/업서트하고 JWT를 발급하여 로그인 완료 페이지로 리다이렉트합니다.
// @Tags         auth
// @Produce      json
// @Success      302  {string}  string  "로그인 완료 페이지로 리다이렉트 (성공 시 토큰 포함)"
// @Router       /auth/google/callback [get]
func GoogleCallbackHandler(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		code := c.Query("code")
		redirectURL := authSvc.GetRedirectURL()

		if state == "" || code == "" {
			logger.ErrorWithFields("google callback missing state or code", logger.Fields{
				"state":       state,
				"code":        code,
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		cookieState, err := c.Cookie(oauthStateCookieName)
		if err != nil {
			logger.ErrorWithFields("google callback state cookie not found", logger.Fields{
				"state":       state,
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		// 재사용 방지를 위해 콜백 시점에 state 쿠키를 즉시 만료시킨다.
		c.SetCookie(oauthStateCookieName, "", -1, "/", "", false, true)

		if cookieState != state {
			logger.ErrorWithFields("google callback invalid state", logger.Fields{
				"cookie_state": cookieState,
				"state":        state,
				"redirect_to":  redirectURL,
				"request_id":   c.Request.Header.Get("X-Request-Id"),
				"span_id":      c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		accessToken, err := authSvc.HandleGoogleCallback(c.Request.Context(), code)
		if err != nil {
			logger.ErrorWithFields("google callback failed", logger.Fields{
				"error":       err.Error(),
				"redirect_to": redirectURL,
				"request_id":  c.Request.Header.Get("X-Request-Id"),
				"span_id":     c.Request.Header.Get("X-Span-Id"),
			})
			c.Redirect(http.StatusFound, redirectURL)
			return
		}

		redirectWithToken := authSvc.GetRedirectURLWithToken(accessToken)
		logger.InfoWithFields("redirect to login success with token", logger.Fields{
			"redirect_to": redirectWithToken,
			"request_id":  c.Request.Header.Get("X-Request-Id"),
			"span_id":     c.Request.Header.Get("X-Span-Id"),
		})
		c.Redirect(http.StatusFound, redirectWithToken)
	}
}
