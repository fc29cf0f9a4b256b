package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/cmd/internal/logger"
	"ai-edu-portal/models"
)

// GetContentAnalysisHandler godoc
// @Summary      콘텐츠 분석 결과 조회
// @Description  ObjectID hex 또는 슬러그로 콘텐츠 분석 결과를 조회합니다. 저장된 분석이 없으면 즉시 분석을 수행한 뒤 반환합니다.
// @Tags         analytics
// @Param        id  path  string  true  "Content ObjectID or slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.ContentAnalysis}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/content/{id} [get]
func GetContentAnalysisHandler(svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.AnalyzeByIDOrSlug(c.Request.Context(), c.Param("id"), false)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_analyze_content"))
			return
		}
		if a == nil {
			c.JSON(http.StatusNotFound, dto.Fail("content_not_found"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(a))
	}
}

// AnalyzeContentHandler godoc
// @Summary      콘텐츠 재분석
// @Description  저장된 분석 결과를 무시하고 LLM 분석을 다시 수행합니다.
// @Tags         analytics
// @Security     BearerAuth
// @Param        id  path  string  true  "Content ObjectID or slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.ContentAnalysis}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/content/{id} [post]
func AnalyzeContentHandler(authSvc *services.AuthService, svc *services.AnalysisService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUser(c, authSvc); !ok {
			return
		}

		a, err := svc.AnalyzeByIDOrSlug(c.Request.Context(), c.Param("id"), true)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_analyze_content"))
			return
		}
		if a == nil {
			c.JSON(http.StatusNotFound, dto.Fail("content_not_found"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(a))
	}
}

// GetUserAnalyticsHandler godoc
// @Summary      유저 관심사 분석 조회
// @Description  유저 관심사 프로필을 반환합니다. 최근 분석본이 있으면 캐시처럼 재사용하고, 없거나 오래된 경우 새로 분석합니다. 본인 또는 admin 만 조회할 수 있습니다.
// @Tags         analytics
// @Security     BearerAuth
// @Param        id  path  string  true  "User ObjectID"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.UserInterest}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/user/{id} [get]
func GetUserAnalyticsHandler(authSvc *services.AuthService, svc *services.UserService) gin.HandlerFunc {
	return userAnalyticsHandler(authSvc, svc, false)
}

// RefreshUserAnalyticsHandler godoc
// @Summary      유저 관심사 분석 강제 갱신
// @Description  캐시된 프로필을 무시하고 관심사 분석을 다시 수행합니다. 본인 또는 admin 만 호출할 수 있습니다.
// @Tags         analytics
// @Security     BearerAuth
// @Param        id  path  string  true  "User ObjectID"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.UserInterest}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/user/{id} [post]
func RefreshUserAnalyticsHandler(authSvc *services.AuthService, svc *services.UserService) gin.HandlerFunc {
	return userAnalyticsHandler(authSvc, svc, true)
}

func userAnalyticsHandler(authSvc *services.AuthService, svc *services.UserService, force bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		targetID := c.Param("id")
		if !canAccessUserResource(u, targetID) {
			c.JSON(http.StatusForbidden, dto.Fail("not_allowed"))
			return
		}

		interest, err := svc.GetOrAnalyze(c.Request.Context(), targetID, force)
		if err != nil {
			logger.ErrorWithFields("user analytics failed", logger.Fields{
				"user_id": targetID,
				"force":   force,
				"error":   err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_analyze_user"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(interest))
	}
}

// ListCommunityReportsHandler godoc
// @Summary      커뮤니티 리포트 목록 조회
// @Description  기간별 최신 커뮤니티 분석 리포트를 반환합니다.
// @Tags         analytics
// @Param        period  query  string  false  "daily | weekly | monthly (default weekly)"
// @Param        limit   query  int     false  "Max number of reports (default 10)"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]models.CommunityAnalytics}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/community [get]
func ListCommunityReportsHandler(svc *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.DefaultQuery("period", models.PeriodWeekly)
		if !models.ValidPeriod(period) {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid_period"))
			return
		}
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

		reports, err := svc.ListReports(c.Request.Context(), period, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_reports"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(reports))
	}
}

// GenerateCommunityReportHandler godoc
// @Summary      커뮤니티 리포트 생성
// @Description  주어진 기간의 커뮤니티 분석 리포트를 새로 생성합니다. admin 전용입니다.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateCommunityReportRequest  false  "리포트 기간 (기본 weekly)"
// @Success      201  {object}  dto.Envelope{data=models.CommunityAnalytics}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /analytics/community [post]
func GenerateCommunityReportHandler(svc *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateCommunityReportRequest
		// 바디가 없으면 기본 기간을 사용한다.
		_ = c.ShouldBindJSON(&req)
		if req.Period == "" {
			req.Period = models.PeriodWeekly
		}
		if !models.ValidPeriod(req.Period) {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid_period"))
			return
		}

		report, err := svc.GenerateReport(c.Request.Context(), req.Period)
		if err != nil {
			logger.ErrorWithFields("community report generation failed", logger.Fields{
				"period": req.Period,
				"error":  err.Error(),
			})
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_generate_report"))
			return
		}
		c.JSON(http.StatusCreated, dto.OK(report))
	}
}
