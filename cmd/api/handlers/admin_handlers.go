package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
	"ai-edu-portal/models"
)

// BatchAnalyzeHandler godoc
// @Summary      콘텐츠 일괄 재분석
// @Description  게시된 모든 콘텐츠(또는 지정한 타입)를 그룹 단위로 순회하며 분석을 수행합니다. 이미 분석된 콘텐츠는 건너뜁니다. admin 전용입니다.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchAnalyzeRequest  false  "대상 콘텐츠 타입 (비우면 전체)"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /admin/analytics/batch [post]
func BatchAnalyzeHandler(analysisSvc *services.AnalysisService, blogSvc *services.BlogService, portfolioSvc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.BatchAnalyzeRequest
		// 바디가 없으면 전체 타입을 대상으로 한다.
		_ = c.ShouldBindJSON(&req)
		if req.ContentType != "" &&
			req.ContentType != models.ContentTypeBlog &&
			req.ContentType != models.ContentTypePortfolio {
			c.JSON(http.StatusBadRequest, dto.Fail("invalid_content_type"))
			return
		}

		ctx := c.Request.Context()
		var targets []services.AnalysisTarget

		if req.ContentType == "" || req.ContentType == models.ContentTypeBlog {
			blogs, err := blogSvc.ListPublished(ctx, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_blogs"))
				return
			}
			for _, b := range blogs {
				targets = append(targets, services.AnalysisTarget{
					ContentID:   b.ID.Hex(),
					ContentType: models.ContentTypeBlog,
					Title:       b.Title,
					Body:        b.Content,
					Author:      b.Author,
					AuthorID:    b.AuthorID,
				})
			}
		}

		if req.ContentType == "" || req.ContentType == models.ContentTypePortfolio {
			portfolios, err := portfolioSvc.ListPublished(ctx, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_portfolios"))
				return
			}
			for _, p := range portfolios {
				targets = append(targets, services.AnalysisTarget{
					ContentID:   p.ID.Hex(),
					ContentType: models.ContentTypePortfolio,
					Title:       p.Title,
					Body:        p.Content,
					Author:      p.Author,
					AuthorID:    p.AuthorID,
				})
			}
		}

		analysisSvc.BatchAnalyze(ctx, targets)

		c.JSON(http.StatusOK, dto.OK(gin.H{"processed": len(targets)}))
	}
}
