package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
)

// ListPortfoliosHandler godoc
// @Summary      List published portfolios
// @Description  List published portfolio projects, featured first
// @Tags         portfolios
// @Param        limit  query  int  false  "Max number of projects (default 20)"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]models.Portfolio}
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /portfolios [get]
func ListPortfoliosHandler(svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
		portfolios, err := svc.ListPublished(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_portfolios"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(portfolios))
	}
}

// GetPortfolioHandler godoc
// @Summary      Get portfolio by slug
// @Tags         portfolios
// @Param        slug  path  string  true  "Portfolio slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.Portfolio}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /portfolios/{slug} [get]
func GetPortfolioHandler(svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.Fail("portfolio_not_found"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_load_portfolio"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(p))
	}
}

// ListMyPortfoliosHandler godoc
// @Summary      List my portfolios
// @Description  List all portfolios of the current user, including unpublished drafts
// @Tags         portfolios
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]models.Portfolio}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /portfolios/me [get]
func ListMyPortfoliosHandler(authSvc *services.AuthService, svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}
		portfolios, err := svc.ListByAuthorID(c.Request.Context(), u.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_portfolios"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(portfolios))
	}
}

// CreatePortfolioHandler godoc
// @Summary      Create a portfolio project
// @Description  Create a portfolio project and schedule background content analysis
// @Tags         portfolios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePortfolioRequest  true  "Portfolio creation request"
// @Success      201  {object}  dto.Envelope{data=models.Portfolio}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /portfolios [post]
func CreatePortfolioHandler(authSvc *services.AuthService, svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		var req dto.CreatePortfolioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		p, err := svc.Create(c.Request.Context(), services.CreatePortfolioInput{
			Title:        req.Title,
			Description:  req.Description,
			Content:      req.Content,
			Technologies: req.Technologies,
			ProjectURL:   req.ProjectURL,
			GithubURL:    req.GithubURL,
			ImageURL:     req.ImageURL,
			Featured:     req.Featured,
			Published:    req.Published,
		}, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_create_portfolio"))
			return
		}
		c.JSON(http.StatusCreated, dto.OK(p))
	}
}

// UpdatePortfolioHandler godoc
// @Summary      Update a portfolio project
// @Description  Partially update a portfolio. Only the author or an admin can modify it.
// @Tags         portfolios
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Portfolio slug"
// @Param        body  body  dto.UpdatePortfolioRequest  true  "Fields to update"
// @Success      200  {object}  dto.Envelope{data=models.Portfolio}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /portfolios/{slug} [put]
func UpdatePortfolioHandler(authSvc *services.AuthService, svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		var req dto.UpdatePortfolioRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		p, err := svc.Update(c.Request.Context(), c.Param("slug"), services.UpdatePortfolioInput{
			Title:        req.Title,
			Description:  req.Description,
			Content:      req.Content,
			Technologies: req.Technologies,
			ProjectURL:   req.ProjectURL,
			GithubURL:    req.GithubURL,
			ImageURL:     req.ImageURL,
			Featured:     req.Featured,
			Published:    req.Published,
		}, u)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, dto.Fail("portfolio_not_found"))
			case errors.Is(err, services.ErrForbidden):
				c.JSON(http.StatusForbidden, dto.Fail("not_allowed"))
			default:
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_update_portfolio"))
			}
			return
		}
		c.JSON(http.StatusOK, dto.OK(p))
	}
}

// DeletePortfolioHandler godoc
// @Summary      Delete a portfolio project
// @Tags         portfolios
// @Security     BearerAuth
// @Param        slug  path  string  true  "Portfolio slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /portfolios/{slug} [delete]
func DeletePortfolioHandler(authSvc *services.AuthService, svc *services.PortfolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), c.Param("slug"), u); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, dto.Fail("portfolio_not_found"))
			case errors.Is(err, services.ErrForbidden):
				c.JSON(http.StatusForbidden, dto.Fail("not_allowed"))
			default:
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_delete_portfolio"))
			}
			return
		}
		c.JSON(http.StatusOK, dto.OK(gin.H{"message": "portfolio deleted successfully"}))
	}
}
