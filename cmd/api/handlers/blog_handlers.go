package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ai-edu-portal/cmd/api/dto"
	"ai-edu-portal/cmd/api/services"
)

// ListBlogsHandler godoc
// @Summary      List published blogs
// @Description  List published blog posts, newest first
// @Tags         blogs
// @Param        limit  query  int  false  "Max number of posts (default 20)"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]models.Blog}
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blogs [get]
func ListBlogsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
		blogs, err := svc.ListPublished(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_blogs"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(blogs))
	}
}

// GetBlogHandler godoc
// @Summary      Get blog by slug
// @Tags         blogs
// @Param        slug  path  string  true  "Blog slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=models.Blog}
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{slug} [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svc.GetBySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, dto.Fail("blog_not_found"))
				return
			}
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_load_blog"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(b))
	}
}

// ListMyBlogsHandler godoc
// @Summary      List my blogs
// @Description  List all blogs of the current user, including unpublished drafts
// @Tags         blogs
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]models.Blog}
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /blogs/me [get]
func ListMyBlogsHandler(authSvc *services.AuthService, svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}
		blogs, err := svc.ListByAuthorID(c.Request.Context(), u.ID.Hex())
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_list_blogs"))
			return
		}
		c.JSON(http.StatusOK, dto.OK(blogs))
	}
}

// CreateBlogHandler godoc
// @Summary      Create a blog post
// @Description  Create a blog post and schedule background content analysis
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBlogRequest  true  "Blog creation request"
// @Success      201  {object}  dto.Envelope{data=models.Blog}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /blogs [post]
func CreateBlogHandler(authSvc *services.AuthService, svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		var req dto.CreateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		b, err := svc.Create(c.Request.Context(), services.CreateBlogInput{
			Title:     req.Title,
			Content:   req.Content,
			Tags:      req.Tags,
			Published: req.Published,
		}, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_create_blog"))
			return
		}
		c.JSON(http.StatusCreated, dto.OK(b))
	}
}

// UpdateBlogHandler godoc
// @Summary      Update a blog post
// @Description  Partially update a blog post. Only the author or an admin can modify it.
// @Tags         blogs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Blog slug"
// @Param        body  body  dto.UpdateBlogRequest  true  "Fields to update"
// @Success      200  {object}  dto.Envelope{data=models.Blog}
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{slug} [put]
func UpdateBlogHandler(authSvc *services.AuthService, svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		var req dto.UpdateBlogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
			return
		}

		b, err := svc.Update(c.Request.Context(), c.Param("slug"), services.UpdateBlogInput{
			Title:     req.Title,
			Content:   req.Content,
			Tags:      req.Tags,
			Published: req.Published,
		}, u)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, dto.Fail("blog_not_found"))
			case errors.Is(err, services.ErrForbidden):
				c.JSON(http.StatusForbidden, dto.Fail("not_allowed"))
			default:
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_update_blog"))
			}
			return
		}
		c.JSON(http.StatusOK, dto.OK(b))
	}
}

// DeleteBlogHandler godoc
// @Summary      Delete a blog post
// @Tags         blogs
// @Security     BearerAuth
// @Param        slug  path  string  true  "Blog slug"
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /blogs/{slug} [delete]
func DeleteBlogHandler(authSvc *services.AuthService, svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := requireUser(c, authSvc)
		if !ok {
			return
		}

		if err := svc.Delete(c.Request.Context(), c.Param("slug"), u); err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, dto.Fail("blog_not_found"))
			case errors.Is(err, services.ErrForbidden):
				c.JSON(http.StatusForbidden, dto.Fail("not_allowed"))
			default:
				c.JSON(http.StatusInternalServerError, dto.Fail("failed_to_delete_blog"))
			}
			return
		}
		c.JSON(http.StatusOK, dto.OK(gin.H{"message": "blog deleted successfully"}))
	}
}
