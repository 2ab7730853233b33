package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes: list is anonymous, create/delete are admin-only.
// There is no update: a slug referenced by titles never changes.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/categories", h.List)
	router.POST("/categories", auth, middleware.RequireAdmin(), h.Create)
	router.DELETE("/categories/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

// List handles GET /api/v1/categories?search=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, total, err := h.categoryService.List(c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		data = append(data, dto.CategoryFromModel(category))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(data, page, pageSize, total))
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(*category))
}

// Delete handles DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
