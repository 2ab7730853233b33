package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/service"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/genres", h.List)
	router.POST("/genres", auth, middleware.RequireAdmin(), h.Create)
	router.DELETE("/genres/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

// List handles GET /api/v1/genres?search=&page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	genres, total, err := h.genreService.List(c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]dto.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		data = append(data, dto.GenreFromModel(genre))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(data, page, pageSize, total))
}

// Create handles POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	genre, err := h.genreService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(*genre))
}

// Delete handles DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
