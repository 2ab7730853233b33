package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/repository"
	"reviewhub/internal/service"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes: reads are anonymous, mutations are admin-only.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	router.GET("/titles", h.List)
	router.GET("/titles/:title_id", h.Get)
	router.POST("/titles", auth, middleware.RequireAdmin(), h.Create)
	router.PATCH("/titles/:title_id", auth, middleware.RequireAdmin(), h.Update)
	router.DELETE("/titles/:title_id", auth, middleware.RequireAdmin(), h.Delete)
}

// List handles GET /api/v1/titles?name=&year=&genre=&category=
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.TitleFilter{
		Name:     c.Query("name"),
		Genre:    c.Query("genre"),
		Category: c.Query("category"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	titles, total, err := h.titleService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		data = append(data, dto.TitleFromModel(&titles[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(data, page, pageSize, total))
}

// Get handles GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	title, err := h.titleService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

// Create handles POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	title, err := h.titleService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(title))
}

// Update handles PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	title, err := h.titleService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(title))
}

// Delete handles DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	if err := h.titleService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
