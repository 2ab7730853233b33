package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/permissions"
	"reviewhub/internal/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes nests reviews under their title. Reads are anonymous;
// create needs any authenticated user; update/delete go through the
// owner-or-moderator-or-admin rule.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	reviews := router.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", auth, h.Create)
		reviews.PATCH("/:review_id", auth, h.Update)
		reviews.DELETE("/:review_id", auth, h.Delete)
	}
}

// List handles GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	reviews, total, err := h.reviewService.ListByTitle(titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, dto.ReviewFromModel(&reviews[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(data, page, pageSize, total))
}

// Get handles GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(review))
}

// Create handles POST /api/v1/titles/:title_id/reviews; author and title
// are stamped server-side.
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	review, err := h.reviewService.Create(titleID, c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReviewFromModel(review))
}

// Update handles PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	review, err := h.reviewService.GetByID(titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	isOwner := review.AuthorID == c.GetString(middleware.CtxUserID)
	if !permissions.CanModifyContribution(c.GetString(middleware.CtxRole), isOwner, c.Request.Method) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to modify this review"})
		return
	}

	updated, err := h.reviewService.Update(titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(updated))
}

// Delete handles DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		return
	}

	review, err := h.reviewService.GetByID(titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}

	isOwner := review.AuthorID == c.GetString(middleware.CtxUserID)
	if !permissions.CanModifyContribution(c.GetString(middleware.CtxRole), isOwner, c.Request.Method) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to modify this review"})
		return
	}

	if err := h.reviewService.Delete(titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
