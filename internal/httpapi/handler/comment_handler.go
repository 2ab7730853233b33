package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/permissions"
	"reviewhub/internal/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes nests comments under their review, same access shape as
// reviews.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", auth, h.Create)
		comments.PATCH("/:comment_id", auth, h.Update)
		comments.DELETE("/:comment_id", auth, h.Delete)
	}
}

func commentPath(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = parseID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = parseID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

// List handles GET .../reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, total, err := h.commentService.ListByReview(titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		data = append(data, dto.CommentFromModel(&comments[i]))
	}
	c.JSON(http.StatusOK, dto.NewPaginated(data, page, pageSize, total))
}

// Get handles GET .../comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(comment))
}

// Create handles POST .../reviews/:review_id/comments; author and review
// are stamped server-side.
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.Create(titleID, reviewID, c.GetString(middleware.CtxUserID), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CommentFromModel(comment))
}

// Update handles PATCH .../comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.GetByID(titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	isOwner := comment.AuthorID == c.GetString(middleware.CtxUserID)
	if !permissions.CanModifyContribution(c.GetString(middleware.CtxRole), isOwner, c.Request.Method) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to modify this comment"})
		return
	}

	updated, err := h.commentService.Update(titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(updated))
}

// Delete handles DELETE .../comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := commentPath(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetByID(titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}

	isOwner := comment.AuthorID == c.GetString(middleware.CtxUserID)
	if !permissions.CanModifyContribution(c.GetString(middleware.CtxRole), isOwner, c.Request.Method) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "you do not have permission to modify this comment"})
		return
	}

	if err := h.commentService.Delete(titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
