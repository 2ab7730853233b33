package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type CommentService interface {
	Create(titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*models.Comment, error)
	Update(titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error)
	Delete(titleID, reviewID, commentID int64) error
	GetByID(titleID, reviewID, commentID int64) (*models.Comment, error)
	ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// checkReview verifies the review exists under the given title.
func (s *commentService) checkReview(titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("review not found")
		}
		return err
	}
	if review.TitleID != titleID {
		return apierr.NotFound("review not found")
	}
	return nil
}

func (s *commentService) Create(titleID, reviewID int64, authorID string, req dto.CreateCommentDTO) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(comment.ID)
}

func (s *commentService) Update(titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*models.Comment, error) {
	comment, err := s.GetByID(titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(titleID, reviewID, commentID int64) error {
	if _, err := s.GetByID(titleID, reviewID, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

func (s *commentService) GetByID(titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("comment not found")
		}
		return nil, err
	}
	if comment.ReviewID != reviewID {
		return nil, apierr.NotFound("comment not found")
	}
	return comment, nil
}

func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	if err := s.checkReview(titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.commentRepo.ListByReview(reviewID, page, pageSize)
}
