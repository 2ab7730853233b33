package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type ReviewService interface {
	Create(titleID int64, authorID string, req dto.CreateReviewDTO) (*models.Review, error)
	Update(titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error)
	Delete(titleID, reviewID int64) error
	GetByID(titleID, reviewID int64) (*models.Review, error)
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) checkTitle(titleID int64) error {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title not found")
		}
		return err
	}
	return nil
}

// Create stamps the author and title server-side and enforces one review
// per (author, title); the unique constraint closes the race two
// concurrent creates would otherwise win together.
func (s *reviewService) Create(titleID int64, authorID string, req dto.CreateReviewDTO) (*models.Review, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.GetByAuthorAndTitle(authorID, titleID); err == nil {
		return nil, apierr.Validation("title", apierr.MsgNotAllowed)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, apierr.Validation("title", apierr.MsgNotAllowed)
		}
		return nil, err
	}

	// Reload with the author preloaded.
	return s.reviewRepo.GetByID(review.ID)
}

func (s *reviewService) Update(titleID, reviewID int64, req dto.UpdateReviewDTO) (*models.Review, error) {
	review, err := s.GetByID(titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(titleID, reviewID int64) error {
	if _, err := s.GetByID(titleID, reviewID); err != nil {
		return err
	}
	return s.reviewRepo.Delete(reviewID)
}

// GetByID resolves a review within its parent title; a review under a
// different title is treated as not found.
func (s *reviewService) GetByID(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("review not found")
		}
		return nil, err
	}
	if review.TitleID != titleID {
		return nil, apierr.NotFound("review not found")
	}
	return review, nil
}

func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	if err := s.checkTitle(titleID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByTitle(titleID, page, pageSize)
}
