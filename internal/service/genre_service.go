package service

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func validSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

type GenreService interface {
	Create(req dto.CreateGenreDTO) (*models.Genre, error)
	Delete(slug string) error
	List(search string, page, pageSize int) ([]models.Genre, int64, error)
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) Create(req dto.CreateGenreDTO) (*models.Genre, error) {
	if !validSlug(req.Slug) {
		return nil, apierr.Validation("slug", "slug may only contain letters, numbers, hyphens and underscores")
	}

	genre := &models.Genre{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.genreRepo.Create(genre); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, apierr.Conflict("slug", "genre with this slug already exists")
		}
		return nil, err
	}
	return genre, nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.genreRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("genre not found")
		}
		return err
	}
	return nil
}

func (s *genreService) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	return s.genreRepo.List(search, page, pageSize)
}
