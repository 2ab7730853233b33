package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type TitleService interface {
	Create(req dto.CreateTitleDTO) (*models.Title, error)
	Update(id int64, req dto.UpdateTitleDTO) (*models.Title, error)
	Delete(id int64) error
	GetByID(id int64) (*models.Title, error)
	List(filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return apierr.Validation("year", apierr.MsgIncorrectYear)
	}
	return nil
}

// resolveCategory maps a category slug to its record, rejecting slugs
// outside the category set.
func (s *titleService) resolveCategory(slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Validation("category", apierr.MsgIncorrectCategory)
		}
		return nil, err
	}
	return category, nil
}

// resolveGenres maps genre slugs to records; any unknown slug fails the
// whole request.
func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(slugs)
	if err != nil {
		return nil, err
	}
	found := make(map[string]bool, len(genres))
	for _, g := range genres {
		found[g.Slug] = true
	}
	for _, slug := range slugs {
		if !found[slug] {
			return nil, apierr.Validation("genre", apierr.MsgIncorrectGenre)
		}
	}
	return genres, nil
}

func (s *titleService) Create(req dto.CreateTitleDTO) (*models.Title, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(req.Category)
	if err != nil {
		return nil, err
	}
	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}

	title := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  category.ID,
		Genres:      genres,
	}
	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	// Re-read for the annotated rating and preloaded associations.
	return s.GetByID(title.ID)
}

func (s *titleService) Update(id int64, req dto.UpdateTitleDTO) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("title not found")
		}
		return nil, err
	}

	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(*req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = category.ID
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(*req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	return s.GetByID(id)
}

func (s *titleService) Delete(id int64) error {
	if err := s.titleRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("title not found")
		}
		return err
	}
	return nil
}

func (s *titleService) GetByID(id int64) (*models.Title, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("title not found")
		}
		return nil, err
	}
	return title, nil
}

func (s *titleService) List(filter repository.TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	return s.titleRepo.List(filter, page, pageSize)
}
