package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

type CategoryService interface {
	Create(req dto.CreateCategoryDTO) (*models.Category, error)
	Delete(slug string) error
	List(search string, page, pageSize int) ([]models.Category, int64, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(req dto.CreateCategoryDTO) (*models.Category, error) {
	if !validSlug(req.Slug) {
		return nil, apierr.Validation("slug", "slug may only contain letters, numbers, hyphens and underscores")
	}

	category := &models.Category{
		Name: req.Name,
		Slug: req.Slug,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		if apierr.IsUniqueViolation(err) {
			return nil, apierr.Conflict("slug", "category with this slug already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.categoryRepo.DeleteBySlug(slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("category not found")
		}
		// RESTRICT on titles.category_id: a referenced category stays.
		if apierr.IsForeignKeyViolation(err) {
			return apierr.BadRequest("category is still assigned to titles")
		}
		return err
	}
	return nil
}

func (s *categoryService) List(search string, page, pageSize int) ([]models.Category, int64, error) {
	return s.categoryRepo.List(search, page, pageSize)
}
