package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/apierr"
	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/models"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteBySlug(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(slug string) (*models.Category, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(search, page, pageSize)
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(genre *models.Genre) error {
	args := m.Called(genre)
	return args.Error(0)
}

func (m *MockGenreRepository) DeleteBySlug(slug string) error {
	args := m.Called(slug)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(slug string) (*models.Genre, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(slugs []string) ([]models.Genre, error) {
	args := m.Called(slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(search, page, pageSize)
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func newTestTitleService(titleRepo *MockTitleRepository, categoryRepo *MockCategoryRepository, genreRepo *MockGenreRepository) TitleService {
	return NewTitleService(titleRepo, categoryRepo, genreRepo)
}

func TestCreateTitle_NextYearRejected(t *testing.T) {
	svc := newTestTitleService(new(MockTitleRepository), new(MockCategoryRepository), new(MockGenreRepository))

	_, err := svc.Create(dto.CreateTitleDTO{
		Name:     "From The Future",
		Year:     time.Now().Year() + 1,
		Category: "movie",
		Genre:    []string{"drama"},
	})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "year", apiErr.Field)
	assert.Equal(t, apierr.MsgIncorrectYear, apiErr.Message)
}

func TestCreateTitle_CurrentYearAllowed(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)

	categoryRepo.On("FindBySlug", "movie").Return(&models.Category{ID: 1, Slug: "movie"}, nil)
	genreRepo.On("FindBySlugs", []string{"drama"}).Return([]models.Genre{{ID: 2, Slug: "drama"}}, nil)
	titleRepo.On("Create", mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Title).ID = 10
	}).Return(nil)
	titleRepo.On("GetByID", int64(10)).Return(&models.Title{ID: 10, Name: "Now"}, nil)

	svc := newTestTitleService(titleRepo, categoryRepo, genreRepo)

	title, err := svc.Create(dto.CreateTitleDTO{
		Name:     "Now",
		Year:     time.Now().Year(),
		Category: "movie",
		Genre:    []string{"drama"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), title.ID)

	titleRepo.AssertExpectations(t)
}

func TestCreateTitle_UnknownCategory(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)

	categoryRepo.On("FindBySlug", "nope").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestTitleService(titleRepo, categoryRepo, genreRepo)

	_, err := svc.Create(dto.CreateTitleDTO{
		Name:     "X",
		Year:     2000,
		Category: "nope",
		Genre:    []string{"drama"},
	})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "category", apiErr.Field)
	assert.Equal(t, apierr.MsgIncorrectCategory, apiErr.Message)
}

func TestCreateTitle_UnknownGenre(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)

	categoryRepo.On("FindBySlug", "movie").Return(&models.Category{ID: 1, Slug: "movie"}, nil)
	// only one of the two requested slugs exists
	genreRepo.On("FindBySlugs", []string{"drama", "nope"}).Return([]models.Genre{{ID: 2, Slug: "drama"}}, nil)

	svc := newTestTitleService(titleRepo, categoryRepo, genreRepo)

	_, err := svc.Create(dto.CreateTitleDTO{
		Name:     "X",
		Year:     2000,
		Category: "movie",
		Genre:    []string{"drama", "nope"},
	})

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "genre", apiErr.Field)
	assert.Equal(t, apierr.MsgIncorrectGenre, apiErr.Message)

	titleRepo.AssertNotCalled(t, "Create", mock.Anything)
}
