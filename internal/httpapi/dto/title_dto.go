package dto

import "reviewhub/internal/models"

// CreateTitleDTO for POST /titles; genre and category are referenced by slug
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required,max=50"`
	Genre       []string `json:"genre" binding:"required,min=1,dive,max=50"`
}

// UpdateTitleDTO for PATCH /titles/:id; nil fields are untouched
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,max=50"`
	Genre       *[]string `json:"genre" binding:"omitempty,min=1,dive,max=50"`
}

type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Description *string          `json:"description,omitempty"`
	Rating      *float64         `json:"rating"`
	Category    CategoryResponse `json:"category"`
	Genre       []GenreResponse  `json:"genre"`
}

func TitleFromModel(t *models.Title) TitleResponse {
	genres := make([]GenreResponse, 0, len(t.Genres))
	for _, g := range t.Genres {
		genres = append(genres, GenreFromModel(g))
	}

	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Description: t.Description,
		Rating:      t.Rating,
		Category:    CategoryFromModel(t.Category),
		Genre:       genres,
	}
}
