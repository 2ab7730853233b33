package models

import "time"

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"not null"`
	Year        int       `json:"year" gorm:"not null;index"`
	Description *string   `json:"description,omitempty"`
	CategoryID  int64     `json:"category_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Rating is the query-time AVG(score) over the title's reviews, nil when
	// the title has none. Read-only: never written back to the table.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// associations
	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
	Genres   []Genre  `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}

// explicit join model to match the migration (has its own id)
type TitleGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
