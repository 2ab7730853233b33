// Package importer loads the one-time CSV seed data into the database.
// It is an offline utility: per-record failures are logged and skipped,
// the batch always runs to completion.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/models"
	"reviewhub/internal/service"
)

type Importer struct {
	db  *gorm.DB
	log *slog.Logger
}

func New(db *gorm.DB, log *slog.Logger) *Importer {
	return &Importer{db: db, log: log}
}

// userUUID maps the seed data's integer user ids onto our UUID keys
// deterministically, so author references in review.csv and comments.csv
// resolve without a lookup table.
func userUUID(csvID string) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte("user:"+csvID)).String()
}

// Load imports every seed file in dependency order. A missing file fails
// the run; a bad record does not.
func (im *Importer) Load(dataDir string) error {
	steps := []struct {
		file string
		fn   func(rec map[string]string) error
	}{
		{"users.csv", im.loadUser},
		{"category.csv", im.loadCategory},
		{"genre.csv", im.loadGenre},
		{"titles.csv", im.loadTitle},
		{"genre_title.csv", im.loadTitleGenre},
		{"review.csv", im.loadReview},
		{"comments.csv", im.loadComment},
	}

	for _, step := range steps {
		if err := im.loadFile(filepath.Join(dataDir, step.file), step.fn); err != nil {
			return fmt.Errorf("loading %s: %w", step.file, err)
		}
	}

	im.log.Info("seed data loaded", "dir", dataDir)
	return nil
}

// loadFile streams a CSV with a header row, handing each record to fn as
// a map keyed by column name.
func (im *Importer) loadFile(path string, fn func(rec map[string]string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			im.log.Warn("skipping malformed record", "file", path, "line", line, "error", err)
			continue
		}

		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}

		if err := fn(rec); err != nil {
			im.log.Warn("skipping record", "file", path, "line", line, "error", err)
		}
	}

	return nil
}

func (im *Importer) loadUser(rec map[string]string) error {
	role := rec["role"]
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		ID:               userUUID(rec["id"]),
		Username:         rec["username"],
		Email:            rec["email"],
		Role:             role,
		Bio:              rec["bio"],
		FirstName:        rec["first_name"],
		LastName:         rec["last_name"],
		ConfirmationCode: service.ConfirmationCode(rec["email"]),
	}
	return im.db.Create(&user).Error
}

func (im *Importer) loadCategory(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	return im.db.Create(&models.Category{
		ID:   id,
		Name: rec["name"],
		Slug: rec["slug"],
	}).Error
}

func (im *Importer) loadGenre(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	return im.db.Create(&models.Genre{
		ID:   id,
		Name: rec["name"],
		Slug: rec["slug"],
	}).Error
}

func (im *Importer) loadTitle(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(rec["year"])
	if err != nil {
		return err
	}
	categoryID, err := strconv.ParseInt(rec["category"], 10, 64)
	if err != nil {
		return err
	}
	title := models.Title{
		ID:         id,
		Name:       rec["name"],
		Year:       year,
		CategoryID: categoryID,
	}
	if desc := rec["description"]; desc != "" {
		title.Description = &desc
	}
	return im.db.Create(&title).Error
}

func (im *Importer) loadTitleGenre(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(rec["title_id"], 10, 64)
	if err != nil {
		return err
	}
	genreID, err := strconv.ParseInt(rec["genre_id"], 10, 64)
	if err != nil {
		return err
	}
	return im.db.Create(&models.TitleGenre{
		ID:      id,
		TitleID: titleID,
		GenreID: genreID,
	}).Error
}

func (im *Importer) loadReview(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(rec["title_id"], 10, 64)
	if err != nil {
		return err
	}
	score, err := strconv.Atoi(rec["score"])
	if err != nil {
		return err
	}
	return im.db.Create(&models.Review{
		ID:       id,
		TitleID:  titleID,
		AuthorID: userUUID(rec["author"]),
		Text:     rec["text"],
		Score:    score,
	}).Error
}

func (im *Importer) loadComment(rec map[string]string) error {
	id, err := strconv.ParseInt(rec["id"], 10, 64)
	if err != nil {
		return err
	}
	reviewID, err := strconv.ParseInt(rec["review_id"], 10, 64)
	if err != nil {
		return err
	}
	return im.db.Create(&models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: userUUID(rec["author"]),
		Text:     rec["text"],
	}).Error
}
