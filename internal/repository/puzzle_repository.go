package repository

import (
	"database/sql"
	"strings"

	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

// ListCap bounds category and search listings until client-side paging
// replaces it.
const ListCap = 500

// PuzzleFilter composes the listing/search predicates. Zero values
// mean "no constraint"; HiddenAt IS NULL is always applied.
type PuzzleFilter struct {
	OfficialOnly   bool
	AuthorID       string
	CompletedBy    string
	NotCompletedBy string
	MinDifficulty  *float64
	MaxDifficulty  *float64
	Search         string
	// Min/Max are inclusive, Above/Below are strict. The duration
	// buckets need both: medium is a closed interval while short and
	// long exclude its endpoints.
	MinAverageTime   *float64
	MaxAverageTime   *float64
	AboveAverageTime *float64
	BelowAverageTime *float64
}

type PuzzleRepository struct {
	DB *gorm.DB
}

func NewPuzzleRepository(db *gorm.DB) *PuzzleRepository {
	return &PuzzleRepository{DB: db}
}

func (r *PuzzleRepository) Create(puzzle *model.Puzzle) error {
	return r.DB.Create(puzzle).Error
}

// FindVisible returns the puzzle unless it is hidden.
func (r *PuzzleRepository) FindVisible(id uint) (*model.Puzzle, error) {
	var puzzle model.Puzzle
	err := r.DB.Where("id = ? AND hidden_at IS NULL", id).First(&puzzle).Error
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

// FindAny returns the puzzle regardless of visibility; used by
// moderation.
func (r *PuzzleRepository) FindAny(id uint) (*model.Puzzle, error) {
	var puzzle model.Puzzle
	err := r.DB.First(&puzzle, id).Error
	if err != nil {
		return nil, err
	}
	return &puzzle, nil
}

func (r *PuzzleRepository) Save(puzzle *model.Puzzle) error {
	return r.DB.Save(puzzle).Error
}

func (r *PuzzleRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.DB.Model(&model.Puzzle{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes the puzzle row for good, along with its per-user play
// state. Ownership is the caller's contract.
func (r *PuzzleRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("puzzle_id = ?", id).Delete(&model.PuzzleCompleteData{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Puzzle{}, id).Error
	})
}

func (r *PuzzleRepository) IsUserOwner(id uint, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Puzzle{}).
		Where("id = ? AND author_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

// List applies the filter plus the given sort and returns at most
// ListCap rows. Hidden puzzles never appear.
func (r *PuzzleRepository) List(f PuzzleFilter, order string) ([]model.Puzzle, error) {
	query := r.DB.Model(&model.Puzzle{}).Where("hidden_at IS NULL")

	if f.OfficialOnly {
		query = query.Where("author_id IS NULL")
	}
	if f.AuthorID != "" {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	if f.CompletedBy != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM puzzle_complete_data d WHERE d.puzzle_id = puzzles.id AND d.user_id = ? AND d.completed_at IS NOT NULL)",
			f.CompletedBy)
	}
	if f.NotCompletedBy != "" {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM puzzle_complete_data d WHERE d.puzzle_id = puzzles.id AND d.user_id = ? AND d.completed_at IS NOT NULL)",
			f.NotCompletedBy)
	}
	if f.MinDifficulty != nil {
		query = query.Where("difficulty >= ?", *f.MinDifficulty)
	}
	if f.MaxDifficulty != nil {
		query = query.Where("difficulty < ?", *f.MaxDifficulty)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}
	if f.MinAverageTime != nil {
		query = query.Where("average_time >= ?", *f.MinAverageTime)
	}
	if f.MaxAverageTime != nil {
		query = query.Where("average_time <= ?", *f.MaxAverageTime)
	}
	if f.AboveAverageTime != nil {
		query = query.Where("average_time > ?", *f.AboveAverageTime)
	}
	if f.BelowAverageTime != nil {
		query = query.Where("average_time < ?", *f.BelowAverageTime)
	}

	if order != "" {
		query = query.Order(order)
	} else {
		query = query.Order("id asc")
	}

	var puzzles []model.Puzzle
	err := query.Limit(ListCap).Find(&puzzles).Error
	return puzzles, err
}

func (r *PuzzleRepository) CountHidden() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Puzzle{}).Where("hidden_at IS NOT NULL").Count(&count).Error
	return count, err
}

func (r *PuzzleRepository) ListHidden(offset, limit int) ([]model.Puzzle, error) {
	var puzzles []model.Puzzle
	err := r.DB.Where("hidden_at IS NOT NULL").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&puzzles).Error
	return puzzles, err
}

// OfficialFrontier returns the id of the first official puzzle the
// user has not yet unlocked past: the lowest official id above the
// user's highest completed official id, falling back to the lowest
// official id when the user has no official completions (or has
// completed the highest one). Zero means no official puzzles exist.
// Official puzzles up to and including the frontier are playable.
func (r *PuzzleRepository) OfficialFrontier(userID string) (uint, error) {
	var frontier sql.NullInt64
	err := r.DB.Raw(`
SELECT COALESCE(
  (
    SELECT MIN(p.id)
    FROM puzzles p
    WHERE p.author_id IS NULL
      AND p.id > (
        SELECT MAX(d.puzzle_id)
        FROM puzzle_complete_data d
        INNER JOIN puzzles p0 ON p0.id = d.puzzle_id
        WHERE d.user_id = ?
          AND p0.author_id IS NULL
          AND d.completed_at IS NOT NULL
      )
  ),
  (
    SELECT MIN(p.id)
    FROM puzzles p
    WHERE p.author_id IS NULL
  )
) AS id`, userID).Scan(&frontier).Error
	if err != nil {
		return 0, err
	}
	if !frontier.Valid {
		return 0, nil
	}
	return uint(frontier.Int64), nil
}
