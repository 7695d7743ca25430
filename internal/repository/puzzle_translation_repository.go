package repository

import (
	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

type PuzzleTranslationRepository struct {
	DB *gorm.DB
}

func NewPuzzleTranslationRepository(db *gorm.DB) *PuzzleTranslationRepository {
	return &PuzzleTranslationRepository{DB: db}
}

func (r *PuzzleTranslationRepository) Create(translation *model.PuzzleTranslation) error {
	return r.DB.Create(translation).Error
}

func (r *PuzzleTranslationRepository) Save(translation *model.PuzzleTranslation) error {
	return r.DB.Save(translation).Error
}

func (r *PuzzleTranslationRepository) FindByID(id string) (*model.PuzzleTranslation, error) {
	var translation model.PuzzleTranslation
	err := r.DB.First(&translation, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

func (r *PuzzleTranslationRepository) FindByPuzzleUserAndLocale(puzzleID uint, userID, locale string) (*model.PuzzleTranslation, error) {
	var translation model.PuzzleTranslation
	err := r.DB.Where("puzzle_id = ? AND user_id = ? AND locale = ?", puzzleID, userID, locale).
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

// FindApproved returns the approved translation for a (puzzle, locale)
// pair, of which at most one may exist.
func (r *PuzzleTranslationRepository) FindApproved(puzzleID uint, locale string) (*model.PuzzleTranslation, error) {
	var translation model.PuzzleTranslation
	err := r.DB.Where("puzzle_id = ? AND locale = ? AND approved = ?", puzzleID, locale, true).
		First(&translation).Error
	if err != nil {
		return nil, err
	}
	return &translation, nil
}

// MapApprovedForLocale returns the approved translations for the given
// puzzles in one locale, keyed by puzzle id.
func (r *PuzzleTranslationRepository) MapApprovedForLocale(puzzleIDs []uint, locale string) (map[uint]model.PuzzleTranslation, error) {
	result := make(map[uint]model.PuzzleTranslation, len(puzzleIDs))
	if len(puzzleIDs) == 0 {
		return result, nil
	}
	var rows []model.PuzzleTranslation
	err := r.DB.Where("puzzle_id IN ? AND locale = ? AND approved = ?", puzzleIDs, locale, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PuzzleID] = row
	}
	return result, nil
}

func (r *PuzzleTranslationRepository) CountPending() (int64, error) {
	var count int64
	err := r.DB.Model(&model.PuzzleTranslation{}).
		Where("reviewed_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *PuzzleTranslationRepository) ListPending(offset, limit int) ([]model.PuzzleTranslation, error) {
	var translations []model.PuzzleTranslation
	err := r.DB.Where("reviewed_at IS NULL").
		Order("created_at asc").
		Offset(offset).Limit(limit).
		Find(&translations).Error
	return translations, err
}
