package repository

import (
	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

type PuzzleCompleteDataRepository struct {
	DB *gorm.DB
}

func NewPuzzleCompleteDataRepository(db *gorm.DB) *PuzzleCompleteDataRepository {
	return &PuzzleCompleteDataRepository{DB: db}
}

func (r *PuzzleCompleteDataRepository) FindByPuzzleAndUser(puzzleID uint, userID string) (*model.PuzzleCompleteData, error) {
	var data model.PuzzleCompleteData
	err := r.DB.Where("puzzle_id = ? AND user_id = ?", puzzleID, userID).First(&data).Error
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (r *PuzzleCompleteDataRepository) Create(data *model.PuzzleCompleteData) error {
	return r.DB.Create(data).Error
}

func (r *PuzzleCompleteDataRepository) Save(data *model.PuzzleCompleteData) error {
	return r.DB.Save(data).Error
}

// MapForUser returns the user's play-state rows for the given puzzles,
// keyed by puzzle id, so listings avoid a per-puzzle lookup.
func (r *PuzzleCompleteDataRepository) MapForUser(userID string, puzzleIDs []uint) (map[uint]model.PuzzleCompleteData, error) {
	result := make(map[uint]model.PuzzleCompleteData, len(puzzleIDs))
	if len(puzzleIDs) == 0 {
		return result, nil
	}
	var rows []model.PuzzleCompleteData
	err := r.DB.Where("user_id = ? AND puzzle_id IN ?", userID, puzzleIDs).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.PuzzleID] = row
	}
	return result, nil
}
