package repository

import (
	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

type PuzzleReportRepository struct {
	DB *gorm.DB
}

func NewPuzzleReportRepository(db *gorm.DB) *PuzzleReportRepository {
	return &PuzzleReportRepository{DB: db}
}

func (r *PuzzleReportRepository) Create(report *model.PuzzleReport) error {
	return r.DB.Create(report).Error
}

func (r *PuzzleReportRepository) FindByID(id string) (*model.PuzzleReport, error) {
	var report model.PuzzleReport
	err := r.DB.First(&report, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *PuzzleReportRepository) Save(report *model.PuzzleReport) error {
	return r.DB.Save(report).Error
}

func (r *PuzzleReportRepository) HasUserReported(puzzleID uint, userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PuzzleReport{}).
		Where("puzzle_id = ? AND user_id = ?", puzzleID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountSuspected counts the reports that drive auto-hide: confirmed
// legit ones plus everything still waiting for review, so a burst of
// fresh reports can hide a puzzle before a moderator gets to them.
func (r *PuzzleReportRepository) CountSuspected(puzzleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PuzzleReport{}).
		Where("puzzle_id = ? AND (legit = ? OR reviewed_at IS NULL)", puzzleID, true).
		Count(&count).Error
	return count, err
}

// CountLegitAgainstAuthor counts moderator-confirmed reports across
// every puzzle the author has submitted; this total drives auto-ban.
func (r *PuzzleReportRepository) CountLegitAgainstAuthor(authorID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.PuzzleReport{}).
		Joins("INNER JOIN puzzles ON puzzles.id = puzzle_reports.puzzle_id").
		Where("puzzles.author_id = ? AND puzzle_reports.legit = ?", authorID, true).
		Count(&count).Error
	return count, err
}

func (r *PuzzleReportRepository) filtered(puzzleID *uint, userID *string, reviewed *bool) *gorm.DB {
	query := r.DB.Model(&model.PuzzleReport{})
	if puzzleID != nil {
		query = query.Where("puzzle_id = ?", *puzzleID)
	}
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if reviewed != nil {
		if *reviewed {
			query = query.Where("reviewed_at IS NOT NULL")
		} else {
			query = query.Where("reviewed_at IS NULL")
		}
	}
	return query
}

func (r *PuzzleReportRepository) CountFiltered(puzzleID *uint, userID *string, reviewed *bool) (int64, error) {
	var count int64
	err := r.filtered(puzzleID, userID, reviewed).Count(&count).Error
	return count, err
}

// ListFiltered returns one page of reports, oldest first, so the
// moderation queue is worked FIFO.
func (r *PuzzleReportRepository) ListFiltered(puzzleID *uint, userID *string, reviewed *bool, offset, limit int) ([]model.PuzzleReport, error) {
	var reports []model.PuzzleReport
	err := r.filtered(puzzleID, userID, reviewed).
		Order("created_at asc").
		Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, err
}
