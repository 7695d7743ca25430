package model

import "time"

// PuzzleTranslation is a user-suggested localization of a puzzle's
// title and description. A resubmission by the same user for the same
// (puzzle, locale) overwrites the pending row; at most one approved
// translation may exist per (puzzle, locale).
type PuzzleTranslation struct {
	UUIDBase
	PuzzleID uint   `gorm:"uniqueIndex:uniq_translation;not null" json:"puzzleId"`
	UserID   string `gorm:"size:36;uniqueIndex:uniq_translation;not null" json:"userId"`
	Locale   string `gorm:"size:10;uniqueIndex:uniq_translation;not null" json:"locale"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Approved   bool       `gorm:"default:false;index" json:"approved"`
	ReviewedAt *time.Time `json:"reviewedAt"`
	ReviewerID *string    `gorm:"size:36" json:"reviewerId"`
}

func (PuzzleTranslation) TableName() string {
	return "puzzle_translations"
}
