package model

import "time"

// PuzzleReport is an abuse report filed by a user against a
// user-submitted puzzle. A user may report a given puzzle once.
// Legit stays nil until a moderator reviews the report; unreviewed
// reports still count toward the auto-hide threshold.
type PuzzleReport struct {
	UUIDBase
	PuzzleID uint   `gorm:"uniqueIndex:uniq_report_puzzle_user;not null" json:"puzzleId"`
	UserID   string `gorm:"size:36;uniqueIndex:uniq_report_puzzle_user;not null" json:"userId"`
	Reason   string `gorm:"type:text;not null" json:"reason"`

	Legit       *bool      `json:"legit"`
	ReviewNotes string     `gorm:"type:text" json:"reviewNotes"`
	ReviewedAt  *time.Time `json:"reviewedAt"`
	ReviewerID  *string    `gorm:"size:36" json:"reviewerId"`
}

func (PuzzleReport) TableName() string {
	return "puzzle_reports"
}
