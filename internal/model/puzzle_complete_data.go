package model

import "time"

// PuzzleCompleteData is the single per-(puzzle,user) play-state row.
// It is created on first download with CompletedAt nil; a completion
// submission updates the same row rather than inserting a new one, so
// redoing a puzzle corrects earlier aggregate contributions instead of
// double-counting them.
type PuzzleCompleteData struct {
	BaseModel
	PuzzleID uint   `gorm:"uniqueIndex:uniq_puzzle_user;not null" json:"puzzleId"`
	UserID   string `gorm:"size:36;uniqueIndex:uniq_puzzle_user;not null" json:"userId"`

	Liked       bool       `gorm:"default:false" json:"liked"`
	CompletedAt *time.Time `json:"completedAt"`

	TimeTaken        *float64 `json:"timeTaken"`
	ComponentsUsed   int      `gorm:"default:0" json:"componentsUsed"`
	NandsUsed        int      `gorm:"default:0" json:"nandsUsed"`
	DifficultyRating *int     `json:"difficultyRating"`
}

func (PuzzleCompleteData) TableName() string {
	return "puzzle_complete_data"
}

// Completed reports whether the user has finished the puzzle at least
// once, as opposed to only having downloaded it.
func (d *PuzzleCompleteData) Completed() bool {
	return d.CompletedAt != nil
}
