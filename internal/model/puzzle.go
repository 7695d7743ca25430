package model

import "time"

// Puzzle carries both the level definition (Data) and the running
// aggregates maintained by the puzzle service. A nil AuthorID marks an
// official puzzle, which is subject to sequential unlock by id.
type Puzzle struct {
	BaseModel
	AuthorID   *string `gorm:"size:36;index" json:"author"`
	AuthorName string  `gorm:"size:100" json:"authorName"`
	ShortKey   string  `gorm:"size:50;index" json:"shortKey"`
	Title      string  `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Data       string  `gorm:"type:longtext" json:"-"`
	Locale     string  `gorm:"size:10;default:'en'" json:"locale"`

	Likes       int `gorm:"default:0" json:"likes"`
	Completions int `gorm:"default:0" json:"completions"`
	Downloads   int `gorm:"default:0" json:"downloads"`

	// Aggregates are nil until the first completion contributes data.
	// Difficulty is derived from the two averages and never accepted
	// from a client.
	AverageTime             *float64 `json:"averageTime"`
	AverageDifficultyRating *float64 `json:"averageDifficultyRating"`
	Difficulty              *float64 `json:"-"`

	HiddenAt *time.Time `gorm:"index" json:"hiddenAt,omitempty"`

	MinimumComponents int  `gorm:"default:1" json:"minimumComponents"`
	MaximumComponents *int `json:"maximumComponents,omitempty"`
	MinimumNands      int  `gorm:"default:1" json:"minimumNands"`
}

func (Puzzle) TableName() string {
	return "puzzles"
}

// Official reports whether the puzzle was authored by the platform
// itself rather than a user.
func (p *Puzzle) Official() bool {
	return p.AuthorID == nil
}
