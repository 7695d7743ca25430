package database

import (
	"log"

	"nandhub_backend/internal/model"

	"gorm.io/gorm"
)

// officialCampaign is the built-in puzzle progression. Order matters:
// the sequential unlock walks these by ascending id, so they are
// inserted one by one in this order.
var officialCampaign = []model.Puzzle{
	{
		ShortKey:     "inverter",
		Title:        "Inverter",
		Description:  "Output the opposite of the input using a single NAND gate.",
		Data:         `{"inputs":["a"],"outputs":["out"],"truth":[[0,1],[1,0]]}`,
		MinimumNands: 1,
	},
	{
		ShortKey:     "and-gate",
		Title:        "AND Gate",
		Description:  "Output 1 only when both inputs are 1.",
		Data:         `{"inputs":["a","b"],"outputs":["out"],"truth":[[0,0,0],[0,1,0],[1,0,0],[1,1,1]]}`,
		MinimumNands: 2,
	},
	{
		ShortKey:     "or-gate",
		Title:        "OR Gate",
		Description:  "Output 1 when at least one input is 1.",
		Data:         `{"inputs":["a","b"],"outputs":["out"],"truth":[[0,0,0],[0,1,1],[1,0,1],[1,1,1]]}`,
		MinimumNands: 3,
	},
	{
		ShortKey:     "xor-gate",
		Title:        "XOR Gate",
		Description:  "Output 1 when exactly one input is 1.",
		Data:         `{"inputs":["a","b"],"outputs":["out"],"truth":[[0,0,0],[0,1,1],[1,0,1],[1,1,0]]}`,
		MinimumNands: 4,
	},
	{
		ShortKey:          "half-adder",
		Title:             "Half Adder",
		Description:       "Add two bits, producing a sum and a carry.",
		Data:              `{"inputs":["a","b"],"outputs":["sum","carry"]}`,
		MinimumNands:      6,
		MinimumComponents: 2,
	},
	{
		ShortKey:          "full-adder",
		Title:             "Full Adder",
		Description:       "Add two bits and an incoming carry.",
		Data:              `{"inputs":["a","b","cin"],"outputs":["sum","cout"]}`,
		MinimumNands:      9,
		MinimumComponents: 2,
	},
	{
		ShortKey:          "multi-bit-adder",
		Title:             "Multi-bit Adder",
		Description:       "Chain full adders into a 4-bit ripple-carry adder.",
		Data:              `{"inputs":["a[4]","b[4]","cin"],"outputs":["sum[4]","cout"]}`,
		MinimumNands:      36,
		MinimumComponents: 4,
	},
	{
		ShortKey:          "increment",
		Title:             "Increment",
		Description:       "Add one to a 4-bit number.",
		Data:              `{"inputs":["a[4]"],"outputs":["out[4]"]}`,
		MinimumNands:      36,
		MinimumComponents: 2,
	},
	{
		ShortKey:          "subtraction",
		Title:             "Subtraction",
		Description:       "Subtract using two's complement.",
		Data:              `{"inputs":["a[4]","b[4]"],"outputs":["out[4]"]}`,
		MinimumNands:      40,
		MinimumComponents: 3,
	},
	{
		ShortKey:          "is-zero",
		Title:             "Equal to Zero",
		Description:       "Output 1 when the 4-bit input is zero.",
		Data:              `{"inputs":["a[4]"],"outputs":["out"]}`,
		MinimumNands:      9,
		MinimumComponents: 2,
	},
}

// SeedOfficialPuzzles inserts the built-in campaign when no official
// puzzles exist yet. It never touches a table that already has some,
// so redeployments and live databases are left alone.
func SeedOfficialPuzzles(db *gorm.DB) error {
	var count int64
	err := db.Model(&model.Puzzle{}).Where("author_id IS NULL").Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range officialCampaign {
		puzzle := officialCampaign[i]
		if puzzle.MinimumComponents == 0 {
			puzzle.MinimumComponents = 1
		}
		if err := db.Create(&puzzle).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d official puzzles", len(officialCampaign))
	return nil
}
