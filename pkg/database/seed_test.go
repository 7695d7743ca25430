package database

import (
	"context"
	"testing"

	"nandhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Pin one connection so the shared in-memory database survives
	// pool churn for the duration of the test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	anchor, err := sqlDB.Conn(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		anchor.Close()
		sqlDB.Close()
	})

	require.NoError(t, Migrate(db))
	return db
}

func TestSeedOfficialPuzzles(t *testing.T) {
	db := newSeedTestDB(t, "seedtest-empty")

	require.NoError(t, SeedOfficialPuzzles(db))

	var puzzles []model.Puzzle
	require.NoError(t, db.Order("id asc").Find(&puzzles).Error)
	require.Len(t, puzzles, len(officialCampaign))

	for i, puzzle := range puzzles {
		assert.Nil(t, puzzle.AuthorID, "seeded puzzles are official")
		assert.Equal(t, officialCampaign[i].ShortKey, puzzle.ShortKey)
		assert.GreaterOrEqual(t, puzzle.MinimumComponents, 1)
		assert.GreaterOrEqual(t, puzzle.MinimumNands, 1)
	}

	// The campaign unlocks by ascending id, so insertion order is the
	// intended progression.
	assert.Equal(t, "inverter", puzzles[0].ShortKey)

	// Re-running against a populated table is a no-op.
	require.NoError(t, SeedOfficialPuzzles(db))
	var count int64
	require.NoError(t, db.Model(&model.Puzzle{}).Count(&count).Error)
	assert.Equal(t, int64(len(officialCampaign)), count)
}

func TestSeedSkipsWhenOfficialPuzzlesExist(t *testing.T) {
	db := newSeedTestDB(t, "seedtest-populated")

	existing := &model.Puzzle{
		ShortKey:          "custom-inverter",
		Title:             "Custom Inverter",
		Data:              `{"inputs":["a"],"outputs":["out"]}`,
		Locale:            "en",
		MinimumComponents: 1,
		MinimumNands:      1,
	}
	require.NoError(t, db.Create(existing).Error)

	require.NoError(t, SeedOfficialPuzzles(db))

	var count int64
	require.NoError(t, db.Model(&model.Puzzle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "a live official table is never reseeded")
}
