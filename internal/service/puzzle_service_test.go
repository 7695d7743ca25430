package service

import (
	"testing"

	"nandhub_backend/internal/difficulty"
	"nandhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletePuzzleFirstTime(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "adder")

	e.download(t, puzzle, player)

	result, err := e.puzzle.CompletePuzzle(puzzle.ID, 100, true, 5, 3, "easy", player)
	require.NoError(t, err)

	updated := e.reloadPuzzle(t, puzzle.ID)
	assert.Equal(t, 1, updated.Completions)
	assert.Equal(t, 1, updated.Likes)
	require.NotNil(t, updated.AverageTime)
	assert.InDelta(t, 100, *updated.AverageTime, 1e-9)
	require.NotNil(t, updated.AverageDifficultyRating)
	assert.InDelta(t, 0, *updated.AverageDifficultyRating, 1e-9)

	zero := 0.0
	expectedScore := difficulty.Calculate(100, &zero)
	require.NotNil(t, updated.Difficulty)
	assert.InDelta(t, expectedScore, *updated.Difficulty, 1e-9)

	expectedTrophies := difficulty.Trophies(expectedScore)
	require.NotNil(t, result.Trophies)
	assert.Equal(t, expectedTrophies, *result.Trophies)
	assert.Equal(t, expectedTrophies, e.reloadUser(t, player.ID).Trophies)

	require.NotNil(t, result.CompleteData.CompletedAt)
	assert.True(t, result.CompleteData.Liked)
}

func TestCompletePuzzleRedoSameRatingIsNoOp(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "mux")

	e.download(t, puzzle, player)
	first, err := e.puzzle.CompletePuzzle(puzzle.ID, 60, false, 4, 2, "medium", player)
	require.NoError(t, err)
	require.NotNil(t, first.Trophies)

	afterFirst := e.reloadPuzzle(t, puzzle.ID)

	redo, err := e.puzzle.CompletePuzzle(puzzle.ID, 30, false, 4, 2, "medium", player)
	require.NoError(t, err)
	assert.Nil(t, redo.Trophies, "a redo never awards trophies")

	afterRedo := e.reloadPuzzle(t, puzzle.ID)
	assert.Equal(t, 1, afterRedo.Completions)
	assert.InDelta(t, *afterFirst.AverageDifficultyRating, *afterRedo.AverageDifficultyRating, 1e-9)
	// Average time deliberately keeps the first sample.
	assert.InDelta(t, *afterFirst.AverageTime, *afterRedo.AverageTime, 1e-9)
	assert.Equal(t, e.reloadUser(t, player.ID).Trophies, *first.Trophies)
}

func TestCompletePuzzleRedoFlipsLike(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "latch")

	e.download(t, puzzle, player)
	_, err := e.puzzle.CompletePuzzle(puzzle.ID, 50, true, 2, 1, "", player)
	require.NoError(t, err)
	assert.Equal(t, 1, e.reloadPuzzle(t, puzzle.ID).Likes)

	_, err = e.puzzle.CompletePuzzle(puzzle.ID, 50, false, 2, 1, "", player)
	require.NoError(t, err)
	assert.Equal(t, 0, e.reloadPuzzle(t, puzzle.ID).Likes)
}

func TestCompletePuzzleRedoCorrectsRating(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	p1 := e.createUser(t, "first")
	p2 := e.createUser(t, "second")
	puzzle := e.createPuzzle(t, author, "alu")

	e.download(t, puzzle, p1)
	e.download(t, puzzle, p2)

	_, err := e.puzzle.CompletePuzzle(puzzle.ID, 100, false, 1, 1, "easy", p1)
	require.NoError(t, err)
	_, err = e.puzzle.CompletePuzzle(puzzle.ID, 100, false, 1, 1, "hard", p2)
	require.NoError(t, err)

	// Ratings 0 and 2 average to 1.
	assert.InDelta(t, 1.0, *e.reloadPuzzle(t, puzzle.ID).AverageDifficultyRating, 1e-9)

	// p1 redoes with "hard": 1 - 0/2 + 2/2 == 2.
	_, err = e.puzzle.CompletePuzzle(puzzle.ID, 100, false, 1, 1, "hard", p1)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, *e.reloadPuzzle(t, puzzle.ID).AverageDifficultyRating, 1e-9)
}

func TestCompletePuzzleRequiresDownload(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "register")

	_, err := e.puzzle.CompletePuzzle(puzzle.ID, 10, false, 1, 1, "", player)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestCompletePuzzleRejectsUnknownRating(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "decoder")

	e.download(t, puzzle, player)
	_, err := e.puzzle.CompletePuzzle(puzzle.ID, 10, false, 1, 1, "impossible", player)
	assert.True(t, util.IsKind(err, util.KindInvalidDifficulty))
}

func TestDownloadCreatesPlayStateAndCounts(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "counter")

	full, err := e.puzzle.Download(puzzle.ID, player.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, puzzle.Data, full.Game)
	assert.False(t, full.Meta.Completed)
	assert.True(t, full.Meta.CanPlay, "user puzzles are always playable")

	assert.Equal(t, 1, e.reloadPuzzle(t, puzzle.ID).Downloads)

	row, err := e.completeDataRepo.FindByPuzzleAndUser(puzzle.ID, player.ID)
	require.NoError(t, err)
	assert.Nil(t, row.CompletedAt)

	// A second download reuses the row.
	_, err = e.puzzle.Download(puzzle.ID, player.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, 2, e.reloadPuzzle(t, puzzle.ID).Downloads)
}

func TestDownloadAppliesApprovedTranslation(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	translator := e.createUser(t, "translator")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "xor gate")

	_, err := e.translation.Create(puzzle, translator.ID, "Porta XOR", "Uma porta", "pt-BR", true)
	require.NoError(t, err)

	full, err := e.puzzle.Download(puzzle.ID, player.ID, "pt-BR")
	require.NoError(t, err)
	assert.Equal(t, "Porta XOR", full.Meta.Title)
	assert.Equal(t, "pt-BR", full.Meta.Locale)

	// Other locales keep the native text.
	full, err = e.puzzle.Download(puzzle.ID, player.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, "xor gate", full.Meta.Title)
}

func TestOfficialUnlockProgression(t *testing.T) {
	e := newTestEnv(t)
	player := e.createUser(t, "player")

	first := e.createPuzzle(t, nil, "official-1")
	second := e.createPuzzle(t, nil, "official-2")
	third := e.createPuzzle(t, nil, "official-3")

	canPlay := func() map[uint]bool {
		metadata, err := e.puzzle.ListByCategory(CategoryOfficial, player.ID, "en")
		require.NoError(t, err)
		result := make(map[uint]bool, len(metadata))
		for _, m := range metadata {
			result[m.ID] = m.CanPlay
		}
		return result
	}

	gates := canPlay()
	assert.True(t, gates[first.ID])
	assert.False(t, gates[second.ID])
	assert.False(t, gates[third.ID])

	e.download(t, first, player)
	_, err := e.puzzle.CompletePuzzle(first.ID, 30, false, 1, 1, "", player)
	require.NoError(t, err)

	gates = canPlay()
	assert.True(t, gates[first.ID])
	assert.True(t, gates[second.ID])
	assert.False(t, gates[third.ID])
}

func TestListByCategoryFilters(t *testing.T) {
	e := newTestEnv(t)
	alice := e.createUser(t, "alice")
	bob := e.createUser(t, "bob")

	mine := e.createPuzzle(t, alice, "mine")
	other := e.createPuzzle(t, bob, "other")

	metadata, err := e.puzzle.ListByCategory(CategoryMine, alice.ID, "en")
	require.NoError(t, err)
	require.Len(t, metadata, 1)
	assert.Equal(t, mine.ID, metadata[0].ID)

	e.download(t, other, alice)
	_, err = e.puzzle.CompletePuzzle(other.ID, 10, false, 1, 1, "", alice)
	require.NoError(t, err)

	metadata, err = e.puzzle.ListByCategory(CategoryCompleted, alice.ID, "en")
	require.NoError(t, err)
	require.Len(t, metadata, 1)
	assert.Equal(t, other.ID, metadata[0].ID)

	_, err = e.puzzle.ListByCategory(Category("bogus"), alice.ID, "en")
	assert.True(t, util.IsKind(err, util.KindBadRequest))
}

func TestSearchPuzzles(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")

	adder := e.createPuzzle(t, author, "Full Adder")
	e.createPuzzle(t, author, "Multiplexer")

	results, err := e.puzzle.SearchPuzzles("adder", DurationAny, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, adder.ID, results[0].ID)

	// Completed puzzles drop out unless asked for.
	e.download(t, adder, player)
	_, err = e.puzzle.CompletePuzzle(adder.ID, 10, false, 1, 1, "", player)
	require.NoError(t, err)

	results, err = e.puzzle.SearchPuzzles("adder", DurationAny, DifficultyAny, false, player.ID, "en")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchDurationBuckets(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")

	quick := e.createPuzzle(t, author, "quick one")
	slow := e.createPuzzle(t, author, "slow one")

	fast := e.createUser(t, "fast")
	e.download(t, quick, fast)
	_, err := e.puzzle.CompletePuzzle(quick.ID, 30, false, 1, 1, "", fast)
	require.NoError(t, err)

	patient := e.createUser(t, "patient")
	e.download(t, slow, patient)
	_, err = e.puzzle.CompletePuzzle(slow.ID, 900, false, 1, 1, "", patient)
	require.NoError(t, err)

	results, err := e.puzzle.SearchPuzzles("one", DurationShort, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, quick.ID, results[0].ID)

	results, err = e.puzzle.SearchPuzzles("one", DurationLong, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, slow.ID, results[0].ID)
}

// The bucket endpoints belong to medium only: short is strictly below
// 120 seconds and long strictly above 600.
func TestSearchDurationBoundaries(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")

	atShort := e.createPuzzle(t, author, "edge short")
	atLong := e.createPuzzle(t, author, "edge long")

	solver := e.createUser(t, "solver")
	e.download(t, atShort, solver)
	_, err := e.puzzle.CompletePuzzle(atShort.ID, 120, false, 1, 1, "", solver)
	require.NoError(t, err)
	e.download(t, atLong, solver)
	_, err = e.puzzle.CompletePuzzle(atLong.ID, 600, false, 1, 1, "", solver)
	require.NoError(t, err)

	results, err := e.puzzle.SearchPuzzles("edge", DurationShort, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	assert.Empty(t, results, "averageTime of exactly 120 is not short")

	results, err = e.puzzle.SearchPuzzles("edge", DurationLong, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	assert.Empty(t, results, "averageTime of exactly 600 is not long")

	results, err = e.puzzle.SearchPuzzles("edge", DurationMedium, DifficultyAny, true, player.ID, "en")
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestHiddenPuzzlesDisappear(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	viewer := e.createUser(t, "viewer")
	puzzle := e.createPuzzle(t, author, "shifter")

	simple, err := e.puzzle.HidePuzzle(puzzle.ID)
	require.NoError(t, err)
	require.NotNil(t, simple.HiddenAt)

	_, err = e.puzzle.Get(puzzle.ID)
	assert.True(t, util.IsKind(err, util.KindPuzzleNotFound))

	metadata, err := e.puzzle.ListByCategory(CategoryNew, viewer.ID, "en")
	require.NoError(t, err)
	assert.Empty(t, metadata)

	page, err := e.puzzle.ListAllHidden(util.Pagination{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = e.puzzle.UnhidePuzzle(puzzle.ID)
	require.NoError(t, err)
	_, err = e.puzzle.Get(puzzle.ID)
	assert.NoError(t, err)
}

func TestDeleteRemovesPlayState(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	player := e.createUser(t, "player")
	puzzle := e.createPuzzle(t, author, "doomed")

	e.download(t, puzzle, player)
	require.NoError(t, e.puzzle.Delete(puzzle.ID))

	_, err := e.puzzle.GetAny(puzzle.ID)
	assert.True(t, util.IsKind(err, util.KindPuzzleNotFound))
	_, err = e.completeDataRepo.FindByPuzzleAndUser(puzzle.ID, player.ID)
	assert.Error(t, err)
}

func TestIsUserOwner(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	stranger := e.createUser(t, "stranger")
	puzzle := e.createPuzzle(t, author, "owned")

	owner, err := e.puzzle.IsUserOwner(puzzle.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, owner)

	owner, err = e.puzzle.IsUserOwner(puzzle.ID, stranger.ID)
	require.NoError(t, err)
	assert.False(t, owner)
}
