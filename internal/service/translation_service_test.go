package service

import (
	"testing"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleHelpers(t *testing.T) {
	assert.True(t, IsSupportedLocale("pt-BR"))
	assert.False(t, IsSupportedLocale("xx"))

	assert.Nil(t, LocaleOrNull("klingon"))
	require.NotNil(t, LocaleOrNull("de"))
	assert.Equal(t, "de", *LocaleOrNull("de"))

	assert.Equal(t, "fr", LocaleOrDefault("fr"))
	assert.Equal(t, DefaultLocale, LocaleOrDefault(""))
	assert.Equal(t, DefaultLocale, LocaleOrDefault("klingon"))
}

func TestCreateTranslationRejections(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	translator := e.createUser(t, "translator")
	puzzle := e.createPuzzle(t, author, "adder")

	_, err := e.translation.Create(puzzle, translator.ID, "Titel", "Beschreibung", "klingon", false)
	assert.True(t, util.IsKind(err, util.KindLocaleNotSupported))

	// The puzzle is already written in its own locale.
	_, err = e.translation.Create(puzzle, translator.ID, "Adder", "An adder", "en", false)
	assert.True(t, util.IsKind(err, util.KindPuzzleAlreadyInLocale))
}

func TestCreateTranslationUpsertsPerUser(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	translator := e.createUser(t, "translator")
	puzzle := e.createPuzzle(t, author, "adder")

	first, err := e.translation.Create(puzzle, translator.ID, "  Addierer ", " Ein Addierer ", "de", false)
	require.NoError(t, err)
	assert.Equal(t, "Addierer", first.Title)
	assert.Equal(t, "Ein Addierer", first.Description)
	assert.False(t, first.Approved)
	assert.Nil(t, first.ReviewedAt)
	assert.Nil(t, first.ReviewerID)

	second, err := e.translation.Create(puzzle, translator.ID, "Volladdierer", "Besser", "de", false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resubmitting overwrites the same suggestion")
	assert.Equal(t, "Volladdierer", second.Title)
}

func TestCreateTranslationApprovedBlocksLocale(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	moderator := e.createModerator(t, "mod")
	translator := e.createUser(t, "translator")
	puzzle := e.createPuzzle(t, author, "adder")

	approved, err := e.translation.Create(puzzle, moderator.ID, "Addierer", "Ein Addierer", "de", true)
	require.NoError(t, err)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ReviewedAt)
	require.NotNil(t, approved.ReviewerID)
	assert.Equal(t, moderator.ID, *approved.ReviewerID)

	// Other locales stay open, the approved one is closed for everyone.
	_, err = e.translation.Create(puzzle, translator.ID, "Addierer", "Noch einer", "de", false)
	assert.True(t, util.IsKind(err, util.KindPuzzleAlreadyTranslated))

	_, err = e.translation.Create(puzzle, translator.ID, "Additionneur", "Un additionneur", "fr", false)
	assert.NoError(t, err)
}

func TestReviewTranslation(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	translator := e.createUser(t, "translator")
	moderator := e.createModerator(t, "mod")
	puzzle := e.createPuzzle(t, author, "adder")

	pending, err := e.translation.Create(puzzle, translator.ID, "Addierer", "Ein Addierer", "de", false)
	require.NoError(t, err)

	reviewed, err := e.translation.Review(pending.ID, moderator.ID, true)
	require.NoError(t, err)
	assert.True(t, reviewed.Approved)
	require.NotNil(t, reviewed.ReviewedAt)
	require.NotNil(t, reviewed.ReviewerID)
	assert.Equal(t, moderator.ID, *reviewed.ReviewerID)

	found, err := e.translation.FindApproved(puzzle.ID, "de")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, pending.ID, found.ID)

	_, err = e.translation.Review("missing", moderator.ID, true)
	assert.True(t, util.IsKind(err, util.KindPuzzleNotFound))
}

func TestListPendingTranslations(t *testing.T) {
	e := newTestEnv(t)
	author := e.createUser(t, "author")
	translator := e.createUser(t, "translator")
	moderator := e.createModerator(t, "mod")
	puzzle := e.createPuzzle(t, author, "adder")

	pending, err := e.translation.Create(puzzle, translator.ID, "Addierer", "Ein Addierer", "de", false)
	require.NoError(t, err)
	_, err = e.translation.Create(puzzle, moderator.ID, "Additionneur", "Un additionneur", "fr", true)
	require.NoError(t, err)

	page, err := e.translation.ListPending(util.Pagination{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total, "reviewed translations are not pending")

	records, ok := page.Records.([]model.PuzzleTranslation)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, pending.ID, records[0].ID)
}
