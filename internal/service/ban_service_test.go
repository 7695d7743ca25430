package service

import (
	"testing"
	"time"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanUserValidation(t *testing.T) {
	e := newTestEnv(t)
	target := e.createUser(t, "target")
	moderator := e.createModerator(t, "mod")

	_, err := e.ban.BanUser(target, "   ", moderator, 10)
	assert.True(t, util.IsKind(err, util.KindBanReasonEmpty))

	_, err = e.ban.BanUser(target, "spamming", moderator, 0)
	assert.True(t, util.IsKind(err, util.KindBanDurationZero))
}

func TestBanLifecycle(t *testing.T) {
	e := newTestEnv(t)
	target := e.createUser(t, "target")
	moderator := e.createModerator(t, "mod")

	ban, err := e.ban.BanUser(target, "spamming", moderator, 10)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), ban.ExpiresAt, time.Minute)

	// One active ban per user.
	_, err = e.ban.BanUser(target, "again", moderator, 5)
	assert.True(t, util.IsKind(err, util.KindBanUserAlreadyBanned))

	err = e.ban.CheckIfBanned(target.ID)
	require.Error(t, err)
	assert.True(t, util.IsKind(err, util.KindYouAreBanned))

	lifted, err := e.ban.UnbanUser(ban.ID, "appealed", moderator)
	require.NoError(t, err)
	require.NotNil(t, lifted.LiftedAt)
	assert.Equal(t, "appealed", lifted.ReasonLifted)
	require.NotNil(t, lifted.ModeratorLiftID)
	assert.Equal(t, moderator.ID, *lifted.ModeratorLiftID)

	assert.NoError(t, e.ban.CheckIfBanned(target.ID))

	_, err = e.ban.UnbanUser(ban.ID, "twice", moderator)
	assert.True(t, util.IsKind(err, util.KindBanLifted))
}

func TestExpiredBanIsNeverActive(t *testing.T) {
	e := newTestEnv(t)
	target := e.createUser(t, "target")
	moderator := e.createModerator(t, "mod")

	expired := &model.UserBan{
		UserID:      target.ID,
		Reason:      "old offense",
		ModeratorID: moderator.ID,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	require.NoError(t, e.banRepo.Create(expired))

	active, err := e.ban.GetActiveForUser(target.ID)
	require.NoError(t, err)
	assert.Nil(t, active, "an expired ban must not gate the user even with liftedAt unset")

	assert.NoError(t, e.ban.CheckIfBanned(target.ID))

	// Lifting what already expired is rejected.
	_, err = e.ban.UnbanUser(expired.ID, "too late", moderator)
	assert.True(t, util.IsKind(err, util.KindBanExpired))
}

func TestUnbanUnknownBan(t *testing.T) {
	e := newTestEnv(t)
	moderator := e.createModerator(t, "mod")

	_, err := e.ban.UnbanUser("missing", "reason", moderator)
	assert.True(t, util.IsKind(err, util.KindBanNotFound))
}

func TestBanListings(t *testing.T) {
	e := newTestEnv(t)
	moderator := e.createModerator(t, "mod")
	first := e.createUser(t, "first")
	second := e.createUser(t, "second")

	_, err := e.ban.BanUser(first, "spam", moderator, 5)
	require.NoError(t, err)
	_, err = e.ban.BanUser(second, "abuse", moderator, 5)
	require.NoError(t, err)

	page, err := e.ban.ListActive(util.Pagination{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = e.ban.ListForUser(first.ID, util.Pagination{Page: 0, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	records, ok := page.Records.([]model.UserBan)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, first.ID, records[0].UserID)
}

func TestUserServiceBanFacade(t *testing.T) {
	e := newTestEnv(t)
	target := e.createUser(t, "target")
	moderator := e.createModerator(t, "mod")

	_, err := e.user.BanUser("missing-user", "spam", moderator.ID, 5)
	assert.True(t, util.IsKind(err, util.KindUserNotFound))

	_, err = e.user.BanUser(target.ID, "spam", "missing-moderator", 5)
	assert.True(t, util.IsKind(err, util.KindModeratorNotFound))

	ban, err := e.user.BanUser(target.ID, "spam", moderator.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, target.ID, ban.UserID)
}
