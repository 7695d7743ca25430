package service

import (
	"fmt"
	"testing"
	"time"

	"nandhub_backend/internal/config"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires the full service graph against an in-memory database.
// Redis is nil; the frontier falls back to the database on every call.
type testEnv struct {
	db *gorm.DB

	userRepo         *repository.UserRepository
	puzzleRepo       *repository.PuzzleRepository
	completeDataRepo *repository.PuzzleCompleteDataRepository
	reportRepo       *repository.PuzzleReportRepository
	translationRepo  *repository.PuzzleTranslationRepository
	banRepo          *repository.UserBanRepository

	auth        *AuthService
	user        *UserService
	ban         *BanService
	translation *TranslationService
	puzzle      *PuzzleService
	report      *ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)

	e := &testEnv{
		db:               db,
		userRepo:         repository.NewUserRepository(db),
		puzzleRepo:       repository.NewPuzzleRepository(db),
		completeDataRepo: repository.NewPuzzleCompleteDataRepository(db),
		reportRepo:       repository.NewPuzzleReportRepository(db),
		translationRepo:  repository.NewPuzzleTranslationRepository(db),
		banRepo:          repository.NewUserBanRepository(db),
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	e.ban = NewBanService(e.banRepo)
	e.auth = NewAuthService(e.userRepo, e.ban, cfg)
	e.user = NewUserService(e.userRepo, e.ban)
	e.translation = NewTranslationService(e.translationRepo)
	e.puzzle = NewPuzzleService(db, e.puzzleRepo, e.completeDataRepo, e.userRepo, e.translation, nil)
	e.report = NewReportService(e.reportRepo, e.puzzle, e.userRepo, e.ban, config.ModerationConfig{
		ReportsToHide:   10,
		ReportsToBan:    5,
		BanDurationDays: 100,
	})
	return e
}

var userSeq int

func (e *testEnv) createUser(t *testing.T, name string) *model.User {
	t.Helper()
	userSeq++
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s%d@example.com", name, userSeq),
		Password: "hashed",
	}
	require.NoError(t, e.userRepo.Create(user))
	return user
}

func (e *testEnv) createModerator(t *testing.T, name string) *model.User {
	t.Helper()
	moderator := e.createUser(t, name)
	require.NoError(t, e.userRepo.UpdateRole(moderator.ID, model.RoleModerator))
	moderator.Role = model.RoleModerator
	return moderator
}

// createPuzzle inserts a puzzle; a nil author makes it official.
func (e *testEnv) createPuzzle(t *testing.T, author *model.User, title string) *model.Puzzle {
	t.Helper()
	puzzle := &model.Puzzle{
		ShortKey:          "sk-" + title,
		Title:             title,
		Data:              `{"components":[]}`,
		Locale:            "en",
		MinimumComponents: 1,
		MinimumNands:      1,
	}
	if author != nil {
		puzzle.AuthorID = &author.ID
		puzzle.AuthorName = author.Name
	}
	require.NoError(t, e.puzzleRepo.Create(puzzle))
	return puzzle
}

// download seeds the per-user play-state row the way the API would.
func (e *testEnv) download(t *testing.T, puzzle *model.Puzzle, user *model.User) {
	t.Helper()
	_, err := e.puzzle.Download(puzzle.ID, user.ID, "en")
	require.NoError(t, err)
}

func (e *testEnv) reloadPuzzle(t *testing.T, id uint) *model.Puzzle {
	t.Helper()
	puzzle, err := e.puzzleRepo.FindAny(id)
	require.NoError(t, err)
	return puzzle
}

func (e *testEnv) reloadUser(t *testing.T, id string) *model.User {
	t.Helper()
	user, err := e.userRepo.FindByID(id)
	require.NoError(t, err)
	return user
}
