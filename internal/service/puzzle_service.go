package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"nandhub_backend/internal/difficulty"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"
	"nandhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Category names the canonical listing filters. Keep in sync with the
// frontend.
type Category string

const (
	CategoryOfficial  Category = "official"
	CategoryTopRated  Category = "top-rated"
	CategoryNew       Category = "new"
	CategoryEasy      Category = "easy"
	CategoryMedium    Category = "medium"
	CategoryHard      Category = "hard"
	CategoryMine      Category = "mine"
	CategoryCompleted Category = "completed"
)

// Duration buckets search results by average completion time.
type Duration string

const (
	DurationShort  Duration = "short"
	DurationMedium Duration = "medium"
	DurationLong   Duration = "long"
	DurationAny    Duration = "any"
)

// DifficultyFilter buckets search results by difficulty score.
type DifficultyFilter string

const DifficultyAny DifficultyFilter = "any"

const frontierCacheTTL = 5 * time.Minute

// PuzzleMetadata is everything a client needs to render a puzzle card:
// the stored row minus the level data blob, enriched with the
// requesting user's play state and the locale's approved translation.
type PuzzleMetadata struct {
	ID                      uint       `json:"id"`
	Author                  *string    `json:"author"`
	AuthorName              string     `json:"authorName"`
	ShortKey                string     `json:"shortKey"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Locale                  string     `json:"locale"`
	Likes                   int        `json:"likes"`
	Completions             int        `json:"completions"`
	Downloads               int        `json:"downloads"`
	AverageTime             *float64   `json:"averageTime"`
	AverageDifficultyRating *float64   `json:"averageDifficultyRating"`
	CreatedAt               time.Time  `json:"createdAt"`
	HiddenAt                *time.Time `json:"hiddenAt,omitempty"`
	MinimumComponents       int        `json:"minimumComponents"`
	MaximumComponents       *int       `json:"maximumComponents,omitempty"`
	MinimumNands            int        `json:"minimumNands"`

	Liked            bool    `json:"liked"`
	Completed        bool    `json:"completed"`
	Difficulty       *string `json:"difficulty"`
	DifficultyRating *string `json:"difficultyRating"`
	CanPlay          bool    `json:"canPlay"`
}

// PuzzleFullData is the download payload: the level data alongside the
// metadata card.
type PuzzleFullData struct {
	Game string         `json:"game"`
	Meta PuzzleMetadata `json:"meta"`
}

// PuzzleSimpleData is the reduced projection moderation listings use.
// It never carries the level data blob.
type PuzzleSimpleData struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	AuthorName  string     `json:"authorName"`
	HiddenAt    *time.Time `json:"hiddenAt"`
	Completions int        `json:"completions"`
	Likes       int        `json:"likes"`
	Downloads   int        `json:"downloads"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CompletionResult carries the updated play-state row plus the user's
// new trophy total, which is nil on a redo.
type CompletionResult struct {
	CompleteData *model.PuzzleCompleteData `json:"completeData"`
	Trophies     *int                      `json:"trophies"`
}

type PuzzleService struct {
	DB                 *gorm.DB
	PuzzleRepo         *repository.PuzzleRepository
	CompleteDataRepo   *repository.PuzzleCompleteDataRepository
	UserRepo           *repository.UserRepository
	TranslationService *TranslationService
	Redis              *redis.Client
}

func NewPuzzleService(
	db *gorm.DB,
	puzzleRepo *repository.PuzzleRepository,
	completeDataRepo *repository.PuzzleCompleteDataRepository,
	userRepo *repository.UserRepository,
	translationService *TranslationService,
	redisClient *redis.Client,
) *PuzzleService {
	return &PuzzleService{
		DB:                 db,
		PuzzleRepo:         puzzleRepo,
		CompleteDataRepo:   completeDataRepo,
		UserRepo:           userRepo,
		TranslationService: translationService,
		Redis:              redisClient,
	}
}

// Get returns a visible puzzle or PuzzleNotFound. Hidden puzzles are
// indistinguishable from missing ones for regular users.
func (s *PuzzleService) Get(puzzleID uint) (*model.Puzzle, error) {
	puzzle, err := s.PuzzleRepo.FindVisible(puzzleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPuzzleNotFound
	}
	return puzzle, err
}

// GetAny returns the puzzle regardless of visibility; moderation only.
func (s *PuzzleService) GetAny(puzzleID uint) (*model.Puzzle, error) {
	puzzle, err := s.PuzzleRepo.FindAny(puzzleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPuzzleNotFound
	}
	return puzzle, err
}

func (s *PuzzleService) IsUserOwner(puzzleID uint, userID string) (bool, error) {
	return s.PuzzleRepo.IsUserOwner(puzzleID, userID)
}

func (s *PuzzleService) Create(shortKey, title, data, description string, minimumComponents int, minimumNands, maximumComponents *int, author *model.User, locale string) (*model.Puzzle, error) {
	// TODO when NAND counting is implemented, drop the default of 1.
	nands := 1
	if minimumNands != nil {
		nands = *minimumNands
	}

	puzzle := &model.Puzzle{
		ShortKey:          shortKey,
		Title:             title,
		Data:              data,
		Description:       description,
		AuthorID:          &author.ID,
		AuthorName:        author.Name,
		Locale:            locale,
		MinimumComponents: minimumComponents,
		MaximumComponents: maximumComponents,
		MinimumNands:      nands,
	}
	if err := s.PuzzleRepo.Create(puzzle); err != nil {
		return nil, err
	}
	return puzzle, nil
}

// ListByCategory resolves a category name to its canonical filter and
// sort, then returns the metadata cards for the requesting user.
func (s *PuzzleService) ListByCategory(category Category, userID, locale string) ([]PuzzleMetadata, error) {
	var filter repository.PuzzleFilter
	var order string

	switch category {
	case CategoryOfficial:
		filter.OfficialOnly = true
	case CategoryCompleted:
		filter.CompletedBy = userID
	case CategoryMine:
		filter.AuthorID = userID
	case CategoryNew:
		order = "created_at desc"
	case CategoryTopRated:
		order = "likes desc"
	case CategoryEasy, CategoryMedium, CategoryHard:
		r := difficulty.Ranges[string(category)]
		filter.MinDifficulty = &r.Min
		filter.MaxDifficulty = &r.Max
	default:
		return nil, util.NewAppErrorf(http.StatusBadRequest, util.KindBadRequest,
			"Invalid category %q!", category)
	}

	return s.listMetadata(filter, order, userID, locale)
}

// SearchPuzzles filters by a case-insensitive title/description match
// plus optional duration and difficulty buckets. includeCompleted
// false drops puzzles the user already finished.
func (s *PuzzleService) SearchPuzzles(term string, duration Duration, diff DifficultyFilter, includeCompleted bool, userID, locale string) ([]PuzzleMetadata, error) {
	filter := repository.PuzzleFilter{Search: term}

	if !includeCompleted {
		filter.NotCompletedBy = userID
	}

	if diff != "" && diff != DifficultyAny {
		r, ok := difficulty.Ranges[string(diff)]
		if !ok {
			return nil, util.ErrInvalidDifficulty
		}
		filter.MinDifficulty = &r.Min
		filter.MaxDifficulty = &r.Max
	}

	if duration != "" && duration != DurationAny {
		short, long := 120.0, 600.0
		switch duration {
		case DurationShort:
			filter.BelowAverageTime = &short
		case DurationLong:
			filter.AboveAverageTime = &long
		default:
			filter.MinAverageTime = &short
			filter.MaxAverageTime = &long
		}
	}

	return s.listMetadata(filter, "", userID, locale)
}

func (s *PuzzleService) listMetadata(filter repository.PuzzleFilter, order, userID, locale string) ([]PuzzleMetadata, error) {
	puzzles, err := s.PuzzleRepo.List(filter, order)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(puzzles))
	for i := range puzzles {
		ids[i] = puzzles[i].ID
	}

	completeData, err := s.CompleteDataRepo.MapForUser(userID, ids)
	if err != nil {
		return nil, err
	}
	translations, err := s.TranslationService.TranslationRepo.MapApprovedForLocale(ids, locale)
	if err != nil {
		return nil, err
	}
	frontier, err := s.officialFrontier(userID)
	if err != nil {
		return nil, err
	}

	metadata := make([]PuzzleMetadata, len(puzzles))
	for i := range puzzles {
		var data *model.PuzzleCompleteData
		if row, ok := completeData[puzzles[i].ID]; ok {
			data = &row
		}
		var translation *model.PuzzleTranslation
		if row, ok := translations[puzzles[i].ID]; ok {
			translation = &row
		}
		metadata[i] = buildMetadata(&puzzles[i], data, translation, frontier)
	}
	return metadata, nil
}

// Download assembles the play object for a visible puzzle, lazily
// creating the user's play-state row and counting the download. The
// row must exist before a completion can be submitted.
func (s *PuzzleService) Download(puzzleID uint, userID, locale string) (*PuzzleFullData, error) {
	var full *PuzzleFullData

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		puzzleRepo := repository.NewPuzzleRepository(tx)
		completeDataRepo := repository.NewPuzzleCompleteDataRepository(tx)

		puzzle, err := puzzleRepo.FindVisible(puzzleID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPuzzleNotFound
		}
		if err != nil {
			return err
		}

		completeData, err := completeDataRepo.FindByPuzzleAndUser(puzzleID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			completeData = &model.PuzzleCompleteData{PuzzleID: puzzleID, UserID: userID}
			if err := completeDataRepo.Create(completeData); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		puzzle.Downloads++
		if err := puzzleRepo.Save(puzzle); err != nil {
			return err
		}

		translationRepo := repository.NewPuzzleTranslationRepository(tx)
		translation, err := translationRepo.FindApproved(puzzleID, locale)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			translation = nil
		} else if err != nil {
			return err
		}

		frontier, err := s.frontierVia(puzzleRepo, userID)
		if err != nil {
			return err
		}

		full = &PuzzleFullData{
			Game: puzzle.Data,
			Meta: buildMetadata(puzzle, completeData, translation, frontier),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

// CompletePuzzle records a completion submission inside one
// transaction. The first completion by a user feeds both averages,
// counts the completion and like, and awards trophies once; a redo
// only corrects the rating average and the like flag. The difficulty
// score is recomputed from the averages either way.
func (s *PuzzleService) CompletePuzzle(puzzleID uint, timeTaken float64, liked bool, componentsUsed, nandsUsed int, ratingLabel string, user *model.User) (*CompletionResult, error) {
	rating, ok := difficulty.RatingIndex(ratingLabel)
	if !ok {
		return nil, util.ErrInvalidDifficulty
	}

	var result *CompletionResult
	var official bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		puzzleRepo := repository.NewPuzzleRepository(tx)
		completeDataRepo := repository.NewPuzzleCompleteDataRepository(tx)
		userRepo := repository.NewUserRepository(tx)

		puzzle, err := puzzleRepo.FindVisible(puzzleID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrPuzzleNotFound
		}
		if err != nil {
			return err
		}
		official = puzzle.Official()

		previous, err := completeDataRepo.FindByPuzzleAndUser(puzzleID, user.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NewAppError(http.StatusBadRequest, util.KindBadRequest,
				"Puzzle must be downloaded before completion!")
		}
		if err != nil {
			return err
		}

		firstCompletion := !previous.Completed()
		previousLiked := previous.Liked
		previousRating := previous.DifficultyRating

		now := time.Now()
		previous.TimeTaken = &timeTaken
		previous.Liked = liked
		previous.ComponentsUsed = componentsUsed
		previous.NandsUsed = nandsUsed
		previous.DifficultyRating = rating
		previous.CompletedAt = &now
		if err := completeDataRepo.Save(previous); err != nil {
			return err
		}

		if firstCompletion {
			puzzle.AverageTime = difficulty.IncrementalAverage(puzzle.AverageTime, puzzle.Completions, &timeTaken)
			puzzle.AverageDifficultyRating = difficulty.IncrementalAverage(
				puzzle.AverageDifficultyRating, puzzle.Completions, ratingValue(rating))

			if liked {
				puzzle.Likes++
			}
			puzzle.Completions++
		} else {
			// Average time is deliberately left untouched on a redo:
			// the original per-user time sample is not retained, so
			// there is nothing to correct against.
			puzzle.AverageDifficultyRating = difficulty.CorrectiveAverage(
				puzzle.AverageDifficultyRating, puzzle.Completions,
				ratingValue(previousRating), ratingValue(rating))

			if previousLiked && !liked {
				puzzle.Likes--
			} else if !previousLiked && liked {
				puzzle.Likes++
			}
		}

		averageTime := 0.0
		if puzzle.AverageTime != nil {
			averageTime = *puzzle.AverageTime
		}
		newDifficulty := difficulty.Calculate(averageTime, puzzle.AverageDifficultyRating)
		puzzle.Difficulty = &newDifficulty

		if err := puzzleRepo.Save(puzzle); err != nil {
			return err
		}

		result = &CompletionResult{CompleteData: previous}

		if firstCompletion {
			newTotal := user.Trophies + difficulty.Trophies(newDifficulty)
			if err := userRepo.UpdateTrophies(user.ID, newTotal); err != nil {
				return err
			}
			user.Trophies = newTotal
			result.Trophies = &newTotal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if official {
		s.invalidateFrontier(user.ID)
	}
	return result, nil
}

func (s *PuzzleService) HidePuzzle(puzzleID uint) (*PuzzleSimpleData, error) {
	now := time.Now()
	return s.setHidden(puzzleID, &now)
}

func (s *PuzzleService) UnhidePuzzle(puzzleID uint) (*PuzzleSimpleData, error) {
	return s.setHidden(puzzleID, nil)
}

func (s *PuzzleService) setHidden(puzzleID uint, hiddenAt *time.Time) (*PuzzleSimpleData, error) {
	puzzle, err := s.GetAny(puzzleID)
	if err != nil {
		return nil, err
	}

	puzzle.HiddenAt = hiddenAt
	if err := s.PuzzleRepo.UpdateFields(puzzleID, map[string]interface{}{"hidden_at": hiddenAt}); err != nil {
		return nil, err
	}
	return simpleData(puzzle), nil
}

// ListAllHidden pages through hidden puzzles for the moderation queue,
// newest first.
func (s *PuzzleService) ListAllHidden(p util.Pagination) (*util.PageResult, error) {
	return util.Paginate(p,
		func() (int64, error) { return s.PuzzleRepo.CountHidden() },
		func(offset, limit int) (interface{}, error) {
			puzzles, err := s.PuzzleRepo.ListHidden(offset, limit)
			if err != nil {
				return nil, err
			}
			records := make([]*PuzzleSimpleData, len(puzzles))
			for i := range puzzles {
				records[i] = simpleData(&puzzles[i])
			}
			return records, nil
		})
}

// Delete hard-deletes the puzzle and its play-state rows. Ownership is
// checked by the caller.
func (s *PuzzleService) Delete(puzzleID uint) error {
	if _, err := s.GetAny(puzzleID); err != nil {
		return err
	}
	return s.PuzzleRepo.Delete(puzzleID)
}

// officialFrontier resolves the highest official puzzle id the user
// may play, caching the answer briefly since every listing needs it.
func (s *PuzzleService) officialFrontier(userID string) (uint, error) {
	return s.frontierVia(s.PuzzleRepo, userID)
}

func (s *PuzzleService) frontierVia(puzzleRepo *repository.PuzzleRepository, userID string) (uint, error) {
	ctx := context.Background()
	key := frontierCacheKey(userID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, key).Result()
		if err == nil {
			if id, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
				return uint(id), nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("frontier cache read failed", zap.Error(err))
		}
	}

	frontier, err := puzzleRepo.OfficialFrontier(userID)
	if err != nil {
		return 0, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, key, strconv.FormatUint(uint64(frontier), 10), frontierCacheTTL).Err(); err != nil {
			logger.Log.Warn("frontier cache write failed", zap.Error(err))
		}
	}
	return frontier, nil
}

func (s *PuzzleService) invalidateFrontier(userID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), frontierCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("frontier cache invalidation failed", zap.Error(err))
	}
}

func frontierCacheKey(userID string) string {
	return fmt.Sprintf("official_frontier:%s", userID)
}

// buildMetadata merges the stored puzzle with the requesting user's
// play state and the locale's approved translation. Official puzzles
// are playable only up to the user's unlock frontier.
func buildMetadata(puzzle *model.Puzzle, completeData *model.PuzzleCompleteData, translation *model.PuzzleTranslation, frontier uint) PuzzleMetadata {
	meta := PuzzleMetadata{
		ID:                      puzzle.ID,
		Author:                  puzzle.AuthorID,
		AuthorName:              puzzle.AuthorName,
		ShortKey:                puzzle.ShortKey,
		Title:                   puzzle.Title,
		Description:             puzzle.Description,
		Locale:                  puzzle.Locale,
		Likes:                   puzzle.Likes,
		Completions:             puzzle.Completions,
		Downloads:               puzzle.Downloads,
		AverageTime:             puzzle.AverageTime,
		AverageDifficultyRating: puzzle.AverageDifficultyRating,
		CreatedAt:               puzzle.CreatedAt,
		HiddenAt:                puzzle.HiddenAt,
		MinimumComponents:       puzzle.MinimumComponents,
		MaximumComponents:       puzzle.MaximumComponents,
		MinimumNands:            puzzle.MinimumNands,
		Difficulty:              difficulty.LabelFor(puzzle.Difficulty),
		CanPlay:                 true,
	}

	if puzzle.Official() {
		meta.CanPlay = puzzle.ID <= frontier
	}

	if completeData != nil {
		meta.Liked = completeData.Liked
		meta.Completed = completeData.Completed()
		meta.DifficultyRating = difficulty.RatingLabel(completeData.DifficultyRating)
	}

	if translation != nil {
		meta.Title = translation.Title
		meta.Description = translation.Description
		meta.Locale = translation.Locale
	}

	return meta
}

func simpleData(puzzle *model.Puzzle) *PuzzleSimpleData {
	return &PuzzleSimpleData{
		ID:          puzzle.ID,
		Title:       puzzle.Title,
		AuthorName:  puzzle.AuthorName,
		HiddenAt:    puzzle.HiddenAt,
		Completions: puzzle.Completions,
		Likes:       puzzle.Likes,
		Downloads:   puzzle.Downloads,
		CreatedAt:   puzzle.CreatedAt,
	}
}

func ratingValue(rating *int) *float64 {
	if rating == nil {
		return nil
	}
	v := float64(*rating)
	return &v
}
