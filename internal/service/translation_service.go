package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"

	"gorm.io/gorm"
)

const DefaultLocale = "en"

// Keep in sync with the frontend locale list.
var supportedLocales = []string{
	"en", "de", "cs", "da", "et", "es-419", "fr", "it", "pt-BR", "sv",
	"tr", "el", "ru", "uk", "zh-TW", "zh-CN", "nb", "mt-MT", "ar", "nl",
	"vi", "th", "hu", "pl", "ja", "kor", "no", "pt-PT", "fi", "ro", "he",
}

type TranslationService struct {
	TranslationRepo *repository.PuzzleTranslationRepository
}

func NewTranslationService(translationRepo *repository.PuzzleTranslationRepository) *TranslationService {
	return &TranslationService{TranslationRepo: translationRepo}
}

func IsSupportedLocale(locale string) bool {
	for _, l := range supportedLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// LocaleOrNull returns the locale if it is supported, otherwise nil.
func LocaleOrNull(locale string) *string {
	if locale == "" || !IsSupportedLocale(locale) {
		return nil
	}
	return &locale
}

func LocaleOrDefault(locale string) string {
	if l := LocaleOrNull(locale); l != nil {
		return *l
	}
	return DefaultLocale
}

// FindApproved returns the approved translation for the puzzle in the
// given locale, or nil when there is none.
func (s *TranslationService) FindApproved(puzzleID uint, locale string) (*model.PuzzleTranslation, error) {
	translation, err := s.TranslationRepo.FindApproved(puzzleID, locale)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return translation, err
}

// Create records a user's translation suggestion for a puzzle. A
// resubmission by the same user in the same locale overwrites their
// previous suggestion. Moderator submissions pass approved=true and
// are reviewed on the spot.
func (s *TranslationService) Create(puzzle *model.Puzzle, userID, title, description, locale string, approved bool) (*model.PuzzleTranslation, error) {
	if !IsSupportedLocale(locale) {
		return nil, util.NewAppErrorf(http.StatusBadRequest, util.KindLocaleNotSupported,
			"Locale %s not supported", locale)
	}
	if locale == puzzle.Locale {
		return nil, util.NewAppErrorf(http.StatusNotAcceptable, util.KindPuzzleAlreadyInLocale,
			"Original puzzle is already on locale %s", locale)
	}

	approvedTranslation, err := s.FindApproved(puzzle.ID, locale)
	if err != nil {
		return nil, err
	}
	if approvedTranslation != nil {
		return nil, util.NewAppErrorf(http.StatusNotAcceptable, util.KindPuzzleAlreadyTranslated,
			"Puzzle %d already has an approved translation in %s", puzzle.ID, locale)
	}

	var reviewedAt *time.Time
	var reviewerID *string
	if approved {
		now := time.Now()
		reviewedAt = &now
		reviewerID = &userID
	}

	previous, err := s.TranslationRepo.FindByPuzzleUserAndLocale(puzzle.ID, userID, locale)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if previous != nil {
		previous.Title = strings.TrimSpace(title)
		previous.Description = strings.TrimSpace(description)
		previous.Approved = approved
		previous.ReviewedAt = reviewedAt
		previous.ReviewerID = reviewerID
		if err := s.TranslationRepo.Save(previous); err != nil {
			return nil, err
		}
		return previous, nil
	}

	translation := &model.PuzzleTranslation{
		PuzzleID:    puzzle.ID,
		UserID:      userID,
		Locale:      locale,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Approved:    approved,
		ReviewedAt:  reviewedAt,
		ReviewerID:  reviewerID,
	}
	if err := s.TranslationRepo.Create(translation); err != nil {
		return nil, err
	}
	return translation, nil
}

// Review settles a pending translation. The not-found error reuses the
// puzzle kind, which is what clients historically received.
func (s *TranslationService) Review(translationID, reviewerID string, approved bool) (*model.PuzzleTranslation, error) {
	translation, err := s.TranslationRepo.FindByID(translationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPuzzleNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	translation.ReviewerID = &reviewerID
	translation.Approved = approved
	translation.ReviewedAt = &now
	if err := s.TranslationRepo.Save(translation); err != nil {
		return nil, err
	}
	return translation, nil
}

// ListPending pages through unreviewed translations, oldest first.
func (s *TranslationService) ListPending(p util.Pagination) (*util.PageResult, error) {
	return util.Paginate(p,
		func() (int64, error) { return s.TranslationRepo.CountPending() },
		func(offset, limit int) (interface{}, error) {
			return s.TranslationRepo.ListPending(offset, limit)
		})
}
