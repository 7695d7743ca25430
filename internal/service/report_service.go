package service

import (
	"errors"
	"sync"
	"time"

	"nandhub_backend/internal/config"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/repository"
	"nandhub_backend/internal/util"
	"nandhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const autoBanReason = "User has surpassed the number of allowed legit puzzle reports"

// ReportService drives the moderation escalation pipeline: reports
// accumulate per puzzle until the hide threshold auto-hides it, and
// confirmed-legit reports accumulate per author until the ban
// threshold auto-bans them.
type ReportService struct {
	ReportRepo    *repository.PuzzleReportRepository
	PuzzleService *PuzzleService
	UserRepo      *repository.UserRepository
	BanService    *BanService

	mu              sync.RWMutex
	reportsToHide   int
	reportsToBan    int
	banDurationDays int
}

func NewReportService(
	reportRepo *repository.PuzzleReportRepository,
	puzzleService *PuzzleService,
	userRepo *repository.UserRepository,
	banService *BanService,
	moderation config.ModerationConfig,
) *ReportService {
	return &ReportService{
		ReportRepo:    reportRepo,
		PuzzleService: puzzleService,
		UserRepo:      userRepo,
		BanService:    banService,
		reportsToHide:   moderation.ReportsToHide,
		reportsToBan:    moderation.ReportsToBan,
		banDurationDays: moderation.BanDurationDays,
	}
}

// SetThresholds applies reloaded configuration without a restart.
func (s *ReportService) SetThresholds(moderation config.ModerationConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reportsToHide = moderation.ReportsToHide
	s.reportsToBan = moderation.ReportsToBan
	s.banDurationDays = moderation.BanDurationDays
}

func (s *ReportService) thresholds() (hide, ban, banDays int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reportsToHide, s.reportsToBan, s.banDurationDays
}

// ReportPuzzle files a report and auto-hides the puzzle once the
// suspected-report count (legit or not yet reviewed) reaches the hide
// threshold. Unreviewed reports count so a burst of fresh reports can
// hide a puzzle before any moderator looks at it.
func (s *ReportService) ReportPuzzle(puzzleID uint, userID, reason string) (*model.PuzzleReport, error) {
	reported, err := s.ReportRepo.HasUserReported(puzzleID, userID)
	if err != nil {
		return nil, err
	}
	if reported {
		return nil, util.ErrAlreadyReported
	}

	puzzle, err := s.PuzzleService.Get(puzzleID)
	if err != nil {
		return nil, err
	}
	if puzzle.Official() {
		return nil, util.ErrCantReportOfficial
	}
	if *puzzle.AuthorID == userID {
		return nil, util.ErrReportOwnPuzzle
	}

	report := &model.PuzzleReport{
		PuzzleID: puzzleID,
		UserID:   userID,
		Reason:   reason,
	}
	if err := s.ReportRepo.Create(report); err != nil {
		return nil, err
	}

	suspected, err := s.ReportRepo.CountSuspected(puzzleID)
	if err != nil {
		return nil, err
	}

	hideThreshold, _, _ := s.thresholds()
	if suspected >= int64(hideThreshold) {
		if _, err := s.PuzzleService.HidePuzzle(puzzleID); err != nil {
			return nil, err
		}
		logger.Log.Info("puzzle auto-hidden after report threshold",
			zap.Uint("puzzle_id", puzzleID),
			zap.Int64("suspected_reports", suspected))
	}

	return report, nil
}

// RespondToReport records a moderator's verdict. Once the author has
// accumulated enough legit reports across their puzzles, a fixed
// 100-day ban is issued automatically.
func (s *ReportService) RespondToReport(reportID string, legit bool, reviewNotes string, moderator *model.User) (*model.PuzzleReport, error) {
	report, err := s.ReportRepo.FindByID(reportID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}

	puzzle, err := s.PuzzleService.GetAny(report.PuzzleID)
	if err != nil {
		return nil, err
	}

	author, err := s.UserRepo.FindByID(*puzzle.AuthorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if author.ID == moderator.ID {
		return nil, util.ErrCantJudgeOwnReport
	}

	now := time.Now()
	report.Legit = &legit
	report.ReviewNotes = reviewNotes
	report.ReviewedAt = &now
	report.ReviewerID = &moderator.ID
	if err := s.ReportRepo.Save(report); err != nil {
		return nil, err
	}

	legitCount, err := s.ReportRepo.CountLegitAgainstAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	_, banThreshold, banDays := s.thresholds()
	if legitCount >= int64(banThreshold) {
		if err := s.autoBan(author, moderator, legitCount, banDays); err != nil {
			return nil, err
		}
	}

	return report, nil
}

func (s *ReportService) autoBan(author, moderator *model.User, legitCount int64, banDays int) error {
	// An author already serving a ban keeps their current one; a
	// second verdict past the threshold is not a new offense.
	active, err := s.BanService.GetActiveForUser(author.ID)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	if _, err := s.BanService.BanUser(author, autoBanReason, moderator, banDays); err != nil {
		return err
	}
	logger.Log.Info("user auto-banned after legit report threshold",
		zap.String("user_id", author.ID),
		zap.Int64("legit_reports", legitCount))
	return nil
}

// ListReports pages the moderation queue oldest first, optionally
// filtered by puzzle, reporter, or review state.
func (s *ReportService) ListReports(p util.Pagination, puzzleID *uint, userID *string, reviewed *bool) (*util.PageResult, error) {
	return util.Paginate(p,
		func() (int64, error) { return s.ReportRepo.CountFiltered(puzzleID, userID, reviewed) },
		func(offset, limit int) (interface{}, error) {
			return s.ReportRepo.ListFiltered(puzzleID, userID, reviewed, offset, limit)
		})
}
