package controller

import (
	"nandhub_backend/internal/middleware"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/service"
	"nandhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModerationController struct {
	ReportService      *service.ReportService
	TranslationService *service.TranslationService
	PuzzleService      *service.PuzzleService
	UserService        *service.UserService
	BanService         *service.BanService
}

func NewModerationController(
	reportService *service.ReportService,
	translationService *service.TranslationService,
	puzzleService *service.PuzzleService,
	userService *service.UserService,
	banService *service.BanService,
) *ModerationController {
	return &ModerationController{
		ReportService:      reportService,
		TranslationService: translationService,
		PuzzleService:      puzzleService,
		UserService:        userService,
		BanService:         banService,
	}
}

// ListReports pages the report queue, filterable by puzzle, reporter
// and review state.
func (c *ModerationController) ListReports(ctx *gin.Context) {
	var puzzleID *uint
	if raw := ctx.Query("puzzleId"); raw != "" {
		id := util.MustParseUint(raw)
		puzzleID = &id
	}
	var userID *string
	if raw := ctx.Query("userId"); raw != "" {
		userID = &raw
	}
	reviewed := util.ParseBoolQuery(ctx.Query("reviewed"))

	page, err := c.ReportService.ListReports(middleware.GetPagination(ctx), puzzleID, userID, reviewed)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

type RespondToReportRequest struct {
	Legit       *bool  `json:"legit" binding:"required"`
	ReviewNotes string `json:"reviewNotes"`
}

func (c *ModerationController) RespondToReport(ctx *gin.Context) {
	var req RespondToReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	moderator, err := c.currentUser(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	report, err := c.ReportService.RespondToReport(ctx.Param("reportId"), *req.Legit, req.ReviewNotes, moderator)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

func (c *ModerationController) ListPendingTranslations(ctx *gin.Context) {
	page, err := c.TranslationService.ListPending(middleware.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

type ReviewTranslationRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (c *ModerationController) ReviewTranslation(ctx *gin.Context) {
	var req ReviewTranslationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	translation, err := c.TranslationService.Review(ctx.Param("translationId"), claims.UserID, *req.Approved)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, translation)
}

func (c *ModerationController) ListHiddenPuzzles(ctx *gin.Context) {
	page, err := c.PuzzleService.ListAllHidden(middleware.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

func (c *ModerationController) HidePuzzle(ctx *gin.Context) {
	data, err := c.PuzzleService.HidePuzzle(util.MustParseUint(ctx.Param("puzzleId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

func (c *ModerationController) UnhidePuzzle(ctx *gin.Context) {
	data, err := c.PuzzleService.UnhidePuzzle(util.MustParseUint(ctx.Param("puzzleId")))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, data)
}

type BanUserRequest struct {
	Reason       string `json:"reason" binding:"required"`
	DurationDays int    `json:"durationDays" binding:"required"`
}

func (c *ModerationController) BanUser(ctx *gin.Context) {
	var req BanUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	ban, err := c.UserService.BanUser(ctx.Param("userId"), req.Reason, claims.UserID, req.DurationDays)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, ban)
}

type UnbanRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *ModerationController) Unban(ctx *gin.Context) {
	var req UnbanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	ban, err := c.UserService.UnbanUser(ctx.Param("banId"), req.Reason, claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, ban)
}

func (c *ModerationController) ListActiveBans(ctx *gin.Context) {
	page, err := c.BanService.ListActive(middleware.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

func (c *ModerationController) ListUserBans(ctx *gin.Context) {
	page, err := c.BanService.ListForUser(ctx.Param("userId"), middleware.GetPagination(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, page)
}

func (c *ModerationController) currentUser(ctx *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil, util.ErrInvalidAuth
	}
	return c.UserService.Get(claims.UserID)
}
