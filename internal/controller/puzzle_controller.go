package controller

import (
	"nandhub_backend/internal/middleware"
	"nandhub_backend/internal/model"
	"nandhub_backend/internal/service"
	"nandhub_backend/internal/util"
	"nandhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type PuzzleController struct {
	PuzzleService      *service.PuzzleService
	ReportService      *service.ReportService
	TranslationService *service.TranslationService
	UserService        *service.UserService
}

func NewPuzzleController(
	puzzleService *service.PuzzleService,
	reportService *service.ReportService,
	translationService *service.TranslationService,
	userService *service.UserService,
) *PuzzleController {
	return &PuzzleController{
		PuzzleService:      puzzleService,
		ReportService:      reportService,
		TranslationService: translationService,
		UserService:        userService,
	}
}

func (c *PuzzleController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	category := service.Category(ctx.Param("category"))

	metadata, err := c.PuzzleService.ListByCategory(category, claims.UserID, middleware.GetLocale(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, metadata)
}

type SearchRequest struct {
	SearchTerm       string `json:"searchTerm"`
	Duration         string `json:"duration"`
	Difficulty       string `json:"difficulty"`
	IncludeCompleted bool   `json:"includeCompleted"`
}

func (c *PuzzleController) Search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	metadata, err := c.PuzzleService.SearchPuzzles(
		req.SearchTerm,
		service.Duration(req.Duration),
		service.DifficultyFilter(req.Difficulty),
		req.IncludeCompleted,
		claims.UserID,
		middleware.GetLocale(ctx),
	)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, metadata)
}

type SubmitRequest struct {
	ShortKey          string `json:"shortKey" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Data              string `json:"data" binding:"required"`
	Description       string `json:"description"`
	MinimumComponents int    `json:"minimumComponents" binding:"min=0"`
	MinimumNands      *int   `json:"minimumNands"`
	MaximumComponents *int   `json:"maximumComponents"`
	Locale            string `json:"locale"`
}

func (c *PuzzleController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	author, err := c.currentUser(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	puzzle, err := c.PuzzleService.Create(
		req.ShortKey, req.Title, req.Data, req.Description,
		req.MinimumComponents, req.MinimumNands, req.MaximumComponents,
		author, service.LocaleOrDefault(req.Locale))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, puzzle)
}

func (c *PuzzleController) Download(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	puzzleID := util.MustParseUint(ctx.Param("puzzleId"))

	full, err := c.PuzzleService.Download(puzzleID, claims.UserID, middleware.GetLocale(ctx))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, full)
}

type CompleteRequest struct {
	Time             float64 `json:"time" binding:"min=0"`
	Liked            bool    `json:"liked"`
	ComponentsUsed   int     `json:"componentsUsed" binding:"min=0"`
	NandsUsed        int     `json:"nandsUsed" binding:"min=0"`
	DifficultyRating string  `json:"difficultyRating"`
}

func (c *PuzzleController) Complete(ctx *gin.Context) {
	var req CompleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.currentUser(ctx)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	puzzleID := util.MustParseUint(ctx.Param("puzzleId"))
	result, err := c.PuzzleService.CompletePuzzle(
		puzzleID, req.Time, req.Liked, req.ComponentsUsed, req.NandsUsed,
		req.DifficultyRating, user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	monitoring.PuzzleCompletions.Inc()
	util.Success(ctx, result)
}

type ReportRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *PuzzleController) Report(ctx *gin.Context) {
	var req ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	puzzleID := util.MustParseUint(ctx.Param("puzzleId"))

	report, err := c.ReportService.ReportPuzzle(puzzleID, claims.UserID, req.Reason)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, report)
}

type TranslateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Locale      string `json:"locale" binding:"required"`
}

// Translate files a translation suggestion. Moderator submissions are
// approved on the spot; everyone else's wait for review.
func (c *PuzzleController) Translate(ctx *gin.Context) {
	var req TranslateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	puzzleID := util.MustParseUint(ctx.Param("puzzleId"))

	puzzle, err := c.PuzzleService.Get(puzzleID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	approved := claims.Role >= model.RoleModerator
	translation, err := c.TranslationService.Create(
		puzzle, claims.UserID, req.Title, req.Description, req.Locale, approved)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, translation)
}

// Delete removes a puzzle: owners may delete their own, moderators any.
func (c *PuzzleController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	puzzleID := util.MustParseUint(ctx.Param("puzzleId"))

	if claims.Role < model.RoleModerator {
		owner, err := c.PuzzleService.IsUserOwner(puzzleID, claims.UserID)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		if !owner {
			util.AbortWithAppError(ctx, util.ErrNoPermissions)
			return
		}
	}

	if err := c.PuzzleService.Delete(puzzleID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": puzzleID})
}

func (c *PuzzleController) currentUser(ctx *gin.Context) (*model.User, error) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		return nil, util.ErrInvalidAuth
	}
	return c.UserService.Get(claims.UserID)
}
