package controller

import (
	"fmt"
	"path/filepath"

	"nandhub_backend/internal/model"
	"nandhub_backend/internal/service"
	"nandhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.AbortWithAppError(ctx, util.ErrInvalidAuth)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "Avatar file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")

	url, err := c.StorageService.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.SetAvatar(claims.UserID, url); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeRole promotes or demotes a user; admin only, enforced by the
// route group.
func (c *UserController) ChangeRole(ctx *gin.Context) {
	var req ChangeRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.ChangeRole(ctx.Param("userId"), req.Role)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, userSummary(user))
}

func userSummary(user *model.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"role":     user.Role.String(),
		"trophies": user.Trophies,
	}
}
