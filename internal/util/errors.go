package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind tags an AppError with a machine-readable code that is
// serialized to clients as errorCode.
type ErrorKind string

const (
	KindUserNotFound            ErrorKind = "UserNotFound"
	KindModeratorNotFound       ErrorKind = "ModeratorNotFound"
	KindBanExpired              ErrorKind = "BanExpired"
	KindBanLifted               ErrorKind = "BanLifted"
	KindBanNotFound             ErrorKind = "BanNotFound"
	KindBanReasonEmpty          ErrorKind = "BanReasonEmpty"
	KindBanDurationZero         ErrorKind = "BanDurationZero"
	KindBanUserAlreadyBanned    ErrorKind = "BanUserAlreadyBanned"
	KindYouAreBanned            ErrorKind = "YouAreBanned"
	KindPuzzleNotFound          ErrorKind = "PuzzleNotFound"
	KindPuzzleAlreadyTranslated ErrorKind = "PuzzleAlreadyTranslated"
	KindPuzzleAlreadyInLocale   ErrorKind = "PuzzleAlreadyInLocale"
	KindLocaleNotSupported      ErrorKind = "LocaleNotSupported"
	KindCantJudgeOwnReport      ErrorKind = "CantJudgeOwnReport"
	KindCantReportOfficial      ErrorKind = "CantReportOfficial"
	KindReportNotFound          ErrorKind = "ReportNotFound"
	KindReportOwnPuzzle         ErrorKind = "ReportOwnPuzzle"
	KindAlreadyReported         ErrorKind = "AlreadyReported"
	KindInvalidCredentials      ErrorKind = "InvalidCredentials"
	KindInvalidRole             ErrorKind = "InvalidRole"
	KindInvalidDifficulty       ErrorKind = "InvalidDifficulty"
	KindInvalidPage             ErrorKind = "InvalidPage"
	KindInvalidPageSize         ErrorKind = "InvalidPageSize"
	KindNoPermissions           ErrorKind = "NoPermissions"
	KindInvalidAuth             ErrorKind = "InvalidAuth"
	KindBadRequest              ErrorKind = "BadRequest"
	KindInternalServerError     ErrorKind = "InternalServerError"
)

// AppError is the single domain error type: every rule violation in
// the services surfaces as one of these and is serialized uncaught at
// the controller boundary. Anything else becomes a 500.
type AppError struct {
	Status  int
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, kind ErrorKind, message string) *AppError {
	return &AppError{Status: status, Kind: kind, Message: message}
}

func NewAppErrorf(status int, kind ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Status: status, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind == kind
	}
	return false
}

// Fixed-message domain errors.
var (
	ErrUserNotFound      = NewAppError(http.StatusNotFound, KindUserNotFound, "User not found!")
	ErrModeratorNotFound = NewAppError(http.StatusNotFound, KindModeratorNotFound, "Moderator not found!")

	ErrBanNotFound       = NewAppError(http.StatusNotFound, KindBanNotFound, "Ban not found!")
	ErrBanLifted         = NewAppError(http.StatusConflict, KindBanLifted, "Ban has already been lifted!")
	ErrBanExpired        = NewAppError(http.StatusConflict, KindBanExpired, "Ban has already expired!")
	ErrBanReasonEmpty    = NewAppError(http.StatusBadRequest, KindBanReasonEmpty, "Reason must not be empty!")
	ErrBanDurationZero   = NewAppError(http.StatusBadRequest, KindBanDurationZero, "Duration in days must be greater than 0!")
	ErrUserAlreadyBanned = NewAppError(http.StatusConflict, KindBanUserAlreadyBanned,
		"The user is already banned! If you want to change their ban, lift the current and create a new one.")

	ErrPuzzleNotFound     = NewAppError(http.StatusNotFound, KindPuzzleNotFound, "Puzzle does not exist!")
	ErrReportNotFound     = NewAppError(http.StatusNotFound, KindReportNotFound, "Report not found!")
	ErrAlreadyReported    = NewAppError(http.StatusConflict, KindAlreadyReported, "You have already reported this puzzle!")
	ErrCantReportOfficial = NewAppError(http.StatusUnprocessableEntity, KindCantReportOfficial, "You can't report an official puzzle!")
	ErrReportOwnPuzzle    = NewAppError(http.StatusUnprocessableEntity, KindReportOwnPuzzle,
		"You can't report your own puzzle! Maybe you should delete it.")
	ErrCantJudgeOwnReport = NewAppError(http.StatusUnprocessableEntity, KindCantJudgeOwnReport,
		"You can't respond to a report on yourself!")

	ErrInvalidCredentials = NewAppError(http.StatusUnauthorized, KindInvalidCredentials, "email or password is wrong!")
	ErrInvalidAuth        = NewAppError(http.StatusUnauthorized, KindInvalidAuth, "Invalid JWT token!")
	ErrNoPermissions      = NewAppError(http.StatusForbidden, KindNoPermissions, "You don't have permission to perform this action!")
	ErrInvalidRole        = NewAppError(http.StatusBadRequest, KindInvalidRole, "Invalid role!")
	ErrInvalidDifficulty  = NewAppError(http.StatusBadRequest, KindInvalidDifficulty, "Invalid difficulty rating!")

	ErrInvalidPage     = NewAppError(http.StatusBadRequest, KindInvalidPage, "page cannot be negative and has to be a number!")
	ErrInvalidPageSize = NewAppError(http.StatusBadRequest, KindInvalidPageSize, "pageSize has to be greater than 0 and has to be a number!")
)
