package api

import (
	"errors"
	"net/http"

	"quickpoll/internal/domain/like"
	"quickpoll/internal/domain/poll"
	"quickpoll/internal/domain/user"
	"quickpoll/internal/domain/vote"
	"quickpoll/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.StatusCode() >= http.StatusInternalServerError {
		slogLogger.Error("request failed", "err", err)
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		return apperr.Unauthorized("invalid_credentials", "incorrect username or password", err)
	case errors.Is(err, user.ErrInactiveUser):
		return apperr.Unauthorized("inactive_user", "user is inactive", err)
	case errors.Is(err, user.ErrUsernameTaken):
		return apperr.Conflict("username_taken", "username already taken", err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.Conflict("email_taken", "email already taken", err)
	case errors.Is(err, user.ErrUserNotFound):
		return apperr.NotFound("user_not_found", "user not found", err)
	case errors.Is(err, poll.ErrPollNotFound),
		errors.Is(err, vote.ErrPollNotFound),
		errors.Is(err, like.ErrPollNotFound):
		return apperr.NotFound("poll_not_found", "poll not found", err)
	case errors.Is(err, poll.ErrForbidden):
		return apperr.Forbidden("forbidden", "only the poll creator may modify it", err)
	case errors.Is(err, vote.ErrInvalidOption):
		return apperr.BadRequest("invalid_option", "option does not belong to poll", err)
	case errors.Is(err, vote.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", "user already voted in this poll", err)
	case errors.Is(err, like.ErrAlreadyLiked):
		return apperr.Conflict("already_liked", "poll already liked", err)
	case errors.Is(err, like.ErrNotLiked):
		return apperr.Conflict("not_liked", "poll not liked", err)
	default:
		return apperr.FromError(err)
	}
}
