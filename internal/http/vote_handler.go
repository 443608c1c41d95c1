package api

import (
	"encoding/json"
	"net/http"

	"quickpoll/internal/platform/apperr"
	"quickpoll/internal/worker"
)

type voteRequest struct {
	OptionID int64 `json:"option_id"`
}

// @Summary     Vote for an option
// @Tags        votes
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64        true  "Poll ID"
// @Param       request  body      voteRequest  true  "Vote payload"
// @Success     201      {object}  vote.Vote
// @Failure     400      {object}  map[string]string  "invalid body or option"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     404      {object}  map[string]string  "not found"
// @Failure     409      {object}  map[string]string  "already voted"
// @Failure     500      {object}  map[string]string  "server error"
// @Router      /polls/{id}/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if req.OptionID == 0 {
		errorResponse(w, apperr.BadRequest("invalid_input", "option_id is required", nil))
		return
	}

	userID := userFromCtx(r).ID

	v, err := h.voteSvc.Cast(r.Context(), userID, pollID, req.OptionID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	h.publish(worker.ActivityEvent{Kind: worker.KindVote, PollID: pollID, UserID: userID, OptionID: req.OptionID})
	writeJSON(w, http.StatusCreated, v)
}

// @Summary     Like a poll
// @Tags        likes
// @Security    BearerAuth
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "already liked"
// @Router      /polls/{id}/like [post]
func (h *Handler) handleLike(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	userID := userFromCtx(r).ID
	if err := h.likeSvc.Like(r.Context(), userID, pollID); err != nil {
		errorResponse(w, err)
		return
	}

	h.publish(worker.ActivityEvent{Kind: worker.KindLike, PollID: pollID, UserID: userID})
	w.WriteHeader(http.StatusNoContent)
}

// @Summary     Remove a like
// @Tags        likes
// @Security    BearerAuth
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     404  {object}  map[string]string  "not found"
// @Failure     409  {object}  map[string]string  "not liked"
// @Router      /polls/{id}/like [delete]
func (h *Handler) handleUnlike(w http.ResponseWriter, r *http.Request) {
	pollID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	userID := userFromCtx(r).ID
	if err := h.likeSvc.Unlike(r.Context(), userID, pollID); err != nil {
		errorResponse(w, err)
		return
	}

	h.publish(worker.ActivityEvent{Kind: worker.KindUnlike, PollID: pollID, UserID: userID})
	w.WriteHeader(http.StatusNoContent)
}
