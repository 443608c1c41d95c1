package api

import (
	"encoding/json"
	"net/http"

	"quickpoll/internal/domain/poll"
	"quickpoll/internal/platform/apperr"
)

type createPollRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
}

// updatePollRequest keeps omitted fields apart from explicit nulls.
type updatePollRequest struct {
	Title       poll.NullableString `json:"title" swaggertype:"string"`
	Description poll.NullableString `json:"description" swaggertype:"string"`
}

// @Summary     Create a poll
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      createPollRequest  true  "Poll with 2-10 options"
// @Success     201      {object}  poll.Detail
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     422      {object}  map[string]string  "validation failed"
// @Router      /polls [post]
func (h *Handler) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u := userFromCtx(r)
	d, err := h.pollSvc.Create(r.Context(), u.ID, poll.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}

	slogLogger.Info("poll created", "poll_id", d.ID, "creator_id", u.ID, "options", len(d.Options))
	writeJSON(w, http.StatusCreated, d)
}

// @Summary     List active polls
// @Description Newest first. A bearer token is optional and personalises user_voted / user_liked.
// @Tags        polls
// @Produce     json
// @Param       skip   query     int  false  "Offset"  default(0)
// @Param       limit  query     int  false  "Page size (max 100)"  default(100)
// @Success     200    {array}   poll.Detail
// @Failure     400    {object}  map[string]string  "invalid pagination"
// @Failure     401    {object}  map[string]string  "invalid token"
// @Router      /polls [get]
func (h *Handler) handleListPolls(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := parsePage(r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	polls, err := h.pollSvc.List(r.Context(), skip, limit, viewerID(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, polls)
}

// @Summary     Get a poll
// @Tags        polls
// @Produce     json
// @Param       id   path      int64  true  "Poll ID"
// @Success     200  {object}  poll.Detail
// @Failure     400  {object}  map[string]string  "invalid id"
// @Failure     401  {object}  map[string]string  "invalid token"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /polls/{id} [get]
func (h *Handler) handleGetPoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	d, err := h.pollSvc.Get(r.Context(), id, viewerID(r))
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// @Summary     Update a poll
// @Description Only title and description can change; omitted fields are kept.
// @Tags        polls
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       id       path      int64              true  "Poll ID"
// @Param       request  body      updatePollRequest  true  "Fields to change"
// @Success     200      {object}  poll.Detail
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     403      {object}  map[string]string  "not the creator"
// @Failure     404      {object}  map[string]string  "not found"
// @Failure     422      {object}  map[string]string  "validation failed"
// @Router      /polls/{id} [put]
func (h *Handler) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	var req updatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	d, err := h.pollSvc.Update(r.Context(), id, userFromCtx(r).ID, poll.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// @Summary     Delete a poll
// @Description Soft delete; votes, likes and options are kept.
// @Tags        polls
// @Security    BearerAuth
// @Param       id   path  int64  true  "Poll ID"
// @Success     204
// @Failure     403  {object}  map[string]string  "not the creator"
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /polls/{id} [delete]
func (h *Handler) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, err)
		return
	}

	u := userFromCtx(r)
	if err := h.pollSvc.Delete(r.Context(), id, u.ID); err != nil {
		errorResponse(w, err)
		return
	}

	slogLogger.Info("poll deleted", "poll_id", id, "user_id", u.ID)
	w.WriteHeader(http.StatusNoContent)
}
