package api

import (
	"encoding/json"
	"mime"
	"net/http"

	"quickpoll/internal/platform/apperr"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// @Summary     Register a user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      registerRequest    true  "Account details"
// @Success     201      {object}  user.User
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     409      {object}  map[string]string  "username or email taken"
// @Failure     422      {object}  map[string]string  "validation failed"
// @Router      /auth/register [post]
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	slogLogger.Info("user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, u)
}

// @Summary     Log in
// @Description Accepts a JSON body or an OAuth2 password-flow form.
// @Tags        auth
// @Accept      json
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       request  body      loginRequest       true  "Credentials"
// @Success     200      {object}  tokenResponse
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Router      /auth/login [post]
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	u, err := h.userSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		errorResponse(w, err)
		return
	}

	token, err := h.jwtMgr.Issue(u.Username, h.tokenTTL)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func decodeLogin(r *http.Request) (loginRequest, error) {
	var req loginRequest

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return req, apperr.BadRequest("invalid_input", "invalid form", err)
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	default:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, apperr.BadRequest("invalid_input", "invalid body", err)
		}
	}

	if req.Username == "" || req.Password == "" {
		return req, apperr.BadRequest("invalid_input", "username and password are required", nil)
	}
	return req, nil
}

// @Summary     Current user
// @Tags        auth
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  user.User
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Router      /auth/me [get]
func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromCtx(r))
}
