package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"quickpoll/internal/domain/like"
	"quickpoll/internal/domain/poll"
	"quickpoll/internal/domain/user"
	"quickpoll/internal/domain/vote"
	"quickpoll/internal/platform/apperr"
	jwtpkg "quickpoll/internal/platform/jwt"
	"quickpoll/internal/worker"
)

// Pinger reports storage readiness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Users    *user.Service
	Polls    *poll.Service
	Votes    *vote.Service
	Likes    *like.Service
	Tokens   *jwtpkg.Manager
	TokenTTL time.Duration
	Activity chan<- worker.ActivityEvent
	// DB is nil when running on the in-memory store.
	DB Pinger
}

type Handler struct {
	userSvc  *user.Service
	pollSvc  *poll.Service
	voteSvc  *vote.Service
	likeSvc  *like.Service
	jwtMgr   *jwtpkg.Manager
	tokenTTL time.Duration
	activity chan<- worker.ActivityEvent
	db       Pinger
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		userSvc:  d.Users,
		pollSvc:  d.Polls,
		voteSvc:  d.Votes,
		likeSvc:  d.Likes,
		jwtMgr:   d.Tokens,
		tokenTTL: d.TokenTTL,
		activity: d.Activity,
		db:       d.DB,
	}
	if h.tokenTTL <= 0 {
		h.tokenTTL = 30 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(Tracing)
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/ready", h.handleReady)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(OptionalAuthenticate(h.jwtMgr, h.userSvc))
		r.Get("/polls", h.handleListPolls)
		r.Get("/polls/{id}", h.handleGetPoll)
	})

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(h.jwtMgr, h.userSvc))
		r.Get("/auth/me", h.handleMe)
		r.Post("/polls", h.handleCreatePoll)
		r.Put("/polls/{id}", h.handleUpdatePoll)
		r.Delete("/polls/{id}", h.handleDeletePoll)
		r.Post("/polls/{id}/vote", h.handleVote)
		r.Post("/polls/{id}/like", h.handleLike)
		r.Delete("/polls/{id}/like", h.handleUnlike)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, apperr.BadRequest("invalid_input", "invalid "+name, err)
	}
	if id <= 0 {
		return 0, apperr.BadRequest("invalid_input", "invalid "+name, nil)
	}
	return id, nil
}

// parsePage reads skip and limit; absent values fall back to 0 and the
// service default.
func parsePage(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()
	if s := q.Get("skip"); s != "" {
		skip, err = strconv.Atoi(s)
		if err != nil || skip < 0 {
			return 0, 0, apperr.BadRequest("invalid_input", "skip must be a non-negative integer", err)
		}
	}
	if s := q.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 || limit > poll.MaxLimit {
			return 0, 0, apperr.BadRequest("invalid_input", "limit must be between 1 and "+strconv.Itoa(poll.MaxLimit), err)
		}
	}
	return skip, limit, nil
}

func (h *Handler) publish(ev worker.ActivityEvent) {
	if !worker.Publish(h.activity, ev) && h.activity != nil {
		slogLogger.Warn("activity queue full, event dropped", "kind", ev.Kind, "poll_id", ev.PollID)
	}
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error":   "db_unavailable",
			"message": "database not ready",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
