package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "quickpoll/docs"
	"quickpoll/internal/config"
	"quickpoll/internal/domain/like"
	"quickpoll/internal/domain/poll"
	"quickpoll/internal/domain/user"
	"quickpoll/internal/domain/vote"
	api "quickpoll/internal/http"
	"quickpoll/internal/metrics"
	"quickpoll/internal/platform/cache"
	"quickpoll/internal/platform/database"
	jwtpkg "quickpoll/internal/platform/jwt"
	"quickpoll/internal/platform/tracing"
	"quickpoll/internal/repository/cached"
	"quickpoll/internal/repository/memory"
	"quickpoll/internal/repository/postgres"
	"quickpoll/internal/worker"
)

type repositories struct {
	users user.Repository
	polls poll.Repository
	votes vote.Repository
	likes like.Repository
	db    *sql.DB
}

// @title           QuickPoll API
// @version         1.0
// @description     Polling platform: polls, one vote per user, likes, JWT auth
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: "quickpoll",
		Enabled:     cfg.TracingEnabled,
		SampleRatio: cfg.TracingSampleRatio,
	})
	if err != nil {
		return err
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			logger.Warn("tracing shutdown", "err", err)
		}
	}()

	repos, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if repos.db != nil {
		defer repos.db.Close()
	}

	if cfg.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RedisURL, "quickpoll:")
		if err != nil {
			return err
		}
		defer c.Close()
		repos.polls = cached.NewPollRepo(repos.polls, c, cfg.OptionsCacheTTL, logger)
		logger.Info("option cache enabled", "ttl", cfg.OptionsCacheTTL.String())
	}

	metrics.Register()

	activity := make(chan worker.ActivityEvent, 256)
	activityWorker := worker.NewActivityWorker(activity, logger)

	deps := api.Deps{
		Users:    user.NewService(repos.users),
		Polls:    poll.NewService(repos.polls, repos.votes, repos.likes),
		Votes:    vote.NewService(repos.votes),
		Likes:    like.NewService(repos.likes),
		Tokens:   jwtpkg.NewManager(cfg.JWTSecret, cfg.JWTIssuer),
		TokenTTL: cfg.AccessTokenTTL,
		Activity: activity,
	}
	if repos.db != nil {
		deps.DB = repos.db
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	go activityWorker.Run(workerCtx)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	cancelWorker()

	logger.Info("server stopped", "activity_processed", activityWorker.Processed())
	return nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn("using in-memory storage; data is lost on exit")
		store := memory.New()
		return repositories{
			users: store.Users(),
			polls: store.Polls(),
			votes: store.Votes(),
			likes: store.Likes(),
		}, nil
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return repositories{}, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return repositories{}, err
	}
	logger.Info("database ready")

	return repositories{
		users: postgres.NewUserRepo(db),
		polls: postgres.NewPollRepo(db),
		votes: postgres.NewVoteRepo(db),
		likes: postgres.NewLikeRepo(db),
		db:    db,
	}, nil
}
