package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"quizbox/internal/app"
	"quizbox/internal/config"
	"quizbox/internal/domain"
	fileloader "quizbox/internal/infra/file"
	"quizbox/internal/infra/memory"
	pgloader "quizbox/internal/infra/postgres"
	redisinfra "quizbox/internal/infra/redis"
	transport "quizbox/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var loader memory.QuestionLoader
	switch {
	case pool != nil:
		loader = pgloader.NewQuestionLoader(pool)
	case cfg.Questions.File != "":
		loader = fileloader.NewQuestionLoader(cfg.Questions.File)
	default:
		loader = memory.NewStaticLoader(sampleQuestions())
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questionRepo app.QuestionRepository
	if redisClient != nil {
		questionRepo = redisinfra.NewQuestionRepository(redisClient, loader, questionTTL)
	} else {
		questionRepo = memory.NewQuestionRepository(loader, questionTTL)
	}

	var mirror app.LeaderboardMirror
	if redisClient != nil {
		mirror = redisinfra.NewLeaderboardMirror(redisClient, config.TTLDuration(cfg.Redis.TTL, time.Hour))
	}

	rules := app.Rules{
		BasePoints:       config.IntOr(cfg.Game.BasePoints, 100),
		MaxSpeedBonus:    config.IntOr(cfg.Game.MaxSpeedBonus, 100),
		StreakEvery:      config.IntOr(cfg.Game.StreakEvery, 3),
		StreakBonus:      config.IntOr(cfg.Game.StreakBonus, 50),
		DefaultTimeLimit: config.TTLDuration(cfg.Game.DefaultTimeLimit, 20*time.Second),
	}

	pin := app.NewRoomCode(config.IntOr(cfg.Game.PINLength, 4))
	service, err := app.NewGameService(ctx, pin, questionRepo, mirror, rules, log)
	if err != nil {
		return err
	}

	router := httprouter.New()
	transport.NewAPIHandler(service, log).Register(router)

	wsHandler := transport.NewWSHandler(service, log)
	router.HandlerFunc(http.MethodGet, "/ws/host", wsHandler.ServeHostFeed)

	router.HandlerFunc(http.MethodGet, "/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if cfg.Server.StaticDir != "" {
		router.ServeFiles("/static/*filepath", http.Dir(cfg.Server.StaticDir))
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("port", finalPort).Str("pin", pin).Msg("starting trivia server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions is the built-in pack used when neither Postgres nor
// a YAML file is configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Text:    "What is 2 + 2?",
			Options: []string{"3", "4", "5", "6"},
			Correct: 1,
		},
		{
			Text:    "Which planet is known as the Red Planet?",
			Options: []string{"Venus", "Jupiter", "Mars", "Saturn"},
			Correct: 2,
		},
		{
			Text:    "What is the largest ocean on Earth?",
			Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"},
			Correct: 3,
		},
	}
}
