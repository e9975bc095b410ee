package server

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mytunes-api/internal/metrics"
	"mytunes-api/internal/server/middleware"
	"mytunes-api/pkg/config"
	"mytunes-api/pkg/env"
	"mytunes-api/pkg/rate_limiter"
	"mytunes-api/pkg/token"
)

const DefaultGracefulShutdownTimeout = 10 * time.Second

// Repository is the persistence surface the route handlers need; it is
// satisfied by *store.Store.
type Repository interface {
	userStore
	catalogStore
	eventStore
}

// Dependencies carries the wired collaborators the server routes on.
type Dependencies struct {
	Gate   rate_limiter.Servicer
	Tokens tokenService
	Repo   Repository
}

type tokenService interface {
	tokenIssuer
	Verify(raw string) (token.Identity, error)
}

type Config struct {
	port               string
	readTimeout        time.Duration
	writeTimeout       time.Duration
	maxHeaderBytes     int
	contentDir         string
	version            string
	metricsCfg         config.MetricsConfig
	handler            *gin.Engine
	deps               Dependencies
	disableRateLimiter bool
}

type Option func(config *Config)

func WithDisableRateLimiter(value bool) Option {
	return func(config *Config) {
		config.disableRateLimiter = value
	}
}

func NewServer(deps Dependencies, opts ...Option) *Config {
	envObj := env.GetEnv()
	cfg := config.GetConfig()

	c := &Config{
		port:               envObj.ServerPort,
		readTimeout:        envObj.ServerReadTimeoutInSecond,
		writeTimeout:       envObj.ServerWriteTimeoutInSecond,
		maxHeaderBytes:     envObj.ServerMaxHeaderBytes,
		contentDir:         envObj.ContentDir,
		version:            strconv.Itoa(envObj.Version),
		metricsCfg:         cfg.Metrics,
		handler:            gin.New(),
		deps:               deps,
		disableRateLimiter: false,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (s *Config) registerMiddleware() {
	s.handler.Use(gin.Recovery())
	s.handler.Use(middleware.RequestContext)
	s.handler.Use(middleware.AccessLog)
	s.handler.Use(cors.New(cors.Config{
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		// Credentialed requests forbid the wildcard origin, so echo
		// whatever origin the browser sent.
		AllowOriginFunc: func(origin string) bool { return true },
		MaxAge:          3 * 24 * time.Hour,
	}))
}

func (s *Config) registerRoutes() {
	r := s.handler

	r.GET("/", RootHandler)
	r.GET("/health", HealthHandler(s.version))
	if s.metricsCfg.Enabled {
		r.GET(s.metricsCfg.Path, gin.WrapH(metrics.Handler()))
	}

	createUser := []gin.HandlerFunc{CreateUserHandler(s.deps.Repo)}
	logIn := []gin.HandlerFunc{LogInHandler(s.deps.Repo, s.deps.Tokens)}
	if !s.disableRateLimiter {
		createUser = append([]gin.HandlerFunc{
			middleware.RateLimitAction(s.deps.Gate, rate_limiter.ActionCreateUser),
		}, createUser...)
		logIn = append([]gin.HandlerFunc{
			middleware.RateLimitAction(s.deps.Gate, rate_limiter.ActionLogIn),
		}, logIn...)
	}
	r.POST("/create-user", createUser...)
	r.POST("/user-log-in", logIn...)

	r.GET("/check-token", middleware.BearerAuth(s.deps.Tokens), CheckTokenHandler(s.deps.Tokens))

	r.GET("/songs", ListSongsHandler(s.deps.Repo))
	r.GET("/folder-paths", ListFolderPathsHandler(s.deps.Repo))
	r.GET("/events", ListEventsHandler(s.deps.Repo))

	r.GET("/image/:name", ImageFileHandler(s.contentDir))
	r.GET("/song/:name", SongFileHandler(s.contentDir))
	r.GET("/video/:name", VideoFileHandler(s.contentDir))

	authed := r.Group("", middleware.BearerAuth(s.deps.Tokens))
	authed.POST("/local-songs", CreateLocalSongsHandler(s.deps.Repo))
	authed.POST("/local-directory", CreateLocalDirectoryHandler(s.deps.Repo))
	authed.PATCH("/favorite", FavoriteSongHandler(s.deps.Repo, true))
	authed.PATCH("/unfavorite", FavoriteSongHandler(s.deps.Repo, false))
}

func (s *Config) Run() {
	s.registerMiddleware()
	s.registerRoutes()

	srv := &http.Server{
		Addr:           s.port,
		Handler:        s.handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop // block until interrupt signal
	slog.Info("shutting down the server...")

	ctx, cancel := context.WithTimeout(context.Background(), DefaultGracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	slog.Info("server exited gracefully")
}
