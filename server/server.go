package server

import (
	"context"
	"errors"
	"net/http"

	"healthbridge/confs"
	"healthbridge/db"
	"healthbridge/handlers"
	httpHandler "healthbridge/handlers/http"
	"healthbridge/metrics"
	"healthbridge/middleware"
	"healthbridge/repositories"
	"healthbridge/services"
	"healthbridge/usecases"
	"healthbridge/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Server struct {
	app     *gin.Engine
	db      db.Database
	cfg     confs.Config
	log     logrus.FieldLogger
	limiter *middleware.RateLimiter
	streams *ws.Manager
}

// NewServer wires repositories, use cases and handlers onto a gin engine.
// summarizer backs POST /users/:id/generate-summary.
func NewServer(cfg confs.Config, database db.Database, summarizer services.Summarizer, log logrus.FieldLogger) *Server {
	s := &Server{
		app:     gin.New(),
		db:      database,
		cfg:     cfg,
		log:     log,
		limiter: middleware.NewRateLimiter(rate.Limit(cfg.Server.SummaryRateRPS), cfg.Server.SummaryRateBurst),
		streams: ws.NewManager(),
	}
	s.setupRoutes(summarizer)
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.app
}

func (s *Server) setupRoutes(summarizer services.Summarizer) {
	httpHandler.RegisterValidation()

	s.app.Use(gin.Recovery())
	s.app.Use(middleware.Metrics())
	s.app.Use(middleware.RequestLogger(s.log))

	// Setup CORS middleware
	config := cors.DefaultConfig()
	origins := s.cfg.Server.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	s.app.Use(cors.New(config))

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	journalRepo := repositories.NewJournalEntryPgRepository(s.db)
	serviceRepo := repositories.NewHealthServicePgRepository(s.db)
	profileRepo := repositories.NewProfilePgRepository(s.db)

	// Journal stream hub
	s.streams.OnChange(metrics.SetJournalSubscribers)
	feed := handlers.NewJournalFeed(s.streams, s.log)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(userRepo, s.log)
	journalUseCase := usecases.NewJournalUseCase(userRepo, journalRepo, feed, s.log)
	serviceUseCase := usecases.NewHealthServiceUseCase(serviceRepo, s.log)
	profileUseCase := usecases.NewProfileUseCase(userRepo, profileRepo, s.log)
	exportUseCase := usecases.NewExportUseCase(userRepo, services.NewPNGEncoder(s.cfg.QR.Size), summarizer, s.cfg.AI.Timeout, s.log)

	// Initialize handlers
	systemHandler := httpHandler.NewSystemHandler(s.db)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	journalHandler := httpHandler.NewJournalEntryHandler(journalUseCase)
	serviceHandler := httpHandler.NewHealthServiceHandler(serviceUseCase)
	profileHandler := httpHandler.NewProfileHandler(profileUseCase)
	exportHandler := httpHandler.NewExportHandler(exportUseCase)
	wsHandler := handlers.NewWSHandler(s.streams, userUseCase, origins, s.log)

	s.app.GET("/", systemHandler.Root)
	s.app.GET("/health", systemHandler.Health)
	s.app.GET("/ready", systemHandler.Ready)
	s.app.GET("/metrics", gin.WrapH(metrics.Handler()))

	users := s.app.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.GET("/:id/qrcode", exportHandler.GenerateUserQRCode)
		users.POST("/:id/generate-summary", s.limiter.Limit(), exportHandler.GenerateHealthSummary)
		users.GET("/:id/journal/stream", wsHandler.HandleJournalStream)
		users.GET("/:id/journal/stream/stats", wsHandler.GetStreamStats)
	}

	journal := s.app.Group("/journal")
	{
		journal.POST("", journalHandler.CreateJournalEntry)
		journal.GET("/:userId", journalHandler.GetJournalEntries)
	}

	healthServices := s.app.Group("/services")
	{
		healthServices.POST("", serviceHandler.CreateHealthService)
		healthServices.GET("", serviceHandler.GetAllHealthServices)
	}

	profiles := s.app.Group("/profiles")
	{
		profiles.POST("", profileHandler.CreateProfile)
		profiles.GET("/:userId", profileHandler.GetProfile)
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully within
// the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.app,
	}

	go s.limiter.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", srv.Addr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
