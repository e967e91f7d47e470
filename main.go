package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"healthbridge/confs"
	"healthbridge/db"
	"healthbridge/logging"
	"healthbridge/server"
	"healthbridge/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig(logrus.StandardLogger())
	if err != nil {
		logrus.Fatalf("Error loading config: %v", err)
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format)
	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect to database Postgres
	database, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.WithError(err).Warn("closing database")
		}
	}()

	if err := db.Migrate(database, log); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	var summarizer services.Summarizer = services.UnavailableSummarizer{}
	gemini, err := services.NewGeminiSummarizer(ctx, cfg.AI.APIKey, cfg.AI.Model)
	switch {
	case errors.Is(err, services.ErrSummarizerUnavailable):
		log.Warn("GEMINI_API_KEY is not set; summary generation will fail")
	case err != nil:
		log.Fatalf("Failed to create summarizer: %v", err)
	default:
		defer gemini.Close()
		summarizer = gemini
	}

	// run server
	srv := server.NewServer(*cfg, database, summarizer, log)
	if err := srv.Start(ctx); err != nil {
		log.WithError(err).Error("server stopped")
		return
	}
	log.Info("server stopped")
}
