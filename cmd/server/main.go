package main

import (
	"context"
	"io"
	"log"
	"time"

	"analyse-juridique/assets"
	"analyse-juridique/classifier"
	"analyse-juridique/config"
	"analyse-juridique/handlers"
	"analyse-juridique/logging"
	"analyse-juridique/service"
	"analyse-juridique/storage"
	"analyse-juridique/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	gin.SetMode(cfg.GinMode)

	// Initialize storage
	fileStorage, err := storage.NewStorageFromEnv()
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// The page cannot render without its logo
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	logo, err := assets.LoadLogo(ctx, fileStorage, cfg.LogoPath)
	cancel()
	if err != nil {
		logger.Fatal("Failed to load logo", zap.String("path", cfg.LogoPath), zap.Error(err))
	}
	logger.Info("Logo loaded", zap.String("path", cfg.LogoPath), zap.String("mime", logo.MIMEType))

	// Initialize classifier
	clf, err := classifier.New(context.Background(), cfg.Classifier, logger)
	if err != nil {
		logger.Fatal("Failed to initialize classifier", zap.Error(err))
	}
	if closer, ok := clf.(io.Closer); ok {
		defer closer.Close()
	}
	logger.Info("Classifier initialized",
		zap.String("backend", clf.Name()),
		zap.String("model", cfg.Classifier.Model))

	analysisService := service.NewAnalysisService(
		service.WithClassifier(clf),
		service.WithTimeout(classifier.Deadline(cfg.Classifier)),
		service.WithLogger(logger),
	)

	tmpl, err := view.LoadTemplates()
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	analysisHandler := handlers.NewAnalysisHandler(analysisService, logo.DataURI(), logger)
	fileHandler := handlers.NewFileHandler(analysisService, logger)
	r := handlers.NewRouter(analysisHandler, fileHandler, tmpl, logger)

	logger.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
