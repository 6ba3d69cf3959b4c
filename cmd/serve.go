package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/revlence/transcribe-api/api"
	"github.com/revlence/transcribe-api/api/types"
	"github.com/revlence/transcribe-api/internal/database"
	"github.com/revlence/transcribe-api/internal/models"
	"github.com/revlence/transcribe-api/internal/services/cleanup"
	"github.com/revlence/transcribe-api/internal/services/objectstore"
	"github.com/revlence/transcribe-api/internal/services/whisper"
	"github.com/revlence/transcribe-api/pkg/config"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Transcribe API server with the configured settings.

The speech recognition engine is loaded once at startup and shared
across all requests.

Example:
  transcribe-api serve
  transcribe-api serve --port 9090
  transcribe-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Use config values if flags not provided
	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	// Metadata store
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.LogQueries)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[WARN] Failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(&models.TranscriptionMeta{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Speech engine, loaded once and shared across requests
	engine, err := whisper.NewEngine(whisperConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize whisper engine: %w", err)
	}
	log.Printf("[INFO] Using %s whisper backend", engine.Name())

	// Object store
	var store objectstore.ObjectStore
	if cfg.Storage.SupabaseURL != "" {
		store, err = objectstore.NewSupabaseStore(objectstore.SupabaseConfig{
			URL:        cfg.Storage.SupabaseURL,
			ServiceKey: cfg.Storage.SupabaseKey,
			Bucket:     cfg.Storage.Bucket,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize object store: %w", err)
		}
	} else {
		log.Printf("[WARN] No object store configured, payloads held in memory only")
		store = objectstore.NewMemoryStore()
	}

	tempDir := cfg.Storage.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}

	deps := &types.Dependencies{
		DB:             db,
		Engine:         engine,
		EngineOptions:  whisperConfig(cfg).DefaultOptions(),
		ObjectStore:    store,
		TempDir:        tempDir,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		InlinePayload:  cfg.Storage.InlinePayload,
	}

	server := api.NewServer(fmt.Sprintf("%s:%d", serverHost, serverPort))
	server.SetDependencies(deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Sweep stale uploads left behind by interrupted requests
	cleanupService := cleanup.NewService(tempDir, time.Hour, 15*time.Minute)
	cleanupService.Start(context.Background())
	defer cleanupService.Stop()

	fmt.Printf("Starting Transcribe API server on %s:%d\n", serverHost, serverPort)

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s:%d\n", serverHost, serverPort)

	// Wait for interrupt signal or server error
	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// whisperConfig maps app config onto the engine config
func whisperConfig(cfg *config.Config) whisper.Config {
	return whisper.Config{
		Backend:        cfg.Whisper.Backend,
		BinaryPath:     cfg.Whisper.WhisperPath,
		ModelPath:      cfg.Whisper.ModelPath,
		Language:       cfg.Whisper.Language,
		WordTimestamps: cfg.Whisper.WordTimestamps,
		BeamSize:       cfg.Whisper.BeamSize,
		Temperature:    cfg.Whisper.Temperature,
		VADFilter:      cfg.Whisper.VADFilter,
		Timeout:        cfg.Whisper.Timeout,
		APIKey:         cfg.Whisper.OpenAIAPIKey,
		BaseURL:        cfg.Whisper.OpenAIBaseURL,
		Model:          cfg.Whisper.OpenAIModel,
	}
}
