package cleanup

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Service removes stale uploaded audio files left behind by interrupted
// requests
type Service struct {
	tempDir         string
	maxAge          time.Duration
	cleanupInterval time.Duration
	cancel          context.CancelFunc
}

// NewService creates a new cleanup service
func NewService(tempDir string, maxAge, cleanupInterval time.Duration) *Service {
	return &Service{
		tempDir:         tempDir,
		maxAge:          maxAge,
		cleanupInterval: cleanupInterval,
	}
}

// Start begins the cleanup service
func (s *Service) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// Run initial sweep
	s.sweep()

	go func() {
		ticker := time.NewTicker(s.cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-ctx.Done():
				log.Println("[INFO] Cleanup service stopped")
				return
			}
		}
	}()

	log.Printf("[INFO] Cleanup service started (interval: %v, max age: %v)", s.cleanupInterval, s.maxAge)
}

// Stop stops the cleanup service
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// sweep removes old upload files
func (s *Service) sweep() {
	if _, err := os.Stat(s.tempDir); os.IsNotExist(err) {
		return
	}

	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		log.Printf("[ERROR] Cleanup read error: %v", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "upload_") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if time.Since(info.ModTime()) > s.maxAge {
			path := filepath.Join(s.tempDir, entry.Name())
			log.Printf("[DEBUG] Removing stale upload: %s", path)
			if err := os.Remove(path); err != nil {
				log.Printf("[WARN] Failed to remove stale upload %s: %v", path, err)
			}
		}
	}
}

// RemoveUpload removes a specific uploaded file, tolerating files that are
// already gone
func RemoveUpload(path string) {
	if path == "" {
		return
	}

	// Only remove files the upload handler created
	if !strings.HasPrefix(filepath.Base(path), "upload_") {
		log.Printf("[WARN] Refusing to cleanup non-upload file: %s", path)
		return
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("[DEBUG] Failed to cleanup upload %s: %v", path, err)
	}
}
