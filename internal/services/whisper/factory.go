package whisper

import (
	"fmt"
)

// NewEngine creates the configured transcription backend
func NewEngine(cfg Config) (Engine, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalEngine(cfg), nil
	case "openai":
		return NewOpenAIEngine(cfg)
	default:
		return nil, fmt.Errorf("unknown whisper backend: %s", cfg.Backend)
	}
}
