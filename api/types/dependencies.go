package types

import (
	"github.com/revlence/transcribe-api/internal/database"
	"github.com/revlence/transcribe-api/internal/services/objectstore"
	"github.com/revlence/transcribe-api/internal/services/transcription"
	"github.com/revlence/transcribe-api/internal/services/whisper"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                   *database.DB
	Engine               whisper.Engine
	EngineOptions        whisper.Options
	TranscriptionService transcription.TranscriptionService
	ObjectStore          objectstore.ObjectStore

	// Upload handling
	TempDir        string
	MaxUploadBytes int64
	InlinePayload  bool
}
