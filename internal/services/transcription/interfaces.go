package transcription

import (
	"context"

	"github.com/revlence/transcribe-api/internal/models"
)

// TranscriptionService defines the interface for persisting and reading
// transcription records
type TranscriptionService interface {
	// SaveRecord persists a record to the object store and metadata store.
	// When inline is true the full payload is stored in the metadata row
	// and no object is written.
	SaveRecord(ctx context.Context, record *models.TranscriptionRecord, inline bool) (*models.TranscriptionMeta, error)

	// GetRecord retrieves a persisted record and its metadata row by UUID
	GetRecord(ctx context.Context, id string) (*models.TranscriptionRecord, *models.TranscriptionMeta, error)
}

// Repository defines the interface for metadata row persistence
type Repository interface {
	// Create inserts a new metadata row
	Create(ctx context.Context, meta *models.TranscriptionMeta) error

	// UpdateStatus transitions the status of an existing row
	UpdateStatus(ctx context.Context, id string, status models.TranscriptionStatus) error

	// GetByUUID retrieves a metadata row, nil when absent
	GetByUUID(ctx context.Context, id string) (*models.TranscriptionMeta, error)

	// Exists checks if a metadata row exists for the UUID
	Exists(ctx context.Context, id string) (bool, error)
}
