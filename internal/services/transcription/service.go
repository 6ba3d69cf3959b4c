package transcription

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/revlence/transcribe-api/internal/models"
	"github.com/revlence/transcribe-api/internal/services/objectstore"
)

// ObjectKeyPrefix is the key namespace for transcription payloads
const ObjectKeyPrefix = "transcriptions/"

// ObjectKey returns the object store key for a record UUID
func ObjectKey(id string) string {
	return ObjectKeyPrefix + id + ".json"
}

// Service implements the TranscriptionService interface
type Service struct {
	repo  Repository
	store objectstore.ObjectStore
}

// NewService creates a new transcription service
func NewService(repo Repository, store objectstore.ObjectStore) TranscriptionService {
	return &Service{repo: repo, store: store}
}

// SaveRecord persists a record. Object mode writes ahead: the metadata row is
// inserted as pending, the payload object is uploaded, then the row is
// flipped to complete. A row left pending marks an interrupted write, so a
// crash between the two calls never leaves an object that the metadata store
// does not know about. Inline mode stores everything in one row and skips
// the object store entirely.
func (s *Service) SaveRecord(ctx context.Context, record *models.TranscriptionRecord, inline bool) (*models.TranscriptionMeta, error) {
	if record == nil {
		return nil, errors.New("record cannot be nil")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize record: %w", err)
	}

	if inline {
		meta := &models.TranscriptionMeta{
			UUID:      record.ID,
			CreatedAt: record.CreatedAt,
			Payload:   string(payload),
			Status:    models.TranscriptionStatusComplete,
		}
		if err := s.repo.Create(ctx, meta); err != nil {
			return nil, fmt.Errorf("failed to save metadata: %w", err)
		}
		return meta, nil
	}

	meta := &models.TranscriptionMeta{
		UUID:      record.ID,
		CreatedAt: record.CreatedAt,
		ObjectKey: ObjectKey(record.ID),
		Status:    models.TranscriptionStatusPending,
	}
	if err := s.repo.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to save metadata: %w", err)
	}

	if err := s.store.Put(ctx, meta.ObjectKey, payload, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to store payload: %w", err)
	}

	if err := s.repo.UpdateStatus(ctx, record.ID, models.TranscriptionStatusComplete); err != nil {
		return nil, fmt.Errorf("failed to finalize metadata: %w", err)
	}
	meta.Status = models.TranscriptionStatusComplete

	return meta, nil
}

// GetRecord retrieves a persisted record by UUID. The payload comes from the
// metadata row when inline, from the object store otherwise.
func (s *Service) GetRecord(ctx context.Context, id string) (*models.TranscriptionRecord, *models.TranscriptionMeta, error) {
	meta, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	if meta == nil {
		return nil, nil, nil
	}

	var payload []byte
	if meta.Inline() {
		payload = []byte(meta.Payload)
	} else {
		payload, err = s.store.Get(ctx, meta.ObjectKey)
		if err != nil {
			return nil, meta, fmt.Errorf("failed to load payload: %w", err)
		}
	}

	var record models.TranscriptionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, meta, fmt.Errorf("failed to decode payload: %w", err)
	}
	if record.Words == nil {
		record.Words = []models.Word{}
	}
	if record.Segments == nil {
		record.Segments = []models.Segment{}
	}

	return &record, meta, nil
}
