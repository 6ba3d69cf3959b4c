package transcription

import (
	"context"
	"errors"

	"github.com/revlence/transcribe-api/internal/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcription metadata repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new metadata row
func (r *repository) Create(ctx context.Context, meta *models.TranscriptionMeta) error {
	if meta == nil {
		return errors.New("transcription meta cannot be nil")
	}

	result := r.db.WithContext(ctx).Create(meta)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// UpdateStatus transitions the status of an existing row
func (r *repository) UpdateStatus(ctx context.Context, id string, status models.TranscriptionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.TranscriptionMeta{}).
		Where("uuid = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetByUUID retrieves a metadata row by its UUID
func (r *repository) GetByUUID(ctx context.Context, id string) (*models.TranscriptionMeta, error) {
	var meta models.TranscriptionMeta

	result := r.db.WithContext(ctx).Where("uuid = ?", id).First(&meta)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &meta, nil
}

// Exists checks if a metadata row exists for the UUID
func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&models.TranscriptionMeta{}).
		Where("uuid = ?", id).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
