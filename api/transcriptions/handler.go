package transcriptions

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/revlence/transcribe-api/api/types"
	"github.com/revlence/transcribe-api/internal/services/cleanup"
	"github.com/revlence/transcribe-api/internal/services/transcription"
	"github.com/revlence/transcribe-api/internal/services/whisper"
	apperrors "github.com/revlence/transcribe-api/pkg/errors"
)

// Transcribe accepts an uploaded audio file, runs speech recognition and
// persists the resulting record
// @Summary      Transcribe an uploaded audio file
// @Description  Accepts a multipart audio upload, runs it through the configured speech
// @Description  recognition engine and persists the normalized transcription record to the
// @Description  object store and metadata store. The optional 'words' field toggles
// @Description  word-level timestamps; 'inline' stores the payload in the metadata store
// @Description  instead of the object store.
// @Tags         transcriptions
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Audio file to transcribe"
// @Param        words formData bool false "Include word-level timestamps"
// @Param        inline formData bool false "Store payload inline in the metadata store"
// @Success      200 {object} types.TranscriptionResponse "Transcription record summary"
// @Failure      400 {object} types.ErrorResponse "Missing or invalid upload"
// @Failure      413 {object} types.ErrorResponse "Upload exceeds the size limit"
// @Failure      422 {object} types.ErrorResponse "Audio could not be decoded"
// @Failure      502 {object} types.ErrorResponse "Speech engine or storage failure"
// @Router       /api/v1/transcribe [post]
func Transcribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Engine == nil || deps.TranscriptionService == nil {
			respondError(c, apperrors.New(apperrors.ErrCodeInternal, "transcription service not available"))
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			respondError(c, apperrors.MissingFieldError("file"))
			return
		}

		if deps.MaxUploadBytes > 0 && file.Size > deps.MaxUploadBytes {
			respondError(c, apperrors.Newf(apperrors.ErrCodeUploadTooLarge,
				"upload of %d bytes exceeds limit of %d bytes", file.Size, deps.MaxUploadBytes))
			return
		}

		opts := deps.EngineOptions
		if v, ok := parseBoolField(c, "words"); ok {
			opts.WordTimestamps = v
		}
		inline := deps.InlinePayload
		if v, ok := parseBoolField(c, "inline"); ok {
			inline = v
		}

		// Save the upload to a temp file for the engine
		uploadPath := filepath.Join(deps.TempDir, "upload_"+uuid.NewString()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, uploadPath); err != nil {
			log.Printf("[ERROR] Failed to save upload: %v", err)
			respondError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to save upload"))
			return
		}
		defer cleanup.RemoveUpload(uploadPath)

		result, err := deps.Engine.Transcribe(c.Request.Context(), uploadPath, opts)
		if err != nil {
			if errors.Is(err, whisper.ErrAudioDecode) {
				respondError(c, apperrors.Wrap(err, apperrors.ErrCodeAudioDecode, "audio could not be decoded"))
				return
			}
			log.Printf("[ERROR] Transcription failed for %s: %v", file.Filename, err)
			respondError(c, apperrors.ExternalServiceError("speech engine", err))
			return
		}

		record := transcription.BuildRecord(result)

		meta, err := deps.TranscriptionService.SaveRecord(c.Request.Context(), record, inline)
		if err != nil {
			log.Printf("[ERROR] Failed to persist transcription %s: %v", record.ID, err)
			respondError(c, apperrors.ExternalServiceError("storage", err))
			return
		}

		log.Printf("[DEBUG] Transcribed %s (%d segments, %d words, %.1fs)",
			record.ID, len(record.Segments), len(record.Words), record.Duration)

		response := types.TranscriptionResponse{
			UUID:             record.ID,
			DetectedLanguage: record.DetectedLanguage,
			Duration:         record.Duration,
			Segments:         record.Segments,
			Words:            record.Words,
			PayloadSaved:     true,
		}
		if meta.Inline() {
			response.Text = record.FullText
		} else {
			response.S3Key = meta.ObjectKey
		}

		c.JSON(http.StatusOK, response)
	}
}

// GetRecord returns a persisted transcription record by UUID
// @Summary      Get a transcription record
// @Description  Retrieve a previously created transcription record. The payload is read
// @Description  back from the object store, or from the metadata store for inline records.
// @Tags         transcriptions
// @Accept       json
// @Produce      json
// @Param        uuid path string true "Record UUID"
// @Success      200 {object} types.RecordResponse "Transcription record"
// @Failure      404 {object} types.ErrorResponse "Unknown record UUID"
// @Failure      502 {object} types.ErrorResponse "Storage failure"
// @Router       /api/v1/transcriptions/{uuid} [get]
func GetRecord(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.TranscriptionService == nil {
			respondError(c, apperrors.New(apperrors.ErrCodeInternal, "transcription service not available"))
			return
		}

		id := c.Param("uuid")
		if _, err := uuid.Parse(id); err != nil {
			respondError(c, apperrors.Newf(apperrors.ErrCodeInvalidInput, "invalid record UUID: %s", id))
			return
		}

		record, meta, err := deps.TranscriptionService.GetRecord(c.Request.Context(), id)
		if err != nil {
			log.Printf("[ERROR] Failed to load transcription %s: %v", id, err)
			respondError(c, apperrors.ExternalServiceError("storage", err))
			return
		}
		if meta == nil {
			respondError(c, apperrors.NotFound("transcription", id))
			return
		}

		c.JSON(http.StatusOK, types.RecordResponse{
			Record: record,
			S3Key:  meta.ObjectKey,
			Status: string(meta.Status),
		})
	}
}

// parseBoolField reads an optional boolean form field
func parseBoolField(c *gin.Context, name string) (bool, bool) {
	raw, ok := c.GetPostForm(name)
	if !ok {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// respondError writes the structured error body for an AppError
func respondError(c *gin.Context, err *apperrors.AppError) {
	c.JSON(err.GetHTTPCode(), types.ErrorResponse{
		Status: types.StatusError,
		Error:  err.Message,
		Code:   string(err.Code),
	})
}
