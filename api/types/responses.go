package types

import (
	"github.com/revlence/transcribe-api/internal/models"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// TranscriptionResponse is returned by POST /transcribe. S3Key is set when
// the payload lives in the object store, Text when it is inlined in the
// metadata store. Words is always present, empty when word timestamps were
// not requested.
type TranscriptionResponse struct {
	UUID             string           `json:"uuid"`
	DetectedLanguage string           `json:"detected_language"`
	Duration         float64          `json:"duration"`
	Segments         []models.Segment `json:"segments"`
	Words            []models.Word    `json:"words"`
	S3Key            string           `json:"s3_key,omitempty"`
	Text             string           `json:"text,omitempty"`
	PayloadSaved     bool             `json:"payload_saved"`
}

// RecordResponse is returned by GET /transcriptions/:uuid
type RecordResponse struct {
	Record *models.TranscriptionRecord `json:"record"`
	S3Key  string                      `json:"s3_key,omitempty"`
	Status string                      `json:"status"`
}

// ErrorResponse is the structured error body for all failure cases
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Code   string `json:"code"`
}
