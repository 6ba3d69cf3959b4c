package models

import (
	"time"
)

// TranscriptionStatus tracks the persistence lifecycle of a record
type TranscriptionStatus string

const (
	// TranscriptionStatusPending means the metadata row exists but the payload
	// object has not been confirmed yet (write-ahead state)
	TranscriptionStatusPending TranscriptionStatus = "pending"

	// TranscriptionStatusComplete means both the metadata row and the payload
	// are durable
	TranscriptionStatusComplete TranscriptionStatus = "complete"
)

// Segment is a contiguous span of speech with its transcribed text
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Word is a single recognized word with its timestamps
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptionRecord is the normalized output of one transcription request.
// Created once per request, never mutated after persistence.
type TranscriptionRecord struct {
	ID                  string    `json:"uuid"`
	CreatedAt           time.Time `json:"created_at"`
	DetectedLanguage    string    `json:"detected_language"`
	LanguageProbability float64   `json:"language_probability"`
	Duration            float64   `json:"duration"`
	Segments            []Segment `json:"segments"`
	Words               []Word    `json:"words"`
	FullText            string    `json:"full_text"`
}

// TranscriptionMeta is the metadata store row for a transcription record.
// Either ObjectKey points at the payload in the object store, or Payload
// holds the serialized record inline (never both).
type TranscriptionMeta struct {
	UUID      string              `gorm:"primaryKey;size:36" json:"uuid"`
	CreatedAt time.Time           `json:"created_at"`
	ObjectKey string              `gorm:"index" json:"s3_key,omitempty"`
	Payload   string              `gorm:"type:text" json:"payload,omitempty"`
	Status    TranscriptionStatus `gorm:"size:16;index" json:"status"`
}

// TableName specifies the table name for TranscriptionMeta
func (TranscriptionMeta) TableName() string {
	return "transcriptions"
}

// Inline reports whether the payload is stored in the metadata row itself
func (m *TranscriptionMeta) Inline() bool {
	return m.Payload != ""
}
