package whisper

import (
	"context"
	"errors"
	"time"
)

// ErrAudioDecode indicates the engine could not decode the supplied audio
// (bad format, corrupt file, unsupported codec)
var ErrAudioDecode = errors.New("audio could not be decoded")

// Word is a single recognized word with its timestamps
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a contiguous span of recognized speech. Words is populated only
// when word timestamps were requested.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Result is a fully materialized inference result. Backends must drain any
// streaming source exactly once before returning; consumers may iterate the
// slices freely.
type Result struct {
	Language            string    `json:"language"`
	LanguageProbability float64   `json:"language_probability"`
	Duration            float64   `json:"duration"`
	Segments            []Segment `json:"segments"`
}

// Options controls a single transcription run. Tuning values (beam size,
// temperature, VAD) are configuration, not invariants.
type Options struct {
	WordTimestamps bool
	Language       string
	BeamSize       int
	Temperature    float32
	VADFilter      bool
}

// Engine transcribes audio files. Implementations are constructed once at
// startup and shared across requests.
type Engine interface {
	// Transcribe runs speech recognition on the audio file at path
	Transcribe(ctx context.Context, path string, opts Options) (*Result, error)

	// Name returns the backend name (e.g. "local", "openai")
	Name() string
}

// Config holds engine settings, normally populated from viper
type Config struct {
	Backend        string
	BinaryPath     string
	ModelPath      string
	Language       string
	WordTimestamps bool
	BeamSize       int
	Temperature    float32
	VADFilter      bool
	Timeout        time.Duration

	// OpenAI-compatible backend settings
	APIKey  string
	BaseURL string
	Model   string
}

// DefaultOptions returns the per-request options derived from config
func (c Config) DefaultOptions() Options {
	return Options{
		WordTimestamps: c.WordTimestamps,
		Language:       c.Language,
		BeamSize:       c.BeamSize,
		Temperature:    c.Temperature,
		VADFilter:      c.VADFilter,
	}
}
