package whisper

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEngine calls an OpenAI-compatible audio transcription API. Pointing
// BaseURL at a local faster-whisper server that speaks the same protocol is
// supported.
type OpenAIEngine struct {
	client *openai.Client
	model  string
}

// NewOpenAIEngine creates an API backed engine
func NewOpenAIEngine(cfg Config) (*OpenAIEngine, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai backend requires an API key or base URL")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Name returns the backend name
func (e *OpenAIEngine) Name() string { return "openai" }

// Transcribe submits the audio file and materializes the verbose JSON
// response into a Result
func (e *OpenAIEngine) Transcribe(ctx context.Context, path string, opts Options) (*Result, error) {
	granularities := []openai.TranscriptionTimestampGranularity{
		openai.TranscriptionTimestampGranularitySegment,
	}
	if opts.WordTimestamps {
		granularities = append(granularities, openai.TranscriptionTimestampGranularityWord)
	}

	req := openai.AudioRequest{
		Model:                  e.model,
		FilePath:               path,
		Language:               opts.Language,
		Temperature:            opts.Temperature,
		Format:                 openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: granularities,
	}

	resp, err := e.client.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("transcription rejected: %s: %w", apiErr.Message, ErrAudioDecode)
		}
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}

	result := &Result{
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: make([]Segment, 0, len(resp.Segments)),
	}

	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
	}

	// The API reports words at the top level; attach each to the segment
	// whose time range contains it so ordering stays segment-consistent
	if opts.WordTimestamps && len(resp.Words) > 0 {
		idx := 0
		for _, w := range resp.Words {
			for idx < len(result.Segments)-1 && w.Start >= result.Segments[idx].End {
				idx++
			}
			if len(result.Segments) == 0 {
				break
			}
			result.Segments[idx].Words = append(result.Segments[idx].Words, Word{
				Word:  w.Word,
				Start: w.Start,
				End:   w.End,
			})
		}
	}

	return result, nil
}
