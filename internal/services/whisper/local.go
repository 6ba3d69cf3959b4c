package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// LocalEngine runs whisper-cli (whisper.cpp) as a subprocess and parses its
// JSON output file
type LocalEngine struct {
	binaryPath string
	modelPath  string
	threads    int
}

// NewLocalEngine creates a whisper.cpp backed engine
func NewLocalEngine(cfg Config) *LocalEngine {
	binaryPath := cfg.BinaryPath
	if binaryPath == "" {
		// Default to whisper-cli (homebrew) or main binary (whisper.cpp build)
		if _, err := exec.LookPath("whisper-cli"); err == nil {
			binaryPath = "whisper-cli"
		} else {
			binaryPath = "/app/bin/main"
		}
	}

	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = "./models/ggml-base.en.bin"
	}

	return &LocalEngine{
		binaryPath: binaryPath,
		modelPath:  modelPath,
		threads:    4,
	}
}

// Name returns the backend name
func (e *LocalEngine) Name() string { return "local" }

// whisperOutput mirrors the whisper.cpp full JSON output format
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text   string `json:"text"`
		Tokens []struct {
			Text    string `json:"text"`
			Offsets struct {
				From int64 `json:"from"`
				To   int64 `json:"to"`
			} `json:"offsets"`
			P float64 `json:"p"`
		} `json:"tokens"`
	} `json:"transcription"`
}

// Transcribe runs whisper-cli on the audio file and materializes its output
// into a Result. The JSON output file is decoded in a single pass; every
// derived field downstream reads the slices built here.
func (e *LocalEngine) Transcribe(ctx context.Context, path string, opts Options) (*Result, error) {
	if _, err := exec.LookPath(e.binaryPath); err != nil {
		return nil, fmt.Errorf("whisper binary not found at %s: %w", e.binaryPath, err)
	}

	// Output base name for the generated <base>.json
	outBase := filepath.Join(os.TempDir(), fmt.Sprintf("whisper_%d", os.Getpid())+"_"+filepath.Base(path))
	outPath := outBase + ".json"
	defer func() {
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] Failed to remove whisper output %s: %v", outPath, err)
		}
	}()

	args := []string{
		"-m", e.modelPath,
		"-f", path,
		"-t", strconv.Itoa(e.threads),
		"-ojf", // full JSON output including token timestamps
		"-of", outBase,
	}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	if opts.BeamSize > 0 {
		args = append(args, "-bs", strconv.Itoa(opts.BeamSize))
	}
	args = append(args, "-tp", strconv.FormatFloat(float64(opts.Temperature), 'f', -1, 32))
	if opts.WordTimestamps {
		// Split tokens on word boundaries so token offsets line up with words
		args = append(args, "-sow")
	}
	if opts.VADFilter {
		args = append(args, "--vad")
	}

	cmd := exec.CommandContext(ctx, e.binaryPath, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Printf("[ERROR] Whisper command failed: %v", err)
		return nil, fmt.Errorf("whisper-cli failed: %s: %w", strings.TrimSpace(string(output)), ErrAudioDecode)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}

	return parseWhisperOutput(data, opts.WordTimestamps)
}

// parseWhisperOutput converts whisper.cpp JSON into a Result
func parseWhisperOutput(data []byte, wordTimestamps bool) (*Result, error) {
	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	result := &Result{
		Language: parsed.Result.Language,
		Segments: make([]Segment, 0, len(parsed.Transcription)),
	}

	for _, seg := range parsed.Transcription {
		segment := Segment{
			Start: millisToSeconds(seg.Offsets.From),
			End:   millisToSeconds(seg.Offsets.To),
			Text:  strings.TrimSpace(seg.Text),
		}

		if wordTimestamps {
			for _, tok := range seg.Tokens {
				// Skip special tokens like [_BEG_] and [_TT_123]
				if strings.HasPrefix(tok.Text, "[_") {
					continue
				}
				segment.Words = append(segment.Words, Word{
					Word:  tok.Text,
					Start: millisToSeconds(tok.Offsets.From),
					End:   millisToSeconds(tok.Offsets.To),
				})
			}
		}

		result.Segments = append(result.Segments, segment)
	}

	// whisper.cpp does not report audio duration, use the last segment end
	if n := len(result.Segments); n > 0 {
		result.Duration = result.Segments[n-1].End
	}

	return result, nil
}

func millisToSeconds(ms int64) float64 {
	return float64(ms) / 1000.0
}
