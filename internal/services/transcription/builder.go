package transcription

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/revlence/transcribe-api/internal/models"
	"github.com/revlence/transcribe-api/internal/services/whisper"
)

// BuildRecord assembles a normalized TranscriptionRecord from a materialized
// inference result. All derived fields (segments, flattened words, full_text)
// come from a single walk over the result, so the engine's one-shot output
// only ever needs to be drained once. Words is always non-nil, empty when no
// word timestamps were produced. Acoustic output is passed through
// unvalidated.
func BuildRecord(result *whisper.Result) *models.TranscriptionRecord {
	segments := make([]models.Segment, 0, len(result.Segments))
	words := make([]models.Word, 0)
	texts := make([]string, 0, len(result.Segments))

	for _, seg := range result.Segments {
		segments = append(segments, models.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
		texts = append(texts, seg.Text)

		for _, w := range seg.Words {
			words = append(words, models.Word{
				Word:  w.Word,
				Start: w.Start,
				End:   w.End,
			})
		}
	}

	return &models.TranscriptionRecord{
		ID:                  uuid.NewString(),
		CreatedAt:           time.Now().UTC(),
		DetectedLanguage:    result.Language,
		LanguageProbability: result.LanguageProbability,
		Duration:            result.Duration,
		Segments:            segments,
		Words:               words,
		FullText:            strings.Join(texts, " "),
	}
}
