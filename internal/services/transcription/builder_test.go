package transcription

import (
	"testing"

	"github.com/revlence/transcribe-api/internal/services/whisper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRecordFullText(t *testing.T) {
	tests := []struct {
		name     string
		segments []whisper.Segment
		expected string
	}{
		{
			name: "joins segment texts with a single space",
			segments: []whisper.Segment{
				{Start: 0, End: 1, Text: "hello"},
				{Start: 1, End: 2, Text: "world"},
			},
			expected: "hello world",
		},
		{
			name:     "empty result gives empty text",
			segments: nil,
			expected: "",
		},
		{
			name: "single segment",
			segments: []whisper.Segment{
				{Start: 0, End: 2.5, Text: "just one"},
			},
			expected: "just one",
		},
		{
			name: "preserves segment order",
			segments: []whisper.Segment{
				{Start: 0, End: 1, Text: "a"},
				{Start: 1, End: 2, Text: "b"},
				{Start: 2, End: 3, Text: "c"},
			},
			expected: "a b c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := BuildRecord(&whisper.Result{Segments: tt.segments})
			assert.Equal(t, tt.expected, record.FullText)
			assert.Len(t, record.Segments, len(tt.segments))
		})
	}
}

func TestBuildRecordWordFlattening(t *testing.T) {
	result := &whisper.Result{
		Segments: []whisper.Segment{
			{
				Start: 0, End: 2, Text: "hello there",
				Words: []whisper.Word{
					{Word: "hello", Start: 0, End: 1},
					{Word: "there", Start: 1, End: 2},
				},
			},
			{
				Start: 2, End: 3, Text: "friend",
				Words: []whisper.Word{
					{Word: "friend", Start: 2, End: 3},
				},
			},
		},
	}

	record := BuildRecord(result)

	require.Len(t, record.Words, 3)
	assert.Equal(t, "hello", record.Words[0].Word)
	assert.Equal(t, "there", record.Words[1].Word)
	assert.Equal(t, "friend", record.Words[2].Word)

	// Flattened order follows segment order and stays non-decreasing by start
	for i := 1; i < len(record.Words); i++ {
		assert.GreaterOrEqual(t, record.Words[i].Start, record.Words[i-1].Start)
	}
}

func TestBuildRecordEmptyWordsDefault(t *testing.T) {
	record := BuildRecord(&whisper.Result{
		Segments: []whisper.Segment{
			{Start: 0, End: 1, Text: "no words requested"},
		},
	})

	// Words must be an empty slice, never nil, so consumers and JSON
	// output never see null
	require.NotNil(t, record.Words)
	assert.Empty(t, record.Words)
}

func TestBuildRecordCopiesMetadata(t *testing.T) {
	result := &whisper.Result{
		Language:            "en",
		LanguageProbability: 0.98,
		Duration:            12.5,
		Segments: []whisper.Segment{
			{Start: 0, End: 12.5, Text: "content"},
		},
	}

	record := BuildRecord(result)

	assert.Equal(t, "en", record.DetectedLanguage)
	assert.Equal(t, 0.98, record.LanguageProbability)
	assert.Equal(t, 12.5, record.Duration)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestBuildRecordUniqueIDs(t *testing.T) {
	result := &whisper.Result{
		Segments: []whisper.Segment{{Start: 0, End: 1, Text: "x"}},
	}

	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		record := BuildRecord(result)
		require.NotEmpty(t, record.ID)
		require.False(t, seen[record.ID], "duplicate UUID generated: %s", record.ID)
		seen[record.ID] = true
	}
}

func TestBuildRecordDerivesAllFieldsFromOneResult(t *testing.T) {
	// All derived outputs must agree with each other when built from the
	// same materialized result
	result := &whisper.Result{
		Segments: []whisper.Segment{
			{Start: 0, End: 1, Text: "one", Words: []whisper.Word{{Word: "one", Start: 0, End: 1}}},
			{Start: 1, End: 2, Text: "two", Words: []whisper.Word{{Word: "two", Start: 1, End: 2}}},
			{Start: 2, End: 3, Text: "three", Words: []whisper.Word{{Word: "three", Start: 2, End: 3}}},
		},
	}

	record := BuildRecord(result)

	assert.Len(t, record.Segments, 3)
	assert.Len(t, record.Words, 3)
	assert.Equal(t, "one two three", record.FullText)
}

func TestBuildRecordPassesThroughUnvalidated(t *testing.T) {
	// Malformed acoustic output (end before start) is not the builder's
	// problem
	record := BuildRecord(&whisper.Result{
		Segments: []whisper.Segment{
			{Start: 5, End: 2, Text: "backwards"},
		},
	})

	require.Len(t, record.Segments, 1)
	assert.Equal(t, 5.0, record.Segments[0].Start)
	assert.Equal(t, 2.0, record.Segments[0].End)
}
