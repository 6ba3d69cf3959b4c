package transcriptions_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/revlence/transcribe-api/api/transcriptions"
	"github.com/revlence/transcribe-api/api/types"
	"github.com/revlence/transcribe-api/internal/database"
	"github.com/revlence/transcribe-api/internal/models"
	"github.com/revlence/transcribe-api/internal/services/objectstore"
	"github.com/revlence/transcribe-api/internal/services/transcription"
	"github.com/revlence/transcribe-api/internal/services/whisper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubEngine returns a canned result or error and records the options it saw
type stubEngine struct {
	result   *whisper.Result
	err      error
	lastOpts whisper.Options
}

func (e *stubEngine) Transcribe(ctx context.Context, path string, opts whisper.Options) (*whisper.Result, error) {
	e.lastOpts = opts
	if e.err != nil {
		return nil, e.err
	}
	return e.result, nil
}

func (e *stubEngine) Name() string { return "stub" }

type transcribeTestSuite struct {
	t      *testing.T
	engine *stubEngine
	store  *objectstore.MemoryStore
	deps   *types.Dependencies
	router *gin.Engine
}

func setupTranscribeTestSuite(t *testing.T) *transcribeTestSuite {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(&models.TranscriptionMeta{})
	require.NoError(t, err, "Failed to migrate test database")

	engine := &stubEngine{
		result: &whisper.Result{
			Language:            "en",
			LanguageProbability: 0.99,
			Duration:            2.0,
			Segments: []whisper.Segment{
				{
					Start: 0, End: 1, Text: "hello",
					Words: []whisper.Word{{Word: "hello", Start: 0, End: 1}},
				},
				{
					Start: 1, End: 2, Text: "world",
					Words: []whisper.Word{{Word: "world", Start: 1, End: 2}},
				},
			},
		},
	}

	store := objectstore.NewMemoryStore()
	repo := transcription.NewRepository(db)

	deps := &types.Dependencies{
		DB:                   &database.DB{DB: db},
		Engine:               engine,
		EngineOptions:        whisper.Options{WordTimestamps: true, BeamSize: 5},
		TranscriptionService: transcription.NewService(repo, store),
		ObjectStore:          store,
		TempDir:              t.TempDir(),
		MaxUploadBytes:       10 * 1024 * 1024,
	}

	router := gin.New()
	router.POST("/transcribe", transcriptions.Transcribe(deps))
	router.GET("/transcriptions/:uuid", transcriptions.GetRecord(deps))

	return &transcribeTestSuite{
		t:      t,
		engine: engine,
		store:  store,
		deps:   deps,
		router: router,
	}
}

// postAudio submits a multipart upload with the given extra form fields
func (suite *transcribeTestSuite) postAudio(fields map[string]string) *httptest.ResponseRecorder {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "clip.wav")
	require.NoError(suite.t, err)
	_, err = part.Write([]byte("RIFF fake audio bytes"))
	require.NoError(suite.t, err)

	for k, v := range fields {
		require.NoError(suite.t, writer.WriteField(k, v))
	}
	require.NoError(suite.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/transcribe", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func TestTranscribeObjectMode(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	w := suite.postAudio(nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.UUID)
	assert.Equal(t, "en", resp.DetectedLanguage)
	assert.Equal(t, 2.0, resp.Duration)
	assert.True(t, resp.PayloadSaved)
	assert.Equal(t, "transcriptions/"+resp.UUID+".json", resp.S3Key)
	assert.Empty(t, resp.Text)

	require.Len(t, resp.Segments, 2)
	assert.Equal(t, "hello", resp.Segments[0].Text)
	require.Len(t, resp.Words, 2)
	assert.Equal(t, "world", resp.Words[1].Word)

	// The stored object must match the response
	data, err := suite.store.Get(context.Background(), resp.S3Key)
	require.NoError(t, err)

	var stored models.TranscriptionRecord
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, resp.UUID, stored.ID)
	assert.Equal(t, resp.Segments, stored.Segments)
	assert.Equal(t, resp.Words, stored.Words)
	assert.Equal(t, "hello world", stored.FullText)
}

func TestTranscribeInlineMode(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	w := suite.postAudio(map[string]string{"inline": "true"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "hello world", resp.Text)
	assert.Empty(t, resp.S3Key)
	assert.True(t, resp.PayloadSaved)

	// Inline mode writes nothing to the object store
	assert.Equal(t, 0, suite.store.Len())
}

func TestTranscribeWordsDisabled(t *testing.T) {
	suite := setupTranscribeTestSuite(t)
	suite.engine.result.Segments = []whisper.Segment{
		{Start: 0, End: 2, Text: "no words"},
	}

	w := suite.postAudio(map[string]string{"words": "false"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.False(t, suite.engine.lastOpts.WordTimestamps)

	var resp types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Words must be an empty array, not null
	require.NotNil(t, resp.Words)
	assert.Empty(t, resp.Words)
	assert.Contains(t, w.Body.String(), `"words":[]`)
}

func TestTranscribeMissingFile(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	req := httptest.NewRequest(http.MethodPost, "/transcribe", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatusError, resp.Status)
	assert.Equal(t, "MISSING_FIELD", resp.Code)
}

func TestTranscribeOversizeUpload(t *testing.T) {
	suite := setupTranscribeTestSuite(t)
	suite.deps.MaxUploadBytes = 4

	w := suite.postAudio(nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UPLOAD_TOO_LARGE", resp.Code)
}

func TestTranscribeUndecodableAudio(t *testing.T) {
	suite := setupTranscribeTestSuite(t)
	suite.engine.err = fmt.Errorf("whisper-cli failed: bad header: %w", whisper.ErrAudioDecode)

	w := suite.postAudio(nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "AUDIO_DECODE", resp.Code)
}

func TestTranscribeEngineFailure(t *testing.T) {
	suite := setupTranscribeTestSuite(t)
	suite.engine.err = errors.New("model crashed")

	w := suite.postAudio(nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EXTERNAL_SERVICE", resp.Code)
}

func TestTranscribeSilentClip(t *testing.T) {
	suite := setupTranscribeTestSuite(t)
	suite.engine.result = &whisper.Result{
		Language: "en",
		Duration: 2.0,
		Segments: []whisper.Segment{},
	}

	w := suite.postAudio(nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Empty(t, resp.Segments)
	assert.Empty(t, resp.Words)
	assert.InDelta(t, 2.0, resp.Duration, 0.01)
	assert.True(t, resp.PayloadSaved)
}

func TestGetRecordRoundTrip(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	w := suite.postAudio(nil)
	require.Equal(t, http.StatusOK, w.Code)

	var created types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodGet, "/transcriptions/"+created.UUID, nil)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.RecordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.NotNil(t, resp.Record)
	assert.Equal(t, created.UUID, resp.Record.ID)
	assert.Equal(t, created.Segments, resp.Record.Segments)
	assert.Equal(t, string(models.TranscriptionStatusComplete), resp.Status)
}

func TestGetRecordNotFound(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	req := httptest.NewRequest(http.MethodGet, "/transcriptions/99999999-9999-9999-9999-999999999999", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetRecordInvalidUUID(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	req := httptest.NewRequest(http.MethodGet, "/transcriptions/not-a-uuid", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTranscribeUniqueUUIDs(t *testing.T) {
	suite := setupTranscribeTestSuite(t)

	seen := make(map[string]bool)
	for i := 0; i < 25; i++ {
		w := suite.postAudio(nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.TranscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.False(t, seen[resp.UUID], "duplicate UUID: %s", resp.UUID)
		seen[resp.UUID] = true
	}
}
