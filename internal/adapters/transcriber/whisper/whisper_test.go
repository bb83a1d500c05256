package whisper_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"subpipe/internal/adapters/transcriber/whisper"
	"subpipe/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake audio"), 0o644))
	return path
}

func newAdapter(t *testing.T, baseURL string) *whisper.Adapter {
	t.Helper()
	return whisper.NewAdapter(config.TranscriberConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "whisper-1",
		Timeout: 5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTranscribe_ParsesVerboseSegments(t *testing.T) {
	// Arrange
	var gotModel, gotLanguage, gotFormat, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1 << 20))
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotFormat = r.FormValue("response_format")
		gotAuth = r.Header.Get("Authorization")

		_, _, err := r.FormFile("file")
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"text": "hello world",
			"segments": [
				{"start": 0, "end": 2.5, "text": "hello"},
				{"start": 2.5, "end": 4, "text": "world"}
			]
		}`))
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	// Act
	segments, err := adapter.Transcribe(context.Background(), writeAudioFixture(t), "en")

	// Assert
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, time.Duration(0), segments[0].Start)
	assert.Equal(t, 2500*time.Millisecond, segments[0].End)
	assert.Equal(t, "hello", segments[0].Text)
	assert.Equal(t, 4*time.Second, segments[1].End)

	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, "en", gotLanguage)
	assert.Equal(t, "verbose_json", gotFormat)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestTranscribe_APIErrorIsSurfaced(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := newAdapter(t, server.URL)

	// Act
	_, err := adapter.Transcribe(context.Background(), writeAudioFixture(t), "en")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestTranscribe_MissingAudioFile(t *testing.T) {
	// Arrange
	adapter := newAdapter(t, "http://localhost:0")

	// Act
	_, err := adapter.Transcribe(context.Background(), "/does/not/exist.wav", "en")

	// Assert
	assert.Error(t, err)
}
