package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
)

// Adapter is an adapter for a Whisper-compatible transcription API
type Adapter struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *slog.Logger
}

var _ port.Transcriber = (*Adapter)(nil)

// NewAdapter returns Adapter
func NewAdapter(cfg config.TranscriberConfig, logger *slog.Logger) *Adapter {
	return &Adapter{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Transcribe sends the audio file to the transcription API and returns the
// timed segments from its verbose response.
func (a *Adapter) Transcribe(ctx context.Context, audioPath string, language string) ([]domain.TranscriptSegment, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	body, contentType, err := buildMultipartBody(file, filepath.Base(audioPath), a.model, language)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	started := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("transcription API returned %d: %s", resp.StatusCode, payload)
	}

	var decoded transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode transcription response: %w", err)
	}

	segments := make([]domain.TranscriptSegment, 0, len(decoded.Segments))
	for _, segment := range decoded.Segments {
		segments = append(segments, domain.TranscriptSegment{
			Start: time.Duration(segment.Start * float64(time.Second)),
			End:   time.Duration(segment.End * float64(time.Second)),
			Text:  segment.Text,
		})
	}

	a.logger.Info("transcription finished",
		"segments", len(segments), "language", language, "took", time.Since(started))

	return segments, nil
}

// buildMultipartBody streams the multipart form through a pipe so large audio
// files are never buffered whole.
func buildMultipartBody(file io.Reader, filename, model, language string) (io.Reader, string, error) {
	pipeReader, pipeWriter := io.Pipe()
	writer := multipart.NewWriter(pipeWriter)

	go func() {
		err := func() error {
			part, err := writer.CreateFormFile("file", filename)
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, file); err != nil {
				return err
			}
			if err := writer.WriteField("model", model); err != nil {
				return err
			}
			if language != "" {
				if err := writer.WriteField("language", language); err != nil {
					return err
				}
			}
			if err := writer.WriteField("response_format", "verbose_json"); err != nil {
				return err
			}
			return writer.Close()
		}()
		pipeWriter.CloseWithError(err)
	}()

	return pipeReader, writer.FormDataContentType(), nil
}
