package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"subpipe/internal/core/domain"
	"subpipe/internal/core/port"
	"subpipe/internal/core/service/cache"
	"subpipe/internal/core/service/jobqueue"

	"github.com/google/uuid"
)

const (
	stagePrepare    = "prepare"
	stageExtract    = "extract_audio"
	stageStoreAudio = "store_audio"
	stageTranscribe = "transcribe"
	stageFormat     = "format"
	stagePersist    = "persist"
)

// Pipeline turns a generate-subtitles job into a subtitle artifact. Each
// attempt walks the stages in order; the first stage error aborts the attempt
// and is reported with its stage name so retries and operators can tell where
// it broke. Working files and the staged audio object are removed once per
// attempt regardless of outcome.
type Pipeline struct {
	media      port.MediaRepository
	subtitles  port.SubtitleRepository
	storage    port.ObjectStorage
	extractor  port.AudioExtractor
	transcribe port.Transcriber
	dedup      port.DedupStore
	cache      port.MetadataCache
	workDir    string
	logger     *slog.Logger
}

// New creates a Pipeline
func New(
	media port.MediaRepository,
	subtitles port.SubtitleRepository,
	storage port.ObjectStorage,
	extractor port.AudioExtractor,
	transcriber port.Transcriber,
	dedup port.DedupStore,
	metadataCache port.MetadataCache,
	workDir string,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		media:      media,
		subtitles:  subtitles,
		storage:    storage,
		extractor:  extractor,
		transcribe: transcriber,
		dedup:      dedup,
		cache:      metadataCache,
		workDir:    workDir,
		logger:     logger,
	}
}

var _ jobqueue.Handler = (*Pipeline)(nil)

// Run executes one generation attempt
func (p *Pipeline) Run(ctx context.Context, job *domain.Job, report jobqueue.ProgressFunc) (*domain.JobResult, error) {
	result, err := p.run(ctx, job, report)
	if err != nil {
		var stageErr *domain.PipelineStageError
		if !errors.As(err, &stageErr) {
			stageErr = &domain.PipelineStageError{Stage: stagePrepare, Err: err}
			err = stageErr
		}
		p.markFailed(ctx, job.Payload.SubtitleID, job.Payload.MediaID, stageErr)
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, job *domain.Job, report jobqueue.ProgressFunc) (*domain.JobResult, error) {
	payload := job.Payload

	// prepare: load records, mark processing, pull the video down
	report(stagePrepare, 5, "fetching media")

	media, err := p.media.FindByID(ctx, payload.MediaID)
	if err != nil {
		return nil, stageError(stagePrepare, fmt.Errorf("loading media record: %w", err))
	}
	subtitle, err := p.subtitles.FindByID(ctx, payload.SubtitleID)
	if err != nil {
		return nil, stageError(stagePrepare, fmt.Errorf("loading subtitle record: %w", err))
	}
	if media.Status != domain.MediaStatusUploaded {
		return nil, stageError(stagePrepare, domain.ErrMediaNotReady)
	}

	if err := p.subtitles.UpdateStatus(ctx, subtitle.ID, domain.SubtitleStatusProcessing, ""); err != nil {
		return nil, stageError(stagePrepare, fmt.Errorf("marking subtitle processing: %w", err))
	}
	p.invalidateSubtitleCache(ctx, subtitle.ID, media.ID)

	workDir, err := os.MkdirTemp(p.workDir, "job-"+job.ID.String()+"-")
	if err != nil {
		return nil, stageError(stagePrepare, fmt.Errorf("creating work dir: %w", err))
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.logger.Warn("failed to remove work dir", "dir", workDir, "error", err)
		}
	}()

	// the staged audio object lives only for the duration of the attempt;
	// deleting a key that was never uploaded is a no-op
	audioKey := fmt.Sprintf("audio/%s.wav", media.ID)
	defer func() {
		if err := p.storage.Delete(ctx, audioKey); err != nil {
			p.logger.Warn("failed to remove intermediate audio object", "key", audioKey, "error", err)
		}
	}()

	videoPath := filepath.Join(workDir, "input"+filepath.Ext(media.Name))
	if err := p.downloadTo(ctx, media.StorageKey, videoPath); err != nil {
		return nil, stageError(stagePrepare, err)
	}

	// extract_audio
	report(stageExtract, 25, "extracting audio track")
	audioPath, err := p.extractor.Extract(ctx, videoPath, workDir)
	if err != nil {
		return nil, stageError(stageExtract, err)
	}

	// store_audio: stage the extracted track for the transcription step
	report(stageStoreAudio, 40, "storing extracted audio")
	if err := p.uploadFrom(ctx, audioKey, audioPath, "audio/wav"); err != nil {
		return nil, stageError(stageStoreAudio, err)
	}

	// transcribe
	report(stageTranscribe, 55, "transcribing audio")
	segments, err := p.transcribe.Transcribe(ctx, audioPath, payload.Language)
	if err != nil {
		return nil, stageError(stageTranscribe, err)
	}

	// format
	report(stageFormat, 80, "rendering subtitle file")
	rendered, err := Render(segments, subtitle.Format)
	if err != nil {
		return nil, stageError(stageFormat, err)
	}

	// persist
	report(stagePersist, 90, "persisting subtitle artifact")
	subtitleKey := fmt.Sprintf("subtitles/%s.%s", subtitle.ID, subtitle.Format)
	contentType := "application/x-subrip"
	if subtitle.Format == domain.SubtitleFormatVTT {
		contentType = "text/vtt"
	}
	if err := p.storage.Upload(ctx, subtitleKey, bytes.NewReader(rendered), int64(len(rendered)), contentType); err != nil {
		return nil, stageError(stagePersist, err)
	}

	generatedAt := time.Now().UTC()
	if err := p.subtitles.MarkCompleted(ctx, subtitle.ID, subtitleKey, generatedAt); err != nil {
		return nil, stageError(stagePersist, err)
	}
	p.invalidateSubtitleCache(ctx, subtitle.ID, media.ID)
	p.linkDedupRecord(ctx, media, subtitle.ID)

	report(stagePersist, 100, "completed")
	p.logger.Info("subtitle generated",
		"job_id", job.ID, "media_id", media.ID, "subtitle_id", subtitle.ID, "key", subtitleKey)

	return &domain.JobResult{SubtitleID: subtitle.ID, StorageKey: subtitleKey}, nil
}

func (p *Pipeline) downloadTo(ctx context.Context, key, path string) error {
	reader, err := p.storage.Download(ctx, key)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", key, err)
	}
	defer reader.Close()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (p *Pipeline) uploadFrom(ctx context.Context, key, path, contentType string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stating %s: %w", path, err)
	}
	if err := p.storage.Upload(ctx, key, file, info.Size(), contentType); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// linkDedupRecord attaches the finished subtitle to the media's fingerprint
// record. A conflict means another worker already linked one; either outcome
// leaves a valid record, so failures only log.
func (p *Pipeline) linkDedupRecord(ctx context.Context, media *domain.MediaRecord, subtitleID uuid.UUID) {
	if media.Checksum == "" {
		return
	}
	err := p.dedup.UpdateSubtitleID(ctx, media.Checksum, subtitleID)
	if err != nil && !errors.Is(err, domain.ErrTransactionConflict) && !errors.Is(err, domain.ErrDedupRecordNotFound) {
		p.logger.Warn("failed to link dedup record", "fingerprint", media.Checksum, "error", err)
	}
}

func (p *Pipeline) markFailed(ctx context.Context, subtitleID, mediaID uuid.UUID, stageErr *domain.PipelineStageError) {
	reason := fmt.Sprintf("%s: %v", stageErr.Stage, stageErr.Err)
	if err := p.subtitles.UpdateStatus(ctx, subtitleID, domain.SubtitleStatusFailed, reason); err != nil {
		p.logger.Error("failed to mark subtitle failed", "subtitle_id", subtitleID, "error", err)
	}
	p.invalidateSubtitleCache(ctx, subtitleID, mediaID)
}

func (p *Pipeline) invalidateSubtitleCache(ctx context.Context, subtitleID, mediaID uuid.UUID) {
	if err := p.cache.Delete(ctx, cache.SubtitleKey(subtitleID), cache.SubtitleListKey(mediaID)); err != nil {
		p.logger.Warn("failed to invalidate subtitle cache", "subtitle_id", subtitleID, "error", err)
	}
}

func stageError(stage string, err error) error {
	return &domain.PipelineStageError{Stage: stage, Err: err}
}
