package ffmpeg

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"subpipe/internal/config"
	"subpipe/internal/core/port"
)

// Adapter extracts the audio track of a video with the ffmpeg binary
type Adapter struct {
	command    string
	sampleRate int
	logger     *slog.Logger
}

var _ port.AudioExtractor = (*Adapter)(nil)

// NewAdapter returns Adapter. It fails fast when the configured ffmpeg binary
// is not on PATH so a misconfigured worker does not accept jobs it cannot run.
func NewAdapter(cfg config.AudioConfig, logger *slog.Logger) (*Adapter, error) {
	resolved, err := exec.LookPath(cfg.FFmpegCmd)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg binary %q not found: %w", cfg.FFmpegCmd, err)
	}

	return &Adapter{
		command:    resolved,
		sampleRate: cfg.SampleRate,
		logger:     logger,
	}, nil
}

// Extract writes a mono PCM wav next to the other working files and returns
// its path
func (a *Adapter) Extract(ctx context.Context, videoPath string, outDir string) (string, error) {
	outPath := filepath.Join(outDir, "audio.wav")

	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(a.sampleRate),
		"-ac", "1",
		outPath,
	}

	started := time.Now()
	cmd := exec.CommandContext(ctx, a.command, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w: %s", err, truncate(output, 2048))
	}

	a.logger.Info("audio extracted", "video", videoPath, "out", outPath, "took", time.Since(started))
	return outPath, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
