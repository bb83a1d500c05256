package storageevent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"subpipe/internal/core/domain"

	"github.com/google/uuid"
)

const mediaKeyPrefix = "media/"

func (s *storageEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.MinIOEvent

	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("could not unmarshal bucket notification: %v", err)
	}
	if len(event.Records) == 0 {
		return fmt.Errorf("no records in bucket notification")
	}

	bucketNotif := event.Records[0]

	decodedKey, err := url.QueryUnescape(bucketNotif.S3.Object.Key)
	if err != nil {
		return err
	}

	// only direct media uploads settle records; audio and subtitle artifacts
	// are written by the worker itself
	if !strings.HasPrefix(decodedKey, mediaKeyPrefix) {
		s.logger.Debug("ignoring notification for non-media key", "key", decodedKey)
		return nil
	}

	mediaID, err := uuid.Parse(strings.TrimPrefix(decodedKey, mediaKeyPrefix))
	if err != nil {
		return fmt.Errorf("media key %q does not carry a media id: %w", decodedKey, err)
	}

	s.logger.Info("handling bucket notification", "event", bucketNotif.EventName, "key", decodedKey, "media_id", mediaID)

	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		return err
	}

	info, err := s.storage.Stat(ctx, media.StorageKey)
	if err != nil {
		return err
	}

	var failedUploadErr error
	if info.Size != media.SizeBytes {
		failedUploadErr = fmt.Errorf("%w: declared %d bytes, stored %d", domain.ErrSizeMismatch, media.SizeBytes, info.Size)
	} else if media.Checksum != "" && info.ChecksumSHA256 != "" && info.ChecksumSHA256 != media.Checksum {
		failedUploadErr = domain.ErrChecksumMismatch
	}

	if err := s.mediaService.FinalizeUpload(ctx, *media, failedUploadErr); err != nil {
		return err
	}
	return failedUploadErr
}
