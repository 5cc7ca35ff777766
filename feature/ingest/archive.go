package ingest

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"moneyball/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archiver writes raw provider payloads to object storage before decoding,
// keyed raw/<sport>/<feed>/<date>/<nanos>.json. Archival is best effort:
// failures are logged and never surface into ingestion.
type Archiver struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// NewArchiver creates an archiver writing into bucket.
func NewArchiver(client storage.Client, bucket string, logger *zap.Logger) *Archiver {
	return &Archiver{client: client, bucket: bucket, logger: logger, now: time.Now}
}

// EnsureBucket creates the archive bucket if it does not exist.
func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check archive bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create archive bucket: %w", err)
	}
	a.logger.Info("Archive bucket created", zap.String("bucket", a.bucket))
	return nil
}

// HookFor returns a payload hook that archives feeds under the given sport.
func (a *Archiver) HookFor(sport string) func(feed string, body []byte) {
	return func(feed string, body []byte) {
		a.put(sport, feed, body)
	}
}

func (a *Archiver) put(sport, feed string, body []byte) {
	now := a.now().UTC()
	key := fmt.Sprintf("raw/%s/%s/%s/%d.json", sport, feed, now.Format("2006-01-02"), now.UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		a.logger.Warn("Failed to archive payload",
			zap.String("key", key),
			zap.Error(err))
		return
	}
	a.logger.Debug("Payload archived", zap.String("key", key))
}
