package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"atelier-backoffice-api/internal/client"
	"atelier-backoffice-api/internal/domain"
	"atelier-backoffice-api/internal/metrics"
	"atelier-backoffice-api/internal/repository"
)

// PhotoSweepJob drains the purge queue left behind by phase relaunches
// and project deletions, removing the orphaned proof photos from storage.
type PhotoSweepJob struct {
	purgeRepo repository.PhotoPurgeRepository
	s3Client  client.S3ClientInterface
	metrics   *metrics.Metrics
	batchSize int
	logger    *zap.Logger
}

// NewPhotoSweepJob creates a new PhotoSweepJob instance
func NewPhotoSweepJob(
	purgeRepo repository.PhotoPurgeRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	batchSize int,
	logger *zap.Logger,
) *PhotoSweepJob {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &PhotoSweepJob{
		purgeRepo: purgeRepo,
		s3Client:  s3Client,
		metrics:   m,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Schedule registers the job on a new cron runner and starts it.
// The caller owns the returned cron and should Stop it on shutdown.
func (j *PhotoSweepJob) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, j); err != nil {
		return nil, err
	}
	c.Start()
	j.logger.Info("Photo sweep job scheduled", zap.String("schedule", spec))
	return c, nil
}

// Run executes one sweep. It processes the queue in batches until the
// queue is empty or a batch makes no progress.
func (j *PhotoSweepJob) Run() {
	ctx := context.Background()

	j.logger.Info("Starting photo sweep")

	totalDeleted := 0
	totalFailed := 0

	for {
		entries, err := j.purgeRepo.FindBatch(ctx, j.batchSize)
		if err != nil {
			j.logger.Error("Failed to read photo purge queue", zap.Error(err))
			return
		}
		if len(entries) == 0 {
			break
		}

		deleted, failed := j.sweepBatch(ctx, entries)
		totalDeleted += deleted
		totalFailed += failed

		// Every entry in the batch failed; retry on the next run instead
		// of spinning on the same rows.
		if deleted == 0 {
			break
		}
	}

	j.logger.Info("Photo sweep completed",
		zap.Int("deleted", totalDeleted),
		zap.Int("failed", totalFailed),
	)
}

func (j *PhotoSweepJob) sweepBatch(ctx context.Context, entries []*domain.PhotoPurge) (int, int) {
	var cleared []uuid.UUID
	failed := 0

	for _, entry := range entries {
		start := time.Now()
		err := j.s3Client.DeleteFile(ctx, entry.FileKey)
		j.metrics.RecordStorageOperation("delete", time.Since(start), err)
		if err != nil {
			j.logger.Error("Failed to delete proof photo from storage",
				zap.String("phase_id", entry.PhaseID.String()),
				zap.String("file_key", entry.FileKey),
				zap.Error(err),
			)
			failed++
			continue
		}
		cleared = append(cleared, entry.ID)
	}

	if len(cleared) > 0 {
		if err := j.purgeRepo.DeleteBatch(ctx, cleared); err != nil {
			j.logger.Error("Failed to clear purge queue entries",
				zap.Int("count", len(cleared)),
				zap.Error(err),
			)
			return 0, failed + len(cleared)
		}
	}

	return len(cleared), failed
}
