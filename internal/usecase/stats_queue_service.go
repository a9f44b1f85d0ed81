package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
	"github.com/riskibarqy/hockey-league/internal/platform/id"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultQueueBatchSize    = 10
	defaultQueueMaxBatchSize = 50
	defaultQueueClaimLease   = 10 * time.Minute

	queuePersistRetries = 2
	queuePersistBackoff = 200 * time.Millisecond
)

// Item outcomes reported to a QueueObserver.
const (
	QueueOutcomeCompleted = "completed"
	QueueOutcomeRetried   = "retried"
	QueueOutcomeFailed    = "failed"
	// QueueOutcomeReleased is an item handed back to PENDING untouched
	// because the batch was cancelled before it started.
	QueueOutcomeReleased = "released"
)

type StatsQueueServiceConfig struct {
	MaxRetries       int
	DefaultBatchSize int
	MaxBatchSize     int
	Workers          int
	// UpsertStats replaces existing (game, player) rows instead of failing
	// the item with a duplicate error.
	UpsertStats bool
	// ClaimLease is how long a PROCESSING item may go without a recorded
	// outcome before a later batch claims it again.
	ClaimLease time.Duration
}

func (c StatsQueueServiceConfig) normalize() StatsQueueServiceConfig {
	if c.MaxRetries <= 0 {
		c.MaxRetries = statsqueue.DefaultMaxRetries
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = defaultQueueMaxBatchSize
	}
	if c.DefaultBatchSize <= 0 {
		c.DefaultBatchSize = defaultQueueBatchSize
	}
	if c.DefaultBatchSize > c.MaxBatchSize {
		c.DefaultBatchSize = c.MaxBatchSize
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.ClaimLease <= 0 {
		c.ClaimLease = defaultQueueClaimLease
	}
	return c
}

// QueueObserver receives queue processing events, typically for metrics.
type QueueObserver interface {
	ItemProcessed(outcome string)
	BatchFinished(claimed int, elapsed time.Duration)
	BatchRejected()
}

type nopQueueObserver struct{}

func (nopQueueObserver) ItemProcessed(string)             {}
func (nopQueueObserver) BatchFinished(int, time.Duration) {}
func (nopQueueObserver) BatchRejected()                   {}

type StatsQueueOption func(*StatsQueueService)

func WithQueueObserver(observer QueueObserver) StatsQueueOption {
	return func(s *StatsQueueService) {
		if observer != nil {
			s.observer = observer
		}
	}
}

func WithQueueClock(now func() time.Time) StatsQueueOption {
	return func(s *StatsQueueService) {
		if now != nil {
			s.now = now
		}
	}
}

// BatchResult summarizes one processing pass. Unpersisted counts items whose
// outcome could not be written; they stay PROCESSING until their claim lease
// expires and a later batch picks them up again.
type BatchResult struct {
	Claimed     int `json:"claimed"`
	Completed   int `json:"completed"`
	Retried     int `json:"retried"`
	Failed      int `json:"failed"`
	Released    int `json:"released"`
	Unpersisted int `json:"unpersisted"`
}

type itemResult struct {
	outcome   string
	persisted bool
}

type StatsQueueService struct {
	cfg       StatsQueueServiceConfig
	queueRepo statsqueue.Repository
	statRepo  gamestat.Repository
	providers StatsProviders
	idGen     id.Generator
	logger    *logging.Logger
	observer  QueueObserver
	now       func() time.Time
	persist   resilience.RetryPolicy

	processing atomic.Bool
}

func NewStatsQueueService(
	cfg StatsQueueServiceConfig,
	queueRepo statsqueue.Repository,
	statRepo gamestat.Repository,
	providers StatsProviders,
	idGen id.Generator,
	logger *logging.Logger,
	opts ...StatsQueueOption,
) *StatsQueueService {
	if logger == nil {
		logger = logging.Default()
	}
	if idGen == nil {
		idGen = id.NewTimeOrderedGenerator()
	}

	s := &StatsQueueService{
		cfg:       cfg.normalize(),
		queueRepo: queueRepo,
		statRepo:  statRepo,
		providers: providers,
		idGen:     idGen,
		logger:    logger.Named("stats_queue"),
		observer:  nopQueueObserver{},
		now:       time.Now,
		persist: resilience.RetryPolicy{
			MaxRetries: queuePersistRetries,
			Backoff:    resilience.LinearBackoff(queuePersistBackoff),
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue creates one PENDING item per game id and returns the item ids in
// input order. Game ids are not deduplicated.
func (s *StatsQueueService) Enqueue(ctx context.Context, gameIDs []string, provider string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueueService.Enqueue")
	defer span.End()

	if len(gameIDs) == 0 {
		return nil, fmt.Errorf("%w: game ids are required", ErrInvalidInput)
	}
	name, ok := statsqueue.ParseProvider(provider)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrInvalidInput, provider)
	}
	if _, ok := s.providers.Get(name); !ok {
		return nil, fmt.Errorf("%w: provider %s is not configured", ErrInvalidInput, name)
	}

	now := s.now().UTC()
	items := make([]statsqueue.Item, 0, len(gameIDs))
	ids := make([]string, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		gameID = strings.TrimSpace(gameID)
		if gameID == "" {
			return nil, fmt.Errorf("%w: game id must not be empty", ErrInvalidInput)
		}
		itemID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate queue item id: %w", err)
		}
		items = append(items, statsqueue.NewItem(itemID, gameID, name, s.cfg.MaxRetries, now))
		ids = append(ids, itemID)
	}

	if err := s.queueRepo.Create(ctx, items); err != nil {
		return nil, fmt.Errorf("create queue items: %w", err)
	}
	span.SetAttributes(attribute.Int("queue.enqueued", len(items)), attribute.String("queue.provider", string(name)))

	s.logger.InfoContext(ctx, "stats queue items enqueued",
		"count", len(items),
		"provider", string(name),
	)
	return ids, nil
}

// ProcessBatch claims up to batchSize pending items, plus items whose claim
// lease expired, and imports them. Only one pass runs at a time per service;
// an overlapping call returns ErrBatchInProgress without touching the queue.
// Claimed items are not interrupted by ctx: once ctx is done, items that have
// not started are released back to PENDING without spending a retry.
func (s *StatsQueueService) ProcessBatch(ctx context.Context, batchSize int) (BatchResult, error) {
	if !s.processing.CompareAndSwap(false, true) {
		s.observer.BatchRejected()
		return BatchResult{}, ErrBatchInProgress
	}
	defer s.processing.Store(false)

	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueueService.ProcessBatch")
	defer span.End()

	started := s.now()
	batchSize = s.normalizeBatchSize(batchSize)
	span.SetAttributes(attribute.Int("queue.batch_size", batchSize))

	items, err := s.queueRepo.ClaimPending(ctx, batchSize, started.UTC(), started.Add(-s.cfg.ClaimLease).UTC())
	if err != nil {
		return BatchResult{}, fmt.Errorf("claim pending queue items: %w", err)
	}

	result := BatchResult{Claimed: len(items)}
	if len(items) == 0 {
		s.observer.BatchFinished(0, s.now().Sub(started))
		return result, nil
	}

	for _, item := range s.processItems(ctx, items) {
		switch item.outcome {
		case QueueOutcomeCompleted:
			result.Completed++
		case QueueOutcomeRetried:
			result.Retried++
		case QueueOutcomeFailed:
			result.Failed++
		case QueueOutcomeReleased:
			result.Released++
		}
		if !item.persisted {
			result.Unpersisted++
		}
	}

	elapsed := s.now().Sub(started)
	s.observer.BatchFinished(len(items), elapsed)
	span.SetAttributes(
		attribute.Int("queue.claimed", result.Claimed),
		attribute.Int("queue.completed", result.Completed),
		attribute.Int("queue.failed", result.Failed),
		attribute.Int("queue.unpersisted", result.Unpersisted),
	)
	s.logger.InfoContext(ctx, "stats queue batch processed",
		"claimed", result.Claimed,
		"completed", result.Completed,
		"retried", result.Retried,
		"failed", result.Failed,
		"released", result.Released,
		"unpersisted", result.Unpersisted,
		"duration_ms", elapsed.Milliseconds(),
	)
	return result, nil
}

func (s *StatsQueueService) normalizeBatchSize(batchSize int) int {
	if batchSize <= 0 {
		return s.cfg.DefaultBatchSize
	}
	if batchSize > s.cfg.MaxBatchSize {
		return s.cfg.MaxBatchSize
	}
	return batchSize
}

func (s *StatsQueueService) processItems(ctx context.Context, items []statsqueue.Item) []itemResult {
	results := make([]itemResult, len(items))
	work := context.WithoutCancel(ctx)
	run := func(i int) {
		if ctx.Err() != nil {
			results[i] = s.releaseItem(work, items[i])
			return
		}
		results[i] = s.processItem(work, items[i])
	}

	workerCount := min(s.cfg.Workers, len(items))
	if workerCount <= 1 {
		for i := range items {
			run(i)
		}
		return results
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		s.logger.WarnContext(ctx, "create worker pool failed, processing sequentially",
			"workers", workerCount,
			"error", err,
		)
		for i := range items {
			run(i)
		}
		return results
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range items {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			run(i)
		}); err != nil {
			workers.Done()
			run(i)
		}
	}
	workers.Wait()

	return results
}

// processItem runs one claimed item to COMPLETED, back to PENDING, or FAILED.
func (s *StatsQueueService) processItem(ctx context.Context, item statsqueue.Item) itemResult {
	if item.Status != statsqueue.StatusProcessing {
		item.Claim(s.now().UTC())
	}

	provider, ok := s.providers.Get(item.Provider)
	if !ok {
		return s.failItem(ctx, item, fmt.Errorf("provider %s is not configured", item.Provider))
	}

	stats, err := provider.GetGameStats(ctx, item.GameID)
	if err != nil {
		return s.failItem(ctx, item, fmt.Errorf("fetch game stats: %w", err))
	}

	stats, err = s.prepareStats(item, stats)
	if err != nil {
		return s.failItem(ctx, item, err)
	}

	if len(stats) > 0 {
		// A reclaimed item may have stored its stats before its outcome
		// write was lost, so the import is replayed as an upsert.
		if s.cfg.UpsertStats || item.Reclaimed() {
			err = s.statRepo.Upsert(ctx, stats)
		} else {
			err = s.statRepo.Insert(ctx, stats)
		}
		if err != nil {
			return s.failItem(ctx, item, fmt.Errorf("store game stats: %w", err))
		}
	}

	item.Complete(stats)
	persisted := s.persistItem(ctx, item)
	s.observer.ItemProcessed(QueueOutcomeCompleted)
	return itemResult{outcome: QueueOutcomeCompleted, persisted: persisted}
}

func (s *StatsQueueService) releaseItem(ctx context.Context, item statsqueue.Item) itemResult {
	item.Release()
	persisted := s.persistItem(ctx, item)
	s.logger.InfoContext(ctx, "stats queue item released",
		"item_id", item.ID,
		"game_id", item.GameID,
	)
	s.observer.ItemProcessed(QueueOutcomeReleased)
	return itemResult{outcome: QueueOutcomeReleased, persisted: persisted}
}

// persistItem writes the item state, retrying transient store errors. It
// reports false when the state could not be written.
func (s *StatsQueueService) persistItem(ctx context.Context, item statsqueue.Item) bool {
	err := resilience.Retry(ctx, s.persist, nil, func(int) error {
		return s.queueRepo.Update(ctx, item)
	})
	if err == nil {
		return true
	}
	s.logger.ErrorContext(ctx, "persist stats queue item failed, leaving it to lease expiry",
		"item_id", item.ID,
		"game_id", item.GameID,
		"status", item.Status,
		"error", err,
	)
	return false
}

func (s *StatsQueueService) prepareStats(item statsqueue.Item, stats []gamestat.GameStat) ([]gamestat.GameStat, error) {
	out := make([]gamestat.GameStat, 0, len(stats))
	processedAt := s.now().UTC()
	for _, stat := range stats {
		if strings.TrimSpace(stat.GameID) == "" {
			stat.GameID = item.GameID
		}
		if stat.ID == "" {
			statID, err := s.idGen.NewID()
			if err != nil {
				return nil, fmt.Errorf("generate game stat id: %w", err)
			}
			stat.ID = statID
		}
		stat.Recompute()
		stat.Source = sourceForProvider(item.Provider)
		at := processedAt
		stat.ProcessedAt = &at
		out = append(out, stat)
	}
	return out, nil
}

func sourceForProvider(provider statsqueue.Provider) string {
	if provider == statsqueue.ProviderEASports {
		return gamestat.SourceEASports
	}
	return gamestat.SourceManual
}

func (s *StatsQueueService) failItem(ctx context.Context, item statsqueue.Item, cause error) itemResult {
	exhausted := item.Fail(cause)
	outcome := QueueOutcomeRetried
	if exhausted {
		outcome = QueueOutcomeFailed
		item.ErrorMessage = fmt.Errorf("%w: %v", ErrRetryExhausted, cause).Error()
	}

	persisted := s.persistItem(ctx, item)

	s.logger.WarnContext(ctx, "stats queue item failed",
		"item_id", item.ID,
		"game_id", item.GameID,
		"provider", string(item.Provider),
		"retry_count", item.RetryCount,
		"max_retries", item.MaxRetries,
		"status", item.Status,
		"duplicate", errors.Is(cause, gamestat.ErrDuplicate),
		"error", cause,
	)
	s.observer.ItemProcessed(outcome)
	return itemResult{outcome: outcome, persisted: persisted}
}

func (s *StatsQueueService) Status(ctx context.Context) (statsqueue.Counts, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueueService.Status")
	defer span.End()

	counts, err := s.queueRepo.CountByStatus(ctx)
	if err != nil {
		return statsqueue.Counts{}, fmt.Errorf("count queue items: %w", err)
	}
	return counts, nil
}

// ClearCompleted deletes COMPLETED items and returns how many were removed.
func (s *StatsQueueService) ClearCompleted(ctx context.Context) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsQueueService.ClearCompleted")
	defer span.End()

	deleted, err := s.queueRepo.DeleteByStatus(ctx, statsqueue.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("delete completed queue items: %w", err)
	}
	s.logger.InfoContext(ctx, "completed stats queue items cleared", "deleted", deleted)
	return deleted, nil
}

// Run processes a default-sized batch every interval until ctx is done.
// A non-positive interval disables the loop.
func (s *StatsQueueService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ProcessBatch(ctx, 0); err != nil {
				if errors.Is(err, ErrBatchInProgress) || ctx.Err() != nil {
					continue
				}
				s.logger.ErrorContext(ctx, "scheduled stats queue batch failed", "error", err)
			}
		}
	}
}
