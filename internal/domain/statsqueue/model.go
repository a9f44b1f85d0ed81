package statsqueue

import (
	"strings"
	"time"

	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
)

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// Provider names the source a queue item pulls its stats from.
type Provider string

const (
	ProviderEASports Provider = "ea_sports"
	ProviderManual   Provider = "manual"
)

// DefaultMaxRetries is the attempt budget of a new item.
const DefaultMaxRetries = 3

// ParseProvider resolves a request value. An empty value selects EA Sports.
func ParseProvider(value string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(value))) {
	case "", ProviderEASports:
		return ProviderEASports, true
	case ProviderManual:
		return ProviderManual, true
	default:
		return "", false
	}
}

// Item is one unit of import work: fetch and store the stats of one game.
type Item struct {
	ID           string
	GameID       string
	Provider     Provider
	Status       string
	Stats        []gamestat.GameStat
	CreatedAt    time.Time
	ProcessedAt  *time.Time
	ErrorMessage string
	RetryCount   int
	MaxRetries   int
	// Claims counts how often the item was handed to a processor.
	Claims int
}

// NewItem returns a pending item for gameID.
func NewItem(id, gameID string, provider Provider, maxRetries int, now time.Time) Item {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return Item{
		ID:         id,
		GameID:     gameID,
		Provider:   provider,
		Status:     StatusPending,
		CreatedAt:  now,
		MaxRetries: maxRetries,
	}
}

// Claim marks the item as being processed.
func (i *Item) Claim(now time.Time) {
	at := now
	i.Status = StatusProcessing
	i.ProcessedAt = &at
	i.Claims++
}

// Release hands a claimed item back to PENDING without spending a retry.
func (i *Item) Release() {
	if i.Status != StatusProcessing {
		return
	}
	i.Status = StatusPending
	if i.Claims > 0 {
		i.Claims--
	}
}

// Reclaimed reports whether an earlier claim ended without a recorded
// outcome, so its stats may already be stored.
func (i Item) Reclaimed() bool {
	return i.Claims > i.RetryCount+1
}

// LeaseExpired reports whether a PROCESSING item was claimed before
// staleBefore. A zero staleBefore never expires a lease.
func (i Item) LeaseExpired(staleBefore time.Time) bool {
	if i.Status != StatusProcessing || staleBefore.IsZero() || i.ProcessedAt == nil {
		return false
	}
	return i.ProcessedAt.Before(staleBefore)
}

// Complete records a successful import.
func (i *Item) Complete(stats []gamestat.GameStat) {
	i.Status = StatusCompleted
	i.Stats = stats
	i.ErrorMessage = ""
}

// Fail records a failed attempt. The item returns to PENDING until its retry
// budget is spent, then it becomes FAILED and Fail reports true.
func (i *Item) Fail(err error) bool {
	i.RetryCount++
	if err != nil {
		i.ErrorMessage = err.Error()
	}
	if i.RetryCount >= i.MaxRetries {
		i.Status = StatusFailed
		return true
	}
	i.Status = StatusPending
	return false
}

func (i Item) IsTerminal() bool {
	return i.Status == StatusCompleted || i.Status == StatusFailed
}

// Counts is the number of items per status.
type Counts struct {
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Completed  int64 `json:"completed"`
	Failed     int64 `json:"failed"`
}

func (c Counts) Total() int64 {
	return c.Pending + c.Processing + c.Completed + c.Failed
}

// Add increments the bucket for status; unknown statuses are ignored.
func (c *Counts) Add(status string, n int64) {
	switch status {
	case StatusPending:
		c.Pending += n
	case StatusProcessing:
		c.Processing += n
	case StatusCompleted:
		c.Completed += n
	case StatusFailed:
		c.Failed += n
	}
}
