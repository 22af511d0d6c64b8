package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
)

// Snapshot keys used by persisters
const (
	SnapshotCatalog         = "catalog"
	SnapshotRecommendations = "recommendations"
	SnapshotSubmissions     = "submissions"
)

type (
	catalogStore        = repository.CatalogStore
	recommendationStore = repository.RecommendationStore
	submissionLedger    = repository.SubmissionLedger
)

// Persister stores a JSON-serializable state blob under a key
type Persister interface {
	Save(ctx context.Context, key string, v any) error
}

// Workspace is the single owner of the catalog, threshold and ledger stores.
// The stores do no locking of their own; every access goes through the
// workspace mutex.
//
// Every write gets a sequence number. Snapshots are saved in sequence order
// per key and a snapshot older than the last one saved is dropped, so the
// persisted blob never goes back in time.
type Workspace struct {
	mu              sync.RWMutex
	catalog         *repository.CatalogStore
	recommendations *repository.RecommendationStore
	ledger          *repository.SubmissionLedger
	seq             uint64

	persistMu sync.Mutex
	saved     map[string]uint64
	persister Persister
	log       *slog.Logger
}

// NewWorkspace creates a workspace over the given stores. persister may be nil.
func NewWorkspace(
	catalog *repository.CatalogStore,
	recommendations *repository.RecommendationStore,
	ledger *repository.SubmissionLedger,
	persister Persister,
	log *slog.Logger,
) *Workspace {
	return &Workspace{
		catalog:         catalog,
		recommendations: recommendations,
		ledger:          ledger,
		saved:           make(map[string]uint64),
		persister:       persister,
		log:             log,
	}
}

// read runs fn under the shared lock
func (w *Workspace) read(fn func(c *catalogStore, r *recommendationStore, l *submissionLedger)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.catalog, w.recommendations, w.ledger)
}

// write runs fn under the exclusive lock and returns the write's sequence
// number. Snapshots taken inside fn are passed to persist with it.
func (w *Workspace) write(fn func(c *catalogStore, r *recommendationStore, l *submissionLedger)) uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seq++
	fn(w.catalog, w.recommendations, w.ledger)
	return w.seq
}

// persist saves one blob taken at write seq. A blob older than the last one
// saved under key is skipped. Failures are logged; the in-memory state stays
// authoritative.
func (w *Workspace) persist(ctx context.Context, key string, seq uint64, v any) {
	if w.persister == nil {
		return
	}

	w.persistMu.Lock()
	defer w.persistMu.Unlock()

	if seq <= w.saved[key] {
		w.log.Debug("skipping stale snapshot", "snapshot", key, "seq", seq, "saved_seq", w.saved[key])
		return
	}
	if err := w.persister.Save(ctx, key, v); err != nil {
		w.log.Error("failed to persist snapshot", "snapshot", key, "error", err)
		return
	}
	w.saved[key] = seq
}

func (w *Workspace) persistCatalog(ctx context.Context, seq uint64, items []models.FoodItem) {
	w.persist(ctx, SnapshotCatalog, seq, items)
}

func (w *Workspace) persistRecommendations(ctx context.Context, seq uint64, table models.RecommendationTable) {
	w.persist(ctx, SnapshotRecommendations, seq, table)
}

func (w *Workspace) persistSubmissions(ctx context.Context, seq uint64, records []models.Submission) {
	w.persist(ctx, SnapshotSubmissions, seq, records)
}
