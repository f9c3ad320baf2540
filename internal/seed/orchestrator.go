package seed

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/noah-isme/userbase/internal/users"
)

// FetcherPort defines the dataset retrieval contract.
type FetcherPort interface {
	FetchInitialUsers(ctx context.Context) []users.User
}

// Orchestrator performs the one-shot startup seeding: if the store is
// empty it loads the fetched dataset, otherwise it leaves existing data
// untouched. It never fails the host process.
type Orchestrator struct {
	logger  *slog.Logger
	fetcher FetcherPort
	store   *users.Store
	once    sync.Once
	seeded  atomic.Bool
}

// NewOrchestrator builds an Orchestrator instance.
func NewOrchestrator(logger *slog.Logger, fetcher FetcherPort, store *users.Store) *Orchestrator {
	return &Orchestrator{logger: logger, fetcher: fetcher, store: store}
}

// Run executes the seeding sequence once per process lifetime. Subsequent
// calls are no-ops. Panics are recovered and logged; the seeded state is
// reached regardless of outcome.
func (o *Orchestrator) Run(ctx context.Context) {
	o.once.Do(func() { o.run(ctx) })
}

// Seeded reports whether the startup seeding sequence has completed.
func (o *Orchestrator) Seeded() bool {
	return o.seeded.Load()
}

func (o *Orchestrator) run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("seeding panicked", slog.Any("panic", r))
		}
		o.seeded.Store(true)
	}()

	if n := o.store.Len(); n > 0 {
		o.logger.Info("store already populated, skipping seed", slog.Int("records", n))
		return
	}

	list := o.fetcher.FetchInitialUsers(ctx)
	if len(list) == 0 {
		o.logger.Info("no seed data available, starting empty")
		return
	}

	// Seed records keep their source-assigned ids and timestamps; the
	// dataset is assumed internally consistent so uniqueness is not
	// re-validated here. The fetch may race with live traffic, so the
	// emptiness check is repeated under the store lock: a record created
	// through the API while the fetch was in flight must never be
	// overwritten by a seed record carrying the same id.
	var loaded int
	_ = o.store.Mutate(func(tx *users.Tx) error {
		if tx.Len() > 0 {
			return nil
		}
		for _, u := range list {
			tx.Seed(u)
		}
		loaded = len(list)
		return nil
	})
	if loaded == 0 {
		o.logger.Info("store populated during fetch, discarding seed data", slog.Int("records", len(list)))
		return
	}
	o.logger.Info("store seeded", slog.Int("records", loaded))
}
