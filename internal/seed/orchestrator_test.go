package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/userbase/internal/users"
)

type stubFetcher struct {
	calls   int
	result  []users.User
	panics  bool
	onFetch func()
}

func (s *stubFetcher) FetchInitialUsers(ctx context.Context) []users.User {
	s.calls++
	if s.onFetch != nil {
		s.onFetch()
	}
	if s.panics {
		panic("boom")
	}
	return s.result
}

func TestOrchestratorSeedsEmptyStore(t *testing.T) {
	store := users.NewStore()
	seededAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{result: []users.User{
		{ID: 3, Name: "Ann", Email: "ann@x.com", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: 8, Name: "Bob", Email: "bob@x.com", CreatedAt: seededAt, UpdatedAt: seededAt},
	}}

	o := NewOrchestrator(testLogger(), fetcher, store)
	o.Run(context.Background())

	assert.True(t, o.Seeded())
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, 2, store.Len())

	got, ok := store.Get(3)
	require.True(t, ok, "fetcher-assigned ids are preserved")
	assert.Equal(t, "Ann", got.Name)
	assert.Equal(t, seededAt, got.CreatedAt, "fetcher-assigned timestamps are preserved")
}

func TestOrchestratorSkipsFetchWhenStorePopulated(t *testing.T) {
	store := users.NewStore()
	require.NoError(t, store.Mutate(func(tx *users.Tx) error {
		tx.Insert(users.User{Name: "Existing", Email: "existing@x.com"})
		return nil
	}))
	fetcher := &stubFetcher{result: []users.User{{ID: 1, Name: "Ann", Email: "ann@x.com"}}}

	o := NewOrchestrator(testLogger(), fetcher, store)
	o.Run(context.Background())

	assert.True(t, o.Seeded())
	assert.Zero(t, fetcher.calls, "seeding never overwrites existing data")
	assert.Equal(t, 1, store.Len())
}

func TestOrchestratorDiscardsSeedWhenStorePopulatedDuringFetch(t *testing.T) {
	store := users.NewStore()
	fetcher := &stubFetcher{result: []users.User{
		{ID: 1, Name: "Seed One", Email: "seed1@x.com"},
		{ID: 2, Name: "Seed Two", Email: "seed2@x.com"},
	}}
	// A user arrives through the API while the fetch is in flight and
	// claims id 1.
	fetcher.onFetch = func() {
		require.NoError(t, store.Mutate(func(tx *users.Tx) error {
			tx.Insert(users.User{Name: "Live User", Email: "live@x.com"})
			return nil
		}))
	}

	o := NewOrchestrator(testLogger(), fetcher, store)
	o.Run(context.Background())

	assert.True(t, o.Seeded())
	assert.Equal(t, 1, store.Len(), "seed data is discarded once live records exist")

	got, ok := store.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Live User", got.Name, "seeding must never overwrite existing data")
}

func TestOrchestratorReachesSeededOnEmptyFetch(t *testing.T) {
	store := users.NewStore()
	fetcher := &stubFetcher{}

	o := NewOrchestrator(testLogger(), fetcher, store)
	o.Run(context.Background())

	assert.True(t, o.Seeded())
	assert.Zero(t, store.Len())
}

func TestOrchestratorRunsOncePerProcess(t *testing.T) {
	store := users.NewStore()
	fetcher := &stubFetcher{}

	o := NewOrchestrator(testLogger(), fetcher, store)
	o.Run(context.Background())
	o.Run(context.Background())

	assert.Equal(t, 1, fetcher.calls)
}

func TestOrchestratorSurvivesPanickingFetch(t *testing.T) {
	store := users.NewStore()
	fetcher := &stubFetcher{panics: true}

	o := NewOrchestrator(testLogger(), fetcher, store)
	require.NotPanics(t, func() { o.Run(context.Background()) })

	assert.True(t, o.Seeded(), "startup completes whether or not seeding succeeded")
	assert.Zero(t, store.Len())
}
