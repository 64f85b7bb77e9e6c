package scheduleRepo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"trilhas/database"
	trailRepo "trilhas/database/repository/trail"
	"trilhas/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func str(s string) *string { return &s }

type fixture struct {
	store     *database.MemoryStore
	catalog   *trailRepo.StoreCatalogRepo
	schedules *StoreScheduleRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := database.NewMemoryStore()
	catalog := trailRepo.NewStoreCatalogRepo(store, 10)
	return &fixture{
		store:     store,
		catalog:   catalog,
		schedules: NewStoreScheduleRepo(store, catalog, 10, 4, nil),
	}
}

func (f *fixture) trail(t *testing.T, name string, imageIndex any) *models.Trail {
	t.Helper()
	trail, err := f.catalog.CreateTrail(context.Background(), models.TrailInput{
		TrailName:  str(name),
		Location:   str("Serra do Mar"),
		Date:       str("20/05"),
		Difficulty: str("difícil"),
		ImageIndex: imageIndex,
	}, models.RoleAdmin)
	require.NoError(t, err)
	return trail
}

// collect subscribes and forwards every snapshot to the returned channel.
func collect(t *testing.T, repo ScheduleRepository, userID string) (<-chan []models.Schedule, *database.Subscription) {
	t.Helper()
	ch := make(chan []models.Schedule, 16)
	sub, err := repo.SubscribeSchedules(context.Background(), userID, func(s []models.Schedule) {
		ch <- s
	})
	require.NoError(t, err)
	t.Cleanup(sub.Cancel)
	return ch, sub
}

func next(t *testing.T, ch <-chan []models.Schedule) []models.Schedule {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for a schedule snapshot")
		return nil
	}
}

// nextMatching skips snapshots until one satisfies ok.
func nextMatching(t *testing.T, ch <-chan []models.Schedule, ok func([]models.Schedule) bool) []models.Schedule {
	t.Helper()
	deadline := time.After(waitFor)
	for {
		select {
		case s := <-ch:
			if ok(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for a matching schedule snapshot")
			return nil
		}
	}
}

func TestCreateScheduleValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.schedules.CreateSchedule(ctx, "", "trail")
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = f.schedules.CreateSchedule(ctx, "user", "")
	assert.ErrorIs(t, err, models.ErrValidation)

	docs, err := f.store.GetAll(ctx, models.ScheduleCollection)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateScheduleThenSubscribe(t *testing.T) {
	f := newFixture(t)
	trail := f.trail(t, "Trilha do Ouro", "7")

	created, err := f.schedules.CreateSchedule(context.Background(), "u1", trail.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.NotEmpty(t, created.ScheduledAt)

	ch, _ := collect(t, f.schedules, "u1")
	snapshot := next(t, ch)

	require.Len(t, snapshot, 1)
	got := snapshot[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, trail.ID, got.TrailID)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, trail.TrailName, got.TrailName)
	assert.Equal(t, trail.Location, got.Location)
	assert.Equal(t, trail.Date, got.Date)
	assert.Equal(t, trail.Difficulty, got.Difficulty)
	assert.Equal(t, 7, got.ImageIndex)
}

func TestSubscriptionFollowsChanges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Pedra Grande", 2)

	ch, _ := collect(t, f.schedules, "u1")
	assert.Empty(t, next(t, ch))

	first, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)
	_, err = f.schedules.CreateSchedule(ctx, "someone-else", trail.ID)
	require.NoError(t, err)

	snapshot := nextMatching(t, ch, func(s []models.Schedule) bool { return len(s) == 1 })
	assert.Equal(t, first.ID, snapshot[0].ID)

	require.NoError(t, f.schedules.DeleteSchedule(ctx, first.ID))
	nextMatching(t, ch, func(s []models.Schedule) bool { return len(s) == 0 })
}

func TestDeletedTrailLeavesEmptyFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Cachoeira", 4)

	_, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)
	require.NoError(t, f.catalog.DeleteTrail(ctx, trail.ID, models.RoleAdmin))

	ch, _ := collect(t, f.schedules, "u1")
	snapshot := next(t, ch)
	require.Len(t, snapshot, 1)
	assert.Equal(t, trail.ID, snapshot[0].TrailID)
	assert.Empty(t, snapshot[0].TrailName)
	assert.Empty(t, snapshot[0].Location)
	assert.Empty(t, snapshot[0].Date)
	assert.Empty(t, snapshot[0].Difficulty)
	assert.Equal(t, 0, snapshot[0].ImageIndex)

	listed, err := f.schedules.ListSchedules(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, snapshot, listed)
}

func TestStoredFieldsSurviveFailedLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.store.Create(ctx, models.ScheduleCollection, map[string]any{
		models.FieldUserID:     "u1",
		models.FieldTrailID:    "gone",
		models.FieldStatus:     models.StatusConfirmed,
		models.FieldTrailName:  "Old name",
		models.FieldImageIndex: 12,
	})
	require.NoError(t, err)

	listed, err := f.schedules.ListSchedules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Old name", listed[0].TrailName)
	assert.Equal(t, 9, listed[0].ImageIndex)
}

func TestLiveTrailFieldsWinEvenWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Pico", 2)
	_, err := f.store.Create(ctx, models.ScheduleCollection, map[string]any{
		models.FieldUserID:     "u1",
		models.FieldTrailID:    trail.ID,
		models.FieldStatus:     models.StatusConfirmed,
		models.FieldDifficulty: "moderada",
		models.FieldLocation:   "Old place",
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Update(ctx, models.TrailCollection, trail.ID, map[string]any{
		models.FieldDifficulty: "",
	}))

	listed, err := f.schedules.ListSchedules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "", listed[0].Difficulty)
	assert.Equal(t, "Serra do Mar", listed[0].Location)
	assert.Equal(t, "Pico", listed[0].TrailName)
}

func TestSchedulesSortedNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Mirante", 1)

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		f.schedules.now = func() time.Time { return at }
		s, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	listed, err := f.schedules.ListSchedules(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
}

func TestDuplicateBookingsAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Mirante", 1)

	_, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)
	_, err = f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)

	listed, err := f.schedules.ListSchedules(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestDeleteScheduleIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Mirante", 1)
	s, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)

	require.NoError(t, f.schedules.DeleteSchedule(ctx, s.ID))
	require.NoError(t, f.schedules.DeleteSchedule(ctx, s.ID))
	require.NoError(t, f.schedules.DeleteSchedule(ctx, "never-existed"))

	_, err = f.schedules.GetSchedule(ctx, s.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetScheduleReturnsStoredFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Mirante", 1)
	created, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)

	got, err := f.schedules.GetSchedule(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, trail.ID, got.TrailID)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Empty(t, got.TrailName)
}

func TestCancelStopsDelivery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "Mirante", 1)

	var calls atomic.Int32
	sub, err := f.schedules.SubscribeSchedules(ctx, "u1", func([]models.Schedule) {
		calls.Add(1)
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, 5*time.Millisecond)

	sub.Cancel()
	seen := calls.Load()
	for i := 0; i < 3; i++ {
		_, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
		require.NoError(t, err)
	}
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, seen, calls.Load())
	assert.NoError(t, sub.Err())
	select {
	case <-sub.Done():
	default:
		t.Fatal("subscription not done after Cancel")
	}
}

// gatedTrails blocks every lookup until release is closed.
type gatedTrails struct {
	inner    TrailGetter
	release  chan struct{}
	inflight atomic.Int32
	failID   string
}

func (g *gatedTrails) GetTrail(ctx context.Context, id string) (*models.Trail, error) {
	g.inflight.Add(1)
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if id == g.failID {
		return nil, errors.New("lookup failed")
	}
	return g.inner.GetTrail(ctx, id)
}

func TestSnapshotWaitsForAllLookups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trails := []*models.Trail{f.trail(t, "A", 1), f.trail(t, "B", 2), f.trail(t, "C", 3)}
	for _, tr := range trails {
		_, err := f.schedules.CreateSchedule(ctx, "u1", tr.ID)
		require.NoError(t, err)
	}

	gate := &gatedTrails{inner: f.catalog, release: make(chan struct{}), failID: trails[1].ID}
	repo := NewStoreScheduleRepo(f.store, gate, 10, 4, nil)

	var mu sync.Mutex
	var snapshots [][]models.Schedule
	sub, err := repo.SubscribeSchedules(ctx, "u1", func(s []models.Schedule) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	})
	require.NoError(t, err)
	defer sub.Cancel()

	// all three lookups run at once and nothing is emitted while they block
	require.Eventually(t, func() bool { return gate.inflight.Load() == 3 }, waitFor, 5*time.Millisecond)
	mu.Lock()
	assert.Empty(t, snapshots)
	mu.Unlock()

	close(gate.release)
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(snapshots) == 1
	}, waitFor, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	names := map[string]string{}
	for _, s := range snapshots[0] {
		names[s.TrailID] = s.TrailName
	}
	assert.Equal(t, map[string]string{
		trails[0].ID: "A",
		trails[1].ID: "",
		trails[2].ID: "C",
	}, names)
}

func TestCancelDuringLookupsDropsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	trail := f.trail(t, "A", 1)
	_, err := f.schedules.CreateSchedule(ctx, "u1", trail.ID)
	require.NoError(t, err)

	gate := &gatedTrails{inner: f.catalog, release: make(chan struct{})}
	repo := NewStoreScheduleRepo(f.store, gate, 10, 4, nil)

	var calls atomic.Int32
	sub, err := repo.SubscribeSchedules(ctx, "u1", func([]models.Schedule) { calls.Add(1) })
	require.NoError(t, err)
	require.Eventually(t, func() bool { return gate.inflight.Load() == 1 }, waitFor, 5*time.Millisecond)

	sub.Cancel()
	close(gate.release)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, calls.Load())
}
