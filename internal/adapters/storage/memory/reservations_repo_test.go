package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-boarding/internal/domain/pets"
	"pet-boarding/internal/domain/reservations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReservationRepo(t *testing.T) (reservations.Repository, pets.Repository, reservations.StatusRepository) {
	t.Helper()
	ctx := context.Background()

	petRepo := NewPetRepo()
	statuses := NewStatusRepo()
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1", OwnerUsername: "ana", Name: "Milo"}))
	require.NoError(t, petRepo.Create(ctx, pets.Pet{ID: "p2", OwnerUserID: "u2", Name: "Luna"}))
	require.NoError(t, statuses.Create(ctx, reservations.Status{ID: "s1", Name: "Pending"}))

	return NewReservationRepo(petRepo, statuses), petRepo, statuses
}

func newReservation(id, petID, start string, created time.Time) reservations.Reservation {
	d, _ := reservations.ParseDate(start)
	return reservations.Reservation{
		ID:        id,
		PetID:     petID,
		StatusID:  "s1",
		StartDate: d,
		EndDate:   d,
		Version:   1,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestReservationRepo_JoinsAndStripsDerivedFields(t *testing.T) {
	repo, _, _ := seedReservationRepo(t)
	ctx := context.Background()

	res := newReservation("r1", "p1", "2026-06-11", time.Now())
	res.PetName = "stale"
	require.NoError(t, repo.Create(ctx, res))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Milo", got.PetName)
	assert.Equal(t, "u1", got.OwnerUserID)
	assert.Equal(t, "Pending", got.StatusName)
}

func TestReservationRepo_UpdateChecksVersion(t *testing.T) {
	repo, _, _ := seedReservationRepo(t)
	ctx := context.Background()

	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newReservation("r1", "p1", "2026-06-11", created)))

	next := newReservation("r1", "p1", "2026-06-12", time.Time{})
	next.Version = 2
	require.NoError(t, repo.Update(ctx, next, 1))

	got, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, created, got.CreatedAt, "created_at is immutable")

	stale := next
	stale.Version = 2
	assert.ErrorIs(t, repo.Update(ctx, stale, 1), reservations.ErrVersionConflict)
	assert.ErrorIs(t, repo.Update(ctx, newReservation("nope", "p1", "2026-06-11", created), 1), reservations.ErrNotFound)
}

func TestReservationRepo_ConcurrentUpdatesOneWins(t *testing.T) {
	repo, _, _ := seedReservationRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newReservation("r1", "p1", "2026-06-11", time.Now())))

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next := newReservation("r1", "p1", "2026-06-11", time.Now())
			next.Version = 2
			errs <- repo.Update(ctx, next, 1)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, reservations.ErrVersionConflict)
	}
	assert.Equal(t, 1, ok)
}

func TestReservationRepo_OrphansAreHidden(t *testing.T) {
	repo, petRepo, _ := seedReservationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newReservation("r1", "p1", "2026-06-11", time.Now())))
	require.NoError(t, repo.Create(ctx, newReservation("r2", "p2", "2026-06-11", time.Now())))
	require.NoError(t, petRepo.Delete(ctx, "p2"))

	_, err := repo.GetByID(ctx, "r2")
	assert.ErrorIs(t, err, reservations.ErrNotFound)

	items, err := repo.List(ctx, reservations.Query{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "r1", items[0].ID)

	counts, err := repo.CountBy(ctx, reservations.GroupByPet)
	require.NoError(t, err)
	assert.Equal(t, []reservations.Count{{ItemID: "p1", ItemName: "Milo", Total: 1}}, counts)
}

func TestReservationRepo_ListFiltersAndPages(t *testing.T) {
	repo, _, statuses := seedReservationRepo(t)
	ctx := context.Background()
	require.NoError(t, statuses.Create(ctx, reservations.Status{ID: "s2", Name: "Cancelled"}))

	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r3 := newReservation("r3", "p2", "2026-06-11", base)
	r3.StatusID = "s2"
	for _, res := range []reservations.Reservation{
		newReservation("r1", "p1", "2026-06-20", base),
		newReservation("r2", "p1", "2026-06-20", base.Add(-time.Hour)),
		r3,
	} {
		require.NoError(t, repo.Create(ctx, res))
	}

	all, err := repo.List(ctx, reservations.Query{})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3", "r2", "r1"}, resIDs(all))

	own, err := repo.List(ctx, reservations.Query{OwnerUserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2", "r1"}, resIDs(own))

	cancelled, err := repo.List(ctx, reservations.Query{StatusName: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r3"}, resIDs(cancelled))

	page, err := repo.List(ctx, reservations.Query{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, resIDs(page))

	beyond, err := repo.List(ctx, reservations.Query{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestReservationRepo_CountByUserUsesUsernameOrID(t *testing.T) {
	repo, _, _ := seedReservationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newReservation("r1", "p1", "2026-06-11", time.Now())))
	require.NoError(t, repo.Create(ctx, newReservation("r2", "p1", "2026-06-12", time.Now())))
	require.NoError(t, repo.Create(ctx, newReservation("r3", "p2", "2026-06-12", time.Now())))

	counts, err := repo.CountBy(ctx, reservations.GroupByUser)
	require.NoError(t, err)
	assert.Equal(t, []reservations.Count{
		{ItemID: "u1", ItemName: "ana", Total: 2},
		{ItemID: "u2", ItemName: "u2", Total: 1},
	}, counts)
}

func TestStatusRepo_NamesAreCaseInsensitive(t *testing.T) {
	statuses := NewStatusRepo()
	ctx := context.Background()

	require.NoError(t, statuses.Create(ctx, reservations.Status{ID: "s1", Name: "Pending"}))
	assert.ErrorIs(t, statuses.Create(ctx, reservations.Status{ID: "s2", Name: " PENDING "}), reservations.ErrDuplicateStatus)

	st, err := statuses.GetByName(ctx, "pending")
	require.NoError(t, err)
	assert.Equal(t, "s1", st.ID)

	_, err = statuses.GetByName(ctx, "Cancelled")
	assert.ErrorIs(t, err, reservations.ErrNotFound)
}

func resIDs(items []reservations.Reservation) []string {
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.ID)
	}
	return out
}
