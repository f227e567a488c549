package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/guild/api/internal/database"
	"github.com/forgo/guild/api/internal/model"
	"github.com/forgo/guild/api/internal/repository"
	"github.com/forgo/guild/api/internal/testing/fixtures"
	"github.com/forgo/guild/api/internal/testing/testdb"
)

/*
FEATURE: Waitlist Storage
DOMAIN: Waitlist

ACCEPTANCE CRITERIA:
===================

AC-WL-001: Create Signup
  GIVEN a new email
  WHEN the signup is created
  THEN it is persisted with an id and created_on

AC-WL-002: Unique Email
  GIVEN an email already on the waitlist
  WHEN it is created again
  THEN database.ErrDuplicate is returned and no row is added

AC-WL-003: Unsubscribe Once
  GIVEN a subscribed signup
  WHEN its token is unsubscribed twice
  THEN the first call changes the row and the second changes nothing

AC-WL-004: Unknown Token
  GIVEN a well-formed token no signup holds
  WHEN it is unsubscribed
  THEN no row changes

AC-WL-005: Founding Spots
  GIVEN contractors, one of them unsubscribed
  WHEN contractors are counted
  THEN unsubscribed contractors still count

AC-WL-006: Welcome Queue
  GIVEN welcomed, unsubscribed and fresh signups
  WHEN pending welcomes are listed
  THEN only fresh subscribed signups are returned

AC-WL-007: Failed Welcomes Yield
  GIVEN an older signup whose welcome send failed
  WHEN pending welcomes are listed
  THEN signups with fewer failures come first and exhausted ones are dropped
*/

func TestWaitlist_CreateSignup(t *testing.T) {
	// AC-WL-001: Create Signup
	tdb := testdb.New(t)
	defer tdb.Close()

	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	signup := &model.Signup{
		Email:            "pat@example.com",
		ZipCode:          "97201",
		Role:             model.RoleHomeowner,
		UnsubscribeToken: uuid.NewString(),
	}
	require.NoError(t, repo.Create(ctx, signup))
	assert.NotEmpty(t, signup.ID)
	assert.False(t, signup.CreatedOn.IsZero())

	got, err := repo.GetByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, signup.ID, got.ID)
	assert.Equal(t, signup.UnsubscribeToken, got.UnsubscribeToken)
	assert.True(t, got.Subscribed())
}

func TestWaitlist_DuplicateEmail(t *testing.T) {
	// AC-WL-002: Unique Email
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	f.CreateSignup(t, fixtures.WithEmail("pat@example.com"))

	err := repo.Create(ctx, &model.Signup{
		Email:            "pat@example.com",
		ZipCode:          "10001",
		Role:             model.RoleContractor,
		UnsubscribeToken: uuid.NewString(),
	})
	require.ErrorIs(t, err, database.ErrDuplicate)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
}

func TestWaitlist_UnsubscribeOnce(t *testing.T) {
	// AC-WL-003: Unsubscribe Once
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	signup := f.CreateSignup(t, fixtures.WithEmail("pat@example.com"))

	changed, err := repo.Unsubscribe(ctx, signup.UnsubscribeToken)
	require.NoError(t, err)
	assert.True(t, changed)

	first, err := repo.GetByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	require.NotNil(t, first.UnsubscribedAt)

	changed, err = repo.Unsubscribe(ctx, signup.UnsubscribeToken)
	require.NoError(t, err)
	assert.False(t, changed)

	second, err := repo.GetByEmail(ctx, "pat@example.com")
	require.NoError(t, err)
	require.NotNil(t, second.UnsubscribedAt)
	assert.True(t, first.UnsubscribedAt.Equal(*second.UnsubscribedAt), "timestamp must not move")
}

func TestWaitlist_UnsubscribeUnknownToken(t *testing.T) {
	// AC-WL-004: Unknown Token
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	f.CreateSignup(t)

	changed, err := repo.Unsubscribe(ctx, "123e4567-e89b-12d3-a456-426614174000")
	require.NoError(t, err)
	assert.False(t, changed)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Unsubscribed)
}

func TestWaitlist_ContractorSpotsIncludeUnsubscribed(t *testing.T) {
	// AC-WL-005: Founding Spots
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	f.CreateSignup(t, fixtures.AsContractor())
	f.CreateSignup(t, fixtures.AsContractor(), fixtures.Unsubscribed())
	f.CreateSignup(t)

	taken, err := repo.CountByRole(ctx, model.RoleContractor)
	require.NoError(t, err)
	assert.Equal(t, 2, taken)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.ByRole[model.RoleContractor])
	assert.Equal(t, 1, stats.ByRole[model.RoleHomeowner])
	assert.Equal(t, 1, stats.Unsubscribed)
}

func TestWaitlist_PendingWelcome(t *testing.T) {
	// AC-WL-006: Welcome Queue
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	f.CreateSignup(t, fixtures.Welcomed())
	f.CreateSignup(t, fixtures.Unsubscribed())
	fresh := f.CreateSignup(t, fixtures.WithEmail("fresh@example.com"))

	pending, err := repo.PendingWelcome(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "fresh@example.com", pending[0].Email)

	require.NoError(t, repo.MarkWelcomed(ctx, pending[0].ID))

	pending, err = repo.PendingWelcome(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	got, err := repo.GetByEmail(ctx, fresh.Email)
	require.NoError(t, err)
	assert.NotNil(t, got.WelcomeSentAt)
}

func TestWaitlist_PendingWelcome_FailuresYield(t *testing.T) {
	// AC-WL-007: Failed Welcomes Yield
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	bounce := f.CreateSignup(t, fixtures.WithEmail("bounce@example.com"))
	f.CreateSignup(t, fixtures.WithEmail("fresh@example.com"))

	require.NoError(t, repo.RecordWelcomeFailure(ctx, bounce.ID))

	pending, err := repo.PendingWelcome(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "fresh@example.com", pending[0].Email)

	for i := 1; i < model.MaxWelcomeFailures; i++ {
		require.NoError(t, repo.RecordWelcomeFailure(ctx, bounce.ID))
	}
	pending, err = repo.PendingWelcome(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "fresh@example.com", pending[0].Email)
}

func TestWaitlist_ListPagination(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	repo := repository.NewWaitlistRepository(tdb.DB)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.CreateSignup(t, fixtures.AsContractor())
	}
	f.CreateSignup(t)

	page, err := repo.List(ctx, model.SignupFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Signups, 2)
	assert.True(t, page.HasMore)

	contractors, err := repo.List(ctx, model.SignupFilter{Role: model.RoleContractor, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, contractors.Signups, 3)
	assert.False(t, contractors.HasMore)
	for _, s := range contractors.Signups {
		assert.Equal(t, model.RoleContractor, s.Role)
	}
}
