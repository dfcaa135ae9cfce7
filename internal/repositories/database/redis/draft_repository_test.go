package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/araliya-mfi/loan_origination_app/internal/apperrors"
	"github.com/araliya-mfi/loan_origination_app/internal/core/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*miniredis.Miniredis, *RedisDraftRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisDraftRepository(client, time.Hour).(*RedisDraftRepository)
}

func sampleDraft(id, name string, savedAt time.Time) domain.SavedDraft {
	return domain.SavedDraft{
		DraftID:     id,
		Name:        name,
		SavedAt:     savedAt,
		CurrentStep: domain.StepLoanDetails,
		Snapshot: domain.LoanApplicationDraft{
			CenterID:        "center-1",
			GroupID:         "group-1",
			CustomerID:      "cust-1",
			ProductID:       "prod-abhilasha",
			RequestedAmount: decimal.NewFromInt(100000),
			ApprovedAmount:  decimal.NewFromInt(100000),
			TenureWeeks:     52,
		},
	}
}

func TestDraftRepositorySaveAndFind(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	draft := sampleDraft("d-1", "Monday batch", time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.SaveDraft(ctx, "staff-1", draft))

	got, err := repo.FindDraftByID(ctx, "staff-1", "d-1")
	require.NoError(t, err)
	assert.Equal(t, "Monday batch", got.Name)
	assert.Equal(t, domain.StepLoanDetails, got.CurrentStep)
	assert.Equal(t, "cust-1", got.Snapshot.CustomerID)
	assert.True(t, got.Snapshot.ApprovedAmount.Equal(decimal.NewFromInt(100000)))
}

func TestDraftRepositoryFindIsScopedToUser(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDraft(ctx, "staff-1", sampleDraft("d-1", "Mine", time.Now())))

	_, err := repo.FindDraftByID(ctx, "staff-2", "d-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraftRepositoryListNewestFirst(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveDraft(ctx, "staff-1", sampleDraft("d-old", "Old", base)))
	require.NoError(t, repo.SaveDraft(ctx, "staff-1", sampleDraft("d-new", "New", base.Add(time.Hour))))
	require.NoError(t, repo.SaveDraft(ctx, "staff-2", sampleDraft("d-other", "Other user", base)))

	drafts, err := repo.ListDrafts(ctx, "staff-1")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "d-new", drafts[0].DraftID)
	assert.Equal(t, "d-old", drafts[1].DraftID)
}

func TestDraftRepositorySaveOverwrites(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	first := sampleDraft("d-1", "First name", time.Now())
	require.NoError(t, repo.SaveDraft(ctx, "staff-1", first))

	renamed := first
	renamed.Name = "Renamed"
	require.NoError(t, repo.SaveDraft(ctx, "staff-1", renamed))

	got, err := repo.FindDraftByID(ctx, "staff-1", "d-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	drafts, err := repo.ListDrafts(ctx, "staff-1")
	require.NoError(t, err)
	assert.Len(t, drafts, 1)
}

func TestDraftRepositoryDelete(t *testing.T) {
	_, repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDraft(ctx, "staff-1", sampleDraft("d-1", "Gone soon", time.Now())))
	require.NoError(t, repo.DeleteDraft(ctx, "staff-1", "d-1"))

	_, err := repo.FindDraftByID(ctx, "staff-1", "d-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repo.DeleteDraft(ctx, "staff-1", "d-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDraftRepositoryExpiry(t *testing.T) {
	mr, repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveDraft(ctx, "staff-1", sampleDraft("d-1", "Expiring", time.Now())))

	mr.FastForward(2 * time.Hour)

	_, err := repo.FindDraftByID(ctx, "staff-1", "d-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	drafts, err := repo.ListDrafts(ctx, "staff-1")
	require.NoError(t, err)
	assert.Empty(t, drafts)
}
