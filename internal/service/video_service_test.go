package service_test

import (
	"context"
	"testing"

	"github.com/clipstream/backend/internal/cache"
	"github.com/clipstream/backend/internal/domain"
	"github.com/clipstream/backend/internal/repository/postgres"
	"github.com/clipstream/backend/internal/service"
	"github.com/clipstream/backend/internal/storage"
	"github.com/clipstream/backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoFixture(t *testing.T) (*testutil.TestDB, *service.VideoService) {
	t.Helper()

	testDB := testutil.NewTestDB(t)
	counts, err := cache.NewCounts(8)
	require.NoError(t, err)
	media, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	svc := service.NewVideoService(
		postgres.NewVideoRepository(testDB.DB),
		postgres.NewUserRepository(testDB.DB),
		media,
		counts,
	)
	return testDB, svc
}

func TestVideoServiceGet(t *testing.T) {
	testDB, svc := newVideoFixture(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, testDB.DB)

	got, err := svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)

	got, err = svc.Get(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVideoServiceOwnership(t *testing.T) {
	testDB, svc := newVideoFixture(t)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	stranger, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	video := testutil.NewVideoBuilder().WithOwner(owner).Build(t, testDB.DB)

	title := "Hijacked"

	t.Run("update by a non-owner is forbidden regardless of payload", func(t *testing.T) {
		_, err := svc.Update(ctx, video.ID, stranger.ID, service.UpdateVideoInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("delete by a non-owner is forbidden", func(t *testing.T) {
		err := svc.Delete(ctx, video.ID, stranger.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("toggle publish by a non-owner is forbidden", func(t *testing.T) {
		_, err := svc.TogglePublish(ctx, video.ID, stranger.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("a missing video is NotFound before any ownership check", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), stranger.ID, service.UpdateVideoInput{Title: &title})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("the owner can toggle publish", func(t *testing.T) {
		updated, err := svc.TogglePublish(ctx, video.ID, owner.ID)
		require.NoError(t, err)
		assert.False(t, updated.IsPublished)

		updated, err = svc.TogglePublish(ctx, video.ID, owner.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsPublished)
	})
}
