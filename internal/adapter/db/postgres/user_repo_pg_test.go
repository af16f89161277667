package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-api/internal/adapter/db/postgres"
	"user-management-api/internal/domain/user"
	"user-management-api/internal/testutil"
	apperrors "user-management-api/pkg/errors"
)

const (
	aliceID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	bobID   = "16fd2706-8baf-433b-82eb-8c7fada847da"
	ghostID = "00000000-0000-4000-8000-000000000000"
)

func newRepo(t *testing.T) *postgres.UserRepoPG {
	return postgres.NewUserRepoPG(testutil.NewSQLiteDB(t), zaptest.NewLogger(t))
}

func TestUserRepoPG_CreateAndGet(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}))

	got, err := repo.GetByID(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}, got)
}

func TestUserRepoPG_Create_Invalid(t *testing.T) {
	repo := newRepo(t)

	err := repo.Create(context.Background(), &user.User{ID: aliceID, Name: "Alice", Email: "this-is-a-very-long@x.io"})

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Email")

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepoPG_Create_DuplicateID(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}))
	err := repo.Create(ctx, &user.User{ID: aliceID, Name: "Other", Email: "o@x.io"})

	assert.ErrorContains(t, err, "failed to create user")
}

func TestUserRepoPG_GetByID_NotFound(t *testing.T) {
	repo := newRepo(t)

	got, err := repo.GetByID(context.Background(), ghostID)

	assert.Nil(t, got)
	var nfErr *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, ghostID, nfErr.ID)
}

func TestUserRepoPG_Update(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}))

	t.Run("overwrites fields", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, &user.User{ID: aliceID, Name: "Alicia", Email: "al@x.io"}))

		got, err := repo.GetByID(ctx, aliceID)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
		assert.Equal(t, "al@x.io", got.Email)
	})

	t.Run("same values still match", func(t *testing.T) {
		assert.NoError(t, repo.Update(ctx, &user.User{ID: aliceID, Name: "Alicia", Email: "al@x.io"}))
	})

	t.Run("missing row", func(t *testing.T) {
		err := repo.Update(ctx, &user.User{ID: ghostID, Name: "Ghost", Email: "g@x.io"})

		var nfErr *apperrors.NotFoundError
		assert.ErrorAs(t, err, &nfErr)
	})

	t.Run("invalid input leaves row untouched", func(t *testing.T) {
		err := repo.Update(ctx, &user.User{ID: aliceID, Name: "   ", Email: "al@x.io"})

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)

		got, err := repo.GetByID(ctx, aliceID)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", got.Name)
	})
}

func TestUserRepoPG_Delete(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}))

	require.NoError(t, repo.Delete(ctx, aliceID))

	_, err := repo.GetByID(ctx, aliceID)
	var nfErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfErr)

	err = repo.Delete(ctx, aliceID)
	assert.ErrorAs(t, err, &nfErr, "second delete reports not found")
}

func TestUserRepoPG_List(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	require.NoError(t, repo.Create(ctx, &user.User{ID: aliceID, Name: "Alice", Email: "a@x.io"}))
	require.NoError(t, repo.Create(ctx, &user.User{ID: bobID, Name: "Bob", Email: "b@x.io"}))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []user.User{
		{ID: aliceID, Name: "Alice", Email: "a@x.io"},
		{ID: bobID, Name: "Bob", Email: "b@x.io"},
	}, users)
}

func TestUserRepoPG_ContextCancelled(t *testing.T) {
	repo := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.Error(t, err)
}
