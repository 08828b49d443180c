package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipbook/models"
	"tipbook/repository/testutil"
)

func TestUserRepository_GetByID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("found", func(t *testing.T) {
		inserted := testutil.InsertTestUser(t, testDB.DB, "vip@example.com", false, true)

		user, err := repo.GetByID(ctx, inserted.ID)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "vip@example.com", user.Email)
		assert.True(t, user.IsVIP)
		assert.False(t, user.IsAdmin)
		assert.Equal(t, models.TierVIP, user.Tier())
	})
}

func TestUserRepository_GetAll(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	testutil.InsertTestUser(t, testDB.DB, "admin@example.com", true, false)
	testutil.InsertTestUser(t, testDB.DB, "reader@example.com", false, false)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserRepository_SetVIP(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	user := testutil.InsertTestUser(t, testDB.DB, "reader@example.com", false, false)

	require.NoError(t, repo.SetVIP(ctx, user.ID, true))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.IsVIP)

	require.NoError(t, repo.SetVIP(ctx, user.ID, false))

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsVIP)

	assert.Error(t, repo.SetVIP(ctx, uuid.New(), true))
}
