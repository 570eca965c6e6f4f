package service

import (
	"context"
	"strings"
	"testing"

	"newsdesk/internal/database"
	"newsdesk/internal/models"
	"newsdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *models.User) {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)

	repo := repository.NewUserRepository(db)
	user := &models.User{Name: "Dana Reyes", Email: "dana@example.com", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), user))

	return NewUserService(repo), user
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, user := newTestUserService(t)

	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		UserID: user.ID,
		Name:   "Dana R.",
		Avatar: "https://example.com/a.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana R.", updated.Name)
	assert.Equal(t, "https://example.com/a.png", updated.Avatar)

	// Empty fields leave the current values alone.
	updated, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "Dana R.", updated.Name)
	assert.Equal(t, "dana@example.com", updated.Email)

	updated, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Email: "dr@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "dr@example.com", updated.Email)

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, Email: "not-an-email"})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestUpdateProfileNameTooLong(t *testing.T) {
	t.Parallel()
	svc, user := newTestUserService(t)

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: user.ID,
		Name:   strings.Repeat("a", 61),
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, user := newTestUserService(t)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	assert.Error(t, svc.DeleteUser(ctx, user.ID))
}
