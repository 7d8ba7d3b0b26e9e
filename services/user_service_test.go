package services

import (
	"context"
	"testing"

	"luxestay/constants"
	"luxestay/errors"
	"luxestay/models"
	"luxestay/repository"
	"luxestay/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) *UserService {
	t.Helper()
	users := repository.NewMemoryUserRepository()
	ctx := context.Background()
	for _, u := range []models.User{
		{ID: admin.UserID, Name: "Admin", Email: "admin@test.io", Role: constants.RoleAdmin, IsActive: true},
		{ID: guest.UserID, Name: "Guest", Email: "guest@test.io", Role: constants.RoleUser, IsActive: true},
		{ID: operator.UserID, Name: "Operator", Email: "op@test.io", Role: constants.RoleHotel, IsActive: true},
	} {
		u := u
		require.NoError(t, users.Create(ctx, &u))
	}
	return NewUserService(UserServiceOptions{Users: users, Logger: logger.Discard()})
}

func TestUserServiceGuardsSelf(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, admin, admin.UserID, false)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	_, err = svc.UpdateRole(ctx, admin, admin.UserID, constants.RoleUser)
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))
	assert.True(t, errors.HasCode(svc.DeleteUser(ctx, admin, admin.UserID), errors.ErrCodeValidation))
}

func TestUserServiceUpdates(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	user, err := svc.UpdateStatus(ctx, admin, guest.UserID, false)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	user, err = svc.UpdateRole(ctx, admin, guest.UserID, constants.RoleHotel)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleHotel, user.Role)

	_, err = svc.UpdateRole(ctx, admin, guest.UserID, "superuser")
	assert.True(t, errors.HasCode(err, errors.ErrCodeValidation))

	_, err = svc.UpdateStatus(ctx, admin, "missing", true)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))

	email, err := svc.EmailOf(ctx, operator.UserID)
	require.NoError(t, err)
	assert.Equal(t, "op@test.io", email)

	require.NoError(t, svc.DeleteUser(ctx, admin, operator.UserID))
	assert.True(t, errors.HasCode(svc.DeleteUser(ctx, admin, operator.UserID), errors.ErrCodeNotFound))
}

func TestUserServiceList(t *testing.T) {
	svc := newUserFixture(t)
	ctx := context.Background()

	users, total, err := svc.ListUsers(ctx, repository.UserFilter{ExcludeRole: constants.RoleAdmin})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, u := range users {
		assert.NotEqual(t, constants.RoleAdmin, u.Role)
	}

	users, total, err = svc.ListUsers(ctx, repository.UserFilter{Role: constants.RoleHotel})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, operator.UserID, users[0].ID)
}
