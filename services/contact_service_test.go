package services

import (
	"context"
	"testing"

	"luxestay/constants"
	"luxestay/dto"
	"luxestay/errors"
	"luxestay/repository"
	"luxestay/services/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactLifecycle(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewContactService(repository.NewMemoryContactRepository(), notifier, logger.Discard())
	ctx := context.Background()

	contact, err := svc.Submit(ctx, dto.ContactRequest{
		Name:    " Ann ",
		Email:   "Ann@Test.io",
		Subject: "Group booking",
		Message: "We need ten rooms in July.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", contact.Name)
	assert.Equal(t, "ann@test.io", contact.Email)
	assert.Equal(t, constants.ContactStatusNew, contact.Status)
	assert.Equal(t, constants.PriorityMedium, contact.Priority)
	assert.False(t, contact.IsRead)
	require.Len(t, notifier.contacts, 1)

	opened, err := svc.Get(ctx, contact.ID)
	require.NoError(t, err)
	assert.True(t, opened.IsRead)

	updated, err := svc.UpdateStatus(ctx, contact.ID, dto.ContactStatusRequest{Status: constants.ContactStatusInProgress, Priority: constants.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, constants.ContactStatusInProgress, updated.Status)
	assert.Equal(t, constants.PriorityHigh, updated.Priority)

	replied, err := svc.Respond(ctx, contact.ID, admin, dto.ContactReplyRequest{Message: "  We can hold ten rooms for you.  "})
	require.NoError(t, err)
	assert.Equal(t, constants.ContactStatusResolved, replied.Status)
	require.NotNil(t, replied.Response)
	assert.Equal(t, "We can hold ten rooms for you.", replied.Response.Message)
	assert.Equal(t, admin.UserID, replied.Response.RespondedBy)

	list, total, err := svc.List(ctx, repository.ContactFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.EqualValues(t, 1, list.Stats[constants.ContactStatusResolved])

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
}
