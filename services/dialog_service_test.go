package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/blogem/webtemplate/models"
	"github.com/blogem/webtemplate/repositories/mocks"
)

func TestDialogQueueIsFIFO(t *testing.T) {
	svc := NewDialogService(NewLogService(mocks.NewMockLogRepository(t), 1))
	store := newMemoryStore()

	assert.Nil(t, svc.Current(store))

	first := models.NewConfirmation("One", "first")
	second := models.NewInput("Two", "Value:")
	require.NoError(t, svc.Push(store, first))
	require.NoError(t, svc.Push(store, second))

	assert.Equal(t, first.ID, svc.Current(store).ID)

	// answering anything but the open dialog fails
	_, err := svc.Resolve(store, models.DialogResult{DialogID: second.ID})
	assert.ErrorIs(t, err, ErrDialogNotFound)

	got, err := svc.Resolve(store, models.DialogResult{DialogID: first.ID})
	require.NoError(t, err)
	assert.Equal(t, "One", got.Title)

	got, err = svc.Resolve(store, models.DialogResult{DialogID: second.ID, Value: "typed"})
	require.NoError(t, err)
	assert.Equal(t, "typed", got.InputValue)

	assert.Nil(t, svc.Current(store))
	_, err = svc.Resolve(store, models.DialogResult{DialogID: second.ID})
	assert.ErrorIs(t, err, ErrDialogNotFound)
}

func TestDialogClear(t *testing.T) {
	svc := NewDialogService(NewLogService(mocks.NewMockLogRepository(t), 1))
	store := newMemoryStore()

	require.NoError(t, svc.Push(store, models.NewConfirmation("One", "first")))
	require.NoError(t, svc.Clear(store))
	assert.Nil(t, svc.Current(store))
}

func TestDialogResolveCancelledDropsValue(t *testing.T) {
	svc := NewDialogService(NewLogService(mocks.NewMockLogRepository(t), 1))
	store := newMemoryStore()

	d := models.NewInput("Enter Password", "Password:")
	require.NoError(t, svc.Push(store, d))

	got, err := svc.Resolve(store, models.DialogResult{DialogID: d.ID, Value: "secret", Cancelled: true})
	require.NoError(t, err)
	assert.Empty(t, got.InputValue)
}

func TestShowErrorLogsAndQueuesDialog(t *testing.T) {
	repo := mocks.NewMockLogRepository(t)
	svc := NewDialogService(NewLogService(repo, 1))
	store := newMemoryStore()
	ctx := context.Background()

	cause := fmt.Errorf("failed to get log: %w", errors.New("database is locked"))
	repo.EXPECT().Insert(ctx, mock.MatchedBy(func(e *models.LogEntry) bool {
		return e.Message == cause.Error() && e.IP == "10.0.0.5"
	})).Return(nil)

	require.NoError(t, svc.ShowError(ctx, store, "10.0.0.5", cause))

	d := svc.Current(store)
	require.NotNil(t, d)
	assert.Equal(t, "Error", d.Title)
	assert.Equal(t, "failed to get log: database is locked\ndatabase is locked", d.Prompt)

	assert.NoError(t, svc.ShowError(ctx, store, "10.0.0.5", nil))
}

func TestShowErrorStillQueuesWhenLoggingFails(t *testing.T) {
	repo := mocks.NewMockLogRepository(t)
	svc := NewDialogService(NewLogService(repo, 1))
	store := newMemoryStore()

	repo.EXPECT().Insert(mock.Anything, mock.Anything).Return(errors.New("read-only database"))

	require.NoError(t, svc.ShowError(context.Background(), store, "::1", errors.New("boom")))
	assert.Equal(t, "boom", svc.Current(store).Prompt)
}
