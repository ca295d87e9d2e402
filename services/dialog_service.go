package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blogem/webtemplate/models"
)

const dialogQueueKey = "dialogs"

// ErrDialogNotFound is returned when an answer does not match the open dialog
var ErrDialogNotFound = errors.New("dialog not found")

// DialogService interface defines the per-session dialog queue
type DialogService interface {
	Push(store SessionStore, dialog *models.Dialog) error
	Current(store SessionStore) *models.Dialog
	Resolve(store SessionStore, result models.DialogResult) (*models.Dialog, error)
	ShowError(ctx context.Context, store SessionStore, ip string, cause error) error
	Clear(store SessionStore) error
}

// dialogService implements DialogService interface
type dialogService struct {
	logService LogService
}

// NewDialogService creates a new dialog service
func NewDialogService(logService LogService) DialogService {
	return &dialogService{logService: logService}
}

// Push appends a dialog; dialogs are shown one at a time in order
func (s *dialogService) Push(store SessionStore, dialog *models.Dialog) error {
	if dialog == nil {
		return nil
	}
	queue := append(s.queue(store), *dialog)
	return s.setQueue(store, queue)
}

// Current returns the dialog the visitor has to answer next
func (s *dialogService) Current(store SessionStore) *models.Dialog {
	queue := s.queue(store)
	if len(queue) == 0 {
		return nil
	}
	d := queue[0]
	return &d
}

// Resolve removes the open dialog and returns it carrying the answer
func (s *dialogService) Resolve(store SessionStore, result models.DialogResult) (*models.Dialog, error) {
	queue := s.queue(store)
	if len(queue) == 0 || queue[0].ID != result.DialogID {
		return nil, fmt.Errorf("%w: %s", ErrDialogNotFound, result.DialogID)
	}

	d := queue[0]
	if !result.Cancelled {
		d.InputValue = result.Value
	}

	if err := s.setQueue(store, queue[1:]); err != nil {
		return nil, err
	}
	return &d, nil
}

// ShowError records the failure in the log and queues an "Error" dialog for it
func (s *dialogService) ShowError(ctx context.Context, store SessionStore, ip string, cause error) error {
	if cause == nil {
		return nil
	}

	if err := s.logService.InsertLogData(ctx, cause.Error(), ip); err != nil {
		slog.Error("failed to record error in log", "error", err, "cause", cause)
	}

	return s.Push(store, models.NewConfirmation("Error", describeError(cause)))
}

// Clear drops every pending dialog
func (s *dialogService) Clear(store SessionStore) error {
	return s.setQueue(store, nil)
}

func (s *dialogService) queue(store SessionStore) []models.Dialog {
	if store == nil {
		return nil
	}
	queue, _ := store.Get(dialogQueueKey).([]models.Dialog)
	return queue
}

func (s *dialogService) setQueue(store SessionStore, queue []models.Dialog) error {
	if store == nil {
		return fmt.Errorf("no session store")
	}

	var err error
	if len(queue) == 0 {
		err = store.Delete(dialogQueueKey)
	} else {
		// copy so the stored slice never aliases one handed out earlier
		err = store.Set(dialogQueueKey, append([]models.Dialog(nil), queue...))
	}
	if err != nil {
		return fmt.Errorf("failed to save dialogs: %w", err)
	}
	return nil
}

// describeError renders the error chain one cause per line
func describeError(err error) string {
	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil && inner.Error() != msg {
		msg += "\n" + inner.Error()
	}
	return msg
}
