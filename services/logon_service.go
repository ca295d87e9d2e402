package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/blogem/webtemplate/models"
)

// Steps of the first-visit logon flow, stored on the dialogs that drive it
const (
	stepConfirm         = "logon.confirm"
	stepPassword        = "logon.password"
	stepPasswordConfirm = "logon.password-confirm"
)

// LogonService interface defines the template's logon flow
type LogonService interface {
	Begin(ctx context.Context, store SessionStore, ipAddress, userAgent string) (*models.Session, error)
	Answer(ctx context.Context, store SessionStore, result models.DialogResult) error
	Logout(ctx context.Context, store SessionStore) error
}

// logonService implements LogonService interface
type logonService struct {
	sessions     SessionService
	dialogs      DialogService
	logService   LogService
	passwordHash []byte
}

// NewLogonService creates a new logon service. With an empty passwordHash
// any password is accepted.
func NewLogonService(sessions SessionService, dialogs DialogService, logService LogService, passwordHash string) LogonService {
	s := &logonService{
		sessions:   sessions,
		dialogs:    dialogs,
		logService: logService,
	}
	if passwordHash != "" {
		s.passwordHash = []byte(passwordHash)
	}
	return s
}

// Begin initialises the session and, for a visitor who is not logged on and
// has nothing pending, queues the first dialog of the flow
func (s *logonService) Begin(ctx context.Context, store SessionStore, ipAddress, userAgent string) (*models.Session, error) {
	sess, err := s.sessions.Init(store, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	if sess.IsAuthenticated || s.dialogs.Current(store) != nil {
		return sess, nil
	}

	d := models.NewConfirmation("TEST", "Confirmation Dialog Test")
	d.Step = stepConfirm
	if err := s.dialogs.Push(store, d); err != nil {
		return nil, err
	}

	return sess, nil
}

// Answer resolves the open dialog and moves the flow to its next step
func (s *logonService) Answer(ctx context.Context, store SessionStore, result models.DialogResult) error {
	d, err := s.dialogs.Resolve(store, result)
	if err != nil {
		return err
	}

	sess := s.sessions.Current(store)
	if sess == nil {
		return fmt.Errorf("no session for dialog %s", d.ID)
	}

	switch d.Step {
	case stepConfirm:
		return s.promptPassword(store)

	case stepPassword:
		if err := s.checkPassword(d.InputValue); err != nil {
			if logErr := s.logService.InsertLogData(ctx, MessageLogonFailed, sess.IPAddress); logErr != nil {
				return logErr
			}
			return s.promptPassword(store)
		}

		prompt := fmt.Sprintf("Password accepted for IP %s", sess.IPAddress)
		if s.passwordHash == nil {
			prompt = fmt.Sprintf("The password is %s for IP %s", d.InputValue, sess.IPAddress)
		}
		next := models.NewConfirmation("Password Test", prompt)
		next.Step = stepPasswordConfirm
		return s.dialogs.Push(store, next)

	case stepPasswordConfirm:
		if _, err := s.sessions.SetAuthenticated(store, ""); err != nil {
			return err
		}
		return s.logService.InsertLogData(ctx, MessageLogon, sess.IPAddress)
	}

	return nil
}

// Logout records the logout and clears the session and its dialogs
func (s *logonService) Logout(ctx context.Context, store SessionStore) error {
	if sess := s.sessions.Current(store); sess != nil && sess.IsAuthenticated {
		if err := s.logService.InsertLogData(ctx, MessageLogout, sess.IPAddress); err != nil {
			return err
		}
	}
	if err := s.dialogs.Clear(store); err != nil {
		return err
	}
	return s.sessions.Clear(store)
}

func (s *logonService) promptPassword(store SessionStore) error {
	d := models.NewInput("Enter Password", "Password:")
	d.Masked = true
	d.Step = stepPassword
	return s.dialogs.Push(store, d)
}

func (s *logonService) checkPassword(password string) error {
	if s.passwordHash == nil {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return errors.New("wrong password")
		}
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}
