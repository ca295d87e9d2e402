package services

import (
	"fmt"
	"sync"

	"github.com/blogem/webtemplate/models"
)

const sessionKey = "session"

// SessionStore is the part of a per-visitor session store the services use
type SessionStore interface {
	Get(key interface{}) interface{}
	Set(key, value interface{}) error
	Delete(key interface{}) error
}

// SessionObserver is notified with a copy of the session after every change
type SessionObserver func(models.Session)

// SessionService interface defines session state handling
type SessionService interface {
	Current(store SessionStore) *models.Session
	Init(store SessionStore, ipAddress, userAgent string) (*models.Session, error)
	SetAuthenticated(store SessionStore, email string) (*models.Session, error)
	Clear(store SessionStore) error
	OnSessionDataChanged(fn SessionObserver)
}

// sessionService implements SessionService interface
type sessionService struct {
	mu        sync.RWMutex
	observers []SessionObserver
}

// NewSessionService creates a new session service
func NewSessionService() SessionService {
	return &sessionService{}
}

// Current returns a copy of the stored session, or nil when none exists
func (s *sessionService) Current(store SessionStore) *models.Session {
	if store == nil {
		return nil
	}
	sess, ok := store.Get(sessionKey).(models.Session)
	if !ok {
		return nil
	}
	return &sess
}

// Init creates the session on first contact; an existing one is returned as is
func (s *sessionService) Init(store SessionStore, ipAddress, userAgent string) (*models.Session, error) {
	if current := s.Current(store); current != nil {
		return current, nil
	}

	sess := models.NewSession(ipAddress, userAgent)
	if err := s.save(store, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetAuthenticated marks the session as logged on. An empty email keeps the stored one.
func (s *sessionService) SetAuthenticated(store SessionStore, email string) (*models.Session, error) {
	sess := s.Current(store)
	if sess == nil {
		return nil, fmt.Errorf("no session to authenticate")
	}

	sess.IsAuthenticated = true
	if email != "" {
		sess.EmailAddress = email
	}

	if err := s.save(store, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Clear drops the session data
func (s *sessionService) Clear(store SessionStore) error {
	if err := store.Delete(sessionKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.notify(models.Session{})
	return nil
}

// OnSessionDataChanged registers an observer
func (s *sessionService) OnSessionDataChanged(fn SessionObserver) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *sessionService) save(store SessionStore, sess *models.Session) error {
	if store == nil {
		return fmt.Errorf("no session store")
	}
	if err := store.Set(sessionKey, sess.Clone()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.notify(sess.Clone())
	return nil
}

func (s *sessionService) notify(sess models.Session) {
	s.mu.RLock()
	observers := make([]SessionObserver, len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(sess)
	}
}
