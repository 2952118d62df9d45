package session

import (
	"context"
	"encoding/json"
	"fmt"

	applog "masroufi/internal/log"
	"masroufi/internal/models"
)

// StorageKey is the local storage key holding the current session.
const StorageKey = "user_session"

// LocalStorage is the key/value contract the manager needs.
type LocalStorage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Manager tracks whether a session is present.
type Manager struct {
	storage LocalStorage
	bridge  Bridge
	logger  *applog.Logger
}

// NewManager creates a Manager. A nil logger discards output.
func NewManager(storage LocalStorage, bridge Bridge, logger *applog.Logger) *Manager {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Manager{
		storage: storage,
		bridge:  bridge,
		logger:  logger.WithComponent(applog.ComponentSession),
	}
}

// Bridge returns the bridge resolved at startup.
func (m *Manager) Bridge() Bridge {
	return m.bridge
}

// Current returns the stored session. Missing or unreadable data counts
// as no session.
func (m *Manager) Current() (models.Session, bool) {
	blob, ok, err := m.storage.GetItem(StorageKey)
	if err != nil {
		m.logger.Warn("reading session failed", applog.FieldError, err)
		return models.Session{}, false
	}
	if !ok || blob == "" {
		return models.Session{}, false
	}

	var s models.Session
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		m.logger.Warn("discarding unreadable session", applog.FieldError, err)
		return models.Session{}, false
	}
	return s, true
}

// Present reports whether a session is stored.
func (m *Manager) Present() bool {
	_, ok := m.Current()
	return ok
}

// Login authorizes through the bridge and stores the session.
func (m *Manager) Login(ctx context.Context) (models.Session, error) {
	s, err := m.bridge.Authorize(ctx)
	if err != nil {
		m.logger.Warn("authorization failed", "bridge", m.bridge.Name(), applog.FieldError, err)
		return models.Session{}, err
	}

	blob, err := json.Marshal(s)
	if err != nil {
		return models.Session{}, fmt.Errorf("encode session: %w", err)
	}
	if err := m.storage.SetItem(StorageKey, string(blob)); err != nil {
		return models.Session{}, fmt.Errorf("write session: %w", err)
	}

	m.logger.Info("logged in", "bridge", m.bridge.Name(), "user_id", s.ID)
	return s, nil
}

// Logout forgets the stored session.
func (m *Manager) Logout() error {
	if err := m.storage.RemoveItem(StorageKey); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
