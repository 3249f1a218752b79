package usermodel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/quizionix/internal/logging"
	"github.com/abhisek/quizionix/internal/store"
)

// Model is the persisted user model. Every mutation is written through to
// the store; write failures are logged and the in-memory state stays
// authoritative.
type Model struct {
	kv     store.KV
	log    *logging.Logger
	userID string
	root   *Root
	now    func() time.Time
}

// Open loads the model from kv and selects userID as the active user.
// The returned model is always usable: when the stored root is missing or
// unreadable it starts empty, and the error says why.
func Open(ctx context.Context, kv store.KV, userID string, log *logging.Logger) (*Model, error) {
	m := &Model{
		kv:     kv,
		log:    logging.OrNop(log),
		userID: ResolveUserID(userID),
		now:    time.Now,
	}
	err := m.load(ctx)
	if m.root == nil {
		m.root = m.emptyRoot()
	}
	return m, err
}

func (m *Model) emptyRoot() *Root {
	return &Root{Version: RootVersion, UpdatedAt: m.now().UTC(), Users: make(map[string]*UserState)}
}

func (m *Model) load(ctx context.Context) error {
	raw, ok, err := m.kv.Get(ctx, StorageKey)
	if err != nil {
		return fmt.Errorf("read user model: %w", err)
	}

	var rootErr error
	if ok && raw != "" {
		root, err := decodeRoot([]byte(raw))
		if err == nil {
			m.root = root
			return nil
		}
		rootErr = err
		// An older single-user document may have been written under the
		// current key.
		if legacy, lerr := decodeLegacy([]byte(raw)); lerr == nil {
			m.adopt(legacy)
			return nil
		}
	}

	legacyRaw, ok, err := m.kv.Get(ctx, LegacyStorageKey)
	if err != nil {
		return errors.Join(rootErr, fmt.Errorf("read legacy user model: %w", err))
	}
	if ok && legacyRaw != "" {
		legacy, err := decodeLegacy([]byte(legacyRaw))
		if err == nil {
			m.adopt(legacy)
			m.log.Info("migrated legacy user model", "user_id", m.userID)
			return rootErr
		}
		return errors.Join(rootErr, err)
	}
	return rootErr
}

// adopt starts a fresh root holding legacy as the current user's state.
func (m *Model) adopt(legacy *UserState) {
	m.root = m.emptyRoot()
	m.root.Users[m.userID] = legacy
}

func (m *Model) save(ctx context.Context) {
	m.root.Version = RootVersion
	m.root.UpdatedAt = m.now().UTC()
	data, err := json.Marshal(m.root)
	if err != nil {
		m.log.Warn("encode user model failed", "error", err)
		return
	}
	if err := m.kv.Set(ctx, StorageKey, string(data)); err != nil {
		m.log.Warn("save user model failed", "error", err)
	}
}

// UserID returns the active user partition.
func (m *Model) UserID() string {
	return m.userID
}

// SwitchUser changes the active partition. State is never merged across
// users.
func (m *Model) SwitchUser(userID string) {
	m.userID = ResolveUserID(userID)
}

// Users returns the stored user ids, sorted.
func (m *Model) Users() []string {
	ids := make([]string, 0, len(m.root.Users))
	for id := range m.root.Users {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// user returns the active user's state, creating it when absent.
func (m *Model) user() *UserState {
	u, ok := m.root.Users[m.userID]
	if !ok {
		u = newUserState()
		m.root.Users[m.userID] = u
	}
	return u
}

// peek returns the active user's state without creating it.
func (m *Model) peek() *UserState {
	if u, ok := m.root.Users[m.userID]; ok {
		return u
	}
	return newUserState()
}

func (m *Model) subject(name string) *SubjectState {
	u := m.user()
	s, ok := u.Subjects[name]
	if !ok {
		s = newSubjectState()
		u.Subjects[name] = s
	}
	return s
}

func (m *Model) peekSubject(name string) *SubjectState {
	if s, ok := m.peek().Subjects[name]; ok {
		return s
	}
	return newSubjectState()
}

// Subjects returns the subjects the active user has answered, sorted.
func (m *Model) Subjects() []string {
	u := m.peek()
	names := make([]string, 0, len(u.Subjects))
	for name := range u.Subjects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ResetUser removes the active user's state.
func (m *Model) ResetUser(ctx context.Context) {
	delete(m.root.Users, m.userID)
	m.save(ctx)
}

// Clear wipes every user and the legacy document.
func (m *Model) Clear(ctx context.Context) {
	m.root = m.emptyRoot()
	for _, key := range []string{StorageKey, LegacyStorageKey} {
		if err := m.kv.Remove(ctx, key); err != nil {
			m.log.Warn("clear user model failed", "key", key, "error", err)
		}
	}
}
