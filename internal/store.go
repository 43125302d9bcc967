package internal

import (
	"database/sql"
	"encoding/json"
	"sort"
	"time"
)

// Store is the durable mapping of session id to session record. Every
// mutation writes through to SQLite before returning; a crash immediately
// after a successful call never loses that mutation. Loading tolerates
// corrupt rows by skipping them, so a damaged database degrades to fewer
// sessions rather than a failed application.
type Store struct {
	db *sql.DB
	// In-memory view, kept in sync with the database. Keyed by session id.
	sessions map[string]*Session
}

// NewStore creates a Store over an open database and loads the existing
// session records.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{
		db:       db,
		sessions: make(map[string]*Session),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	pairs, err := queryKV(s.db, sessionKeyPrefix+"%")
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		var sess Session
		if err := json.Unmarshal([]byte(pair.Value), &sess); err != nil {
			LogWarn("Skipping unreadable session record %s: %v", pair.Key, err)
			continue
		}
		if sess.ID == "" {
			sess.ID = pair.Key[len(sessionKeyPrefix):]
		}
		s.sessions[sess.ID] = &sess
	}
	LogDebug("Loaded %d session(s)", len(s.sessions))
	return nil
}

// Create adds a new session with an empty history. The id comes from the
// backend's creation acknowledgement.
func (s *Store) Create(id, task string) (*Session, error) {
	if _, exists := s.sessions[id]; exists {
		return nil, &DuplicateSessionError{ID: id}
	}
	sess := &Session{
		ID:        id,
		Task:      task,
		History:   []Event{},
		CreatedAt: time.Now(),
	}
	if err := s.persist(sess); err != nil {
		return nil, err
	}
	s.sessions[id] = sess
	return sess.clone(), nil
}

// Append adds an event to the tail of a session's history. Progress events
// are a caller contract violation and are rejected outright.
func (s *Store) Append(id string, ev Event) error {
	if !ev.Kind.Transcript() {
		return ErrProgressEvent
	}
	sess, ok := s.sessions[id]
	if !ok {
		return &UnknownSessionError{ID: id}
	}
	sess.History = append(sess.History, ev)
	if err := s.persist(sess); err != nil {
		// Roll back the in-memory append so memory and disk agree.
		sess.History = sess.History[:len(sess.History)-1]
		return err
	}
	return nil
}

// Delete removes the local record. Backend-side cleanup is the session
// controller's responsibility, sequenced before this call.
func (s *Store) Delete(id string) error {
	if _, ok := s.sessions[id]; !ok {
		return &UnknownSessionError{ID: id}
	}
	if err := deleteKV(s.db, sessionKeyPrefix+id); err != nil {
		return err
	}
	delete(s.sessions, id)
	return nil
}

// Get returns a copy of the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, &UnknownSessionError{ID: id}
	}
	return sess.clone(), nil
}

// List returns all sessions ordered by descending creation time.
func (s *Store) List() []*Session {
	result := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, sess.clone())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Count returns the number of stored sessions.
func (s *Store) Count() int {
	return len(s.sessions)
}

// LoadSettings reads the stored connection settings. A missing record
// returns zero-value settings.
func (s *Store) LoadSettings() (Settings, error) {
	var settings Settings
	value, ok, err := getKV(s.db, settingsKey)
	if err != nil {
		return settings, err
	}
	if !ok {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		LogWarn("Ignoring unreadable settings record: %v", err)
		return Settings{}, nil
	}
	return settings, nil
}

// SaveSettings stores the connection settings.
func (s *Store) SaveSettings(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return putKV(s.db, settingsKey, string(data))
}

func (s *Store) persist(sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return &StoreError{Op: "write", Err: err}
	}
	return putKV(s.db, sessionKeyPrefix+sess.ID, string(data))
}

func (sess *Session) clone() *Session {
	c := *sess
	c.History = make([]Event, len(sess.History))
	copy(c.History, sess.History)
	return &c
}
