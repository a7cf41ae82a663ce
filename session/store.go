package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plumecms/plume/models"
	"github.com/plumecms/plume/utils"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"
	opTimeout        = 2 * time.Second
)

// Session is the server-side record behind a session cookie. Only logged-in
// sessions carry a username.
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username,omitempty"`
	LoggedIn  bool      `json:"logged_in"`
	CreatedAt time.Time `json:"created_at"`
}

type memSession struct {
	sess      Session
	expiresAt time.Time
}

type memFlash struct {
	flash     models.Flash
	expiresAt time.Time
}

// Store keeps sessions and their flash messages in Redis when a client is
// available, falling back to an in-process map otherwise.
type Store struct {
	rdb *redis.Client
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]memSession
	flashes  map[string]memFlash
}

// NewStore creates a session store. A nil client selects the in-process
// fallback.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		rdb:      rdb,
		ttl:      ttl,
		sessions: map[string]memSession{},
		flashes:  map[string]memFlash{},
	}
}

// Get returns the session with the given id, or nil when none exists.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	if s.rdb != nil {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		b, err := s.rdb.Get(cctx, sessionKeyPrefix+id).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		var sess Session
		if err := json.Unmarshal(b, &sess); err != nil {
			return nil, err
		}
		return &sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	sess := entry.sess
	return &sess, nil
}

// Save writes the session record under the store TTL.
func (s *Store) Save(ctx context.Context, sess Session) error {
	if s.rdb != nil {
		b, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		return s.rdb.Set(cctx, sessionKeyPrefix+sess.ID, b, s.ttl).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = memSession{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// Delete removes the session and any pending flash. Unknown ids are a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if s.rdb != nil {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		return s.rdb.Del(cctx, sessionKeyPrefix+id, flashKeyPrefix+id).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.flashes, id)
	return nil
}

// SetFlash stores the flash message for the session, replacing any pending
// one.
func (s *Store) SetFlash(ctx context.Context, id string, flash models.Flash) error {
	if id == "" {
		return nil
	}
	if s.rdb != nil {
		b, err := json.Marshal(flash)
		if err != nil {
			return err
		}
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		return s.rdb.Set(cctx, flashKeyPrefix+id, b, s.ttl).Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.flashes[id] = memFlash{flash: flash, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

// TakeFlash returns the pending flash message and clears it, or nil when
// there is none. Store errors are logged and read as a miss so a broken
// Redis never blocks a page render.
func (s *Store) TakeFlash(ctx context.Context, id string) *models.Flash {
	if id == "" {
		return nil
	}
	if s.rdb != nil {
		cctx, cancel := context.WithTimeout(ctx, opTimeout)
		defer cancel()
		b, err := s.rdb.GetDel(cctx, flashKeyPrefix+id).Bytes()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			utils.Sugar.Warnf("flash read failed for session %s: %v", id, err)
			return nil
		}
		var flash models.Flash
		if err := json.Unmarshal(b, &flash); err != nil {
			utils.Sugar.Warnf("flash decode failed for session %s: %v", id, err)
			return nil
		}
		return &flash
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.flashes[id]
	if !ok {
		return nil
	}
	delete(s.flashes, id)
	if time.Now().After(entry.expiresAt) {
		return nil
	}
	flash := entry.flash
	return &flash
}
