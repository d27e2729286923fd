// Package session persists per-session state in Redis: the facet selection a
// signup or search session is building, and the signup funnel's account draft.
//
// Each key carries a TTL refreshed on every write, so abandoned sessions
// disappear on their own.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkordes/travel-match/backend/internal/domain"
	"github.com/pkordes/travel-match/backend/internal/facet"
)

const (
	selectionKeyPrefix = "match:session:" // match:session:{session_id} -> Session JSON
	draftKeyPrefix     = "match:signup:"  // match:signup:{session_id} -> AccountDraft JSON

	// DefaultTTL applies when NewStore is given a non-positive ttl.
	DefaultTTL = 24 * time.Hour

	// updateAttempts bounds how often Update re-runs after a concurrent write.
	updateAttempts = 25
)

// Session is one selection session as stored in Redis.
type Session struct {
	ID        uuid.UUID      `json:"id"`
	Selection facet.Snapshot `json:"selection"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Store reads and writes sessions and funnel drafts.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a Store on top of client.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// TTL returns how long an untouched session lives.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create stores a new empty session and returns it.
func (s *Store) Create(ctx context.Context) (Session, error) {
	now := s.now().UTC()
	sess := Session{ID: uuid.New(), Selection: facet.Snapshot{}, CreatedAt: now, UpdatedAt: now}

	data, err := json.Marshal(sess)
	if err != nil {
		return Session{}, fmt.Errorf("session.Store.Create: marshal: %w", err)
	}
	// SetNX guards against the vanishingly unlikely id collision.
	ok, err := s.client.SetNX(ctx, selectionKey(sess.ID), data, s.ttl).Result()
	if err != nil {
		return Session{}, fmt.Errorf("session.Store.Create: %w", err)
	}
	if !ok {
		return Session{}, fmt.Errorf("session.Store.Create: id %s already in use", sess.ID)
	}
	return sess, nil
}

// Get returns the session with id, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Session, error) {
	data, err := s.client.Get(ctx, selectionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, fmt.Errorf("session.Store.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("session.Store.Get: %w", err)
	}
	sess, err := decodeSession(data)
	if err != nil {
		return Session{}, fmt.Errorf("session.Store.Get: %w", err)
	}
	return sess, nil
}

// Update loads the session, applies fn to its selection and writes the result
// back, all under WATCH. If another writer touches the session between the
// read and the write, the whole read-modify-write is retried, so concurrent
// toggles on one session are never lost. An error from fn aborts without
// writing.
func (s *Store) Update(ctx context.Context, id uuid.UUID, fn func(*facet.Selection) error) (Session, error) {
	key := selectionKey(id)
	var out Session

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrNotFound
		}
		if err != nil {
			return err
		}
		sess, err := decodeSession(data)
		if err != nil {
			return err
		}

		sel := facet.FromSnapshot(sess.Selection)
		if err := fn(sel); err != nil {
			return err
		}
		sess.Selection = sel.Snapshot()
		sess.UpdatedAt = s.now().UTC()

		encoded, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		out = sess
		return nil
	}

	err := retry.Do(
		func() error { return s.client.Watch(ctx, txf, key) },
		retry.Context(ctx),
		retry.Attempts(updateAttempts),
		retry.Delay(time.Millisecond),
		retry.MaxDelay(20*time.Millisecond),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.RetryIf(func(err error) bool { return errors.Is(err, redis.TxFailedErr) }),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return Session{}, fmt.Errorf("session.Store.Update: %w", err)
	}
	return out, nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, selectionKey(id)).Err(); err != nil {
		return fmt.Errorf("session.Store.Delete: %w", err)
	}
	return nil
}

// SaveDraft writes the account step of the signup funnel for session id.
func (s *Store) SaveDraft(ctx context.Context, id uuid.UUID, draft domain.AccountDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("session.Store.SaveDraft: marshal: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session.Store.SaveDraft: %w", err)
	}
	return nil
}

// Draft reads the account draft for session id without consuming it.
func (s *Store) Draft(ctx context.Context, id uuid.UUID) (domain.AccountDraft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AccountDraft{}, fmt.Errorf("session.Store.Draft: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.AccountDraft{}, fmt.Errorf("session.Store.Draft: %w", err)
	}
	var d domain.AccountDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return domain.AccountDraft{}, fmt.Errorf("session.Store.Draft: unmarshal: %w", err)
	}
	return d, nil
}

// Finish deletes both the draft and the selection of session id in one
// transaction. It is called only after a successful registration.
func (s *Store) Finish(ctx context.Context, id uuid.UUID) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, draftKey(id))
		pipe.Del(ctx, selectionKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("session.Store.Finish: %w", err)
	}
	return nil
}

func decodeSession(data []byte) (Session, error) {
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	// Re-sanitise whatever was stored.
	sess.Selection = facet.FromSnapshot(sess.Selection).Snapshot()
	return sess, nil
}

func selectionKey(id uuid.UUID) string { return selectionKeyPrefix + id.String() }
func draftKey(id uuid.UUID) string     { return draftKeyPrefix + id.String() }
