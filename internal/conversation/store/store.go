// Package store keeps live conversations in an expiring LRU in front of the
// database. Writes go to the database first; the cache only ever holds what
// was persisted.
package store

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"habit-streak-bot/internal/conversation"
	"habit-streak-bot/internal/conversation/repository"
	pkgLog "habit-streak-bot/pkg/log"
)

const defaultSize = 1000

type Store struct {
	repo  repository.Repository
	cache *expirable.LRU[int64, conversation.Conversation]
	l     pkgLog.Logger
	now   func() time.Time
}

// New builds a store caching up to size conversations for at most ttl.
func New(repo repository.Repository, l pkgLog.Logger, size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = conversation.DefaultTimeout
	}
	return &Store{
		repo:  repo,
		cache: expirable.NewLRU[int64, conversation.Conversation](size, nil, ttl),
		l:     l,
		now:   time.Now,
	}
}

// Load returns the live conversation of a user. ok is false when there is
// none or it has expired; an expired one is dropped from both layers.
func (s *Store) Load(ctx context.Context, userID int64) (c conversation.Conversation, ok bool, err error) {
	now := s.now()

	if c, hit := s.cache.Get(userID); hit {
		if !c.Expired(now) {
			return c.Clone(), true, nil
		}
		s.cache.Remove(userID)
	}

	c, err = s.repo.Get(ctx, userID)
	if err != nil {
		return conversation.Conversation{}, false, err
	}
	if c.UserID == 0 {
		return conversation.Conversation{}, false, nil
	}
	if c.Expired(now) {
		if err := s.repo.Delete(ctx, userID); err != nil {
			s.l.Warnf(ctx, "conversation.store.Load: drop expired user=%d: %v", userID, err)
		}
		return conversation.Conversation{}, false, nil
	}

	s.cache.Add(userID, c)
	return c.Clone(), true, nil
}

// Save persists c and then caches it.
func (s *Store) Save(ctx context.Context, c conversation.Conversation) error {
	if err := s.repo.Save(ctx, c); err != nil {
		s.cache.Remove(c.UserID)
		return err
	}
	s.cache.Add(c.UserID, c.Clone())
	return nil
}

func (s *Store) Delete(ctx context.Context, userID int64) error {
	s.cache.Remove(userID)
	return s.repo.Delete(ctx, userID)
}

// Sweep deletes expired conversations from the database and the cache.
func (s *Store) Sweep(ctx context.Context) (int64, error) {
	now := s.now()
	n, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	for _, id := range s.cache.Keys() {
		if c, ok := s.cache.Peek(id); ok && c.Expired(now) {
			s.cache.Remove(id)
		}
	}
	return n, nil
}

// Cached is the number of conversations held in memory.
func (s *Store) Cached() int {
	return s.cache.Len()
}
