// Package memory keeps activity records in process memory. It backs the
// "memory" store backend for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/max3tmk/ImageGallery/activity/internal/domain/activity"
)

type LikeEventStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]activity.LikeEvent
}

func NewLikeEventStore() *LikeEventStore {
	return &LikeEventStore{records: make(map[uuid.UUID]activity.LikeEvent)}
}

func (s *LikeEventStore) Save(_ context.Context, e activity.LikeEvent) (activity.LikeEvent, error) {
	e = e.WithDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[e.ID]; exists {
		return activity.LikeEvent{}, fmt.Errorf("insert like event: duplicate id %s", e.ID)
	}
	s.records[e.ID] = e
	return e, nil
}

func (s *LikeEventStore) FindByID(_ context.Context, id uuid.UUID) (activity.LikeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return activity.LikeEvent{}, activity.ErrNotFound
	}
	return e, nil
}

func (s *LikeEventStore) FindAll(_ context.Context) ([]activity.LikeEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]activity.LikeEvent, 0, len(s.records))
	for _, e := range s.records {
		out = append(out, e)
	}
	return out, nil
}

type CommentEventStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]activity.CommentEvent
}

func NewCommentEventStore() *CommentEventStore {
	return &CommentEventStore{records: make(map[uuid.UUID]activity.CommentEvent)}
}

func (s *CommentEventStore) Save(_ context.Context, e activity.CommentEvent) (activity.CommentEvent, error) {
	e = e.WithDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[e.ID]; exists {
		return activity.CommentEvent{}, fmt.Errorf("insert comment event: duplicate id %s", e.ID)
	}
	s.records[e.ID] = e
	return e, nil
}

func (s *CommentEventStore) FindByID(_ context.Context, id uuid.UUID) (activity.CommentEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.records[id]
	if !ok {
		return activity.CommentEvent{}, activity.ErrNotFound
	}
	return e, nil
}

func (s *CommentEventStore) FindAll(_ context.Context) ([]activity.CommentEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]activity.CommentEvent, 0, len(s.records))
	for _, e := range s.records {
		out = append(out, e)
	}
	return out, nil
}
