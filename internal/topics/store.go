// Package topics implements the Topic Store: the authoritative in-memory
// topic collection, its mutations, and the snapshot synchronization with a
// key-value backend.
//
// The in-memory collection is the source of truth for a session. Every
// mutation queues a full-collection snapshot for the backend; write failures
// are logged and never roll memory back.
package topics

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/topics/pkg/types"
)

// Source tells where the collection came from when the store opened.
type Source string

const (
	SourceSnapshot Source = "snapshot" // a persisted snapshot was loaded
	SourceSeed     Source = "seed"     // fell back to the built-in seed set
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSyncStrategy selects when snapshots are written: types.SyncAsync
// (default), types.SyncImmediate or types.SyncOnClose.
func WithSyncStrategy(strategy string) Option {
	return func(s *Store) {
		s.strategy = strategy
	}
}

// WithNotifier registers a callback invoked after a topic is added.
// It runs on the caller's goroutine, after the store lock is released.
func WithNotifier(fn func(types.Topic)) Option {
	return func(s *Store) {
		s.notify = fn
	}
}

// WithIDGenerator overrides how new topic IDs are made. The generator must
// not return an ID already present in the collection.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Store owns the ordered topic collection.
type Store struct {
	mu     sync.RWMutex
	topics []types.Topic
	source Source
	closed bool

	strategy string
	w        *writer
	logger   *zap.Logger
	notify   func(types.Topic)
	newID    func() string
}

// Open loads the persisted snapshot from kv, or falls back to the seed set
// when there is none or it cannot be read. Load failures are logged, not
// returned. The caller must Close the store to flush pending writes.
func Open(kv types.KV, opts ...Option) (*Store, error) {
	if kv == nil {
		return nil, errors.New("topics: kv backend is required")
	}

	s := &Store{
		strategy: types.SyncAsync,
		logger:   zap.NewNop(),
		newID:    generateUUID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.strategy == "" {
		s.strategy = types.SyncAsync
	}
	if !types.ValidSyncStrategy(s.strategy) {
		return nil, fmt.Errorf("topics: %w: %q", types.ErrSyncStrategyUnknown, s.strategy)
	}

	s.w = newWriter(kv, s.logger, s.strategy)

	topics, found := s.load(kv)
	if topics != nil {
		s.topics = topics
		s.source = SourceSnapshot
		return s, nil
	}

	s.topics = Seed()
	s.source = SourceSeed
	if !found {
		// First run: persist the seed set so the next session loads it.
		// A damaged snapshot is kept until the next mutation replaces it.
		s.persistLocked()
	}
	return s, nil
}

// load reads and decodes the snapshot. It returns the decoded collection, or
// nil plus whether a value existed.
func (s *Store) load(kv types.KV) ([]types.Topic, bool) {
	value, ok, err := kv.Get(types.TopicsKey)
	if err != nil {
		s.logger.Warn("loading topics failed, using built-in topics",
			zap.String("key", types.TopicsKey), zap.Error(err))
		// Treat as present so a transient read error cannot overwrite data.
		return nil, true
	}
	if !ok {
		s.logger.Info("no saved topics, using built-in topics", zap.String("key", types.TopicsKey))
		return nil, false
	}

	topics, err := DecodeSnapshot(value)
	if err != nil {
		s.logger.Warn("parsing saved topics failed, using built-in topics",
			zap.String("key", types.TopicsKey), zap.Error(err))
		return nil, true
	}
	s.logger.Debug("loaded saved topics", zap.Int("count", len(topics)))
	return topics, true
}

// Source reports whether the collection came from a snapshot or the seed set.
func (s *Store) Source() Source {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Len returns the number of topics.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.topics)
}

// Topics returns a copy of the collection in insertion order.
func (s *Store) Topics() []types.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTopics(s.topics)
}

// Get returns a copy of the topic with the given ID.
// Returns ErrInvalidID for an empty id and ErrNotFound when no topic matches.
func (s *Store) Get(id string) (types.Topic, error) {
	if id == "" {
		return types.Topic{}, types.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return types.Topic{}, fmt.Errorf("%w: %s", types.ErrNotFound, id)
	}
	return s.topics[i].Clone(), nil
}

// FilterByName returns the topics whose name contains query, ignoring case,
// in collection order. An empty query returns every topic.
func (s *Store) FilterByName(query string) []types.Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if query == "" {
		return cloneTopics(s.topics)
	}
	q := strings.ToLower(query)
	result := make([]types.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		if strings.Contains(strings.ToLower(t.Name), q) {
			result = append(result, t.Clone())
		}
	}
	return result
}

// AddLink appends a link to the topic identified by topicID, stored as
// "header: url" when header is set. A non-empty image replaces the topic's
// image. It returns the updated topic and true when the link was added.
//
// The call is a silent no-op, returning false, when url is empty, the topic
// does not exist, the header contains the link separator, or the store is
// closed. Use types.ValidateLink to learn why in advance.
func (s *Store) AddLink(topicID, url, header, image string) (types.Topic, bool) {
	if types.ValidateLink(url, header) != nil {
		return types.Topic{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.Topic{}, false
	}
	i := s.indexLocked(topicID)
	if i < 0 {
		s.logger.Debug("add link ignored, unknown topic", zap.String("topic_id", topicID))
		return types.Topic{}, false
	}

	t := &s.topics[i]
	t.Links = append(t.Links, types.ComposeLink(header, url))
	if image != "" {
		t.Image = image
	}
	updated := t.Clone()

	s.logger.Debug("link added",
		zap.String("topic_id", topicID),
		zap.Int("links", len(updated.Links)))
	s.persistLocked()
	return updated, true
}

// AddTopic appends a new topic with a generated ID. An empty image is
// replaced by types.PlaceholderImage. links is stored as given; splitting
// user input is the caller's job.
//
// Returns an error wrapping types.ErrValidation and ErrInvalidName or
// ErrInvalidLinks when name or links are empty. Nothing changes on error.
func (s *Store) AddTopic(name string, links []string, image string) (types.Topic, error) {
	if name == "" {
		return types.Topic{}, fmt.Errorf("%w: %w", types.ErrValidation, types.ErrInvalidName)
	}
	if len(links) == 0 {
		return types.Topic{}, fmt.Errorf("%w: %w", types.ErrValidation, types.ErrInvalidLinks)
	}
	if image == "" {
		image = types.PlaceholderImage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return types.Topic{}, types.ErrStoreClosed
	}

	id := s.newID()
	if s.indexLocked(id) >= 0 {
		s.mu.Unlock()
		return types.Topic{}, fmt.Errorf("topics: generated id %q already exists", id)
	}

	topic := types.Topic{
		ID:    id,
		Name:  name,
		Links: append([]string(nil), links...),
		Image: image,
	}
	s.topics = append(s.topics, topic)
	s.logger.Info("topic added", zap.String("topic_id", id), zap.String("name", name))
	s.persistLocked()
	notify := s.notify
	s.mu.Unlock()

	added := topic.Clone()
	if notify != nil {
		notify(added)
	}
	return added, nil
}

// Flush writes any pending snapshot now. The error is informational; the
// in-memory collection is unaffected either way.
func (s *Store) Flush() error {
	return s.w.flush()
}

// Close stops accepting mutations and writes the pending snapshot.
// Reads keep working after Close. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.w.close()
}

// persistLocked encodes the collection and hands it to the writer.
// The caller must hold s.mu or own s exclusively.
func (s *Store) persistLocked() {
	snapshot, err := EncodeSnapshot(s.topics)
	if err != nil {
		s.logger.Error("encoding topics snapshot failed", zap.Error(err))
		return
	}
	s.w.schedule(snapshot)
}

func (s *Store) indexLocked(id string) int {
	for i := range s.topics {
		if s.topics[i].ID == id {
			return i
		}
	}
	return -1
}

// generateUUID generates a new UUID v7 for topic IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
