// Package dedupe keeps the bot from answering the same event twice: a
// persisted per-stream watermark survives restarts, and a bounded in-memory
// cache of recent ids catches re-deliveries and the bot's own replies.
package dedupe

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"sync"
)

// Stream identifies which watermark an event belongs to.
type Stream int

const (
	StreamMentions Stream = iota
	StreamMonitoredPosts
)

func (s Stream) String() string {
	switch s {
	case StreamMentions:
		return "mentions"
	case StreamMonitoredPosts:
		return "monitored_posts"
	default:
		return "unknown"
	}
}

// DefaultCacheCapacity bounds the recent-id cache; on overflow the oldest
// half (by id order) is evicted.
const DefaultCacheCapacity = 100

// watermarkFile is the on-disk state record. The bt_posts key predates the
// configurable monitored account and is kept for state-file compatibility.
type watermarkFile struct {
	Mentions *string `json:"mentions"`
	BTPosts  *string `json:"bt_posts"`
}

// Store tracks processed event ids. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	path     string
	logger   *slog.Logger
	capacity int
	marks    map[Stream]string
	recent   map[string]struct{}
}

// NewStore loads the watermark file at path if it exists. A missing file is
// a fresh start; an unreadable one is an error, since silently dropping the
// watermark would cause a replay storm.
func NewStore(path string, capacity int, logger *slog.Logger) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	s := &Store{
		path:     path,
		logger:   logger.With("component", "dedupe"),
		capacity: capacity,
		marks:    make(map[Stream]string),
		recent:   make(map[string]struct{}),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading state file: %w", err)
	}
	var wf watermarkFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	if wf.Mentions != nil {
		s.marks[StreamMentions] = *wf.Mentions
	}
	if wf.BTPosts != nil {
		s.marks[StreamMonitoredPosts] = *wf.BTPosts
	}
	return s, nil
}

// ShouldProcess reports whether an event id is new for its stream: not in
// the recent cache and strictly above the stream's watermark.
func (s *Store) ShouldProcess(stream Stream, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.recent[id]; seen {
		return false
	}
	if mark, ok := s.marks[stream]; ok && CompareIDs(id, mark) <= 0 {
		return false
	}
	return true
}

// MarkProcessed commits an event id: the watermark advances monotonically,
// the id enters the recent cache, and the state file is rewritten before any
// reply is attempted. Persistence failures are logged, never fatal; the
// worst case is reprocessing after a crash, never corruption. Calling it
// twice with the same id is a no-op for the watermark.
func (s *Store) MarkProcessed(stream Stream, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mark, ok := s.marks[stream]; !ok || CompareIDs(id, mark) > 0 {
		s.marks[stream] = id
	}
	s.recent[id] = struct{}{}
	s.evictLocked()

	if err := s.persistLocked(); err != nil {
		persistErrors.Inc()
		s.logger.Error("failed to persist watermark", "err", err, "stream", stream, "id", id)
	}
}

// NoteReply records an id the bot itself produced, so a self-reply echoed
// back on the stream is never treated as a fresh mention. Replies do not
// advance any watermark.
func (s *Store) NoteReply(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent[id] = struct{}{}
	s.evictLocked()
}

// Watermark returns the committed watermark for a stream, if any.
func (s *Store) Watermark(stream Stream) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mark, ok := s.marks[stream]
	return mark, ok
}

// evictLocked drops the oldest half of the cache (by id order) once the
// capacity is exceeded. Caller must hold mu.
func (s *Store) evictLocked() {
	if len(s.recent) <= s.capacity {
		return
	}
	ids := make([]string, 0, len(s.recent))
	for id := range s.recent {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return CompareIDs(ids[i], ids[j]) < 0
	})
	for _, id := range ids[:len(ids)/2] {
		delete(s.recent, id)
	}
}

// persistLocked atomically replaces the state file: write a temp file, then
// rename over the old one, so a crash can never leave a partial record.
// Caller must hold mu.
func (s *Store) persistLocked() error {
	wf := watermarkFile{}
	if mark, ok := s.marks[StreamMentions]; ok {
		wf.Mentions = &mark
	}
	if mark, ok := s.marks[StreamMonitoredPosts]; ok {
		wf.BTPosts = &mark
	}
	data, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// CompareIDs orders two event ids. Mastodon ids are decimal snowflakes, so
// numeric order applies when both sides parse; otherwise longer strings sort
// after shorter ones, then lexically.
func CompareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
