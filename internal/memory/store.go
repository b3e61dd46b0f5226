// Package memory keeps a time-windowed record of what the service has
// recently seen, read, and said: a bounded conversation transcript,
// TTL-keyed object/text sightings, and the last few scene descriptions.
package memory

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"vision-assist/internal/model"
)

type objectRecord struct {
	object    model.DetectedObject
	firstSeen time.Time
	lastSeen  time.Time
}

type textRecord struct {
	text      model.DetectedText
	firstSeen time.Time
	lastSeen  time.Time
}

type sceneRecord struct {
	description string
	at          time.Time
}

// Store is the contextual memory shared by every session's tasks. Safe for
// concurrent use; writers from different sessions may interleave freely.
type Store struct {
	mu sync.RWMutex

	cfg Config
	now func() time.Time

	messages []model.Message
	objects  map[string]objectRecord
	texts    map[string]textRecord
	scenes   []sceneRecord // ring, newest last, capped at sceneHistorySize
}

// New creates a memory store.
func New(cfg Config, opts ...Option) *Store {
	cfg.defaults()
	s := &Store{
		cfg:     cfg,
		now:     time.Now,
		objects: make(map[string]objectRecord),
		texts:   make(map[string]textRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordMessage appends one transcript turn, evicting the oldest past
// capacity.
func (s *Store) RecordMessage(role model.MessageRole, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, model.Message{
		Role:      role,
		Content:   content,
		Timestamp: unixSeconds(s.now()),
	})
	if len(s.messages) > s.cfg.MaxMessages {
		s.messages = s.messages[len(s.messages)-s.cfg.MaxMessages:]
	}
}

// RecordObjects upserts object sightings. The same physical item re-observed
// across frames updates last_seen instead of duplicating; expired records
// are purged on every write.
func (s *Store) RecordObjects(objects []model.DetectedObject) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, obj := range objects {
		key := recordKey(obj.Name, obj.BBox)
		rec := objectRecord{object: obj, firstSeen: now, lastSeen: now}
		if prev, ok := s.objects[key]; ok {
			rec.firstSeen = prev.firstSeen
		}
		s.objects[key] = rec
	}

	s.purgeLocked(now)
}

// RecordTexts upserts recognized-text sightings with the same keying and TTL
// rules as RecordObjects.
func (s *Store) RecordTexts(texts []model.DetectedText) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, txt := range texts {
		key := recordKey(txt.Text, txt.BBox)
		rec := textRecord{text: txt, firstSeen: now, lastSeen: now}
		if prev, ok := s.texts[key]; ok {
			rec.firstSeen = prev.firstSeen
		}
		s.texts[key] = rec
	}

	s.purgeLocked(now)
}

// RecordScene appends a scene description to the recent-scenes ring.
func (s *Store) RecordScene(description string) {
	if description == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenes = append(s.scenes, sceneRecord{description: description, at: s.now()})
	if len(s.scenes) > sceneHistorySize {
		s.scenes = s.scenes[len(s.scenes)-sceneHistorySize:]
	}
}

// Snapshot returns a read-only view of the current context: the transcript,
// all live records, and the latest scene description. Expired records are
// never included.
func (s *Store) Snapshot() model.ConversationContext {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	cutoff := now.Add(-s.cfg.RecordTTL)

	ctx := model.ConversationContext{
		Messages:        append([]model.Message(nil), s.messages...),
		LastProcessedAt: unixSeconds(now),
	}
	for _, rec := range s.objects {
		if rec.lastSeen.After(cutoff) {
			ctx.DetectedObjects = append(ctx.DetectedObjects, rec.object)
		}
	}
	for _, rec := range s.texts {
		if rec.lastSeen.After(cutoff) {
			ctx.DetectedTexts = append(ctx.DetectedTexts, rec.text)
		}
	}
	if len(s.scenes) > 0 {
		ctx.SceneDescription = s.scenes[len(s.scenes)-1].description
	}

	return ctx
}

// RecentObjects returns objects last seen within the given window.
func (s *Store) RecentObjects(window time.Duration) []model.DetectedObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-window)
	var out []model.DetectedObject
	for _, rec := range s.objects {
		if rec.lastSeen.After(cutoff) {
			out = append(out, rec.object)
		}
	}
	return out
}

// RecentTexts returns texts last seen within the given window.
func (s *Store) RecentTexts(window time.Duration) []model.DetectedText {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-window)
	var out []model.DetectedText
	for _, rec := range s.texts {
		if rec.lastSeen.After(cutoff) {
			out = append(out, rec.text)
		}
	}
	return out
}

// Search does a case-insensitive substring match over transcript content.
func (s *Store) Search(query string) []model.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var matches []model.Message
	for _, msg := range s.messages {
		if strings.Contains(strings.ToLower(msg.Content), query) {
			matches = append(matches, msg)
		}
	}
	return matches
}

// Clear drops the transcript, all sighting records, and scene history.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.objects = make(map[string]objectRecord)
	s.texts = make(map[string]textRecord)
	s.scenes = nil
}

// purgeLocked drops records whose last sighting is older than the TTL.
// Caller must hold the write lock.
func (s *Store) purgeLocked(now time.Time) {
	cutoff := now.Add(-s.cfg.RecordTTL)
	for key, rec := range s.objects {
		if !rec.lastSeen.After(cutoff) {
			delete(s.objects, key)
		}
	}
	for key, rec := range s.texts {
		if !rec.lastSeen.After(cutoff) {
			delete(s.texts, key)
		}
	}
}

// recordKey identifies a sighting by its label and bounding-box origin so
// frame-to-frame jitter in the far corner doesn't split records.
func recordKey(label string, bbox [4]float64) string {
	return fmt.Sprintf("%s_%.0f_%.0f", label, bbox[0], bbox[1])
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
