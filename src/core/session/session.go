package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"hydrorag/src/core/documents"
)

const (
	DefaultTTL      = 2 * time.Hour
	cleanupInterval = 10 * time.Minute
)

// FileKey identifies an uploaded file by name and byte size. Re-uploading
// the same file into a session is a no-op.
func FileKey(name string, size int64) string {
	return fmt.Sprintf("%s_%d", name, size)
}

// Session ties one uploaded document's index and retriever to a caller.
type Session struct {
	ID        string
	FileKey   string
	Index     *documents.Index
	Retriever *documents.Retriever
	CreatedAt time.Time
}

// Store keeps sessions in memory with a sliding TTL.
type Store struct {
	cache *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Create registers a new session for a processed document.
func (s *Store) Create(fileKey string, index *documents.Index, retriever *documents.Retriever) *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		FileKey:   fileKey,
		Index:     index,
		Retriever: retriever,
		CreatedAt: time.Now(),
	}
	s.cache.SetDefault(sess.ID, sess)
	return sess
}

// Get returns the session and refreshes its TTL.
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	sess := v.(*Session)
	s.cache.SetDefault(id, sess)
	return sess, true
}

func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Find returns the session holding a given file key, if any is still alive.
func (s *Store) Find(fileKey string) (*Session, bool) {
	for _, item := range s.cache.Items() {
		sess, ok := item.Object.(*Session)
		if ok && sess.FileKey == fileKey {
			return sess, true
		}
	}
	return nil, false
}
