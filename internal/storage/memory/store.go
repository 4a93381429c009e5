package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nkotelnikov/url-shortener/internal/models"
	"github.com/nkotelnikov/url-shortener/internal/storage"
)

// URLStore is an in-memory URL storage. All records live in a single
// map guarded by a read-write mutex and are lost on process exit.
//
// Callers always receive copies of records; the map is never aliased
// outside the store.
type URLStore struct {
	mu   sync.RWMutex
	urls map[string]models.URL
}

// NewURLStore creates an empty URL store.
func NewURLStore() *URLStore {
	return &URLStore{
		urls: make(map[string]models.URL),
	}
}

// Create inserts a new shortened URL record. The existence check and
// the insert happen in one critical section, so two concurrent calls
// can never both claim the same short code.
func (s *URLStore) Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error) {
	const op = "storage.memory.URLStore.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.urls[shortCode]; exists {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrShortCodeExists)
	}

	url := models.URL{
		ShortCode:   shortCode,
		OriginalURL: originalURL,
		CreatedAt:   time.Now().UTC(),
	}
	s.urls[shortCode] = url

	return &url, nil
}

// GetByShortCode retrieves a URL by its short code and increments its
// click counter. The lookup and the increment share the write lock, so
// every successful call counts exactly once.
func (s *URLStore) GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "storage.memory.URLStore.GetByShortCode"

	s.mu.Lock()
	defer s.mu.Unlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrURLNotFound)
	}

	url.Clicks++
	s.urls[shortCode] = url

	return &url, nil
}

// GetStats retrieves a URL by its short code without touching the
// click counter.
func (s *URLStore) GetStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "storage.memory.URLStore.GetStats"

	s.mu.RLock()
	defer s.mu.RUnlock()

	url, ok := s.urls[shortCode]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrURLNotFound)
	}

	return &url, nil
}

// GetAll returns a snapshot copy of every record currently stored.
func (s *URLStore) GetAll(ctx context.Context) (map[string]models.URL, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	urls := make(map[string]models.URL, len(s.urls))
	for shortCode, url := range s.urls {
		urls[shortCode] = url
	}

	return urls, nil
}

// Len reports the number of records currently stored.
func (s *URLStore) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.urls)
}
