package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/nkotelnikov/url-shortener/internal/models"
	"github.com/nkotelnikov/url-shortener/internal/storage"
)

var (
	// ErrInvalidURL is returned when the original URL is empty or is not
	// a syntactically valid absolute http/https URL.
	ErrInvalidURL = errors.New("invalid url")
	// ErrMaxAttemptsExceeded is returned when every generated candidate
	// short code collided with an existing one.
	ErrMaxAttemptsExceeded = errors.New("maximum attempts exceeded for generating short code")
)

// URLStorage defines the interface for working with URLs at the business logic layer.
type URLStorage interface {
	// Create inserts a new shortened URL into the storage.
	// Returns storage.ErrShortCodeExists if the short code is taken.
	Create(ctx context.Context, shortCode, originalURL string) (*models.URL, error)

	// GetByShortCode retrieves a URL by its short code and increments
	// its click counter. Returns storage.ErrURLNotFound if absent.
	GetByShortCode(ctx context.Context, shortCode string) (*models.URL, error)

	// GetStats retrieves a URL by its short code without changing it.
	// Returns storage.ErrURLNotFound if absent.
	GetStats(ctx context.Context, shortCode string) (*models.URL, error)

	// GetAll returns a snapshot of every stored record keyed by short code.
	GetAll(ctx context.Context) (map[string]models.URL, error)
}

// URLService provides methods to manage URL shortening operations.
type URLService struct {
	storage     URLStorage
	gen         CodeGenerator
	maxAttempts int
}

// NewURLService creates a new instance of URLService with the provided
// storage, code generator and shorten attempts budget.
func NewURLService(storage URLStorage, gen CodeGenerator, maxAttempts int) *URLService {
	return &URLService{
		storage:     storage,
		gen:         gen,
		maxAttempts: maxAttempts,
	}
}

// ShortenURL generates a short code for the provided original URL and
// stores the mapping. It attempts up to the configured attempts budget;
// the first candidate that doesn't collide with an existing short code
// wins. If every candidate collides, ErrMaxAttemptsExceeded is returned
// and nothing is stored.
func (s *URLService) ShortenURL(ctx context.Context, originalURL string) (*models.URL, error) {
	const op = "service.URLService.ShortenURL"

	if err := validateURL(originalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for i := 0; i < s.maxAttempts; i++ {
		shortCode, err := s.gen.Generate()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := s.storage.Create(ctx, shortCode, originalURL)
		if err != nil {
			if errors.Is(err, storage.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxAttemptsExceeded)
}

// ResolveShortCode retrieves the original URL associated with the
// provided short code, counting the access as a click.
func (s *URLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.ResolveShortCode"

	url, err := s.storage.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// GetURLStats retrieves the statistics for the URL associated with the
// provided short code without counting a click.
func (s *URLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	const op = "service.URLService.GetURLStats"

	url, err := s.storage.GetStats(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// DumpURLs returns a snapshot of every stored mapping for diagnostics.
func (s *URLService) DumpURLs(ctx context.Context) (map[string]models.URL, error) {
	const op = "service.URLService.DumpURLs"

	urls, err := s.storage.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to dump urls: %w", op, err)
	}

	return urls, nil
}

// validateURL checks that rawURL is an absolute http/https URL with a host.
func validateURL(rawURL string) error {
	if rawURL == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}

	if u.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
