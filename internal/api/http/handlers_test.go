package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/go-chi/httplog/v2"
	"github.com/nkotelnikov/url-shortener/internal/models"
	"github.com/nkotelnikov/url-shortener/internal/service"
	"github.com/nkotelnikov/url-shortener/internal/storage"
	"github.com/nkotelnikov/url-shortener/pkg/response"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockURLService struct {
	mock.Mock
}

func (s *MockURLService) ShortenURL(ctx context.Context, originalURL string) (*models.URL, error) {
	args := s.Called(ctx, originalURL)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (s *MockURLService) ResolveShortCode(ctx context.Context, shortCode string) (*models.URL, error) {
	args := s.Called(ctx, shortCode)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (s *MockURLService) GetURLStats(ctx context.Context, shortCode string) (*models.URL, error) {
	args := s.Called(ctx, shortCode)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Error(1)
}

func (s *MockURLService) DumpURLs(ctx context.Context) (map[string]models.URL, error) {
	args := s.Called(ctx)
	urls, _ := args.Get(0).(map[string]models.URL)
	return urls, args.Error(1)
}

type HandlersTestSuite struct {
	suite.Suite
	logger     *httplog.Logger
	urlSvcMock *MockURLService
	server     *httptest.Server
	e          *httpexpect.Expect
}

func (suite *HandlersTestSuite) SetupSuite() {
	suite.logger = httplog.NewLogger("", httplog.Options{Writer: io.Discard})
}

func (suite *HandlersTestSuite) SetupSubTest() {
	suite.urlSvcMock = new(MockURLService)
	router := NewRouter(suite.logger, suite.urlSvcMock, "https://sho.rt")
	suite.server = httptest.NewServer(router)
	suite.e = httpexpect.Default(suite.T(), suite.server.URL)
}

func (suite *HandlersTestSuite) TearDownSubTest() {
	suite.urlSvcMock.AssertExpectations(suite.T())
	suite.server.Close()
}

func (suite *HandlersTestSuite) TestHealthCheck() {
	suite.Run("success", func() {
		suite.e.GET("/").
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", "healthy").
			HasValue("service", "URL Shortener API")
	})
}

func (suite *HandlersTestSuite) TestAPIHealth() {
	suite.Run("success", func() {
		suite.e.GET("/api/health").
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("status", "ok").
			HasValue("message", "URL Shortener API is running")
	})
}

func (suite *HandlersTestSuite) TestShortenURL() {
	const path = "/api/shorten"

	suite.Run("missing content type", func() {
		suite.e.POST(path).
			WithBytes([]byte(`{"url": "https://example.com"}`)).
			Expect().
			Status(http.StatusUnsupportedMediaType).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.UnsupportedMediaTypeResponse.Error)
	})

	suite.Run("wrong content type", func() {
		suite.e.POST(path).
			WithHeader("Content-Type", "text/plain").
			WithBytes([]byte(`{"url": "https://example.com"}`)).
			Expect().
			Status(http.StatusUnsupportedMediaType).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.UnsupportedMediaTypeResponse.Error)
	})

	suite.Run("empty request body", func() {
		suite.e.POST(path).
			WithHeader("Content-Type", "application/json").
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.MissingURLParamResponse.Error)
	})

	suite.Run("missing url parameter", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.MissingURLParamResponse.Error)
	})

	suite.Run("invalid url", func() {
		suite.e.POST(path).
			WithJSON(map[string]string{
				"url": "not_a_url",
			}).
			Expect().
			Status(http.StatusBadRequest).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.InvalidURLResponse.Error)
	})

	suite.Run("generation exhausted", func() {
		suite.urlSvcMock.
			On("ShortenURL", mock.Anything, "https://example.com").
			Times(1).
			Return(nil, service.ErrMaxAttemptsExceeded)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.CodeGenerationFailedResponse.Error)

		suite.urlSvcMock.AssertNumberOfCalls(suite.T(), "ShortenURL", 1)
	})

	suite.Run("server error", func() {
		suite.urlSvcMock.
			On("ShortenURL", mock.Anything, "https://example.com").
			Times(1).
			Return(nil, errors.New("unknown error"))

		suite.e.POST(path).
			WithJSON(map[string]string{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusInternalServerError).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.ServerErrorResponse.Error)
	})

	suite.Run("success", func() {
		suite.urlSvcMock.
			On("ShortenURL", mock.Anything, "https://example.com").
			Times(1).
			Return(&models.URL{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com",
				CreatedAt:   time.Now().UTC(),
			}, nil)

		suite.e.POST(path).
			WithJSON(map[string]string{
				"url": "https://example.com",
			}).
			Expect().
			Status(http.StatusCreated).
			HasContentType("application/json").
			JSON().Object().
			HasValue("short_code", "abc123").
			HasValue("short_url", "https://sho.rt/abc123")
	})
}

func (suite *HandlersTestSuite) TestRedirect() {
	suite.Run("unknown short code", func() {
		suite.urlSvcMock.
			On("ResolveShortCode", mock.Anything, "ZZZZZZ").
			Times(1).
			Return(nil, storage.ErrURLNotFound)

		suite.e.GET("/ZZZZZZ").
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.ShortCodeNotFoundResponse.Error)
	})

	suite.Run("success", func() {
		suite.urlSvcMock.
			On("ResolveShortCode", mock.Anything, "abc123").
			Times(1).
			Return(&models.URL{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com",
				Clicks:      1,
			}, nil)

		suite.e.GET("/abc123").
			WithRedirectPolicy(httpexpect.DontFollowRedirects).
			Expect().
			Status(http.StatusFound).
			Header("Location").IsEqual("https://example.com")
	})
}

func (suite *HandlersTestSuite) TestGetURLStats() {
	suite.Run("unknown short code", func() {
		suite.urlSvcMock.
			On("GetURLStats", mock.Anything, "ZZZZZZ").
			Times(1).
			Return(nil, storage.ErrURLNotFound)

		suite.e.GET("/api/stats/ZZZZZZ").
			Expect().
			Status(http.StatusNotFound).
			HasContentType("application/json").
			JSON().Object().
			HasValue("error", response.ShortCodeNotFoundResponse.Error)
	})

	suite.Run("success", func() {
		createdAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

		suite.urlSvcMock.
			On("GetURLStats", mock.Anything, "abc123").
			Times(1).
			Return(&models.URL{
				ShortCode:   "abc123",
				OriginalURL: "https://example.com",
				Clicks:      2,
				CreatedAt:   createdAt,
			}, nil)

		suite.e.GET("/api/stats/abc123").
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("url", "https://example.com").
			HasValue("clicks", 2).
			HasValue("created_at", "2025-03-01T12:00:00Z")
	})
}

func (suite *HandlersTestSuite) TestDumpURLs() {
	suite.Run("empty store", func() {
		suite.urlSvcMock.
			On("DumpURLs", mock.Anything).
			Times(1).
			Return(map[string]models.URL{}, nil)

		suite.e.GET("/api/debug/mappings").
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().IsEmpty()
	})

	suite.Run("success", func() {
		createdAt := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

		suite.urlSvcMock.
			On("DumpURLs", mock.Anything).
			Times(1).
			Return(map[string]models.URL{
				"abc123": {
					ShortCode:   "abc123",
					OriginalURL: "https://example.com",
					Clicks:      3,
					CreatedAt:   createdAt,
				},
			}, nil)

		suite.e.GET("/api/debug/mappings").
			Expect().
			Status(http.StatusOK).
			HasContentType("application/json").
			JSON().Object().
			HasValue("abc123", map[string]any{
				"url":        "https://example.com",
				"clicks":     3,
				"created_at": "2025-03-01T12:00:00Z",
			})
	})
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
