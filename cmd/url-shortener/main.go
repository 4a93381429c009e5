package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/httplog/v2"
	"github.com/nkotelnikov/url-shortener/internal/config"
	"github.com/nkotelnikov/url-shortener/internal/service"
	"github.com/nkotelnikov/url-shortener/internal/storage/memory"
	"golang.org/x/sync/errgroup"

	myhttp "github.com/nkotelnikov/url-shortener/internal/api/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("url-shortener", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  cfg.Env == config.EnvDev,
		Tags: map[string]string{
			"env": cfg.Env,
		},
	})

	urlStore := memory.NewURLStore()
	gen := service.NewNanoIDGenerator(cfg.ShortCodeLength)
	urlSvc := service.NewURLService(urlStore, gen, cfg.MaxShortenAttempts)

	r := myhttp.NewRouter(logger, urlSvc, cfg.BaseURL)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", slog.String("addr", server.Addr))

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
