// Package server exposes the feed over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
	"github.com/glabrego/wikiscroll/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Service is the application surface the handlers call.
type Service interface {
	Batch(ctx context.Context, size int) content.Result
	Random(ctx context.Context) content.Result
	Like(ctx context.Context, id int64) (app.LikeResponse, error)
	Likes(ctx context.Context, id int64) (app.LikeResponse, error)
	Popular(ctx context.Context, limit int) ([]content.Item, error)
}

type Server struct {
	svc    Service
	logger *log.Logger
	http   *http.Server
}

func New(addr string, svc Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{svc: svc, logger: logger.WithPrefix("http")}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /content/batch", s.handleBatch)
	mux.HandleFunc("GET /content/random", s.handleRandom)
	mux.HandleFunc("POST /content/like/{id}", s.handleLike)
	mux.HandleFunc("GET /content/like/{id}", s.handleLikes)
	mux.HandleFunc("GET /content/popular", s.handlePopular)
	mux.HandleFunc("GET /content/popular/chart", s.handlePopularChart)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return s.withRequestID(s.withAccessLog(s.withRecovery(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
