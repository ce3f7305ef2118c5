package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/codeclash-games/codeclash/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Server wraps a pre-bound listener so port errors surface at startup, not at
// serve time.
type Server struct {
	listener net.Listener
}

func New(port string) (*Server, error) {
	addr := fmt.Sprintf(":%s", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("creating listener on %s: %w", addr, err)
	}

	return &Server{listener: listener}, nil
}

func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// ServeHTTP serves until the context is cancelled, then drains with a grace
// period.
func (s *Server) ServeHTTP(ctx context.Context, srv *http.Server) error {
	logger := logging.FromContext(ctx).Named("server")

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()

		logger.Infof("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	group.Go(func() error {
		logger.Infof("listening on %s", s.Addr())
		if err := srv.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	return group.Wait()
}

func HandleHealth(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		select {
		case <-ctx.Done():
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}
	})
}
