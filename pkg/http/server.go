package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/tdnavigator/pkg/http/router"
	"github.com/lintang-b-s/tdnavigator/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/tdnavigator/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type Server struct {
	Log *zap.Logger
	g   errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	routingService controllers.RoutingService,
) (*Server, error) {
	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	var limiter *rate.Limiter
	if useRateLimit {
		limiter = rate.NewLimiter(rate.Limit(viper.GetFloat64("RATE_LIMIT_RPS")), viper.GetInt("RATE_LIMIT_BURST"))
	}

	server := http_router.NewAPI(log)

	s.g.Go(func() error {
		return server.Run(
			ctx, config, log,
			limiter, routingService,
		)
	})

	return s, nil
}

// Wait blocks until the API stops and returns the error it stopped with.
func (s *Server) Wait() error {
	return s.g.Wait()
}

// GracefulShutdown blocks until SIGINT or SIGTERM arrives and returns it.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	return <-quit
}
