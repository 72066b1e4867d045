package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/tdnavigator/pkg"
	"github.com/lintang-b-s/tdnavigator/pkg/engine"
	"github.com/lintang-b-s/tdnavigator/pkg/http"
	"github.com/lintang-b-s/tdnavigator/pkg/http/usecases"
	"github.com/lintang-b-s/tdnavigator/pkg/logger"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath   = flag.String("config", "./data/", "directory holding config.yaml")
	useRateLimit = flag.Bool("rate_limit", false, "limit requests per second to RATE_LIMIT_RPS")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(*configPath); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	routingEngine, err := engine.NewEngineFromFiles(
		viper.GetString("TOPOLOGY_FILE"),
		viper.GetString("DURATIONS_FILE"),
		viper.GetString("HISTORY_FILE"),
		engineConfig(),
		logger,
	)
	if err != nil {
		panic(err)
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine)
	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx, logger, *useRateLimit, routingService)

	go func() {
		if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("API stopped", zap.Error(err))
		}
	}()

	signal := http.GracefulShutdown()

	cleanup()
	_ = api.Wait()
	logger.Info("tdnavigator Routing Engine Server Stopped", zap.String("signal", signal.String()))
}

func engineConfig() engine.Config {
	return engine.Config{
		DiscountMode:        pkg.GetDiscountMode(viper.GetString("DISCOUNT_MODE")),
		DiscountThreshold:   viper.GetFloat64("DISCOUNT_THRESHOLD"),
		SimilarityThreshold: viper.GetFloat64("SIMILARITY_THRESHOLD"),
		DiscountCacheSize:   viper.GetInt("DISCOUNT_CACHE_SIZE"),
		NumWorkers:          viper.GetInt("BATCH_WORKERS"),
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
