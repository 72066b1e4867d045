package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lintang-b-s/tdnavigator/pkg"
	"github.com/lintang-b-s/tdnavigator/pkg/engine"
	"github.com/lintang-b-s/tdnavigator/pkg/logger"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "./data/", "directory holding config.yaml")
	source     = flag.String("source", "", "source vertex label")
	target     = flag.String("target", "", "target vertex label")
	offset     = flag.Int("offset", 0, "index of the first timestamp to route")
	limit      = flag.Int("limit", 0, "number of timestamps to route, 0 for all")
	outputFile = flag.String("output", "./data/routes_output.csv", "output csv")
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

	if *source == "" || *target == "" {
		logger.Fatal("both -source and -target are required")
	}

	routingEngine, err := engine.NewEngineFromFiles(
		viper.GetString("TOPOLOGY_FILE"),
		viper.GetString("DURATIONS_FILE"),
		viper.GetString("HISTORY_FILE"),
		engine.Config{
			DiscountMode:        pkg.GetDiscountMode(viper.GetString("DISCOUNT_MODE")),
			DiscountThreshold:   viper.GetFloat64("DISCOUNT_THRESHOLD"),
			SimilarityThreshold: viper.GetFloat64("SIMILARITY_THRESHOLD"),
			DiscountCacheSize:   viper.GetInt("DISCOUNT_CACHE_SIZE"),
			NumWorkers:          viper.GetInt("BATCH_WORKERS"),
		},
		logger,
	)
	if err != nil {
		panic(err)
	}

	timestamps := selectTimestamps(routingEngine.Timestamps(), *offset, *limit)
	logger.Sugar().Infof("routing %s -> %s for %d timestamps", *source, *target, len(timestamps))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results := make(chan engine.BatchResult, len(timestamps))
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(results)
		batch, err := routingEngine.ComputeRoutes(ctx, timestamps, *source, *target)
		for _, res := range batch {
			results <- res
		}
		return err
	})

	g.Go(func() error {
		return writeResults(*outputFile, results, logger)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}
	logger.Info("batch done", zap.String("output", *outputFile))
}

func selectTimestamps(all []string, offset, limit int) []string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(all) {
		offset = len(all)
	}
	end := len(all)
	if limit > 0 {
		end = util.MinInt(end, offset+limit)
	}
	return all[offset:end]
}

// writeResults writes one row per timestamp: timestamp, hour, cost, duration, similarity, then the route labels.
func writeResults(filename string, results <-chan engine.BatchResult, log *zap.Logger) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"timestamp", "hour", "cost", "duration", "similarity", "route"}); err != nil {
		return err
	}

	var (
		written, failed int
		similaritySum   float64
		validated       int
	)
	for res := range results {
		if res.Err != nil {
			failed++
			log.Warn("no route", zap.String("timestamp", res.Timestamp), zap.Error(res.Err))
			continue
		}

		similarity := ""
		if res.Validation != nil {
			similarity = strconv.FormatFloat(res.Validation.Score.Ratio, 'f', 4, 64)
			similaritySum += res.Validation.Score.Ratio
			validated++
		}

		record := []string{
			res.Timestamp,
			strconv.Itoa(res.Result.Hour),
			strconv.FormatFloat(res.Result.Route.Cost, 'f', -1, 64),
			strconv.FormatFloat(res.Result.Duration, 'f', 2, 64),
			similarity,
			strings.Join(res.Result.Route.Vertices, " "),
		}
		if err := w.Write(record); err != nil {
			return err
		}
		written++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d routes written, %d failed", written, failed)
	if validated > 0 {
		summary += fmt.Sprintf(", mean similarity %.4f over %d routes", similaritySum/float64(validated), validated)
	}
	log.Info(summary)
	return nil
}
