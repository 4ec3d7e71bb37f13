// reportcache consumes sale.recorded events and drops cached summary
// reports so the next report request sees the new sale.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/zibacafe/cafe-system/internal/config"
	kafkax "github.com/zibacafe/cafe-system/internal/kafka"
	"github.com/zibacafe/cafe-system/internal/ledger"
	"github.com/zibacafe/cafe-system/internal/redisx"
)

var log = logging.MustGetLogger("log")

func initLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

type invalidator struct {
	redis *redis.Client
}

func (s *invalidator) handleSaleRecorded(ctx context.Context, m kafkago.Message) error {
	var env ledger.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != ledger.EventSaleRecorded {
		return nil
	}

	// dedup by event id
	dkey := fmt.Sprintf(redisx.KeyDedup, "reportcache", env.EventID)
	if exists, _ := redisx.Exists(ctx, s.redis, dkey); exists {
		return nil
	}
	_ = s.redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	n, err := redisx.DeleteByPattern(ctx, s.redis, redisx.PatternSummaryReports)
	if err != nil {
		return err
	}
	log.Infof("sale %s recorded, dropped %d cached summaries", env.CorrelationID, n)
	return nil
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := initLogger(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	group := getenv("REPORTCACHE_GROUP", "reportcache-svc")
	workers := mustAtoi(os.Getenv("REPORTCACHE_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, ledger.TopicSaleRecorded, workers)

	svc := &invalidator{redis: rdb}

	go func() {
		log.Infof("reportcache consumer started: group=%s topic=%s workers=%d", group, ledger.TopicSaleRecorded, workers)
		if err := cons.Start(ctx, svc.handleSaleRecorded); err != nil {
			log.Errorf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Infof("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
