package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"

	"github.com/zibacafe/cafe-system/internal/catalog"
	"github.com/zibacafe/cafe-system/internal/config"
	"github.com/zibacafe/cafe-system/internal/httpx"
	kafkax "github.com/zibacafe/cafe-system/internal/kafka"
	"github.com/zibacafe/cafe-system/internal/ledger"
	"github.com/zibacafe/cafe-system/internal/payments"
	"github.com/zibacafe/cafe-system/internal/postgres"
	"github.com/zibacafe/cafe-system/internal/redisx"
	"github.com/zibacafe/cafe-system/internal/reports"
	"github.com/zibacafe/cafe-system/internal/settings"
	"github.com/zibacafe/cafe-system/internal/users"
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

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := initLogger(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for recorded sales
	prod := kafkax.NewProducer(cfg.KafkaBrokers, ledger.TopicSaleRecorded, 1024)
	prod.Start(ctx)

	// Repos
	ledgerRepo := &ledger.Repo{DB: db}
	catalogRepo := &catalog.Repo{DB: db}
	settingsRepo := &settings.Repo{DB: db, Redis: rdb}
	usersRepo := &users.Repo{DB: db}

	if err := catalogRepo.Seed(ctx); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	// Handlers
	router := httpx.NewRouter()
	(&httpx.ReportsHandler{
		Ledger:     ledgerRepo,
		Forecaster: &reports.Forecaster{Ledger: ledgerRepo},
		Redis:      rdb,
	}).Register(router)
	(&httpx.SalesHandler{
		Repo:     ledgerRepo,
		Producer: prod,
		Service:  cfg.ServiceName,
	}).Register(router)
	(&httpx.ProductsHandler{Repo: catalogRepo}).Register(router)
	(&httpx.SettingsHandler{Repo: settingsRepo}).Register(router)
	(&httpx.UsersHandler{
		Repo:   usersRepo,
		Tokens: &users.TokenIssuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL},
	}).Register(router)
	(&httpx.PaymentsHandler{
		Settings: settingsRepo,
		Client:   payments.NewClient(cfg.MercadoPagoBaseURL),
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Infof("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Infof("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}
