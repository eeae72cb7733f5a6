package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/yangcoin/bitcore-node/internal/clock"
	"github.com/yangcoin/bitcore-node/internal/events"
	"github.com/yangcoin/bitcore-node/internal/metrics"
	"github.com/yangcoin/bitcore-node/internal/model"
	"github.com/yangcoin/bitcore-node/internal/netmon"
	"github.com/yangcoin/bitcore-node/internal/node"
	"github.com/yangcoin/bitcore-node/internal/repository/clickhouse"
	"github.com/yangcoin/bitcore-node/internal/service"
	"go.uber.org/zap"
)

const (
	storageConnectAttempts = 10
	storageConnectBackoff  = 3 * time.Second
)

var config struct {
	Network       string `long:"network" env:"BITCORE_NODE_NETWORK" default:"mainnet" description:"network (mainnet, testnet3, regtest)"`
	RPCHost       string `long:"rpc-host" env:"BITCORE_NODE_RPC_HOST" default:"localhost:8332" description:"trusted node rpc host:port"`
	RPCUser       string `long:"rpc-user" env:"BITCORE_NODE_RPC_USER" description:"trusted node rpc user"`
	RPCPass       string `long:"rpc-pass" env:"BITCORE_NODE_RPC_PASS" description:"trusted node rpc password"`
	ClickhouseDSN string `long:"clickhouse-dsn" env:"BITCORE_NODE_CLICKHOUSE_DSN" default:"clickhouse://localhost:9000/default" description:"clickhouse dsn"`
	MetricsAddr   string `long:"metrics-addr" env:"BITCORE_NODE_METRICS_ADDR" default:":8002" description:"metrics http addr"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	params, network, err := chainParams(config.Network)
	if err != nil {
		logger.Fatal("Unknown network", zap.Error(err))
	}
	logger = logger.With(zap.String("network", string(network)))

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         config.RPCHost,
		User:         config.RPCUser,
		Pass:         config.RPCPass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		logger.Fatal("Create rpc client", zap.Error(err))
	}
	defer rpc.Shutdown()

	repo, err := connectRepository(ctx, logger, config.ClickhouseDSN)
	if err != nil {
		logger.Fatal("Create clickhouse repository", zap.Error(err))
	}

	transactions, err := service.NewTransactionService(repo, network, logger)
	if err != nil {
		logger.Fatal("Create transaction service", zap.Error(err))
	}
	addresses, err := service.NewAddressService(repo, params, network, logger)
	if err != nil {
		logger.Fatal("Create address service", zap.Error(err))
	}
	blocks, err := service.NewBlockService(repo, transactions, addresses, network, logger)
	if err != nil {
		logger.Fatal("Create block service", zap.Error(err))
	}

	bus := events.New(logger.Named("bus"), 0)
	monitor, err := netmon.NewMonitor(
		netmon.NewObservedClient(rpc, metrics.NewMonitor(network)),
		bus,
		metrics.NewMonitor(network),
		logger,
	)
	if err != nil {
		logger.Fatal("Create network monitor", zap.Error(err))
	}

	syncNode, err := node.New(bus, monitor, blocks, metrics.NewSyncNode(network), params.GenesisBlock, logger)
	if err != nil {
		logger.Fatal("Create sync node", zap.Error(err))
	}

	go serveMetrics(ctx, logger)

	logger.Info("Starting bitcore node")
	if err := syncNode.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Node stopped with fatal error", zap.Error(err))
	}
	logger.Info("Node stopped")
}

// connectRepository retries the initial ping so the node survives ClickHouse
// coming up after it.
func connectRepository(ctx context.Context, logger *zap.Logger, dsn string) (*clickhouse.Repository, error) {
	repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = repo.Ping(ctx)
		if err == nil {
			return repo, nil
		}
		if attempt >= storageConnectAttempts {
			return nil, fmt.Errorf("ping clickhouse after %d attempts: %w", attempt, err)
		}
		logger.Warn("Clickhouse not ready, retrying",
			zap.Int("attempt", attempt), zap.Error(err))
		if sleepErr := clock.SleepWithContext(ctx, storageConnectBackoff); sleepErr != nil {
			return nil, sleepErr
		}
	}
}

func serveMetrics(ctx context.Context, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := &http.Server{
		Addr:              config.MetricsAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the metrics server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("Starting metrics server", zap.String("addr", config.MetricsAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}

func chainParams(network string) (*chaincfg.Params, model.Network, error) {
	switch network {
	case "mainnet":
		return &chaincfg.MainNetParams, model.Mainnet, nil
	case "testnet3":
		return &chaincfg.TestNet3Params, model.Testnet, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, model.Regtest, nil
	default:
		return nil, "", fmt.Errorf("unsupported network %q", network)
	}
}
