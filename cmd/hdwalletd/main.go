// Package main runs the HD wallet daemon: it follows a bitcoin node, keeps the wallet accounts
// in sync and serves them over REST and gRPC.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/transport"
	"github.com/goodnatureofminers/blockinsight7000-hdwallet/internal/wallet"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	WalletID         string        `long:"wallet-id" env:"HDWALLET_ID" description:"wallet identifier used for persistence and metrics" required:"true"`
	Network          model.Network `long:"network" env:"HDWALLET_NETWORK" description:"network name" default:"mainnet"`
	MasterKey        string        `long:"master-key" env:"HDWALLET_MASTER_KEY" description:"BIP32 extended private master key"`
	Seed             string        `long:"seed" env:"HDWALLET_SEED" description:"hex encoded seed, used when no master key is given"`
	Accounts         []string      `long:"account" env:"HDWALLET_ACCOUNTS" env-delim:"," description:"account names created when the wallet has none"`
	MinConfirmations int64         `long:"min-confirmations" env:"HDWALLET_MIN_CONFIRMATIONS" description:"confirmations before an output is available" default:"1"`
	StartHeight      int64         `long:"start-height" env:"HDWALLET_START_HEIGHT" description:"first block height scanned by a new wallet" default:"0"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"HDWALLET_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	RPCURL           string        `long:"rpc-url" env:"HDWALLET_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser          string        `long:"rpc-user" env:"HDWALLET_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword      string        `long:"rpc-password" env:"HDWALLET_RPC_PASSWORD" description:"Bitcoin RPC password"`
	FetchWorkers     int           `long:"fetch-workers" env:"HDWALLET_FETCH_WORKERS" description:"blocks fetched concurrently" default:"8"`
	BatchSize        int           `long:"batch-size" env:"HDWALLET_BATCH_SIZE" description:"blocks applied per follower iteration" default:"50"`
	GRPCAddr         string        `long:"grpc-addr" env:"HDWALLET_GRPC_ADDR" description:"gRPC listen address" default:":8000"`
	RESTAddr         string        `long:"rest-addr" env:"HDWALLET_REST_ADDR" description:"REST listen address" default:":8001"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("hd wallet daemon failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	params, err := cfg.Network.Params()
	if err != nil {
		return err
	}
	masterKey, err := loadMasterKey(cfg.MasterKey, cfg.Seed, params)
	if err != nil {
		return err
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	source := bitcoin.NewBlockSource(bitcoin.NewObservedClient(rpcClient, metrics.NewRPCClient(cfg.Network)))

	w, err := wallet.New(wallet.Config{
		ID:               cfg.WalletID,
		Network:          cfg.Network,
		MasterKey:        masterKey,
		MinConfirmations: cfg.MinConfirmations,
		StartHeight:      cfg.StartHeight,
		Logger:           logger.Named("wallet"),
		Metrics:          metrics.NewWallet(cfg.WalletID),
	})
	if err != nil {
		return fmt.Errorf("init wallet: %w", err)
	}
	if err := prepareWallet(ctx, w, repo, cfg.Accounts, logger); err != nil {
		return err
	}

	follower, err := wallet.NewFollower(
		w,
		source,
		repo,
		metrics.NewFollower(cfg.WalletID),
		logger.Named("follower"),
		wallet.WithWorkerCount(cfg.FetchWorkers),
		wallet.WithBatchSize(cfg.BatchSize),
	)
	if err != nil {
		return fmt.Errorf("init follower: %w", err)
	}

	grpcServer, healthServer := transport.NewGRPCServer(logger)
	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		logger.Info("starting gRPC server", zap.String("addr", cfg.GRPCAddr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server failed", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	handler, err := transport.NewHandler(w, logger.Named("rest")).Routes()
	if err != nil {
		return fmt.Errorf("init rest routes: %w", err)
	}
	startRESTServer(ctx, cfg.RESTAddr, handler, logger)

	transport.SetServing(healthServer, true)
	defer transport.SetServing(healthServer, false)

	if err := follower.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("follower stopped: %w", err)
	}
	w.LogBalances()
	return nil
}

// prepareWallet restores persisted accounts, creates the configured ones for a new wallet and
// tops up every margin before the follower starts.
func prepareWallet(ctx context.Context, w *wallet.Wallet, repo *clickhouse.Repository, names []string, logger *zap.Logger) error {
	snapshots, err := repo.LatestAccountSnapshots(ctx, w.ID())
	if err != nil {
		return fmt.Errorf("load account snapshots: %w", err)
	}
	history, err := repo.WalletTransactions(ctx, w.ID())
	if err != nil {
		return fmt.Errorf("load wallet history: %w", err)
	}
	if err := w.Restore(snapshots, history); err != nil {
		logger.Error("some accounts were not restored", zap.Error(err))
	}

	if len(w.Accounts()) == 0 {
		for _, name := range names {
			if _, err := w.CreateAccount(name); err != nil {
				return fmt.Errorf("create account %q: %w", name, err)
			}
		}
	}

	added, err := w.EnsureMargins()
	if err != nil {
		return fmt.Errorf("ensure margins: %w", err)
	}
	logger.Info("wallet ready",
		zap.Int("accounts", len(w.Accounts())),
		zap.Int("keys", w.KeyCount()),
		zap.Int("derived", added),
		zap.Int64("height", w.Height()))

	current, err := w.AccountSnapshots()
	if err != nil {
		return fmt.Errorf("snapshot accounts: %w", err)
	}
	if err := repo.InsertAccountSnapshots(ctx, current); err != nil {
		return fmt.Errorf("persist account snapshots: %w", err)
	}
	w.TakeChanged()
	w.LogBalances()
	return nil
}

func startRESTServer(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}

	go func() {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", zap.Error(err))
		}
	}()
}

func loadMasterKey(encoded, seedHex string, params *chaincfg.Params) (*hdkeychain.ExtendedKey, error) {
	switch {
	case encoded != "":
		key, err := hdkeychain.NewKeyFromString(encoded)
		if err != nil {
			return nil, fmt.Errorf("parse master key: %w", err)
		}
		return key, nil
	case seedHex != "":
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("decode seed: %w", err)
		}
		key, err := hdkeychain.NewMaster(seed, params)
		if err != nil {
			return nil, fmt.Errorf("derive master key: %w", err)
		}
		return key, nil
	default:
		return nil, errors.New("master key or seed is required")
	}
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}
	return rpcclient.New(cfg, nil)
}
