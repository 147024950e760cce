// Command bot polls a list of JSON-RPC endpoints and redraws a health table
// on stdout after every poll cycle.
//
// Usage:
//
//	bot                      # poll the targets in ./rpc.json every 30s
//	bot -c /etc/bot          # read config.yaml from /etc/bot
//	bot validate [file]      # check a targets file and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"rpc-speed-bot/internal/adapter/console"
	delivery "rpc-speed-bot/internal/adapter/delivery/http"
	handler "rpc-speed-bot/internal/adapter/handler/http"
	"rpc-speed-bot/internal/adapter/rpc"
	"rpc-speed-bot/internal/adapter/storage/memory"
	"rpc-speed-bot/internal/adapter/storage/targetfile"
	"rpc-speed-bot/internal/application"
	"rpc-speed-bot/internal/config"
	"rpc-speed-bot/internal/logger"
	"rpc-speed-bot/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigDir = "configs"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Compare liveness and speed of JSON-RPC endpoints",
		Long: `bot probes every endpoint listed in the targets file with
eth_getBlockByNumber("latest"), one at a time, and redraws a table with
success counts, success rate, response time and latest block number.

A missing or empty targets file is not an error: the bot exits quietly.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, _ := cmd.Flags().GetString("config")
			return run(cmd.Context(), configDir, cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringP("config", "c", defaultConfigDir, "directory containing config.yaml")
	cmd.AddCommand(newValidateCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// run wires the application and blocks until ctx is cancelled.
func run(ctx context.Context, configDir string, out io.Writer) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configDir, err)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	log = log.With(zap.String("runId", uuid.NewString()))
	defer func() { _ = log.Sync() }()
	log.Info("Logger initialized",
		zap.String("app", cfg.App.Name), zap.String("version", cfg.App.Version))

	targetRepo := targetfile.NewRepository(cfg.Monitor.TargetsFile, log)
	targets, err := targetRepo.LoadTargets(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Warn("Targets file not found, nothing to poll", zap.String("path", targetRepo.Path()))
			return nil
		}
		log.Error("Failed to load targets", zap.Error(err))
		return err
	}
	if len(targets) == 0 {
		log.Warn("Targets file lists no targets, nothing to poll", zap.String("path", targetRepo.Path()))
		return nil
	}

	snapshotRepo := memory.NewCacheRepository(cfg.Cache, log)
	prober := rpc.NewProber(cfg.Monitor.GetProbeTimeout(), log)
	reporter := console.NewTableReporter(out, cfg.Monitor.Title)
	monitor := application.NewMonitorService(targets, prober, reporter, snapshotRepo, log, cfg.Monitor)

	if cfg.Server.Enabled {
		srv := delivery.NewServer(handler.NewStatusHandler(monitor, log), log)
		addr := ":" + cfg.Server.Port
		go func() {
			log.Info("Starting status server", zap.String("address", addr))
			if err := srv.ListenAndServe(addr); err != nil {
				log.Error("Status server stopped", zap.Error(err))
			}
		}()
		defer func() {
			if err := srv.Shutdown(); err != nil {
				log.Warn("Status server shutdown failed", zap.Error(err))
			}
		}()
	}

	return monitor.Run(ctx)
}
