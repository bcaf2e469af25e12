package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mizpos/print-engine/internal/api"
	"github.com/mizpos/print-engine/internal/command"
	"github.com/mizpos/print-engine/internal/config"
	"github.com/mizpos/print-engine/internal/device"
	"github.com/mizpos/print-engine/internal/escpos"
)

// Version is set during build via ldflags.
var Version = "dev"

func main() {
	var configPath string
	var showVersion bool
	pflag.StringVarP(&configPath, "config", "c", "", "path to printd.yaml")
	pflag.BoolVar(&showVersion, "version", false, "print version and exit")
	pflag.Parse()

	if showVersion {
		fmt.Println("printd", Version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("printd starting",
		zap.String("version", Version),
		zap.String("addr", cfg.Addr()),
		zap.Int("default_paper", cfg.Device.DefaultPaper))

	manager, err := device.NewManager(cfg.Device.RegistryPath, logger)
	if err != nil {
		logger.Fatal("failed to create device manager", zap.Error(err))
	}

	locks := device.NewLockTable()
	defaultPaper := escpos.PaperWidthFromHint(cfg.Device.DefaultPaper)
	executor := command.NewExecutor(manager, locks, defaultPaper, logger)
	server := api.NewServer(manager, executor, logger)

	manager.OnAdded(server.BroadcastDeviceAdded)
	manager.OnRemoved(server.BroadcastDeviceRemoved)

	if cfg.Device.ScanOnStartup {
		devices, err := manager.Detect()
		if err != nil {
			logger.Warn("initial device scan failed", zap.Error(err))
		} else {
			logger.Info("initial device scan complete", zap.Int("devices", len(devices)))
		}
	}

	monitor := device.NewMonitor(manager, cfg.Device.ScanInterval, logger)
	monitor.Start()
	defer monitor.Stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(cfg.Addr())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("server error", zap.Error(err))
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
