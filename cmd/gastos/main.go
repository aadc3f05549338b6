package main

import (
	"context"
	"errors"
	"os"

	"gastos/internal/cli"
	"gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/shell"
	"gastos/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Configuration validation failed", log.FieldError, err)
		return 1
	}
	logger := cli.SetupLogger(cfg, os.Stderr)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	res, err := cli.InitGateway(ctx, logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", log.FieldBackend, cfg.DataBackend, log.FieldError, err)
		return 1
	}
	if res.Cleanup != nil {
		defer func() {
			if err := res.Cleanup(); err != nil {
				logger.Warn("Storage cleanup failed", log.FieldError, err)
			}
		}()
	}

	publisher, closePublisher := cli.InitPublisher(logger, cfg)
	defer closePublisher()

	opts := []services.Option{}
	if publisher != nil {
		opts = append(opts, services.WithPublisher(publisher))
	}

	st := store.Open(ctx, res.Gateway, logger)
	svc := services.NewLedgerService(st, logger, opts...)

	logger.Info("Starting gastos", log.FieldBackend, cfg.DataBackend, log.FieldRecords, st.Len())
	if err := shell.New(svc, os.Stdin, os.Stdout, logger).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Shell stopped", log.FieldError, err)
		return 1
	}
	logger.Info("Stopped", log.FieldOperation, log.OpShutdown)
	return 0
}
