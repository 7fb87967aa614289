package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Application
	applicationPort "github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/application/usecase"

	// Domain
	"github.com/dreschagin/syshealth/internal/domain/repository"
	"github.com/dreschagin/syshealth/internal/domain/service"

	// Infrastructure
	redisCache "github.com/dreschagin/syshealth/internal/infrastructure/cache/redis"
	"github.com/dreschagin/syshealth/internal/infrastructure/inspector"
	natsInfra "github.com/dreschagin/syshealth/internal/infrastructure/messaging/nats"
	"github.com/dreschagin/syshealth/internal/infrastructure/persistence/postgres"
	"github.com/dreschagin/syshealth/internal/infrastructure/report"
	"github.com/dreschagin/syshealth/internal/infrastructure/sampler"

	// Shared
	"github.com/dreschagin/syshealth/pkg/config"
	"github.com/dreschagin/syshealth/pkg/logger"

	_ "github.com/lib/pq"
)

const usageText = `Usage: syshealth [options]

Single-host health snapshot: samples CPU, memory, disk and load average,
checks them against thresholds, ranks processes and detects zombies.
Exit code is 0 when everything is normal and 1 on any alert condition.

Options:
  -t, --threshold CPU:MEM:DISK  alert thresholds, integers in [0,100]
  -l, --log PATH                alert log path
      --watch                   repeat cycles at WATCH_INTERVAL until interrupted
  -h, --help                    show this help
`

type cliOptions struct {
	thresholdSpec string
	logPath       string
	watch         bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Разбираем флаги
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stdout, usageText)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "syshealth: %v\n\n", err)
		fmt.Fprint(os.Stderr, usageText)
		return 1
	}

	// 2. Загружаем конфигурацию и применяем переопределения из флагов
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "syshealth: invalid configuration: %v\n\n", err)
		fmt.Fprint(os.Stderr, usageText)
		return 1
	}

	if opts.thresholdSpec != "" {
		if err := cfg.ApplyThresholdSpec(opts.thresholdSpec); err != nil {
			fmt.Fprintf(os.Stderr, "syshealth: invalid threshold spec: %v\n\n", err)
			fmt.Fprint(os.Stderr, usageText)
			return 1
		}
	}
	if opts.logPath != "" {
		cfg.AlertLog.Path = opts.logPath
	}

	thresholds, err := cfg.BuildThresholds()
	if err != nil {
		fmt.Fprintf(os.Stderr, "syshealth: invalid configuration: %v\n\n", err)
		fmt.Fprint(os.Stderr, usageText)
		return 1
	}

	// 3. Инициализируем logger
	log := logger.New(os.Getenv("LOG_LEVEL"))

	// 4. Dependency Injection - Infrastructure Layer

	systemSampler := sampler.NewSystemSampler(cfg.Monitor.CPUSampleWindow, cfg.Monitor.DiskPath)
	processInspector := inspector.NewProcessInspector()
	alertSink := report.NewConsoleSink(os.Stdout, report.NewFileLog(cfg.AlertLog.Path))

	// 4.5. Опциональная история алертов в PostgreSQL
	var alertHistory repository.AlertRepository
	if cfg.History.Enabled {
		db, dbErr := sql.Open("postgres", cfg.History.DSN())
		if dbErr == nil {
			dbErr = db.Ping()
		}
		if dbErr != nil {
			log.Error("Failed to connect to alert history database", dbErr)
			return 1
		}
		alertHistory = postgres.NewPostgresAlertRepository(db)
		defer alertHistory.Close()
		log.Info("Alert history enabled", "database", cfg.History.Database)
	}

	// 4.6. Опциональная публикация событий в NATS
	var eventPublisher applicationPort.EventPublisher
	if cfg.NATS.Enabled {
		publisherImpl, natsErr := natsInfra.NewNATSPublisher(cfg.NATS.URL, log)
		if natsErr != nil {
			log.Warn("Failed to connect to NATS, continuing without event publishing", "error", natsErr.Error())
		} else {
			eventPublisher = publisherImpl
			defer eventPublisher.Close()
		}
	}

	// 4.7. Опциональный snapshot-кэш в Redis
	var snapshotCache applicationPort.SnapshotCache
	if cfg.Redis.Enabled {
		cacheImpl, redisErr := redisCache.NewSnapshotCache(
			cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if redisErr != nil {
			log.Warn("Failed to connect to Redis, continuing without snapshot cache", "error", redisErr.Error())
		} else {
			snapshotCache = cacheImpl
			defer snapshotCache.Close()
		}
	}

	// 5. Dependency Injection - Application Layer

	checkCycleUC := usecase.NewRunCheckCycleUseCase(
		systemSampler,
		processInspector,
		service.NewThresholdEvaluator(),
		alertSink,
		usecase.RunCheckCycleConfig{
			Thresholds:   thresholds,
			TopProcesses: cfg.Monitor.TopProcesses,
			Hostname:     cfg.Monitor.Hostname,
			EventSubject: cfg.NATS.Subject,
		},
		alertHistory,
		eventPublisher,
		snapshotCache,
		log,
	)

	// 6. Запуск: одиночный цикл или watch-режим
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !opts.watch {
		return runCycle(ctx, checkCycleUC, log)
	}

	return watch(ctx, checkCycleUC, cfg, log)
}

// runCycle выполняет один цикл и отображает итог в код завершения
func runCycle(ctx context.Context, uc *usecase.RunCheckCycleUseCase, log *logger.Logger) int {
	result, err := uc.Execute(ctx)
	if err != nil {
		var sampleErr *applicationPort.SamplingError
		if errors.As(err, &sampleErr) {
			log.Error("Metric source is unavailable, aborting cycle", sampleErr, "metric", sampleErr.Kind.String())
		} else {
			log.Error("Check cycle failed", err)
		}
		return 1
	}

	return result.ExitCode()
}

// watch повторяет циклы до сигнала остановки. Циклы не перекрываются:
// следующий стартует только после завершения предыдущего. Сигнал,
// пришедший во время цикла, не прерывает снятие показаний: остановка
// проверяется только между циклами, а код завершения берется из
// последнего завершенного цикла.
func watch(ctx context.Context, uc *usecase.RunCheckCycleUseCase, cfg *config.Config, log *logger.Logger) int {
	log.Info("Watch mode started", "interval", cfg.Monitor.WatchInterval.String())

	lastCode := 0
	for {
		lastCode = runCycle(context.WithoutCancel(ctx), uc, log)

		select {
		case <-ctx.Done():
			log.Info("Watch mode stopped")
			return lastCode
		case <-time.After(cfg.Monitor.WatchInterval):
		}
	}
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("syshealth", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.thresholdSpec, "t", "", "")
	fs.StringVar(&opts.thresholdSpec, "threshold", "", "")
	fs.StringVar(&opts.logPath, "l", "", "")
	fs.StringVar(&opts.logPath, "log", "", "")
	fs.BoolVar(&opts.watch, "watch", false, "")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	return opts, nil
}
