package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	applicationPort "github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/application/usecase"

	"github.com/dreschagin/syshealth/internal/application/dto"
	natsInfra "github.com/dreschagin/syshealth/internal/infrastructure/messaging/nats"
	"github.com/dreschagin/syshealth/internal/infrastructure/probe"

	"github.com/dreschagin/syshealth/pkg/config"
	"github.com/dreschagin/syshealth/pkg/logger"
)

const usageText = `Usage: appcheck [options]

HTTP application health checker: probes each target with retries, verifies
the status code and scans the body for critical keywords. Exit code is 0
when every application is UP and 1 otherwise.

Options:
  -u URL    check a single URL
  -f FILE   check targets from a JSON file ([{"url": ..., "name": ..., "method": ...}])
  -s FILE   save results to a JSON file
  -h        show this help
`

// appCheckSubject задает тему NATS для событий о недоступных приложениях
const appCheckSubject = "syshealth.appcheck"

var (
	styleUp   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10b981"))
	styleDown = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444"))
	styleHead = lipgloss.NewStyle().Bold(true)
)

type cliOptions struct {
	url      string
	file     string
	savePath string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Флаги
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(os.Stdout, usageText)
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "appcheck: %v\n\n", err)
		fmt.Fprint(os.Stderr, usageText)
		return 1
	}

	// 2. Конфигурация
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "appcheck: invalid configuration: %v\n", err)
		return 1
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))

	// 3. Цели проверки
	targets, err := resolveTargets(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "appcheck: %v\n", err)
		return 1
	}

	// 4. Dependency Injection

	prober := probe.NewHTTPProber(probe.Config{
		Timeout:          cfg.AppCheck.Timeout,
		RetryAttempts:    cfg.AppCheck.RetryAttempts,
		RetryDelay:       cfg.AppCheck.RetryDelay,
		CriticalKeywords: cfg.AppCheck.CriticalKeywords,
		SuccessKeywords:  cfg.AppCheck.SuccessKeywords,
	}, log)

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

	checkUC := usecase.NewCheckApplicationsUseCase(
		prober,
		usecase.CheckApplicationsConfig{
			ExpectedStatuses: cfg.AppCheck.ExpectedStatuses,
			RatePerSecond:    cfg.AppCheck.RatePerSecond,
			EventSubject:     appCheckSubject,
		},
		eventPublisher,
		log,
	)

	// 5. Запуск
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := checkUC.Execute(ctx, targets)
	if err != nil {
		log.Error("Application check failed", err)
		return 1
	}

	printSummary(os.Stdout, summary)

	if opts.savePath != "" {
		if err := saveResults(opts.savePath, summary); err != nil {
			log.Warn("Failed to save results", "path", opts.savePath, "error", err.Error())
		} else {
			fmt.Fprintf(os.Stdout, "Results saved to %s\n", opts.savePath)
		}
	}

	if summary.AllUp() {
		return 0
	}
	return 1
}

func parseFlags(args []string) (cliOptions, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("appcheck", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&opts.url, "u", "", "")
	fs.StringVar(&opts.file, "f", "", "")
	fs.StringVar(&opts.savePath, "s", "", "")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	return opts, nil
}

// resolveTargets определяет список целей: одиночный URL, файл со списком
// или набор по умолчанию
func resolveTargets(opts cliOptions) ([]applicationPort.AppTarget, error) {
	if opts.url != "" {
		return []applicationPort.AppTarget{{URL: opts.url}}, nil
	}

	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read targets file: %w", err)
		}

		var targets []applicationPort.AppTarget
		if err := json.Unmarshal(data, &targets); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", opts.file, err)
		}
		if len(targets) == 0 {
			return nil, fmt.Errorf("targets file %s is empty", opts.file)
		}

		return targets, nil
	}

	return []applicationPort.AppTarget{
		{URL: "http://localhost:8080", Name: "Local App"},
		{URL: "https://httpbin.org/status/200", Name: "HTTPBin Test"},
		{URL: "https://google.com", Name: "Google"},
	}, nil
}

func printSummary(out io.Writer, summary *dto.AppCheckSummaryDTO) {
	for _, r := range summary.Results {
		switch r.Status {
		case dto.AppStatusUp:
			fmt.Fprintln(out, styleUp.Render(fmt.Sprintf("UP     %s (status: %d, response time: %.2fms)",
				r.Name, r.StatusCode, r.ResponseTimeMS)))
		default:
			detail := r.Error
			if detail == "" {
				detail = fmt.Sprintf("status: %d", r.StatusCode)
			}
			fmt.Fprintln(out, styleDown.Render(fmt.Sprintf("DOWN   %s (%s)", r.Name, detail)))
		}
	}

	fmt.Fprintln(out, styleHead.Render("Health check summary"))
	fmt.Fprintf(out, "  total: %d  up: %d  down: %d  success rate: %.1f%%\n",
		summary.Total, summary.Up, summary.Down, summary.SuccessRate)

	if summary.Up > 0 && summary.AvgResponseMS > 0 {
		fmt.Fprintf(out, "  response times: avg %.2fms, min %.2fms, max %.2fms\n",
			summary.AvgResponseMS, summary.MinResponseMS, summary.MaxResponseMS)
	}
}

func saveResults(path string, summary *dto.AppCheckSummaryDTO) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
