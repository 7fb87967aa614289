package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/dreschagin/syshealth/internal/application/dto"
	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/repository"
	"github.com/dreschagin/syshealth/internal/domain/service"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
	"github.com/dreschagin/syshealth/pkg/logger"
)

// RunCheckCycleUseCase выполняет один полный цикл проверки:
// снятие показаний, оценка, обзор процессов, отчет, агрегация итога.
// Шаги строго последовательны, возвратов и повторов нет.
type RunCheckCycleUseCase struct {
	sampler    port.MetricSampler
	inspector  port.ProcessInspector
	evaluator  *service.ThresholdEvaluator
	sink       port.AlertSink
	thresholds valueobject.Thresholds
	topN       int
	hostname   string

	// опциональные потребители результата: nil означает выключено
	history      repository.AlertRepository
	events       port.EventPublisher
	eventSubject string
	cache        port.SnapshotCache

	logger *logger.Logger
}

// RunCheckCycleConfig содержит настройки цикла
type RunCheckCycleConfig struct {
	Thresholds   valueobject.Thresholds
	TopProcesses int
	Hostname     string
	EventSubject string
}

// NewRunCheckCycleUseCase создает новый use case
func NewRunCheckCycleUseCase(
	sampler port.MetricSampler,
	inspector port.ProcessInspector,
	evaluator *service.ThresholdEvaluator,
	sink port.AlertSink,
	cfg RunCheckCycleConfig,
	history repository.AlertRepository,
	events port.EventPublisher,
	cache port.SnapshotCache,
	logger *logger.Logger,
) *RunCheckCycleUseCase {
	return &RunCheckCycleUseCase{
		sampler:      sampler,
		inspector:    inspector,
		evaluator:    evaluator,
		sink:         sink,
		thresholds:   cfg.Thresholds,
		topN:         cfg.TopProcesses,
		hostname:     cfg.Hostname,
		history:      history,
		events:       events,
		eventSubject: cfg.EventSubject,
		cache:        cache,
		logger:       logger,
	}
}

// Execute выполняет цикл. Любая ошибка снятия показаний фатальна:
// частичный отчет не строится, ошибка уходит вызывающему.
func (uc *RunCheckCycleUseCase) Execute(ctx context.Context) (*entity.CycleResult, error) {
	startedAt := time.Now()

	// 1. Снятие показаний в фиксированном порядке: cpu, memory, disk, load
	uc.logger.Debug("Sampling host metrics")

	readings := make([]valueobject.Reading, 0, 4)
	for _, sample := range []func(context.Context) (valueobject.Reading, error){
		uc.sampler.SampleCPU,
		uc.sampler.SampleMemory,
		uc.sampler.SampleDisk,
		uc.sampler.SampleLoad,
	} {
		reading, err := sample(ctx)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}

	// 2. Оценка показаний по порогам
	verdicts := make([]entity.Verdict, 0, len(readings))
	for _, reading := range readings {
		verdict, err := uc.evaluator.Evaluate(reading, uc.thresholds)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %s reading: %w", reading.Kind(), err)
		}
		verdicts = append(verdicts, verdict)
	}

	// 2а. Обзор процессов: не зависит от вердиктов по метрикам
	topCPU, err := uc.inspector.TopByCPU(ctx, uc.topN)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect processes: %w", err)
	}

	topMemory, err := uc.inspector.TopByMemory(ctx, uc.topN)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect processes: %w", err)
	}

	zombies, err := uc.inspector.Zombies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect processes: %w", err)
	}

	// 3. Отчет
	for _, verdict := range verdicts {
		uc.sink.ReportVerdict(verdict)
	}
	uc.sink.ReportTopProcesses(fmt.Sprintf("Top %d processes by CPU", uc.topN), topCPU)
	uc.sink.ReportTopProcesses(fmt.Sprintf("Top %d processes by memory", uc.topN), topMemory)
	uc.sink.ReportZombies(zombies)

	// 4. Агрегация итога
	result := entity.NewCycleResult(verdicts, zombies, topCPU, topMemory, startedAt, time.Now())

	uc.logger.Debug("Check cycle finished",
		"cycle_id", result.ID(),
		"overall", result.Overall().String(),
		"duration", result.FinishedAt().Sub(result.StartedAt()).String(),
	)

	uc.fanOut(ctx, result)

	return result, nil
}

// fanOut передает результат опциональным потребителям.
// Их сбои не меняют итог цикла: только предупреждение в лог.
func (uc *RunCheckCycleUseCase) fanOut(ctx context.Context, result *entity.CycleResult) {
	var report *dto.CycleReportDTO

	if uc.history != nil {
		if err := uc.history.SaveCycleAlerts(ctx, result); err != nil {
			uc.logger.Warn("Failed to persist alert history", "error", err.Error())
		}
	}

	if uc.events != nil {
		report = dto.NewCycleReportDTO(result, uc.hostname)
		if err := uc.events.PublishEvent(ctx, uc.eventSubject, report); err != nil {
			uc.logger.Warn("Failed to publish cycle event", "error", err.Error())
		}
	}

	if uc.cache != nil {
		if report == nil {
			report = dto.NewCycleReportDTO(result, uc.hostname)
		}
		if err := uc.cache.StoreLatest(ctx, report); err != nil {
			uc.logger.Warn("Failed to cache latest snapshot", "error", err.Error())
		}
	}
}
