package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/dreschagin/syshealth/internal/application/dto"
	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/pkg/logger"
)

// CheckApplicationsUseCase проверяет доступность набора HTTP-приложений
// и строит сводный отчет
type CheckApplicationsUseCase struct {
	prober           port.AppProber
	limiter          *rate.Limiter
	expectedStatuses []int
	events           port.EventPublisher
	eventSubject     string
	logger           *logger.Logger
}

// CheckApplicationsConfig содержит настройки проверки приложений
type CheckApplicationsConfig struct {
	ExpectedStatuses []int
	RatePerSecond    float64
	EventSubject     string
}

// NewCheckApplicationsUseCase создает новый use case
func NewCheckApplicationsUseCase(
	prober port.AppProber,
	cfg CheckApplicationsConfig,
	events port.EventPublisher,
	logger *logger.Logger,
) *CheckApplicationsUseCase {
	return &CheckApplicationsUseCase{
		prober:           prober,
		limiter:          rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		expectedStatuses: cfg.ExpectedStatuses,
		events:           events,
		eventSubject:     cfg.EventSubject,
		logger:           logger,
	}
}

// Execute проверяет приложения по очереди, выдерживая лимит частоты проб
func (uc *CheckApplicationsUseCase) Execute(ctx context.Context, targets []port.AppTarget) (*dto.AppCheckSummaryDTO, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("no applications to check")
	}

	results := make([]dto.AppCheckResultDTO, 0, len(targets))

	for _, target := range targets {
		if err := uc.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("probe rate limiter: %w", err)
		}

		results = append(results, uc.checkOne(ctx, target))
	}

	summary := uc.buildSummary(results)

	if !summary.AllUp() && uc.events != nil {
		if err := uc.events.PublishEvent(ctx, uc.eventSubject, summary); err != nil {
			uc.logger.Warn("Failed to publish app check event", "error", err.Error())
		}
	}

	return summary, nil
}

// checkOne проверяет одно приложение и классифицирует результат.
// Приложение UP, если код статуса ожидаемый и в теле нет критических
// ключевых слов.
func (uc *CheckApplicationsUseCase) checkOne(ctx context.Context, target port.AppTarget) dto.AppCheckResultDTO {
	name := target.Name
	if name == "" {
		name = target.URL
	}

	uc.logger.Debug("Checking application", "name", name, "url", target.URL)

	outcome := uc.prober.Probe(ctx, target)

	result := dto.AppCheckResultDTO{
		Name:      name,
		URL:       target.URL,
		Timestamp: time.Now(),
	}

	if outcome.Err != nil {
		result.Status = dto.AppStatusDown
		result.Error = outcome.Err.Error()
		return result
	}

	result.StatusCode = outcome.StatusCode
	result.ResponseTimeMS = roundMS(outcome.ResponseTime)
	result.Content = &dto.ContentAnalysisDTO{
		HasCriticalKeywords: outcome.HasCritical,
		HasSuccessKeywords:  outcome.HasSuccess,
	}

	if uc.statusExpected(outcome.StatusCode) && !outcome.HasCritical {
		result.Status = dto.AppStatusUp
	} else {
		result.Status = dto.AppStatusDown
	}

	return result
}

func (uc *CheckApplicationsUseCase) statusExpected(code int) bool {
	for _, expected := range uc.expectedStatuses {
		if code == expected {
			return true
		}
	}
	return false
}

func (uc *CheckApplicationsUseCase) buildSummary(results []dto.AppCheckResultDTO) *dto.AppCheckSummaryDTO {
	summary := &dto.AppCheckSummaryDTO{
		RunID:   uuid.New().String(),
		Total:   len(results),
		Results: results,
	}

	var sum, fastest, slowest float64
	var timed int

	for _, r := range results {
		if r.Status == dto.AppStatusUp {
			summary.Up++
		} else {
			summary.Down++
		}

		if r.Status == dto.AppStatusUp && r.ResponseTimeMS > 0 {
			if timed == 0 || r.ResponseTimeMS < fastest {
				fastest = r.ResponseTimeMS
			}
			if r.ResponseTimeMS > slowest {
				slowest = r.ResponseTimeMS
			}
			sum += r.ResponseTimeMS
			timed++
		}
	}

	if summary.Total > 0 {
		summary.SuccessRate = float64(summary.Up) / float64(summary.Total) * 100
	}
	if timed > 0 {
		summary.AvgResponseMS = roundMS2(sum / float64(timed))
		summary.MinResponseMS = fastest
		summary.MaxResponseMS = slowest
	}

	return summary
}

// roundMS переводит длительность в миллисекунды с точностью до сотых
func roundMS(d time.Duration) float64 {
	return roundMS2(float64(d.Microseconds()) / 1000)
}

func roundMS2(ms float64) float64 {
	return float64(int(ms*100+0.5)) / 100
}
