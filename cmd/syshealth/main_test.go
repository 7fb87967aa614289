package main

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/application/usecase"
	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/service"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
	"github.com/dreschagin/syshealth/pkg/config"
	"github.com/dreschagin/syshealth/pkg/logger"
)

// stubSampler возвращает фиксированные показания. Отмененный контекст
// дает SamplingError, как у настоящего сэмплера.
type stubSampler struct {
	percent  float64
	cpuCalls int
	onCPU    func()
}

func (s *stubSampler) SampleCPU(ctx context.Context) (valueobject.Reading, error) {
	s.cpuCalls++
	if s.onCPU != nil {
		s.onCPU()
	}
	return s.sample(ctx, valueobject.CPU)
}

func (s *stubSampler) SampleMemory(ctx context.Context) (valueobject.Reading, error) {
	return s.sample(ctx, valueobject.Memory)
}

func (s *stubSampler) SampleDisk(ctx context.Context) (valueobject.Reading, error) {
	return s.sample(ctx, valueobject.Disk)
}

func (s *stubSampler) SampleLoad(ctx context.Context) (valueobject.Reading, error) {
	if err := ctx.Err(); err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Load, Err: err}
	}
	return valueobject.NewLoadReading(valueobject.LoadAverages{One: 0.5, Five: 0.5, Fifteen: 0.5}, 4, time.Now())
}

func (s *stubSampler) sample(ctx context.Context, kind valueobject.MetricKind) (valueobject.Reading, error) {
	if err := ctx.Err(); err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: kind, Err: err}
	}
	return valueobject.NewPercentReading(kind, s.percent, time.Now())
}

type stubInspector struct{}

func (si *stubInspector) TopByCPU(ctx context.Context, n int) ([]entity.ProcessUsage, error) {
	return nil, nil
}

func (si *stubInspector) TopByMemory(ctx context.Context, n int) ([]entity.ProcessUsage, error) {
	return nil, nil
}

func (si *stubInspector) Zombies(ctx context.Context) ([]int32, error) {
	return nil, nil
}

type stubSink struct {
	verdicts int
}

func (s *stubSink) ReportVerdict(entity.Verdict) { s.verdicts++ }

func (s *stubSink) ReportTopProcesses(string, []entity.ProcessUsage) {}

func (s *stubSink) ReportZombies([]int32) {}

func (s *stubSink) Warn(string) {}

func newWatchFixture(t *testing.T, sampler *stubSampler, sink *stubSink) (*usecase.RunCheckCycleUseCase, *config.Config, *logger.Logger) {
	t.Helper()

	threshold, err := valueobject.NewThreshold(60, 80)
	if err != nil {
		t.Fatalf("NewThreshold() error = %v", err)
	}
	thresholds, err := valueobject.NewThresholds(threshold, threshold, threshold)
	if err != nil {
		t.Fatalf("NewThresholds() error = %v", err)
	}

	log := logger.NewWithWriter("error", io.Discard)

	uc := usecase.NewRunCheckCycleUseCase(
		sampler,
		&stubInspector{},
		service.NewThresholdEvaluator(),
		sink,
		usecase.RunCheckCycleConfig{
			Thresholds:   thresholds,
			TopProcesses: 5,
			Hostname:     "test-host",
		},
		nil,
		nil,
		nil,
		log,
	)

	cfg := &config.Config{
		Monitor: config.MonitorConfig{WatchInterval: time.Millisecond},
	}

	return uc, cfg, log
}

func TestWatchSignalMidCycleLetsCycleFinish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// остановка приходит в середине первого цикла
	sampler := &stubSampler{percent: 30, onCPU: cancel}
	sink := &stubSink{}
	uc, cfg, log := newWatchFixture(t, sampler, sink)

	code := watch(ctx, uc, cfg, log)

	if code != 0 {
		t.Errorf("watch() = %d, want 0: completed normal cycle must win over the stop signal", code)
	}
	if sink.verdicts != 4 {
		t.Errorf("reported verdicts = %d, want 4: the in-flight cycle must run to completion", sink.verdicts)
	}
	if sampler.cpuCalls != 1 {
		t.Errorf("cycles started = %d, want 1: no new cycle after the stop signal", sampler.cpuCalls)
	}
}

func TestWatchKeepsAlertCodeOfLastCompletedCycle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sampler := &stubSampler{percent: 95, onCPU: cancel}
	sink := &stubSink{}
	uc, cfg, log := newWatchFixture(t, sampler, sink)

	if code := watch(ctx, uc, cfg, log); code != 1 {
		t.Errorf("watch() = %d, want 1: last completed cycle was an alert", code)
	}
	if sink.verdicts != 4 {
		t.Errorf("reported verdicts = %d, want 4", sink.verdicts)
	}
}

func TestWatchStopsWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sampler := &stubSampler{percent: 30}
	sink := &stubSink{}
	uc, cfg, log := newWatchFixture(t, sampler, sink)

	// уже отмененный контекст: один полный цикл и остановка
	if code := watch(ctx, uc, cfg, log); code != 0 {
		t.Errorf("watch() = %d, want 0", code)
	}
	if sampler.cpuCalls != 1 {
		t.Errorf("cycles started = %d, want 1", sampler.cpuCalls)
	}
}
