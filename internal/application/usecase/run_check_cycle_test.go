package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/repository"
	"github.com/dreschagin/syshealth/internal/domain/service"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
	"github.com/dreschagin/syshealth/pkg/logger"
)

type mockSampler struct {
	cpu, memory, disk float64
	load1             float64
	cores             int

	failKind valueobject.MetricKind
}

func (m *mockSampler) percent(kind valueobject.MetricKind, value float64) (valueobject.Reading, error) {
	if m.failKind == kind {
		return valueobject.Reading{}, &port.SamplingError{Kind: kind, Err: errors.New("source unavailable")}
	}
	return valueobject.NewPercentReading(kind, value, time.Now())
}

func (m *mockSampler) SampleCPU(_ context.Context) (valueobject.Reading, error) {
	return m.percent(valueobject.CPU, m.cpu)
}

func (m *mockSampler) SampleMemory(_ context.Context) (valueobject.Reading, error) {
	return m.percent(valueobject.Memory, m.memory)
}

func (m *mockSampler) SampleDisk(_ context.Context) (valueobject.Reading, error) {
	return m.percent(valueobject.Disk, m.disk)
}

func (m *mockSampler) SampleLoad(_ context.Context) (valueobject.Reading, error) {
	if m.failKind == valueobject.Load {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Load, Err: errors.New("source unavailable")}
	}
	return valueobject.NewLoadReading(valueobject.LoadAverages{One: m.load1, Five: 0.5, Fifteen: 0.5}, m.cores, time.Now())
}

type mockInspector struct {
	rows    []entity.ProcessUsage
	zombies []int32
	err     error
}

func (m *mockInspector) TopByCPU(_ context.Context, n int) ([]entity.ProcessUsage, error) {
	if m.err != nil {
		return nil, m.err
	}
	if n > len(m.rows) {
		n = len(m.rows)
	}
	return m.rows[:n], nil
}

func (m *mockInspector) TopByMemory(_ context.Context, n int) ([]entity.ProcessUsage, error) {
	return m.TopByCPU(nil, n)
}

func (m *mockInspector) Zombies(_ context.Context) ([]int32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.zombies, nil
}

type mockSink struct {
	verdicts []entity.Verdict
	tables   []string
	zombies  [][]int32
	warnings []string
}

func (m *mockSink) ReportVerdict(v entity.Verdict) { m.verdicts = append(m.verdicts, v) }
func (m *mockSink) ReportTopProcesses(title string, _ []entity.ProcessUsage) {
	m.tables = append(m.tables, title)
}
func (m *mockSink) ReportZombies(pids []int32) { m.zombies = append(m.zombies, pids) }
func (m *mockSink) Warn(msg string)            { m.warnings = append(m.warnings, msg) }

type mockHistory struct {
	saved []*entity.CycleResult
	err   error
}

func (m *mockHistory) SaveCycleAlerts(_ context.Context, r *entity.CycleResult) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

func (m *mockHistory) Close() error { return nil }

type publishedEvent struct {
	subject string
	event   interface{}
}

type mockPublisher struct {
	events []publishedEvent
}

func (m *mockPublisher) PublishEvent(_ context.Context, subject string, event interface{}) error {
	m.events = append(m.events, publishedEvent{subject: subject, event: event})
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func testThresholds(t *testing.T) valueobject.Thresholds {
	t.Helper()

	pair, err := valueobject.NewThreshold(60, 80)
	if err != nil {
		t.Fatalf("NewThreshold() error = %v", err)
	}
	ts, err := valueobject.NewThresholds(pair, pair, pair)
	if err != nil {
		t.Fatalf("NewThresholds() error = %v", err)
	}
	return ts
}

func newCycleUC(sampler port.MetricSampler, insp port.ProcessInspector, sink port.AlertSink, ts valueobject.Thresholds, history *mockHistory, events *mockPublisher) *RunCheckCycleUseCase {
	cfg := RunCheckCycleConfig{
		Thresholds:   ts,
		TopProcesses: 5,
		Hostname:     "testhost",
		EventSubject: "syshealth.cycle",
	}

	// типизированный nil в интерфейсе выглядел бы включенным потребителем
	var h repository.AlertRepository
	if history != nil {
		h = history
	}
	var p port.EventPublisher
	if events != nil {
		p = events
	}

	return NewRunCheckCycleUseCase(
		sampler, insp, service.NewThresholdEvaluator(), sink, cfg,
		h, p, nil,
		logger.NewWithWriter("error", io.Discard),
	)
}

func TestRunCheckCycleAllNormal(t *testing.T) {
	sampler := &mockSampler{cpu: 20, memory: 30, disk: 40, load1: 0.5, cores: 4}
	insp := &mockInspector{rows: []entity.ProcessUsage{{PID: 1, Command: "init"}}}
	sink := &mockSink{}

	uc := newCycleUC(sampler, insp, sink, testThresholds(t), nil, nil)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Overall() != valueobject.TierNormal {
		t.Errorf("Overall() = %s, want normal", result.Overall())
	}
	if result.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", result.ExitCode())
	}

	// Вердикты в фиксированном порядке обхода: cpu, memory, disk, load
	wantOrder := []valueobject.MetricKind{valueobject.CPU, valueobject.Memory, valueobject.Disk, valueobject.Load}
	if len(sink.verdicts) != len(wantOrder) {
		t.Fatalf("reported %d verdicts, want %d", len(sink.verdicts), len(wantOrder))
	}
	for i, kind := range wantOrder {
		if sink.verdicts[i].Reading().Kind() != kind {
			t.Errorf("verdict %d kind = %s, want %s", i, sink.verdicts[i].Reading().Kind(), kind)
		}
	}

	if len(sink.tables) != 2 {
		t.Errorf("reported %d process tables, want 2", len(sink.tables))
	}
	if len(sink.zombies) != 1 {
		t.Errorf("zombie report count = %d, want 1", len(sink.zombies))
	}
}

func TestRunCheckCycleCPUAlert(t *testing.T) {
	sampler := &mockSampler{cpu: 85.2, memory: 30, disk: 40, load1: 0.5, cores: 4}
	sink := &mockSink{}

	uc := newCycleUC(sampler, &mockInspector{}, sink, testThresholds(t), nil, nil)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Overall() != valueobject.TierAlert {
		t.Errorf("Overall() = %s, want alert", result.Overall())
	}
	if result.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", result.ExitCode())
	}

	cpuVerdict := sink.verdicts[0]
	if cpuVerdict.Tier() != valueobject.TierAlert {
		t.Errorf("cpu tier = %s, want alert", cpuVerdict.Tier())
	}
	if !strings.Contains(cpuVerdict.Message(), "85.2") {
		t.Errorf("alert message %q must contain the raw value 85.2", cpuVerdict.Message())
	}
}

func TestRunCheckCycleWarningKeepsExitZero(t *testing.T) {
	sampler := &mockSampler{cpu: 65, memory: 30, disk: 40, load1: 0.5, cores: 4}
	sink := &mockSink{}

	uc := newCycleUC(sampler, &mockInspector{}, sink, testThresholds(t), nil, nil)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if sink.verdicts[0].Tier() != valueobject.TierWarning {
		t.Errorf("cpu tier = %s, want warning", sink.verdicts[0].Tier())
	}
	if result.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0: warning is not an alert", result.ExitCode())
	}
}

func TestRunCheckCycleZombiesRaiseAlert(t *testing.T) {
	sampler := &mockSampler{cpu: 20, memory: 30, disk: 40, load1: 0.5, cores: 4}
	insp := &mockInspector{zombies: []int32{1337}}
	sink := &mockSink{}

	uc := newCycleUC(sampler, insp, sink, testThresholds(t), nil, nil)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Overall() != valueobject.TierAlert {
		t.Errorf("Overall() = %s, want alert on zombies", result.Overall())
	}
}

func TestRunCheckCycleSamplingErrorIsFatal(t *testing.T) {
	sampler := &mockSampler{cpu: 20, memory: 30, disk: 40, load1: 0.5, cores: 4, failKind: valueobject.Disk}
	sink := &mockSink{}

	uc := newCycleUC(sampler, &mockInspector{}, sink, testThresholds(t), nil, nil)

	_, err := uc.Execute(context.Background())
	if err == nil {
		t.Fatal("Execute() expected error")
	}

	var sampleErr *port.SamplingError
	if !errors.As(err, &sampleErr) {
		t.Fatalf("error = %v, want *port.SamplingError", err)
	}
	if sampleErr.Kind != valueobject.Disk {
		t.Errorf("failed kind = %s, want disk", sampleErr.Kind)
	}

	// Частичный отчет не строится
	if len(sink.verdicts) != 0 || len(sink.tables) != 0 || len(sink.zombies) != 0 {
		t.Error("no report must be produced when sampling fails")
	}
}

func TestRunCheckCycleFanOut(t *testing.T) {
	sampler := &mockSampler{cpu: 95, memory: 30, disk: 40, load1: 0.5, cores: 4}
	history := &mockHistory{}
	events := &mockPublisher{}

	uc := newCycleUC(sampler, &mockInspector{}, &mockSink{}, testThresholds(t), history, events)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(history.saved) != 1 || history.saved[0].ID() != result.ID() {
		t.Error("cycle alerts must be persisted to history")
	}
	if len(events.events) != 1 || events.events[0].subject != "syshealth.cycle" {
		t.Errorf("events = %+v, want one on syshealth.cycle", events.events)
	}
}

func TestRunCheckCycleHistoryFailureDoesNotChangeVerdict(t *testing.T) {
	sampler := &mockSampler{cpu: 95, memory: 30, disk: 40, load1: 0.5, cores: 4}
	history := &mockHistory{err: errors.New("db down")}

	uc := newCycleUC(sampler, &mockInspector{}, &mockSink{}, testThresholds(t), history, nil)

	result, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v: history failure must not fail the cycle", err)
	}
	if result.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", result.ExitCode())
	}
}
