package usecase

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/dreschagin/syshealth/internal/application/dto"
	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/pkg/logger"
)

type mockProber struct {
	outcomes map[string]port.ProbeOutcome
	probed   []string
}

func (m *mockProber) Probe(_ context.Context, target port.AppTarget) port.ProbeOutcome {
	m.probed = append(m.probed, target.URL)
	return m.outcomes[target.URL]
}

func newAppCheckUC(prober port.AppProber, events port.EventPublisher) *CheckApplicationsUseCase {
	return NewCheckApplicationsUseCase(
		prober,
		CheckApplicationsConfig{
			ExpectedStatuses: []int{200, 201, 202, 204},
			RatePerSecond:    1000, // тесты не должны ждать лимитер
			EventSubject:     "syshealth.appcheck",
		},
		events,
		logger.NewWithWriter("error", io.Discard),
	)
}

func TestCheckApplicationsClassification(t *testing.T) {
	prober := &mockProber{outcomes: map[string]port.ProbeOutcome{
		"http://up.example":       {StatusCode: 200, ResponseTime: 120 * time.Millisecond, HasSuccess: true},
		"http://no-content":       {StatusCode: 204, ResponseTime: 10 * time.Millisecond},
		"http://bad-status":       {StatusCode: 503, ResponseTime: 5 * time.Millisecond},
		"http://critical-body":    {StatusCode: 200, ResponseTime: 30 * time.Millisecond, HasCritical: true},
		"http://unreachable.host": {Err: errors.New("connection refused")},
	}}

	uc := newAppCheckUC(prober, nil)

	summary, err := uc.Execute(context.Background(), []port.AppTarget{
		{URL: "http://up.example", Name: "Up App"},
		{URL: "http://no-content"},
		{URL: "http://bad-status"},
		{URL: "http://critical-body"},
		{URL: "http://unreachable.host"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantStatus := map[string]string{
		"http://up.example":       dto.AppStatusUp,
		"http://no-content":       dto.AppStatusUp,
		"http://bad-status":       dto.AppStatusDown,
		"http://critical-body":    dto.AppStatusDown,
		"http://unreachable.host": dto.AppStatusDown,
	}

	for _, r := range summary.Results {
		if r.Status != wantStatus[r.URL] {
			t.Errorf("%s status = %s, want %s", r.URL, r.Status, wantStatus[r.URL])
		}
	}

	if summary.Up != 2 || summary.Down != 3 {
		t.Errorf("up/down = %d/%d, want 2/3", summary.Up, summary.Down)
	}
	if summary.SuccessRate != 40 {
		t.Errorf("SuccessRate = %.1f, want 40.0", summary.SuccessRate)
	}
}

func TestCheckApplicationsNameDefaultsToURL(t *testing.T) {
	prober := &mockProber{outcomes: map[string]port.ProbeOutcome{
		"http://unnamed": {StatusCode: 200},
	}}

	uc := newAppCheckUC(prober, nil)

	summary, err := uc.Execute(context.Background(), []port.AppTarget{{URL: "http://unnamed"}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if summary.Results[0].Name != "http://unnamed" {
		t.Errorf("Name = %q, want the URL", summary.Results[0].Name)
	}
}

func TestCheckApplicationsResponseTimeStats(t *testing.T) {
	prober := &mockProber{outcomes: map[string]port.ProbeOutcome{
		"http://fast":   {StatusCode: 200, ResponseTime: 100 * time.Millisecond},
		"http://slow":   {StatusCode: 200, ResponseTime: 300 * time.Millisecond},
		"http://broken": {Err: errors.New("timeout")},
	}}

	uc := newAppCheckUC(prober, nil)

	summary, err := uc.Execute(context.Background(), []port.AppTarget{
		{URL: "http://fast"}, {URL: "http://slow"}, {URL: "http://broken"},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	// Статистика только по UP-приложениям
	if summary.MinResponseMS != 100 {
		t.Errorf("MinResponseMS = %.2f, want 100", summary.MinResponseMS)
	}
	if summary.MaxResponseMS != 300 {
		t.Errorf("MaxResponseMS = %.2f, want 300", summary.MaxResponseMS)
	}
	if summary.AvgResponseMS != 200 {
		t.Errorf("AvgResponseMS = %.2f, want 200", summary.AvgResponseMS)
	}
}

func TestCheckApplicationsPublishesOnDown(t *testing.T) {
	prober := &mockProber{outcomes: map[string]port.ProbeOutcome{
		"http://broken": {Err: errors.New("refused")},
	}}
	events := &mockPublisher{}

	uc := newAppCheckUC(prober, events)

	if _, err := uc.Execute(context.Background(), []port.AppTarget{{URL: "http://broken"}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(events.events) != 1 || events.events[0].subject != "syshealth.appcheck" {
		t.Errorf("events = %+v, want one on syshealth.appcheck", events.events)
	}
}

func TestCheckApplicationsNoPublishWhenAllUp(t *testing.T) {
	prober := &mockProber{outcomes: map[string]port.ProbeOutcome{
		"http://up": {StatusCode: 200},
	}}
	events := &mockPublisher{}

	uc := newAppCheckUC(prober, events)

	if _, err := uc.Execute(context.Background(), []port.AppTarget{{URL: "http://up"}}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(events.events) != 0 {
		t.Errorf("events = %+v, want none when all applications are up", events.events)
	}
}

func TestCheckApplicationsRejectsEmptyTargets(t *testing.T) {
	uc := newAppCheckUC(&mockProber{}, nil)

	if _, err := uc.Execute(context.Background(), nil); err == nil {
		t.Error("Execute() expected error for empty target list")
	}
}
