package probe

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/pkg/logger"
)

// maxBodyBytes ограничивает чтение тела ответа при поиске ключевых слов
const maxBodyBytes = 1 << 20

// HTTPProber выполняет пробы приложений с повторными попытками
// Реализует интерфейс port.AppProber
type HTTPProber struct {
	client           *http.Client
	retryAttempts    int
	retryDelay       time.Duration
	criticalKeywords []string
	successKeywords  []string
	logger           *logger.Logger
}

// Config содержит настройки prober'а
type Config struct {
	Timeout          time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	CriticalKeywords []string
	SuccessKeywords  []string
}

// NewHTTPProber создает новый prober
func NewHTTPProber(cfg Config, log *logger.Logger) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				// Проверяемые приложения часто живут за self-signed сертификатами
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		retryAttempts:    cfg.RetryAttempts,
		retryDelay:       cfg.RetryDelay,
		criticalKeywords: cfg.CriticalKeywords,
		successKeywords:  cfg.SuccessKeywords,
		logger:           log,
	}
}

// Probe проверяет одно приложение, повторяя попытки при сетевых ошибках.
// Ответ с любым кодом статуса считается успешной попыткой: классификацию
// кода выполняет вызывающий слой.
func (p *HTTPProber) Probe(ctx context.Context, target port.AppTarget) port.ProbeOutcome {
	var lastErr error

	for attempt := 1; attempt <= p.retryAttempts; attempt++ {
		outcome, err := p.attempt(ctx, target)
		if err == nil {
			return outcome
		}
		lastErr = err

		if attempt < p.retryAttempts {
			p.logger.Warn("Probe attempt failed, retrying",
				"target", target.URL, "attempt", attempt, "error", err.Error())

			select {
			case <-time.After(p.retryDelay):
			case <-ctx.Done():
				return port.ProbeOutcome{Err: ctx.Err()}
			}
		}
	}

	return port.ProbeOutcome{Err: lastErr}
}

func (p *HTTPProber) attempt(ctx context.Context, target port.AppTarget) (port.ProbeOutcome, error) {
	method := strings.ToUpper(target.Method)
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, target.URL, nil)
	if err != nil {
		return port.ProbeOutcome{}, err
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return port.ProbeOutcome{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return port.ProbeOutcome{}, err
	}
	elapsed := time.Since(start)

	content := strings.ToLower(string(body))

	return port.ProbeOutcome{
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
		HasCritical:  containsAny(content, p.criticalKeywords),
		HasSuccess:   containsAny(content, p.successKeywords),
	}, nil
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(content, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
