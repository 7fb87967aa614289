package port

import (
	"context"
	"fmt"

	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// SamplingError означает, что источник метрики в ОС недоступен.
// Фатальна для цикла: частичный отчет не строится.
type SamplingError struct {
	Kind valueobject.MetricKind
	Err  error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("sampling %s: %v", e.Kind, e.Err)
}

func (e *SamplingError) Unwrap() error {
	return e.Err
}

// MetricSampler определяет интерфейс снятия показаний хоста (Port)
// Реализация в Infrastructure слое; в тестах подменяется моком
type MetricSampler interface {
	// SampleCPU возвращает загрузку CPU как 100 - idle%
	SampleCPU(ctx context.Context) (valueobject.Reading, error)

	// SampleMemory возвращает использование физической памяти в процентах
	SampleMemory(ctx context.Context) (valueobject.Reading, error)

	// SampleDisk возвращает заполненность наблюдаемой файловой системы
	SampleDisk(ctx context.Context) (valueobject.Reading, error)

	// SampleLoad возвращает load average 1/5/15 и число логических ядер
	SampleLoad(ctx context.Context) (valueobject.Reading, error)
}
