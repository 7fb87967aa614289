package sampler

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// CPUSampler снимает загрузку CPU
type CPUSampler struct {
	window time.Duration
}

// NewCPUSampler создает новый CPU sampler.
// window задает интервал измерения агрегированной загрузки.
func NewCPUSampler(window time.Duration) *CPUSampler {
	return &CPUSampler{window: window}
}

// Sample возвращает агрегированную загрузку CPU как 100 - idle%.
// Дробное значение сохраняется: усечение выполняет evaluator.
func (s *CPUSampler) Sample(ctx context.Context) (valueobject.Reading, error) {
	percentages, err := cpu.PercentWithContext(ctx, s.window, false)
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.CPU, Err: err}
	}

	if len(percentages) == 0 {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.CPU, Err: errNoCPUData}
	}

	reading, err := valueobject.NewPercentReading(valueobject.CPU, percentages[0], time.Now())
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.CPU, Err: err}
	}

	return reading, nil
}
