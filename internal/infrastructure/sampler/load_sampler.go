package sampler

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// LoadSampler снимает load average и число логических ядер
type LoadSampler struct{}

// NewLoadSampler создает новый Load sampler
func NewLoadSampler() *LoadSampler {
	return &LoadSampler{}
}

// Sample возвращает load average 1/5/15 вместе с числом ядер хоста.
// Число ядер нужно evaluator'у: load сравнивается именно с ним.
func (s *LoadSampler) Sample(ctx context.Context) (valueobject.Reading, error) {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Load, Err: err}
	}

	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Load, Err: err}
	}

	reading, err := valueobject.NewLoadReading(valueobject.LoadAverages{
		One:     avg.Load1,
		Five:    avg.Load5,
		Fifteen: avg.Load15,
	}, cores, time.Now())
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Load, Err: err}
	}

	return reading, nil
}
