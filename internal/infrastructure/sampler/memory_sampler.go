package sampler

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// MemorySampler снимает использование физической памяти
type MemorySampler struct{}

// NewMemorySampler создает новый Memory sampler
func NewMemorySampler() *MemorySampler {
	return &MemorySampler{}
}

// Sample возвращает использование памяти как used/total в процентах
func (s *MemorySampler) Sample(ctx context.Context) (valueobject.Reading, error) {
	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Memory, Err: err}
	}

	reading, err := valueobject.NewPercentReading(valueobject.Memory, vmStat.UsedPercent, time.Now())
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Memory, Err: err}
	}

	return reading, nil
}
