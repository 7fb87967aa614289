package sampler

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/dreschagin/syshealth/internal/application/port"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// DiskSampler снимает заполненность наблюдаемой файловой системы
type DiskSampler struct {
	path string
}

// NewDiskSampler создает новый Disk sampler для указанной точки монтирования
func NewDiskSampler(path string) *DiskSampler {
	if path == "" {
		path = "/"
	}
	return &DiskSampler{path: path}
}

// Sample возвращает заполненность файловой системы в процентах
func (s *DiskSampler) Sample(ctx context.Context) (valueobject.Reading, error) {
	usage, err := disk.UsageWithContext(ctx, s.path)
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Disk, Err: err}
	}

	reading, err := valueobject.NewPercentReading(valueobject.Disk, usage.UsedPercent, time.Now())
	if err != nil {
		return valueobject.Reading{}, &port.SamplingError{Kind: valueobject.Disk, Err: err}
	}

	return reading, nil
}
