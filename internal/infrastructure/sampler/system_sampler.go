package sampler

import (
	"context"
	"errors"
	"time"

	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

var errNoCPUData = errors.New("no aggregate cpu data reported")

// SystemSampler объединяет сэмплеры всех категорий
// Реализует интерфейс port.MetricSampler
type SystemSampler struct {
	cpuSampler    *CPUSampler
	memorySampler *MemorySampler
	diskSampler   *DiskSampler
	loadSampler   *LoadSampler
}

// NewSystemSampler создает системный sampler
func NewSystemSampler(cpuWindow time.Duration, diskPath string) *SystemSampler {
	return &SystemSampler{
		cpuSampler:    NewCPUSampler(cpuWindow),
		memorySampler: NewMemorySampler(),
		diskSampler:   NewDiskSampler(diskPath),
		loadSampler:   NewLoadSampler(),
	}
}

// SampleCPU снимает загрузку CPU
func (s *SystemSampler) SampleCPU(ctx context.Context) (valueobject.Reading, error) {
	return s.cpuSampler.Sample(ctx)
}

// SampleMemory снимает использование памяти
func (s *SystemSampler) SampleMemory(ctx context.Context) (valueobject.Reading, error) {
	return s.memorySampler.Sample(ctx)
}

// SampleDisk снимает заполненность файловой системы
func (s *SystemSampler) SampleDisk(ctx context.Context) (valueobject.Reading, error) {
	return s.diskSampler.Sample(ctx)
}

// SampleLoad снимает load average
func (s *SystemSampler) SampleLoad(ctx context.Context) (valueobject.Reading, error) {
	return s.loadSampler.Sample(ctx)
}
