package inspector

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// ProcessInspector перечисляет таблицу процессов через gopsutil
// Реализует интерфейс port.ProcessInspector
type ProcessInspector struct{}

// NewProcessInspector создает новый inspector
func NewProcessInspector() *ProcessInspector {
	return &ProcessInspector{}
}

// TopByCPU возвращает не более n процессов по убыванию потребления CPU
func (pi *ProcessInspector) TopByCPU(ctx context.Context, n int) ([]entity.ProcessUsage, error) {
	rows, err := pi.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return topN(rows, n, byCPU), nil
}

// TopByMemory возвращает не более n процессов по убыванию потребления памяти
func (pi *ProcessInspector) TopByMemory(ctx context.Context, n int) ([]entity.ProcessUsage, error) {
	rows, err := pi.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return topN(rows, n, byMemory), nil
}

// Zombies возвращает pid процессов в состоянии zombie/defunct
func (pi *ProcessInspector) Zombies(ctx context.Context) ([]int32, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	pids := make([]int32, 0)
	for _, p := range procs {
		statuses, err := p.StatusWithContext(ctx)
		if err != nil {
			// Процесс исчез между перечислением и опросом
			continue
		}
		for _, st := range statuses {
			if st == process.Zombie {
				pids = append(pids, p.Pid)
				break
			}
		}
	}

	return pids, nil
}

// snapshot снимает таблицу процессов на текущий момент.
// Каждый вызов перечисляет таблицу заново: кэширования между вызовами нет.
func (pi *ProcessInspector) snapshot(ctx context.Context) ([]entity.ProcessUsage, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	rows := make([]entity.ProcessUsage, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}

		cpuPct, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			continue
		}

		memPct, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			continue
		}

		rows = append(rows, entity.ProcessUsage{
			PID:           p.Pid,
			Command:       name,
			CPUPercent:    cpuPct,
			MemoryPercent: float64(memPct),
		})
	}

	return rows, nil
}
