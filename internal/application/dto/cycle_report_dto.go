package dto

import (
	"time"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// CycleReportDTO представляет итог одного цикла проверки.
// Используется как полезная нагрузка для NATS-событий и snapshot-кэша.
type CycleReportDTO struct {
	CycleID    string            `json:"cycle_id"`
	Hostname   string            `json:"hostname,omitempty"`
	Verdicts   []VerdictDTO      `json:"verdicts"`
	ZombiePIDs []int32           `json:"zombie_pids,omitempty"`
	TopCPU     []ProcessUsageDTO `json:"top_cpu,omitempty"`
	TopMemory  []ProcessUsageDTO `json:"top_memory,omitempty"`
	Overall    string            `json:"overall"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// NewCycleReportDTO строит DTO из результата цикла
func NewCycleReportDTO(result *entity.CycleResult, hostname string) *CycleReportDTO {
	verdicts := result.Verdicts()

	dtos := make([]VerdictDTO, len(verdicts))
	for i, v := range verdicts {
		dtos[i] = FromVerdict(v)
	}

	return &CycleReportDTO{
		CycleID:    result.ID(),
		Hostname:   hostname,
		Verdicts:   dtos,
		ZombiePIDs: result.ZombiePIDs(),
		TopCPU:     FromProcessUsage(result.TopCPU()),
		TopMemory:  FromProcessUsage(result.TopMemory()),
		Overall:    result.Overall().String(),
		StartedAt:  result.StartedAt(),
		FinishedAt: result.FinishedAt(),
	}
}
