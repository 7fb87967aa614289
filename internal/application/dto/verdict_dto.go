package dto

import (
	"time"

	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// VerdictDTO представляет вердикт по одной метрике для передачи между слоями
type VerdictDTO struct {
	Metric      string    `json:"metric"`
	Tier        string    `json:"tier"`
	Percent     float64   `json:"percent,omitempty"`
	Load1       float64   `json:"load_1m,omitempty"`
	Load5       float64   `json:"load_5m,omitempty"`
	Load15      float64   `json:"load_15m,omitempty"`
	Cores       int       `json:"cores,omitempty"`
	Message     string    `json:"message"`
	CollectedAt time.Time `json:"collected_at"`
}

// FromVerdict конвертирует Domain Entity в DTO
func FromVerdict(v entity.Verdict) VerdictDTO {
	r := v.Reading()

	d := VerdictDTO{
		Metric:      r.Kind().String(),
		Tier:        v.Tier().String(),
		Message:     v.Message(),
		CollectedAt: r.CollectedAt(),
	}

	if r.Kind() == valueobject.Load {
		avgs := r.Load()
		d.Load1 = avgs.One
		d.Load5 = avgs.Five
		d.Load15 = avgs.Fifteen
		d.Cores = r.Cores()
	} else {
		d.Percent = r.Percent()
	}

	return d
}

// ProcessUsageDTO представляет потребление ресурсов одним процессом
type ProcessUsageDTO struct {
	PID           int32   `json:"pid"`
	Command       string  `json:"command"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// FromProcessUsage конвертирует слайс доменных записей в DTO
func FromProcessUsage(rows []entity.ProcessUsage) []ProcessUsageDTO {
	dtos := make([]ProcessUsageDTO, len(rows))
	for i, r := range rows {
		dtos[i] = ProcessUsageDTO{
			PID:           r.PID,
			Command:       r.Command,
			CPUPercent:    r.CPUPercent,
			MemoryPercent: r.MemoryPercent,
		}
	}
	return dtos
}
