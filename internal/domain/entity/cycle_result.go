package entity

import (
	"time"

	"github.com/dreschagin/syshealth/internal/domain/valueobject"
	"github.com/google/uuid"
)

// CycleResult представляет итог одного полного цикла проверки (Aggregate Root)
// Принадлежит оркестратору на время цикла и выбрасывается после отчета
type CycleResult struct {
	id         string
	verdicts   []Verdict
	zombiePIDs []int32
	topCPU     []ProcessUsage
	topMemory  []ProcessUsage
	startedAt  time.Time
	finishedAt time.Time
}

// NewCycleResult создает результат завершенного цикла
func NewCycleResult(
	verdicts []Verdict,
	zombiePIDs []int32,
	topCPU, topMemory []ProcessUsage,
	startedAt, finishedAt time.Time,
) *CycleResult {
	return &CycleResult{
		id:         uuid.New().String(),
		verdicts:   verdicts,
		zombiePIDs: zombiePIDs,
		topCPU:     topCPU,
		topMemory:  topMemory,
		startedAt:  startedAt,
		finishedAt: finishedAt,
	}
}

// ID возвращает идентификатор цикла
func (c *CycleResult) ID() string {
	return c.id
}

// Verdicts возвращает вердикты в порядке обхода метрик
func (c *CycleResult) Verdicts() []Verdict {
	out := make([]Verdict, len(c.verdicts))
	copy(out, c.verdicts)
	return out
}

// ZombiePIDs возвращает pid обнаруженных зомби-процессов
func (c *CycleResult) ZombiePIDs() []int32 {
	out := make([]int32, len(c.zombiePIDs))
	copy(out, c.zombiePIDs)
	return out
}

// TopCPU возвращает процессы с наибольшим потреблением CPU
func (c *CycleResult) TopCPU() []ProcessUsage {
	out := make([]ProcessUsage, len(c.topCPU))
	copy(out, c.topCPU)
	return out
}

// TopMemory возвращает процессы с наибольшим потреблением памяти
func (c *CycleResult) TopMemory() []ProcessUsage {
	out := make([]ProcessUsage, len(c.topMemory))
	copy(out, c.topMemory)
	return out
}

// StartedAt возвращает время начала цикла
func (c *CycleResult) StartedAt() time.Time {
	return c.startedAt
}

// FinishedAt возвращает время завершения цикла
func (c *CycleResult) FinishedAt() time.Time {
	return c.finishedAt
}

// Overall агрегирует вердикты в общий итог цикла.
// Итог аварийный тогда и только тогда, когда есть хотя бы один
// alert-вердикт или обнаружен зомби-процесс.
func (c *CycleResult) Overall() valueobject.Tier {
	if len(c.zombiePIDs) > 0 {
		return valueobject.TierAlert
	}
	for _, v := range c.verdicts {
		if v.Tier().IsAlert() {
			return valueobject.TierAlert
		}
	}
	return valueobject.TierNormal
}

// ExitCode отображает общий итог в код завершения процесса
func (c *CycleResult) ExitCode() int {
	if c.Overall().IsAlert() {
		return 1
	}
	return 0
}
