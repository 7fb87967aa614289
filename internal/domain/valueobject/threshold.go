package valueobject

import (
	"errors"
	"fmt"
)

// Threshold содержит пороги одной процентной метрики (Value Object)
// Инвариант: 0 <= Warn < Alert <= 100
type Threshold struct {
	Warn  int
	Alert int
}

// NewThreshold создает пороговую пару с валидацией инварианта
func NewThreshold(warn, alert int) (Threshold, error) {
	t := Threshold{Warn: warn, Alert: alert}
	if err := t.Validate(); err != nil {
		return Threshold{}, err
	}
	return t, nil
}

// DeriveThreshold выводит warning-уровень из alert-уровня (3/4 от alert),
// когда warning не задан явно
func DeriveThreshold(alert int) (Threshold, error) {
	return NewThreshold(alert*3/4, alert)
}

// Validate проверяет инвариант пороговой пары
func (t Threshold) Validate() error {
	if t.Warn < 0 || t.Alert > 100 {
		return fmt.Errorf("thresholds must be within [0,100], got warn=%d alert=%d", t.Warn, t.Alert)
	}
	if t.Warn >= t.Alert {
		return fmt.Errorf("warn threshold must be below alert threshold, got warn=%d alert=%d", t.Warn, t.Alert)
	}
	return nil
}

// Thresholds содержит пороги всех процентных метрик.
// Загружается один раз на старте и не меняется в течение запуска.
type Thresholds struct {
	byKind map[MetricKind]Threshold
}

// NewThresholds создает набор порогов для cpu/memory/disk
func NewThresholds(cpu, memory, disk Threshold) (Thresholds, error) {
	set := Thresholds{byKind: map[MetricKind]Threshold{
		CPU:    cpu,
		Memory: memory,
		Disk:   disk,
	}}

	for kind, t := range set.byKind {
		if err := t.Validate(); err != nil {
			return Thresholds{}, fmt.Errorf("%s: %w", kind, err)
		}
	}

	return set, nil
}

// For возвращает пороги для процентной метрики
func (ts Thresholds) For(kind MetricKind) (Threshold, error) {
	if !kind.IsPercent() {
		return Threshold{}, errors.New("load average has no percent thresholds")
	}

	t, ok := ts.byKind[kind]
	if !ok {
		return Threshold{}, fmt.Errorf("no thresholds configured for %s", kind)
	}
	return t, nil
}
