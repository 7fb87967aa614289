package valueobject

import (
	"errors"
	"fmt"
	"time"
)

// Reading представляет одно снятое показание метрики (Value Object)
// Иммутабельный объект: создается сэмплером и дальше не меняется
type Reading struct {
	kind        MetricKind
	percent     float64
	load        LoadAverages
	cores       int
	collectedAt time.Time
}

// LoadAverages содержит сглаженные значения load average за 1/5/15 минут
type LoadAverages struct {
	One     float64
	Five    float64
	Fifteen float64
}

// NewPercentReading создает показание для процентной метрики (cpu, memory, disk).
// Дробное значение сохраняется как есть: усечение до целого выполняет evaluator.
func NewPercentReading(kind MetricKind, percent float64, collectedAt time.Time) (Reading, error) {
	if err := kind.Validate(); err != nil {
		return Reading{}, err
	}
	if !kind.IsPercent() {
		return Reading{}, fmt.Errorf("metric kind %q is not a percent metric", kind)
	}
	if percent < 0 {
		return Reading{}, errors.New("percent value cannot be negative")
	}
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	return Reading{
		kind:        kind,
		percent:     percent,
		collectedAt: collectedAt,
	}, nil
}

// NewLoadReading создает показание load average вместе с числом логических ядер
func NewLoadReading(avgs LoadAverages, cores int, collectedAt time.Time) (Reading, error) {
	if avgs.One < 0 || avgs.Five < 0 || avgs.Fifteen < 0 {
		return Reading{}, errors.New("load average cannot be negative")
	}
	if cores <= 0 {
		return Reading{}, errors.New("core count must be positive")
	}
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	return Reading{
		kind:        Load,
		load:        avgs,
		cores:       cores,
		collectedAt: collectedAt,
	}, nil
}

// Kind возвращает категорию метрики
func (r Reading) Kind() MetricKind {
	return r.kind
}

// Percent возвращает сырое дробное значение процентной метрики
func (r Reading) Percent() float64 {
	return r.percent
}

// Load возвращает тройку load average (только для kind == Load)
func (r Reading) Load() LoadAverages {
	return r.load
}

// Cores возвращает число логических ядер хоста (только для kind == Load)
func (r Reading) Cores() int {
	return r.cores
}

// CollectedAt возвращает время снятия показания
func (r Reading) CollectedAt() time.Time {
	return r.collectedAt
}

// String возвращает строковое представление показания
func (r Reading) String() string {
	if r.kind == Load {
		return fmt.Sprintf("load %.2f %.2f %.2f (cores=%d)", r.load.One, r.load.Five, r.load.Fifteen, r.cores)
	}
	return fmt.Sprintf("%s %.1f%%", r.kind, r.percent)
}
