package entity

import (
	"fmt"

	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// Verdict представляет результат оценки одного показания (производный объект,
// после создания не мутируется)
type Verdict struct {
	reading valueobject.Reading
	tier    valueobject.Tier
}

// NewVerdict создает вердикт для показания
func NewVerdict(reading valueobject.Reading, tier valueobject.Tier) Verdict {
	return Verdict{reading: reading, tier: tier}
}

// Reading возвращает показание, по которому вынесен вердикт
func (v Verdict) Reading() valueobject.Reading {
	return v.reading
}

// Tier возвращает уровень серьезности
func (v Verdict) Tier() valueobject.Tier {
	return v.tier
}

// Message строит строку для оператора и журнала алертов.
// Дробное значение показания сохраняется как снято, без усечения.
func (v Verdict) Message() string {
	r := v.reading

	if r.Kind() == valueobject.Load {
		avgs := r.Load()
		switch v.tier {
		case valueobject.TierAlert:
			return fmt.Sprintf("High load average: %.2f (1m) exceeds %d cores", avgs.One, r.Cores())
		default:
			return fmt.Sprintf("Load average normal: %.2f %.2f %.2f (cores: %d)", avgs.One, avgs.Five, avgs.Fifteen, r.Cores())
		}
	}

	label := map[valueobject.MetricKind]string{
		valueobject.CPU:    "CPU usage",
		valueobject.Memory: "Memory usage",
		valueobject.Disk:   "Disk usage",
	}[r.Kind()]

	switch v.tier {
	case valueobject.TierAlert:
		return fmt.Sprintf("%s is critically high: %.1f%%", label, r.Percent())
	case valueobject.TierWarning:
		return fmt.Sprintf("%s is getting high: %.1f%%", label, r.Percent())
	default:
		return fmt.Sprintf("%s is normal: %.1f%%", label, r.Percent())
	}
}
