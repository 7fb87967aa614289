package valueobject

import "errors"

// MetricKind представляет категорию метрики (Value Object)
type MetricKind string

const (
	CPU    MetricKind = "cpu"
	Memory MetricKind = "memory"
	Disk   MetricKind = "disk"
	Load   MetricKind = "load"
)

// Validate проверяет валидность категории метрики
func (mk MetricKind) Validate() error {
	switch mk {
	case CPU, Memory, Disk, Load:
		return nil
	default:
		return errors.New("invalid metric kind")
	}
}

// IsPercent сообщает, измеряется ли метрика в процентах [0,100].
// Load average сравнивается с числом ядер, а не с процентной шкалой.
func (mk MetricKind) IsPercent() bool {
	return mk != Load
}

// String возвращает строковое представление категории
func (mk MetricKind) String() string {
	return string(mk)
}

// AllMetricKinds возвращает категории в порядке обхода цикла проверки
func AllMetricKinds() []MetricKind {
	return []MetricKind{CPU, Memory, Disk, Load}
}
