package service

import (
	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// ThresholdEvaluator классифицирует показания по порогам (Domain Service)
// Чистая функция без побочных эффектов
type ThresholdEvaluator struct{}

// NewThresholdEvaluator создает новый ThresholdEvaluator
func NewThresholdEvaluator() *ThresholdEvaluator {
	return &ThresholdEvaluator{}
}

// Evaluate выносит вердикт по одному показанию.
//
// Процентные метрики: значение усекается до целого и сравнивается строго:
// выше alert-порога дает alert, выше warn-порога дает warning, иначе normal.
// Load average сравнивается дробно: 1-минутное значение выше числа ядер дает
// alert, warning-уровня у load нет.
func (e *ThresholdEvaluator) Evaluate(reading valueobject.Reading, thresholds valueobject.Thresholds) (entity.Verdict, error) {
	if reading.Kind() == valueobject.Load {
		return entity.NewVerdict(reading, evaluateLoad(reading)), nil
	}

	t, err := thresholds.For(reading.Kind())
	if err != nil {
		return entity.Verdict{}, err
	}

	// Усечение, а не округление: 80.9% при пороге 80 еще не alert
	value := int(reading.Percent())

	var tier valueobject.Tier
	switch {
	case value > t.Alert:
		tier = valueobject.TierAlert
	case value > t.Warn:
		tier = valueobject.TierWarning
	default:
		tier = valueobject.TierNormal
	}

	return entity.NewVerdict(reading, tier), nil
}

func evaluateLoad(reading valueobject.Reading) valueobject.Tier {
	if reading.Load().One > float64(reading.Cores()) {
		return valueobject.TierAlert
	}
	return valueobject.TierNormal
}
