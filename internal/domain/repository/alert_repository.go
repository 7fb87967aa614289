package repository

import (
	"context"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// AlertRepository определяет интерфейс долговременной истории алертов (Port)
// Реализация будет в Infrastructure слое
type AlertRepository interface {
	// SaveCycleAlerts сохраняет alert-события одного цикла одной транзакцией.
	// Цикл без алертов не оставляет записей.
	SaveCycleAlerts(ctx context.Context, result *entity.CycleResult) error

	// Close закрывает соединение с хранилищем
	Close() error
}
