package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// alertRow представляет строку таблицы alerts
type alertRow struct {
	ID        string
	CycleID   string
	Source    string
	Message   string
	Value     float64
	CreatedAt time.Time
}

func newAlertRow(result *entity.CycleResult, source, message string, value float64) alertRow {
	return alertRow{
		ID:        uuid.New().String(),
		CycleID:   result.ID(),
		Source:    source,
		Message:   message,
		Value:     value,
		CreatedAt: result.FinishedAt(),
	}
}
