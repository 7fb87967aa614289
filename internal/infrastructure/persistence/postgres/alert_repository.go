package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// PostgresAlertRepository реализует repository.AlertRepository для PostgreSQL.
// Хранит только alert-события: история срабатываний, а не временной ряд метрик.
//
// Ожидаемая схема:
//
//	CREATE TABLE IF NOT EXISTS alerts (
//	    id          UUID NOT NULL,
//	    cycle_id    UUID NOT NULL,
//	    source      TEXT NOT NULL,
//	    message     TEXT NOT NULL,
//	    value       DOUBLE PRECISION,
//	    created_at  TIMESTAMPTZ NOT NULL
//	);
type PostgresAlertRepository struct {
	db *sql.DB
}

// NewPostgresAlertRepository создает новый PostgreSQL repository
func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{
		db: db,
	}
}

// SaveCycleAlerts сохраняет alert-события одного цикла одной транзакцией
func (r *PostgresAlertRepository) SaveCycleAlerts(ctx context.Context, result *entity.CycleResult) error {
	rows := buildAlertRows(result)
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO alerts (id, cycle_id, source, message, value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err = stmt.ExecContext(ctx,
			row.ID,
			row.CycleID,
			row.Source,
			row.Message,
			row.Value,
			row.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Close закрывает подключение к базе
func (r *PostgresAlertRepository) Close() error {
	return r.db.Close()
}

// buildAlertRows отбирает из результата цикла только alert-события
func buildAlertRows(result *entity.CycleResult) []alertRow {
	rows := make([]alertRow, 0)

	for _, v := range result.Verdicts() {
		if !v.Tier().IsAlert() {
			continue
		}

		value := v.Reading().Percent()
		if v.Reading().Kind() == valueobject.Load {
			value = v.Reading().Load().One
		}

		rows = append(rows, newAlertRow(result, v.Reading().Kind().String(), v.Message(), value))
	}

	if pids := result.ZombiePIDs(); len(pids) > 0 {
		message := fmt.Sprintf("Zombie processes detected: %d (pids %v)", len(pids), pids)
		rows = append(rows, newAlertRow(result, "zombies", message, float64(len(pids))))
	}

	return rows
}
