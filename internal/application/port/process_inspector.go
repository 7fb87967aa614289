package port

import (
	"context"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// ProcessInspector определяет интерфейс обзора таблицы процессов (Port)
// Каждый вызов заново перечисляет процессы: результат это снимок на момент
// вызова, согласованность между вызовами не гарантируется
type ProcessInspector interface {
	// TopByCPU возвращает не более n процессов по убыванию потребления CPU,
	// при равенстве в порядке обхода таблицы процессов
	TopByCPU(ctx context.Context, n int) ([]entity.ProcessUsage, error)

	// TopByMemory возвращает не более n процессов по убыванию потребления памяти
	TopByMemory(ctx context.Context, n int) ([]entity.ProcessUsage, error)

	// Zombies возвращает pid процессов в состоянии zombie/defunct
	Zombies(ctx context.Context) ([]int32, error)
}
