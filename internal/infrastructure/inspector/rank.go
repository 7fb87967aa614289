package inspector

import (
	"sort"

	"github.com/dreschagin/syshealth/internal/domain/entity"
)

type sortKey int

const (
	byCPU sortKey = iota
	byMemory
)

// topN ранжирует снимок процессов по убыванию потребления.
// Стабильная сортировка: при равных значениях сохраняется порядок
// обхода таблицы процессов. Возвращает min(n, len(rows)) строк.
func topN(rows []entity.ProcessUsage, n int, key sortKey) []entity.ProcessUsage {
	if n <= 0 {
		return nil
	}

	ranked := make([]entity.ProcessUsage, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if key == byMemory {
			return ranked[i].MemoryPercent > ranked[j].MemoryPercent
		}
		return ranked[i].CPUPercent > ranked[j].CPUPercent
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
