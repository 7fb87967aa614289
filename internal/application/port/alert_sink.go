package port

import (
	"github.com/dreschagin/syshealth/internal/domain/entity"
)

// AlertSink определяет интерфейс отчета перед оператором (Port)
//
// Ни один из методов не возвращает ошибку: сбой записи в журнал алертов
// восстанавливается внутри sink (однократное предупреждение оператору)
// и не влияет на итог цикла
type AlertSink interface {
	// ReportVerdict печатает строку по вердикту; alert-вердикты
	// дополнительно попадают в журнал алертов
	ReportVerdict(verdict entity.Verdict)

	// ReportTopProcesses печатает таблицу самых прожорливых процессов
	ReportTopProcesses(title string, rows []entity.ProcessUsage)

	// ReportZombies печатает и журналирует алерт по зомби-процессам;
	// пустой список дает штатное сообщение без записи в журнал
	ReportZombies(pids []int32)

	// Warn выводит оперативное предупреждение (например, о невозможности
	// записать журнал алертов)
	Warn(message string)
}
