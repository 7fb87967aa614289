package report

import (
	"fmt"
	"io"

	"github.com/dreschagin/syshealth/internal/domain/entity"
	"github.com/dreschagin/syshealth/internal/domain/valueobject"
)

// ConsoleSink печатает отчет цикла оператору и дублирует alert-события
// в журнал алертов. Реализует интерфейс port.AlertSink.
//
// Сбой записи журнала не прерывает цикл: оператор получает одно
// предупреждение, дальнейшие сбои в том же запуске не повторяются.
type ConsoleSink struct {
	out         io.Writer
	alertLog    *FileLog
	warnedOnLog bool
}

// NewConsoleSink создает sink поверх указанного вывода и журнала алертов
func NewConsoleSink(out io.Writer, alertLog *FileLog) *ConsoleSink {
	return &ConsoleSink{
		out:      out,
		alertLog: alertLog,
	}
}

// ReportVerdict печатает строку вердикта; alert попадает в журнал
func (s *ConsoleSink) ReportVerdict(verdict entity.Verdict) {
	message := verdict.Message()

	switch verdict.Tier() {
	case valueobject.TierAlert:
		fmt.Fprintln(s.out, styleAlert.Render("ALERT  "+message))
		s.appendAlert(message)
	case valueobject.TierWarning:
		fmt.Fprintln(s.out, styleWarning.Render("WARN   "+message))
	default:
		fmt.Fprintln(s.out, styleNormal.Render("OK     "+message))
	}
}

// ReportTopProcesses печатает таблицу самых прожорливых процессов
func (s *ConsoleSink) ReportTopProcesses(title string, rows []entity.ProcessUsage) {
	fmt.Fprintln(s.out, styleHeading.Render(title))

	if len(rows) == 0 {
		fmt.Fprintln(s.out, styleMuted.Render("  (no processes)"))
		return
	}

	for _, row := range rows {
		fmt.Fprintf(s.out, "  %7d  %-24s cpu=%5.1f%% mem=%5.1f%%\n",
			row.PID, truncate(row.Command, 24), row.CPUPercent, row.MemoryPercent)
	}
}

// ReportZombies печатает итог поиска зомби-процессов
func (s *ConsoleSink) ReportZombies(pids []int32) {
	if len(pids) == 0 {
		fmt.Fprintln(s.out, styleNormal.Render("OK     No zombie processes found"))
		return
	}

	message := fmt.Sprintf("Zombie processes detected: %d (pids %v)", len(pids), pids)
	fmt.Fprintln(s.out, styleAlert.Render("ALERT  "+message))
	s.appendAlert(message)
}

// Warn выводит оперативное предупреждение оператору
func (s *ConsoleSink) Warn(message string) {
	fmt.Fprintln(s.out, styleWarning.Render("WARN   "+message))
}

func (s *ConsoleSink) appendAlert(message string) {
	if s.alertLog == nil {
		return
	}

	if err := s.alertLog.Append(message); err != nil && !s.warnedOnLog {
		s.warnedOnLog = true
		s.Warn(fmt.Sprintf("alert log %s is not writable: %v (alerts will not be persisted)", s.alertLog.Path(), err))
	}
}

// truncate укорачивает строку до max рун, не разрывая многобайтные символы
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
