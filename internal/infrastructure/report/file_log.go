package report

import (
	"fmt"
	"os"
	"time"
)

// FileLog ведет долговременный журнал алертов: по одной строке
// "<timestamp> - <message>" на событие, только добавление в конец.
// Ротации и структурированного формата нет.
type FileLog struct {
	path string
}

// NewFileLog создает журнал по указанному пути.
// Файл создается при первой записи.
func NewFileLog(path string) *FileLog {
	return &FileLog{path: path}
}

// Path возвращает путь журнала
func (fl *FileLog) Path() string {
	return fl.path
}

// Append дописывает одну запись. Файл открывается и закрывается на каждую
// запись: параллельные внешние писатели не синхронизируются, каждая запись
// занимает одну строку.
func (fl *FileLog) Append(message string) error {
	f, err := os.OpenFile(fl.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open alert log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - %s\n", time.Now().Format("2006-01-02 15:04:05"), message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append alert log: %w", err)
	}

	return nil
}
