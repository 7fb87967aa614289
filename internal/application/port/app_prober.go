package port

import (
	"context"
	"time"
)

// AppTarget описывает одно проверяемое приложение
type AppTarget struct {
	Name   string `json:"name,omitempty"`
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
}

// ProbeOutcome представляет сырой результат одной пробы от prober'а.
// Используется для передачи данных между Infrastructure и Application слоями.
type ProbeOutcome struct {
	StatusCode   int
	ResponseTime time.Duration
	HasCritical  bool
	HasSuccess   bool
	Err          error
}

// AppProber определяет интерфейс HTTP-пробы приложения (Port)
// Реализация выполняет повторные попытки согласно конфигурации
type AppProber interface {
	// Probe выполняет проверку одного приложения
	Probe(ctx context.Context, target AppTarget) ProbeOutcome
}
