package dto

import "time"

// Статусы приложения в отчете проверки
const (
	AppStatusUp   = "UP"
	AppStatusDown = "DOWN"
)

// AppCheckResultDTO представляет итог проверки одного приложения
type AppCheckResultDTO struct {
	Name           string              `json:"name"`
	URL            string              `json:"url"`
	Status         string              `json:"status"`
	StatusCode     int                 `json:"status_code,omitempty"`
	ResponseTimeMS float64             `json:"response_time_ms,omitempty"`
	Timestamp      time.Time           `json:"timestamp"`
	Error          string              `json:"error,omitempty"`
	Content        *ContentAnalysisDTO `json:"content_analysis,omitempty"`
}

// ContentAnalysisDTO описывает найденные в теле ответа ключевые слова
type ContentAnalysisDTO struct {
	HasCriticalKeywords bool `json:"has_critical_keywords"`
	HasSuccessKeywords  bool `json:"has_success_keywords"`
}

// AppCheckSummaryDTO содержит сводку по всем проверенным приложениям
type AppCheckSummaryDTO struct {
	RunID         string              `json:"run_id"`
	Total         int                 `json:"total"`
	Up            int                 `json:"up"`
	Down          int                 `json:"down"`
	SuccessRate   float64             `json:"success_rate"`
	AvgResponseMS float64             `json:"avg_response_ms,omitempty"`
	MinResponseMS float64             `json:"min_response_ms,omitempty"`
	MaxResponseMS float64             `json:"max_response_ms,omitempty"`
	Results       []AppCheckResultDTO `json:"results"`
}

// AllUp сообщает, прошли ли проверку все приложения
func (s *AppCheckSummaryDTO) AllUp() bool {
	return s.Down == 0
}
