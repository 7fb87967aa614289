package entity

// ProcessUsage представляет потребление ресурсов одним процессом
// на момент снятия снимка таблицы процессов
type ProcessUsage struct {
	PID           int32
	Command       string
	CPUPercent    float64
	MemoryPercent float64
}
