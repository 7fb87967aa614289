package valueobject

// Tier представляет уровень серьезности показания (Value Object)
type Tier string

const (
	TierNormal  Tier = "normal"
	TierWarning Tier = "warning"
	TierAlert   Tier = "alert"
)

// IsAlert сообщает, относится ли уровень к аварийным
func (t Tier) IsAlert() bool {
	return t == TierAlert
}

// String возвращает строковое представление уровня
func (t Tier) String() string {
	return string(t)
}
