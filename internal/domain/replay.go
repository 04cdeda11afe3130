package domain

// RecordKind - что именно записано в ленту
type RecordKind uint8

const (
	RecordFire        RecordKind = iota + 1 // Срабатывание планировщика
	RecordSetMax                            // Смена лимита популяции
	RecordSetInterval                       // Смена интервала
)

// RecordedAction - одно внешнее воздействие на симуляцию.
// Frame - номер кадра, ПЕРЕД которым действие было применено.
type RecordedAction struct {
	Frame uint64     `json:"frame"`
	Kind  RecordKind `json:"kind"`
	Value int32      `json:"value,omitempty"`
}

// Recording - полная запись сессии.
// Вместе с Seed этого достаточно, чтобы детерминированно повторить симуляцию.
type Recording struct {
	Seed              int64            `json:"seed"`
	Timestamp         int64            `json:"timestamp"`
	InitialPopulation int32            `json:"initialPopulation"`
	MaxPopulation     int32            `json:"maxPopulation"`
	Interval          int32            `json:"interval"`
	Frames            uint64           `json:"frames"` // Сколько кадров прошло до конца записи
	Actions           []RecordedAction `json:"actions"`
}
