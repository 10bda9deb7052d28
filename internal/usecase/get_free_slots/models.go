package get_free_slots

import (
	"time"

	"github.com/lumibook/booking-service/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	Hostname     string    // Доменное имя компании-тенанта
	SpecialistID int64     // ID специалиста
	ServiceIDs   []int64   // ID запрошенных услуг (длительность суммируется)
	Date         time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	SpecialistID    int64     // ID специалиста
	DurationMinutes int       // Суммарная длительность запрошенных услуг
	Slots           []Slot    // Свободные слоты в порядке возрастания времени
}

// Slot модель свободного временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время конца слота (не включается)
}
