package upsert_schedule

// UpsertScheduleRequest тело запроса на установку рабочего интервала
type UpsertScheduleRequest struct {
	Hostname  string `json:"hostname"`
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}
