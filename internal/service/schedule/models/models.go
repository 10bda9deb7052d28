package models

import (
	"github.com/lumibook/booking-service/internal/domain"
)

// UpsertDayRequest запрос на установку рабочего интервала на день недели
type UpsertDayRequest struct {
	CompanyID    int64  `json:"companyId"`
	SpecialistID int64  `json:"specialistId"`
	DayOfWeek    int    `json:"dayOfWeek"` // 0=воскресенье .. 6=суббота
	StartTime    string `json:"startTime"` // "09:00"
	EndTime      string `json:"endTime"`   // "18:00"
}

// DayResponse ответ с рабочим интервалом на день недели
type DayResponse struct {
	ID           int64  `json:"id"`
	SpecialistID int64  `json:"specialistId"`
	DayOfWeek    int    `json:"dayOfWeek"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// WeekResponse ответ с недельным расписанием специалиста
type WeekResponse struct {
	SpecialistID int64         `json:"specialistId"`
	Days         []DayResponse `json:"days"`
}

// FromDomainSchedule конвертирует domain.Schedule в DayResponse
func FromDomainSchedule(s *domain.Schedule) *DayResponse {
	return &DayResponse{
		ID:           s.ID,
		SpecialistID: s.SpecialistID,
		DayOfWeek:    s.DayOfWeek,
		StartTime:    s.StartTime.String(),
		EndTime:      s.EndTime.String(),
	}
}

// FromDomainScheduleList конвертирует список domain.Schedule в WeekResponse
func FromDomainScheduleList(specialistID int64, schedules []*domain.Schedule) *WeekResponse {
	days := make([]DayResponse, len(schedules))
	for i, s := range schedules {
		days[i] = *FromDomainSchedule(s)
	}
	return &WeekResponse{
		SpecialistID: specialistID,
		Days:         days,
	}
}
