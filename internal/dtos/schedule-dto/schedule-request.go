package schedule_dto

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/go-playground/validator/v10"
)

type CreateScheduleRequest struct {
	Name              string      `json:"name" validate:"required,min=3,max=200"`
	Description       *string     `json:"description,omitempty"`
	CycleID           string      `json:"cycle_id" validate:"required,uuid"`
	BuildingDetailIDs []string    `json:"building_detail_ids" validate:"omitempty,dive,required"`
	StartDate         *dtos.Date  `json:"start_date,omitempty"`
	EndDate           *dtos.Date  `json:"end_date,omitempty"`
	DurationDays      *int        `json:"duration_days,omitempty" validate:"omitempty,min=1,max=3650"`
	AutoCreateTasks   bool        `json:"auto_create_tasks"`
	SpecificDates     []dtos.Date `json:"specific_dates,omitempty"`
}

type CycleConfig struct {
	CycleID         string      `json:"cycle_id" validate:"required,uuid"`
	Name            *string     `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	StartDate       *dtos.Date  `json:"start_date,omitempty"`
	EndDate         *dtos.Date  `json:"end_date,omitempty"`
	DurationDays    *int        `json:"duration_days,omitempty" validate:"omitempty,min=1,max=3650"`
	AutoCreateTasks bool        `json:"auto_create_tasks"`
	SpecificDates   []dtos.Date `json:"specific_dates,omitempty"`
}

type GenerateSchedulesRequest struct {
	CycleConfigs      []CycleConfig `json:"cycle_configs" validate:"required,min=1,dive"`
	BuildingDetailIDs []string      `json:"building_detail_ids" validate:"omitempty,dive,required"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required,scheduleJobStatus"`
}

type NotifyJobRequest struct {
	RecipientIDs []string `json:"recipient_ids" validate:"omitempty,dive,uuid"`
}

type JobListFilter struct {
	Status *string `query:"status,omitempty" validate:"omitempty,scheduleJobStatus"`
}

type ParamScheduleID struct {
	ID string `params:"schedule_id" validate:"required,uuid"`
}

type ParamJobID struct {
	ID string `params:"job_id" validate:"required,uuid"`
}

func IsValidScheduleJobStatus(fl validator.FieldLevel) bool {
	return entity.ScheduleJobStatus(fl.Field().String()).IsValid()
}
