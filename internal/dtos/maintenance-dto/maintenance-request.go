package maintenance_dto

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/go-playground/validator/v10"
)

type CreateCycleRequest struct {
	DeviceType string `json:"device_type" validate:"required,min=2,max=100"`
	Frequency  string `json:"frequency" validate:"required,frequency"`
	Basis      string `json:"basis" validate:"required,cycleBasis"`
}

type UpdateCycleRequest struct {
	DeviceType *string `json:"device_type,omitempty" validate:"omitempty,min=2,max=100"`
	Frequency  *string `json:"frequency,omitempty" validate:"omitempty,frequency"`
	Basis      *string `json:"basis,omitempty" validate:"omitempty,cycleBasis"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,min=3"`
}

type ParamCycleID struct {
	ID string `params:"cycle_id" validate:"required,uuid"`
}

func IsValidFrequency(fl validator.FieldLevel) bool {
	return entity.Frequency(fl.Field().String()).IsValid()
}

func IsValidCycleBasis(fl validator.FieldLevel) bool {
	return entity.CycleBasis(fl.Field().String()).IsValid()
}
