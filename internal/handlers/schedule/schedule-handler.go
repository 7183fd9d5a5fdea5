package schedule_handlers

import (
	"fmt"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers"
	internal_i18n "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	schedule_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/schedule-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScheduleHandler struct {
	validator *validator.Validate
	service   schedule_case.ScheduleServiceContract
	i18n      internal_i18n.Service
}

func NewScheduleHandler(db *pgxpool.Pool, redis *redis.Client, b bridge.Bridge, opts schedule_case.Options, i18n internal_i18n.Service) *ScheduleHandler {
	return &ScheduleHandler{
		validator: newValidator(),
		service:   schedule_case.NewScheduleService(db, redis, b, opts),
		i18n:      i18n,
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("scheduleJobStatus", schedule_dto.IsValidScheduleJobStatus)
	return validate
}

func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[schedule_dto.CreateScheduleRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateSchedule(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_schedule", resp)
}

func (h *ScheduleHandler) GenerateSchedules(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[schedule_dto.GenerateSchedulesRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.GenerateSchedulesFromConfig(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_generate_schedules", resp)
}

func (h *ScheduleHandler) CancelSchedule(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[schedule_dto.ParamScheduleID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CancelSchedule(c.Context(), actor, param.ID)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_cancel_schedule", resp)
}

func (h *ScheduleHandler) ListScheduleJobs(c *fiber.Ctx) error {
	param, err := handlers.GetParams[schedule_dto.ParamScheduleID](c, h.validator)
	if err != nil {
		return err
	}

	var filter schedule_dto.JobListFilter
	if err := c.QueryParser(&filter); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidQuery, "request.invalid_query", err)
	}

	if err := h.validator.Struct(filter); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.ListScheduleJobs(c.Context(), param.ID, &filter)
	if err != nil {
		return err
	}

	c.Set("Cache-Control", "private, max-age=10")
	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_list_schedule_jobs", resp)
}

func (h *ScheduleHandler) ExportScheduleJobs(c *fiber.Ctx) error {
	param, err := handlers.GetParams[schedule_dto.ParamScheduleID](c, h.validator)
	if err != nil {
		return err
	}

	raw, filename, err := h.service.ExportScheduleJobs(c.Context(), param.ID)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Status(fiber.StatusOK).Send(raw)
}

func (h *ScheduleHandler) UpdateJobStatus(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[schedule_dto.ParamJobID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[schedule_dto.UpdateJobStatusRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateScheduleJobStatus(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_update_job_status", resp)
}

func (h *ScheduleHandler) NotifyJob(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[schedule_dto.ParamJobID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetOptionalBody[schedule_dto.NotifyJobRequest](c, h.validator)
	if err != nil {
		return err
	}

	if err := h.service.NotifyScheduleJob(c.Context(), actor, param.ID, req); err != nil {
		return err
	}

	return handlers.WriteResponse[any](c, h.i18n, fiber.StatusAccepted, "response.success_notify_job", nil)
}

func (h *ScheduleHandler) TriggerAutoMaintenance(c *fiber.Ctx) error {
	resp, err := h.service.TriggerAutoMaintenance(c.Context())
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_trigger_maintenance", resp)
}

func (h *ScheduleHandler) LastRunReport(c *fiber.Ctx) error {
	resp, err := h.service.LastRunReport(c.Context())
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_last_run", resp)
}
