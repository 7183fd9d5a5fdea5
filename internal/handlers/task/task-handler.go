package task_handlers

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers"
	internal_i18n "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	task_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/task-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskHandler struct {
	validator *validator.Validate
	service   task_case.TaskServiceContract
	i18n      internal_i18n.Service
}

func NewTaskHandler(db *pgxpool.Pool, b bridge.Bridge, i18n internal_i18n.Service) *TaskHandler {
	return &TaskHandler{
		validator: newValidator(),
		service:   task_case.NewTaskService(db, b),
		i18n:      i18n,
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("assignmentStatus", task_dto.IsValidAssignmentStatus)
	validate.RegisterValidation("workLogStatus", task_dto.IsValidWorkLogStatus)
	validate.RegisterValidation("reviewDecision", task_dto.IsValidReviewDecision)
	return validate
}

func (h *TaskHandler) CreateTaskFromCrack(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[task_dto.CreateTaskFromCrackRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateTaskFromCrack(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_task", resp)
}

func (h *TaskHandler) CreateTaskForScheduleJob(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[schedule_dto.ParamJobID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetOptionalBody[task_dto.CreateTaskForJobRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateTaskForScheduleJob(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_task", resp)
}

func (h *TaskHandler) MarkCrackCancelled(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamCrackID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.MarkCrackCancelled(c.Context(), actor, param.ID)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_mark_crack_cancelled", resp)
}

func (h *TaskHandler) CreateAssignment(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamTaskID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[task_dto.CreateAssignmentRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateAssignment(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_assignment", resp)
}

func (h *TaskHandler) ChangeAssignmentStatus(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamAssignmentID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[task_dto.ChangeAssignmentStatusRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ChangeAssignmentStatus(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_change_assignment_status", resp)
}

func (h *TaskHandler) CreateInspection(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamAssignmentID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[task_dto.CreateInspectionRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateInspection(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_inspection", resp)
}

func (h *TaskHandler) ReviewInspection(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamInspectionID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[task_dto.ReviewInspectionRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ReviewInspection(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_review_inspection", resp)
}

func (h *TaskHandler) UpdateWorkLogStatus(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamWorkLogID](c, h.validator)
	if err != nil {
		return err
	}

	// Status vor der Validierung normalisieren, "final review" wird zu FINAL_REVIEW
	var req task_dto.UpdateWorkLogStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}
	req.Status = handlers.NormalizeWorkLogStatus(req.Status)

	if err := h.validator.Struct(req); err != nil {
		return app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}

	resp, err := h.service.UpdateWorkLogStatus(c.Context(), actor, param.ID, &req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_update_work_log", resp)
}

func (h *TaskHandler) ConfirmDeposit(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[task_dto.ParamWorkLogID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ConfirmDeposit(c.Context(), actor, param.ID)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_confirm_deposit", resp)
}
