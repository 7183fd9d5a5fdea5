package maintenance_handlers

import (
	maintenance_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/maintenance-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers"
	internal_i18n "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	maintenance_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/maintenance-case"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceHandler struct {
	validator *validator.Validate
	service   maintenance_case.MaintenanceServiceContract
	i18n      internal_i18n.Service
}

func NewMaintenanceHandler(db *pgxpool.Pool, i18n internal_i18n.Service) *MaintenanceHandler {
	return &MaintenanceHandler{
		validator: newValidator(),
		service:   maintenance_case.NewMaintenanceService(db),
		i18n:      i18n,
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("frequency", maintenance_dto.IsValidFrequency)
	validate.RegisterValidation("cycleBasis", maintenance_dto.IsValidCycleBasis)
	return validate
}

func (h *MaintenanceHandler) CreateCycle(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[maintenance_dto.CreateCycleRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.CreateCycle(c.Context(), actor, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusCreated, "response.success_create_cycle", resp)
}

func (h *MaintenanceHandler) UpdateCycle(c *fiber.Ctx) error {
	actor, err := handlers.GetActor(c)
	if err != nil {
		return err
	}

	param, err := handlers.GetParams[maintenance_dto.ParamCycleID](c, h.validator)
	if err != nil {
		return err
	}

	req, err := handlers.GetBody[maintenance_dto.UpdateCycleRequest](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.UpdateCycle(c.Context(), actor, param.ID, req)
	if err != nil {
		return err
	}

	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_update_cycle", resp)
}

func (h *MaintenanceHandler) ListCycleHistory(c *fiber.Ctx) error {
	param, err := handlers.GetParams[maintenance_dto.ParamCycleID](c, h.validator)
	if err != nil {
		return err
	}

	resp, err := h.service.ListCycleHistory(c.Context(), param.ID)
	if err != nil {
		return err
	}

	c.Set("Cache-Control", "private, max-age=30")
	return handlers.WriteResponse(c, h.i18n, fiber.StatusOK, "response.success_list_cycle_history", resp)
}
