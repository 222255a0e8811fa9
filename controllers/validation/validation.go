package validation

import (
	"estate-access/middleware"
	validationService "estate-access/services/validation"
	"estate-access/types"
	validationTypes "estate-access/types/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationController handles guard-facing validation requests. It is a
// thin adapter: parsing, auth resolution and formatting only; every
// decision comes from the engine.
type ValidationController struct {
	Engine *validationService.Engine
}

// NewValidationController creates a new validation controller
func NewValidationController(engine *validationService.Engine) *ValidationController {
	return &ValidationController{Engine: engine}
}

// Validate checks a typed code at a gate and grants or denies entry.
func (vc *ValidationController) Validate(c *fiber.Ctx) error {
	var req validationTypes.ValidateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.GuardID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Guard identity missing",
		})
	}

	result, err := vc.Engine.Validate(c.Context(), validationService.Request{
		TenantID:  actor.TenantID,
		GuardID:   actor.GuardID,
		GuardName: actor.GuardName,
		CodeValue: req.Code,
		GateID:    req.GateID,
	})
	if err != nil {
		return err
	}

	if !result.Allowed {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"ok":      false,
			"reason":  result.Reason.String(),
			"message": validationService.DenyMessage(result.Reason),
		})
	}

	return c.JSON(validationTypes.ValidateResponse{
		OK:           true,
		ResidentName: result.ResidentName,
		HouseNumber:  result.HouseNumber,
		PassType:     result.PassType.String(),
	})
}
