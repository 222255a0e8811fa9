package resident

import (
	"errors"
	"fmt"

	"estate-access/logger"
	"estate-access/middleware"
	"estate-access/services/suspension"
	"estate-access/store"
	"estate-access/types"

	"github.com/gofiber/fiber/v2"
)

// ResidentController handles admin actions on residents
type ResidentController struct {
	Suspension *suspension.Service
}

// NewResidentController creates a new resident controller
func NewResidentController(svc *suspension.Service) *ResidentController {
	return &ResidentController{Suspension: svc}
}

// Suspend disables a resident and force-expires all of their active codes
// before responding. The expired-code count is returned so admins can see
// the cascade completed.
func (rc *ResidentController) Suspend(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Auth context missing",
		})
	}

	residentID, err := c.ParamsInt("id")
	if err != nil || residentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid resident id",
		})
	}

	count, err := rc.Suspension.SuspendResident(c.Context(), actor.TenantID, uint(residentID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Resident not found",
			})
		}
		return err
	}

	logger.Info(fmt.Sprintf("Resident %d suspended, %d active codes expired", residentID, count))
	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Resident suspended",
		Data:    fiber.Map{"expired_codes": count},
	})
}

// Approve reinstates a resident. Codes already expired by a suspension
// cascade stay expired.
func (rc *ResidentController) Approve(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Auth context missing",
		})
	}

	residentID, err := c.ParamsInt("id")
	if err != nil || residentID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid resident id",
		})
	}

	if err := rc.Suspension.ApproveResident(c.Context(), actor.TenantID, uint(residentID)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Resident not found",
			})
		}
		return err
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Resident approved",
	})
}
