package gate

import (
	"estate-access/middleware"
	gateModel "estate-access/models/gate"
	"estate-access/store"
	"estate-access/types"
	gateTypes "estate-access/types/gate"

	"github.com/gofiber/fiber/v2"
)

// GateController handles gate directory endpoints
type GateController struct {
	Directory store.DirectoryStore
}

// NewGateController creates a new gate controller
func NewGateController(directory store.DirectoryStore) *GateController {
	return &GateController{Directory: directory}
}

// Index lists the tenant's active gates.
func (gc *GateController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Auth context missing",
		})
	}

	gates, err := gc.Directory.ListGates(c.Context(), actor.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Gates",
		Data:    gates,
	})
}

// Store adds a gate to the tenant's directory.
func (gc *GateController) Store(c *fiber.Ctx) error {
	var req gateTypes.CreateGateRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Auth context missing",
		})
	}

	g := &gateModel.Gate{
		TenantID: actor.TenantID,
		Name:     req.Name,
		IsActive: true,
	}
	if err := gc.Directory.CreateGate(c.Context(), g); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Gate created",
		Data:    g,
	})
}
