package accesscode

import (
	"errors"
	"strconv"

	"estate-access/logger"
	"estate-access/middleware"
	codeModel "estate-access/models/accesscode"
	"estate-access/services/issuance"
	"estate-access/store"
	"estate-access/types"
	codeTypes "estate-access/types/accesscode"

	"github.com/gofiber/fiber/v2"
)

// AccessCodeController handles resident-facing code endpoints
type AccessCodeController struct {
	Issuance *issuance.Service
}

// NewAccessCodeController creates a new access code controller
func NewAccessCodeController(svc *issuance.Service) *AccessCodeController {
	return &AccessCodeController{Issuance: svc}
}

// Store issues a new code for the authenticated resident.
func (ac *AccessCodeController) Store(c *fiber.Ctx) error {
	var req codeTypes.CreateCodeRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.ResidentID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Resident identity missing",
		})
	}

	code, err := ac.Issuance.IssueCode(c.Context(), actor.TenantID, actor.ResidentID, codeModel.PassType(req.PassType))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Resident not found",
			})
		case errors.Is(err, issuance.ErrResidentSuspended):
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Resident suspended",
			})
		case errors.Is(err, issuance.ErrCodeGenerationExhausted):
			logger.Error("Code generation exhausted for resident "+strconv.Itoa(int(actor.ResidentID)), err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
				Status:  fiber.StatusServiceUnavailable,
				Message: "Could not generate a unique code, please try again",
			})
		default:
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Code issued",
		Data:    code,
	})
}

// Renew extends a staff code owned by the authenticated resident.
func (ac *AccessCodeController) Renew(c *fiber.Ctx) error {
	var req codeTypes.RenewCodeRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.ResidentID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Resident identity missing",
		})
	}

	code, err := ac.Issuance.RenewStaffCode(c.Context(), actor.TenantID, actor.ResidentID, req.CodeID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Cross-tenant and cross-owner ids get the same answer as
			// missing ones; existence is never confirmed to outsiders.
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Code not found",
			})
		case errors.Is(err, issuance.ErrNotStaffCode):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
				Status:  fiber.StatusUnprocessableEntity,
				Message: "Only staff codes can be renewed",
			})
		default:
			return err
		}
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Code renewed",
		Data:    code,
	})
}

// Revoke terminates a code owned by the authenticated resident.
func (ac *AccessCodeController) Revoke(c *fiber.Ctx) error {
	var req codeTypes.RevokeCodeRequest
	if err := middleware.BindAndValidate(c, &req); err != nil {
		return err
	}

	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.ResidentID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Resident identity missing",
		})
	}

	if err := ac.Issuance.RevokeCode(c.Context(), actor.TenantID, actor.ResidentID, req.CodeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Code not found",
			})
		}
		return err
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Code revoked",
	})
}

// Index lists the authenticated resident's codes, newest first.
func (ac *AccessCodeController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok || actor.ResidentID == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Resident identity missing",
		})
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	codes, err := ac.Issuance.ListCodes(c.Context(), actor.TenantID, actor.ResidentID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Codes",
		Data:    codes,
	})
}
