package validationlog

import (
	"time"

	"estate-access/middleware"
	"estate-access/store"
	"estate-access/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// ValidationLogController serves the guard app's recent-attempts view.
// Bulk export and reporting live elsewhere; this is a day window only.
type ValidationLogController struct {
	Audit store.AuditStore
}

// NewValidationLogController creates a new validation log controller
func NewValidationLogController(audit store.AuditStore) *ValidationLogController {
	return &ValidationLogController{Audit: audit}
}

// Index lists the tenant's validation attempts for one day (default today).
func (vc *ValidationLogController) Index(c *fiber.Ctx) error {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Status:  fiber.StatusUnauthorized,
			Message: "Auth context missing",
		})
	}

	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid date, expected YYYY-MM-DD",
			})
		}
		day = parsed
	}

	from := now.With(day).BeginningOfDay()
	to := from.AddDate(0, 0, 1)

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	entries, err := vc.Audit.ListByDay(c.Context(), actor.TenantID, from, to, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Validation attempts",
		Data:    entries,
	})
}
