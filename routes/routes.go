package routes

import (
	"estate-access/constants"
	accesscodeController "estate-access/controllers/accesscode"
	gateController "estate-access/controllers/gate"
	gatebotController "estate-access/controllers/gatebot"
	residentController "estate-access/controllers/resident"
	validationController "estate-access/controllers/validation"
	validationlogController "estate-access/controllers/validationlog"
	"estate-access/logger"
	"estate-access/middleware"
	"estate-access/services/issuance"
	"estate-access/services/suspension"
	"estate-access/services/validation"
	"estate-access/store/gormstore"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	st := gormstore.NewStore(db)

	engine := validation.NewEngine(st, st, st)
	issuanceService := issuance.NewService(st, st)
	suspensionService := suspension.NewService(st, st)

	codes := accesscodeController.NewAccessCodeController(issuanceService)
	validate := validationController.NewValidationController(engine)
	bot := gatebotController.NewGateBotController(engine, st, st)
	gates := gateController.NewGateController(st)
	residents := residentController.NewResidentController(suspensionService)
	logs := validationlogController.NewValidationLogController(st)

	// Start the async request logger processing goroutine
	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()
	app.Use(middleware.RequestLogger(asyncLogger))

	api := app.Group("/api")

	/*=============================================================================
	| Resident Routes
	===============================================================================*/
	codeGroup := api.Group("/codes", middleware.RequirePermissions(
		constants.PermResidentFull,
	))
	codeGroup.Get("/", codes.Index)
	codeGroup.Post("/create", codes.Store)
	codeGroup.Post("/renew", codes.Renew)
	codeGroup.Post("/revoke", codes.Revoke)

	/*=============================================================================
	| Guard Routes
	===============================================================================*/
	api.Post("/validate", middleware.RequirePermissions(
		constants.PermGuardFull,
	), validate.Validate)

	api.Post("/bot/webhook", middleware.RequirePermissions(
		constants.PermGuardFull,
	), bot.Webhook)

	api.Get("/validation-logs", middleware.RequirePermissions(
		constants.PermGuardFull,
		constants.PermEstateAdminFull,
		constants.PermSuperAdminFull,
	), logs.Index)

	/*=============================================================================
	| Directory Routes
	===============================================================================*/
	api.Get("/gates", middleware.RequireAuthentication(), gates.Index)
	api.Post("/gates", middleware.RequirePermissions(
		constants.PermEstateAdminFull,
		constants.PermSuperAdminFull,
	), gates.Store)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	api.Post("/residents/:id/suspend", middleware.RequirePermissions(
		constants.PermEstateAdminFull,
		constants.PermSuperAdminFull,
	), residents.Suspend)

	api.Post("/residents/:id/approve", middleware.RequirePermissions(
		constants.PermEstateAdminFull,
		constants.PermSuperAdminFull,
	), residents.Approve)
}
